package types

import (
	"fmt"
	"strings"
)

// Array represents a fixed-length array type [Elem; N].
type Array struct {
	typ
	elem Type
	len  int
}

// NewArray creates a new array type with the given element type and length.
func NewArray(elem Type, len int) *Array {
	return &Array{elem: elem, len: len}
}

// Len returns the array length.
func (a *Array) Len() int {
	return a.len
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// String implements Type.
func (a *Array) String() string {
	return fmt.Sprintf("[%s; %d]", a.elem, a.len)
}

// Tuple represents a tuple type (T1, T2, ...).
type Tuple struct {
	typ
	elems []Type
}

// NewTuple creates a new tuple type with the given element types.
func NewTuple(elems ...Type) *Tuple {
	return &Tuple{elems: elems}
}

// Len returns the number of tuple slots.
func (t *Tuple) Len() int {
	return len(t.elems)
}

// At returns the type of slot i.
func (t *Tuple) At(i int) Type {
	return t.elems[i]
}

// Elems returns the slot types.
func (t *Tuple) Elems() []Type {
	return t.elems
}

// String implements Type.
func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range t.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Ident is a type referred to by name only. No declarations introduce
// named types, so an Ident is only ever identical to an Ident of the same name.
type Ident struct {
	typ
	name string
}

// NewIdent creates a new named type reference.
func NewIdent(name string) *Ident {
	return &Ident{name: name}
}

// Name returns the referenced name.
func (i *Ident) Name() string {
	return i.name
}

// String implements Type.
func (i *Ident) String() string {
	return i.name
}

// TypeString formats a possibly nil type, printing "-" for nil.
func TypeString(t Type) string {
	if t == nil {
		return "-"
	}
	return t.String()
}

// ListString formats a list of types as [t1 t2 ...].
func ListString(list []Type) string {
	parts := make([]string, len(list))
	for i, t := range list {
		parts[i] = TypeString(t)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
