package types

import "fmt"

// ScopeID identifies one lexical block's namespace in a Table.
// Scope 0 is the global scope.
type ScopeID uint32

// GlobalScope is the permanent outermost scope.
const GlobalScope ScopeID = 0

// UseKind tells whether a symbol records a declaration or a reference.
type UseKind uint8

const (
	Declaration UseKind = iota
	Reference
)

func (k UseKind) String() string {
	if k == Reference {
		return "reference"
	}
	return "declaration"
}

// Object represents a declared entity: a variable or a function.
type Object interface {
	Name() string   // object name
	Line() uint32   // line of first occurrence
	Scope() ScopeID // declaring scope
	Use() UseKind   // declaration or reference
	Type() Type     // variable type or function result (may be nil)

	setScope(ScopeID) // internal: set declaring scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name  string
	line  uint32
	scope ScopeID
	use   UseKind
	typ   Type
}

func (o *object) Name() string        { return o.name }
func (o *object) Line() uint32        { return o.line }
func (o *object) Scope() ScopeID      { return o.scope }
func (o *object) Use() UseKind        { return o.use }
func (o *object) Type() Type          { return o.typ }
func (o *object) setScope(id ScopeID) { o.scope = id }
func (*object) aObject()              {}

// Var represents a variable or constant.
type Var struct {
	object
	assigned bool // a value has been bound
	isConst  bool
}

// NewVar creates a new variable object. typ may be nil when the type is
// to be inferred from the first value bound to it.
func NewVar(name string, line uint32, typ Type) *Var {
	return &Var{object: object{name: name, line: line, typ: typ}}
}

// NewConst creates a new constant object.
func NewConst(name string, line uint32, typ Type) *Var {
	v := NewVar(name, line, typ)
	v.isConst = true
	return v
}

// SetType sets the variable's type.
// This is called during checking to back-fill an inferred type.
func (v *Var) SetType(typ Type) {
	v.typ = typ
}

// Assigned reports whether a value has been bound to the variable.
func (v *Var) Assigned() bool {
	return v.assigned
}

// SetAssigned marks the variable as holding a value.
func (v *Var) SetAssigned() {
	v.assigned = true
}

// IsConst reports whether v is a constant.
func (v *Var) IsConst() bool {
	return v.isConst
}

func (v *Var) String() string {
	kind := "var"
	if v.isConst {
		kind = "const"
	}
	return fmt.Sprintf("%s %s %s", kind, v.name, TypeString(v.typ))
}

// FuncObj represents a declared function.
// Parameters exist only here; they are not symbols of the body scope.
type FuncObj struct {
	object
	paramNames []string
	paramTypes []Type
}

// NewFunc creates a new function object. result is nil for functions
// that produce no value.
func NewFunc(name string, line uint32, paramNames []string, paramTypes []Type, result Type) *FuncObj {
	return &FuncObj{
		object:     object{name: name, line: line, typ: result},
		paramNames: paramNames,
		paramTypes: paramTypes,
	}
}

// Result returns the declared result type, or nil.
func (f *FuncObj) Result() Type {
	return f.typ
}

// NumParams returns the number of parameters.
func (f *FuncObj) NumParams() int {
	return len(f.paramTypes)
}

// ParamNames returns the parameter names in order.
func (f *FuncObj) ParamNames() []string {
	return f.paramNames
}

// ParamTypes returns the parameter types in order.
func (f *FuncObj) ParamTypes() []Type {
	return f.paramTypes
}

// Param returns the type of the parameter with the given name.
func (f *FuncObj) Param(name string) (Type, bool) {
	for i, n := range f.paramNames {
		if n == name {
			return f.paramTypes[i], true
		}
	}
	return nil, false
}

func (f *FuncObj) String() string {
	s := "fn " + f.name + "("
	for i, n := range f.paramNames {
		if i > 0 {
			s += ", "
		}
		s += n + ": " + TypeString(f.paramTypes[i])
	}
	s += ")"
	if f.typ != nil {
		s += " -> " + f.typ.String()
	}
	return s
}

// Ref records a reference occurrence of a name.
type Ref struct {
	object
}

// NewRef creates a reference record.
func NewRef(name string, line uint32, scope ScopeID) *Ref {
	return &Ref{object: object{name: name, line: line, scope: scope, use: Reference}}
}

func (r *Ref) String() string {
	return "ref " + r.name
}
