package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	// Void means "no coherent type"; it is the result of any failed check.
	Void BasicKind = iota
	// Undefined is the type of an identifier that resolves to nothing.
	Undefined

	Int
	Float
	String
	Bool
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	IsBoolean BasicInfo = 1 << iota
	IsInteger
	IsFloat
	IsString
	IsNumeric = IsInteger | IsFloat
)

// Basic represents a basic type.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
var Typ = []*Basic{
	Void:      {kind: Void, name: "void"},
	Undefined: {kind: Undefined, name: "undefined"},
	Int:       {kind: Int, info: IsInteger, name: "int"},
	Float:     {kind: Float, info: IsFloat, name: "float"},
	String:    {kind: String, info: IsString, name: "string"},
	Bool:      {kind: Bool, info: IsBoolean, name: "bool"},
}
