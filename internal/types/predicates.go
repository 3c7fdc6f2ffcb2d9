package types

// Identical reports whether x and y are identical types.
// Identity is structural: arrays compare element type and length, tuples
// compare slot by slot.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return identical(x, y)
}

func identical(x, y Type) bool {
	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return x.len == y.len && Identical(x.elem, y.elem)
		}
	case *Tuple:
		if y, ok := y.(*Tuple); ok {
			return identicalTuples(x, y)
		}
	case *Ident:
		if y, ok := y.(*Ident); ok {
			return x.name == y.name
		}
	}
	return false
}

func identicalTuples(x, y *Tuple) bool {
	if len(x.elems) != len(y.elems) {
		return false
	}
	for i := range x.elems {
		if !Identical(x.elems[i], y.elems[i]) {
			return false
		}
	}
	return true
}

// Unify reports whether every type in list is identical to the first and
// the first is a real type. An empty list unifies trivially.
func Unify(list []Type) bool {
	if len(list) == 0 {
		return true
	}
	first := list[0]
	if !IsValid(first) {
		return false
	}
	for _, t := range list[1:] {
		if !Identical(first, t) {
			return false
		}
	}
	return true
}

func basicKind(T Type) (BasicKind, bool) {
	b, ok := T.(*Basic)
	if !ok {
		return 0, false
	}
	return b.kind, true
}

// IsValid reports whether T is a real type: not nil, Void or Undefined.
func IsValid(T Type) bool {
	if T == nil {
		return false
	}
	k, ok := basicKind(T)
	return !ok || (k != Void && k != Undefined)
}

// IsVoid reports whether T is the Void type.
func IsVoid(T Type) bool {
	k, ok := basicKind(T)
	return ok && k == Void
}

// isInteger reports whether T is int.
func isInteger(T Type) bool {
	b, ok := T.(*Basic)
	return ok && b.info&IsInteger != 0
}

// IsIntArray reports whether T is an array of int.
func IsIntArray(T Type) bool {
	a, ok := T.(*Array)
	return ok && isInteger(a.elem)
}
