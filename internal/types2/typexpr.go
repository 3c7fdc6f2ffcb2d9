package types2

import (
	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
)

// validType reports an error if t names a type that does not exist.
func (c *Checker) validType(pos syntax.Pos, t types.Type) bool {
	switch t := t.(type) {
	case *types.Ident:
		c.errorf(pos, "undefined type %s", t.Name())
		return false
	case *types.Array:
		return c.validType(pos, t.Elem())
	case *types.Tuple:
		for _, e := range t.Elems() {
			if !c.validType(pos, e) {
				return false
			}
		}
	}
	return true
}
