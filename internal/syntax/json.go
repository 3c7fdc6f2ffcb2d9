package syntax

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toTree(node))
}

// FprintYAML writes a YAML representation of the AST to w.
// It carries the same fields as FprintJSON.
func FprintYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toTree(node)); err != nil {
		return err
	}
	return enc.Close()
}

// toTree converts a node into nested maps and slices for encoding.
func toTree(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return map[string]interface{}{
			"type":  "File",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, toTreeStmt),
		}

	case *DeclStmt:
		m := map[string]interface{}{
			"type":  "DeclStmt",
			"pos":   n.pos.String(),
			"const": n.Const,
			"name":  n.Name.Value,
		}
		if n.Type != nil {
			m["vartype"] = typeString(n.Type)
		}
		if n.Value != nil {
			m["value"] = toTree(n.Value)
		}
		return m

	case *FuncDecl:
		params := make([]interface{}, len(n.Params))
		for i, f := range n.Params {
			params[i] = map[string]interface{}{
				"name":      f.Name.Value,
				"paramtype": typeString(f.Type),
			}
		}
		m := map[string]interface{}{
			"type":   "FuncDecl",
			"pos":    n.pos.String(),
			"name":   n.Name.Value,
			"scope":  n.Scope,
			"params": params,
			"body":   toTree(n.Body),
		}
		if n.Result != nil {
			m["result"] = typeString(n.Result)
		}
		return m

	case *BlockStmt:
		return map[string]interface{}{
			"type":  "BlockStmt",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, toTreeStmt),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type":     "IfStmt",
			"pos":      n.pos.String(),
			"scope":    n.Scope,
			"implicit": n.Implicit,
			"cond":     toTree(n.Cond),
			"then":     toTree(n.Then),
		}
		if n.Else != nil {
			m["else"] = toTree(n.Else)
		}
		return m

	case *LoopStmt:
		return map[string]interface{}{
			"type":  "LoopStmt",
			"pos":   n.pos.String(),
			"scope": n.Scope,
			"body":  toTree(n.Body),
		}

	case *ForStmt:
		return map[string]interface{}{
			"type":  "ForStmt",
			"pos":   n.pos.String(),
			"scope": n.Scope,
			"var":   n.Var.Value,
			"iter":  toTree(n.Iter),
			"body":  toTree(n.Body),
		}

	case *ReturnStmt:
		m := map[string]interface{}{
			"type": "ReturnStmt",
			"pos":  n.pos.String(),
		}
		if n.Result != nil {
			m["result"] = toTree(n.Result)
		}
		return m

	case *AssignStmt:
		return map[string]interface{}{
			"type": "AssignStmt",
			"pos":  n.pos.String(),
			"lhs":  toTree(n.LHS),
			"rhs":  toTree(n.RHS),
		}

	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"pos":  n.pos.String(),
			"x":    toTree(n.X),
		}

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *Operation:
		m := map[string]interface{}{
			"pos": n.pos.String(),
			"op":  n.Op.String(),
			"x":   toTree(n.X),
		}
		if n.Y != nil {
			m["type"] = "BinaryOp"
			m["y"] = toTree(n.Y)
		} else {
			m["type"] = "UnaryOp"
		}
		return m

	case *CallExpr:
		return map[string]interface{}{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"fun":  n.Fun.Value,
			"args": mapSlice(n.Args, toTreeExpr),
		}

	case *TupleExpr:
		return map[string]interface{}{
			"type":  "TupleExpr",
			"pos":   n.pos.String(),
			"elems": mapSlice(n.Elems, toTreeExpr),
		}

	case *ArrayLit:
		return map[string]interface{}{
			"type":  "ArrayLit",
			"pos":   n.pos.String(),
			"elems": mapSlice(n.Elems, toTreeExpr),
		}

	case *IndexExpr:
		return map[string]interface{}{
			"type":  "IndexExpr",
			"pos":   n.pos.String(),
			"x":     toTree(n.X),
			"index": toTree(n.Index),
		}

	case *SelectorExpr:
		return map[string]interface{}{
			"type": "SelectorExpr",
			"pos":  n.pos.String(),
			"x":    toTree(n.X),
			"sel":  n.Sel.Value,
		}

	case *TupleIndexExpr:
		return map[string]interface{}{
			"type":  "TupleIndexExpr",
			"pos":   n.pos.String(),
			"x":     toTree(n.X),
			"index": n.Index,
		}

	case *RangeExpr:
		return map[string]interface{}{
			"type":      "RangeExpr",
			"pos":       n.pos.String(),
			"start":     toTree(n.Start),
			"end":       toTree(n.End),
			"inclusive": n.Inclusive,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func toTreeStmt(s Stmt) interface{} { return toTree(s) }
func toTreeExpr(e Expr) interface{} { return toTree(e) }

// mapSlice maps f over s.
func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
