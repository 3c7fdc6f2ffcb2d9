package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/rstn/internal/types"
)

func (a *app) symbolsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "symbols <file.rstn>",
		Short: "Check a file and print its symbol table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown symbols format %q (want text or yaml)", format)
			}
			res, err := a.compile(args[0])
			if res == nil {
				return err
			}
			// The table is printed even when checking failed.
			if perr := printSymbols(cmd.OutOrStdout(), res.Table, format); perr != nil {
				return perr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	return cmd
}

// symbol is the YAML form of one table entry or reference.
type symbol struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"`
	Scope    uint32   `yaml:"scope"`
	Parent   *uint32  `yaml:"parent,omitempty"`
	Line     uint32   `yaml:"line"`
	Type     string   `yaml:"type,omitempty"`
	Assigned bool     `yaml:"assigned,omitempty"`
	Params   []string `yaml:"params,omitempty"`
	Decl     string   `yaml:"decl,omitempty"`
}

// refDecl describes where a reference resolves when the scope tree is
// followed outward from the scope it occurs in.
func refDecl(table *types.Table, ref *types.Ref) string {
	if obj, id := table.LookupScope(ref.Scope(), ref.Name()); obj != nil {
		return fmt.Sprintf("scope %d", id)
	}
	if _, ok := table.ParamType(ref.Name()); ok {
		return "param"
	}
	return "unresolved"
}

func printSymbols(w io.Writer, table *types.Table, format string) error {
	if format == "text" {
		if _, err := io.WriteString(w, table.String()); err != nil {
			return err
		}
		refs := table.Refs()
		if len(refs) == 0 {
			return nil
		}
		var buf strings.Builder
		buf.WriteString("refs {\n")
		for _, ref := range refs {
			fmt.Fprintf(&buf, "  %s line %d scope %d -> %s\n", ref, ref.Line(), ref.Scope(), refDecl(table, ref))
		}
		buf.WriteString("}\n")
		_, err := io.WriteString(w, buf.String())
		return err
	}

	var list []symbol
	for _, obj := range table.AllSymbols() {
		sym := newSymbol(table, obj)
		if obj.Type() != nil {
			sym.Type = obj.Type().String()
		}
		switch obj := obj.(type) {
		case *types.Var:
			sym.Kind = "var"
			if obj.IsConst() {
				sym.Kind = "const"
			}
			sym.Assigned = obj.Assigned()
		case *types.FuncObj:
			sym.Kind = "fn"
			for i, name := range obj.ParamNames() {
				sym.Params = append(sym.Params, name+": "+types.TypeString(obj.ParamTypes()[i]))
			}
		}
		list = append(list, sym)
	}
	for _, ref := range table.Refs() {
		sym := newSymbol(table, ref)
		sym.Kind = "ref"
		sym.Decl = refDecl(table, ref)
		list = append(list, sym)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return err
	}
	return enc.Close()
}

func newSymbol(table *types.Table, obj types.Object) symbol {
	sym := symbol{
		Name:  obj.Name(),
		Scope: uint32(obj.Scope()),
		Line:  obj.Line(),
	}
	if parent, ok := table.Scope(obj.Scope()).Parent(); ok {
		p := uint32(parent)
		sym.Parent = &p
	}
	return sym
}
