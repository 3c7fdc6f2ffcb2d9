package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
	"github.com/you-not-fish/rstn/internal/types2"
)

func TestCompileOK(t *testing.T) {
	res, err := CompileString(`
fn foo(x: int, y: bool) -> int { return x; }
let a = foo(1, true);
let x = 1 + 2.5;
let y: bool = 1 == 2;
for (i in 1..=5) { a = a + i; }
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK() {
		t.Fatal("result not OK")
	}

	x := res.Table.Lookup("x").(*types.Var)
	if x.Type() != types.Typ[types.Float] || !x.Assigned() {
		t.Errorf("x: type=%v assigned=%v, want float and assigned", x.Type(), x.Assigned())
	}
	if a := res.Table.Lookup("a"); a.Type() != types.Typ[types.Int] {
		t.Errorf("a: type=%v, want int", a.Type())
	}
	if len(res.File.Stmts) != 5 {
		t.Errorf("got %d statements, want 5", len(res.File.Stmts))
	}
}

func TestCompileSyntaxError(t *testing.T) {
	var reported []string
	conf := &Config{Error: func(pos syntax.Pos, msg string) {
		reported = append(reported, pos.String()+": "+msg)
	}}

	res, err := Compile("bad.rstn", strings.NewReader("const c = 1;"), conf)
	if res != nil {
		t.Errorf("result = %v, want nil", res)
	}

	var serr *syntax.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v (%T), want a *syntax.SyntaxError", err, err)
	}
	if serr.Msg != "const c requires a type and a value" {
		t.Errorf("Msg = %q", serr.Msg)
	}
	if got := err.Error(); got != "parse bad.rstn: bad.rstn:1:1: const c requires a type and a value" {
		t.Errorf("Error() = %q", got)
	}
	if diff := deep.Equal(reported, []string{"bad.rstn:1:1: const c requires a type and a value"}); diff != nil {
		t.Error(diff)
	}
}

func TestCompileTypeError(t *testing.T) {
	res, err := Compile("t.rstn", strings.NewReader("fn f() -> int { return true; }"), nil)
	if res == nil {
		t.Fatal("result is nil on a type error")
	}
	if res.OK() {
		t.Error("result OK on a type error")
	}

	var terr *types2.TypeError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v (%T), want a *types2.TypeError", err, err)
	}
	if !strings.Contains(terr.Msg, "cannot use bool value as int in return from f") {
		t.Errorf("Msg = %q", terr.Msg)
	}
	if terr.Pos.Line() != 1 || terr.Pos.Col() != 24 {
		t.Errorf("Pos = %s, want 1:24", terr.Pos)
	}
}

func TestCompileAllErrors(t *testing.T) {
	src := "let a = [1, true];\nlet b = -true;\n"

	_, err := CompileString(src)
	if err == nil {
		t.Fatal("expected an error")
	}

	var count int
	res, _ := Compile("t.rstn", strings.NewReader(src), &Config{
		AllErrors: true,
		Error:     func(syntax.Pos, string) { count++ },
	})
	if count != 2 || len(res.Check.Errors) != 2 {
		t.Errorf("got %d reported and %d recorded errors, want 2", count, len(res.Check.Errors))
	}
}

func TestCompileResolution(t *testing.T) {
	// The inner x shadows the outer one. Under the whole-table scan the inner
	// declaration's bool type is written to the outer x, so y's initializer
	// no longer matches int.
	src := `
let x = 1;
if (x > 0) {
    let x = true;
    if (x) { }
}
let y: int = x;
`
	if _, err := CompileString(src); err != nil {
		t.Errorf("lexical: unexpected error: %v", err)
	}

	_, err := Compile("t.rstn", strings.NewReader(src), &Config{Resolution: types2.TableScan})
	if err == nil {
		t.Error("table scan: expected a sibling collision error")
	}
}

func TestCompileWarnings(t *testing.T) {
	res, err := CompileString("let n = 12x;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0].Msg, `invalid number literal "12x"`) {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if res.Table.Lookup("n").Type() != types.Typ[types.Int] {
		t.Errorf("n: type=%v, want int", res.Table.Lookup("n").Type())
	}
}
