package types2

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/you-not-fish/rstn/internal/syntax"
	"github.com/you-not-fish/rstn/internal/types"
)

// parseAndCheckConf parses source code and runs the type checker with conf.
// It returns the parser's symbol table, the check result and the reported
// errors.
func parseAndCheckConf(t *testing.T, src string, conf Config) (*types.Table, *Result, []string) {
	t.Helper()
	p := syntax.NewParser("test.rstn", strings.NewReader(src), nil)
	file := p.Parse()
	if err := p.FirstError(); err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var errs []string
	conf.Error = func(pos syntax.Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	res, _ := Check(file, p.Table(), &conf)
	return p.Table(), res, errs
}

// parseAndCheck runs the checker with lexical resolution.
func parseAndCheck(t *testing.T, src string) (*types.Table, *Result, []string) {
	t.Helper()
	return parseAndCheckConf(t, src, Config{})
}

// expectNoErrors checks that the source code type-checks without errors.
func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	_, res, errs := parseAndCheck(t, src)
	if len(errs) > 0 || !res.OK {
		t.Errorf("unexpected errors:\n%s", strings.Join(errs, "\n"))
	}
}

// expectErrors checks that type-checking produces expected error substrings.
func expectErrors(t *testing.T, src string, expectedMsgs ...string) {
	t.Helper()
	_, res, errs := parseAndCheck(t, src)
	if len(errs) == 0 || res.OK {
		t.Errorf("expected errors containing %v, got none", expectedMsgs)
		return
	}
	errText := strings.Join(errs, "\n")
	for _, msg := range expectedMsgs {
		if !strings.Contains(errText, msg) {
			t.Errorf("expected error containing %q, got:\n%s", msg, errText)
		}
	}
}

// globalVar returns the variable called name in the global scope.
func globalVar(t *testing.T, table *types.Table, name string) *types.Var {
	t.Helper()
	v, ok := table.Scope(types.GlobalScope).Lookup(name).(*types.Var)
	if !ok {
		t.Fatalf("no global variable %s", name)
	}
	return v
}

func TestInferredDeclaration(t *testing.T) {
	tests := []struct {
		src  string
		name string
		want types.Type
	}{
		{"let x = 1 + 2.5;", "x", types.Typ[types.Float]},
		{"let x = 1 + 2 * 3 - 4 / 2 % 3 ** 2;", "x", types.Typ[types.Int]},
		{"let x = 1 + 2 * (3 - 4.0);", "x", types.Typ[types.Float]},
		{"let x = 2.0 ** 2;", "x", types.Typ[types.Float]},
		{"let y: bool = 1 == 2;", "y", types.Typ[types.Bool]},
		{`let s = "hi";`, "s", types.Typ[types.String]},
		{"let b = !(1 < 2) || true && false;", "b", types.Typ[types.Bool]},
		{"let a = [1, 2, 3];", "a", types.NewArray(types.Typ[types.Int], 3)},
		{"let a = [[1.5], [2.5]];", "a", types.NewArray(types.NewArray(types.Typ[types.Float], 1), 2)},
		{`let t = (1, "a", true);`, "t", types.NewTuple(types.Typ[types.Int], types.Typ[types.String], types.Typ[types.Bool])},
		{"let n = -5;", "n", types.Typ[types.Int]},
		{"let x = 1; let n = -x;", "n", types.Typ[types.Int]},
		{"let a = [1, 2]; let e = a[1];", "e", types.Typ[types.Int]},
		{"let t = (1, 2.5); let e = t.1;", "e", types.Typ[types.Float]},
		{"let x; x = 3;", "x", types.Typ[types.Int]},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			table, res, errs := parseAndCheck(t, tt.src)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors:\n%s", strings.Join(errs, "\n"))
			}
			if !res.OK {
				t.Fatal("result not OK")
			}
			v := globalVar(t, table, tt.name)
			if !types.Identical(v.Type(), tt.want) {
				t.Errorf("type of %s = %s, want %s", tt.name, types.TypeString(v.Type()), tt.want)
			}
			if !v.Assigned() {
				t.Errorf("%s not marked assigned", tt.name)
			}
		})
	}
}

func TestDeclarationWithoutValue(t *testing.T) {
	table, _, errs := parseAndCheck(t, "let x: int;")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v := globalVar(t, table, "x")
	if v.Assigned() {
		t.Error("x marked assigned without a value")
	}
	if !types.Identical(v.Type(), types.Typ[types.Int]) {
		t.Errorf("type = %s, want int", types.TypeString(v.Type()))
	}
}

func TestArrays(t *testing.T) {
	expectNoErrors(t, "let a = [1, 2, 3]; let b: [int; 3] = a;")
	expectNoErrors(t, "let a: [float; 2] = [1.0, 2.0];")
	expectErrors(t, "let a = [1, 2, 3, true];", "array elements have mismatched types")
	expectErrors(t, "let a = [1, 2.5];", "array elements have mismatched types")
	expectErrors(t, "let a: [int; 2] = [1, 2, 3];", "cannot use [int; 3] value as [int; 2]")
	expectErrors(t, "let a = [];", "empty array literal")
}

func TestIndex(t *testing.T) {
	expectNoErrors(t, "let a = [1, 2, 3]; let b: int = a[0]; a[1] = 5;")
	expectNoErrors(t, "let m = [[1, 2], [3, 4]]; let x: int = m[1][0];")
	expectErrors(t, "let a = [1, 2]; let c = a[true];", "array index must be int")
	expectErrors(t, "let n = 5; let m = n[0];", "cannot index non-array value of type int")
	expectErrors(t, "let a = [1, 2]; a[0] = 1.5;", "cannot assign float to a[0] of type int")
}

func TestTuples(t *testing.T) {
	expectNoErrors(t, `let t = (1, 2.5, "s"); let f: float = t.1;`)
	expectNoErrors(t, "let t = ((1, 2), 3); let x: int = t.0.1;")
	expectErrors(t, "let t = (1, 2); let z = t.3;", "tuple index 3 out of range")
	expectErrors(t, "let n = 1; let z = n.0;", "non-tuple")
	expectErrors(t, "let t = (1, 2); let z = t.foo;", "member access .foo is not supported")
}

func TestOperators(t *testing.T) {
	expectErrors(t, "let x = 1 + true;", "operator + requires numeric operands")
	expectErrors(t, `let x = "a" * 2;`, "operator * requires numeric operands")
	expectErrors(t, "let b = true && 1;", "operator && requires bool operands")
	expectErrors(t, "let b = 1 < 2.5;", "mismatched types int and float")
	expectErrors(t, "let b = true == false;", "operator == requires numeric operands")
	expectErrors(t, "let a = !1;", "operator ! requires a bool operand")
	expectErrors(t, "let b = -true;", "operator - requires a numeric operand")
}

func TestIdentifiers(t *testing.T) {
	expectErrors(t, "let a = b + 1;", "identifier b not found")
	expectErrors(t, "let x: int; return x;", "use of unassigned variable x")
	expectErrors(t, "let x; let y = x;", "use of unassigned variable x")
	expectErrors(t, "let a = b; let b = 1;", "identifier b not found")
	expectErrors(t, "fn f() -> int { return 1; } let g = f;", "function f used as a value")
}

func TestConst(t *testing.T) {
	expectNoErrors(t, "const c: int = 1; let d = c + 1;")
	expectErrors(t, "const c: int = 1; c = 2;", "cannot assign to constant c")
	expectErrors(t, "const a: [int; 2] = [1, 2]; a[0] = 3;", "constant a")
	expectErrors(t, "const c: int = 1.5;", "cannot use float value as int")
}

func TestAssignments(t *testing.T) {
	expectNoErrors(t, "let x = 1; x = 2;")
	expectNoErrors(t, "let x: float; x = 2.5; let y = x * 2;")
	expectErrors(t, "let x = 1; x = true;", "cannot assign bool to x of type int")
	expectErrors(t, "y = 1;", "identifier y not found")
	expectErrors(t, "fn f() {} f = 1;", "cannot assign to function f")
}

func TestIf(t *testing.T) {
	expectNoErrors(t, `
let x = 1;
if (x > 0) {
    x = 2;
} else if (x < 0) {
    x = 3;
} else {
    x = 4;
}
`)
	expectErrors(t, "if (1) { }", "non-boolean condition in if statement")
	expectErrors(t, "if (true) { let a = 1 + true; }", "operator + requires numeric operands")
	expectErrors(t, "if (false) { } else { let a = b; }", "identifier b not found")

	// The else arm shares the if's scope id but not the then arm's names.
	expectErrors(t, "let c = false; if (c) { let a = 1; } else { let b: int = a; }", "identifier a not found")
	expectErrors(t, "let c = true; if (c) { fn g() { } } else { g(); }", "undefined function g")
	expectNoErrors(t, "let c = true; if (c) { let a = 1; } else { let a = true; if (a) { } }")
	expectNoErrors(t, "let a = 1; if (a > 0) { let a = true; } else { let b: int = a; }")
}

func TestLoops(t *testing.T) {
	expectNoErrors(t, "for (x in 1..=5) { let y = x * 2; }")
	expectNoErrors(t, "for (x in 0..10) { }")
	expectNoErrors(t, "let a = [1, 2, 3]; for (x in a) { let y: int = x; }")
	expectNoErrors(t, "for x in [4, 5] { }")
	expectNoErrors(t, "let i = 0; loop { i = i + 1; }")
	expectErrors(t, "for (x in [true, false]) { }", "cannot range over [bool; 2]")
	expectErrors(t, "for (x in 0..2.5) { }", "range bounds must be int")
	expectErrors(t, "let n = 3; for (x in n) { }", "cannot range over int")
	expectErrors(t, "loop { let a = true + 1; }", "requires numeric operands")
}

func TestRangeOutsideFor(t *testing.T) {
	expectErrors(t, "let z: int = 1..5;", "cannot use range 1..5 as a value outside a for loop")
	expectErrors(t, "let z = 0..=3;", "cannot use range 0..=3 as a value outside a for loop")
	expectErrors(t, "fn f(a: int) { } f(1..3);", "cannot use range 1..3 as a value outside a for loop")
	expectErrors(t, "let z = [0..2];", "cannot use range 0..2 as a value outside a for loop")
	// A bad bound is reported once, as a bound error.
	expectErrors(t, "let z = 0..true;", "range bounds must be int")
}

func TestForVariable(t *testing.T) {
	table, _, errs := parseAndCheck(t, "for (i in 0..3) { let j = i; }")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v, ok := table.Scope(1).Lookup("i").(*types.Var)
	if !ok {
		t.Fatal("loop variable not in loop scope")
	}
	if !types.Identical(v.Type(), types.Typ[types.Int]) || !v.Assigned() {
		t.Errorf("loop variable = %s assigned=%v, want int assigned", types.TypeString(v.Type()), v.Assigned())
	}
}

func TestFunctions(t *testing.T) {
	expectNoErrors(t, `
fn foo(x: int, y: bool) -> int {
    if (y) {
        return x;
    }
    return 0;
}
let a = foo(1, true);
`)
	expectNoErrors(t, `
fn fact(n: int) -> int {
    if (n <= 1) {
        return 1;
    }
    return n * fact(n - 1);
}
`)
	expectNoErrors(t, `fn greet(name: string) { } greet("hi");`)
	expectNoErrors(t, "let x = g(); fn g() -> int { return 1; }")
	expectNoErrors(t, "fn f(x: int) -> float { let x = 2.5; return x; }")
	expectNoErrors(t, "fn outer(a: int) -> int { fn inner(b: int) -> int { return a + b; } return inner(1); }")
	expectNoErrors(t, "fn f(a: [int; 2]) -> int { return a[0]; } let s = f([1, 2]);")
	expectNoErrors(t, "return 1 + 2;")
}

func TestFunctionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"arg0", "fn foo(x: int, y: bool) -> int { return x; } let a = foo(true, 1);", "in argument 0 to foo"},
		{"arity", "fn f(a: int) -> int { return a; } let x = f(1, 2);", "wrong number of arguments in call to f: have 2, want 1"},
		{"undefined", "let x = nope(1);", "undefined function nope"},
		{"non-function", "let v = 1; let x = v(1);", "cannot call non-function v"},
		{"no value", "fn greet() { } let x = greet();", "greet() has no value"},
		{"return type", "fn f() -> int { return true; }", "cannot use bool value as int in return from f"},
		{"missing value", "fn f() -> int { return; }", "missing return value in f"},
		{"unexpected value", "fn f() { return 1; }", "unexpected return value in f"},
		{"param type", "fn f(p: Point) { }", "undefined type Point"},
		{"decl type", "let p: Point = 1;", "undefined type Point"},
		{"body", "fn f() { let a = b; }", "identifier b not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, tt.src, tt.want)
		})
	}
}

func TestLexicalScoping(t *testing.T) {
	src := `
let x = 1;
if (x > 0) {
    let x = true;
    if (x) { }
}
let y: int = x;
`
	expectNoErrors(t, src)

	_, res, errs := parseAndCheckConf(t, src, Config{Resolution: TableScan})
	if res.OK || len(errs) == 0 {
		t.Fatal("table scan: expected the sibling declaration to collide")
	}
	if !strings.Contains(errs[0], "declaration of y") {
		t.Errorf("table scan error = %q, want declaration of y", errs[0])
	}
}

func TestTableScanResolution(t *testing.T) {
	conf := Config{Resolution: TableScan}
	for _, src := range []string{
		"let x = 1 + 2.5; let y: float = x;",
		"fn foo(x: int, y: bool) -> int { return x; } let a = foo(1, true);",
		"for (i in 1..=5) { let j: int = i; }",
	} {
		if _, res, errs := parseAndCheckConf(t, src, conf); !res.OK {
			t.Errorf("%s: unexpected errors:\n%s", src, strings.Join(errs, "\n"))
		}
	}

	// Declared names resolve whether or not their declaration came first.
	_, _, errs := parseAndCheckConf(t, "let a = b; let b = 1;", conf)
	if len(errs) != 1 || !strings.Contains(errs[0], "use of unassigned variable b") {
		t.Errorf("errors = %v, want unassigned b", errs)
	}
}

func TestStopAtFirstError(t *testing.T) {
	src := "let a = b; let c = d; let e = 1;"

	_, res, errs := parseAndCheck(t, src)
	if len(errs) != 1 || len(res.Errors) != 1 {
		t.Errorf("got %d errors, want 1: %v", len(errs), errs)
	}

	_, res, errs = parseAndCheckConf(t, src, Config{AllErrors: true})
	if len(errs) != 2 || len(res.Errors) != 2 {
		t.Errorf("AllErrors: got %d errors, want 2: %v", len(errs), errs)
	}
	if res.OK {
		t.Error("AllErrors: result OK despite errors")
	}
}

func TestCheckReturnsTypeError(t *testing.T) {
	p := syntax.NewParser("test.rstn", strings.NewReader("let a = [1, true];"), nil)
	file := p.Parse()
	res, err := Check(file, p.Table(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var terr *TypeError
	if !errors.As(err, &terr) {
		t.Fatalf("error %T is not a *TypeError", err)
	}
	if terr != res.Errors[0] {
		t.Error("returned error is not the first recorded error")
	}
	if terr.Expr != "[1, true]" {
		t.Errorf("Expr = %q, want %q", terr.Expr, "[1, true]")
	}
	if diff := deep.Equal(types.ListString(terr.Types), "[int bool]"); diff != nil {
		t.Error(diff)
	}
	want := "test.rstn:1:9: array elements have mismatched types (in [1, true]; types [int bool])"
	if got := terr.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRecordedTypes(t *testing.T) {
	p := syntax.NewParser("test.rstn", strings.NewReader("let x = (1 + 2) * 3.0;"), nil)
	file := p.Parse()
	res, err := Check(file, p.Table(), nil)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	syntax.Inspect(file, func(n syntax.Node) bool {
		if e, ok := n.(syntax.Expr); ok {
			got = append(got, syntax.ExprString(e)+": "+types.TypeString(res.TypeOf(e)))
		}
		return true
	})
	// The declared name is not an expression the checker types.
	want := []string{
		"x: -",
		"(1 + 2) * 3.0: float",
		"1 + 2: int",
		"1: int",
		"2: int",
		"3.0: float",
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestParseResolution(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Resolution
		err  bool
	}{
		{"lexical", Lexical, false},
		{"table", TableScan, false},
		{"scan", Lexical, true},
	} {
		got, err := ParseResolution(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseResolution(%q) = %v, %v", tt.in, got, err)
		}
		if !tt.err && got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}
