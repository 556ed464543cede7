package ir

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-minilang/internal/errors"
	"github.com/cwbudde/go-minilang/internal/lexer"
	"github.com/cwbudde/go-minilang/internal/parser"
)

// compileSource runs lexer, parser and IR compiler over the input.
func compileSource(t *testing.T, input string) Program {
	t.Helper()

	sink := errors.NewSink()
	l := lexer.New(input, sink)
	program := parser.New(l, sink).ParseProgram()
	if sink.HasErrors() {
		var sb strings.Builder
		sink.Report(&sb)
		t.Fatalf("frontend failed for %q:\n%s", input, sb.String())
	}
	return NewCompiler().Compile(program)
}

// checkOperandShapes verifies every instruction against the fixed
// per-opcode operand shape.
func checkOperandShapes(t *testing.T, code Program) {
	t.Helper()

	for _, in := range code {
		switch {
		case in.Op.IsBinary():
			if in.Result.Kind != OperandTemp {
				t.Errorf("%s: result must be a temporary, got %s", in, in.Result.Kind)
			}
			if !in.Arg1.IsValue() || !in.Arg2.IsValue() {
				t.Errorf("%s: args must be value-bearing, got %s/%s", in, in.Arg1.Kind, in.Arg2.Kind)
			}
		case in.Op == LOAD_IMM:
			if in.Result.Kind != OperandVariable && in.Result.Kind != OperandTemp {
				t.Errorf("%s: result must be var or temp, got %s", in, in.Result.Kind)
			}
			if !in.Arg1.IsLiteral() || !in.Arg2.IsNone() {
				t.Errorf("%s: expected literal arg1 and empty arg2", in)
			}
		case in.Op == ASSIGN:
			if in.Result.Kind != OperandVariable && in.Result.Kind != OperandTemp {
				t.Errorf("%s: result must be var or temp, got %s", in, in.Result.Kind)
			}
			if !in.Arg1.IsValue() || !in.Arg2.IsNone() {
				t.Errorf("%s: expected value-bearing arg1 and empty arg2", in)
			}
		case in.Op == PRINT:
			if !in.Result.IsNone() || !in.Arg1.IsValue() || !in.Arg2.IsNone() {
				t.Errorf("%s: expected PRINT None, value, None", in)
			}
		case in.Op == LABEL || in.Op == JMP:
			if !in.Result.IsNone() || !in.Arg1.IsLabel() || !in.Arg2.IsNone() {
				t.Errorf("%s: expected %s None, label, None", in, in.Op)
			}
			if in.Arg1.Name == "" {
				t.Errorf("%s: label operand has empty name", in)
			}
		case in.Op == JMP_IF_ZERO:
			if !in.Result.IsNone() || !in.Arg1.IsValue() || !in.Arg2.IsLabel() {
				t.Errorf("%s: expected JMP_IF_ZERO None, value, label", in)
			}
		}
	}
}

// checkLabels verifies that every label name is bound exactly once
// and every jump target resolves to a label.
func checkLabels(t *testing.T, code Program) {
	t.Helper()

	defined := make(map[string]int)
	for _, in := range code {
		if in.Op == LABEL {
			defined[in.Arg1.Name]++
		}
	}
	for name, n := range defined {
		if n != 1 {
			t.Errorf("label %s defined %d times", name, n)
		}
	}
	for _, in := range code {
		var target string
		switch in.Op {
		case JMP:
			target = in.Arg1.Name
		case JMP_IF_ZERO:
			target = in.Arg2.Name
		default:
			continue
		}
		if defined[target] != 1 {
			t.Errorf("%s: jump target %s does not match exactly one LABEL", in, target)
		}
	}
}

func listing(code Program) []string {
	var lines []string
	for _, in := range code {
		lines = append(lines, in.String())
	}
	return lines
}

func expectListing(t *testing.T, code Program, expected []string) {
	t.Helper()

	got := listing(code)
	if len(got) != len(expected) {
		t.Fatalf("instruction count wrong. expected=%d, got=%d\n%s",
			len(expected), len(got), strings.Join(got, "\n"))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("instruction %d wrong.\nexpected: %s\ngot:      %s", i, expected[i], got[i])
		}
	}
}

func TestCompileAssignWithExpression(t *testing.T) {
	code := compileSource(t, "int x; x = 2 + 3 * 4; print x;")

	expectListing(t, code, []string{
		"000: T1 = 3 MUL 4",
		"001: T2 = 2 ADD T1",
		"002: x = T2",
		"003: PRINT x",
	})
	checkOperandShapes(t, code)
}

func TestCompileLiteralAssignUsesLoadImm(t *testing.T) {
	code := compileSource(t, "x = 5;")

	expectListing(t, code, []string{"000: x = 5"})
	if code[0].Op != LOAD_IMM {
		t.Errorf("expected LOAD_IMM for literal RHS, got %s", code[0].Op)
	}
}

func TestCompileVariableAssignUsesAssign(t *testing.T) {
	code := compileSource(t, "x = y;")

	if code[0].Op != ASSIGN {
		t.Errorf("expected ASSIGN for variable RHS, got %s", code[0].Op)
	}
	if code[0].Arg1.Kind != OperandVariable || code[0].Arg1.Name != "y" {
		t.Errorf("arg1 wrong: %v", code[0].Arg1)
	}
}

func TestVarDeclEmitsNothing(t *testing.T) {
	code := compileSource(t, "int x; int y;")
	if len(code) != 0 {
		t.Fatalf("declarations emitted %d instructions", len(code))
	}
}

func TestCompileIfWithoutElse(t *testing.T) {
	code := compileSource(t, "int a; a = 5; if (a < 10) { print 1; }")

	expectListing(t, code, []string{
		"000: a = 5",
		"001: T1 = a CMP_LT 10",
		"002: JMP_IF_ZERO T1, L1",
		"003: PRINT 1",
		"L1: LABEL",
		"L2: LABEL",
	})
	checkOperandShapes(t, code)
	checkLabels(t, code)
}

func TestCompileIfWithElse(t *testing.T) {
	code := compileSource(t, "if (a < 10) { print 1; } else { print 2; }")

	expectListing(t, code, []string{
		"000: T1 = a CMP_LT 10",
		"001: JMP_IF_ZERO T1, L1",
		"002: PRINT 1",
		"003: JMP L2",
		"L1: LABEL",
		"005: PRINT 2",
		"L2: LABEL",
	})
	checkOperandShapes(t, code)
	checkLabels(t, code)
}

func TestCompileWhile(t *testing.T) {
	code := compileSource(t, "while (i < 3) { print i; i = i + 1; }")

	expectListing(t, code, []string{
		"L1: LABEL",
		"001: T1 = i CMP_LT 3",
		"002: JMP_IF_ZERO T1, L2",
		"003: PRINT i",
		"004: T2 = i ADD 1",
		"005: i = T2",
		"006: JMP L1",
		"L2: LABEL",
	})
	checkOperandShapes(t, code)
	checkLabels(t, code)
}

func TestCompileNestedIf(t *testing.T) {
	code := compileSource(t, "if (n == 1) { if (n < 2) { print 42; } }")

	checkOperandShapes(t, code)
	checkLabels(t, code)

	// Outer labels are allocated before the condition is lowered, so
	// the inner if gets L3/L4.
	labels := make(map[string]bool)
	for _, in := range code {
		if in.Op == LABEL {
			labels[in.Arg1.Name] = true
		}
	}
	for _, want := range []string{"L1", "L2", "L3", "L4"} {
		if !labels[want] {
			t.Errorf("missing label %s in %v", want, labels)
		}
	}
}

func TestFreshTemporariesAndLabels(t *testing.T) {
	code := compileSource(t, "x = a + b; y = c + d; if (x < y) { } while (x > y) { }")

	temps := make(map[string]int)
	for _, in := range code {
		if in.Result.Kind == OperandTemp {
			temps[in.Result.Name]++
		}
	}
	for name, n := range temps {
		if n != 1 {
			t.Errorf("temporary %s defined %d times", name, n)
		}
	}
	checkLabels(t, code)
}

func TestCompilerResetsBetweenPrograms(t *testing.T) {
	c := NewCompiler()

	sink := errors.NewSink()
	l := lexer.New("x = a + b;", sink)
	program := parser.New(l, sink).ParseProgram()

	one := c.Compile(program)
	two := c.Compile(program)

	if one.String() != two.String() {
		t.Fatalf("recompiling the same program changed output:\n%s\nvs\n%s", one, two)
	}
	if two[0].Result.Name != "T1" {
		t.Errorf("temporary counter not reset: %s", two[0].Result.Name)
	}
}

func TestCompileEmptyProgram(t *testing.T) {
	code := compileSource(t, "")
	if len(code) != 0 {
		t.Fatalf("empty program produced %d instructions", len(code))
	}
}

func TestIndicesAreSequential(t *testing.T) {
	code := compileSource(t, "x = 1 + 2; if (x < 3) { print x; } else { print 0; }")
	for i, in := range code {
		if in.Index != i {
			t.Errorf("instruction %d has index %d", i, in.Index)
		}
	}
}
