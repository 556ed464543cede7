package ast

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-minilang/internal/lexer"
)

func ident(name string) *Identifier {
	return &Identifier{
		Token: lexer.NewToken(lexer.IDENT, name, lexer.Position{Line: 1}),
		Value: name,
	}
}

func intLit(v int32, literal string) *IntegerLiteral {
	return &IntegerLiteral{
		Token: lexer.NewToken(lexer.INT_LITERAL, literal, lexer.Position{Line: 1}),
		Value: v,
	}
}

func binary(op string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{
		Token:    lexer.NewToken(lexer.PLUS, op, lexer.Position{Line: 1}),
		Operator: op,
		Left:     left,
		Right:    right,
	}
}

func TestString(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&VarDeclStatement{
				Token: lexer.NewToken(lexer.INT, "int", lexer.Position{Line: 1}),
				Name:  ident("x"),
			},
			&AssignStatement{
				Token: ident("x").Token,
				Name:  ident("x"),
				Value: binary("+", intLit(2, "2"), binary("*", intLit(3, "3"), intLit(4, "4"))),
			},
			&PrintStatement{
				Token: lexer.NewToken(lexer.PRINT, "print", lexer.Position{Line: 1}),
				Value: ident("x"),
			},
		},
	}

	expected := "int x;x = (2 + (3 * 4));print x;"
	if got := program.String(); got != expected {
		t.Errorf("String() wrong.\nexpected=%q\ngot=     %q", expected, got)
	}
}

func TestSprintIndentedTree(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&IfStatement{
				Token:     lexer.NewToken(lexer.IF, "if", lexer.Position{Line: 1}),
				Condition: binary("<", ident("a"), intLit(10, "10")),
				Then: &Program{Statements: []Statement{
					&PrintStatement{
						Token: lexer.NewToken(lexer.PRINT, "print", lexer.Position{Line: 1}),
						Value: intLit(1, "1"),
					},
				}},
				Else: &Program{Statements: []Statement{
					&PrintStatement{
						Token: lexer.NewToken(lexer.PRINT, "print", lexer.Position{Line: 1}),
						Value: intLit(2, "2"),
					},
				}},
			},
		},
	}

	expected := strings.Join([]string{
		"Program",
		"  If",
		"    Condition",
		"      BinaryOp <",
		"        Identifier a",
		"        IntLiteral 10",
		"    Then",
		"      Print",
		"        IntLiteral 1",
		"    Else",
		"      Print",
		"        IntLiteral 2",
		"",
	}, "\n")

	if got := Sprint(program); got != expected {
		t.Errorf("Sprint() wrong.\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestEmptyProgram(t *testing.T) {
	program := &Program{}

	if program.String() != "" {
		t.Errorf("empty program String() = %q", program.String())
	}
	if program.TokenLiteral() != "" {
		t.Errorf("empty program TokenLiteral() = %q", program.TokenLiteral())
	}
	pos := program.Pos()
	if pos.Line != 1 || pos.Column != 0 {
		t.Errorf("empty program Pos() = %v", pos)
	}
	if got := Sprint(program); got != "Program\n" {
		t.Errorf("empty program Sprint() = %q", got)
	}
}
