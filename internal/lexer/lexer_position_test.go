package lexer

import "testing"

func TestTokenPositions(t *testing.T) {
	input := "int x;\nx = 42;\n"

	tests := []struct {
		expectedType   TokenType
		expectedLine   int
		expectedColumn int
	}{
		{INT, 1, 0},
		{IDENT, 1, 4},
		{SEMICOLON, 1, 5},
		{IDENT, 2, 0},
		{ASSIGN, 2, 2},
		{INT_LITERAL, 2, 4},
		{SEMICOLON, 2, 6},
		{EOF, 3, 0},
	}

	l, _ := newTestLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Pos.Line != tt.expectedLine {
			t.Errorf("tests[%d] (%s) - line wrong. expected=%d, got=%d",
				i, tok.Type, tt.expectedLine, tok.Pos.Line)
		}
		if tok.Pos.Column != tt.expectedColumn {
			t.Errorf("tests[%d] (%s) - column wrong. expected=%d, got=%d",
				i, tok.Type, tt.expectedColumn, tok.Pos.Column)
		}
	}
}

func TestTwoCharOperatorPosition(t *testing.T) {
	input := "a == b"

	l, _ := newTestLexer(input)
	l.NextToken() // a

	tok := l.NextToken()
	if tok.Type != EQ_EQ {
		t.Fatalf("expected EQ_EQ, got %q", tok.Type)
	}
	if tok.Pos.Column != 2 {
		t.Errorf("== column wrong. expected=2, got=%d", tok.Pos.Column)
	}

	tok = l.NextToken()
	if tok.Pos.Column != 5 {
		t.Errorf("b column wrong. expected=5, got=%d", tok.Pos.Column)
	}
}

// Coordinates must be monotonically non-decreasing in scan order.
func TestPositionsAreMonotonic(t *testing.T) {
	input := `int counter;
counter = 0;
while (counter < 10) {
	// comment line
	print counter;
	counter = counter + 1;
}
`
	l, _ := newTestLexer(input)

	prev := Position{Line: 1, Column: -1}
	for _, tok := range l.Tokens() {
		if tok.Pos.Line < prev.Line {
			t.Fatalf("line went backwards: %v after %v", tok.Pos, prev)
		}
		if tok.Pos.Line == prev.Line && tok.Pos.Column < prev.Column {
			t.Fatalf("column went backwards on line %d: %v after %v", tok.Pos.Line, tok.Pos, prev)
		}
		prev = tok.Pos
	}
}

func TestTabsCountAsSingleColumn(t *testing.T) {
	input := "\tx"

	l, _ := newTestLexer(input)
	tok := l.NextToken()
	if tok.Pos.Column != 1 {
		t.Errorf("after tab, column wrong. expected=1, got=%d", tok.Pos.Column)
	}
}
