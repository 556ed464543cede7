package lexer

import "testing"

func TestBOMIsStripped(t *testing.T) {
	input := "\xEF\xBB\xBFint x;"

	l, sink := newTestLexer(input)

	tok := l.NextToken()
	if tok.Type != INT {
		t.Fatalf("expected INT after BOM, got %q (literal=%q)", tok.Type, tok.Literal)
	}
	if tok.Pos.Line != 1 || tok.Pos.Column != 0 {
		t.Errorf("first token position wrong. expected 1:0, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	if sink.HasErrors() {
		t.Errorf("BOM caused lexical errors")
	}
}

func TestBOMOnlyInput(t *testing.T) {
	l, _ := newTestLexer("\xEF\xBB\xBF")

	if tok := l.NextToken(); tok.Type != EOF {
		t.Fatalf("expected EOF for BOM-only input, got %q", tok.Type)
	}
}

func TestBOMNotAtStartIsError(t *testing.T) {
	l, sink := newTestLexer("int\xEF\xBB\xBF x;")
	l.Run()

	if !sink.HasErrors() {
		t.Fatalf("expected a lexical error for a BOM in the middle of the input")
	}
}
