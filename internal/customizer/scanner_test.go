package customizer

import "testing"

func TestMaskLine_LineComment(t *testing.T) {
	masked, st := maskLine("x = 5; // [1:10]", lineState{})

	if st.inBlockComment {
		t.Error("line comment must not enter block-comment state")
	}
	if masked.commentStart != 7 {
		t.Errorf("expected comment start 7, got %d", masked.commentStart)
	}
	if got := masked.code[:7]; got != "x = 5; " {
		t.Errorf("code portion altered: %q", got)
	}
	if braceDelta(masked.code) != 0 {
		t.Errorf("unexpected brace delta in %q", masked.code)
	}
}

func TestMaskLine_StringContentsMasked(t *testing.T) {
	masked, _ := maskLine(`label = "{not a brace}";`, lineState{})

	if d := braceDelta(masked.code); d != 0 {
		t.Errorf("braces inside string counted: delta %d", d)
	}
}

func TestMaskLine_EscapedQuote(t *testing.T) {
	// The escaped quote must not end the string early; the brace after
	// it is still string content.
	masked, _ := maskLine(`s = "a\"b{"; y = 1;`, lineState{})

	if d := braceDelta(masked.code); d != 0 {
		t.Errorf("escaped quote ended string early: delta %d", d)
	}
	if masked.commentStart != -1 {
		t.Errorf("no comment on line, got start %d", masked.commentStart)
	}
}

func TestMaskLine_BlockCommentSpansLines(t *testing.T) {
	st := lineState{}
	var masked maskedLine

	masked, st = maskLine("code(); /* begin", st)
	if !st.inBlockComment {
		t.Fatal("expected to be inside block comment")
	}
	masked, st = maskLine("{ { { all suppressed", st)
	if !st.inBlockComment {
		t.Fatal("block comment must persist across lines")
	}
	if d := braceDelta(masked.code); d != 0 {
		t.Errorf("braces inside block comment counted: delta %d", d)
	}
	masked, st = maskLine("end */ x = {", st)
	if st.inBlockComment {
		t.Error("block comment should have closed")
	}
	if d := braceDelta(masked.code); d != 1 {
		t.Errorf("expected delta 1 after comment close, got %d", d)
	}
}

func TestMaskLine_CommentInsideString(t *testing.T) {
	masked, st := maskLine(`url = "http://example.com";`, lineState{})

	if masked.commentStart != -1 {
		t.Errorf("// inside string treated as comment at %d", masked.commentStart)
	}
	if st.inBlockComment {
		t.Error("unexpected block-comment state")
	}
}

func TestMaskLine_SingleQuotedString(t *testing.T) {
	masked, _ := maskLine(`s = 'a{b'; // note`, lineState{})

	if d := braceDelta(masked.code); d != 0 {
		t.Errorf("single-quoted string content counted: delta %d", d)
	}
	if masked.commentStart == -1 {
		t.Error("trailing comment not found")
	}
}
