package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\n"))
	if !changed {
		t.Fatal("expected a change")
	}
	if !bytes.Equal(out, []byte("a\nb\rc\n")) {
		t.Errorf("got %q", out)
	}

	plain := []byte("no carriage returns")
	if _, changed := normalizeCRLF(plain); changed {
		t.Error("content without \\r must pass through")
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'})
	if !had || string(out) != "hi" {
		t.Errorf("BOM not stripped: %q", out)
	}
	if _, had := removeBOM([]byte("hi")); had {
		t.Error("false positive BOM")
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\n\nef")
	idx := buildLineIndex(content)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
		{8, 4, 2},
	}
	for _, tc := range cases {
		got := toLineCol(idx, tc.off)
		if got.Line != tc.line || got.Col != tc.col {
			t.Errorf("toLineCol(%d) = %d:%d, want %d:%d", tc.off, got.Line, got.Col, tc.line, tc.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("t.ave", []byte("first\nsecond\nthird")))

	if got := file.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := file.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := file.GetLine(9); got != "" {
		t.Errorf("out-of-range line = %q, want empty", got)
	}
}

func TestResolveSpan(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.ave", []byte("let a = 1\nlet b = 2\n"))

	// span для "b" на второй строке
	start, end := fs.Resolve(Span{File: id, Start: 14, End: 15})
	if start.Line != 2 || start.Col != 5 {
		t.Errorf("start = %d:%d, want 2:5", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 6 {
		t.Errorf("end = %d:%d, want 2:6", end.Line, end.Col)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("hello")
	b := in.Intern("hello")
	c := in.Intern("world")

	if a != b {
		t.Error("equal strings must share an id")
	}
	if a == c {
		t.Error("different strings must differ")
	}
	if got := in.MustLookup(a); got != "hello" {
		t.Errorf("lookup = %q", got)
	}
	if in.Intern("") != NoStringID {
		t.Error("empty string is the zero id")
	}
}
