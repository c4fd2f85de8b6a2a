package diagfmt

import (
	"strings"
	"testing"

	"ave/internal/diag"
	"ave/internal/source"
)

func TestPrettyRendersLineAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.ave", []byte("let a = 'oops\nlet b = 2\n"))

	bag := diag.NewBag(4)
	// span строки 'oops (байты 8-13)
	bag.Add(diag.NewError(diag.LexUnterminatedString,
		source.Span{File: id, Start: 8, End: 13}, "Unterminated string literal"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Color: false})
	out := sb.String()

	if !strings.Contains(out, "demo.ave:1:9: ERROR AVE1002[SyntaxError]: Unterminated string literal") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "let a = 'oops") {
		t.Errorf("missing source context:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~") {
		t.Errorf("missing caret underline:\n%s", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.ave", []byte("let a = 1\n"))

	bag := diag.NewBag(4)
	d := diag.NewError(diag.SemaCannotAssign, source.Span{File: id, Start: 4, End: 5}, "boom").
		WithNote(source.Span{File: id, Start: 0, End: 3}, "declared here")
	bag.Add(d)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	if !strings.Contains(sb.String(), "note: declared here") {
		t.Errorf("missing note:\n%s", sb.String())
	}
}

func TestJSONShape(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.ave", []byte("x\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.RefUndefined, source.Span{File: id, Start: 0, End: 1}, "'x' is not defined"))

	var sb strings.Builder
	if err := JSON(&sb, bag, fs); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`"kind": "ReferenceError"`,
		`"code": "AVE3501"`,
		`"start_line": 1`,
		`"error_count": 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s:\n%s", want, out)
		}
	}
}
