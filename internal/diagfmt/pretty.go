package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ave/internal/diag"
	"ave/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой печатает
// <path>:<line>:<col>: <SEV> <CODE>[<KIND>]: <message>,
// затем строку-контекст с подчёркиванием ^~~~ по span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	markColor = color.New(color.FgRed)
	noteColor = color.New(color.FgCyan)
)

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s[%s]: %s\n",
		file.Path, start.Line, start.Col,
		sev, d.Code.ID(), d.Code.Kind(), d.Message)

	printContext(w, file, d.Primary, start, end, opts)

	for _, note := range d.Notes {
		noteStart, _ := fs.Resolve(note.Span)
		label := "note:"
		if opts.Color {
			label = noteColor.Sprint(label)
		}
		fmt.Fprintf(w, "  %s %s (line %d)\n", label, note.Msg, noteStart.Line)
	}
}

// printContext печатает исходную строку и подчёркивание под span-ом.
// Ширина подчёркивания считается в экранных колонках.
func printContext(w io.Writer, file *source.File, sp source.Span, start, end source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" && start.Line != 1 {
		return
	}

	lineNo := fmt.Sprintf("%4d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", lineNo, line)

	// отступ до начала span-а в экранных колонках
	prefixEnd := int(start.Col) - 1
	if prefixEnd > len(line) {
		prefixEnd = len(line)
	}
	pad := runewidth.StringWidth(line[:prefixEnd])

	width := 1
	if sp.Len() > 1 && end.Line == start.Line {
		segEnd := int(end.Col) - 1
		if segEnd > len(line) {
			segEnd = len(line)
		}
		if segEnd > prefixEnd {
			width = runewidth.StringWidth(line[prefixEnd:segEnd])
		}
	}
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = markColor.Sprint(marker)
	}
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", len(lineNo)), strings.Repeat(" ", pad), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
