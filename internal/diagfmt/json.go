package diagfmt

import (
	"encoding/json"
	"io"

	"ave/internal/diag"
	"ave/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Kind     string       `json:"kind"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	ErrorCount  int              `json:"error_count"`
}

// JSON сериализует диагностики для инструментов.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Kind:     d.Code.Kind().String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: locationJSON(d.Primary, fs),
		}
		for _, note := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{
				Message:  note.Msg,
				Location: locationJSON(note.Span, fs),
			})
		}
		out.Diagnostics = append(out.Diagnostics, dj)
		if d.Severity >= diag.SevError {
			out.ErrorCount++
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func locationJSON(sp source.Span, fs *source.FileSet) LocationJSON {
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	return LocationJSON{
		File:      file.Path,
		StartByte: sp.Start,
		EndByte:   sp.End,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}
