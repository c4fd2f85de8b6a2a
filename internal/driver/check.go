package driver

import (
	"ave/internal/diag"
	"ave/internal/sema"
)

// CheckResult — результат полного pipeline-а: лексер, парсер, чекер.
type CheckResult struct {
	*ParseResult
	Sema sema.Result
}

// HasError reports whether any phase recorded an error.
func (r *CheckResult) HasError() bool {
	return r.Bag.HasErrors() || r.Sema.HasError
}

// Check прогоняет файл с диска через весь фронтенд.
func Check(path string, maxDiagnostics int) (*CheckResult, error) {
	parsed, err := Parse(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return checkParsed(parsed), nil
}

// CheckSource проверяет строку из памяти.
func CheckSource(name, src string, maxDiagnostics int) *CheckResult {
	return checkParsed(ParseSource(name, src, maxDiagnostics))
}

func checkParsed(parsed *ParseResult) *CheckResult {
	res := sema.Check(parsed.Builder, parsed.Program, sema.Options{
		Reporter: diag.BagReporter{Bag: parsed.Bag},
		Registry: parsed.Registry,
	})
	return &CheckResult{
		ParseResult: parsed,
		Sema:        res,
	}
}
