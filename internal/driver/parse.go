package driver

import (
	"ave/internal/ast"
	"ave/internal/diag"
	"ave/internal/parser"
	"ave/internal/source"
	"ave/internal/types"
)

// ParseResult — результат разбора одного файла.
type ParseResult struct {
	*TokenizeResult
	Builder  *ast.Builder
	Registry *types.Registry
	Program  ast.Program
}

// HasError reports whether lexing or parsing recorded any error.
func (r *ParseResult) HasError() bool {
	return r.Bag.HasErrors()
}

// Parse — лексер и парсер над файлом с диска.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	tok, err := Tokenize(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return parseTokens(tok), nil
}

// ParseSource разбирает строку из памяти.
func ParseSource(name, src string, maxDiagnostics int) *ParseResult {
	return parseTokens(TokenizeSource(name, src, maxDiagnostics))
}

func parseTokens(tok *TokenizeResult) *ParseResult {
	// один интернер на весь pipeline: имена в AST, реестре типов и таблице
	// символов сравниваются по ID
	strings := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{}, strings)
	reg := types.NewRegistry(strings)

	res := parser.Parse(tok.File, tok.Tokens, builder, reg, parser.Options{
		Reporter: diag.BagReporter{Bag: tok.Bag},
	})

	return &ParseResult{
		TokenizeResult: tok,
		Builder:        builder,
		Registry:       reg,
		Program:        res.Program,
	}
}
