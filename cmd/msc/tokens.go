package main

import (
	"fmt"

	"minispec/internal/lexer"
	"minispec/internal/source"
	"minispec/internal/token"
)

func runTokens(path string) error {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return err
	}
	file := fs.Get(id)

	for _, tok := range lexer.All(file) {
		start, _ := fs.Resolve(tok.Span)
		text := tok.Text
		if tok.Kind == token.EOF {
			text = ""
		}
		fmt.Printf("%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, text)
	}
	return nil
}
