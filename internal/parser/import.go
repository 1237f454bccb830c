package parser

import (
	"minispec/internal/ast"
	"minispec/internal/token"
)

// parseImport parses `import Name;` or `bsvimport Name;`.
func (p *Parser) parseImport() *ast.Import {
	kw := p.advance()
	isBSV := kw.Kind == token.KwBsvImport
	name := ""
	if tok, ok := p.expect(token.Ident, "module name"); ok {
		name = tok.Text
	}
	end := p.lx.Peek().Span
	if semi, ok := p.expect(token.Semicolon, "';'"); ok {
		end = semi.Span
	}
	return ast.NewImport(kw.Span.Cover(end), name, isBSV)
}
