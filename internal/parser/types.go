package parser

import (
	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/token"
)

// parseTypeExpr parses a type name with an optional #(...) parameter list:
// Integer, Bool, String, Bit#(n), Vector#(n,T), or a user typedef name.
func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	start := p.lx.Peek()
	name, ok := p.typeName()
	if !ok {
		p.errorf(diag.SynUnexpectedToken, start.Span, "expected a type, got %q", start.Text)
		p.advance()
		return &ast.TypeExpr{Sp: start.Span, Name: start.Text}
	}
	te := &ast.TypeExpr{Sp: start.Span, Name: name}
	if p.at(token.Hash) {
		p.advance()
		if _, ok := p.expect(token.LParen, "'('"); ok {
			if !p.at(token.RParen) {
				te.TypeArgs = append(te.TypeArgs, p.parseExpr())
				for p.at(token.Comma) {
					p.advance()
					te.TypeArgs = append(te.TypeArgs, p.parseExpr())
				}
			}
			if rp, ok := p.expect(token.RParen, "')'"); ok {
				te.Sp = te.Sp.Cover(rp.Span)
			}
		}
	}
	return te
}

func (p *Parser) typeName() (string, bool) {
	switch p.lx.Peek().Kind {
	case token.KwInteger, token.KwBit, token.KwBool, token.KwString, token.KwVector, token.Ident:
		tok := p.advance()
		return tok.Text, true
	default:
		return "", false
	}
}
