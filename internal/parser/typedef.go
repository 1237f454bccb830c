package parser

import (
	"minispec/internal/ast"
	"minispec/internal/token"
)

// parseTypeDef parses the three `typedef` shapes:
//
//	typedef Target Name;                       (synonym)
//	typedef enum { Tag1, Tag2 { Fields } } Name; (enum / tagged union)
//	typedef struct { Fields } Name;            (struct)
func (p *Parser) parseTypeDef() (ast.Item, bool) {
	kw := p.advance()
	switch p.lx.Peek().Kind {
	case token.KwEnum:
		return p.parseEnumDef(kw)
	case token.KwStruct:
		return p.parseStructDef(kw)
	default:
		return p.parseSynonymDef(kw)
	}
}

func (p *Parser) parseSynonymDef(kw token.Token) (ast.Item, bool) {
	target := p.parseTypeExpr()
	name := ""
	if tok, ok := p.expect(token.Ident, "typedef name"); ok {
		name = tok.Text
	}
	end := p.lx.Peek().Span
	if semi, ok := p.expect(token.Semicolon, "';'"); ok {
		end = semi.Span
	}
	return &ast.TypeDef{Sp: kw.Span.Cover(end), Name: name, Kind: ast.TypeDefSynonym, Target: target}, true
}

func (p *Parser) parseStructDef(kw token.Token) (ast.Item, bool) {
	p.advance() // 'struct'
	p.expect(token.LBrace, "'{'")
	var fields []ast.StructField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fields = append(fields, p.parseStructField())
	}
	p.expect(token.RBrace, "'}'")
	name := ""
	if tok, ok := p.expect(token.Ident, "typedef name"); ok {
		name = tok.Text
	}
	end := p.lx.Peek().Span
	if semi, ok := p.expect(token.Semicolon, "';'"); ok {
		end = semi.Span
	}
	return &ast.TypeDef{Sp: kw.Span.Cover(end), Name: name, Kind: ast.TypeDefStruct, Fields: fields}, true
}

func (p *Parser) parseStructField() ast.StructField {
	start := p.lx.Peek()
	te := p.parseTypeExpr()
	name := ""
	end := te.Span()
	if tok, ok := p.expect(token.Ident, "field name"); ok {
		name = tok.Text
		end = tok.Span
	}
	if semi, ok := p.expect(token.Semicolon, "';'"); ok {
		end = semi.Span
	}
	return ast.StructField{Sp: start.Span.Cover(end), Type: te, Name: name}
}

func (p *Parser) parseEnumDef(kw token.Token) (ast.Item, bool) {
	p.advance() // 'enum'
	p.expect(token.LBrace, "'{'")
	var tags []ast.EnumTag
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		tags = append(tags, p.parseEnumTag())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBrace, "'}'")
	name := ""
	if tok, ok := p.expect(token.Ident, "typedef name"); ok {
		name = tok.Text
	}
	end := p.lx.Peek().Span
	if semi, ok := p.expect(token.Semicolon, "';'"); ok {
		end = semi.Span
	}
	return &ast.TypeDef{Sp: kw.Span.Cover(end), Name: name, Kind: ast.TypeDefEnum, Tags: tags}, true
}

func (p *Parser) parseEnumTag() ast.EnumTag {
	tok, ok := p.expect(token.Ident, "tag name")
	if !ok {
		return ast.EnumTag{}
	}
	tag := ast.EnumTag{Sp: tok.Span, Name: tok.Text}
	if p.at(token.LBrace) {
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			tag.Fields = append(tag.Fields, p.parseStructField())
		}
		end := p.lx.Peek().Span
		if rb, ok := p.expect(token.RBrace, "'}'"); ok {
			end = rb.Span
		}
		tag.Sp = tag.Sp.Cover(end)
	}
	return tag
}
