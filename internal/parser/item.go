package parser

import (
	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/token"
)

func (p *Parser) parseItem() (ast.Item, bool) {
	switch p.lx.Peek().Kind {
	case token.KwModule:
		return p.parseModuleDef()
	case token.KwFunction:
		return p.parseFunctionDef()
	case token.KwTypedef:
		return p.parseTypeDef()
	default:
		tok := p.lx.Peek()
		p.errorf(diag.SynUnexpectedTopLevel, tok.Span, "unexpected top-level construct %q", tok.Text)
		p.advance()
		return nil, false
	}
}

// parseParamList parses a `#(params)` list shared by module and function
// headers. Each entry is either `Type name` or a bare type-parameter name.
func (p *Parser) parseParamList() []ast.Param {
	if !p.at(token.Hash) {
		return nil
	}
	p.advance()
	p.expect(token.LParen, "'('")
	var out []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		out = append(out, p.parseOneParam())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	return out
}

// parseArgList parses a value-argument list: `(Type name, ...)`.
func (p *Parser) parseArgList() []ast.Param {
	p.expect(token.LParen, "'('")
	var out []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		out = append(out, p.parseOneParam())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	return out
}

func (p *Parser) parseOneParam() ast.Param {
	start := p.lx.Peek()
	// A bare type-parameter name is a lone identifier followed by ',' or ')'.
	if p.at(token.Ident) {
		save := *p.lx
		name := p.advance().Text
		if p.at(token.Comma) || p.at(token.RParen) {
			return ast.Param{Sp: start.Span, Name: name}
		}
		*p.lx = save
	}
	te := p.parseTypeExpr()
	name := ""
	end := te.Span()
	if tok, ok := p.expect(token.Ident, "parameter name"); ok {
		name = tok.Text
		end = tok.Span
	}
	return ast.Param{Sp: start.Span.Cover(end), Type: te, Name: name}
}

func (p *Parser) parseModuleDef() (ast.Item, bool) {
	kw := p.advance()
	name := ""
	if tok, ok := p.expect(token.Ident, "module name"); ok {
		name = tok.Text
	}
	typeParams := p.parseParamList()
	var iface string
	first := p.parseArgList()
	args := first
	if p.at(token.LParen) {
		// Interface-typed constructor: `module mkFoo(IfaceName)(ArgType a)`.
		// The first parenthesized group held only the bare interface name.
		if len(first) == 1 {
			iface = first[0].Name
		}
		args = p.parseArgList()
	}
	p.expect(token.Semicolon, "';'")

	md := &ast.ModuleDef{Name: name, TypeParams: typeParams, Interface: iface, Args: args}
	for !p.at(token.KwEndmodule) && !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.KwRule:
			r := p.parseRuleDef()
			md.Rules = append(md.Rules, r)
		case token.KwMethod:
			m := p.parseMethodDef()
			md.Methods = append(md.Methods, m)
		case token.KwLet:
			st, ok := p.parseLetBinding()
			if ok {
				md.Body = append(md.Body, st)
			}
		case token.KwInput:
			st, ok := p.parseInputDecl()
			if ok {
				md.Body = append(md.Body, st)
			}
		case token.KwInteger, token.KwBit, token.KwBool, token.KwString, token.KwVector, token.Ident:
			st, ok := p.parseVarBindingOrSubmodule()
			if ok {
				md.Body = append(md.Body, st)
			} else {
				p.resyncStmt(token.KwEndmodule, token.KwRule, token.KwMethod)
			}
		default:
			tok := p.lx.Peek()
			p.errorf(diag.SynUnexpectedToken, tok.Span, "unexpected token %q in module body", tok.Text)
			p.resyncStmt(token.KwEndmodule, token.KwRule, token.KwMethod)
		}
	}
	end := kw.Span
	if ek, ok := p.expect(token.KwEndmodule, "'endmodule'"); ok {
		end = ek.Span
	}
	md.Sp = kw.Span.Cover(end)
	return md, true
}

func (p *Parser) parseRuleDef() *ast.RuleDef {
	kw := p.advance()
	name := ""
	if tok, ok := p.expect(token.Ident, "rule name"); ok {
		name = tok.Text
	}
	var cond ast.Expr
	if p.at(token.LParen) {
		p.advance()
		cond = p.parseExpr()
		p.expect(token.RParen, "')'")
	}
	p.expect(token.Semicolon, "';'")
	body := p.parseStmts(token.KwEndrule)
	end := kw.Span
	if ek, ok := p.expect(token.KwEndrule, "'endrule'"); ok {
		end = ek.Span
	}
	return &ast.RuleDef{Sp: kw.Span.Cover(end), Name: name, Cond: cond, Body: body}
}

func (p *Parser) parseMethodDef() *ast.MethodDef {
	kw := p.advance()
	isAction := false
	var retType *ast.TypeExpr
	switch p.lx.Peek().Kind {
	case token.KwAction:
		p.advance()
		isAction = true
	case token.KwActionvalue:
		p.advance()
		isAction = true
		if p.at(token.Hash) {
			retType = p.parseTypeExprSuffix()
		}
	default:
		retType = p.parseTypeExpr()
	}
	name := ""
	if tok, ok := p.expect(token.Ident, "method name"); ok {
		name = tok.Text
	}
	params := p.parseArgList()
	p.expect(token.Semicolon, "';'")
	body := p.parseStmts(token.KwEndmethod)
	end := kw.Span
	if ek, ok := p.expect(token.KwEndmethod, "'endmethod'"); ok {
		end = ek.Span
	}
	return &ast.MethodDef{Sp: kw.Span.Cover(end), Name: name, ReturnType: retType, Params: params, Body: body, IsAction: isAction}
}

// parseTypeExprSuffix parses just the `#(T)` suffix of ActionValue#(T),
// returning T as the method's logical return type.
func (p *Parser) parseTypeExprSuffix() *ast.TypeExpr {
	p.advance() // '#'
	p.expect(token.LParen, "'('")
	te := p.parseTypeExpr()
	p.expect(token.RParen, "')'")
	return te
}

func (p *Parser) parseFunctionDef() (ast.Item, bool) {
	kw := p.advance()
	retType := p.parseTypeExpr()
	name := ""
	if tok, ok := p.expect(token.Ident, "function name"); ok {
		name = tok.Text
	}
	typeParams := p.parseParamList()
	params := p.parseArgList()
	p.expect(token.Semicolon, "';'")
	body := p.parseStmts(token.KwEndfunction)
	end := kw.Span
	if ek, ok := p.expect(token.KwEndfunction, "'endfunction'"); ok {
		end = ek.Span
	}
	fn := &ast.FunctionDef{
		Sp: kw.Span.Cover(end), Name: name, TypeParams: typeParams,
		ReturnType: retType, Params: params, Body: body,
	}
	return fn, true
}
