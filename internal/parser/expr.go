package parser

import (
	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/source"
	"minispec/internal/token"
)

// precedence levels, lowest to highest. Ops not listed bind tighter than
// any binary operator (unary, postfix, primary).
var binPrec = map[token.Kind]int{
	token.PipePipe: 1,
	token.AmpAmp:   2,
	token.Pipe:     3,
	token.Caret:    3,
	token.CaretTilde: 3,
	token.TildeCaret: 3,
	token.Amp:      4,
	token.EqEq:     5,
	token.BangEq:   5,
	token.Lt:       6,
	token.LtEq:     6,
	token.Gt:       6,
	token.GtEq:     6,
	token.ShiftLeft:  7,
	token.ShiftRight: 7,
	token.Plus:  8,
	token.Minus: 8,
	token.Star:    9,
	token.Slash:   9,
	token.Percent: 9,
	token.StarStar: 10,
}

// parseExpr parses a full expression, including the ternary conditional
// at the lowest precedence above logical-or.
func (p *Parser) parseExpr() ast.Expr {
	cond := p.parseBinary(1)
	if !p.at(token.Question) {
		return cond
	}
	start := cond.Span()
	p.advance()
	then := p.parseExpr()
	var els ast.Expr
	if _, ok := p.expect(token.Colon, "':'"); ok {
		els = p.parseExpr()
	}
	sp := start
	if els != nil {
		sp = sp.Cover(els.Span())
	}
	return &ast.CondExpr{Sp: sp, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		op := p.lx.Peek()
		prec, ok := binPrec[op.Kind]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{Sp: left.Span().Cover(right.Span()), Op: op.Text, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.atAny(token.Minus, token.Bang, token.Tilde) {
		op := p.advance()
		arg := p.parseUnary()
		return &ast.UnaryExpr{Sp: op.Span.Cover(arg.Span()), Op: op.Text, Arg: arg}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			name := ""
			end := p.lx.Peek().Span
			if tok, ok := p.expect(token.Ident, "field name"); ok {
				name = tok.Text
				end = tok.Span
			}
			e = &ast.FieldExpr{Sp: e.Span().Cover(end), Base: e, Name: name}
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit, token.SizedIntLit:
		p.advance()
		return &ast.IntLiteral{Sp: tok.Span, Text: tok.Text}
	case token.StringLit:
		p.advance()
		return &ast.StrLiteral{Sp: tok.Span, Value: unquote(tok.Text)}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLiteral{Sp: tok.Span, Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLiteral{Sp: tok.Span, Value: false}
	case token.KwLog2:
		return p.parseCallLike(tok)
	case token.Ident:
		return p.parseIdentOrCall()
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		if rp, ok := p.expect(token.RParen, "')'"); ok {
			inner = withSpan(inner, tok.Span.Cover(rp.Span))
		}
		return inner
	case token.KwCase:
		return p.parseCaseExpr()
	default:
		p.errorf(diag.SynUnexpectedToken, tok.Span, "expected an expression, got %q", tok.Text)
		p.advance()
		return &ast.IntLiteral{Sp: tok.Span, Text: "0"}
	}
}

// withSpan rewraps an expression's span without altering its kind; used to
// widen a parenthesized sub-expression's span to include the parens.
func withSpan(e ast.Expr, sp source.Span) ast.Expr {
	switch v := e.(type) {
	case *ast.IntLiteral:
		v.Sp = sp
		return v
	case *ast.StrLiteral:
		v.Sp = sp
		return v
	case *ast.BoolLiteral:
		v.Sp = sp
		return v
	case *ast.VarExpr:
		v.Sp = sp
		return v
	case *ast.UnaryExpr:
		v.Sp = sp
		return v
	case *ast.BinaryExpr:
		v.Sp = sp
		return v
	case *ast.CondExpr:
		v.Sp = sp
		return v
	case *ast.CallExpr:
		v.Sp = sp
		return v
	case *ast.FieldExpr:
		v.Sp = sp
		return v
	case *ast.CaseExpr:
		v.Sp = sp
		return v
	default:
		return e
	}
}

func (p *Parser) parseIdentOrCall() ast.Expr {
	tok := p.advance()
	return p.parseCallLike(tok)
}

// parseCallLike continues parsing after an identifier-like token that may
// be a bare variable reference or the callee of a call expression, with an
// optional #(...) explicit type-parameter list before the argument list.
func (p *Parser) parseCallLike(tok token.Token) ast.Expr {
	var typeArgs []ast.Expr
	if p.at(token.Hash) {
		p.advance()
		if _, ok := p.expect(token.LParen, "'('"); ok {
			typeArgs = p.parseExprList(token.RParen)
			p.expect(token.RParen, "')'")
		}
	}
	if !p.at(token.LParen) {
		if len(typeArgs) == 0 {
			return &ast.VarExpr{Sp: tok.Span, Name: tok.Text}
		}
		return &ast.CallExpr{Sp: tok.Span, Callee: tok.Text, TypeArgs: typeArgs}
	}
	p.advance()
	args := p.parseExprList(token.RParen)
	end := tok.Span
	if rp, ok := p.expect(token.RParen, "')'"); ok {
		end = rp.Span
	}
	return &ast.CallExpr{Sp: tok.Span.Cover(end), Callee: tok.Text, TypeArgs: typeArgs, Args: args}
}

func (p *Parser) parseExprList(end token.Kind) []ast.Expr {
	var out []ast.Expr
	if p.at(end) {
		return out
	}
	out = append(out, p.parseExpr())
	for p.at(token.Comma) {
		p.advance()
		out = append(out, p.parseExpr())
	}
	return out
}

// parseCaseExpr parses `case (Subject) matches TAG: Value; ... default: Value; endcase`.
func (p *Parser) parseCaseExpr() ast.Expr {
	start := p.advance() // 'case'
	var subject ast.Expr
	if _, ok := p.expect(token.LParen, "'('"); ok {
		subject = p.parseExpr()
		p.expect(token.RParen, "')'")
	}
	p.expect(token.KwMatches, "'matches'")
	var arms []ast.CaseArm
	var def ast.Expr
	for !p.at(token.KwEndcase) && !p.at(token.EOF) {
		if p.at(token.KwDefault) {
			p.advance()
			p.expect(token.Colon, "':'")
			def = p.parseExpr()
			p.expect(token.Semicolon, "';'")
			continue
		}
		armStart := p.lx.Peek()
		pattern, binds := p.parsePattern()
		p.expect(token.Colon, "':'")
		val := p.parseExpr()
		endSp := val.Span()
		if semi, ok := p.expect(token.Semicolon, "';'"); ok {
			endSp = semi.Span
		}
		arms = append(arms, ast.CaseArm{Sp: armStart.Span.Cover(endSp), Pattern: pattern, Binds: binds, Value: val})
	}
	end := p.lx.Peek().Span
	if ec, ok := p.expect(token.KwEndcase, "'endcase'"); ok {
		end = ec.Span
	}
	return &ast.CaseExpr{Sp: start.Span.Cover(end), Subject: subject, Arms: arms, Default: def}
}

// parsePattern parses a case-arm pattern: a bare tag name, or
// Tag.binding for a payload-carrying tag.
func (p *Parser) parsePattern() (string, []string) {
	tok, ok := p.expect(token.Ident, "pattern tag")
	if !ok {
		return "", nil
	}
	name := tok.Text
	var binds []string
	for p.at(token.Dot) {
		p.advance()
		if id, ok := p.expect(token.Ident, "binding name"); ok {
			binds = append(binds, id.Text)
		}
	}
	return name, binds
}

func unquote(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' {
		inner := raw[1:]
		if len(inner) > 0 && inner[len(inner)-1] == '"' {
			inner = inner[:len(inner)-1]
		}
		return inner
	}
	return raw
}
