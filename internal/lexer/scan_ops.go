package lexer

import "minispec/internal/token"

type opRule struct {
	text string
	kind token.Kind
}

// Longest-match-first table of multi-byte operators and punctuation.
var opTable = []opRule{
	{"**", token.StarStar},
	{"<<", token.ShiftLeft},
	{">>", token.ShiftRight},
	{"^~", token.CaretTilde},
	{"~^", token.TildeCaret},
	{"&&", token.AmpAmp},
	{"||", token.PipePipe},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<-", token.LtMinus},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"!", token.Bang},
	{"<", token.Lt},
	{">", token.Gt},
	{"=", token.Assign},
	{"#", token.Hash},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"?", token.Question},
	{":", token.Colon},
	{";", token.Semicolon},
	{",", token.Comma},
	{".", token.Dot},
	{"'", token.Apostrophe},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	m := lx.cursor.Mark()
	for _, rule := range opTable {
		if lx.matchAt(rule.text) {
			for i := 0; i < len(rule.text); i++ {
				lx.cursor.Bump()
			}
			return token.Token{Kind: rule.kind, Span: lx.cursor.SpanFrom(m), Text: rule.text}
		}
	}
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) matchAt(s string) bool {
	for i := 0; i < len(s); i++ {
		if lx.cursor.PeekAt(uint32(i)) != s[i] {
			return false
		}
	}
	return true
}
