package lexer

import (
	"minispec/internal/token"
)

func isDecDigit(b byte) bool { return b >= '0' && b <= '9' }

func isBasePrefix(b byte) bool { return b == 'd' || b == 'b' || b == 'h' }

// scanNumber scans an MS integer literal. Two shapes are recognized:
//
//	unsized:  [0-9][0-9_]*                      (plain decimal)
//	          '[dbh][0-9a-fA-F_]+                (based, no explicit width)
//	sized:    [0-9]+'[dbh][0-9a-fA-F_]+          (explicit bit width; kept as raw text)
//
// Only the unsized form is ever evaluated by the elaborator (§4.4); sized
// literals are passed through untouched for the backend to interpret.
func (lx *Lexer) scanNumber() token.Token {
	m := lx.cursor.Mark()
	for isDecDigit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	sized := lx.cursor.SpanFrom(m).Len() > 0
	if lx.cursor.Peek() == '\'' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'd', 'b', 'h':
			lx.cursor.Bump()
		}
		for isHexDigitOrSep(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(m)
		text := string(lx.file.Content[sp.Start:sp.End])
		kind := token.IntLit
		if sized {
			kind = token.SizedIntLit
		}
		return token.Token{Kind: kind, Span: sp, Text: text}
	}
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func isHexDigitOrSep(b byte) bool {
	return isDecDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') || b == '_'
}
