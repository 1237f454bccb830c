package lexer

import (
	"minispec/internal/source"
	"minispec/internal/token"
)

// Lexer scans one source.File into a sequence of token.Tokens, skipping
// whitespace and comments as it goes.
type Lexer struct {
	file   *source.File
	cursor Cursor
	look   *token.Token
}

// New returns a lexer over the given file.
func New(file *source.File) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file)}
}

// Next returns the next significant token, or an EOF token once the file is
// exhausted (Next keeps returning EOF afterwards).
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(lx.cursor.Mark())}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDecDigit(ch):
		return lx.scanNumber()
	case ch == '\'' && isBasePrefix(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

func (lx *Lexer) skipTrivia() {
	for {
		switch {
		case lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' || lx.cursor.Peek() == '\r' || lx.cursor.Peek() == '\n':
			lx.cursor.Bump()
		case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for !lx.cursor.EOF() && !(lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/') {
				lx.cursor.Bump()
			}
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

// All lexes the entire file into a token slice terminated by a single EOF token.
func All(file *source.File) []token.Token {
	lx := New(file)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}
