// Package lexer scans Minispec source bytes into a token.Token stream.
package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"minispec/internal/source"
)

// Cursor is a byte position within a single source file.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

// NewCursor returns a cursor positioned at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Off: 0, Limit: limit}
}

// EOF reports whether the cursor has consumed the whole file.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt returns the byte n positions ahead of the cursor, or 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	off := c.Off + n
	if off >= c.Limit {
		return 0
	}
	return c.File.Content[off]
}

// Bump consumes and returns the current byte.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark is a saved cursor offset, used to compute the span of a scanned token.
type Mark uint32

// Mark saves the current offset.
func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom builds the span covering [m, current offset).
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset rewinds the cursor to a previously saved mark.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
