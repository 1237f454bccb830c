package value

import (
	"strings"

	"minispec/internal/ast"
)

// BasicError is one elaboration-time error: a message template anchored to
// the parse-tree node that produced it. $CTX in Message is substituted at
// render time with the quoted source text of Node.
type BasicError struct {
	Node    ast.Node
	Message string
}

// Render replaces $CTX with ctx, the quoted source text of e.Node.
func (e BasicError) Render(ctx string) string {
	return strings.ReplaceAll(e.Message, "$CTX", ctx)
}

// NewError builds a single-element KindError Value.
func NewError(node ast.Node, message string) Value {
	return Err(BasicError{Node: node, Message: message})
}
