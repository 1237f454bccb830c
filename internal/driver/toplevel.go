package driver

import (
	"fmt"
	"strconv"
	"strings"

	"minispec/internal/diag"
	"minispec/internal/lexer"
	"minispec/internal/source"
	"minispec/internal/token"
	"minispec/internal/value"
)

// parseTopLevelArg re-parses the CLI's topLevel string as a single varExpr
// (an identifier optionally followed by #(params)) per §6's "Top-level
// argument grammar": each top-level integer parameter must be an unsized
// literal, but nested types are allowed and recursively validated, e.g.
// "Shifter#(4)" or "g#(8)" or "Wrap#(Vector#(4, Bit#(8)))".
//
// On success it returns the bare name and the parsed parameter list ready
// to build a *value.ParametricUse; toks.Name alone (no '#') means a
// non-parametric reference, with a nil Params slice.
func parseTopLevelArg(fs *source.FileSet, raw string) (name string, params []value.ParamValue, err error) {
	id := fs.AddVirtual("<topLevel>", []byte(raw))
	toks := lexer.All(fs.Get(id))
	p := &topLevelParser{toks: toks}

	name, params, ok := p.varExpr()
	if !ok {
		return "", nil, fmt.Errorf("invalid topLevel argument %q: expected NAME or NAME#(params)", raw)
	}
	if p.peek().Kind != token.EOF {
		return "", nil, fmt.Errorf("invalid topLevel argument %q: unexpected trailing text after %q", raw, name)
	}
	return name, params, nil
}

type topLevelParser struct {
	toks []token.Token
	pos  int
}

func (p *topLevelParser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *topLevelParser) next() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// varExpr parses NAME ['#' '(' param (',' param)* ')'].
func (p *topLevelParser) varExpr() (name string, params []value.ParamValue, ok bool) {
	id := p.peek()
	if id.Kind != token.Ident {
		return "", nil, false
	}
	p.next()
	name = id.Text

	if p.peek().Kind != token.Hash {
		return name, nil, true
	}
	p.next()
	if p.peek().Kind != token.LParen {
		return "", nil, false
	}
	p.next()

	for {
		v, ok := p.param()
		if !ok {
			return "", nil, false
		}
		params = append(params, v)
		if p.peek().Kind == token.Comma {
			p.next()
			continue
		}
		break
	}
	if p.peek().Kind != token.RParen {
		return "", nil, false
	}
	p.next()
	return name, params, true
}

// param parses one actual parameter: an unsized integer literal, or a
// nested varExpr (a parametric type/module/function reference).
func (p *topLevelParser) param() (value.ParamValue, bool) {
	t := p.peek()
	switch t.Kind {
	case token.IntLit:
		p.next()
		n, err := parseUnsizedInt(t.Text)
		if err != nil {
			return value.ParamValue{}, false
		}
		return value.IntParam(n), true
	case token.Ident:
		name, nested, ok := p.varExpr()
		if !ok {
			return value.ParamValue{}, false
		}
		return value.UseParam(&value.ParametricUse{Name: name, Params: nested}), true
	default:
		return value.ParamValue{}, false
	}
}

// parseUnsizedInt parses an IntLit token's text the same way
// evalIntLiteral folds a literal during elaboration: a bare decimal, or a
// leading 'd/'b/'h base prefix with no width. A sized literal never
// reaches here (the lexer tags it SizedIntLit, a distinct token kind
// param() already rejects).
func parseUnsizedInt(text string) (int64, error) {
	if text == "" {
		return 0, fmt.Errorf("empty integer literal")
	}
	if text[0] == '\'' {
		if len(text) < 2 {
			return 0, fmt.Errorf("malformed integer literal %q", text)
		}
		var base int
		switch text[1] {
		case 'd':
			base = 10
		case 'b':
			base = 2
		case 'h':
			base = 16
		default:
			return 0, fmt.Errorf("malformed integer literal %q", text)
		}
		return strconv.ParseInt(text[2:], base, 64)
	}
	if strings.ContainsRune(text, '\'') {
		return 0, fmt.Errorf("sized literal %q is not allowed as a top-level parameter", text)
	}
	return strconv.ParseInt(text, 10, 64)
}

// reportBadTopLevelArg reports a §6 grammar violation against span (the
// whole translation unit's span, since the malformed string has no source
// position of its own).
func reportBadTopLevelArg(reporter diag.Reporter, span source.Span, raw string, cause error) {
	diag.ReportError(reporter, diag.BackTopLevelBadArg, span, fmt.Sprintf("invalid topLevel argument %q: %s", raw, cause)).Emit()
}
