// Package parser implements a hand-written recursive-descent parser for
// the Minispec source language, producing the pointer-based tree defined
// in internal/ast. It recovers from syntax errors by resynchronizing to
// the next statement or top-level declaration boundary so a single file
// can still yield a useful diagnostic batch in one pass.
package parser

import (
	"fmt"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/lexer"
	"minispec/internal/source"
	"minispec/internal/token"
)

// Options configures one parse: where diagnostics go and how many the
// caller is willing to see before giving up (0 means unlimited).
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

// Result is everything ParseFile produces for one source file.
type Result struct {
	Package *ast.Package
	Bag     *diag.Bag
}

// Parser holds per-file parsing state: a lookahead lexer and the error
// budget tracked in Options.
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	file     *source.File
	opts     Options
	errCount uint
}

// ParseFile parses a complete source file into a Package. Syntax errors
// are reported through opts.Reporter; parsing always returns a (possibly
// partial) Package rather than failing outright.
func ParseFile(fs *source.FileSet, file *source.File, opts Options) Result {
	p := &Parser{
		lx:   lexer.New(file),
		fs:   fs,
		file: file,
		opts: opts,
	}
	pkg := &ast.Package{File: file}
	for !p.at(token.EOF) {
		if p.at(token.KwImport) || p.at(token.KwBsvImport) {
			imp := p.parseImport()
			pkg.Imports = append(pkg.Imports, imp)
			continue
		}
		break
	}
	for !p.at(token.EOF) {
		item, ok := p.parseItem()
		if ok {
			pkg.Items = append(pkg.Items, item)
		} else {
			p.resyncTop()
		}
	}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Package: pkg, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool { return p.lx.Peek().Kind == k }

func (p *Parser) atAny(ks ...token.Kind) bool {
	cur := p.lx.Peek().Kind
	for _, k := range ks {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token { return p.lx.Next() }

// expect consumes the current token if it matches k, else reports a
// syntax error and returns the zero Token with ok=false.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	tok := p.lx.Peek()
	p.errorf(diag.SynUnexpectedToken, tok.Span, "expected %s, got %q", what, tok.Text)
	return token.Token{}, false
}

func (p *Parser) tooManyErrors() bool {
	return p.opts.MaxErrors != 0 && p.errCount >= p.opts.MaxErrors
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	if p.tooManyErrors() {
		return
	}
	p.errCount++
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
	}
}
