// Package elaborate implements the compile-time specialization pass: a
// bottom-up tree walker that evaluates the Integer-context-visible parts of
// a Minispec parse tree and emits the backend-HDL text it specializes to,
// recording source-map and breadcrumb entries as it goes. It never does
// type inference; every value it produces is either folded in place
// (literals, Integer arithmetic, compile-time conditionals) or deferred as
// a ParametricUse fingerprint for the driver's worklist to specialize later.
package elaborate

import (
	"fmt"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/intctx"
	"minispec/internal/parametrics"
	"minispec/internal/source"
	"minispec/internal/tcbuf"
	"minispec/internal/value"
)

// Limits bounds the worklist and recursion-depth counters so a malformed or
// adversarial input (an unbounded induction variable, a self-referential
// parametric chain) fails with a diagnostic rather than hanging forever.
type Limits struct {
	MaxSteps int // total for-loop iterations + parametric specializations
	MaxDepth int // intctx level-stack depth (nested if/for/case/module bodies)
}

// DefaultLimits matches the driver's out-of-the-box configuration.
var DefaultLimits = Limits{MaxSteps: 100_000, MaxDepth: 512}

// Elaborator holds all mutable state for one elaboration run: the integer
// context, the output buffer, the parametric registry it populates as it
// discovers definitions, and the step/depth counters shared across every
// file and every worklist specialization in the run.
type Elaborator struct {
	fs       *source.FileSet
	reporter diag.Reporter
	limits   Limits

	Ctx *intctx.Ctx
	Buf *tcbuf.Buffer
	Reg *parametrics.Registry

	steps int

	// submodules maps a submodule instance name to its declared module
	// type name, populated per module body and consulted by varAssign's
	// sub.field = expr rewrite rule.
	submodules map[string]string
}

// New returns an elaborator ready to walk a file set's packages in order.
func New(fs *source.FileSet, reporter diag.Reporter, limits Limits) *Elaborator {
	return &Elaborator{
		fs:       fs,
		reporter: reporter,
		limits:   limits,
		Ctx:        intctx.New(),
		Buf:        tcbuf.New(),
		Reg:        parametrics.New(),
		submodules: make(map[string]string),
	}
}

func (e *Elaborator) text(n ast.Node) string { return ast.Text(e.fs, n) }

// report emits an error diagnostic anchored at n's span through the
// configured reporter.
func (e *Elaborator) report(code diag.Code, n ast.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	diag.ReportError(e.reporter, code, n.Span(), msg).Emit()
}

// errValue builds a KindError Value and also routes it to the reporter,
// since most callers only look at the returned Value's error list when
// propagating (e.g. via value.Combine) but the diagnostic still needs to
// surface to the user exactly once.
func (e *Elaborator) errValue(code diag.Code, n ast.Node, format string, args ...any) value.Value {
	msg := fmt.Sprintf(format, args...)
	diag.ReportError(e.reporter, code, n.Span(), msg).Emit()
	return value.NewError(n, msg)
}

// incStep registers one elaboration step (a for-loop iteration or a
// parametric specialization) against the run-wide cap.
func (e *Elaborator) incStep(n ast.Node) bool {
	e.steps++
	if e.steps > e.limits.MaxSteps {
		e.report(diag.ElabStepCapExceeded, n, "elaboration exceeded %d steps; this usually means an induction variable or parametric chain never terminates", e.limits.MaxSteps)
		return false
	}
	return true
}

// checkDepth reports and returns false once the integer-context level
// stack grows past the configured cap.
func (e *Elaborator) checkDepth(n ast.Node) bool {
	if e.Ctx.Depth() > e.limits.MaxDepth {
		e.report(diag.ElabDepthCapExceeded, n, "elaboration nesting exceeded a depth of %d", e.limits.MaxDepth)
		return false
	}
	return true
}

// ElaborateFile walks one parsed package: MS-level imports become Skip,
// bsvimports translate to backend import statements, and each top-level
// item is registered (if parametric) and/or emitted (if concrete).
func (e *Elaborator) ElaborateFile(pkg *ast.Package) {
	for _, imp := range pkg.Imports {
		e.elaborateImport(imp)
	}
	for _, item := range pkg.Items {
		e.elaborateItem(item)
	}
}

// RegisterOnly walks pkg's top-level items and registers whichever are
// parametric, without emitting anything for the concrete ones. The disk
// cache uses this on a cache hit: the file's own text was already
// elaborated in a prior run and is replayed verbatim, but its parametric
// definitions still need their ASTs registered so the worklist can
// specialize them this run.
func (e *Elaborator) RegisterOnly(pkg *ast.Package) {
	for _, item := range pkg.Items {
		switch n := item.(type) {
		case *ast.ModuleDef:
			if isParametricModule(n) {
				e.Reg.Register(&parametrics.Definition{Kind: parametrics.KindModule, Name: n.Name, Item: n})
			}
		case *ast.FunctionDef:
			if isParametricFunc(n) {
				e.Reg.Register(&parametrics.Definition{Kind: parametrics.KindFunc, Name: n.Name, Item: n})
			}
		case *ast.TypeDef:
			if isParametricType(n) && n.Kind != ast.TypeDefEnum {
				kind := parametrics.KindTypedef
				if n.Kind == ast.TypeDefStruct {
					kind = parametrics.KindStruct
				}
				e.Reg.Register(&parametrics.Definition{Kind: kind, Name: n.Name, Item: n})
			}
		}
	}
}

func (e *Elaborator) elaborateImport(imp *ast.Import) {
	if !imp.IsBSV {
		// MS-level import: its file is separately elaborated and
		// concatenated by the driver: Skip, emit nothing here.
		return
	}
	e.Buf.EmitLine(fmt.Sprintf("import %s::*;", imp.Name))
}

func (e *Elaborator) elaborateItem(item ast.Item) {
	switch n := item.(type) {
	case *ast.ModuleDef:
		e.elaborateModule(n, nil)
	case *ast.FunctionDef:
		e.elaborateFunction(n, nil)
	case *ast.TypeDef:
		e.elaborateTypeDef(n)
	}
}
