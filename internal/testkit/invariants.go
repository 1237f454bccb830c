package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"minispec/internal/ast"
	"minispec/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// package: every import and item span is non-empty, points at file, and
// falls within the file's content bounds, and the package's own Span()
// covers the union of its imports' and items' spans.
func CheckSpanInvariants(pkg *ast.Package, file *source.File) error {
	if pkg == nil || file == nil {
		return fmt.Errorf("nil package or file")
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	checkOne := func(label string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s: empty span: %v", label, sp)
		}
		if sp.File != file.ID {
			return fmt.Errorf("%s: span file mismatch: got=%d want=%d", label, sp.File, file.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s: span end beyond content: %d > %d", label, sp.End, lenContent)
		}
		return nil
	}

	var union source.Span
	var have bool
	cover := func(sp source.Span) {
		if !have {
			union, have = sp, true
			return
		}
		union = union.Cover(sp)
	}

	for i, imp := range pkg.Imports {
		sp := imp.Span()
		if err := checkOne(fmt.Sprintf("import[%d] %q", i, imp.Name), sp); err != nil {
			return err
		}
		cover(sp)
	}
	for i, item := range pkg.Items {
		sp := item.Span()
		if err := checkOne(fmt.Sprintf("item[%d]", i), sp); err != nil {
			return err
		}
		cover(sp)
	}

	if !have {
		return nil
	}
	pkgSpan := pkg.Span()
	if union.Start < pkgSpan.Start || union.End > pkgSpan.End {
		return fmt.Errorf("package span %v does not cover union of members %v", pkgSpan, union)
	}
	return nil
}
