package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/driver/cache"
	"minispec/internal/elaborate"
	"minispec/internal/parser"
	"minispec/internal/project"
	"minispec/internal/project/dag"
	"minispec/internal/source"
)

// loader loads and elaborates entryPath plus every file it (transitively)
// imports into one shared Elaborator, so parametric definitions and
// concrete output accumulate across the whole program rather than per file.
//
// Loading is two-pass: first a parse-only discovery walk builds a
// project.ModuleMeta per file (so internal/project/dag can build the
// import graph and topologically order it, the same way it would for a
// full multi-module project), then files are elaborated in that
// dependency-first order so a module's imports are always registered
// before its own body runs.
type loader struct {
	fs       *source.FileSet
	reporter diag.Reporter
	e        *elaborate.Elaborator
	include  []string

	// cache is the elaboration disk cache (§4.5.2); nil disables it
	// (e.g. --no-cache), in which case every file is always elaborated.
	cache *cache.Disk
	bag   *diag.Bag // the run's diagnostic bag, for delta-capturing per-file diagnostics to cache

	seen     map[string]bool // resolved absolute path -> discovered
	files    []string        // elaboration order, filled once topo-sorted
	declared map[string]bool // every top-level item name seen across all files

	parsed      map[string]*ast.Package // abs path -> parsed package
	metas       []project.ModuleMeta
	moduleHash  map[string]project.Digest // abs path -> ModuleHash, filled in discover
}

// load discovers path and everything it imports, topologically orders the
// resulting file graph, and elaborates each file in that order. It returns
// the entry file's own package (the caller only needs its span for
// top-level-missing diagnostics).
func (l *loader) load(path string) (*ast.Package, error) {
	l.declared = make(map[string]bool)
	l.parsed = make(map[string]*ast.Package)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", path, err)
	}
	if err := l.discover(abs, filepath.Dir(abs)); err != nil {
		return nil, err
	}

	idx := dag.BuildIndex(l.metas)
	nodes := make([]dag.ModuleNode, len(l.metas))
	for i, m := range l.metas {
		nodes[i] = dag.ModuleNode{Meta: m, Reporter: l.reporter}
	}
	g, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(g)
	if topo.Cyclic {
		dag.ReportCycles(idx, slots, *topo)
	}

	for _, id := range topo.Order {
		abs := idx.IDToName[int(id)]
		pkg, ok := l.parsed[abs]
		if !ok {
			continue
		}
		l.files = append(l.files, abs)
		for _, item := range pkg.Items {
			l.declared[itemName(item)] = true
		}
		l.elaborateFileCached(abs, pkg)
	}

	return l.parsed[abs], nil
}

// elaborateFileCached serves abs's elaboration from the disk cache when its
// ModuleHash (content folded with its imports') is unchanged from a prior
// run, otherwise runs the elaborator walker and, if caching is enabled,
// records the result for next time.
func (l *loader) elaborateFileCached(abs string, pkg *ast.Package) {
	mh := l.moduleHash[abs]

	if l.cache != nil {
		if payload, ok := l.cache.Get(mh); ok {
			l.replayFromCache(abs, pkg, payload)
			return
		}
	}

	startLen := l.e.Buf.Len()
	startDiag := 0
	if l.bag != nil {
		startDiag = l.bag.Len()
	}

	l.e.ElaborateFile(pkg)

	if l.cache == nil {
		return
	}
	fragment := l.e.Buf.Text()[startLen:l.e.Buf.Len()]

	var cached []cache.CachedDiagnostic
	if l.bag != nil {
		for _, d := range l.bag.Items()[startDiag:] {
			cached = append(cached, cache.CachedDiagnostic{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
				Start:    d.Primary.Start,
				End:      d.Primary.End,
			})
		}
	}

	_ = l.cache.Put(mh, &cache.DiskPayload{
		Fragment:        fragment,
		ParametricNames: parametricItemNames(pkg),
		Diagnostics:     cached,
	})
}

// replayFromCache registers pkg's parametric definitions (cheap, and still
// needed so the worklist can specialize them) and splices the cached
// fragment and diagnostics in place of a full elaboration pass.
func (l *loader) replayFromCache(abs string, pkg *ast.Package, payload *cache.DiskPayload) {
	l.e.RegisterOnly(pkg)
	l.e.Buf.EmitText(payload.Fragment)

	fileID, ok := l.fs.GetLatest(abs)
	if !ok {
		return
	}
	for _, cd := range payload.Diagnostics {
		span := source.Span{File: fileID, Start: cd.Start, End: cd.End}
		l.reporter.Report(diag.Code(cd.Code), diag.Severity(cd.Severity), span, cd.Message, nil, nil)
	}
}

// parametricItemNames lists the parametric top-level definitions pkg
// declares, recorded in the cache payload as a cross-check only.
func parametricItemNames(pkg *ast.Package) []string {
	var names []string
	for _, item := range pkg.Items {
		switch n := item.(type) {
		case *ast.ModuleDef:
			if len(n.TypeParams) > 0 {
				names = append(names, n.Name)
			}
		case *ast.FunctionDef:
			if len(n.TypeParams) > 0 {
				names = append(names, n.Name)
			}
		case *ast.TypeDef:
			if len(n.Params) > 0 {
				names = append(names, n.Name)
			}
		}
	}
	return names
}

// discover parses abs (if not already seen) and recurses into its MS-level
// imports, recording a project.ModuleMeta for each file visited so the
// caller can build the import DAG once every file is known.
func (l *loader) discover(abs, fromDir string) error {
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	if l.seen[abs] {
		return nil
	}
	l.seen[abs] = true

	fileID, err := l.fs.Load(abs)
	if err != nil {
		return fmt.Errorf("reading %q: %w", abs, err)
	}
	file := l.fs.Get(fileID)

	res := parser.ParseFile(l.fs, file, parser.Options{Reporter: l.reporter})
	l.parsed[abs] = res.Package

	meta := project.ModuleMeta{
		Name:        filepath.Base(abs),
		Path:        abs,
		Span:        res.Package.Span(),
		ContentHash: project.Digest(file.Hash),
	}

	var depHashes []project.Digest
	for _, imp := range res.Package.Imports {
		if imp.IsBSV {
			continue
		}
		depPath, ok := l.resolveImport(imp.Name, fromDir)
		if !ok {
			diag.ReportError(l.reporter, diag.ElabNonElaborated, imp.Span(), fmt.Sprintf("cannot find imported module %q on any include path", imp.Name)).Emit()
			continue
		}
		meta.Imports = append(meta.Imports, project.ImportMeta{Path: depPath, Span: imp.Span()})
		if err := l.discover(depPath, filepath.Dir(depPath)); err != nil {
			return err
		}
		depHashes = append(depHashes, l.moduleHash[depPath])
	}

	meta.ModuleHash = project.Combine(meta.ContentHash, depHashes...)
	if l.moduleHash == nil {
		l.moduleHash = make(map[string]project.Digest)
	}
	l.moduleHash[abs] = meta.ModuleHash

	l.metas = append(l.metas, meta)
	return nil
}

// resolveImport searches fromDir, then each configured include path, for
// name + ".ms".
func (l *loader) resolveImport(name, fromDir string) (string, bool) {
	candidates := append([]string{fromDir}, l.include...)
	for _, dir := range candidates {
		p := filepath.Join(dir, name+".ms")
		if _, err := os.Stat(p); err == nil {
			abs, err := filepath.Abs(p)
			if err == nil {
				return abs, true
			}
		}
	}
	return "", false
}

func itemName(item ast.Item) string {
	switch n := item.(type) {
	case *ast.ModuleDef:
		return n.Name
	case *ast.FunctionDef:
		return n.Name
	case *ast.TypeDef:
		return n.Name
	}
	return ""
}
