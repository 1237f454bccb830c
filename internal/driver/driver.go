// Package driver ties lexing, parsing, elaboration, and parametric
// specialization into one run: load a source file and everything it
// imports, elaborate each into a shared registry and output buffer, drain
// the parametric worklist for whatever the requested top-level definition
// (and anything it or its dependents instantiate) still needs specialized,
// and hand back the finished backend-HDL text plus its source map.
package driver

import (
	"fmt"
	"path/filepath"
	"sort"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/driver/cache"
	"minispec/internal/elaborate"
	"minispec/internal/observ"
	"minispec/internal/parametrics"
	"minispec/internal/source"
	"minispec/internal/sourcemap"
	"minispec/internal/value"
)

// Options configures one elaboration run.
type Options struct {
	// TopLevel names the module or function to specialize and synthesize.
	// Empty means no top-level specialization: every non-parametric
	// top-level definition is emitted, and the worklist still specializes
	// the parametric uses those definitions record.
	TopLevel string

	// IncludePaths are searched, after the importing file's own directory,
	// for each bsvimport-free `import Name;` target (Name + ".ms").
	IncludePaths []string

	MaxDiagnostics int
	Limits         elaborate.Limits

	// Observer, if set, receives phase-boundary events for a progress UI.
	Observer PhaseObserver

	// NoCache disables the elaboration disk cache (§4.5.2): every file is
	// always elaborated from scratch, regardless of an unchanged ModuleHash.
	NoCache bool

	// CacheDir overrides the disk cache's root directory; empty uses the
	// platform default (XDG_CACHE_HOME, or ~/.cache, under "minispec").
	CacheDir string
}

// Result is everything one run produced.
type Result struct {
	Output      string
	SourceMap   *sourcemap.SourceMap
	Bag         *diag.Bag
	FS          *source.FileSet
	FilesUsed   []string
	Specialized []string
}

// Run elaborates entryPath and everything it imports, then drives the
// parametric worklist for opts.TopLevel (if any), returning the finished
// translated text.
func Run(entryPath string, opts Options) (*Result, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 200
	}
	if (opts.Limits == elaborate.Limits{}) {
		opts.Limits = elaborate.DefaultLimits
	}

	timer := observ.NewTimer()
	notify := func(name string, status PhaseStatus) {
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Name: name, Status: status})
		}
	}

	fs := source.NewFileSet()
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	var diskCache *cache.Disk
	if !opts.NoCache {
		var cerr error
		if opts.CacheDir != "" {
			diskCache, cerr = cache.Open(opts.CacheDir)
		} else {
			diskCache, cerr = cache.OpenDefault("minispec")
		}
		if cerr != nil {
			// A cache we can't open (read-only home, no $HOME) degrades to
			// running uncached rather than failing the build.
			diskCache = nil
		}
	}

	e := elaborate.New(fs, reporter, opts.Limits)
	l := &loader{fs: fs, reporter: reporter, e: e, include: opts.IncludePaths, seen: make(map[string]bool), cache: diskCache, bag: bag}

	notify("load", PhaseStart)
	idx := timer.Begin("load+elaborate")
	pkg, err := l.load(entryPath)
	timer.End(idx, "")
	notify("load", PhaseEnd)
	if err != nil {
		return nil, err
	}

	pending := e.Buf.DequeueParametricUses()

	var topFrag *value.Fragment
	if opts.TopLevel != "" {
		bareName, params, perr := parseTopLevelArg(fs, opts.TopLevel)
		if perr != nil {
			reportBadTopLevelArg(reporter, pkg.Span(), opts.TopLevel, perr)
		} else if def, ok := e.Reg.Lookup(bareName); ok {
			use := &value.ParametricUse{Name: bareName, Params: params}
			if def.Kind == parametrics.KindFunc {
				frag, ferr := e.SpecializeTopLevelFunction(def, use)
				if ferr != nil {
					return nil, ferr
				}
				topFrag = frag
			} else {
				if def.Kind == parametrics.KindModule {
					if mod, ok := def.Item.(*ast.ModuleDef); ok {
						e.CheckTopLevelModule(mod)
					}
				}
				topFrag = e.Specialize(def, use)
			}
			pending = append(pending, topFrag.ParametricUses...)
		} else if _, has := l.declared[bareName]; !has {
			diag.ReportError(reporter, diag.BackTopLevelMissing, pkg.Span(), fmt.Sprintf("top-level definition %q not found", bareName)).Emit()
		}
	}

	notify("specialize", PhaseStart)
	idxSpec := timer.Begin("specialize")
	wl := parametrics.NewWorklist(e.Reg, e, opts.Limits.MaxSteps)
	frags, werr := wl.Drain(pending)
	timer.End(idxSpec, "")
	notify("specialize", PhaseEnd)
	if werr != nil {
		diag.ReportError(reporter, diag.ElabStepCapExceeded, pkg.Span(), werr.Error()).Emit()
	}

	if topFrag != nil {
		e.Buf.AppendFragment(topFrag)
	}
	names := sortedKeys(frags)
	for _, name := range names {
		e.Buf.AppendFragment(frags[name])
	}

	topName := opts.TopLevel
	if topName == "" {
		topName = filepath.Base(entryPath)
	}
	sm := e.Buf.Finalize(topName)

	appendTimingDiagnostic(bag, timingPayload{Kind: "elaborate", Path: entryPath, TotalMS: timer.Report().TotalMS, Phases: timer.Report().Phases})

	return &Result{
		Output:      e.Buf.Text(),
		SourceMap:   sm,
		Bag:         bag,
		FS:          fs,
		FilesUsed:   l.files,
		Specialized: names,
	}, nil
}

func sortedKeys(m map[string]*value.Fragment) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
