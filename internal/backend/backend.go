// Package backend invokes the industrial backend HDL compiler as a
// subprocess over a finished translation: write the translated text to a
// temp file, add the caller's include paths and extra options, run the
// configured binary, and hand back its combined output for the diagnostic
// back-translator to parse.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Options configures one backend invocation.
type Options struct {
	// Binary is the backend compiler executable (e.g. "bsc"). Required.
	Binary string
	// IncludePaths become -p entries ahead of the temp dir itself.
	IncludePaths []string
	// ExtraArgs are appended verbatim after the generated flags (the
	// CLI's -b/--bscOpts passthrough).
	ExtraArgs []string
	// KeepTmp skips the temp-directory cleanup, for post-mortem debugging.
	KeepTmp bool
}

// Invocation is one source file handed to the backend.
type Invocation struct {
	// FileName is the translated file's base name (e.g. "Translated.bsv").
	FileName string
	Content  string
}

// Result is one invocation's outcome.
type Result struct {
	Invocation Invocation
	TmpDir     string
	Combined   string // interleaved stdout+stderr, in the order the process wrote it
	ExitErr    error  // non-nil if the process exited non-zero or failed to start
}

// Run writes inv.Content to a fresh temp directory and invokes opts.Binary
// against it, returning the combined stdout+stderr regardless of exit
// status (a nonzero exit is expected and meaningful: it carries the type
// errors the back-translator re-anchors).
func Run(ctx context.Context, opts Options, inv Invocation) (*Result, error) {
	if opts.Binary == "" {
		return nil, fmt.Errorf("backend: no compiler binary configured")
	}
	dir, err := os.MkdirTemp("", "msc-backend-*")
	if err != nil {
		return nil, fmt.Errorf("backend: creating temp dir: %w", err)
	}
	res := &Result{Invocation: inv, TmpDir: dir}
	if !opts.KeepTmp {
		defer func() { _ = os.RemoveAll(dir) }()
	}

	target := filepath.Join(dir, inv.FileName)
	if err := os.WriteFile(target, []byte(inv.Content), 0o644); err != nil {
		return nil, fmt.Errorf("backend: writing %q: %w", target, err)
	}

	args := make([]string, 0, 4+2*len(opts.IncludePaths)+len(opts.ExtraArgs))
	for _, p := range opts.IncludePaths {
		args = append(args, "-p", p)
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, target)

	cmd := exec.CommandContext(ctx, opts.Binary, args...) // #nosec G204 -- opts.Binary is operator-configured, not user input
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	res.ExitErr = cmd.Run()
	res.Combined = buf.String()
	return res, nil
}

// RunAll invokes opts against every inv concurrently, preserving the input
// order in the returned slice. One invocation's own process failure never
// aborts the others; it is carried in that Result's ExitErr instead.
func RunAll(ctx context.Context, opts Options, invs []Invocation) ([]*Result, error) {
	results := make([]*Result, len(invs))
	g, gctx := errgroup.WithContext(ctx)
	for i, inv := range invs {
		i, inv := i, inv
		g.Go(func() error {
			r, err := Run(gctx, opts, inv)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
