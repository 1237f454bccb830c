// Command msc is the Minispec-to-backend-HDL translator: it elaborates a
// .ms source file (and whatever it imports), specializes the requested
// top-level module or function, and writes the finished backend source
// text, optionally handing it to the configured backend compiler and
// back-translating whatever diagnostics come back.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"minispec/internal/backdiag"
	"minispec/internal/backend"
	"minispec/internal/diag"
	"minispec/internal/driver"
	"minispec/internal/elaborate"
	"minispec/internal/project"
	"minispec/internal/ui"
	"minispec/internal/version"
)

// runPhases is the fixed phase order driver.Run fires notify() for.
var runPhases = []string{"load", "specialize"}

type rootFlags struct {
	output         string
	includePaths   []string
	bscOpts        []string
	allErrors      bool
	keepTmps       bool
	noCache        bool
	quiet          bool
	color          bool
	maxDiagnostics int
	backendBinary  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "msc <inputFile> [topLevel]",
		Short:         "Translate Minispec source to backend HDL",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags, true)
		},
	}
	registerFlags(root, flags)

	root.AddCommand(newBuildCmd(flags))
	root.AddCommand(newCheckCmd(flags))
	root.AddCommand(newTokensCmd(flags))
	root.AddCommand(newVersionCmd())
	return root
}

func registerFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write translated output to this path instead of stdout")
	cmd.Flags().StringArrayVarP(&flags.includePaths, "path", "p", nil, "additional import search path (repeatable)")
	cmd.Flags().StringArrayVarP(&flags.bscOpts, "bscOpts", "b", nil, "extra option passed through to the backend compiler (repeatable)")
	cmd.Flags().BoolVar(&flags.allErrors, "all-errors", false, "do not cap the number of reported diagnostics")
	cmd.Flags().BoolVar(&flags.keepTmps, "keep-tmps", false, "keep the backend invocation's temp directory")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the elaboration disk cache")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress non-error output")
	cmd.Flags().BoolVar(&flags.color, "color", false, "accepted but ignored: diagnostics are printed without color")
	cmd.Flags().IntVar(&flags.maxDiagnostics, "max-diagnostics", 200, "stop collecting diagnostics past this many")
	cmd.Flags().StringVar(&flags.backendBinary, "backend", os.Getenv("MSC_BACKEND"), "backend compiler binary to invoke after translation (default: $MSC_BACKEND, empty skips invocation)")
}

func newBuildCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <inputFile> [topLevel]",
		Short: "Elaborate, specialize, and translate a design (the default action)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags, true)
		},
	}
	registerFlags(cmd, flags)
	return cmd
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <inputFile> [topLevel]",
		Short: "Elaborate and report diagnostics without writing output or invoking the backend",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags, false)
		},
	}
	registerFlags(cmd, flags)
	return cmd
}

func newTokensCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <inputFile>",
		Short: "Print the lexed token stream for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(args[0])
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the msc version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		},
	}
}

func runBuild(cmd *cobra.Command, args []string, flags *rootFlags, invokeBackend bool) error {
	inputFile := args[0]
	topLevel := ""
	if len(args) > 1 {
		topLevel = args[1]
	}

	if err := applyManifestDefaults(cmd, inputFile, &topLevel, flags); err != nil {
		return err
	}

	maxDiag := flags.maxDiagnostics
	if flags.allErrors {
		maxDiag = 65535
	}

	opts := driver.Options{
		TopLevel:       topLevel,
		IncludePaths:   flags.includePaths,
		MaxDiagnostics: maxDiag,
		Limits:         elaborate.DefaultLimits,
		NoCache:        flags.noCache,
	}

	var res *driver.Result
	var runErr error
	if !flags.quiet && term.IsTerminal(int(os.Stderr.Fd())) {
		res, runErr = runWithProgress(inputFile, opts)
	} else {
		res, runErr = driver.Run(inputFile, opts)
	}
	if runErr != nil {
		return runErr
	}

	if res.Bag.HasErrors() {
		driver.PrintDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FS)
		return fmt.Errorf("elaboration failed with %d diagnostic(s)", res.Bag.Len())
	}
	if !flags.quiet && res.Bag.Len() > 0 {
		driver.PrintDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FS)
	}

	if !invokeBackend {
		return nil
	}

	if err := writeOutput(cmd, flags.output, res.Output); err != nil {
		return err
	}

	if flags.backendBinary == "" {
		return nil
	}
	return runBackend(cmd, flags, res)
}

// applyManifestDefaults discovers minispec.toml above inputFile (if any)
// and fills in whatever the positional topLevel argument and CLI flags
// left unset: manifest values are defaults, not overrides, so an explicit
// flag or a topLevel argument always wins.
func applyManifestDefaults(cmd *cobra.Command, inputFile string, topLevel *string, flags *rootFlags) error {
	manifest, _, ok, err := project.LoadManifestFor(inputFile)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if *topLevel == "" {
		*topLevel = manifest.Package.TopLevel
	}
	if !cmd.Flags().Changed("path") {
		flags.includePaths = append(flags.includePaths, manifest.Build.ImportPath...)
	}
	if !cmd.Flags().Changed("bscOpts") && manifest.Build.BscOpts != "" {
		flags.bscOpts = append(flags.bscOpts, manifest.Build.BscOpts)
	}
	if !cmd.Flags().Changed("keep-tmps") && manifest.Build.KeepTmps {
		flags.keepTmps = true
	}
	if !cmd.Flags().Changed("all-errors") && manifest.Build.AllErrors {
		flags.allErrors = true
	}
	return nil
}

// runWithProgress drives driver.Run on a goroutine, piping its phase events
// into a Bubble Tea progress view rendered on stderr while the run is in
// flight.
func runWithProgress(inputFile string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.PhaseEvent, 8)
	opts.Observer = func(ev driver.PhaseEvent) { events <- ev }

	type runOutcome struct {
		res *driver.Result
		err error
	}
	done := make(chan runOutcome, 1)
	go func() {
		res, err := driver.Run(inputFile, opts)
		close(events)
		done <- runOutcome{res, err}
	}()

	model := ui.NewProgressModel(inputFile, runPhases, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	if _, err := program.Run(); err != nil {
		// A broken terminal shouldn't fail the build; fall through and
		// report whatever driver.Run produced.
	}

	outcome := <-done
	return outcome.res, outcome.err
}

func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

func runBackend(cmd *cobra.Command, flags *rootFlags, res *driver.Result) error {
	inv := backend.Invocation{FileName: "Translated.bsv", Content: res.Output}
	opts := backend.Options{
		Binary:       flags.backendBinary,
		IncludePaths: flags.includePaths,
		ExtraArgs:    flags.bscOpts,
		KeepTmp:      flags.keepTmps,
	}
	result, err := backend.Run(context.Background(), opts, inv)
	if err != nil {
		return err
	}
	if result.ExitErr != nil {
		backendBag := diag.NewBag(500)
		backdiag.Translate(result.Combined, res.Output, res.SourceMap, diag.BagReporter{Bag: backendBag})
		driver.PrintDiagnostics(cmd.ErrOrStderr(), backendBag, res.FS)
		return fmt.Errorf("backend compilation failed: %w", result.ExitErr)
	}
	if !flags.quiet {
		fmt.Fprint(cmd.OutOrStdout(), result.Combined)
	}
	return nil
}
