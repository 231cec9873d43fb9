// Package main implements the nestex CLI.
//
// nestex is an interactive wrapper around latexmk for documents whose
// build artifacts live in nested output directories. latexmk will not
// create output subdirectories itself, so each document is compiled into
// a scratch tree that mirrors the source structure, and the finished PDF
// is copied to a flat output directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mogmix/nestex/internal/builder"
	"github.com/mogmix/nestex/internal/config"
	"github.com/mogmix/nestex/internal/logging"
	"github.com/mogmix/nestex/internal/run"
)

var (
	// Global flags
	verbose    bool
	configPath string
	quiet      bool
	noQuiet    bool
)

// rootCmd represents the base command. Run without a subcommand it
// enters the interactive dispatcher: silent-mode prompt, routine
// selector, and (for compile/watch) a document selector.
var rootCmd = &cobra.Command{
	Use:   "nestex",
	Short: "Interactive latexmk wrapper for nested output directories",
	Long: `nestex compiles LaTeX documents whose auxiliary files live in nested
output directories, which latexmk cannot create on its own.

Each document is staged into a scratch tree mirroring the source
structure, compiled there, and the finished PDF is copied to a flat
output directory as <prefix>_<document>.pdf.

Run without arguments for interactive routine selection, or use the
compile/watch/all/clean subcommands directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: nestex.yaml in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Pass latexmk's quiet flag, skipping the prompt")
	rootCmd.PersistentFlags().BoolVar(&noQuiet, "no-quiet", false, "Force verbose latexmk output, skipping the prompt")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(cleanCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file (explicit flag, or nestex.yaml in the
// working directory) and builds the per-invocation app.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(cwd, config.DefaultFileName)
	}
	return config.Load(path)
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, exec: run.NewDirectExecutor(), out: cmd.OutOrStdout()}, nil
}

// resolveQuiet turns the flag pair into the effective silent mode,
// prompting when neither flag was given. The prompt default is yes.
func resolveQuiet(p *prompter) (bool, error) {
	if quiet {
		return true, nil
	}
	if noQuiet {
		return false, nil
	}
	return p.yesNo("Run silent?", true)
}

// runInteractive is the dispatcher: silent prompt, routine selection,
// optional document selection, then exactly one routine invocation.
func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	silent, err := resolveQuiet(p)
	if err != nil {
		return err
	}
	opts := builder.Options{Quiet: silent}

	idx, err := p.index("Run routine", routineNames(), 1)
	if err != nil {
		if err == errUnexpectedIndex {
			fmt.Fprintln(cmd.OutOrStdout(), "Unexpected index. Stopping...")
			return nil
		}
		return err
	}
	routine := routines[idx-1]

	doc := ""
	if routine.needsDocument() {
		d, err := p.index("File to watch/compile", a.cfg.Documents, 1)
		if err != nil {
			if err == errUnexpectedIndex {
				fmt.Fprintln(cmd.OutOrStdout(), "Unexpected index. Stopping...")
				return nil
			}
			return err
		}
		doc = a.cfg.Documents[d-1]
	}

	return a.dispatch(cmd.Context(), routine, doc, opts)
}
