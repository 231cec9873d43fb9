package main

import (
	"github.com/spf13/cobra"

	"github.com/mogmix/nestex/internal/builder"
)

var allJobs int

// allCmd compiles every configured document.
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Compile every configured document",
	Long: `Compiles the full document list in declaration order. The first
failure stops the run; documents after it are not attempted.

With --jobs above 1, independent documents compile concurrently, each in
its own scratch tree; the first failure cancels the remainder.

Example:
  nestex all
  nestex all --jobs 4`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return builder.NewCompiler(a.cfg, a.exec).
			CompileAll(cmd.Context(), builder.Options{Quiet: !noQuiet, Jobs: allJobs})
	},
}

func init() {
	allCmd.Flags().IntVar(&allJobs, "jobs", 1, "Concurrent document builds (1 = strictly sequential)")
}
