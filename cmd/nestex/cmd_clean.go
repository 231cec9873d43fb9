package main

import (
	"github.com/spf13/cobra"

	"github.com/mogmix/nestex/internal/builder"
)

// cleanCmd removes temporary build state. Routed through dispatch so the
// subcommand and the interactive path behave identically.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the scratch tree and the biber cache",
	Long: `Asks biber for its cache directory and removes it, then removes the
scratch tree. Finished artifacts in the output directory are kept.
Missing directories are not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.dispatch(cmd.Context(), RoutineClean, "", builder.Options{Quiet: !noQuiet})
	},
}
