package main

import (
	"github.com/spf13/cobra"

	"github.com/mogmix/nestex/internal/builder"
	"github.com/mogmix/nestex/internal/config"
)

var watchInternal bool

// watchCmd recompiles a document on every source change. The default
// engine is latexmk's preview-continuous mode; --internal switches to
// the fsnotify loop for setups where -pvc is unavailable. Blocks until
// interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch [document]",
	Short: "Recompile a document continuously on source changes",
	Long: `Stages the document's scratch tree, then watches the sources.

By default latexmk runs in preview-continuous mode (-pvc) and owns the
rebuild loop. With --internal (or watch.engine: internal in the config),
nestex instead watches the source tree itself and triggers a full
compile, including the artifact copy, on every change.

Terminates on interrupt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if watchInternal {
			a.cfg.Watch.Engine = config.WatchEngineInternal
		}
		doc, err := selectDocument(cmd, a, args)
		if err != nil {
			return err
		}
		return a.watch(cmd.Context(), doc, builder.Options{Quiet: !noQuiet})
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchInternal, "internal", false, "Use the built-in fsnotify watch loop instead of latexmk -pvc")
}
