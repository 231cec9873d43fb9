package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mogmix/nestex/internal/builder"
)

// compileCmd compiles a single document non-interactively (aside from
// the document selector when the argument is omitted).
var compileCmd = &cobra.Command{
	Use:   "compile [document]",
	Short: "Compile one document and place the PDF in the output directory",
	Long: `Stages the document's scratch tree, runs latexmk into it, and copies
the finished PDF to the output directory as <prefix>_<document>.pdf.

With no argument, prompts for a document from the configured list.

Example:
  nestex compile main
  nestex compile --no-quiet thesis`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		doc, err := selectDocument(cmd, a, args)
		if err != nil {
			return err
		}
		return builder.NewCompiler(a.cfg, a.exec).
			Compile(cmd.Context(), doc, builder.Options{Quiet: !noQuiet})
	},
}

// selectDocument resolves the document argument, prompting with the
// configured list when absent. A named document must be configured.
func selectDocument(cmd *cobra.Command, a *app, args []string) (string, error) {
	if len(args) == 1 {
		doc := args[0]
		for _, d := range a.cfg.Documents {
			if d == doc {
				return doc, nil
			}
		}
		return "", fmt.Errorf("unknown document %q (configured: %s)",
			doc, strings.Join(a.cfg.Documents, ", "))
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	idx, err := p.index("File to watch/compile", a.cfg.Documents, 1)
	if err != nil {
		return "", err
	}
	return a.cfg.Documents[idx-1], nil
}
