// Package builder implements the nestex build routines: staging scratch
// trees, compiling documents through latexmk, watching sources, and
// cleaning up. latexmk will not create nested output subdirectories, so
// each document gets a scratch tree mirroring the source directory
// structure before the compiler runs.
package builder

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mogmix/nestex/internal/config"
	"github.com/mogmix/nestex/internal/logging"
	"github.com/mogmix/nestex/internal/run"
)

// Stager materializes per-document scratch trees.
type Stager struct {
	cfg  *config.Config
	exec run.Executor
}

// NewStager creates a Stager over the given config and executor.
func NewStager(cfg *config.Config, exec run.Executor) *Stager {
	return &Stager{cfg: cfg, exec: exec}
}

// Stage ensures the scratch and output roots exist, then mirrors the
// source tree's directory structure (directories only, no files) into the
// document's scratch subdirectory. Idempotent: re-staging an existing
// tree just re-confirms it. Returns the scratch directory path.
func (s *Stager) Stage(ctx context.Context, doc string) (string, error) {
	scratch := s.cfg.ScratchDir(doc)

	if err := os.MkdirAll(scratch, 0755); err != nil {
		return "", fmt.Errorf("failed to create scratch dir: %w", err)
	}
	if err := os.MkdirAll(s.cfg.OutDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	// rsync with include */ exclude * copies only the directory
	// hierarchy. The trailing slash on the source is load-bearing:
	// it mirrors the contents of SrcDir, not SrcDir itself.
	cmd := run.Command{
		Binary: s.cfg.Tools.Rsync,
		Args: []string{
			"-a",
			s.cfg.SrcDir + string(os.PathSeparator),
			scratch,
			"--include", "*/",
			"--exclude", "*",
		},
	}
	if err := s.exec.Run(ctx, cmd); err != nil {
		return "", fmt.Errorf("failed to mirror source structure for %s: %w", doc, err)
	}

	logging.L().Debug("staged scratch tree",
		zap.String("document", doc),
		zap.String("scratch", scratch))
	return scratch, nil
}
