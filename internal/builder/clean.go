package builder

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mogmix/nestex/internal/config"
	"github.com/mogmix/nestex/internal/logging"
	"github.com/mogmix/nestex/internal/run"
)

// Cleaner removes the scratch tree and the bibliography tool's cache.
type Cleaner struct {
	cfg  *config.Config
	exec run.Executor
}

// NewCleaner creates a Cleaner over the given config and executor.
func NewCleaner(cfg *config.Config, exec run.Executor) *Cleaner {
	return &Cleaner{cfg: cfg, exec: exec}
}

// Clean asks biber for its cache directory and removes it, then removes
// the scratch root. Both removals are best-effort: an absent path is not
// an error. A cache path that fails the sanity check is skipped rather
// than removed.
func (c *Cleaner) Clean(ctx context.Context) error {
	cache, err := c.exec.Output(ctx, run.Command{
		Binary: c.cfg.Tools.Biber,
		Args:   []string{"--cache"},
	})
	if err != nil {
		// No biber on PATH means no cache to clear.
		logging.L().Debug("biber cache lookup failed", zap.Error(err))
	} else if saneCachePath(cache) {
		removed, err := removeIfPresent(cache)
		if err != nil {
			return err
		}
		if removed {
			logging.L().Info("removed bibliography cache", zap.String("path", cache))
		}
	} else {
		logging.L().Warn("refusing to remove implausible cache path", zap.String("path", cache))
	}

	removed, err := removeIfPresent(c.cfg.TempDir)
	if err != nil {
		return err
	}
	if removed {
		logging.L().Info("removed scratch tree", zap.String("path", c.cfg.TempDir))
	}
	return nil
}

// removeIfPresent deletes path recursively, reporting whether anything
// was there to delete. An absent path is a no-op.
func removeIfPresent(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := os.RemoveAll(path); err != nil {
		return false, err
	}
	return true, nil
}

// saneCachePath rejects cache locations whose removal could be
// catastrophic: empty output, bare roots, or relative paths the tool
// should never report.
func saneCachePath(p string) bool {
	p = strings.TrimSpace(p)
	if p == "" || !filepath.IsAbs(p) {
		return false
	}
	clean := filepath.Clean(p)
	return clean != string(filepath.Separator) && clean != filepath.VolumeName(clean)+string(filepath.Separator)
}
