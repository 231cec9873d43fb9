package builder

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mogmix/nestex/internal/config"
	"github.com/mogmix/nestex/internal/logging"
	"github.com/mogmix/nestex/internal/run"
)

// SourceWatcher is the internal watch engine: a debounced fsnotify loop
// over the source tree that triggers a full recompile of one document on
// every relevant change. It is the fallback for setups where latexmk's
// preview-continuous mode is unavailable.
type SourceWatcher struct {
	cfg      *config.Config
	compiler *Compiler
	doc      string
	opts     Options

	// onBuild, when non-nil, observes each rebuild result. Used by
	// tests; production leaves it nil.
	onBuild func(error)
}

// NewSourceWatcher creates a watcher for one document.
func NewSourceWatcher(cfg *config.Config, exec run.Executor, doc string, opts Options) *SourceWatcher {
	return &SourceWatcher{
		cfg:      cfg,
		compiler: NewCompiler(cfg, exec),
		doc:      doc,
		opts:     opts,
	}
}

// Run compiles once, then blocks re-compiling on source changes until the
// context is cancelled. A failed rebuild is logged, not fatal: the next
// change gets another attempt.
func (w *SourceWatcher) Run(ctx context.Context) error {
	if err := w.compiler.Compile(ctx, w.doc, w.opts); err != nil {
		// First build failures are common while a document is being
		// drafted; keep watching.
		logging.L().Warn("initial build failed", zap.String("document", w.doc), zap.Error(err))
		w.report(err)
	} else {
		w.report(nil)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, w.cfg.SrcDir); err != nil {
		return err
	}
	logging.L().Info("watching source tree",
		zap.String("document", w.doc),
		zap.String("dir", w.cfg.SrcDir))

	debounce := w.cfg.Watch.Debounce()
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New subdirectories need their own watch.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
					continue
				}
			}
			if !relevantSource(event.Name) {
				continue
			}
			logging.L().Debug("source changed",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(debounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.L().Warn("watch error", zap.Error(err))

		case <-timer.C:
			pending = false
			if err := w.compiler.Compile(ctx, w.doc, w.opts); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.L().Warn("rebuild failed", zap.String("document", w.doc), zap.Error(err))
				w.report(err)
				continue
			}
			w.report(nil)
		}
	}
}

func (w *SourceWatcher) report(err error) {
	if w.onBuild != nil {
		w.onBuild(err)
	}
}

// relevantSource reports whether a changed path should trigger a rebuild.
func relevantSource(path string) bool {
	switch filepath.Ext(path) {
	case ".tex", ".bib", ".sty", ".cls", ".bst":
		return true
	}
	return false
}

// addRecursive watches dir and every subdirectory beneath it.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
