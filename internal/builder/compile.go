package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mogmix/nestex/internal/config"
	"github.com/mogmix/nestex/internal/logging"
	"github.com/mogmix/nestex/internal/run"
)

// Options carries the per-invocation build switches. Threaded as a value
// into every routine; never process-global state.
type Options struct {
	// Quiet passes latexmk's -quiet flag, suppressing verbose
	// compilation logging.
	Quiet bool

	// Jobs bounds concurrent document builds in CompileAll. Values
	// below 1 mean strictly sequential.
	Jobs int
}

// Compiler stages and compiles documents through the external build
// driver, then relocates the finished artifact to the flat output tree.
type Compiler struct {
	cfg    *config.Config
	exec   run.Executor
	stager *Stager
}

// NewCompiler creates a Compiler over the given config and executor.
func NewCompiler(cfg *config.Config, exec run.Executor) *Compiler {
	return &Compiler{
		cfg:    cfg,
		exec:   exec,
		stager: NewStager(cfg, exec),
	}
}

// Compile stages the document, runs latexmk into the scratch tree, and
// copies the produced PDF to <out>/<prefix>_<doc>.pdf. There is no
// verification pass between the compile and the copy: a failed compile
// surfaces as the missing-artifact error from the copy.
func (c *Compiler) Compile(ctx context.Context, doc string, opts Options) error {
	scratch, err := c.stager.Stage(ctx, doc)
	if err != nil {
		return err
	}

	if err := c.invoke(ctx, scratch, doc, opts, false); err != nil {
		return err
	}

	artifact := c.cfg.ArtifactPath(doc)
	produced := filepath.Join(scratch, doc+".pdf")
	if err := copyFile(produced, artifact); err != nil {
		return fmt.Errorf("failed to place artifact for %s: %w", doc, err)
	}

	logging.L().Info("compiled document",
		zap.String("document", doc),
		zap.String("artifact", artifact))
	return nil
}

// CompileAll builds every configured document in declaration order. With
// Jobs <= 1 the loop is strictly sequential and the first failure
// prevents every later document from being attempted. With Jobs > 1,
// independent documents build concurrently (each in its own scratch
// tree); the first failure cancels the rest.
func (c *Compiler) CompileAll(ctx context.Context, opts Options) error {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, doc := range c.cfg.Documents {
		doc := doc
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return c.Compile(gctx, doc, opts)
		})
	}

	return g.Wait()
}

// Watch runs the build driver in preview-continuous mode against the
// staged scratch tree. Blocks until the context is cancelled or the
// driver exits; artifact placement is left to the driver's live preview.
func (c *Compiler) Watch(ctx context.Context, doc string, opts Options) error {
	scratch, err := c.stager.Stage(ctx, doc)
	if err != nil {
		return err
	}
	return c.invoke(ctx, scratch, doc, opts, true)
}

// invoke runs latexmk for one document. continuous selects -pvc.
func (c *Compiler) invoke(ctx context.Context, scratch, doc string, opts Options, continuous bool) error {
	args := []string{"-cd"}
	if continuous {
		args = append(args, "-pvc")
	}
	if opts.Quiet {
		args = append(args, "-quiet")
	}
	args = append(args,
		"-output-directory="+scratch,
		c.cfg.SourceFile(doc),
	)

	cmd := run.Command{
		Binary: c.cfg.Tools.Latexmk,
		Args:   args,
		Dir:    c.cfg.SrcDir,
	}
	if err := c.exec.Run(ctx, cmd); err != nil {
		return fmt.Errorf("build driver failed for %s: %w", doc, err)
	}
	return nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
