package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mogmix/nestex/internal/builder"
	"github.com/mogmix/nestex/internal/config"
	"github.com/mogmix/nestex/internal/run"
)

// Routine enumerates the selectable build routines. Selection is by
// 1-based index; the first entry is the interactive default.
type Routine int

const (
	RoutineCompile Routine = iota + 1
	RoutineWatch
	RoutineCompileAll
	RoutineClean
)

// routines is the interactive selection order.
var routines = []Routine{RoutineCompile, RoutineWatch, RoutineCompileAll, RoutineClean}

// String returns the routine's legend name.
func (r Routine) String() string {
	switch r {
	case RoutineCompile:
		return "compile"
	case RoutineWatch:
		return "watch"
	case RoutineCompileAll:
		return "compile_all"
	case RoutineClean:
		return "clean"
	}
	return fmt.Sprintf("routine(%d)", int(r))
}

// needsDocument reports whether the routine operates on a single
// document and therefore needs the document selector.
func (r Routine) needsDocument() bool {
	return r == RoutineCompile || r == RoutineWatch
}

// routineNames returns the legend names in selection order.
func routineNames() []string {
	names := make([]string, len(routines))
	for i, r := range routines {
		names[i] = r.String()
	}
	return names
}

// app wires the routines to a config and an executor. Commands construct
// one app per invocation; nothing is process-global.
type app struct {
	cfg  *config.Config
	exec run.Executor
	out  io.Writer
}

// dispatch invokes exactly the selected routine. doc is ignored by
// routines that do not operate on a single document.
func (a *app) dispatch(ctx context.Context, r Routine, doc string, opts builder.Options) error {
	switch r {
	case RoutineCompile:
		return builder.NewCompiler(a.cfg, a.exec).Compile(ctx, doc, opts)
	case RoutineWatch:
		return a.watch(ctx, doc, opts)
	case RoutineCompileAll:
		return builder.NewCompiler(a.cfg, a.exec).CompileAll(ctx, opts)
	case RoutineClean:
		fmt.Fprintln(a.out, "Cleaning temp files...")
		return builder.NewCleaner(a.cfg, a.exec).Clean(ctx)
	}
	return fmt.Errorf("unknown routine index %d", int(r))
}

// watch picks the configured watch engine for one document. Interrupting
// a watch session is its normal way to end, not a failure.
func (a *app) watch(ctx context.Context, doc string, opts builder.Options) error {
	var err error
	if a.cfg.Watch.Engine == config.WatchEngineInternal {
		err = builder.NewSourceWatcher(a.cfg, a.exec, doc, opts).Run(ctx)
	} else {
		err = builder.NewCompiler(a.cfg, a.exec).Watch(ctx, doc, opts)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
