package main

import (
	"fmt"

	"github.com/fwojciec/typemap"
	"github.com/fwojciec/typemap/build"
	"github.com/fwojciec/typemap/fs"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	if !c.Force {
		m, err := fs.LoadMap(c.Out)
		if err == nil {
			fmt.Fprintf(deps.Stdout, "Using cached %s (%d entries). Run with --force to reparse.\n", c.Out, m.Len())
			return nil
		}
		if typemap.ErrorCode(err) != typemap.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}
	}

	progress := func(event build.ProgressEvent) {
		switch event.Type {
		case build.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d documents\n", event.Total)
		case build.ProgressParsed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s (skipped %d)\n", event.Completed, event.Total, event.Path, event.Skipped)
		case build.ProgressFinished:
			// Summary printed after the pass completes
		}
	}

	builder, err := deps.NewBuilder(c)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	result, err := builder.Build(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if err := fs.WriteMap(c.Out, result.Map); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d entries to %s (%d documents, %d skipped, %d cached)\n",
		result.Map.Len(), c.Out, result.Documents, len(result.Skipped), result.Cached)

	if c.ListSkipped {
		for _, s := range result.Skipped {
			fmt.Fprintf(deps.Stdout, "  skip %s: %s (%s)\n", s.Path, s.Title, s.Reason)
		}
	}

	return nil
}
