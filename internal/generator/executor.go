package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer // defaults to os.Stdout
}

// Report lists the targets an Execute call wrote and the ones it left alone.
type Report struct {
	Applied []string
	Skipped []string
}

// Execute validates every operation, then runs the ones not skipped.
// The report is returned even on failure so callers can tell how far it got.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) (*Report, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	report := &Report{}

	// Phase 1: validate all operations
	skip := make([]bool, len(ops))
	for i, op := range ops {
		err := op.Validate(ctx, opts.Force)
		if errors.Is(err, ErrExists) {
			skip[i] = true
			continue
		}
		if err != nil {
			return report, fmt.Errorf("validation failed: %w", err)
		}
	}

	// Phase 2: execute or report
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if skip[i] {
			fmt.Fprintf(opts.Writer, "• Skip %s (already exists)\n", op.Target())
			report.Skipped = append(report.Skipped, op.Target())
			continue
		}
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			report.Applied = append(report.Applied, op.Target())
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return report, fmt.Errorf("execution failed: %w", err)
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
		report.Applied = append(report.Applied, op.Target())
	}

	return report, nil
}
