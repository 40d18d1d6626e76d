package params

import (
	"context"
	"os"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/lightcone-ml/paramzoo/pkg/errors"
)

// LintResult is the outcome of validating one manifest.
type LintResult struct {
	Path   string
	Family Family
	Err    error
}

// OK reports whether the manifest validated cleanly.
func (r LintResult) OK() bool {
	return r.Err == nil
}

// LintOptions tunes a batch lint.
type LintOptions struct {
	// Concurrency bounds how many manifests validate at once. Zero or
	// negative uses one worker per CPU.
	Concurrency int
}

// LintAll validates many manifests concurrently. Results are ordered like
// the input paths; a failing manifest is a result, not an abort, so one
// broken file never hides the verdicts of the rest. Cancelling the context
// marks the remaining files Canceled.
func LintAll(ctx context.Context, paths []string, opts LintOptions) []LintResult {
	results := make([]LintResult, len(paths))

	workers := opts.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := pool.New().WithMaxGoroutines(workers)
	for i, path := range paths {
		i, path := i, path
		p.Go(func() {
			if err := errors.CheckContext(ctx, "lint "+path); err != nil {
				results[i] = LintResult{Path: path, Err: err}
				return
			}
			results[i] = lintOne(ctx, path)
		})
	}
	p.Wait()

	return results
}

func lintOne(ctx context.Context, path string) LintResult {
	res := LintResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = errors.WithFields(
			errors.Wrap(err, errors.ResourceNotFound, "cannot read manifest"),
			errors.Fields{"path": path})
		return res
	}

	family, err := DetectFamily(data)
	if err != nil {
		res.Err = errors.WithFields(err, errors.Fields{"path": path})
		return res
	}
	res.Family = family

	switch family {
	case FamilyPreprocessing:
		_, res.Err = LoadPreprocessing(ctx, path)
	default:
		_, res.Err = LoadTraining(ctx, path)
	}
	return res
}
