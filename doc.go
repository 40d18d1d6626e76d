// Package paramzoo is the configuration layer of an accelerator training
// framework: it loads, validates, and freezes the YAML manifests that
// parameterize data preprocessing and transformer training runs.
//
// A manifest is read once at process start, checked exhaustively, and
// handed to the external preprocessing or training runtime as an immutable
// resolved object. Nothing here runs a model; the package's whole contract
// is that a resolved object is safe to build a run on.
//
// Key Components:
//
//   - params: Schema types for both manifest families, the strict loader,
//     documented defaults, the all-violations validator, resolved objects,
//     and a concurrent batch linter.
//     Two families are supported:
//     * Preprocessing manifests (setup / processing / dataset sections)
//       parameterizing corpus tokenization pipelines
//     * Training manifests (train_input / eval_input / model / optimizer /
//       runconfig sections) parameterizing GPT-style and BERT-style runs
//
//   - schedule: Piecewise learning-rate schedules. Segments (Constant,
//     Linear, CosineDecay) concatenate end-to-end; a Resolver answers
//     rate-at-step queries, holding the final value past the last segment.
//
//   - textnorm: The text cleanup the preprocessing pipeline applies before
//     tokenization: Unicode normalization forms, character repair, and the
//     WikiText detokenizer.
//
//   - corpus: Pre-run verification of the data directories a manifest
//     points at: shard discovery, example counting via the shard index or
//     the shards themselves, and capacity checks against the batch layout.
//
//   - registry: A local SQLite ledger of validated manifests keyed by
//     document fingerprint.
//
//   - errors, logging: Coded structured errors and leveled structured
//     logging shared by every package.
//
// Loading is fail-fast and total. A document either produces a resolved
// object whose every field is usable, or one coded error naming everything
// wrong with it: unknown keys (typos) are collected across the whole
// document, validation reports every violated rule, and missing input
// files are listed together before any work starts.
//
// Simple Example:
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/lightcone-ml/paramzoo/pkg/params"
//	)
//
//	func main() {
//	    resolved, err := params.LoadTraining(context.Background(), "configs/gpt2_small.yaml")
//	    if err != nil {
//	        log.Fatalf("manifest rejected: %v", err)
//	    }
//
//	    // Derived quantities are precomputed on the resolved object.
//	    fmt.Printf("run %s: head size %d, %d steps\n",
//	        resolved.RunID(), resolved.HeadSize(), resolved.MaxSteps())
//
//	    // The learning-rate curve is resolvable at any step.
//	    lr := resolved.Schedule()
//	    fmt.Printf("rate at step 0: %g, at step 1000: %g\n", lr.At(0), lr.At(1000))
//	}
//
// Batch Linting:
//
//	paths, _ := params.Discover("configs/")
//	results := params.LintAll(ctx, paths, params.LintOptions{Concurrency: 8})
//	for _, res := range results {
//	    if !res.OK() {
//	        fmt.Printf("%s: %v\n", res.Path, res.Err)
//	    }
//	}
//
// The paramzoo-cli tool under cmd/paramzoo-cli wraps these packages with
// validate, lint, schedule, describe, and history commands.
package paramzoo
