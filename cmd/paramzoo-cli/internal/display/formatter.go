// Package display renders CLI output: verdict lines, manifest summaries,
// schedule tables, and registry history. All coloring lives here so the
// command implementations stay plain.
package display

import (
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/lightcone-ml/paramzoo/pkg/corpus"
	"github.com/lightcone-ml/paramzoo/pkg/errors"
	"github.com/lightcone-ml/paramzoo/pkg/params"
	"github.com/lightcone-ml/paramzoo/pkg/registry"
	"github.com/lightcone-ml/paramzoo/pkg/schedule"
)

var (
	passMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
	heading  = color.New(color.FgBlue, color.Bold).SprintFunc()
	label    = color.New(color.FgCyan).SprintFunc()
	detail   = color.New(color.FgYellow).SprintFunc()
)

// Pass renders a green verdict line for a manifest that validated cleanly.
func Pass(path string, family params.Family) string {
	return fmt.Sprintf("%s %s (%s)", passMark("PASS"), path, family)
}

// Fail renders a red verdict line for a manifest that did not.
func Fail(path string) string {
	return fmt.Sprintf("%s %s", failMark("FAIL"), path)
}

// FormatLoadError expands a load failure into one indented line per
// problem, so a manifest with five violations shows five lines instead of
// one run-on message.
func FormatLoadError(err error) string {
	var out strings.Builder

	switch errors.CodeOf(err) {
	case errors.UnknownField:
		out.WriteString(fmt.Sprintf("  %s unknown keys in document:\n", detail("unknown-field")))
		for _, key := range fieldStrings(err, "keys") {
			out.WriteString(fmt.Sprintf("    - %s\n", key))
		}
	case errors.ValidationFailed:
		var verrs params.ValidationErrors
		if goerrors.As(err, &verrs) {
			out.WriteString(fmt.Sprintf("  %s %d violation(s):\n", detail("validation"), len(verrs)))
			for _, v := range verrs {
				out.WriteString(fmt.Sprintf("    - %s\n", v.Error()))
			}
		} else {
			out.WriteString(fmt.Sprintf("  %s %s\n", detail("validation"), err.Error()))
		}
	case errors.MissingResource:
		out.WriteString(fmt.Sprintf("  %s referenced inputs not found:\n", detail("missing-resource")))
		for _, m := range fieldStrings(err, "missing") {
			out.WriteString(fmt.Sprintf("    - %s\n", m))
		}
	default:
		out.WriteString(fmt.Sprintf("  %s %s\n", detail(errors.CodeOf(err).String()), err.Error()))
	}

	return out.String()
}

// fieldStrings pulls a []string field off the error chain, falling back to
// nothing when the error carries no structured fields.
func fieldStrings(err error, key string) []string {
	var e *errors.Error
	if !goerrors.As(err, &e) {
		return nil
	}
	switch v := e.Fields()[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

// FormatTrainingSummary renders the resolved facts of a training manifest.
func FormatTrainingSummary(r *params.ResolvedTraining) (string, error) {
	cfg, err := r.Params()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("%s\n", heading("Training manifest")))
	out.WriteString(fmt.Sprintf("  %s %s\n", label("path:"), r.Path()))
	out.WriteString(fmt.Sprintf("  %s %s\n", label("fingerprint:"), shortFingerprint(r.Fingerprint())))
	out.WriteString(fmt.Sprintf("  %s %s, %d steps, %d replica(s)\n",
		label("run:"), cfg.RunConfig.Mode, cfg.RunConfig.MaxSteps, cfg.RunConfig.NumReplicas))

	m := cfg.Model
	out.WriteString(fmt.Sprintf("  %s hidden %d x %d layers, %d heads (head size %d), filter %d, vocab %d\n",
		label("model:"), m.HiddenSize, m.NumHiddenLayers, m.NumHeads, r.HeadSize(), m.FilterSize, m.VocabSize))
	out.WriteString(fmt.Sprintf("  %s %s, weight decay %g, loss scale %s\n",
		label("optimizer:"), cfg.Optimizer.OptimizerType,
		cfg.Optimizer.WeightDecayRate, cfg.Optimizer.LossScalingFactor))

	total, bounded := r.Schedule().TotalSteps()
	if bounded {
		out.WriteString(fmt.Sprintf("  %s %d segment(s) over %d steps, final rate %g\n",
			label("schedule:"), len(cfg.Optimizer.LearningRate), total, r.Schedule().Final()))
	} else {
		out.WriteString(fmt.Sprintf("  %s constant rate %g\n",
			label("schedule:"), r.Schedule().Final()))
	}

	if cfg.TrainInput != nil {
		out.WriteString(fmt.Sprintf("  %s %s, batch %d, shuffle buffer %d\n      %s\n",
			label("train input:"), cfg.TrainInput.DataProcessor, cfg.TrainInput.BatchSize,
			cfg.TrainInput.EffectiveShuffleBuffer(), r.TrainDataDir()))
	}
	if cfg.EvalInput != nil {
		out.WriteString(fmt.Sprintf("  %s %s, batch %d\n      %s\n",
			label("eval input:"), cfg.EvalInput.DataProcessor, cfg.EvalInput.BatchSize,
			r.EvalDataDir()))
	}
	out.WriteString(fmt.Sprintf("  %s %s\n", label("model dir:"), r.ModelDir()))

	return out.String(), nil
}

// FormatPreprocessingSummary renders the resolved facts of a preprocessing
// manifest.
func FormatPreprocessingSummary(r *params.ResolvedPreprocessing) (string, error) {
	cfg, err := r.Params()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("%s\n", heading("Preprocessing manifest")))
	out.WriteString(fmt.Sprintf("  %s %s\n", label("path:"), r.Path()))
	out.WriteString(fmt.Sprintf("  %s %s\n", label("fingerprint:"), shortFingerprint(r.Fingerprint())))
	out.WriteString(fmt.Sprintf("  %s %s with %d process(es)\n",
		label("processor:"), cfg.Setup.DatasetProcessor, cfg.Setup.Processes))
	out.WriteString(fmt.Sprintf("  %s %s, max_seq_length %d, short_seq_prob %g\n",
		label("tokenizer:"), cfg.Processing.TokenizerType,
		cfg.Processing.MaxSeqLength, cfg.Processing.ShortSeqProb))
	out.WriteString(fmt.Sprintf("  %s %s -> %s\n", label("corpus:"), r.InputDir(), r.OutputDir()))
	if r.VocabFile() != "" {
		out.WriteString(fmt.Sprintf("  %s %s\n", label("vocab:"), r.VocabFile()))
	}
	if r.EncoderFile() != "" {
		out.WriteString(fmt.Sprintf("  %s %s\n", label("encoder:"), r.EncoderFile()))
	}

	var cleanup []string
	if cfg.Dataset.UseFtfy {
		cleanup = append(cleanup, fmt.Sprintf("ftfy(%s)", cfg.Dataset.FtfyNormalizer))
	}
	if cfg.Dataset.WikitextDetokenize {
		cleanup = append(cleanup, "wikitext-detokenize")
	}
	if len(cleanup) == 0 {
		cleanup = append(cleanup, "none")
	}
	out.WriteString(fmt.Sprintf("  %s %s\n", label("cleanup:"), strings.Join(cleanup, ", ")))
	out.WriteString(fmt.Sprintf("  %s %d per shard as %q\n",
		label("sharding:"), cfg.Processing.FilesPerRecord, cfg.Processing.OutputName))

	return out.String(), nil
}

// FormatSegments renders the segment table of a schedule.
func FormatSegments(s schedule.Schedule) string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("%s\n", heading("Schedule segments")))

	var start int64
	for i, seg := range s {
		switch {
		case seg.Scheduler == schedule.Constant && seg.Steps == 0:
			out.WriteString(fmt.Sprintf("  %d: %-12s rate %-10g (unbounded)\n",
				i, seg.Scheduler, seg.InitialLearningRate))
		default:
			out.WriteString(fmt.Sprintf("  %d: %-12s %g -> %g over steps %d..%d\n",
				i, seg.Scheduler, seg.InitialLearningRate, seg.EndValue(),
				start, start+seg.Steps-1))
		}
		start += seg.Steps
	}
	return out.String()
}

// FormatRates renders resolved rates at the given steps.
func FormatRates(r *schedule.Resolver, steps []int64) string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("%s\n", heading("Resolved rates")))
	out.WriteString(fmt.Sprintf("  %10s  %s\n", "step", "rate"))
	for _, step := range steps {
		out.WriteString(fmt.Sprintf("  %10d  %.8g\n", step, r.At(step)))
	}
	return out.String()
}

// FormatStats renders one profiled data directory for lint --deep.
func FormatStats(section, dir string, stats corpus.Stats) string {
	examples := "example count unavailable"
	if stats.Counted {
		examples = fmt.Sprintf("%d examples", stats.Examples)
	}
	return fmt.Sprintf("  %s %s: %d shard(s), %s, %d bytes\n",
		label(section+":"), dir, stats.Files, examples, stats.Bytes)
}

// FormatHistory renders registry entries newest first.
func FormatHistory(entries []registry.Entry) string {
	if len(entries) == 0 {
		return "registry is empty\n"
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("%s\n", heading("Validated manifests")))
	for _, e := range entries {
		out.WriteString(fmt.Sprintf("  %s  %-13s %s\n",
			e.ValidatedAt.Format(time.DateTime), e.Family, e.Path))
		extra := fmt.Sprintf("fingerprint %s", shortFingerprint(e.Fingerprint))
		if e.Mode != "" {
			extra += fmt.Sprintf(", mode %s, %d steps", e.Mode, e.MaxSteps)
		}
		out.WriteString(fmt.Sprintf("      %s\n", extra))
	}
	return out.String()
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
