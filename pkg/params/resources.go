package params

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lightcone-ml/paramzoo/pkg/errors"
)

// resolvePath interprets a manifest path field relative to the directory
// holding the manifest. Absolute paths pass through untouched.
func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

type resourceCheck struct {
	field string
	path  string
	dir   bool
}

// sweepResources stats every referenced input and reports all failures in
// one MissingResource error. Output locations (model_dir, output_dir) are
// never checked; the run creates those.
func sweepResources(baseDir string, checks []resourceCheck) error {
	var missing []string
	for _, c := range checks {
		if c.path == "" {
			continue
		}
		resolved := resolvePath(baseDir, c.path)
		info, err := os.Stat(resolved)
		switch {
		case err != nil:
			missing = append(missing, fmt.Sprintf("%s: %s does not exist", c.field, resolved))
		case c.dir && !info.IsDir():
			missing = append(missing, fmt.Sprintf("%s: %s is not a directory", c.field, resolved))
		case !c.dir && info.IsDir():
			missing = append(missing, fmt.Sprintf("%s: %s is a directory, not a file", c.field, resolved))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.WithFields(
		errors.New(errors.MissingResource,
			fmt.Sprintf("missing input resources: %s", strings.Join(missing, "; "))),
		errors.Fields{"missing": missing})
}

func checkTrainingResources(cfg *TrainingParams, baseDir string) error {
	var checks []resourceCheck
	if cfg.TrainInput != nil {
		checks = append(checks,
			resourceCheck{field: "train_input.data_dir", path: cfg.TrainInput.DataDir, dir: true},
			resourceCheck{field: "train_input.vocab_file", path: cfg.TrainInput.VocabFile},
		)
	}
	if cfg.EvalInput != nil {
		checks = append(checks,
			resourceCheck{field: "eval_input.data_dir", path: cfg.EvalInput.DataDir, dir: true},
			resourceCheck{field: "eval_input.vocab_file", path: cfg.EvalInput.VocabFile},
		)
	}
	return sweepResources(baseDir, checks)
}

func checkPreprocessingResources(cfg *PreprocessingParams, baseDir string) error {
	checks := []resourceCheck{
		{field: "setup.input_dir", path: cfg.Setup.InputDir, dir: true},
		{field: "processing.vocab_file", path: cfg.Processing.VocabFile},
		{field: "processing.encoder_file", path: cfg.Processing.EncoderFile},
	}
	return sweepResources(baseDir, checks)
}
