package params

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lightcone-ml/paramzoo/pkg/errors"
	"github.com/lightcone-ml/paramzoo/pkg/schedule"
	"github.com/lightcone-ml/paramzoo/pkg/textnorm"
)

// Resolved is the surface shared by both resolved manifest families.
type Resolved interface {
	// Family reports which schema the manifest was validated against.
	Family() Family
	// Path is the absolute path of the source document.
	Path() string
	// RunID is a fresh unique id minted for this load.
	RunID() string
	// Fingerprint is the sha256 of the raw document bytes.
	Fingerprint() string
}

// Clone returns a deep copy of the manifest.
func (p *TrainingParams) Clone() (*TrainingParams, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "cannot marshal manifest")
	}
	var out TrainingParams
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "cannot unmarshal manifest copy")
	}
	return &out, nil
}

// Clone returns a deep copy of the manifest.
func (p *PreprocessingParams) Clone() (*PreprocessingParams, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "cannot marshal manifest")
	}
	var out PreprocessingParams
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "cannot unmarshal manifest copy")
	}
	return &out, nil
}

// ResolvedTraining is a frozen, validated training manifest. All fields are
// unexported; the struct cannot be mutated after construction, and Params
// hands out deep copies.
type ResolvedTraining struct {
	params       TrainingParams
	path         string
	runID        string
	fingerprint  string
	lr           *schedule.Resolver
	headSize     int
	trainDataDir string
	evalDataDir  string
	modelDir     string
}

func newResolvedTraining(path string, raw []byte, cfg *TrainingParams) (*ResolvedTraining, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	baseDir := filepath.Dir(absPath)

	clone, err := cfg.Clone()
	if err != nil {
		return nil, err
	}

	lr, err := schedule.NewResolver(clone.Optimizer.LearningRate)
	if err != nil {
		return nil, errors.Wrap(err, errors.ValidationFailed, "unusable learning-rate schedule")
	}

	sum := sha256.Sum256(raw)
	r := &ResolvedTraining{
		params:      *clone,
		path:        absPath,
		runID:       uuid.New().String(),
		fingerprint: hex.EncodeToString(sum[:]),
		lr:          lr,
		modelDir:    resolvePath(baseDir, clone.RunConfig.ModelDir),
	}
	if clone.Model.NumHeads > 0 {
		r.headSize = clone.Model.HiddenSize / clone.Model.NumHeads
	}
	if clone.TrainInput != nil {
		r.trainDataDir = resolvePath(baseDir, clone.TrainInput.DataDir)
	}
	if clone.EvalInput != nil {
		r.evalDataDir = resolvePath(baseDir, clone.EvalInput.DataDir)
	}
	return r, nil
}

func (r *ResolvedTraining) Family() Family      { return FamilyTraining }
func (r *ResolvedTraining) Path() string        { return r.path }
func (r *ResolvedTraining) RunID() string       { return r.runID }
func (r *ResolvedTraining) Fingerprint() string { return r.fingerprint }

// Params returns a deep copy of the validated manifest.
func (r *ResolvedTraining) Params() (*TrainingParams, error) {
	return r.params.Clone()
}

// Schedule answers rate-at-step queries for the manifest's learning-rate
// schedule.
func (r *ResolvedTraining) Schedule() *schedule.Resolver { return r.lr }

// HeadSize is hidden_size / num_heads.
func (r *ResolvedTraining) HeadSize() int { return r.headSize }

// MaxSteps is the training step budget.
func (r *ResolvedTraining) MaxSteps() int64 { return r.params.RunConfig.MaxSteps }

// Mode reports which loops the run executes.
func (r *ResolvedTraining) Mode() RunMode { return r.params.RunConfig.Mode }

// TrainDataDir is the absolute training shard directory, or empty when the
// manifest has no train_input.
func (r *ResolvedTraining) TrainDataDir() string { return r.trainDataDir }

// EvalDataDir is the absolute eval shard directory, or empty when the
// manifest has no eval_input.
func (r *ResolvedTraining) EvalDataDir() string { return r.evalDataDir }

// ModelDir is the absolute checkpoint output directory.
func (r *ResolvedTraining) ModelDir() string { return r.modelDir }

// ResolvedPreprocessing is a frozen, validated preprocessing manifest.
type ResolvedPreprocessing struct {
	params      PreprocessingParams
	path        string
	runID       string
	fingerprint string
	inputDir    string
	outputDir   string
	vocabFile   string
	encoderFile string
	normalizer  func(string) string
}

func newResolvedPreprocessing(path string, raw []byte, cfg *PreprocessingParams) (*ResolvedPreprocessing, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	baseDir := filepath.Dir(absPath)

	clone, err := cfg.Clone()
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(raw)
	return &ResolvedPreprocessing{
		params:      *clone,
		path:        absPath,
		runID:       uuid.New().String(),
		fingerprint: hex.EncodeToString(sum[:]),
		inputDir:    resolvePath(baseDir, clone.Setup.InputDir),
		outputDir:   resolvePath(baseDir, clone.Setup.OutputDir),
		vocabFile:   resolvePath(baseDir, clone.Processing.VocabFile),
		encoderFile: resolvePath(baseDir, clone.Processing.EncoderFile),
		normalizer: textnorm.Normalizer(
			clone.Dataset.FtfyNormalizer,
			clone.Dataset.UseFtfy,
			clone.Dataset.WikitextDetokenize),
	}, nil
}

func (r *ResolvedPreprocessing) Family() Family      { return FamilyPreprocessing }
func (r *ResolvedPreprocessing) Path() string        { return r.path }
func (r *ResolvedPreprocessing) RunID() string       { return r.runID }
func (r *ResolvedPreprocessing) Fingerprint() string { return r.fingerprint }

// Params returns a deep copy of the validated manifest.
func (r *ResolvedPreprocessing) Params() (*PreprocessingParams, error) {
	return r.params.Clone()
}

// InputDir is the absolute raw-corpus directory.
func (r *ResolvedPreprocessing) InputDir() string { return r.inputDir }

// OutputDir is the absolute shard output directory.
func (r *ResolvedPreprocessing) OutputDir() string { return r.outputDir }

// VocabFile is the absolute vocabulary path, or empty when unset.
func (r *ResolvedPreprocessing) VocabFile() string { return r.vocabFile }

// EncoderFile is the absolute BPE merges path, or empty when unset.
func (r *ResolvedPreprocessing) EncoderFile() string { return r.encoderFile }

// Processes is the preprocessing worker count.
func (r *ResolvedPreprocessing) Processes() int { return r.params.Setup.Processes }

// Normalizer is the text-cleanup function assembled from the dataset
// section flags.
func (r *ResolvedPreprocessing) Normalizer() func(string) string { return r.normalizer }
