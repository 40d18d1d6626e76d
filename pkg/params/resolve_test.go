package params

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightcone-ml/paramzoo/internal/testutil"
)

func TestResolvedTrainingDerivedQuantities(t *testing.T) {
	root, manifest := testutil.TrainingWorkspace(t)

	resolved, err := LoadTraining(context.Background(), manifest)
	require.NoError(t, err)

	assert.Equal(t, FamilyTraining, resolved.Family())
	assert.Equal(t, 768/12, resolved.HeadSize())
	assert.Equal(t, int64(24334), resolved.MaxSteps())
	assert.Equal(t, ModeTrain, resolved.Mode())

	// Paths resolve against the manifest's directory, not the cwd.
	assert.Equal(t, filepath.Join(root, "data/train"), resolved.TrainDataDir())
	assert.Equal(t, filepath.Join(root, "model_dir"), resolved.ModelDir())
	assert.Empty(t, resolved.EvalDataDir())
	assert.True(t, filepath.IsAbs(resolved.Path()))

	// The constructed resolver matches the manifest's schedule.
	total, bounded := resolved.Schedule().TotalSteps()
	assert.True(t, bounded)
	assert.Equal(t, int64(24334), total)
	assert.Equal(t, 0.0, resolved.Schedule().At(0))
}

func TestResolvedTrainingIdentity(t *testing.T) {
	_, manifest := testutil.TrainingWorkspace(t)

	first, err := LoadTraining(context.Background(), manifest)
	require.NoError(t, err)
	second, err := LoadTraining(context.Background(), manifest)
	require.NoError(t, err)

	// Same bytes, same fingerprint; every load mints its own run id.
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Len(t, first.Fingerprint(), 64)
	assert.NotEqual(t, first.RunID(), second.RunID())
}

func TestResolvedTrainingParamsAreCopies(t *testing.T) {
	_, manifest := testutil.TrainingWorkspace(t)

	resolved, err := LoadTraining(context.Background(), manifest)
	require.NoError(t, err)

	cfg, err := resolved.Params()
	require.NoError(t, err)
	cfg.Model.HiddenSize = 1
	cfg.TrainInput.BatchSize = 1

	again, err := resolved.Params()
	require.NoError(t, err)
	assert.Equal(t, 768, again.Model.HiddenSize,
		"mutating an escaped copy must not touch the resolved snapshot")
	assert.Equal(t, 121, again.TrainInput.BatchSize)
}

func TestResolvedPreprocessingPaths(t *testing.T) {
	root, manifest := testutil.PreprocessingWorkspace(t)

	resolved, err := LoadPreprocessing(context.Background(), manifest)
	require.NoError(t, err)

	assert.Equal(t, FamilyPreprocessing, resolved.Family())
	assert.Equal(t, filepath.Join(root, "raw"), resolved.InputDir())
	assert.Equal(t, filepath.Join(root, "hdf5"), resolved.OutputDir())
	assert.Equal(t, filepath.Join(root, "vocab.bpe"), resolved.VocabFile())
	assert.Equal(t, filepath.Join(root, "encoder.json"), resolved.EncoderFile())
	assert.Equal(t, 2, resolved.Processes())
}

func TestResolvedPreprocessingNormalizer(t *testing.T) {
	_, manifest := testutil.PreprocessingWorkspace(t)

	resolved, err := LoadPreprocessing(context.Background(), manifest)
	require.NoError(t, err)

	// The fixture enables use_ftfy with NFC, so the normalizer strips
	// control characters and normalizes composition.
	normalize := resolved.Normalizer()
	require.NotNil(t, normalize)
	assert.Equal(t, "café text", normalize("café text\x00"))
}

func TestCloneIsDeep(t *testing.T) {
	cfg, err := ParseTraining([]byte(testutil.TrainingManifest()))
	require.NoError(t, err)

	clone, err := cfg.Clone()
	require.NoError(t, err)
	require.Equal(t, cfg, clone)

	clone.TrainInput.DataDir = "elsewhere"
	clone.Optimizer.LearningRate[0].Steps = 1

	assert.Equal(t, "data/train", cfg.TrainInput.DataDir)
	assert.Equal(t, int64(346), cfg.Optimizer.LearningRate[0].Steps)
}
