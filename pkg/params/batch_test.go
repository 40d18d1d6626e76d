package params

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightcone-ml/paramzoo/internal/testutil"
	"github.com/lightcone-ml/paramzoo/pkg/errors"
)

func TestLintAllMixedOutcomes(t *testing.T) {
	_, good := testutil.TrainingWorkspace(t)
	_, preprocess := testutil.PreprocessingWorkspace(t)

	broken := t.TempDir()
	badDoc := strings.Replace(testutil.TrainingManifest(), "hidden_size: 768", "hidden_size: 767", 1)
	testutil.MkDir(t, broken, "data/train")
	bad := testutil.WriteFile(t, broken, "bad.yaml", badDoc)

	paths := []string{good, bad, preprocess}
	results := LintAll(context.Background(), paths, LintOptions{Concurrency: 2})

	require.Len(t, results, 3)

	// Results keep input order regardless of which worker finished first.
	for i, path := range paths {
		assert.Equal(t, path, results[i].Path)
	}

	assert.True(t, results[0].OK())
	assert.Equal(t, FamilyTraining, results[0].Family)

	assert.False(t, results[1].OK())
	assert.Equal(t, errors.ValidationFailed, errors.CodeOf(results[1].Err))

	assert.True(t, results[2].OK())
	assert.Equal(t, FamilyPreprocessing, results[2].Family)
}

func TestLintAllUnreadableFile(t *testing.T) {
	results := LintAll(context.Background(), []string{"/does/not/exist.yaml"}, LintOptions{})

	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.Equal(t, errors.ResourceNotFound, errors.CodeOf(results[0].Err))
}

func TestLintAllDefaultsConcurrency(t *testing.T) {
	_, manifest := testutil.TrainingWorkspace(t)

	// Zero concurrency means one worker per CPU, not zero workers.
	results := LintAll(context.Background(), []string{manifest}, LintOptions{})
	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
}

func TestLintAllHonorsCancellation(t *testing.T) {
	_, manifest := testutil.TrainingWorkspace(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := LintAll(ctx, []string{manifest, manifest}, LintOptions{Concurrency: 1})
	require.Len(t, results, 2)
	for _, res := range results {
		require.Error(t, res.Err)
		assert.Equal(t, errors.Canceled, errors.CodeOf(res.Err))
	}
}

func TestLintAllEmptyInput(t *testing.T) {
	results := LintAll(context.Background(), nil, LintOptions{})
	assert.Empty(t, results)
}
