package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordAndFind(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	entry := Entry{
		Fingerprint: "abc123",
		Path:        "/configs/gpt2_small.yaml",
		Family:      "training",
		Mode:        "train",
		MaxSteps:    24334,
	}
	require.NoError(t, r.Record(ctx, entry))

	got, ok, err := r.Find(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Path, got.Path)
	assert.Equal(t, entry.Family, got.Family)
	assert.Equal(t, entry.Mode, got.Mode)
	assert.Equal(t, entry.MaxSteps, got.MaxSteps)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.ValidatedAt.IsZero())

	_, ok, err = r.Find(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordRefreshesDuplicateFingerprint(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	first := Entry{
		Fingerprint: "dup",
		Path:        "/configs/a.yaml",
		Family:      "training",
		Mode:        "train",
		MaxSteps:    100,
		CreatedAt:   time.Now().Add(-time.Hour),
		ValidatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, r.Record(ctx, first))

	// Same document, moved and re-validated.
	second := first
	second.Path = "/configs/renamed.yaml"
	second.ValidatedAt = time.Now()
	require.NoError(t, r.Record(ctx, second))

	got, ok, err := r.Find(ctx, "dup")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/configs/renamed.yaml", got.Path)
	assert.True(t, got.ValidatedAt.After(got.CreatedAt),
		"validated_at should refresh while created_at keeps the first sighting")

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "duplicate fingerprints must not add rows")
}

func TestListNewestFirst(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	for i, fp := range []string{"one", "two", "three"} {
		require.NoError(t, r.Record(ctx, Entry{
			Fingerprint: fp,
			Path:        "/configs/" + fp + ".yaml",
			Family:      "preprocessing",
			ValidatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := r.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "three", entries[0].Fingerprint)
	assert.Equal(t, "one", entries[2].Fingerprint)

	limited, err := r.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "three", limited[0].Fingerprint)
}

func TestRecordRejectsIncompleteEntries(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	assert.Error(t, r.Record(ctx, Entry{Family: "training"}), "missing fingerprint")
	assert.Error(t, r.Record(ctx, Entry{Fingerprint: "x"}), "missing family")
}

func TestOpenCreatesMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "..", "fresh.db")
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	n, err := r.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
