package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextCarriers(t *testing.T) {
	ctx := context.Background()

	ctxWithManifest := WithManifestPath(ctx, "configs/params_bert_base.yaml")
	path, ok := GetManifestPath(ctxWithManifest)
	assert.True(t, ok)
	assert.Equal(t, "configs/params_bert_base.yaml", path)

	ctxWithRun := WithRunID(ctx, "a6e2")
	id, ok := GetRunID(ctxWithRun)
	assert.True(t, ok)
	assert.Equal(t, "a6e2", id)

	// Values should be absent on an unadorned context.
	_, ok = GetManifestPath(ctx)
	assert.False(t, ok)
	_, ok = GetRunID(ctx)
	assert.False(t, ok)
}
