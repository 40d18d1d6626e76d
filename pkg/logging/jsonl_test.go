package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLOutputWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lint.jsonl")

	out, err := NewJSONLOutput(path)
	require.NoError(t, err)

	entry := LogEntry{
		Time:         time.Now().UnixNano(),
		Severity:     WARN,
		Message:      "schedule shorter than max_steps",
		ManifestPath: "params.yaml",
		Fields:       map[string]interface{}{"missing_steps": 100},
	}
	require.NoError(t, out.Write(entry))
	require.NoError(t, out.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "WARN", record["severity"])
	assert.Equal(t, "schedule shorter than max_steps", record["message"])
	assert.Equal(t, "params.yaml", record["manifest"])
}

func TestJSONLOutputRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lint.jsonl")

	// Rotate after ~200 bytes so a handful of entries forces it.
	out, err := NewJSONLOutput(path, WithRotation(200, 2))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		entry := LogEntry{
			Time:     time.Now().UnixNano(),
			Severity: INFO,
			Message:  "manifest validated",
		}
		require.NoError(t, out.Write(entry))
	}
	require.NoError(t, out.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Greater(t, len(entries), 1, "rotation should have produced backup files")

	// The live file still holds valid JSON lines.
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
	}
	require.NoError(t, scanner.Err())
}
