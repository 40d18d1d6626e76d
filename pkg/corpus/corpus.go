// Package corpus verifies the data directories a manifest points at before a
// run is scheduled. Validation proves the directory exists; profiling proves
// it actually holds shards, and counts examples where the layout exposes a
// count, so an underfilled dataset is caught at lint time instead of minutes
// into a run.
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lightcone-ml/paramzoo/pkg/errors"
	"github.com/lightcone-ml/paramzoo/pkg/params"
)

// MetaFile is the per-directory shard index written by the preprocessing
// pipeline: one "<file> <examples>" line per shard.
const MetaFile = "meta.dat"

// Stats summarizes one profiled data directory.
type Stats struct {
	// Shard files found
	Files int
	// Total examples across shards; meaningful only when Counted
	Examples int64
	// Combined shard size on disk
	Bytes int64
	// Whether the layout exposed an example count
	Counted bool
}

// Profile inspects the data directory the way the named input pipeline
// would read it: HDF5 shards for the GPT pipeline, CSV shards for the BERT
// pipelines.
func Profile(ctx context.Context, dir string, proc params.DataProcessor) (Stats, error) {
	if proc.BERT() {
		return ProfileCSVDir(ctx, dir)
	}
	return ProfileHDF5Dir(ctx, dir)
}

// ProfileHDF5Dir profiles a directory of .h5 shards. Example counts come
// from the meta.dat index when present; the shard payloads themselves are
// opaque here.
func ProfileHDF5Dir(ctx context.Context, dir string) (Stats, error) {
	shards, err := listShards(dir, ".h5")
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, shard := range shards {
		if err := errors.CheckContext(ctx, "profile "+dir); err != nil {
			return Stats{}, err
		}
		info, err := os.Stat(shard)
		if err != nil {
			return Stats{}, errors.WithFields(
				errors.Wrap(err, errors.MissingResource, "cannot stat shard"),
				errors.Fields{"shard": shard})
		}
		stats.Files++
		stats.Bytes += info.Size()
	}

	if total, ok, err := readMeta(dir); err != nil {
		return Stats{}, err
	} else if ok {
		stats.Examples = total
		stats.Counted = true
	}

	return stats, nil
}

// CheckCapacity reports whether the profiled examples can fill one batch per
// replica. Mirrors the runtime's own refusal to shard a dataset smaller than
// num_replicas * batch_size. Uncounted profiles pass; there is nothing to
// compare.
func (s Stats) CheckCapacity(batchSize, numReplicas int) error {
	if !s.Counted || batchSize <= 0 || numReplicas <= 0 {
		return nil
	}
	if s.Examples/int64(numReplicas) < int64(batchSize) {
		return errors.WithFields(
			errors.New(errors.InvalidInput, fmt.Sprintf(
				"dataset holds %d examples: too small for num_replicas %d and batch_size %d",
				s.Examples, numReplicas, batchSize)),
			errors.Fields{
				"examples":     s.Examples,
				"batch_size":   batchSize,
				"num_replicas": numReplicas,
			})
	}
	return nil
}

// listShards returns the sorted shard paths with the extension, rejecting
// missing directories and directories with no shards at all.
func listShards(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.MissingResource, "cannot read data directory"),
			errors.Fields{"dir": dir})
	}

	var shards []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			shards = append(shards, filepath.Join(dir, entry.Name()))
		}
	}
	if len(shards) == 0 {
		return nil, errors.WithFields(
			errors.New(errors.MissingResource,
				fmt.Sprintf("no %s shards in %s", ext, dir)),
			errors.Fields{"dir": dir, "ext": ext})
	}

	sort.Strings(shards)
	return shards, nil
}

// readMeta sums the example counts of a meta.dat index. The second result
// reports whether the index exists.
func readMeta(dir string) (int64, bool, error) {
	path := filepath.Join(dir, MetaFile)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.WithFields(
			errors.Wrap(err, errors.MissingResource, "cannot open shard index"),
			errors.Fields{"path": path})
	}
	defer f.Close()

	var total int64
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return 0, false, errors.WithFields(
				errors.New(errors.InvalidInput, fmt.Sprintf(
					"%s:%d: expected \"<file> <examples>\"", path, line)),
				errors.Fields{"path": path, "line": line})
		}
		count, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || count < 0 {
			return 0, false, errors.WithFields(
				errors.New(errors.InvalidInput, fmt.Sprintf(
					"%s:%d: %q is not an example count", path, line, fields[1])),
				errors.Fields{"path": path, "line": line})
		}
		total += count
	}
	if err := scanner.Err(); err != nil {
		return 0, false, errors.Wrap(err, errors.Unknown, "cannot read shard index")
	}
	return total, true, nil
}
