package corpus

import (
	"context"
	"os"

	"github.com/apache/arrow/go/v13/arrow/csv"

	"github.com/lightcone-ml/paramzoo/pkg/errors"
)

// ProfileCSVDir profiles a directory of .csv shards as the BERT pipelines
// read them. The meta.dat index is the fast path; without it every shard is
// scanned with the arrow CSV reader, inferring the column layout from the
// header row.
func ProfileCSVDir(ctx context.Context, dir string) (Stats, error) {
	shards, err := listShards(dir, ".csv")
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, shard := range shards {
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
		return stats, nil
	}

	for _, shard := range shards {
		if err := errors.CheckContext(ctx, "profile "+dir); err != nil {
			return Stats{}, err
		}
		rows, err := countCSVRows(shard)
		if err != nil {
			return Stats{}, err
		}
		stats.Examples += rows
	}
	stats.Counted = true
	return stats, nil
}

// countCSVRows reads one shard and counts its example rows. The header row
// names the columns and is not counted.
func countCSVRows(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, errors.MissingResource, "cannot open shard"),
			errors.Fields{"shard": path})
	}
	defer f.Close()

	rdr := csv.NewInferringReader(f,
		csv.WithHeader(true),
		csv.WithChunk(1024),
		csv.WithNullReader(true, ""),
	)
	defer rdr.Release()

	var rows int64
	for rdr.Next() {
		rows += rdr.Record().NumRows()
	}
	if err := rdr.Err(); err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "cannot parse shard"),
			errors.Fields{"shard": path})
	}
	return rows, nil
}
