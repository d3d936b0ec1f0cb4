// Package build orchestrates the indexing pipeline: discover workflow
// files, build one record per file, aggregate, and write the index.
package build

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/chazuruo/flowdex/internal/catalog"
	"github.com/chazuruo/flowdex/internal/discovery"
	flowdexerrors "github.com/chazuruo/flowdex/internal/errors"
	"github.com/chazuruo/flowdex/internal/workflows"
)

// Options contains the options for one pipeline run.
type Options struct {
	// Root is the directory tree to scan.
	Root string
	// OutputPath is where the index document is written. Empty means
	// build only, skip the write (used by dry runs and tests).
	OutputPath string
	// Taxonomy is the category keyword table.
	Taxonomy catalog.Taxonomy
	// Excludes replaces the default discovery exclusion list when
	// non-nil.
	Excludes []string
	// Workers caps the number of concurrent record builders.
	// Zero means one per CPU.
	Workers int
}

// Failure is one skipped file with its diagnostic. Failures never
// abort the run; they are reported and the batch continues.
type Failure struct {
	Path string
	Err  error
}

// Output contains the result of a pipeline run.
type Output struct {
	// Index is the aggregated document.
	Index *catalog.Index
	// Discovered is the number of candidate files found.
	Discovered int
	// Failures lists files that were skipped, in path order.
	Failures []Failure
}

// Processed returns the number of successfully built records.
func (o *Output) Processed() int {
	return o.Index.TotalCount
}

// Run executes the full pipeline. Discovery and final serialization
// errors are fatal; everything in between is isolated per file.
//
// Per-file work fans out across Workers goroutines. Results land in a
// slot per input path, so parallel completion order never leaks into
// the output: records are re-sorted by gh_path before aggregation.
func Run(ctx context.Context, opts Options) (*Output, error) {
	paths, err := discovery.Discover(opts.Root, discovery.Options{Excludes: opts.Excludes})
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type result struct {
		record catalog.Record
		err    error
	}
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := processFile(opts.Taxonomy, opts.Root, path)
			results[i] = result{record: rec, err: err}
			return nil
		})
	}

	// Per-file errors are carried in results, never returned from the
	// group; only cancellation can surface here.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]catalog.Record, 0, len(paths))
	var failures []Failure
	for i, res := range results {
		if res.err != nil {
			failures = append(failures, Failure{Path: paths[i], Err: res.err})
			continue
		}
		records = append(records, res.record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].GHPath < records[j].GHPath
	})

	out := &Output{
		Index:      catalog.Aggregate(records),
		Discovered: len(paths),
		Failures:   failures,
	}

	if opts.OutputPath != "" {
		if err := out.Index.Save(opts.OutputPath); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// processFile builds the record for one discovered path. Any failure
// here is file-scoped.
func processFile(tax catalog.Taxonomy, root, path string) (catalog.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return catalog.Record{}, &flowdexerrors.DocumentError{Path: path, Err: fmt.Errorf("%w: %v", flowdexerrors.ErrIO, err)}
	}

	doc, err := workflows.LoadJSON(path)
	if err != nil {
		return catalog.Record{}, &flowdexerrors.DocumentError{Path: path, Err: fmt.Errorf("%w: %v", flowdexerrors.ErrParse, err)}
	}

	rec, err := catalog.BuildRecord(tax, root, path, doc, info.ModTime())
	if err != nil {
		return catalog.Record{}, &flowdexerrors.DocumentError{Path: path, Err: err}
	}

	return rec, nil
}
