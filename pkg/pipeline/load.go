package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/flowband/flowband/pkg/dataset"
	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow"
	"github.com/flowband/flowband/pkg/observability"
)

// Load reads flow records from the configured input: a local CSV or
// JSON file, or a remote URL fetched through the runner's fetcher.
func (r *Runner) Load(ctx context.Context, opts Options) (flow.Records, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnLoadStart(ctx, opts.Input)
	start := time.Now()

	recs, err := r.load(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.Input, len(recs), time.Since(start), err)
	return recs, err
}

func (r *Runner) load(ctx context.Context, opts Options) (flow.Records, error) {
	if opts.IsRemote() {
		return r.Fetcher.Dataset(ctx, opts.Input, opts.Columns(), opts.Refresh)
	}

	switch strings.ToLower(filepath.Ext(opts.Input)) {
	case ".csv":
		return dataset.LoadCSV(opts.Input, opts.Columns())
	case ".json":
		return dataset.LoadJSON(opts.Input)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported input type: %s (expected .csv or .json)", opts.Input)
	}
}
