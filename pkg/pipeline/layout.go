package pipeline

import (
	"context"
	"time"

	"github.com/flowband/flowband/pkg/flow"
	"github.com/flowband/flowband/pkg/flow/layout"
	"github.com/flowband/flowband/pkg/observability"
)

// ComputeLayout runs the layout engine over already-loaded records.
// The result is a pure function of records and options; nothing is
// cached between calls.
func (r *Runner) ComputeLayout(ctx context.Context, recs flow.Records, opts Options) (*layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnLayoutStart(ctx, len(recs))
	start := time.Now()

	l, err := layout.Build(recs, opts.LayoutOptions()...)
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(start), err)
	return l, err
}
