package pipeline

import (
	"context"
	"time"

	"github.com/flowband/flowband/pkg/flow/layout"
	"github.com/flowband/flowband/pkg/observability"
	"github.com/flowband/flowband/pkg/render/nodelink"
	"github.com/flowband/flowband/pkg/render/sankey"
	"github.com/flowband/flowband/pkg/render/sankey/styles"
)

// Render generates artifacts for every requested format from a
// computed layout.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()

		data, err := r.renderFormat(l, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func (r *Runner) renderFormat(l *layout.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sankey.RenderSVG(l, opts.svgOptions()...), nil
	case FormatPNG:
		return sankey.RenderPNG(l, opts.Scale, opts.svgOptions()...)
	case FormatPDF:
		return sankey.RenderPDF(l, opts.svgOptions()...)
	case FormatJSON:
		return sankey.RenderJSON(l)
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelink.Options{Values: !opts.HideValues})), nil
	default:
		return nil, ValidateFormat(format)
	}
}

// svgOptions translates pipeline render options into SVG sink options.
func (o *Options) svgOptions() []sankey.SVGOption {
	svgOpts := []sankey.SVGOption{sankey.WithStyle(styleFor(o.Style))}
	if o.HideValues {
		svgOpts = append(svgOpts, sankey.WithoutFlowValues())
	}
	return svgOpts
}

func styleFor(name string) styles.Style {
	if name == StyleSharp {
		return styles.Sharp{}
	}
	return styles.Smooth{}
}
