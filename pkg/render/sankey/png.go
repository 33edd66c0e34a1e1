package sankey

import (
	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow/layout"
	"github.com/flowband/flowband/pkg/render"
)

// RenderPNG renders the layout as SVG and rasterizes it at the given
// scale factor. Requires rsvg-convert on PATH.
func RenderPNG(l *layout.Layout, scale float64, opts ...SVGOption) ([]byte, error) {
	if scale <= 0 {
		scale = 1.0
	}
	png, err := render.ToPNG(RenderSVG(l, opts...), scale)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "PNG conversion failed")
	}
	return png, nil
}
