package sankey

import (
	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow/layout"
	"github.com/flowband/flowband/pkg/render"
)

// RenderPDF renders the layout as SVG and converts it to a vector PDF.
// Requires rsvg-convert on PATH.
func RenderPDF(l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	pdf, err := render.ToPDF(RenderSVG(l, opts...))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "PDF conversion failed")
	}
	return pdf, nil
}
