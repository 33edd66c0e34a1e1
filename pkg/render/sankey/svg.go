package sankey

import (
	"bytes"
	"fmt"

	"github.com/flowband/flowband/pkg/flow/layout"
	"github.com/flowband/flowband/pkg/render/sankey/styles"
)

// defaultFontFamily is used when no font option is given.
const defaultFontFamily = "Helvetica, Arial, sans-serif"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	fontFamily string
	flowValues bool
}

// WithStyle selects the band geometry style (styles.Smooth or
// styles.Sharp). The default is smooth.
func WithStyle(s styles.Style) SVGOption {
	return func(r *svgRenderer) { r.style = s }
}

// WithFontFamily overrides the label font family.
func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) { r.fontFamily = family }
}

// WithoutFlowValues suppresses the per-band value labels at the band
// endpoints.
func WithoutFlowValues() SVGOption {
	return func(r *svgRenderer) { r.flowValues = false }
}

// RenderSVG renders a computed layout as a standalone SVG document.
// The layout is not modified; rendering the same layout twice produces
// identical bytes.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{
		style:      styles.Smooth{},
		fontFamily: defaultFontFamily,
		flowValues: true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	// The layout's y axis grows upward; SVG's grows downward.
	flip := func(y float64) float64 { return l.Height - y }

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		-l.MarginX, -l.MarginY, l.Width+2*l.MarginX, l.Height+2*l.MarginY,
		l.Width+2*l.MarginX, l.Height+2*l.MarginY, r.fontFamily)

	labelPad := 0.05 * l.Width

	for _, stack := range []layout.Stack{l.Left, l.Right} {
		for _, seg := range stack.Segments {
			r.style.RenderSegment(&buf, styles.SegmentShape{
				X:    seg.X0,
				Y:    flip(seg.Top),
				W:    seg.Width(),
				H:    seg.Height(),
				Fill: seg.Color,
			})
		}
	}

	for _, band := range l.Bands {
		r.style.RenderBand(&buf, styles.BandShape{
			X0:      band.X0,
			X1:      band.X1,
			FromTop: flip(band.FromTop),
			FromBot: flip(band.FromBottom),
			ToTop:   flip(band.ToTop),
			ToBot:   flip(band.ToBottom),
			Fill:    band.Color,
			Alpha:   l.Alpha,
		})
	}

	r.renderStackLabels(&buf, l, flip, labelPad)
	if r.flowValues {
		r.renderFlowValues(&buf, l, flip)
	}
	r.renderTitles(&buf, l)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderStackLabels draws one label block per segment, right-aligned in
// the left gutter and left-aligned in the right gutter.
func (r *svgRenderer) renderStackLabels(buf *bytes.Buffer, l *layout.Layout, flip func(float64) float64, pad float64) {
	for _, seg := range l.Left.Segments {
		writeText(buf, seg.X0-pad, flip(seg.CenterY()), "end", l.FontSize+1, seg.Display)
	}
	for _, seg := range l.Right.Segments {
		writeText(buf, seg.X1+pad, flip(seg.CenterY()), "start", l.FontSize+1, seg.Display)
	}
}

// renderFlowValues draws each labeled band's value at both endpoints.
func (r *svgRenderer) renderFlowValues(buf *bytes.Buffer, l *layout.Layout, flip func(float64) float64) {
	inset := 0.01 * l.Width
	for _, band := range l.Bands {
		if band.Display == "" {
			continue
		}
		writeText(buf, band.X0+inset, flip(band.FromCenterY()), "start", l.FontSize, band.Display)
		writeText(buf, band.X1-inset, flip(band.ToCenterY()), "end", l.FontSize, band.Display)
	}
}

// renderTitles draws the optional stack headings above the frame.
func (r *svgRenderer) renderTitles(buf *bytes.Buffer, l *layout.Layout) {
	y := -0.03 * l.Height
	if l.Left.Title != "" {
		writeText(buf, 0, y, "end", l.FontSize+2, l.Left.Title)
	}
	if l.Right.Title != "" {
		writeText(buf, l.Width, y, "start", l.FontSize+2, l.Right.Title)
	}
}

func writeText(buf *bytes.Buffer, x, y float64, anchor string, size float64, text string) {
	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="central" font-size="%.1f">%s</text>`+"\n",
		x, y, anchor, size, styles.EscapeXML(text))
}
