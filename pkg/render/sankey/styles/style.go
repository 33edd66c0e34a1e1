// Package styles defines the visual styles for sankey SVG rendering.
//
// A style controls only the shape of the drawn elements; positioning is
// computed by the layout engine and passed in already converted to SVG
// coordinates (y growing downward).
package styles

import "bytes"

// Style renders the two element kinds of a flow diagram.
type Style interface {
	// Name identifies the style in JSON output and CLI flags.
	Name() string
	// RenderSegment writes the SVG for one stack segment rectangle.
	RenderSegment(buf *bytes.Buffer, s SegmentShape)
	// RenderBand writes the SVG for one flow band.
	RenderBand(buf *bytes.Buffer, b BandShape)
}

// SegmentShape is a stack segment in SVG coordinates.
type SegmentShape struct {
	X, Y, W, H float64
	Fill       string
}

// BandShape is a flow band in SVG coordinates. Y0/Y1 pairs are the top
// and bottom edges at the left (From) and right (To) ends.
type BandShape struct {
	X0, X1             float64
	FromTop, FromBot   float64
	ToTop, ToBot       float64
	Fill               string
	Alpha              float64
}
