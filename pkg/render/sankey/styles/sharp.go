package styles

import (
	"bytes"
	"fmt"
)

// Sharp draws bands as straight-edged quadrilaterals. It is the cheapest
// style and the most literal rendering of the layout geometry.
type Sharp struct{}

// Name implements Style.
func (Sharp) Name() string { return "sharp" }

// RenderSegment implements Style.
func (Sharp) RenderSegment(buf *bytes.Buffer, s SegmentShape) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		s.X, s.Y, s.W, s.H, s.Fill)
}

// RenderBand implements Style.
func (Sharp) RenderBand(buf *bytes.Buffer, b BandShape) {
	fmt.Fprintf(buf, `  <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="0.5"/>`+"\n",
		b.X0, b.FromTop, b.X1, b.ToTop, b.X1, b.ToBot, b.X0, b.FromBot,
		b.Fill, b.Alpha, b.Fill, b.Alpha)
}

var _ Style = Sharp{}
