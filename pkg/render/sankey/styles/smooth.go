package styles

import (
	"bytes"
	"fmt"
)

// Smooth draws bands as tapered cubic-bezier ribbons, the classic sankey
// look. Control points sit at the horizontal midpoint so each edge
// leaves and enters its stack horizontally.
type Smooth struct{}

// Name implements Style.
func (Smooth) Name() string { return "smooth" }

// RenderSegment implements Style.
func (Smooth) RenderSegment(buf *bytes.Buffer, s SegmentShape) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		s.X, s.Y, s.W, s.H, s.Fill)
}

// RenderBand implements Style.
func (Smooth) RenderBand(buf *bytes.Buffer, b BandShape) {
	mx := (b.X0 + b.X1) / 2
	fmt.Fprintf(buf,
		`  <path d="M %.2f,%.2f C %.2f,%.2f %.2f,%.2f %.2f,%.2f L %.2f,%.2f C %.2f,%.2f %.2f,%.2f %.2f,%.2f Z" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="0.5"/>`+"\n",
		b.X0, b.FromTop,
		mx, b.FromTop, mx, b.ToTop, b.X1, b.ToTop,
		b.X1, b.ToBot,
		mx, b.ToBot, mx, b.FromBot, b.X0, b.FromBot,
		b.Fill, b.Alpha, b.Fill, b.Alpha)
}

var _ Style = Smooth{}
