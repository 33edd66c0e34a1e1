package layout

import "github.com/flowband/flowband/pkg/flow"

// Segment is one category's rectangle in a stack. Coordinates are in
// user units (typically pixels in SVG) with the origin at the bottom
// left of the frame and y growing upward.
type Segment struct {
	Label   string  `json:"label"`
	Display string  `json:"display"` // rendered text, e.g. "A 8.0" or "A 38.1%"
	Weight  float64 `json:"weight"`  // aggregate weight of the category on this side
	X0      float64 `json:"x0"`
	X1      float64 `json:"x1"`
	Bottom  float64 `json:"bottom"`
	Top     float64 `json:"top"`
	Color   string  `json:"color"` // "#rrggbb"
}

// Height returns the vertical span of the segment.
func (s Segment) Height() float64 { return s.Top - s.Bottom }

// Width returns the horizontal span of the segment.
func (s Segment) Width() float64 { return s.X1 - s.X0 }

// CenterY returns the vertical center point of the segment.
func (s Segment) CenterY() float64 { return (s.Bottom + s.Top) / 2 }

// Stack is the ordered column of segments on one side of the diagram.
type Stack struct {
	Side     flow.Side `json:"side"`
	Title    string    `json:"title,omitempty"` // optional heading drawn above the stack
	Total    float64   `json:"total"`
	Segments []Segment `json:"segments"`
}

// Segment returns the stack's segment for the given label.
func (s Stack) Segment(label string) (Segment, bool) {
	for _, seg := range s.Segments {
		if seg.Label == label {
			return seg, true
		}
	}
	return Segment{}, false
}

// Band is the quadrilateral connecting a slice of a left segment to a
// slice of a right segment, sized by the aggregate weight between the
// pair. X0 is the right edge of the left stack bar, X1 the left edge of
// the right stack bar.
type Band struct {
	From       string  `json:"from"` // left category
	To         string  `json:"to"`   // right category
	Weight     float64 `json:"weight"`
	Display    string  `json:"display,omitempty"` // value text, empty when too small to label
	X0         float64 `json:"x0"`
	X1         float64 `json:"x1"`
	FromBottom float64 `json:"fromBottom"` // vertical slice on the left segment
	FromTop    float64 `json:"fromTop"`
	ToBottom   float64 `json:"toBottom"` // vertical slice on the right segment
	ToTop      float64 `json:"toTop"`
	Color      string  `json:"color"`
}

// FromHeight returns the band thickness at its left end.
func (b Band) FromHeight() float64 { return b.FromTop - b.FromBottom }

// ToHeight returns the band thickness at its right end.
func (b Band) ToHeight() float64 { return b.ToTop - b.ToBottom }

// FromCenterY returns the vertical center of the band's left end.
func (b Band) FromCenterY() float64 { return (b.FromBottom + b.FromTop) / 2 }

// ToCenterY returns the vertical center of the band's right end.
func (b Band) ToCenterY() float64 { return (b.ToBottom + b.ToTop) / 2 }

// Layout is the complete computed geometry for one diagram: both stacks,
// every nonzero flow band, and the presentation values the renderer
// needs. It is a pure function of the input records and options; nothing
// in it is shared or mutated after Build returns.
type Layout struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	MarginX float64 `json:"marginX"` // horizontal gutter reserved for labels
	MarginY float64 `json:"marginY"` // vertical gutter reserved for titles

	FontSize  float64   `json:"fontSize"`
	Alpha     float64   `json:"alpha"` // band fill transparency
	ValueMode ValueMode `json:"valueMode"`

	Left  Stack  `json:"left"`
	Right Stack  `json:"right"`
	Bands []Band `json:"bands"`

	// Warnings collects non-fatal presentation issues (clamped style
	// knobs). The geometry is still valid when warnings are present.
	Warnings []string `json:"warnings,omitempty"`
}
