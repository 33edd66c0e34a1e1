// Package layout computes flow-diagram geometry from records.
//
// Build is a pure function: it validates its inputs, aggregates weights,
// orders both stacks, and carves every nonzero (left, right) flow into a
// band whose endpoints are consistent with both stacks' cumulative
// offsets. All fatal errors surface before any geometry is produced; a
// returned Layout is always complete.
package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow"
	"github.com/flowband/flowband/pkg/palette"
)

// barFraction is the stack bar thickness as a fraction of the flow span.
const barFraction = 0.02

// minLabelShare is the share of the grand total below which a band gets
// no value label; tiny bands have no room for text.
const minLabelShare = 0.01

// Build computes the complete layout for the given records.
//
// Fatal failures (invalid records, order/label mismatch, unresolved
// colors) are returned before any geometry exists. Out-of-range style
// knobs are clamped and reported in Layout.Warnings instead of failing.
func Build(recs flow.Records, opts ...Option) (*Layout, error) {
	o := newOptions(opts...)

	if err := recs.Validate(); err != nil {
		return nil, err
	}
	warnings := clampStyle(&o)

	leftOrder, err := resolveOrder(recs, flow.SideLeft, o.leftOrder)
	if err != nil {
		return nil, err
	}
	rightOrder, err := resolveOrder(recs, flow.SideRight, o.rightOrder)
	if err != nil {
		return nil, err
	}

	colors, err := resolveColors(recs, o.colors)
	if err != nil {
		return nil, err
	}

	// Frame geometry. The flow span is the horizontal distance between
	// the two stack bars; the default width derives from the height and
	// the aspect ratio, matching a diagram aspect of height:span.
	height := o.height
	var span float64
	if o.width > 0 {
		span = o.width / (1 + 2*barFraction)
	} else {
		span = height / o.aspect
	}
	barW := span * barFraction
	width := span + 2*barW

	// Per-side grand totals. They differ only when records carry
	// explicit right weights, in which case each stack still fills the
	// frame height on its own scale.
	leftTotals := recs.Totals(flow.SideLeft)
	rightTotals := recs.Totals(flow.SideRight)
	leftGrand := recs.Total(flow.SideLeft)
	rightGrand := recs.Total(flow.SideRight)

	left := buildStack(stackParams{
		side:        flow.SideLeft,
		title:       o.leftTitle,
		order:       leftOrder,
		totals:      leftTotals,
		grand:       leftGrand,
		height:      height,
		gapFraction: o.gapFraction,
		valueMode:   o.valueMode,
		x0:          0,
		x1:          barW,
		colors:      colors,
	})
	right := buildStack(stackParams{
		side:        flow.SideRight,
		title:       o.rightTitle,
		order:       rightOrder,
		totals:      rightTotals,
		grand:       rightGrand,
		height:      height,
		gapFraction: o.gapFraction,
		valueMode:   o.valueMode,
		x0:          width - barW,
		x1:          width,
		colors:      colors,
	})

	bands := carveBands(carveParams{
		recs:       recs,
		leftOrder:  leftOrder,
		rightOrder: rightOrder,
		left:       left,
		right:      right,
		grand:      leftGrand,
		bandColor:  o.bandColor,
		valueMode:  o.valueMode,
		colors:     colors,
		x0:         barW,
		x1:         width - barW,
	})

	l := &Layout{
		Width:     width,
		Height:    height,
		MarginX:   0.30 * width,
		MarginY:   0.05*height + o.fontSize,
		FontSize:  o.fontSize,
		Alpha:     o.alpha,
		ValueMode: o.valueMode,
		Left:      left,
		Right:     right,
		Bands:     bands,
		Warnings:  warnings,
	}
	return l, nil
}

// clampStyle normalizes out-of-range presentation knobs, returning one
// warning per adjustment. These never abort the layout.
func clampStyle(o *options) []string {
	var warnings []string
	if o.aspect <= 0 {
		warnings = append(warnings, fmt.Sprintf("aspect %v is not positive, using default %v", o.aspect, DefaultAspect))
		o.aspect = DefaultAspect
	}
	if o.fontSize <= 0 {
		warnings = append(warnings, fmt.Sprintf("font size %v is not positive, using default %v", o.fontSize, DefaultFontSize))
		o.fontSize = DefaultFontSize
	}
	if o.alpha < 0 || o.alpha > 1 {
		warnings = append(warnings, fmt.Sprintf("alpha %v is outside [0, 1], using default %v", o.alpha, DefaultAlpha))
		o.alpha = DefaultAlpha
	}
	if o.gapFraction < 0 {
		warnings = append(warnings, fmt.Sprintf("gap fraction %v is negative, using 0", o.gapFraction))
		o.gapFraction = 0
	} else if o.gapFraction >= 1 {
		warnings = append(warnings, fmt.Sprintf("gap fraction %v is unreasonably large, using default %v", o.gapFraction, DefaultGapFraction))
		o.gapFraction = DefaultGapFraction
	}
	return warnings
}

// resolveOrder returns the stack ordering for one side: the explicit
// ordering when given (validated as a permutation of the side's distinct
// labels), otherwise the descending cumulative-weight ordering.
func resolveOrder(recs flow.Records, side flow.Side, explicit []string) ([]string, error) {
	if len(explicit) == 0 {
		return flow.OrderByWeight(recs, side), nil
	}

	data := recs.Labels(side)
	if err := checkOrderMatches(side, explicit, data); err != nil {
		return nil, err
	}
	return explicit, nil
}

// checkOrderMatches verifies that the explicit labels are exactly the
// distinct labels in the data, in any order.
func checkOrderMatches(side flow.Side, explicit, data []string) error {
	want := make(map[string]int, len(data))
	for _, l := range data {
		want[l]++
	}
	got := make(map[string]int, len(explicit))
	for _, l := range explicit {
		got[l]++
		if got[l] > 1 {
			return errors.New(errors.ErrCodeLabelMismatch, "%s order lists %q more than once", side, l)
		}
	}

	var missing, extra []string
	for l := range want {
		if got[l] == 0 {
			missing = append(missing, l)
		}
	}
	for l := range got {
		if want[l] == 0 {
			extra = append(extra, l)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %s", strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("unknown %s", strings.Join(extra, ", ")))
	}
	return errors.New(errors.ErrCodeLabelMismatch, "%s order and data do not match: %s", side, strings.Join(parts, "; "))
}

// resolveColors maps every referenced label to a color. An explicit map
// must cover the full union of left and right labels; a nil map gets the
// automatic palette in first-appearance order.
func resolveColors(recs flow.Records, explicit map[string]string) (map[string]string, error) {
	union := recs.LabelUnion()
	if explicit == nil {
		return palette.Assign(union), nil
	}

	var missing []string
	colors := make(map[string]string, len(union))
	for _, l := range union {
		raw, ok := explicit[l]
		if !ok {
			missing = append(missing, l)
			continue
		}
		c, err := palette.Normalize(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeColorUnresolved, err, "color for category %q", l)
		}
		colors[l] = c
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.New(errors.ErrCodeColorUnresolved,
			"color map is missing categories: %s", strings.Join(missing, ", "))
	}
	return colors, nil
}

type stackParams struct {
	side        flow.Side
	title       string
	order       []string
	totals      map[string]float64
	grand       float64
	height      float64
	gapFraction float64
	valueMode   ValueMode
	x0, x1      float64
	colors      map[string]string
}

// buildStack assigns each category a contiguous vertical interval sized
// proportionally to its aggregate weight, stacked top to bottom in order
// and separated by a uniform gap, so that segments plus gaps exactly
// fill the frame height.
func buildStack(p stackParams) Stack {
	n := len(p.order)
	gapUnit := p.grand * p.gapFraction

	units := p.grand
	if n > 1 {
		units += gapUnit * float64(n-1)
	}
	var scale float64
	if units > 0 {
		scale = p.height / units
	}

	stack := Stack{
		Side:     p.side,
		Title:    p.title,
		Total:    p.grand,
		Segments: make([]Segment, 0, n),
	}

	cursor := p.height
	for _, label := range p.order {
		w := p.totals[label]
		seg := Segment{
			Label:   label,
			Display: fmt.Sprintf("%s %s", label, formatValue(w, p.grand, p.valueMode)),
			Weight:  w,
			X0:      p.x0,
			X1:      p.x1,
			Top:     cursor,
			Bottom:  cursor - w*scale,
			Color:   p.colors[label],
		}
		stack.Segments = append(stack.Segments, seg)
		cursor = seg.Bottom - gapUnit*scale
	}
	return stack
}

type carveParams struct {
	recs        flow.Records
	leftOrder   []string
	rightOrder  []string
	left, right Stack
	grand       float64
	bandColor   BandColorMode
	valueMode   ValueMode
	colors      map[string]string
	x0, x1      float64
}

// carveBands walks the left stack in order and, for each left category,
// its outgoing flows in right-stack order. Each visit consumes a slice
// of both segments from the top down, so slices within a category are
// contiguous, never overlap, and sum exactly to the category's interval.
func carveBands(p carveParams) []Band {
	leftPairs := p.recs.PairTotals(flow.SideLeft)
	rightPairs := p.recs.PairTotals(flow.SideRight)

	leftScale := intervalScale(p.left)
	rightScale := intervalScale(p.right)

	usedLeft := make(map[string]float64, len(p.leftOrder))
	usedRight := make(map[string]float64, len(p.rightOrder))

	var bands []Band
	for _, l := range p.leftOrder {
		lseg, _ := p.left.Segment(l)
		for _, r := range p.rightOrder {
			pair := flow.Pair{Left: l, Right: r}
			w := leftPairs[pair]
			rw := rightPairs[pair]
			if w <= 0 && rw <= 0 {
				continue
			}
			rseg, _ := p.right.Segment(r)

			lh := w * leftScale
			rh := rw * rightScale
			band := Band{
				From:       l,
				To:         r,
				Weight:     w,
				X0:         p.x0,
				X1:         p.x1,
				FromTop:    lseg.Top - usedLeft[l],
				FromBottom: lseg.Top - usedLeft[l] - lh,
				ToTop:      rseg.Top - usedRight[r],
				ToBottom:   rseg.Top - usedRight[r] - rh,
				Color:      p.colors[bandColorLabel(p.bandColor, l, r)],
			}
			if p.grand > 0 && w/p.grand >= minLabelShare {
				band.Display = formatValue(w, p.grand, p.valueMode)
			}
			usedLeft[l] += lh
			usedRight[r] += rh
			bands = append(bands, band)
		}
	}
	return bands
}

// intervalScale recovers the weight-to-units scale of a stack from its
// segments. A stack with zero total weight scales everything to zero.
func intervalScale(s Stack) float64 {
	for _, seg := range s.Segments {
		if seg.Weight > 0 {
			return seg.Height() / seg.Weight
		}
	}
	return 0
}

func bandColorLabel(mode BandColorMode, left, right string) string {
	if mode == BandColorRight {
		return right
	}
	return left
}

// formatValue renders a weight as text: the raw value, or its share of
// the side total in percent mode. One decimal place either way.
func formatValue(w, total float64, mode ValueMode) string {
	if mode == ValuePercent {
		pct := 0.0
		if total > 0 {
			pct = w / total * 100
		}
		return fmt.Sprintf("%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f", w)
}
