package layout

// Defaults for the presentation knobs. The gap fraction and aspect ratio
// are deliberately configuration, not constants: tuning them is the whole
// point of exposing the layout.
const (
	// DefaultAspect is the vertical extent of the diagram in units of
	// horizontal extent.
	DefaultAspect = 4.0

	// DefaultGapFraction is the blank space between adjacent stack
	// segments, as a fraction of the side's total weight.
	DefaultGapFraction = 0.02

	// DefaultAlpha is the band fill transparency.
	DefaultAlpha = 0.60

	// DefaultFontSize is the label font size in user units.
	DefaultFontSize = 14.0

	// DefaultHeight is the frame height in user units.
	DefaultHeight = 600.0
)

// ValueMode selects how segment and band values are displayed.
type ValueMode string

const (
	// ValueAbsolute shows raw aggregate weights.
	ValueAbsolute ValueMode = "absolute"
	// ValuePercent shows each value as a percentage of the side total.
	ValuePercent ValueMode = "percent"
)

// BandColorMode selects which side's category color a band inherits.
type BandColorMode string

const (
	// BandColorLeft colors each band by its left category.
	BandColorLeft BandColorMode = "left"
	// BandColorRight colors each band by its right category.
	BandColorRight BandColorMode = "right"
)

// Option configures Build.
type Option func(*options)

type options struct {
	leftOrder  []string
	rightOrder []string

	colors    map[string]string
	bandColor BandColorMode

	valueMode   ValueMode
	aspect      float64
	gapFraction float64
	alpha       float64
	fontSize    float64
	width       float64
	height      float64
	leftTitle   string
	rightTitle  string
}

func newOptions(opts ...Option) options {
	o := options{
		bandColor:   BandColorLeft,
		valueMode:   ValueAbsolute,
		aspect:      DefaultAspect,
		gapFraction: DefaultGapFraction,
		alpha:       DefaultAlpha,
		fontSize:    DefaultFontSize,
		height:      DefaultHeight,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLeftOrder fixes the left stack ordering. The labels must be a
// permutation of the distinct left categories in the records.
func WithLeftOrder(labels []string) Option {
	return func(o *options) { o.leftOrder = labels }
}

// WithRightOrder fixes the right stack ordering. The labels must be a
// permutation of the distinct right categories in the records.
func WithRightOrder(labels []string) Option {
	return func(o *options) { o.rightOrder = labels }
}

// WithColors supplies an explicit per-category color map. The map must
// cover every label referenced on either side or Build fails before
// computing any geometry. Without this option, categories get an
// automatic palette.
func WithColors(colors map[string]string) Option {
	return func(o *options) { o.colors = colors }
}

// WithBandColor selects which side's category color bands inherit.
// The default is BandColorLeft.
func WithBandColor(mode BandColorMode) Option {
	return func(o *options) { o.bandColor = mode }
}

// WithValueMode selects absolute or percentage value display.
func WithValueMode(mode ValueMode) Option {
	return func(o *options) { o.valueMode = mode }
}

// WithAspect sets the height-to-width ratio of the flow region.
func WithAspect(aspect float64) Option {
	return func(o *options) { o.aspect = aspect }
}

// WithGapFraction sets the per-gap blank space between adjacent stack
// segments, as a fraction of the side's total weight.
func WithGapFraction(f float64) Option {
	return func(o *options) { o.gapFraction = f }
}

// WithAlpha sets the band fill transparency in [0, 1].
func WithAlpha(a float64) Option {
	return func(o *options) { o.alpha = a }
}

// WithFontSize sets the label font size in user units.
func WithFontSize(size float64) Option {
	return func(o *options) { o.fontSize = size }
}

// WithSize sets the frame dimensions in user units. A zero width is
// derived from the height and aspect ratio; a zero height falls back to
// DefaultHeight.
func WithSize(width, height float64) Option {
	return func(o *options) {
		o.width = width
		if height > 0 {
			o.height = height
		}
	}
}

// WithTitles sets optional headings drawn above the left and right
// stacks. Empty strings omit the title.
func WithTitles(left, right string) Option {
	return func(o *options) {
		o.leftTitle = left
		o.rightTitle = right
	}
}
