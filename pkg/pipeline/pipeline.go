// Package pipeline provides the core diagram pipeline for Flowband.
//
// This package implements the complete load → layout → render pipeline
// that can be used by CLI, API, and worker components. Centralizing
// this logic keeps behavior consistent across all entry points.
//
// The pipeline consists of three stages:
//
//  1. Load: Read flow records from a local file or remote URL
//  2. Layout: Compute the two-stack band geometry
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete
// pipeline:
//
//	runner := pipeline.NewRunner(fetcher, logger)
//	opts := pipeline.Options{
//	    Input:   "flows.csv",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowband/flowband/pkg/dataset"
	"github.com/flowband/flowband/pkg/flow/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG rasterization scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Style constants for band geometry.
const (
	StyleSmooth = "smooth"
	StyleSharp  = "sharp"
)

// DefaultStyle is the default band geometry style.
const DefaultStyle = StyleSmooth

// ValidStyles is the set of supported band styles.
var ValidStyles = map[string]bool{
	StyleSmooth: true,
	StyleSharp:  true,
}

// ValidValueModes is the set of supported value display modes.
var ValidValueModes = map[string]bool{
	string(layout.ValueAbsolute): true,
	string(layout.ValuePercent):  true,
}

// ValidBandColors is the set of supported band color modes.
var ValidBandColors = map[string]bool{
	string(layout.BandColorLeft):  true,
	string(layout.BandColorRight): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input             string `json:"input"`                         // file path or http(s) URL
	LeftColumn        string `json:"left_column,omitempty"`         // CSV column for left categories
	RightColumn       string `json:"right_column,omitempty"`        // CSV column for right categories
	WeightColumn      string `json:"weight_column,omitempty"`       // CSV column for weights
	RightWeightColumn string `json:"right_weight_column,omitempty"` // CSV column for right-side weights
	Refresh           bool   `json:"refresh,omitempty"`             // bypass the fetch cache

	// Layout options. GapFraction and Alpha are pointers because their
	// zero values are legal settings: nil means "use the default",
	// while an explicit 0 disables gaps or makes bands fully
	// transparent.
	LeftOrder   []string          `json:"left_order,omitempty"`
	RightOrder  []string          `json:"right_order,omitempty"`
	Colors      map[string]string `json:"colors,omitempty"`
	BandColor   string            `json:"band_color,omitempty"` // "left" or "right"
	ValueMode   string            `json:"value_mode,omitempty"` // "absolute" or "percent"
	Aspect      float64           `json:"aspect,omitempty"`
	GapFraction *float64          `json:"gap_fraction,omitempty"`
	Alpha       *float64          `json:"alpha,omitempty"`
	FontSize    float64           `json:"font_size,omitempty"`
	Width       float64           `json:"width,omitempty"`
	Height      float64           `json:"height,omitempty"`
	LeftTitle   string            `json:"left_title,omitempty"`
	RightTitle  string            `json:"right_title,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Scale      float64  `json:"scale,omitempty"`       // PNG scale factor
	HideValues bool     `json:"hide_values,omitempty"` // omit per-band value labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed band geometry.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount int
	LeftCount   int
	RightCount  int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return fmt.Errorf("invalid style: %q (must be one of: smooth, sharp)", style)
	}
	return nil
}

// ValidateValueMode checks that a value display mode is valid.
func ValidateValueMode(mode string) error {
	if !ValidValueModes[mode] {
		return fmt.Errorf("invalid value_mode: %q (must be one of: absolute, percent)", mode)
	}
	return nil
}

// ValidateBandColor checks that a band color mode is valid.
func ValidateBandColor(mode string) error {
	if !ValidBandColors[mode] {
		return fmt.Errorf("invalid band_color: %q (must be one of: left, right)", mode)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading records.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ValueMode == "" {
		o.ValueMode = string(layout.ValueAbsolute)
	}
	if o.BandColor == "" {
		o.BandColor = string(layout.BandColorLeft)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateValueMode(o.ValueMode); err != nil {
		return err
	}
	return ValidateBandColor(o.BandColor)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsRemote reports whether the input is an HTTP(S) URL rather than a
// local file path.
func (o *Options) IsRemote() bool {
	return strings.HasPrefix(o.Input, "http://") || strings.HasPrefix(o.Input, "https://")
}

// Columns returns the CSV column selection.
func (o *Options) Columns() dataset.Columns {
	return dataset.Columns{
		Left:        o.LeftColumn,
		Right:       o.RightColumn,
		Weight:      o.WeightColumn,
		RightWeight: o.RightWeightColumn,
	}
}

// LayoutOptions translates pipeline options into layout engine options.
// Unset knobs are omitted so the engine applies its own defaults; for
// GapFraction and Alpha "unset" is nil, so an explicit zero survives.
func (o *Options) LayoutOptions() []layout.Option {
	opts := []layout.Option{
		layout.WithBandColor(layout.BandColorMode(o.BandColor)),
		layout.WithValueMode(layout.ValueMode(o.ValueMode)),
		layout.WithTitles(o.LeftTitle, o.RightTitle),
	}
	if len(o.LeftOrder) > 0 {
		opts = append(opts, layout.WithLeftOrder(o.LeftOrder))
	}
	if len(o.RightOrder) > 0 {
		opts = append(opts, layout.WithRightOrder(o.RightOrder))
	}
	if len(o.Colors) > 0 {
		opts = append(opts, layout.WithColors(o.Colors))
	}
	if o.Aspect != 0 {
		opts = append(opts, layout.WithAspect(o.Aspect))
	}
	if o.GapFraction != nil {
		opts = append(opts, layout.WithGapFraction(*o.GapFraction))
	}
	if o.Alpha != nil {
		opts = append(opts, layout.WithAlpha(*o.Alpha))
	}
	if o.FontSize != 0 {
		opts = append(opts, layout.WithFontSize(o.FontSize))
	}
	if o.Width != 0 || o.Height != 0 {
		opts = append(opts, layout.WithSize(o.Width, o.Height))
	}
	return opts
}
