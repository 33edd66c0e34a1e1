package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowband/flowband/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// gapSet and alphaSet record whether the flags were given at all, since
// 0 is a legal value for both knobs.
type renderOpts struct {
	output            string   // output file path (or base path for multiple formats)
	formats           []string // output formats: "svg", "png", "pdf", "json", "dot"
	style             string   // band geometry: "smooth" or "sharp"
	leftColumn        string   // CSV column for left categories
	rightColumn       string   // CSV column for right categories
	weightColumn      string   // CSV column for weights
	rightWeightColumn string   // CSV column for right-side weights
	leftOrder         string   // comma-separated left stack ordering
	rightOrder        string   // comma-separated right stack ordering
	colors            []string // repeated "label=#hex" assignments
	bandColor         string   // "left" or "right"
	valueMode         string   // "absolute" or "percent"
	aspect            float64
	gapFraction       float64
	gapSet            bool
	alpha             float64
	alphaSet          bool
	fontSize          float64
	width             float64
	height            float64
	leftTitle         string
	rightTitle        string
	scale             float64 // PNG scale factor
	hideValues        bool    // omit per-band value labels
	interactive       bool    // pick CSV columns interactively
	noCache           bool    // disable the fetch cache
	refresh           bool    // bypass cached fetches
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a flow dataset to a diagram",
		Long: `Render reads a CSV or JSON dataset (local path or http(s) URL) and
draws the aggregated flows between its two category columns as a
stacked band diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.gapSet = cmd.Flags().Changed("gap")
			opts.alphaSet = cmd.Flags().Changed("alpha")
			pOpts, err := c.buildPipelineOptions(args[0], &opts)
			if err != nil {
				return err
			}
			if opts.interactive {
				if err := pickColumnsInteractive(args[0], pOpts); err != nil {
					return err
				}
			}
			return c.runRender(cmd, pOpts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "band style: smooth (default), sharp")
	cmd.Flags().StringVar(&opts.leftColumn, "left-column", "", "CSV column for left categories (default: first column)")
	cmd.Flags().StringVar(&opts.rightColumn, "right-column", "", "CSV column for right categories (default: second column)")
	cmd.Flags().StringVar(&opts.weightColumn, "weight-column", "", "CSV column for weights (default: column named 'weight', else 1 per row)")
	cmd.Flags().StringVar(&opts.rightWeightColumn, "right-weight-column", "", "CSV column for right-side weights (default: same as weights)")
	cmd.Flags().StringVar(&opts.leftOrder, "left-order", "", "fixed left stack ordering, comma-separated labels")
	cmd.Flags().StringVar(&opts.rightOrder, "right-order", "", "fixed right stack ordering, comma-separated labels")
	cmd.Flags().StringArrayVar(&opts.colors, "color", nil, "category color as label=#rrggbb (repeatable)")
	cmd.Flags().StringVar(&opts.bandColor, "band-color", "", "color bands by: left (default), right")
	cmd.Flags().StringVar(&opts.valueMode, "values", "", "value display: absolute (default), percent")
	cmd.Flags().Float64Var(&opts.aspect, "aspect", 0, "height-to-width ratio of the flow region")
	cmd.Flags().Float64Var(&opts.gapFraction, "gap", 0, "gap between segments as a fraction of total weight")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", 0, "band fill transparency in [0,1]")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "label font size")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height")
	cmd.Flags().StringVar(&opts.leftTitle, "left-title", "", "heading above the left stack")
	cmd.Flags().StringVar(&opts.rightTitle, "right-title", "", "heading above the right stack")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default 2.0)")
	cmd.Flags().BoolVar(&opts.hideValues, "no-values", false, "hide per-band value labels")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick CSV columns interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the dataset fetch cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-fetch remote datasets even when cached")

	return cmd
}

// errColorFlag reports a malformed --color flag value.
func errColorFlag(pair string) error {
	return fmt.Errorf("invalid --color %q (expected label=#rrggbb)", pair)
}

// buildPipelineOptions assembles pipeline options from flags with
// config-file values filling any knob the flags left unset.
func (c *CLI) buildPipelineOptions(input string, opts *renderOpts) (*pipeline.Options, error) {
	colors, err := parseColors(opts.colors)
	if err != nil {
		return nil, err
	}

	p := &pipeline.Options{
		Input:             input,
		LeftColumn:        opts.leftColumn,
		RightColumn:       opts.rightColumn,
		WeightColumn:      opts.weightColumn,
		RightWeightColumn: opts.rightWeightColumn,
		Refresh:           opts.refresh,
		LeftOrder:         splitList(opts.leftOrder),
		RightOrder:        splitList(opts.rightOrder),
		Colors:            colors,
		BandColor:         opts.bandColor,
		ValueMode:         opts.valueMode,
		Aspect:            opts.aspect,
		FontSize:          opts.fontSize,
		Width:             opts.width,
		Height:            opts.height,
		LeftTitle:         opts.leftTitle,
		RightTitle:        opts.rightTitle,
		Formats:           opts.formats,
		Style:             opts.style,
		Scale:             opts.scale,
		HideValues:        opts.hideValues,
		Logger:            c.Logger,
	}
	if opts.gapSet {
		gap := opts.gapFraction
		p.GapFraction = &gap
	}
	if opts.alphaSet {
		alpha := opts.alpha
		p.Alpha = &alpha
	}
	c.applyConfigDefaults(p)
	return p, nil
}

// applyConfigDefaults fills zero-valued pipeline knobs from the config
// file. pipeline defaults apply to anything still unset afterwards.
func (c *CLI) applyConfigDefaults(p *pipeline.Options) {
	d := c.Config.Defaults
	if p.Style == "" {
		p.Style = d.Style
	}
	if len(p.Formats) == 1 && p.Formats[0] == pipeline.FormatSVG && len(d.Formats) > 0 {
		p.Formats = d.Formats
	}
	if p.ValueMode == "" {
		p.ValueMode = d.ValueMode
	}
	if p.BandColor == "" {
		p.BandColor = d.BandColor
	}
	if p.Aspect == 0 {
		p.Aspect = d.Aspect
	}
	if p.GapFraction == nil && d.GapFraction != 0 {
		gap := d.GapFraction
		p.GapFraction = &gap
	}
	if p.Alpha == nil && d.Alpha != 0 {
		alpha := d.Alpha
		p.Alpha = &alpha
	}
	if p.FontSize == 0 {
		p.FontSize = d.FontSize
	}
	if p.Width == 0 {
		p.Width = d.Width
	}
	if p.Height == 0 {
		p.Height = d.Height
	}
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(cmd *cobra.Command, pOpts *pipeline.Options, opts *renderOpts) error {
	if err := pOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	logger := loggerFromContext(cmd.Context())
	pOpts.Logger = logger

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(cmd.Context(), "rendering "+pOpts.Input)
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), *pOpts)
	if err != nil {
		spinner.StopWithError(err.Error())
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	printStats(result.Stats.RecordCount, result.Stats.LeftCount, result.Stats.RightCount)
	for _, w := range result.Layout.Warnings {
		printWarning("%s", w)
	}

	base := basePath(opts.output, pOpts.Input)
	for _, format := range pOpts.Formats {
		path := base + "." + format
		if len(pOpts.Formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from the input file name
// (remote URLs fall back to the last path element).
func basePath(output, input string) string {
	if output == "" {
		name := filepath.Base(input)
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
