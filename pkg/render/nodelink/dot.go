package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/flowband/flowband/pkg/flow/layout"
	"github.com/flowband/flowband/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Values includes the aggregate weight in node and edge labels.
	// When false, only category labels are shown.
	Values bool
}

// maxPenWidth caps the stroke width of the heaviest edge.
const maxPenWidth = 8.0

// ToDOT converts a computed layout to Graphviz DOT format as a
// left-to-right bipartite digraph. Node IDs are prefixed with "l:" and
// "r:" so a label appearing on both sides yields two distinct nodes.
// Edge stroke width is proportional to the flow weight.
//
// The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
func ToDOT(l *layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeNodes(&buf, "l", l.Left, opts)
	writeNodes(&buf, "r", l.Right, opts)

	var maxWeight float64
	for _, b := range l.Bands {
		if b.Weight > maxWeight {
			maxWeight = b.Weight
		}
	}

	buf.WriteString("\n")
	for _, b := range l.Bands {
		attrs := []string{fmt.Sprintf("color=%q", b.Color)}
		if maxWeight > 0 {
			attrs = append(attrs, fmt.Sprintf("penwidth=%.2f", 1.0+(maxPenWidth-1.0)*b.Weight/maxWeight))
		}
		if opts.Values {
			attrs = append(attrs, fmt.Sprintf("label=%q, fontsize=18", fmtWeight(b.Weight)))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", "l:"+b.From, "r:"+b.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, prefix string, stack layout.Stack, opts Options) {
	for _, seg := range stack.Segments {
		label := seg.Label
		if opts.Values {
			label = seg.Label + "\n" + fmtWeight(seg.Weight)
		}
		fmt.Fprintf(buf, "  %q [label=%q, fillcolor=%q];\n", prefix+":"+seg.Label, label, seg.Color)
	}
}

func fmtWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
