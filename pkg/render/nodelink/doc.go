// Package nodelink renders flow data as traditional node-link diagrams.
//
// It is an alternative to the band diagram for cases where an arrow
// graph reads better than stacked ribbons. Categories become boxes,
// flows become arrows whose stroke width scales with weight.
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Values: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
