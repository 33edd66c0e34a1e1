// Package sankey turns a computed flow layout into output documents.
//
// RenderSVG is the primary sink; PNG and PDF are produced by converting
// its output with librsvg, and RenderJSON exposes the raw geometry for
// external tooling. Band geometry is pluggable via the styles
// subpackage.
package sankey
