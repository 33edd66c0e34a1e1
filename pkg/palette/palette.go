// Package palette assigns colors to diagram categories.
//
// When the caller supplies no color map, categories get evenly spaced
// hues at fixed saturation and lightness, matching the look of the
// common "hls" plotting palette. User-supplied colors are hex strings
// and are normalized through the same path.
package palette

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/flowband/flowband/pkg/errors"
)

const (
	autoSaturation = 0.65
	autoLightness  = 0.60
)

// Auto returns n visually distinct hex colors with evenly spaced hues.
// The result is deterministic: the same n always yields the same colors.
func Auto(n int) []string {
	if n <= 0 {
		return nil
	}
	colors := make([]string, n)
	for i := range colors {
		h := float64(i) * 360.0 / float64(n)
		colors[i] = colorful.Hsl(h, autoSaturation, autoLightness).Hex()
	}
	return colors
}

// Assign maps each label to a color from Auto, in the order given.
func Assign(labels []string) map[string]string {
	colors := Auto(len(labels))
	m := make(map[string]string, len(labels))
	for i, l := range labels {
		m[l] = colors[i]
	}
	return m
}

// Normalize validates a hex color string and returns its canonical
// lowercase "#rrggbb" form.
func Normalize(s string) (string, error) {
	if err := errors.ValidateHexColor(s); err != nil {
		return "", err
	}
	c, err := colorful.Hex(expandShortHex(strings.ToLower(s)))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", s)
	}
	return c.Hex(), nil
}

// expandShortHex turns "#abc" into "#aabbcc"; longer forms pass through.
func expandShortHex(s string) string {
	if len(s) != 4 {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
