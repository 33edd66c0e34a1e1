package styles

import (
	"bytes"
	"encoding/xml"
)

// EscapeXML escapes a string for safe inclusion in SVG text content and
// attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
