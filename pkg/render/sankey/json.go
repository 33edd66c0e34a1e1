package sankey

import (
	"encoding/json"

	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow/layout"
)

// RenderJSON serializes a computed layout to indented JSON, suitable
// for feeding external renderers or inspecting geometry.
func RenderJSON(l *layout.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode layout as JSON")
	}
	return append(data, '\n'), nil
}
