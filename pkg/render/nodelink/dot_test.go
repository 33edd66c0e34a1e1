package nodelink

import (
	"strings"
	"testing"

	"github.com/flowband/flowband/pkg/flow"
	"github.com/flowband/flowband/pkg/flow/layout"
)

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	recs := flow.Records{
		{Left: "a", Right: "x", Weight: 5},
		{Left: "a", Right: "y", Weight: 3},
		{Left: "b", Right: "x", Weight: 2},
	}
	l, err := layout.Build(recs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return l
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout(t), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("missing digraph header: %.40s", dot)
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("missing left-to-right rank direction")
	}

	// Side-prefixed node IDs keep shared labels distinct.
	for _, node := range []string{`"l:a"`, `"l:b"`, `"r:x"`, `"r:y"`} {
		if !strings.Contains(dot, node) {
			t.Errorf("missing node %s", node)
		}
	}
	for _, edge := range []string{`"l:a" -> "r:x"`, `"l:a" -> "r:y"`, `"l:b" -> "r:x"`} {
		if !strings.Contains(dot, edge) {
			t.Errorf("missing edge %s", edge)
		}
	}

	// The heaviest edge gets the maximum pen width.
	if !strings.Contains(dot, "penwidth=8.00") {
		t.Error("heaviest edge should have penwidth 8.00")
	}

	// Without Values, no weight labels appear.
	if strings.Contains(dot, "label=\"5\"") {
		t.Error("weight labels present despite Values=false")
	}
}

func TestToDOTSharedLabelBothSides(t *testing.T) {
	recs := flow.Records{
		{Left: "hub", Right: "hub", Weight: 1},
	}
	l, err := layout.Build(recs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dot := ToDOT(l, Options{})
	if !strings.Contains(dot, `"l:hub"`) || !strings.Contains(dot, `"r:hub"`) {
		t.Error("shared label should yield two distinct nodes")
	}
}

func TestToDOTWithValues(t *testing.T) {
	dot := ToDOT(testLayout(t), Options{Values: true})

	if !strings.Contains(dot, `label="5"`) {
		t.Error("missing edge weight label")
	}
	// Node labels include the side total.
	if !strings.Contains(dot, `label="a\n8"`) {
		t.Error("missing node weight label")
	}
}

func TestToDOTFractionalWeights(t *testing.T) {
	recs := flow.Records{{Left: "a", Right: "x", Weight: 2.5}}
	l, err := layout.Build(recs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dot := ToDOT(l, Options{Values: true})
	if !strings.Contains(dot, `label="2.5"`) {
		t.Error("fractional weight should render without trailing zeros")
	}
}
