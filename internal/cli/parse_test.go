package cli

import (
	"reflect"
	"testing"

	"github.com/flowband/flowband/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{pipeline.FormatSVG}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{"svg, png , pdf", []string{"svg", "png", "pdf"}},
		{"svg,,png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ", []string{"a", "b"}},
		{",,", nil},
	}

	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColors(t *testing.T) {
	colors, err := parseColors([]string{"a=#ff0000", "with space=#0f0"})
	if err != nil {
		t.Fatalf("parseColors() error = %v", err)
	}
	want := map[string]string{"a": "#ff0000", "with space": "#0f0"}
	if !reflect.DeepEqual(colors, want) {
		t.Errorf("colors = %v, want %v", colors, want)
	}
}

func TestParseColorsEmpty(t *testing.T) {
	colors, err := parseColors(nil)
	if err != nil {
		t.Fatalf("parseColors() error = %v", err)
	}
	if colors != nil {
		t.Errorf("colors = %v, want nil", colors)
	}
}

func TestParseColorsMalformed(t *testing.T) {
	for _, pair := range []string{"noequals", "=#ff0000"} {
		if _, err := parseColors([]string{pair}); err == nil {
			t.Errorf("parseColors(%q) should fail", pair)
		}
	}
}
