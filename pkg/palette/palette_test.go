package palette

import (
	"reflect"
	"regexp"
	"testing"
)

var hexRe = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestAuto(t *testing.T) {
	colors := Auto(6)
	if len(colors) != 6 {
		t.Fatalf("len = %d, want 6", len(colors))
	}

	seen := make(map[string]bool)
	for _, c := range colors {
		if !hexRe.MatchString(c) {
			t.Errorf("color %q is not lowercase #rrggbb", c)
		}
		if seen[c] {
			t.Errorf("duplicate color %q", c)
		}
		seen[c] = true
	}
}

func TestAutoDeterministic(t *testing.T) {
	if !reflect.DeepEqual(Auto(8), Auto(8)) {
		t.Error("Auto(8) differs between calls")
	}
}

func TestAutoEmpty(t *testing.T) {
	if got := Auto(0); got != nil {
		t.Errorf("Auto(0) = %v, want nil", got)
	}
	if got := Auto(-3); got != nil {
		t.Errorf("Auto(-3) = %v, want nil", got)
	}
}

func TestAssign(t *testing.T) {
	labels := []string{"a", "b", "c"}
	m := Assign(labels)
	if len(m) != 3 {
		t.Fatalf("len = %d, want 3", len(m))
	}
	colors := Auto(3)
	for i, l := range labels {
		if m[l] != colors[i] {
			t.Errorf("Assign[%q] = %q, want %q", l, m[l], colors[i])
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#FF0000", "#ff0000", false},
		{"#ff0000", "#ff0000", false},
		{"#Abc", "#aabbcc", false},
		{"#abc", "#aabbcc", false},
		{"", "", true},
		{"red", "", true},
		{"#ff00", "", true},
		{"#zzzzzz", "", true},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Normalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
