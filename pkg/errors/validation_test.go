package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"simple", "revenue", false},
		{"with spaces", "North America", false},
		{"unicode", "収益", false},
		{"empty", "", true},
		{"control character", "a\x00b", true},
		{"newline", "a\nb", true},
		{"too long", strings.Repeat("x", 257), true},
		{"max length", strings.Repeat("x", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#ff0000", false},
		{"#FF0000", false},
		{"#abc", false},
		{"", true},
		{"ff0000", true},
		{"#ff00", true},
		{"#gg0000", true},
		{"#ff0000ff", true},
	}

	for _, tt := range tests {
		err := ValidateHexColor(tt.color)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/data.csv", false},
		{"http://example.com/data.csv", false},
		{"", true},
		{"ftp://example.com/data.csv", true},
		{"file:///etc/passwd", true},
		{"data.csv", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}
