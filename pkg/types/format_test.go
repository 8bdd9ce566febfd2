// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"webp", "webp", FormatWebP, false},
		{"jpeg", "jpeg", FormatJPEG, false},
		{"jpg alias", "jpg", FormatJPEG, false},
		{"uppercase", "WEBP", FormatWebP, false},
		{"surrounding space", " png ", FormatPNG, false},
		{"avif", "avif", FormatAVIF, false},
		{"unknown", "bmp", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormat(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatExt(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatWebP, ".webp"},
		{FormatJPEG, ".jpg"},
		{FormatPNG, ".png"},
		{FormatTIFF, ".tiff"},
		{FormatHEIF, ".heif"},
	}

	for _, tt := range tests {
		if got := tt.format.Ext(); got != tt.want {
			t.Errorf("%s.Ext() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFilterExtensions(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		wantExt string
		wantErr bool
	}{
		{"jpeg includes both spellings", "jpeg", ".jpg", false},
		{"png", "png", ".png", false},
		{"all includes jpg", "all", ".jpg", false},
		{"case insensitive", "PNG", ".png", false},
		{"unknown filter", "raw", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exts, err := FilterExtensions(tt.filter)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FilterExtensions(%q) succeeded, want error", tt.filter)
				}
				return
			}
			if err != nil {
				t.Fatalf("FilterExtensions(%q): %v", tt.filter, err)
			}
			found := false
			for _, e := range exts {
				if e == tt.wantExt {
					found = true
				}
			}
			if !found {
				t.Errorf("FilterExtensions(%q) = %v, want to contain %q", tt.filter, exts, tt.wantExt)
			}
		})
	}
}

func TestFormatNames(t *testing.T) {
	names := FormatNames()
	for _, want := range []string{"webp", "jpeg", "avif"} {
		if !strings.Contains(names, want) {
			t.Errorf("FormatNames() = %q, want to contain %q", names, want)
		}
	}
}
