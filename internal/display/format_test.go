// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSaving(t *testing.T) {
	if got := FormatSaving(2048); got != "2.0 KiB" {
		t.Errorf("FormatSaving(2048) = %q", got)
	}
	if got := FormatSaving(-2048); got != "-2.0 KiB" {
		t.Errorf("FormatSaving(-2048) = %q", got)
	}
}

func TestFormatMegapixels(t *testing.T) {
	if got := FormatMegapixels(1920, 1080); got != "2.07 MP" {
		t.Errorf("FormatMegapixels(1920, 1080) = %q", got)
	}
}
