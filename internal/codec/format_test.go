// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"strings"
	"testing"

	"github.com/pdiddy/pixelpress/pkg/types"
)

func TestFormatCapabilities(t *testing.T) {
	tests := []struct {
		format      types.Format
		quality     bool
		lossless    bool
		compression bool
	}{
		{types.FormatWebP, true, true, false},
		{types.FormatJPEG, true, false, false},
		{types.FormatPNG, false, false, true},
		{types.FormatTIFF, true, false, false},
		{types.FormatGIF, false, false, false},
		{types.FormatAVIF, true, true, false},
		{types.FormatHEIF, true, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := SupportsQuality(tt.format); got != tt.quality {
				t.Errorf("SupportsQuality = %v, want %v", got, tt.quality)
			}
			if got := SupportsLossless(tt.format); got != tt.lossless {
				t.Errorf("SupportsLossless = %v, want %v", got, tt.lossless)
			}
			if got := SupportsCompression(tt.format); got != tt.compression {
				t.Errorf("SupportsCompression = %v, want %v", got, tt.compression)
			}
		})
	}
}

func TestEveryFormatHasSpec(t *testing.T) {
	for _, f := range types.Formats {
		if _, err := vipsTypeFor(f); err != nil {
			t.Errorf("format %q missing from capability table: %v", f, err)
		}
	}
}

func TestNewTranscoder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.ConvertConfig
		wantErr bool
	}{
		{
			name: "defaults accepted",
			cfg:  types.ConvertConfig{OutputFormat: types.FormatWebP},
		},
		{
			name:    "quality out of range",
			cfg:     types.ConvertConfig{OutputFormat: types.FormatWebP, Quality: 101},
			wantErr: true,
		},
		{
			name:    "negative quality rejected",
			cfg:     types.ConvertConfig{OutputFormat: types.FormatWebP, Quality: -1},
			wantErr: true,
		},
		{
			name:    "lossless jpeg rejected",
			cfg:     types.ConvertConfig{OutputFormat: types.FormatJPEG, Lossless: true},
			wantErr: true,
		},
		{
			name: "lossless webp accepted",
			cfg:  types.ConvertConfig{OutputFormat: types.FormatWebP, Lossless: true},
		},
		{
			name:    "compression out of range",
			cfg:     types.ConvertConfig{OutputFormat: types.FormatPNG, Compression: 10},
			wantErr: true,
		},
		{
			name:    "unknown format rejected",
			cfg:     types.ConvertConfig{OutputFormat: types.Format("ico")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTranscoder(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.Format() != tt.cfg.OutputFormat {
				t.Errorf("Format() = %q, want %q", tr.Format(), tt.cfg.OutputFormat)
			}
		})
	}
}

func TestNewTranscoder_QualityRangeMessage(t *testing.T) {
	_, err := NewTranscoder(types.ConvertConfig{OutputFormat: types.FormatWebP, Quality: -1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "0-100") {
		t.Errorf("error = %q, want the accepted range 0-100", err.Error())
	}
}

func TestNewTranscoder_DefaultQuality(t *testing.T) {
	tr, err := NewTranscoder(types.ConvertConfig{OutputFormat: types.FormatWebP})
	if err != nil {
		t.Fatal(err)
	}
	if tr.quality != 80 {
		t.Errorf("default quality = %d, want 80", tr.quality)
	}
}
