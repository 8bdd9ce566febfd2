// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"fmt"

	bimg "gopkg.in/h2non/bimg.v1"
)

// Exif holds the EXIF subset surfaced by image inspection. All fields may
// be empty; cameras and editors are inconsistent about what they write.
type Exif struct {
	Make         string `json:"make,omitempty" yaml:"make,omitempty"`
	Model        string `json:"model,omitempty" yaml:"model,omitempty"`
	Software     string `json:"software,omitempty" yaml:"software,omitempty"`
	DateTime     string `json:"datetime,omitempty" yaml:"datetime,omitempty"`
	ExposureTime string `json:"exposure_time,omitempty" yaml:"exposure_time,omitempty"`
	FNumber      string `json:"f_number,omitempty" yaml:"f_number,omitempty"`
	ISO          int    `json:"iso,omitempty" yaml:"iso,omitempty"`
	FocalLength  string `json:"focal_length,omitempty" yaml:"focal_length,omitempty"`
}

// Empty reports whether no EXIF field is set.
func (e Exif) Empty() bool {
	return e == Exif{}
}

// Info describes a decoded image: format, geometry, and metadata.
type Info struct {
	Format      string `json:"format" yaml:"format"`
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	Alpha       bool   `json:"alpha" yaml:"alpha"`
	Orientation int    `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Colourspace string `json:"colourspace,omitempty" yaml:"colourspace,omitempty"`
	HasProfile  bool   `json:"has_profile" yaml:"has_profile"`
	Exif        Exif   `json:"exif,omitempty" yaml:"exif,omitempty"`
}

// Probe decodes image metadata from an encoded buffer.
func Probe(src []byte) (Info, error) {
	meta, err := bimg.Metadata(src)
	if err != nil {
		return Info{}, fmt.Errorf("reading image metadata: %w", err)
	}

	return Info{
		Format:      meta.Type,
		Width:       meta.Size.Width,
		Height:      meta.Size.Height,
		Alpha:       meta.Alpha,
		Orientation: meta.Orientation,
		Colourspace: meta.Space,
		HasProfile:  meta.Profile,
		Exif: Exif{
			Make:         meta.EXIF.Make,
			Model:        meta.EXIF.Model,
			Software:     meta.EXIF.Software,
			DateTime:     meta.EXIF.Datetime,
			ExposureTime: meta.EXIF.ExposureTime,
			FNumber:      meta.EXIF.FNumber,
			ISO:          meta.EXIF.ISOSpeedRatings,
			FocalLength:  meta.EXIF.FocalLength,
		},
	}, nil
}
