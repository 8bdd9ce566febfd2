// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

// FitSize computes the output dimensions for a resize request against a
// source of srcW x srcH pixels. A zero wantW or wantH means "unset".
//
// Without keepAspect, unset dimensions fall back to the source dimension.
// With keepAspect, one set dimension scales the other proportionally, and
// two set dimensions fit the image inside the wantW x wantH box.
func FitSize(srcW, srcH, wantW, wantH int, keepAspect bool) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return srcW, srcH
	}

	w, h := wantW, wantH
	if w <= 0 {
		w = srcW
	}
	if h <= 0 {
		h = srcH
	}

	if !keepAspect {
		return w, h
	}

	switch {
	case wantW > 0 && wantH <= 0:
		ratio := float64(wantW) / float64(srcW)
		return wantW, scaled(srcH, ratio)
	case wantH > 0 && wantW <= 0:
		ratio := float64(wantH) / float64(srcH)
		return scaled(srcW, ratio), wantH
	case wantW > 0 && wantH > 0:
		ratio := float64(wantW) / float64(srcW)
		if r := float64(wantH) / float64(srcH); r < ratio {
			ratio = r
		}
		return scaled(srcW, ratio), scaled(srcH, ratio)
	}
	return srcW, srcH
}

func scaled(dim int, ratio float64) int {
	n := int(float64(dim) * ratio)
	if n < 1 {
		return 1
	}
	return n
}
