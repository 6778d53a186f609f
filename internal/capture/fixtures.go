package capture

import "gocv.io/x/gocv"

// SolidFrame builds a single-color BGR frame at the default capture size.
// Tests and demo mode use it in place of real camera output; the caller
// owns the returned Mat.
func SolidFrame(brightness float64) *gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(brightness, brightness, brightness, 0),
		DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	return &m
}
