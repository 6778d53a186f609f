package render

import "math"

// Region labels for the hemisphere currently facing the viewer.
const (
	RegionAtlantic     = "Atlantic"
	RegionAmericas     = "Americas"
	RegionPacific      = "Pacific"
	RegionAsiaOceania  = "Asia & Oceania"
	RegionEuropeAfrica = "Europe & Africa"
)

// Region maps a Y-rotation in radians to the geographic label facing the
// viewer. Rotation wraps, so Region(0) == Region(2π) and negative angles
// land in the same buckets as their positive equivalents.
func Region(rotationY float64) string {
	deg := wrapAngle(rotationY) * 180 / math.Pi
	switch {
	case deg < 30:
		return RegionAtlantic
	case deg < 120:
		return RegionAmericas
	case deg < 210:
		return RegionPacific
	case deg < 300:
		return RegionAsiaOceania
	default:
		return RegionEuropeAfrica
	}
}

// wrapAngle normalizes an angle in radians into [0, 2π).
func wrapAngle(angle float64) float64 {
	wrapped := math.Mod(angle, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	if wrapped >= 2*math.Pi {
		wrapped = 0
	}
	return wrapped
}
