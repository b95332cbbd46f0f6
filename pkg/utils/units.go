package utils

const (
	PointsPerInch = 72.0
	CmPerInch     = 2.54
)

// PointsToCm converts a length in points to whole centimetres, truncating toward zero.
func PointsToCm(points float64) int {
	return int(points * CmPerInch / PointsPerInch)
}
