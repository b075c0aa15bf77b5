package dosing

import "math"

// RoundToTen rounds x to the nearest multiple of 10. Ties round half up
// (toward +Inf), so 5 -> 10, 15 -> 20 and 525 -> 530.
func RoundToTen(x float64) float64 {
	return math.Floor(x/10+0.5) * 10
}
