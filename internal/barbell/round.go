// Package barbell composes training cycles out of lifts, elements,
// sessions and mesocycles. Every level is a restartable sequence: pulling
// a Mesocycle pulls each Session, which pulls each Element, which pairs
// its next load coefficients with its next rep scheme against the live
// training max of its Lift.
//
// Nothing in this package is safe for concurrent use; build one object
// graph per caller.
package barbell

import "math"

const (
	// DefaultPrecision is the smallest loadable jump: a pair of 2.5 plates.
	DefaultPrecision = 5.0
	// DefaultBarbellWeight is the weight of a standard bar.
	DefaultBarbellWeight = 45.0
	// DefaultIncrement is added to a training max between cycles.
	DefaultIncrement = 10.0
)

// RoundWeight rounds weight to the nearest combination of plates that can
// be loaded on a bar of barbellWeight, with half increments rounding up.
// Anything lighter than the bar comes back as the bar itself.
//
// The function has no concept of units; precision carries that. Use 5 for
// 2.5 lb plates or 1 for 0.5 kg fractionals. A non-positive precision
// disables rounding.
func RoundWeight(weight, precision, barbellWeight float64) int {
	plate := weight - barbellWeight
	if plate < 0 {
		return int(barbellWeight)
	}
	if precision <= 0 {
		return int(weight)
	}
	half := plate + precision/2
	return int(half - math.Mod(half, precision) + barbellWeight)
}
