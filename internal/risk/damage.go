// Package risk provides the flood depth-damage relationship and the storm
// scenarios that drive household expectations.
package risk

import "math"

// Depth-damage curve breakpoints. Depths are in meters; the returned
// fraction is the share of exposed value destroyed.
const (
	// DepthSaturation is the depth at which damage saturates at total loss.
	DepthSaturation = 6.0
	// DepthNegligible is the depth below which damage rounds to zero.
	DepthNegligible = 0.025
)

// Logarithmic curve coefficients for the mid-range of the curve.
const (
	damageSlope     = 0.1746
	damageIntercept = 0.6483
)

// DamageFraction maps an inundation depth to a damage fraction in [0, 1].
// The curve is flat at 1 beyond DepthSaturation, flat at 0 below
// DepthNegligible, and logarithmic in between. Deterministic and
// non-decreasing in depth.
func DamageFraction(depth float64) float64 {
	if depth >= DepthSaturation {
		return 1.0
	}
	if depth < DepthNegligible {
		return 0.0
	}
	return damageSlope*math.Log(depth) + damageIntercept
}
