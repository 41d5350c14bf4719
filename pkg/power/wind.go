// Package power converts instantaneous weather readings into instantaneous
// generator output and electrolyzer yield.
package power

import "math"

// Wind turbine constants
const (
	referenceHeight   = 10.0  // Height of the surface wind measurement (m)
	roughnessLength   = 1.0   // Surface roughness length z0 (m)
	airDensity        = 1.225 // Density of air at sea level (kg/m³)
	powerCoefficient  = 0.4   // Cp, fraction of wind energy captured by the rotor
	gearboxEfficiency = 0.75  // Ng
	otherLosses       = 0.9   // Nb, availability and electrical losses

	// CutInSpeed and CutOutSpeed bound the turbine's operating envelope (m/s at hub height)
	CutInSpeed  = 3.0
	CutOutSpeed = 25.0
)

// HubSpeed extrapolates a wind speed measured at the 10 m reference height to
// the hub height using a logarithmic wind profile.
func HubSpeed(hubHeight, surfaceSpeed float64) float64 {
	return surfaceSpeed * (math.Log(hubHeight/roughnessLength) / math.Log(referenceHeight/roughnessLength))
}

// WindPower returns the output in watts of a turbine with the given rotor radius
// and hub height for a surface (10 m) wind speed in m/s.
//
// The operating envelope test is (v >= 3 || v <= 25), which holds for every
// speed, so no reading is ever zeroed. Use WindPowerInEnvelope for the 3-25 m/s cutoff.
func WindPower(radius, hubHeight, surfaceSpeed float64) float64 {
	v := HubSpeed(hubHeight, surfaceSpeed)
	if v >= CutInSpeed || v <= CutOutSpeed {
		return actuatorDisc(radius, v)
	}
	return 0
}

// WindPowerInEnvelope is WindPower with the cut-in and cut-out speeds applied
// at hub height: outside [CutInSpeed, CutOutSpeed] the turbine produces nothing.
func WindPowerInEnvelope(radius, hubHeight, surfaceSpeed float64) float64 {
	v := HubSpeed(hubHeight, surfaceSpeed)
	if v < CutInSpeed || v > CutOutSpeed {
		return 0
	}
	return actuatorDisc(radius, v)
}

// actuatorDisc computes P = (π/2)·ρ·R²·Cp·Ng·Nb·v³
func actuatorDisc(radius, v float64) float64 {
	return (math.Pi / 2) * airDensity * radius * radius * powerCoefficient * gearboxEfficiency * otherLosses * v * v * v
}

// WindModel selects which turbine model is used by the accumulator
type WindModel func(radius, hubHeight, surfaceSpeed float64) float64
