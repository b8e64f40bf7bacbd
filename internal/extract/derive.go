package extract

import "math"

// VolumetricDivisor is the air-freight dimensional constant converting
// volumetric weight (kg) to cubic meters. The chargeable-weight computation
// multiplies by the same constant; the two must never diverge.
const VolumetricDivisor = 167.0

// volumeM3 converts a raw volumetric weight to an approximate volume.
func volumeM3(volumetricKG float64) float64 {
	return volumetricKG / VolumetricDivisor
}

// chargeableKG is the freight-pricing weight: the greater of the actual
// weight and the volumetric-equivalent weight reconstructed from the volume.
func chargeableKG(grossKG, volM3 float64) float64 {
	return math.Max(grossKG, volM3*VolumetricDivisor)
}
