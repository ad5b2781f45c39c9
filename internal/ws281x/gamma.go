package ws281x

import (
	"math"

	"github.com/callebjorkell/neostrip/internal/pixel"
)

// rebuildGamma recomputes the whole 256 x 4 gamma table from the channel's
// color correction, color temperature and gamma exponent. The table is never
// partially updated; every setter regenerates it in full.
func (c *Channel) rebuildGamma() {
	shifts := [maxPlanes]uint{pixel.ShiftR, pixel.ShiftG, pixel.ShiftB, pixel.ShiftW}

	for j, shift := range shifts {
		factor := float64(c.correction.At(shift)) * float64(c.temperature.At(shift)) / 255.0
		factor = float64(uint8(factor))

		for level := 0; level < 256; level++ {
			v := math.Pow(factor*float64(level)/(255.0*255.0), c.gammaFactor)
			c.gamma[level*maxPlanes+j] = uint8(v*255.0 + 0.5)
		}
	}
}
