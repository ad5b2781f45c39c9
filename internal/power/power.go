// Package power estimates LED strip power draw and derives a brightness that
// keeps the draw under a caller supplied ceiling.
//
// The per-channel weights are empirical: they come from measuring a number of
// real strips and closed-loop testing that staying at or under these values
// keeps consumption under the target. Actual draw is more complicated
// (voltage drop and friends), but this linear model is good enough and far
// better than no power management at all.
package power

import (
	"github.com/callebjorkell/neostrip/internal/pixel"
)

// Milliwatt cost of driving one channel at full intensity, plus the idle
// draw of a single dark LED.
const (
	redMilliwatts   = 16 * 5 // 16mA @ 5v
	greenMilliwatts = 11 * 5 // 11mA @ 5v
	blueMilliwatts  = 15 * 5 // 15mA @ 5v
	darkMilliwatts  = 1 * 5  //  1mA @ 5v
)

// UnscaledMilliwatts estimates the draw of the given pixels at full
// brightness. Each channel's summed intensity is weighted by its calibrated
// milliwatt cost and divided down by 256, so a full channel at 255 costs
// (almost exactly) the calibrated constant.
func UnscaledMilliwatts(leds []pixel.Pixel) uint32 {
	var red, green, blue uint32
	for _, p := range leds {
		red += uint32(p.Red())
		green += uint32(p.Green())
		blue += uint32(p.Blue())
	}

	red = red * redMilliwatts >> 8
	green = green * greenMilliwatts >> 8
	blue = blue * blueMilliwatts >> 8

	return red + green + blue + darkMilliwatts*uint32(len(leds))
}

// MaxBrightnessForPower returns the highest brightness, at most
// targetBrightness, at which the estimated draw of the pixels stays within
// maxMilliwatts.
func MaxBrightnessForPower(leds []pixel.Pixel, targetBrightness uint8, maxMilliwatts uint32) uint8 {
	return limit(UnscaledMilliwatts(leds), targetBrightness, maxMilliwatts)
}

// MaxBrightnessForPowerVA is MaxBrightnessForPower with the ceiling given as
// supply volts and milliamps.
func MaxBrightnessForPowerVA(leds []pixel.Pixel, targetBrightness uint8, volts uint8, milliamps uint32) uint8 {
	return MaxBrightnessForPower(leds, targetBrightness, uint32(volts)*milliamps)
}

// MaxBrightnessForBuffers budgets a whole device at once: the unscaled draw
// of every buffer is summed before the ratio test, so the channels share a
// single power budget rather than being clamped independently.
func MaxBrightnessForBuffers(buffers [][]pixel.Pixel, targetBrightness uint8, maxMilliwatts uint32) uint8 {
	var total uint32
	for _, leds := range buffers {
		total += UnscaledMilliwatts(leds)
	}
	return limit(total, targetBrightness, maxMilliwatts)
}

func limit(totalMilliwatts uint32, targetBrightness uint8, maxMilliwatts uint32) uint8 {
	requested := totalMilliwatts * uint32(targetBrightness) / 256
	if requested <= maxMilliwatts {
		return targetBrightness
	}
	return uint8(uint32(targetBrightness) * maxMilliwatts / requested)
}
