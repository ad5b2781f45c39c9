package pixel

// SectionWidth is the size of one of the six sections the hue wheel is
// divided into (red, yellow, green, aqua, blue, purple).
const SectionWidth = 43

// Landmark hues for the six segment color space.
const (
	HueRed    uint8 = 0
	HueOrange uint8 = SectionWidth / 2
	HueYellow uint8 = SectionWidth
	HueGreen  uint8 = SectionWidth * 2
	HueAqua   uint8 = SectionWidth * 3
	HueBlue   uint8 = SectionWidth * 4
	HuePurple uint8 = SectionWidth * 5
	HuePink   uint8 = SectionWidth*5 + SectionWidth/2
)

// FromHSV converts hue, saturation and value (all 0-255) to a packed RGB
// pixel. Within each hue section one channel ramps linearly up or down while
// the other two sit at a ceiling or at the brightness floor, which keeps the
// output visually linear and is the basis for all rainbow effects.
func FromHSV(hue, saturation, value uint8) Pixel {
	// The brightness floor is the minimum that all of R, G and B will be
	// set to; the amplitude is what gets added on top to create the hue.
	floor := uint8(uint16(value) * uint16(255-saturation) / 256)
	amplitude := value - floor

	section := hue / SectionWidth // 0..5
	offset := hue % SectionWidth  // 0..42

	rampUp := uint8(uint16(offset)*uint16(amplitude)/SectionWidth) + floor
	rampDown := uint8(uint16(SectionWidth-1-offset)*uint16(amplitude)/SectionWidth) + floor
	ceiling := 255 + floor

	switch section {
	case 1: // yellow to green
		return New(rampDown, ceiling, floor)
	case 2: // green to aqua
		return New(floor, ceiling, rampUp)
	case 3: // aqua to blue
		return New(floor, rampDown, ceiling)
	case 4: // blue to purple
		return New(rampUp, floor, ceiling)
	case 5: // purple to red
		return New(ceiling, floor, rampDown)
	default: // red to yellow
		return New(ceiling, rampUp, floor)
	}
}
