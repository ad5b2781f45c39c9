package ws281x

// Layout encodes the wire order of a strip's color channels as four shift
// amounts, packed one per byte: white<<24 | red<<16 | green<<8 | blue. A
// non-zero white nibble marks a four channel (RGBW) strip.
type Layout uint32

// Three channel strips.
const (
	StripRGB Layout = 0x00100800
	StripRBG Layout = 0x00100008
	StripGRB Layout = 0x00081000
	StripGBR Layout = 0x00080010
	StripBRG Layout = 0x00001008
	StripBGR Layout = 0x00000810
)

// Four channel strips with a dedicated white LED.
const (
	StripRGBW Layout = 0x18100800
	StripRBGW Layout = 0x18100008
	StripGRBW Layout = 0x18081000
	StripGBRW Layout = 0x18080010
	StripBRGW Layout = 0x18001008
	StripBGRW Layout = 0x18000810
)

// Aliases for common chip families.
const (
	StripNeoPixel = StripGRB
	StripWS2812   = StripGRB
	StripWS2811   = StripRGB
	StripSK6812   = StripGRB
	StripSK6812W  = StripGRBW
)

const whiteMask Layout = 0xf0000000

// Planes is the number of color planes transmitted per LED: 4 when the
// layout carries a white channel, otherwise 3.
func (l Layout) Planes() int {
	if l&whiteMask != 0 {
		return 4
	}
	return 3
}

// shifts returns the pixel bit shift for each wire plane in render order
// (red, green, blue, white).
func (l Layout) shifts() [maxPlanes]uint {
	return [maxPlanes]uint{
		uint(l >> 16 & 0xff),
		uint(l >> 8 & 0xff),
		uint(l & 0xff),
		uint(l >> 24 & 0xff),
	}
}
