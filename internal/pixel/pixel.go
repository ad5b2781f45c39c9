package pixel

// Shift positions of the color channels inside a packed pixel. A pixel is
// always stored as 0xWWRRGGBB regardless of the wire order of the strip.
const (
	ShiftW = 24
	ShiftR = 16
	ShiftG = 8
	ShiftB = 0
)

// Pixel packs up to four 8-bit color channels (white, red, green, blue).
type Pixel uint32

// New packs a three channel RGB pixel.
func New(r, g, b uint8) Pixel {
	return Pixel(r)<<ShiftR | Pixel(g)<<ShiftG | Pixel(b)<<ShiftB
}

// NewRGBW packs a four channel pixel for strips with a white channel.
func NewRGBW(r, g, b, w uint8) Pixel {
	return New(r, g, b) | Pixel(w)<<ShiftW
}

func (p Pixel) White() uint8 {
	return uint8(p >> ShiftW)
}

func (p Pixel) Red() uint8 {
	return uint8(p >> ShiftR)
}

func (p Pixel) Green() uint8 {
	return uint8(p >> ShiftG)
}

func (p Pixel) Blue() uint8 {
	return uint8(p >> ShiftB)
}

// At extracts the channel stored at the given bit shift.
func (p Pixel) At(shift uint) uint8 {
	return uint8(p >> shift)
}
