package ws281x

// One payload bit becomes one symbol byte on the wire. Clocked out at the
// 6.5 MHz SPI rate, the high bits of the zero and one symbols produce the
// short and long high pulses the WS281x protocol requires.
const (
	symbolZero byte = 0b11000000
	symbolOne  byte = 0b11111100
)

// symbols maps every byte value to its eight wire symbols, most significant
// bit first. The table keeps the render loop at a single lookup per byte.
var symbols [256][8]byte

func init() {
	for v := 0; v < 256; v++ {
		for bit := 0; bit < 8; bit++ {
			if v&(0x80>>bit) != 0 {
				symbols[v][bit] = symbolOne
			} else {
				symbols[v][bit] = symbolZero
			}
		}
	}
}

// encode places the eight symbols for b at the start of dst, complementing
// them when the channel's output signal is inverted.
func encode(dst []byte, b byte, invert bool) {
	if invert {
		for i, s := range symbols[b] {
			dst[i] = ^s
		}
		return
	}
	copy(dst, symbols[b][:])
}
