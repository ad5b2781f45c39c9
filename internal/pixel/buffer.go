package pixel

import (
	log "github.com/sirupsen/logrus"
)

// PixelSet is the set of operations an animation can perform on a window of
// pixels. It is implemented by Buffer; effects should accept the interface so
// they can be driven against any backing store.
type PixelSet interface {
	Len() int
	Get(index int) *Pixel
	CopyFrom(toStart, toEnd int, from PixelSet, fromStart, fromEnd int)
	Scale(scale uint8)
	FadeToBlackBy(fade uint8)
	FillSolid(p Pixel)
	FillRainbow(initialHue, deltaHue uint8)
}

// Buffer is a window onto a sequence of pixels. A negative size creates a
// reversed window, where fills run from the far end towards the start.
type Buffer struct {
	leds     []Pixel
	reversed bool
}

// NewBuffer allocates a zeroed buffer for n pixels. A negative n allocates
// -n pixels and marks the buffer as reversed.
func NewBuffer(n int) *Buffer {
	reversed := n < 0
	if reversed {
		n = -n
	}
	return &Buffer{leds: make([]Pixel, n), reversed: reversed}
}

// Wrap creates a buffer over an existing pixel slice without copying. The
// caller keeps ownership of the slice.
func Wrap(leds []Pixel) *Buffer {
	return &Buffer{leds: leds}
}

func (b *Buffer) Len() int {
	return len(b.leds)
}

// Reversed reports whether fills run from the far end of the window.
func (b *Buffer) Reversed() bool {
	return b.reversed
}

// Pixels exposes the backing slice.
func (b *Buffer) Pixels() []Pixel {
	return b.leds
}

// Get returns a pointer to the pixel at index. The index must be within the
// buffer; out of range indices panic rather than corrupt memory.
func (b *Buffer) Get(index int) *Pixel {
	return &b.leds[index]
}

// CopyFrom copies the pixels in [fromStart, fromEnd) of the source window to
// [toStart, toEnd) of this one. Either range may run backwards to mirror the
// copy. Ranges of different lengths are skipped.
func (b *Buffer) CopyFrom(toStart, toEnd int, from PixelSet, fromStart, fromEnd int) {
	if abs(toStart-toEnd) != abs(fromStart-fromEnd) {
		log.Warnf("Skipping copy of mismatched ranges: %d..%d <- %d..%d", toStart, toEnd, fromStart, fromEnd)
		return
	}

	toInc := 1
	if toStart > toEnd {
		toInc = -1
	}
	fromInc := 1
	if fromStart > fromEnd {
		fromInc = -1
	}

	for i := 0; i < abs(toStart-toEnd); i++ {
		b.leds[i*toInc+toStart] = *from.Get(i*fromInc + fromStart)
	}
}

// Scale scales every pixel's red, green and blue channels by scale/256.
func (b *Buffer) Scale(scale uint8) {
	for i, p := range b.leds {
		r := Scale8(p.Red(), scale)
		g := Scale8(p.Green(), scale)
		bl := Scale8(p.Blue(), scale)
		b.leds[i] = New(r, g, bl)
	}
}

// FadeToBlackBy dims every pixel by fade/256ths towards black.
func (b *Buffer) FadeToBlackBy(fade uint8) {
	b.Scale(255 - fade)
}

// FillSolid sets every pixel in the window to the given color.
func (b *Buffer) FillSolid(p Pixel) {
	for i := range b.leds {
		b.leds[i] = p
	}
}

// FillRainbow paints the window with a rainbow, advancing the hue by
// deltaHue per pixel at full saturation and value. On a reversed window the
// fill is mirrored, starting from the far end.
func (b *Buffer) FillRainbow(initialHue, deltaHue uint8) {
	hue := initialHue
	if b.reversed {
		for i := len(b.leds) - 1; i >= 0; i-- {
			b.leds[i] = FromHSV(hue, 255, 255)
			hue += deltaHue
		}
		return
	}
	for i := range b.leds {
		b.leds[i] = FromHSV(hue, 255, 255)
		hue += deltaHue
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
