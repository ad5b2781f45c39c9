package ws281x

import (
	"github.com/callebjorkell/neostrip/internal/pixel"
)

// maxPlanes is the number of color planes the gamma table and the wire
// buffer are sized for, so three and four channel strips can share them.
const maxPlanes = 4

// Channel is one physical LED strip attached to a device data pin. The
// channel owns its pixel sequence and its gamma table; both live until the
// device is finalized.
type Channel struct {
	pin    int
	count  int
	layout Layout
	invert bool

	brightness  uint8
	leds        []pixel.Pixel
	gamma       []uint8
	correction  pixel.Pixel
	temperature pixel.Pixel
	gammaFactor float64
	shifts      [maxPlanes]uint
}

func newChannel(o StripOpts) *Channel {
	layout := o.Layout
	if layout == 0 {
		layout = StripRGB
	}

	c := &Channel{
		pin:         o.Pin,
		count:       o.Count,
		layout:      layout,
		invert:      o.Invert,
		brightness:  o.Brightness,
		leds:        make([]pixel.Pixel, o.Count),
		gamma:       make([]uint8, 256*maxPlanes),
		correction:  pixel.NewRGBW(255, 255, 255, 255),
		temperature: pixel.NewRGBW(255, 255, 255, 255),
		gammaFactor: 1.0,
		shifts:      layout.shifts(),
	}

	// Identity table until a correction, temperature or gamma change
	// forces a rebuild.
	for level := 0; level < 256; level++ {
		for j := 0; j < maxPlanes; j++ {
			c.gamma[level*maxPlanes+j] = uint8(level)
		}
	}

	return c
}

// Leds is the channel's pixel sequence. Writes take effect on the next
// render.
func (c *Channel) Leds() []pixel.Pixel {
	return c.leds
}

func (c *Channel) Count() int {
	return c.count
}

func (c *Channel) Layout() Layout {
	return c.layout
}

func (c *Channel) Brightness() uint8 {
	return c.brightness
}

// SetBrightness sets the scale applied to every pixel on the next render.
func (c *Channel) SetBrightness(brightness uint8) {
	c.brightness = brightness
}

// SetColorCorrection replaces the channel's color correction and rebuilds
// the gamma table. Must not be called while a render is in flight.
func (c *Channel) SetColorCorrection(correction pixel.Pixel) {
	c.correction = correction
	c.rebuildGamma()
}

// SetColorTemperature replaces the channel's color temperature and rebuilds
// the gamma table. Must not be called while a render is in flight.
func (c *Channel) SetColorTemperature(temperature pixel.Pixel) {
	c.temperature = temperature
	c.rebuildGamma()
}

// SetGammaFactor replaces the gamma exponent and rebuilds the gamma table.
// Must not be called while a render is in flight.
func (c *Channel) SetGammaFactor(factor float64) {
	c.gammaFactor = factor
	c.rebuildGamma()
}
