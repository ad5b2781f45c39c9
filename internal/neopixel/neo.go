// Package neopixel is the simplified controller surface over the strip
// driver: attach up to two strips, set a global brightness and an optional
// power ceiling, write colors and show. Animations share the strips through
// the interruptor queue.
package neopixel

import (
	"fmt"
	"time"

	"github.com/callebjorkell/neostrip/internal/pixel"
	"github.com/callebjorkell/neostrip/internal/power"
	"github.com/callebjorkell/neostrip/internal/ws281x"
	log "github.com/sirupsen/logrus"
)

// MaxStrips is the number of strips a controller can drive.
const MaxStrips = 2

type wsEngine interface {
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []pixel.Pixel
	SetBrightness(brightness uint8)
	SetColorCorrection(correction pixel.Pixel)
	SetColorTemperature(temperature pixel.Pixel)
	SetGammaFactor(factor float64)
}

// StripConfig describes one attached strip.
type StripConfig struct {
	// Pin is the strip's data pin, one of the ws281x ChannelNDataPin
	// constants.
	Pin int
	// Count is the number of LEDs.
	Count int
	// Layout is the strip's color order. Zero means RGB.
	Layout ws281x.Layout
	// Invert complements the output signal.
	Invert bool
}

// LedController drives the attached strips. Methods are not safe for
// concurrent use; animations coordinate through the interruptor instead.
type LedController struct {
	ws       wsEngine
	closeBus func() error
	strips   int

	brightness    uint8
	maxMilliwatts uint32

	minFrameTime time.Duration
	lastShow     time.Time

	interruptor Queue
}

func newController(ws wsEngine, strips int) *LedController {
	return &LedController{
		ws:         ws,
		strips:     strips,
		brightness: 255,
	}
}

// Strips is the number of attached strips.
func (l *LedController) Strips() int {
	return l.strips
}

// Strip is the pixel window of one attached strip. Writes show up on the
// next Show.
func (l *LedController) Strip(index int) *pixel.Buffer {
	return pixel.Wrap(l.ws.Leds(index))
}

// Brightness is the controller's global brightness.
func (l *LedController) Brightness() uint8 {
	return l.brightness
}

// SetBrightness sets the global brightness used by Show.
func (l *LedController) SetBrightness(brightness uint8) {
	l.brightness = brightness
}

// SetMaxPowerInMilliWatts caps the estimated power draw. Show dims the
// frame's brightness when the estimate would exceed the ceiling. Zero
// disables the cap.
func (l *LedController) SetMaxPowerInMilliWatts(milliwatts uint32) {
	l.maxMilliwatts = milliwatts
}

// SetMaxPowerInVoltsAndMilliamps caps the estimated power draw given the
// supply voltage and current limit.
func (l *LedController) SetMaxPowerInVoltsAndMilliamps(volts uint8, milliamps uint32) {
	l.SetMaxPowerInMilliWatts(uint32(volts) * milliamps)
}

// SetCorrection sets the color correction on all strips.
func (l *LedController) SetCorrection(correction pixel.Pixel) {
	l.ws.SetColorCorrection(correction)
}

// SetTemperature sets the color temperature on all strips.
func (l *LedController) SetTemperature(temperature pixel.Pixel) {
	l.ws.SetColorTemperature(temperature)
}

// SetGammaFactor sets the gamma exponent on all strips.
func (l *LedController) SetGammaFactor(factor float64) {
	l.ws.SetGammaFactor(factor)
}

// SetMaxRefreshRate caps Show at the given frames per second. Zero removes
// the cap; the driver's protocol pacing still applies.
func (l *LedController) SetMaxRefreshRate(fps int) {
	if fps <= 0 {
		l.minFrameTime = 0
		return
	}
	l.minFrameTime = time.Second / time.Duration(fps)
}

// Show renders all strips at the controller's brightness.
func (l *LedController) Show() error {
	return l.ShowAt(l.brightness)
}

// ShowAt renders all strips at the given brightness, dimmed further if the
// power ceiling demands it.
func (l *LedController) ShowAt(brightness uint8) error {
	b := brightness
	if l.maxMilliwatts > 0 {
		b = power.MaxBrightnessForBuffers(l.buffers(), brightness, l.maxMilliwatts)
		if b < brightness {
			log.Debugf("Power limited: brightness %d -> %d", brightness, b)
		}
	}
	l.ws.SetBrightness(b)

	if l.minFrameTime > 0 {
		if elapsed := time.Since(l.lastShow); elapsed < l.minFrameTime {
			time.Sleep(l.minFrameTime - elapsed)
		}
	}

	err := l.ws.Render()
	l.lastShow = time.Now()
	return err
}

// Clear blacks out all strips, rendering the result when write is set.
func (l *LedController) Clear(write bool) error {
	for i := 0; i < l.strips; i++ {
		l.Strip(i).FillSolid(0)
	}
	if !write {
		return nil
	}
	return l.Show()
}

// Close clears the strips and releases the device.
func (l *LedController) Close() error {
	if err := l.Clear(true); err != nil {
		log.Warn("Unable to clear on close: ", err)
	}
	l.ws.Fini()
	if l.closeBus != nil {
		return l.closeBus()
	}
	return nil
}

func (l *LedController) buffers() [][]pixel.Pixel {
	buffers := make([][]pixel.Pixel, 0, l.strips)
	for i := 0; i < l.strips; i++ {
		buffers = append(buffers, l.ws.Leds(i))
	}
	return buffers
}

func validate(configs []StripConfig) error {
	if len(configs) == 0 {
		return fmt.Errorf("no strips configured")
	}
	if len(configs) > MaxStrips {
		return fmt.Errorf("at most %d strips are supported, got %d", MaxStrips, len(configs))
	}
	for _, c := range configs {
		if c.Count <= 0 {
			return fmt.Errorf("strip on pin %d has no LEDs", c.Pin)
		}
	}
	return nil
}
