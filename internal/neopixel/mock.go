//go:build !pi

package neopixel

import (
	"github.com/callebjorkell/neostrip/internal/pixel"
	log "github.com/sirupsen/logrus"
)

// mockEngine stands in for the strip driver on anything that is not a Pi, so
// the binary can run during development.
type mockEngine struct {
	strips [][]pixel.Pixel
}

func (m *mockEngine) Render() error {
	log.Debug("neopixel: Render")
	for i, leds := range m.strips {
		log.Tracef("strip %d: %#v", i, leds)
	}
	return nil
}

func (m *mockEngine) Wait() error {
	return nil
}

func (m *mockEngine) Fini() {
	log.Debug("neopixel: Fini")
}

func (m *mockEngine) Leds(channel int) []pixel.Pixel {
	if channel < 0 || channel >= len(m.strips) {
		return nil
	}
	return m.strips[channel]
}

func (m *mockEngine) SetBrightness(brightness uint8)              {}
func (m *mockEngine) SetColorCorrection(correction pixel.Pixel)   {}
func (m *mockEngine) SetColorTemperature(temperature pixel.Pixel) {}
func (m *mockEngine) SetGammaFactor(factor float64)               {}

// NewLedController returns a controller over a mocked strip driver.
func NewLedController(configs ...StripConfig) (*LedController, error) {
	if err := validate(configs); err != nil {
		return nil, err
	}

	strips := make([][]pixel.Pixel, len(configs))
	for i, c := range configs {
		strips[i] = make([]pixel.Pixel, c.Count)
	}

	return newController(&mockEngine{strips: strips}, len(configs)), nil
}
