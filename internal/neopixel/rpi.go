//go:build pi

package neopixel

import (
	"fmt"

	"github.com/callebjorkell/neostrip/internal/spibus"
	"github.com/callebjorkell/neostrip/internal/ws281x"
	"periph.io/x/host/v3"
)

// NewLedController attaches the configured strips and returns a controller
// driving the real hardware.
func NewLedController(configs ...StripConfig) (*LedController, error) {
	if err := validate(configs); err != nil {
		return nil, err
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize host: %w", err)
	}

	opts := ws281x.Opts{}
	for _, c := range configs {
		opts.Strips = append(opts.Strips, ws281x.StripOpts{
			Pin:        c.Pin,
			Count:      c.Count,
			Layout:     c.Layout,
			Invert:     c.Invert,
			Brightness: 255,
		})
	}

	registry := spibus.New()
	dev, err := ws281x.New(registry, &opts)
	if err != nil {
		registry.Close()
		return nil, err
	}

	l := newController(dev, len(configs))
	l.closeBus = registry.Close
	return l, nil
}
