// Package ws281x drives WS281x/SK6812 class addressable LED strips over SPI.
// Each payload bit is expanded to one symbol byte whose high/low ratio, at
// the 6.5 MHz bus clock, matches the pulse widths of the clockless LED
// protocol. Up to three strips can be attached, one per SPI bus.
package ws281x

import (
	"time"

	"github.com/callebjorkell/neostrip/internal/pixel"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// TargetFreq is the SPI clock rate the symbol encoding is tuned for.
const TargetFreq = 6500 * physic.KiloHertz

const (
	// MaxChannels is the number of strip slots on a device.
	MaxChannels = 3

	// The wire buffer leads with a stretch of idle-low symbols and trails
	// with enough low time to latch the strip.
	preambleBytes = 44
	trailerBytes  = 8

	// bitPeriod is the nominal transmission time of one encoded payload
	// bit at the target baud rate.
	bitPeriod = 1250 * time.Nanosecond

	// resetGuard is the minimum low time the protocol requires between
	// frames before the strip treats new data as a fresh frame.
	resetGuard = 300 * time.Microsecond
)

// The data pins a channel may use: the MOSI line of one of the SPI buses.
const (
	Channel0DataPin = 10 // SPI0 MOSI
	Channel1DataPin = 2  // SPI3 MOSI
	Channel2DataPin = 20 // SPI1 MOSI
)

var busForPin = map[int]int{
	Channel0DataPin: 0,
	Channel1DataPin: 3,
	Channel2DataPin: 1,
}

// Bus gives the driver synchronous access to SPI devices keyed by bus and
// device number. Configure must be called before Tx; Release is idempotent.
type Bus interface {
	Configure(bus, device int, mode spi.Mode, f physic.Frequency) error
	Tx(bus, device int, w []byte) error
	Release(bus, device int) error
}

// StripOpts configures one LED strip.
type StripOpts struct {
	// Pin is the data pin, one of the ChannelNDataPin constants.
	Pin int
	// Count is the number of LEDs on the strip.
	Count int
	// Layout is the strip's wire color order. Zero means StripRGB.
	Layout Layout
	// Invert complements the output signal, for strips behind an
	// inverting level shifter.
	Invert bool
	// Brightness is the initial brightness, 0-255.
	Brightness uint8
}

// Opts configures a device instance.
type Opts struct {
	// Freq overrides the SPI clock. Zero means TargetFreq.
	Freq physic.Frequency
	// Strips are the attached channels, at most MaxChannels.
	Strips []StripOpts
}

// Dev is a handle to a set of LED strips. At most one render may be in
// flight; callers must serialize Render calls themselves.
type Dev struct {
	bus  Bus
	freq physic.Frequency

	channels [MaxChannels]*Channel
	spiBus   [MaxChannels]int
	spiDev   [MaxChannels]int

	raw      []byte
	maxCount int

	renderWait time.Duration
	lastRender time.Time
}

// New validates the configuration, configures the SPI device behind every
// strip pin and allocates the pixel and transmit buffers.
func New(bus Bus, opts *Opts) (*Dev, error) {
	if len(opts.Strips) == 0 || len(opts.Strips) > MaxChannels {
		return nil, ErrGeneric
	}

	d := &Dev{
		bus:  bus,
		freq: opts.Freq,
	}
	if d.freq == 0 {
		d.freq = TargetFreq
	}
	for i := range d.spiBus {
		d.spiBus[i] = -1
		d.spiDev[i] = -1
	}

	// Pin validation happens before any buffer allocation.
	for i, s := range opts.Strips {
		busNumber, ok := busForPin[s.Pin]
		if !ok {
			return nil, ErrIllegalGPIO
		}
		d.spiBus[i] = busNumber
		d.spiDev[i] = 0
	}

	for i, s := range opts.Strips {
		d.channels[i] = newChannel(s)
		if s.Count > d.maxCount {
			d.maxCount = s.Count
		}
	}

	for i := range opts.Strips {
		if err := bus.Configure(d.spiBus[i], d.spiDev[i], spi.Mode0, d.freq); err != nil {
			log.Errorf("Unable to configure SPI%d.%d: %v", d.spiBus[i], d.spiDev[i], err)
			d.cleanup()
			return nil, ErrSPISetup
		}
	}

	d.raw = make([]byte, preambleBytes+d.maxCount*maxPlanes*8+trailerBytes)

	return d, nil
}

// Channel returns the channel in the given slot, or nil for an empty slot.
func (d *Dev) Channel(index int) *Channel {
	if index < 0 || index >= MaxChannels {
		return nil
	}
	return d.channels[index]
}

// Leds is a shorthand for the pixel sequence of the given channel.
func (d *Dev) Leds(channel int) []pixel.Pixel {
	c := d.Channel(channel)
	if c == nil {
		return nil
	}
	return c.Leds()
}

// SetBrightness applies a brightness uniformly to all attached channels.
func (d *Dev) SetBrightness(brightness uint8) {
	for _, c := range d.channels {
		if c != nil {
			c.SetBrightness(brightness)
		}
	}
}

// SetColorCorrection applies a color correction to all attached channels,
// rebuilding their gamma tables.
func (d *Dev) SetColorCorrection(correction pixel.Pixel) {
	for _, c := range d.channels {
		if c != nil {
			c.SetColorCorrection(correction)
		}
	}
}

// SetColorTemperature applies a color temperature to all attached channels,
// rebuilding their gamma tables.
func (d *Dev) SetColorTemperature(temperature pixel.Pixel) {
	for _, c := range d.channels {
		if c != nil {
			c.SetColorTemperature(temperature)
		}
	}
}

// SetGammaFactor applies a gamma exponent to all attached channels,
// rebuilding their gamma tables.
func (d *Dev) SetGammaFactor(factor float64) {
	for _, c := range d.channels {
		if c != nil {
			c.SetGammaFactor(factor)
		}
	}
}

// Render encodes every channel's pixels into the wire format and transmits
// them. The call blocks until the previous frame's pacing deadline has
// passed. A transfer failure aborts the render; bytes already shipped to
// earlier channels are left as-is on the hardware.
func (d *Dev) Render() error {
	if err := d.Wait(); err != nil {
		return err
	}

	if d.renderWait != 0 {
		if elapsed := time.Since(d.lastRender); elapsed < d.renderWait {
			time.Sleep(d.renderWait - elapsed)
		}
	}

	var err error
	var protocolTime time.Duration
	for i, c := range d.channels {
		if c == nil {
			continue
		}

		// brightness+1 so the scale factor spans 1..256 and a full
		// brightness multiply stays an identity after the shift.
		scale := uint16(c.brightness) + 1
		planes := c.layout.Planes()

		// The channels transmit in parallel, so pacing is bounded by
		// the slowest one rather than the sum.
		if t := time.Duration(c.count*planes*8) * bitPeriod; t > protocolTime {
			protocolTime = t
		}

		for led := 0; led < c.count; led++ {
			p := c.leds[led]
			for j := 0; j < planes; j++ {
				raw := p.At(c.shifts[j])
				corrected := c.gamma[int(uint16(raw)*scale>>8)*maxPlanes+j]

				pos := preambleBytes + led*planes*8 + j*8
				encode(d.raw[pos:pos+8], corrected, c.invert)
			}
		}

		if txErr := d.bus.Tx(d.spiBus[i], d.spiDev[i], d.raw); txErr != nil {
			log.Errorf("SPI transfer failed on channel %d: %v", i, txErr)
			err = ErrSPITransfer
			break
		}
	}

	d.lastRender = time.Now()
	d.renderWait = protocolTime + resetGuard

	return err
}

// Wait blocks until any in-flight transfer has completed. Transfers on this
// transport are synchronous, so it always succeeds immediately.
func (d *Dev) Wait() error {
	return nil
}

// Fini waits for any outstanding operation and releases the device's
// channels, buffers and SPI devices. The device must not be used afterwards.
func (d *Dev) Fini() {
	d.Wait()
	d.cleanup()
}

func (d *Dev) cleanup() {
	for i := range d.channels {
		d.channels[i] = nil
		if d.spiBus[i] >= 0 {
			if err := d.bus.Release(d.spiBus[i], d.spiDev[i]); err != nil {
				log.Warnf("Unable to release SPI%d.%d: %v", d.spiBus[i], d.spiDev[i], err)
			}
			d.spiBus[i] = -1
			d.spiDev[i] = -1
		}
	}
	d.raw = nil
}
