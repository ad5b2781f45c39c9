package ws281x

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/callebjorkell/neostrip/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type fakeBus struct {
	configured   []string
	released     []string
	frames       [][]byte
	freq         physic.Frequency
	mode         spi.Mode
	configureErr error
	txErr        error
}

func (f *fakeBus) Configure(bus, device int, mode spi.Mode, freq physic.Frequency) error {
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configured = append(f.configured, fmt.Sprintf("SPI%d.%d", bus, device))
	f.mode = mode
	f.freq = freq
	return nil
}

func (f *fakeBus) Tx(bus, device int, w []byte) error {
	if f.txErr != nil {
		return f.txErr
	}
	frame := make([]byte, len(w))
	copy(frame, w)
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeBus) Release(bus, device int) error {
	f.released = append(f.released, fmt.Sprintf("SPI%d.%d", bus, device))
	return nil
}

// ledSymbols picks the wire symbols of one color plane out of a frame.
func ledSymbols(frame []byte, planes, led, plane int) []byte {
	pos := preambleBytes + led*planes*8 + plane*8
	return frame[pos : pos+8]
}

func TestNewMapsPinsToBuses(t *testing.T) {
	tt := []struct {
		pin int
		bus string
	}{
		{pin: Channel0DataPin, bus: "SPI0.0"},
		{pin: Channel1DataPin, bus: "SPI3.0"},
		{pin: Channel2DataPin, bus: "SPI1.0"},
	}

	for _, tc := range tt {
		t.Run(tc.bus, func(t *testing.T) {
			bus := &fakeBus{}
			d, err := New(bus, &Opts{Strips: []StripOpts{{Pin: tc.pin, Count: 1}}})
			require.NoError(t, err)
			defer d.Fini()

			assert.Equal(t, []string{tc.bus}, bus.configured)
			assert.Equal(t, spi.Mode0, bus.mode)
			assert.Equal(t, TargetFreq, bus.freq)
		})
	}
}

func TestNewRejectsIllegalPin(t *testing.T) {
	bus := &fakeBus{}
	_, err := New(bus, &Opts{Strips: []StripOpts{{Pin: 18, Count: 1}}})
	assert.Equal(t, ErrIllegalGPIO, err)
	assert.Empty(t, bus.configured)
}

func TestNewRejectsBadStripCount(t *testing.T) {
	bus := &fakeBus{}

	_, err := New(bus, &Opts{})
	assert.Equal(t, ErrGeneric, err)

	four := []StripOpts{
		{Pin: Channel0DataPin, Count: 1},
		{Pin: Channel1DataPin, Count: 1},
		{Pin: Channel2DataPin, Count: 1},
		{Pin: Channel0DataPin, Count: 1},
	}
	_, err = New(bus, &Opts{Strips: four})
	assert.Equal(t, ErrGeneric, err)
}

func TestNewConfigureFailureReleases(t *testing.T) {
	bus := &fakeBus{configureErr: errors.New("busy")}
	_, err := New(bus, &Opts{Strips: []StripOpts{{Pin: Channel0DataPin, Count: 1}}})
	assert.Equal(t, ErrSPISetup, err)
	assert.Equal(t, []string{"SPI0.0"}, bus.released)
}

func TestRenderEncodesPrimaries(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, &Opts{Strips: []StripOpts{
		{Pin: Channel0DataPin, Count: 3, Layout: StripRGB, Brightness: 255},
	}})
	require.NoError(t, err)
	defer d.Fini()

	leds := d.Leds(0)
	leds[0] = pixel.New(255, 0, 0)
	leds[1] = pixel.New(0, 255, 0)
	leds[2] = pixel.New(0, 0, 255)

	require.NoError(t, d.Render())
	require.Len(t, bus.frames, 1)
	frame := bus.frames[0]
	assert.Len(t, frame, preambleBytes+3*maxPlanes*8+trailerBytes)

	full := make([]byte, 8)
	dark := make([]byte, 8)
	encode(full, 0xff, false)
	encode(dark, 0x00, false)

	// StripRGB ships red, green, blue in wire order.
	for led := 0; led < 3; led++ {
		for plane := 0; plane < 3; plane++ {
			want := dark
			if plane == led {
				want = full
			}
			assert.Equal(t, want, ledSymbols(frame, 3, led, plane), "led %d plane %d", led, plane)
		}
	}

	// The preamble and trailer stay low.
	for _, b := range frame[:preambleBytes] {
		assert.Equal(t, byte(0), b)
	}
	for _, b := range frame[len(frame)-trailerBytes:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestRenderGRBReordersPlanes(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, &Opts{Strips: []StripOpts{
		{Pin: Channel0DataPin, Count: 1, Layout: StripGRB, Brightness: 255},
	}})
	require.NoError(t, err)
	defer d.Fini()

	d.Leds(0)[0] = pixel.New(255, 0, 0)

	require.NoError(t, d.Render())
	require.Len(t, bus.frames, 1)

	full := make([]byte, 8)
	encode(full, 0xff, false)

	// On a GRB strip red goes out second.
	assert.Equal(t, full, ledSymbols(bus.frames[0], 3, 0, 1))
	assert.Equal(t, byte(0xc0), ledSymbols(bus.frames[0], 3, 0, 0)[0])
}

func TestRenderWhitePlane(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, &Opts{Strips: []StripOpts{
		{Pin: Channel0DataPin, Count: 1, Layout: StripGRBW, Brightness: 255},
	}})
	require.NoError(t, err)
	defer d.Fini()

	d.Leds(0)[0] = pixel.NewRGBW(0, 0, 0, 0xff)

	require.NoError(t, d.Render())
	require.Len(t, bus.frames, 1)

	full := make([]byte, 8)
	encode(full, 0xff, false)
	assert.Equal(t, full, ledSymbols(bus.frames[0], 4, 0, 3))
}

func TestRenderBrightnessScales(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, &Opts{Strips: []StripOpts{
		{Pin: Channel0DataPin, Count: 1, Layout: StripRGB, Brightness: 127},
	}})
	require.NoError(t, err)
	defer d.Fini()

	d.Leds(0)[0] = pixel.New(255, 0, 0)

	require.NoError(t, d.Render())
	require.Len(t, bus.frames, 1)

	// 0xff * (127+1) >> 8 = 127.
	half := make([]byte, 8)
	encode(half, 127, false)
	assert.Equal(t, half, ledSymbols(bus.frames[0], 3, 0, 0))
}

func TestRenderInverted(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, &Opts{Strips: []StripOpts{
		{Pin: Channel0DataPin, Count: 1, Layout: StripRGB, Invert: true, Brightness: 255},
	}})
	require.NoError(t, err)
	defer d.Fini()

	d.Leds(0)[0] = pixel.New(255, 0, 0)

	require.NoError(t, d.Render())
	require.Len(t, bus.frames, 1)

	want := make([]byte, 8)
	encode(want, 0xff, true)
	assert.Equal(t, want, ledSymbols(bus.frames[0], 3, 0, 0))
	assert.Equal(t, ^symbolZero, ledSymbols(bus.frames[0], 3, 0, 1)[0])
}

func TestRenderTransferFailure(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, &Opts{Strips: []StripOpts{
		{Pin: Channel0DataPin, Count: 1, Brightness: 255},
	}})
	require.NoError(t, err)
	defer d.Fini()

	bus.txErr = errors.New("short write")
	assert.Equal(t, ErrSPITransfer, d.Render())

	// Pacing is armed even when the transfer fails.
	assert.NotZero(t, d.renderWait)
}

func TestRenderPacing(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, &Opts{Strips: []StripOpts{
		{Pin: Channel0DataPin, Count: 100, Layout: StripGRBW, Brightness: 255},
	}})
	require.NoError(t, err)
	defer d.Fini()

	require.NoError(t, d.Render())

	// 100 LEDs * 4 planes * 8 bits at 1.25us plus the latch guard.
	want := 100*4*8*bitPeriod + resetGuard
	assert.Equal(t, want, d.renderWait)

	// A back to back render must block for roughly the frame time.
	start := time.Now()
	require.NoError(t, d.Render())
	assert.GreaterOrEqual(t, time.Since(start), want/2)
}

func TestFiniReleases(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, &Opts{Strips: []StripOpts{
		{Pin: Channel0DataPin, Count: 1},
		{Pin: Channel2DataPin, Count: 1},
	}})
	require.NoError(t, err)

	d.Fini()
	assert.Equal(t, []string{"SPI0.0", "SPI1.0"}, bus.released)
	assert.Nil(t, d.Channel(0))
	assert.Nil(t, d.Leds(1))
}

func TestResultStrings(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "SPI transfer error", ErrSPITransfer.Error())
	assert.Equal(t, "Selected GPIO not possible", ErrIllegalGPIO.Error())
}
