package power

import (
	"testing"

	"github.com/callebjorkell/neostrip/internal/pixel"
	"github.com/stretchr/testify/assert"
)

func solid(n int, p pixel.Pixel) []pixel.Pixel {
	leds := make([]pixel.Pixel, n)
	for i := range leds {
		leds[i] = p
	}
	return leds
}

func TestUnscaledMilliwatts(t *testing.T) {
	tt := []struct {
		name string
		leds []pixel.Pixel
		want uint32
	}{
		{"dark strip", solid(10, 0), 50},
		{"single full red", solid(1, pixel.New(255, 0, 0)), 255*80/256 + 5},
		{"single full green", solid(1, pixel.New(0, 255, 0)), 255*55/256 + 5},
		{"single full blue", solid(1, pixel.New(0, 0, 255)), 255*75/256 + 5},
		{"full white hundred", solid(100, pixel.New(255, 255, 255)), 25500*80/256 + 25500*55/256 + 25500*75/256 + 500},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UnscaledMilliwatts(tc.leds))
		})
	}
}

func TestMaxBrightnessUnchangedUnderBudget(t *testing.T) {
	leds := solid(3, pixel.New(10, 10, 10))
	assert.Equal(t, uint8(255), MaxBrightnessForPower(leds, 255, 100000))
}

func TestMaxBrightnessClampsOverBudget(t *testing.T) {
	leds := solid(100, pixel.New(255, 255, 255))

	got := MaxBrightnessForPower(leds, 255, 1000)
	assert.Less(t, got, uint8(255))

	// Re-estimating at the returned brightness must meet the budget
	// within integer rounding.
	estimated := UnscaledMilliwatts(leds) * uint32(got) / 256
	assert.LessOrEqual(t, estimated, uint32(1005))
}

func TestMaxBrightnessMonotonicInBudget(t *testing.T) {
	leds := solid(100, pixel.New(255, 255, 255))

	prev := uint8(0)
	for budget := uint32(100); budget <= 30000; budget += 100 {
		got := MaxBrightnessForPower(leds, 255, budget)
		assert.GreaterOrEqual(t, got, prev, "budget %d", budget)
		assert.LessOrEqual(t, got, uint8(255))
		prev = got
	}
}

func TestMaxBrightnessForPowerVA(t *testing.T) {
	leds := solid(100, pixel.New(255, 255, 255))
	assert.Equal(t, MaxBrightnessForPower(leds, 200, 5*2000), MaxBrightnessForPowerVA(leds, 200, 5, 2000))
}

func TestMaxBrightnessForBuffersSharesBudget(t *testing.T) {
	one := solid(100, pixel.New(255, 255, 255))
	two := solid(100, pixel.New(255, 255, 255))

	single := MaxBrightnessForPower(one, 255, 2000)
	both := MaxBrightnessForBuffers([][]pixel.Pixel{one, two}, 255, 2000)
	assert.Less(t, both, single)
}
