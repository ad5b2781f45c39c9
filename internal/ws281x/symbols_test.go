package ws281x

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSymbols(t *testing.T, wire []byte, invert bool) byte {
	t.Helper()
	require.Len(t, wire, 8)

	var v byte
	for i, s := range wire {
		if invert {
			s = ^s
		}
		switch s {
		case symbolOne:
			v |= 0x80 >> i
		case symbolZero:
		default:
			t.Fatalf("byte %d is not a valid symbol: %#02x", i, s)
		}
	}
	return v
}

func TestEncodeRoundTrip(t *testing.T) {
	wire := make([]byte, 8)
	for v := 0; v < 256; v++ {
		encode(wire, byte(v), false)
		assert.Equal(t, byte(v), decodeSymbols(t, wire, false))
	}
}

func TestEncodeInverted(t *testing.T) {
	wire := make([]byte, 8)
	for _, v := range []byte{0x00, 0x01, 0x55, 0xaa, 0xff} {
		encode(wire, v, true)
		assert.Equal(t, v, decodeSymbols(t, wire, true))
	}
}

func TestEncodeBitOrder(t *testing.T) {
	wire := make([]byte, 8)

	// 0x80 is the first bit on the wire.
	encode(wire, 0x80, false)
	assert.Equal(t, symbolOne, wire[0])
	for _, s := range wire[1:] {
		assert.Equal(t, symbolZero, s)
	}

	encode(wire, 0x01, false)
	assert.Equal(t, symbolOne, wire[7])
	for _, s := range wire[:7] {
		assert.Equal(t, symbolZero, s)
	}
}
