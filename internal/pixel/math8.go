package pixel

// Scale8 scales one byte by a second one, treated as the numerator of a
// fraction whose denominator is 256. In other words it computes
// i * (scale / 256).
func Scale8(i, scale uint8) uint8 {
	return uint8(uint16(i) * uint16(scale) >> 8)
}

// Scale8Video is like Scale8 but guarantees a non-zero result when both
// inputs are non-zero, which makes for better LED dimming at low levels.
func Scale8Video(i, scale uint8) uint8 {
	v := uint8(uint16(i) * uint16(scale) >> 8)
	if i != 0 && scale != 0 {
		v++
	}
	return v
}

// QAdd8 adds two bytes, saturating at 255.
func QAdd8(i, j uint8) uint8 {
	t := uint16(i) + uint16(j)
	if t > 255 {
		t = 255
	}
	return uint8(t)
}

// QSub8 subtracts one byte from another, saturating at 0.
func QSub8(i, j uint8) uint8 {
	if j > i {
		return 0
	}
	return i - j
}
