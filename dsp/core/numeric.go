package core

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float32) float32 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampBlock limits every sample in buf to [-1, 1] in place.
func ClampBlock(buf []float32) {
	for i, v := range buf {
		buf[i] = Clamp(v, -1, 1)
	}
}
