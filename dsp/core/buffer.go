package core

// FramesIn returns the number of whole frames of channels samples in buf.
func FramesIn(buf []float32, channels int) int {
	if channels <= 0 {
		return 0
	}
	return len(buf) / channels
}
