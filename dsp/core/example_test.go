package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-ringmod/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d samples=%d\n",
		cfg.SampleRate, cfg.BlockSize, cfg.Channels, cfg.BlockSamples())

	// Output:
	// sampleRate=44100 blockSize=256 channels=2 samples=512
}

func ExampleClampBlock() {
	buf := []float32{-2, -0.5, 0.25, 3}
	core.ClampBlock(buf)
	fmt.Println(buf)

	// Output:
	// [-1 -0.5 0.25 1]
}
