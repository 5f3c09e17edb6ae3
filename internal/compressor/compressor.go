package compressor

import (
	"fmt"
	"image"
)

// EncodeFunc re-encodes an image at a given quality. Injected so the search
// stays a pure function and tests run without a real codec.
type EncodeFunc func(img image.Image, quality int) ([]byte, error)

// Options parameterise the quality walk. Quality strictly decreases by Step
// per iteration, so the loop runs at most (InitialQuality-Floor)/Step + 1
// encodes.
type Options struct {
	InitialQuality int
	Floor          int
	Step           int
	MaxBytes       int
}

// Result is the final encode plus the quality that produced it. Iterations
// counts encode calls, for observability.
type Result struct {
	Bytes      []byte
	Quality    int
	Iterations int
}

// Compress encodes at Options.InitialQuality and, while the output exceeds
// Options.MaxBytes, steps the quality down until the budget is met or the
// floor is reached. The floor is a hard stop: the floor-quality bytes are
// returned even over budget, trading fidelity for a bound on degradation.
func Compress(img image.Image, enc EncodeFunc, opts Options) (Result, error) {
	if opts.Step <= 0 {
		return Result{}, fmt.Errorf("compressor: step must be positive, got %d", opts.Step)
	}
	if opts.InitialQuality < opts.Floor {
		return Result{}, fmt.Errorf("compressor: initial quality %d below floor %d", opts.InitialQuality, opts.Floor)
	}

	quality := opts.InitialQuality
	iterations := 0
	for {
		data, err := enc(img, quality)
		if err != nil {
			return Result{}, fmt.Errorf("compressor: encode at quality %d: %w", quality, err)
		}
		iterations++

		if len(data) <= opts.MaxBytes || quality <= opts.Floor {
			return Result{Bytes: data, Quality: quality, Iterations: iterations}, nil
		}

		quality -= opts.Step
		if quality < opts.Floor {
			quality = opts.Floor
		}
	}
}
