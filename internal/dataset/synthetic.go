package dataset

import "math/rand"

// EvenOdd samples n random 8-bit integers and labels them odd (1) or even
// (0). The input is the 8-bit binary expansion, least significant bit
// first, so the task is linearly separable on the first input unit.
func EvenOdd(n int, rng *rand.Rand) []Example {
	examples := make([]Example, n)
	for i := range examples {
		value := rng.Intn(256)
		examples[i] = FromClass(Bits(value), value&1, 1)
	}
	return examples
}

// Bits expands an 8-bit integer into its binary input vector, least
// significant bit first.
func Bits(value int) []float64 {
	input := make([]float64, 8)
	for bit := 0; bit < 8; bit++ {
		input[bit] = float64((value >> bit) & 1)
	}
	return input
}

// colorMargin keeps sampled colors away from the warm/cool boundary so the
// synthetic task stays cleanly separable.
const colorMargin = 32

// ColorWarmth samples n random RGB colors and labels them warm (1) when the
// red channel dominates the blue channel, cool (0) otherwise. Channels are
// normalized to [0, 1].
func ColorWarmth(n int, rng *rand.Rand) []Example {
	examples := make([]Example, n)
	for i := range examples {
		var r, g, b int
		for {
			r, g, b = rng.Intn(256), rng.Intn(256), rng.Intn(256)
			if r-b >= colorMargin || b-r >= colorMargin {
				break
			}
		}
		label := 0
		if r > b {
			label = 1
		}
		examples[i] = FromClass(RGB(r, g, b), label, 1)
	}
	return examples
}

// RGB normalizes an 8-bit RGB triple into a 3-unit input vector.
func RGB(r, g, b int) []float64 {
	return []float64{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}
