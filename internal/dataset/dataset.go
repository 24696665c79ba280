// Package dataset prepares the numeric training data the Sable engine
// consumes: typed examples, synthetic toy sets, skip-gram pairs for word
// embeddings, and NumPy .npy loading for external data.
//
// The engine only ever sees []float64 inputs and targets; everything that
// knows where the numbers came from lives here.
package dataset

import (
	"math/rand"
)

// Example is one training example. The engine treats it as read-only.
type Example struct {
	// Input is the feature vector, length n0.
	Input []float64

	// Target is the desired output vector, length nL. For classification
	// examples it is the one-hot (or single-unit) encoding of Class.
	Target []float64

	// Class is the label index for classification examples, -1 otherwise.
	// Trainers use it to compute accuracy.
	Class int
}

// FromVector builds an example with an explicit target vector, as used for
// regression and skip-gram training.
func FromVector(input, target []float64) Example {
	return Example{Input: input, Target: target, Class: -1}
}

// FromClass builds a classification example. With width 1 the target is
// the raw 0/1 label for a single sigmoid unit; wider targets are one-hot.
func FromClass(input []float64, class, width int) Example {
	target := make([]float64, width)
	if width == 1 {
		target[0] = float64(class)
	} else {
		target[class] = 1
	}
	return Example{Input: input, Target: target, Class: class}
}

// Split partitions examples into train and test sets, holding out testN
// random examples. The input slice is not modified.
func Split(examples []Example, testN int, rng *rand.Rand) (train, test []Example) {
	shuffled := append([]Example(nil), examples...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if testN > len(shuffled) {
		testN = len(shuffled)
	}
	return shuffled[testN:], shuffled[:testN]
}
