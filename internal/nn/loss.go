package nn

import (
	"fmt"
	"math"

	"github.com/sable-ml/sable/internal/tensor"
)

// Loss identifies the loss function paired with a network's output layer.
//
// The pairing is derived from the output activation, never chosen freely:
// sigmoid outputs use binary cross-entropy, softmax outputs categorical
// cross-entropy, and everything else mean squared error. Restricting the
// combinations keeps the output-layer gradient ŷ − y exact for the two
// cross-entropy pairings without ever materializing a softmax Jacobian.
type Loss int

// Supported losses.
const (
	// CrossEntropy is the categorical form −Σ y·log(ŷ), paired with a
	// softmax output.
	CrossEntropy Loss = iota

	// BinaryCrossEntropy sums −[y·log(ŷ) + (1−y)·log(1−ŷ)] over the
	// output units, paired with a sigmoid output.
	BinaryCrossEntropy

	// MSE is the mean squared error (1/n)·Σ(y−ŷ)², paired with the
	// remaining element-wise output activations.
	MSE
)

// lossEpsilon is added inside every log to keep log(0) out of the loss.
const lossEpsilon = 1e-10

// String returns a human-readable loss name.
func (l Loss) String() string {
	switch l {
	case CrossEntropy:
		return "cross-entropy"
	case BinaryCrossEntropy:
		return "binary-cross-entropy"
	case MSE:
		return "mse"
	default:
		return fmt.Sprintf("loss(%d)", int(l))
	}
}

// Compute evaluates the loss for one example.
//
// pred and target must have the same length or the call fails with a
// *tensor.ShapeError before any arithmetic happens.
func (l Loss) Compute(pred, target []float64) (float64, error) {
	if len(pred) != len(target) {
		return 0, &tensor.ShapeError{Op: "loss", Want: len(pred), Got: len(target)}
	}
	switch l {
	case CrossEntropy:
		var sum float64
		for i, y := range target {
			sum += y * math.Log(pred[i]+lossEpsilon)
		}
		return -sum, nil
	case BinaryCrossEntropy:
		var sum float64
		for i, y := range target {
			p := pred[i]
			sum += y*math.Log(p+lossEpsilon) + (1-y)*math.Log(1-p+lossEpsilon)
		}
		return -sum, nil
	case MSE:
		var sum float64
		for i, y := range target {
			d := y - pred[i]
			sum += d * d
		}
		return sum / float64(len(pred)), nil
	default:
		return 0, fmt.Errorf("unknown loss %d", int(l))
	}
}
