package nn

import (
	"fmt"
	"math"
)

// Activation is a closed set of layer activation functions.
//
// Each variant carries its own forward application and derivative, so
// adding an activation means extending the switch statements here rather
// than comparing strings at dispatch time.
type Activation int

// Supported activations.
const (
	Sigmoid Activation = iota
	ReLU
	Tanh
	Softmax
)

// sigmoidClamp bounds the exponent fed to math.Exp. Beyond this magnitude
// the sigmoid is 0 or 1 to full float64 precision anyway, and clamping
// keeps Exp from overflowing to +Inf.
const sigmoidClamp = 500.0

// String returns the lower-case tag used in configuration and persisted
// models.
func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case ReLU:
		return "relu"
	case Tanh:
		return "tanh"
	case Softmax:
		return "softmax"
	default:
		return fmt.Sprintf("activation(%d)", int(a))
	}
}

// ParseActivation maps a tag produced by String back to its Activation.
func ParseActivation(s string) (Activation, error) {
	switch s {
	case "sigmoid":
		return Sigmoid, nil
	case "relu":
		return ReLU, nil
	case "tanh":
		return Tanh, nil
	case "softmax":
		return Softmax, nil
	default:
		return 0, fmt.Errorf("unknown activation %q", s)
	}
}

// Apply evaluates the activation element-wise over z and returns a new
// slice. Softmax is the one non-element-wise variant: it normalizes the
// whole slice, subtracting max(z) before exponentiation so large logits
// cannot overflow.
func (a Activation) Apply(z []float64) []float64 {
	out := make([]float64, len(z))
	switch a {
	case Sigmoid:
		for i, v := range z {
			out[i] = sigmoid(v)
		}
	case ReLU:
		for i, v := range z {
			if v > 0 {
				out[i] = v
			}
		}
	case Tanh:
		for i, v := range z {
			out[i] = math.Tanh(v)
		}
	case Softmax:
		maxZ := math.Inf(-1)
		for _, v := range z {
			if v > maxZ {
				maxZ = v
			}
		}
		var sum float64
		for i, v := range z {
			e := math.Exp(v - maxZ)
			out[i] = e
			sum += e
		}
		for i := range out {
			out[i] /= sum
		}
	}
	return out
}

// Derivative evaluates the activation's derivative element-wise.
//
// pre is the layer's pre-activation z and post the activation a = f(z);
// each variant reads whichever of the two makes its derivative cheapest
// (sigmoid and tanh reuse post, ReLU reads pre).
//
// Softmax has no element-wise derivative. It is only valid at the output
// layer paired with cross-entropy, where the combined gradient collapses
// to ŷ − y and never needs the Jacobian; Config.Validate enforces that
// pairing, so reaching this switch arm is a programming error.
func (a Activation) Derivative(pre, post []float64) []float64 {
	out := make([]float64, len(pre))
	switch a {
	case Sigmoid:
		for i, s := range post {
			out[i] = s * (1 - s)
		}
	case ReLU:
		for i, v := range pre {
			if v > 0 {
				out[i] = 1
			}
		}
	case Tanh:
		for i, th := range post {
			out[i] = 1 - th*th
		}
	case Softmax:
		panic("nn: softmax derivative is only defined through its cross-entropy pairing")
	}
	return out
}

func sigmoid(x float64) float64 {
	switch {
	case x < -sigmoidClamp:
		return 0
	case x > sigmoidClamp:
		return 1
	default:
		return 1 / (1 + math.Exp(-x))
	}
}
