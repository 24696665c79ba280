// Package nn implements the Sable feedforward network: a closed set of
// activations and losses, explicit forward propagation, and manual
// backpropagation via the chain rule.
//
// The network owns one weight matrix and one bias vector per layer and is
// exclusively owned by whichever trainer or inference caller holds it; no
// locking, no sharing across goroutines. Gradient computation (Backward)
// and gradient application (Update) are deliberately separate steps so each
// can be tested on its own.
package nn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sable-ml/sable/internal/tensor"
)

// ErrNonFinite reports that an activation or loss evaluation produced NaN
// or Inf even after the built-in clamping. In practice this indicates a
// configuration problem such as an absurd learning rate.
var ErrNonFinite = errors.New("nn: non-finite value in computation")

// weightScale is the magnitude of freshly initialized weights.
const weightScale = 0.01

// Config describes a network topology. It is immutable after construction.
type Config struct {
	// Layers holds the layer widths [n0 .. nL]: n0 is the input
	// dimensionality, nL the output dimensionality.
	Layers []int

	// Hidden is the activation applied to every hidden layer.
	Hidden Activation

	// Output is the activation applied to the output layer.
	Output Activation

	// LearningRate is the step size for gradient-descent updates.
	LearningRate float64
}

// Validate checks the configuration.
//
// Beyond positive layer sizes and learning rate, it pins down the output
// pairings whose combined loss gradient is known to collapse to ŷ − y:
// softmax and sigmoid outputs train against cross-entropy, relu and tanh
// outputs against MSE. Softmax is rejected as a hidden activation because
// its derivative is only available through that pairing.
func (c Config) Validate() error {
	if len(c.Layers) < 2 {
		return fmt.Errorf("nn: config needs at least input and output layers, got %d", len(c.Layers))
	}
	for i, n := range c.Layers {
		if n <= 0 {
			return &tensor.ShapeError{Op: fmt.Sprintf("layer %d size", i), Want: 1, Got: n}
		}
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("nn: learning rate must be positive, got %g", c.LearningRate)
	}
	if c.Hidden == Softmax {
		return errors.New("nn: softmax is not usable as a hidden activation")
	}
	return nil
}

// Loss returns the loss function paired with the configured output
// activation.
func (c Config) Loss() Loss {
	switch c.Output {
	case Softmax:
		return CrossEntropy
	case Sigmoid:
		return BinaryCrossEntropy
	default:
		return MSE
	}
}

// InputSize returns n0.
func (c Config) InputSize() int { return c.Layers[0] }

// OutputSize returns nL.
func (c Config) OutputSize() int { return c.Layers[len(c.Layers)-1] }

// clone deep-copies the layer slice so the network's config cannot be
// mutated through the caller's slice.
func (c Config) clone() Config {
	c.Layers = append([]int(nil), c.Layers...)
	return c
}

// Network is an L-layer dense network.
//
// weights[i] has shape (Layers[i], Layers[i+1]) and biases[i] length
// Layers[i+1]. The trainer is the only component that writes to them after
// initialization.
type Network struct {
	cfg     Config
	weights []*tensor.Matrix
	biases  [][]float64
}

// New constructs a network with small-magnitude random weights drawn from
// rng. The generator is supplied by the caller so two runs seeded alike
// initialize identically.
func New(cfg Config, rng *rand.Rand) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := &Network{cfg: cfg.clone()}
	for i := 0; i < len(cfg.Layers)-1; i++ {
		w, err := tensor.NewMatrix(cfg.Layers[i], cfg.Layers[i+1])
		if err != nil {
			return nil, err
		}
		data := w.Data()
		for j := range data {
			data[j] = rng.NormFloat64() * weightScale
		}
		n.weights = append(n.weights, w)
		n.biases = append(n.biases, make([]float64, cfg.Layers[i+1]))
	}
	return n, nil
}

// NewFromParams reconstructs a network from existing weights and biases,
// deep-copying both. The persistence codec uses this to rebuild a network
// from a snapshot; every matrix and vector must match the topology exactly.
func NewFromParams(cfg Config, weights []*tensor.Matrix, biases [][]float64) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layerCount := len(cfg.Layers) - 1
	if len(weights) != layerCount {
		return nil, &tensor.ShapeError{Op: "weight matrices", Want: layerCount, Got: len(weights)}
	}
	if len(biases) != layerCount {
		return nil, &tensor.ShapeError{Op: "bias vectors", Want: layerCount, Got: len(biases)}
	}
	n := &Network{cfg: cfg.clone()}
	for i := 0; i < layerCount; i++ {
		if weights[i].Rows() != cfg.Layers[i] {
			return nil, &tensor.ShapeError{Op: fmt.Sprintf("weight %d rows", i), Want: cfg.Layers[i], Got: weights[i].Rows()}
		}
		if weights[i].Cols() != cfg.Layers[i+1] {
			return nil, &tensor.ShapeError{Op: fmt.Sprintf("weight %d cols", i), Want: cfg.Layers[i+1], Got: weights[i].Cols()}
		}
		if len(biases[i]) != cfg.Layers[i+1] {
			return nil, &tensor.ShapeError{Op: fmt.Sprintf("bias %d", i), Want: cfg.Layers[i+1], Got: len(biases[i])}
		}
		n.weights = append(n.weights, weights[i].Clone())
		n.biases = append(n.biases, append([]float64(nil), biases[i]...))
	}
	return n, nil
}

// Config returns the network's immutable configuration.
func (n *Network) Config() Config { return n.cfg.clone() }

// Weights returns the live weight matrices. The slice and matrices alias
// the network's state; only the trainer may write through them.
func (n *Network) Weights() []*tensor.Matrix { return n.weights }

// Biases returns the live bias vectors, aliasing the network's state.
func (n *Network) Biases() [][]float64 { return n.biases }

// ForwardState holds everything one forward pass produced: the input and,
// per layer, the pre-activation z and activation a. The backward pass needs
// all of it; a fresh state is built on every call and never reused across
// examples.
type ForwardState struct {
	Input []float64
	Pre   [][]float64 // Pre[i] = z_{i+1}
	Act   [][]float64 // Act[i] = a_{i+1}
}

// Output returns the final layer's activation.
func (s *ForwardState) Output() []float64 {
	return s.Act[len(s.Act)-1]
}

// Forward runs one forward pass: for each layer, z = a_prev·W + b followed
// by the layer's activation.
func (n *Network) Forward(x []float64) (*ForwardState, error) {
	if len(x) != n.cfg.InputSize() {
		return nil, &tensor.ShapeError{Op: "forward input", Want: n.cfg.InputSize(), Got: len(x)}
	}
	state := &ForwardState{
		Input: x,
		Pre:   make([][]float64, len(n.weights)),
		Act:   make([][]float64, len(n.weights)),
	}
	a := x
	last := len(n.weights) - 1
	for i, w := range n.weights {
		z, err := tensor.MatVec(a, w)
		if err != nil {
			return nil, err
		}
		if err := tensor.Axpy(1, n.biases[i], z); err != nil {
			return nil, err
		}
		act := n.cfg.Hidden
		if i == last {
			act = n.cfg.Output
		}
		a = act.Apply(z)
		state.Pre[i] = z
		state.Act[i] = a
	}
	return state, nil
}

// Gradients holds the loss gradient with respect to every weight matrix and
// bias vector, in layer order.
type Gradients struct {
	W []*tensor.Matrix
	B [][]float64
}

// Backward computes gradients for one example by the chain rule.
//
// The output-layer error is ŷ − y for the cross-entropy pairings (the
// softmax/sigmoid Jacobian cancels algebraically) and the element-wise MSE
// derivative otherwise. Hidden errors propagate as δ_i = (δ_{i+1}·Wᵀ) ⊙
// f'(z_i). Gradients are returned, never applied; Update is the separate
// application step.
func (n *Network) Backward(target []float64, state *ForwardState) (*Gradients, error) {
	out := state.Output()
	if len(target) != len(out) {
		return nil, &tensor.ShapeError{Op: "backward target", Want: len(out), Got: len(target)}
	}

	var delta []float64
	switch n.cfg.Loss() {
	case CrossEntropy, BinaryCrossEntropy:
		var err error
		delta, err = tensor.Sub(out, target)
		if err != nil {
			return nil, err
		}
	default:
		diff, err := tensor.Sub(out, target)
		if err != nil {
			return nil, err
		}
		tensor.Scale(2/float64(len(out)), diff)
		last := len(state.Pre) - 1
		delta, err = tensor.Hadamard(diff, n.cfg.Output.Derivative(state.Pre[last], state.Act[last]))
		if err != nil {
			return nil, err
		}
	}

	grads := &Gradients{
		W: make([]*tensor.Matrix, len(n.weights)),
		B: make([][]float64, len(n.weights)),
	}
	for i := len(n.weights) - 1; i >= 0; i-- {
		aPrev := state.Input
		if i > 0 {
			aPrev = state.Act[i-1]
		}
		gw, err := tensor.Outer(aPrev, delta)
		if err != nil {
			return nil, err
		}
		grads.W[i] = gw
		grads.B[i] = delta

		if i == 0 {
			break
		}
		back, err := tensor.MatVecT(delta, n.weights[i])
		if err != nil {
			return nil, err
		}
		delta, err = tensor.Hadamard(back, n.cfg.Hidden.Derivative(state.Pre[i-1], state.Act[i-1]))
		if err != nil {
			return nil, err
		}
	}
	return grads, nil
}

// Update applies one gradient-descent step: W -= lr·gW, b -= lr·gB.
// Gradients produced by Backward always match the network's shapes.
func (n *Network) Update(g *Gradients, lr float64) error {
	if len(g.W) != len(n.weights) || len(g.B) != len(n.biases) {
		return &tensor.ShapeError{Op: "update layers", Want: len(n.weights), Got: len(g.W)}
	}
	for i := range n.weights {
		if err := tensor.AxpyMatrix(-lr, g.W[i], n.weights[i]); err != nil {
			return err
		}
		if err := tensor.Axpy(-lr, g.B[i], n.biases[i]); err != nil {
			return err
		}
	}
	return nil
}

// Predict runs a forward pass and returns only the output activation.
func (n *Network) Predict(x []float64) ([]float64, error) {
	state, err := n.Forward(x)
	if err != nil {
		return nil, err
	}
	return state.Output(), nil
}

// PredictClass returns the predicted class index: argmax for multi-unit
// outputs, a 0.5 threshold for a single sigmoid unit.
func (n *Network) PredictClass(x []float64) (int, error) {
	out, err := n.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(out) == 1 {
		if out[0] > 0.5 {
			return 1, nil
		}
		return 0, nil
	}
	return argmax(out), nil
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
