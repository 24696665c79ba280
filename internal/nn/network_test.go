package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-ml/sable/internal/tensor"
)

func testConfig() Config {
	return Config{
		Layers:       []int{3, 4, 2},
		Hidden:       Tanh,
		Output:       Softmax,
		LearningRate: 0.1,
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"single layer", func(c *Config) { c.Layers = []int{3} }, false},
		{"zero width", func(c *Config) { c.Layers = []int{3, 0, 2} }, false},
		{"negative width", func(c *Config) { c.Layers = []int{3, -4, 2} }, false},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }, false},
		{"negative learning rate", func(c *Config) { c.LearningRate = -0.1 }, false},
		{"softmax hidden", func(c *Config) { c.Hidden = Softmax }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_LossPairing(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, CrossEntropy, cfg.Loss())

	cfg.Output = Sigmoid
	assert.Equal(t, BinaryCrossEntropy, cfg.Loss())

	cfg.Output = Tanh
	assert.Equal(t, MSE, cfg.Loss())
}

func TestNew_Shapes(t *testing.T) {
	net, err := New(testConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	require.Len(t, net.Weights(), 2)
	assert.Equal(t, 3, net.Weights()[0].Rows())
	assert.Equal(t, 4, net.Weights()[0].Cols())
	assert.Equal(t, 4, net.Weights()[1].Rows())
	assert.Equal(t, 2, net.Weights()[1].Cols())
	assert.Len(t, net.Biases()[0], 4)
	assert.Len(t, net.Biases()[1], 2)

	// Biases start at zero, weights small.
	for _, b := range net.Biases()[0] {
		assert.Equal(t, 0.0, b)
	}
	for _, w := range net.Weights()[0].Data() {
		assert.Less(t, w, 0.1)
		assert.Greater(t, w, -0.1)
	}
}

func TestNew_DeterministicUnderSeed(t *testing.T) {
	a, err := New(testConfig(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := New(testConfig(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	for i := range a.Weights() {
		assert.Equal(t, a.Weights()[i].Data(), b.Weights()[i].Data())
	}
}

func TestForward_RetainsAllLayers(t *testing.T) {
	net, _ := New(testConfig(), rand.New(rand.NewSource(1)))

	state, err := net.Forward([]float64{0.1, 0.2, 0.3})
	require.NoError(t, err)

	require.Len(t, state.Pre, 2)
	require.Len(t, state.Act, 2)
	assert.Len(t, state.Pre[0], 4)
	assert.Len(t, state.Act[0], 4)
	assert.Len(t, state.Output(), 2)

	// Softmax output sums to one.
	sum := state.Output()[0] + state.Output()[1]
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestForward_RejectsWrongInputLength(t *testing.T) {
	net, _ := New(testConfig(), rand.New(rand.NewSource(1)))

	_, err := net.Forward([]float64{0.1, 0.2})
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 3, shapeErr.Want)
	assert.Equal(t, 2, shapeErr.Got)
}

func TestBackward_RejectsWrongTargetLength(t *testing.T) {
	net, _ := New(testConfig(), rand.New(rand.NewSource(1)))
	state, err := net.Forward([]float64{0.1, 0.2, 0.3})
	require.NoError(t, err)

	_, err = net.Backward([]float64{1}, state)
	var shapeErr *tensor.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestBackward_DoesNotTouchWeights(t *testing.T) {
	net, _ := New(testConfig(), rand.New(rand.NewSource(1)))
	before := net.Weights()[0].Clone()

	state, err := net.Forward([]float64{0.1, 0.2, 0.3})
	require.NoError(t, err)
	_, err = net.Backward([]float64{1, 0}, state)
	require.NoError(t, err)

	assert.Equal(t, before.Data(), net.Weights()[0].Data())
}

func TestUpdate_AppliesStep(t *testing.T) {
	net, _ := New(testConfig(), rand.New(rand.NewSource(1)))
	state, _ := net.Forward([]float64{0.1, 0.2, 0.3})
	grads, err := net.Backward([]float64{1, 0}, state)
	require.NoError(t, err)

	w00 := net.Weights()[1].At(0, 0)
	require.NoError(t, net.Update(grads, 0.5))
	assert.InDelta(t, w00-0.5*grads.W[1].At(0, 0), net.Weights()[1].At(0, 0), 1e-15)
}

func TestNewFromParams_RejectsMismatchedShapes(t *testing.T) {
	cfg := testConfig()
	good, _ := New(cfg, rand.New(rand.NewSource(1)))

	bad, _ := tensor.NewMatrix(3, 5) // wrong cols for layer 0
	_, err := NewFromParams(cfg, []*tensor.Matrix{bad, good.Weights()[1]}, good.Biases())
	var shapeErr *tensor.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestNewFromParams_DeepCopies(t *testing.T) {
	cfg := testConfig()
	src, _ := New(cfg, rand.New(rand.NewSource(1)))

	clone, err := NewFromParams(cfg, src.Weights(), src.Biases())
	require.NoError(t, err)

	src.Weights()[0].Set(0, 0, 123)
	assert.NotEqual(t, 123.0, clone.Weights()[0].At(0, 0))
}

func TestPredictClass(t *testing.T) {
	cfg := Config{Layers: []int{2, 3, 1}, Hidden: ReLU, Output: Sigmoid, LearningRate: 0.1}
	net, _ := New(cfg, rand.New(rand.NewSource(1)))

	// Force a confidently positive output through the bias.
	net.Biases()[1][0] = 10
	class, err := net.PredictClass([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, class)

	net.Biases()[1][0] = -10
	class, err = net.PredictClass([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, class)
}
