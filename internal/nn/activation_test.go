package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivation_StringRoundTrip(t *testing.T) {
	for _, a := range []Activation{Sigmoid, ReLU, Tanh, Softmax} {
		parsed, err := ParseActivation(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}

	_, err := ParseActivation("swish")
	assert.Error(t, err)
}

func TestSigmoid_Values(t *testing.T) {
	out := Sigmoid.Apply([]float64{0})
	assert.InDelta(t, 0.5, out[0], 1e-12)

	out = Sigmoid.Apply([]float64{2})
	assert.InDelta(t, 1/(1+math.Exp(-2)), out[0], 1e-12)
}

// Extreme inputs must clamp to exactly 0 or 1 instead of overflowing.
func TestSigmoid_ClampsExtremes(t *testing.T) {
	out := Sigmoid.Apply([]float64{-1e6, 1e6, -501, 501})

	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 1.0, out[1])
	assert.Equal(t, 0.0, out[2])
	assert.Equal(t, 1.0, out[3])
	for _, v := range out {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestReLU(t *testing.T) {
	out := ReLU.Apply([]float64{-2, 0, 3})
	assert.Equal(t, []float64{0, 0, 3}, out)

	d := ReLU.Derivative([]float64{-2, 0, 3}, out)
	assert.Equal(t, []float64{0, 0, 1}, d)
}

func TestTanh(t *testing.T) {
	out := Tanh.Apply([]float64{0.5})
	assert.InDelta(t, math.Tanh(0.5), out[0], 1e-12)

	d := Tanh.Derivative([]float64{0.5}, out)
	assert.InDelta(t, 1-out[0]*out[0], d[0], 1e-12)
}

func TestSoftmax_SumsToOne(t *testing.T) {
	out := Softmax.Apply([]float64{1, 2, 3})
	var sum float64
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Greater(t, out[2], out[1])
	assert.Greater(t, out[1], out[0])
}

// The max-subtraction must keep huge logits finite.
func TestSoftmax_StableForLargeLogits(t *testing.T) {
	out := Softmax.Apply([]float64{1000, 1001, 1002})

	var sum float64
	for _, v := range out {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "softmax produced non-finite value")
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	// Shifting all logits by a constant must not change the result.
	ref := Softmax.Apply([]float64{0, 1, 2})
	for i := range ref {
		assert.InDelta(t, ref[i], out[i], 1e-12)
	}
}

func TestSigmoidDerivative_MatchesFiniteDifference(t *testing.T) {
	const eps = 1e-6
	for _, x := range []float64{-3, -0.5, 0, 0.7, 4} {
		post := Sigmoid.Apply([]float64{x})
		d := Sigmoid.Derivative([]float64{x}, post)

		hi := Sigmoid.Apply([]float64{x + eps})
		lo := Sigmoid.Apply([]float64{x - eps})
		numeric := (hi[0] - lo[0]) / (2 * eps)

		assert.InDelta(t, numeric, d[0], 1e-6, "x=%g", x)
	}
}

func TestSoftmaxDerivative_Panics(t *testing.T) {
	assert.Panics(t, func() {
		Softmax.Derivative([]float64{1, 2}, []float64{0.3, 0.7})
	})
}

func TestBinaryCrossEntropy(t *testing.T) {
	// Confident correct prediction: small loss.
	loss, err := BinaryCrossEntropy.Compute([]float64{0.99}, []float64{1})
	require.NoError(t, err)
	assert.Less(t, loss, 0.02)

	// Confident wrong prediction: large loss.
	loss, err = BinaryCrossEntropy.Compute([]float64{0.01}, []float64{1})
	require.NoError(t, err)
	assert.Greater(t, loss, 4.0)

	// Mislabeled zero target is penalized through the (1−y) term.
	loss, err = BinaryCrossEntropy.Compute([]float64{0.99}, []float64{0})
	require.NoError(t, err)
	assert.Greater(t, loss, 4.0)
}

func TestCrossEntropy_Categorical(t *testing.T) {
	loss, err := CrossEntropy.Compute([]float64{0.1, 0.8, 0.1}, []float64{0, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(0.8+lossEpsilon), loss, 1e-9)
}

// A zero predicted probability must yield a large finite loss, not -Inf.
func TestCrossEntropy_GuardsLogZero(t *testing.T) {
	loss, err := CrossEntropy.Compute([]float64{0, 1, 0}, []float64{1, 0, 0})
	require.NoError(t, err)
	assert.False(t, math.IsInf(loss, 0))
	assert.Greater(t, loss, 20.0)
}

func TestMSE(t *testing.T) {
	loss, err := MSE.Compute([]float64{1, 2}, []float64{3, 2})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, loss, 1e-12) // ((3-1)² + 0) / 2

	loss, err = MSE.Compute([]float64{5}, []float64{5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, loss)
}

func TestLoss_RejectsLengthMismatch(t *testing.T) {
	for _, l := range []Loss{CrossEntropy, BinaryCrossEntropy, MSE} {
		_, err := l.Compute([]float64{0.5, 0.5}, []float64{1})
		assert.Error(t, err, "loss %v", l)
	}
}
