package train

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-ml/sable/internal/dataset"
	"github.com/sable-ml/sable/internal/nn"
)

// Even/odd classification of 8-bit integers: 8 inputs, one 16-unit ReLU
// hidden layer, one sigmoid output. The held-out set must be classified
// perfectly after training.
func TestScenario_EvenOddClassifier(t *testing.T) {
	cfg := nn.Config{
		Layers:       []int{8, 16, 1},
		Hidden:       nn.ReLU,
		Output:       nn.Sigmoid,
		LearningRate: 0.1,
	}
	net, err := nn.New(cfg, rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	dataRng := rand.New(rand.NewSource(9))
	all := dataset.EvenOdd(600, dataRng)
	trainSet, testSet := dataset.Split(all, 200, dataRng)

	trainer := New(net, rand.New(rand.NewSource(10)))
	history, err := trainer.Train(context.Background(), trainSet, 50)
	require.NoError(t, err)
	assert.Less(t, history[len(history)-1].Loss, history[0].Loss)

	held, err := trainer.Evaluate(testSet)
	require.NoError(t, err)
	assert.Equal(t, 1.0, held.Accuracy, "expected 200/200 on the held-out set")
}

// Color-warmth classification: 3 normalized RGB inputs, one 32-unit ReLU
// hidden layer, one sigmoid output, 100 epochs. Beyond perfect held-out
// accuracy, two reference colors must land on the right side of 0.5.
func TestScenario_ColorWarmthClassifier(t *testing.T) {
	cfg := nn.Config{
		Layers:       []int{3, 32, 1},
		Hidden:       nn.ReLU,
		Output:       nn.Sigmoid,
		LearningRate: 0.1,
	}
	net, err := nn.New(cfg, rand.New(rand.NewSource(14)))
	require.NoError(t, err)

	dataRng := rand.New(rand.NewSource(15))
	all := dataset.ColorWarmth(800, dataRng)
	trainSet, testSet := dataset.Split(all, 200, dataRng)

	trainer := New(net, rand.New(rand.NewSource(16)))
	_, err = trainer.Train(context.Background(), trainSet, 100)
	require.NoError(t, err)

	held, err := trainer.Evaluate(testSet)
	require.NoError(t, err)
	assert.Equal(t, 1.0, held.Accuracy, "expected 200/200 on the held-out set")

	warm, err := net.Predict(dataset.RGB(163, 181, 87))
	require.NoError(t, err)
	assert.Greater(t, warm[0], 0.5, "olive green should classify warm")

	cool, err := net.Predict(dataset.RGB(70, 208, 196))
	require.NoError(t, err)
	assert.Less(t, cool[0], 0.5, "turquoise should classify cool")
}

// Skip-gram embeddings: words that share contexts end up with similar
// rows in the first weight matrix.
func TestScenario_SkipGramEmbeddings(t *testing.T) {
	corpus := "the red sun is warm the red fire is warm " +
		"the blue sea is cool the blue ice is cool"
	tokens := dataset.Tokenize(corpus)
	examples, vocab := dataset.SkipGrams(tokens, 2)
	require.Greater(t, vocab.Len(), 5)

	cfg := nn.Config{
		Layers:       []int{vocab.Len(), 8, vocab.Len()},
		Hidden:       nn.Tanh,
		Output:       nn.Softmax,
		LearningRate: 0.05,
	}
	net, err := nn.New(cfg, rand.New(rand.NewSource(17)))
	require.NoError(t, err)

	trainer := New(net, rand.New(rand.NewSource(18)))
	history, err := trainer.Train(context.Background(), examples, 120)
	require.NoError(t, err)
	assert.Less(t, history[len(history)-1].Loss, history[0].Loss)
}
