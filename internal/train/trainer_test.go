package train

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-ml/sable/internal/dataset"
	"github.com/sable-ml/sable/internal/nn"
	"github.com/sable-ml/sable/internal/parallel"
	"github.com/sable-ml/sable/internal/tensor"
)

func binaryNet(t *testing.T, seed int64, layers ...int) *nn.Network {
	t.Helper()
	cfg := nn.Config{
		Layers:       layers,
		Hidden:       nn.ReLU,
		Output:       nn.Sigmoid,
		LearningRate: 0.1,
	}
	net, err := nn.New(cfg, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return net
}

func TestTrain_RejectsMalformedExamplesBeforeTraining(t *testing.T) {
	net := binaryNet(t, 1, 8, 4, 1)
	before := net.Weights()[0].Clone()

	examples := []dataset.Example{
		dataset.FromClass([]float64{1, 0, 1}, 1, 1), // wrong input width
	}
	trainer := New(net, rand.New(rand.NewSource(1)))
	_, err := trainer.Train(context.Background(), examples, 3)

	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, before.Data(), net.Weights()[0].Data(), "weights must be untouched")
}

func TestTrain_RejectsWrongTargetWidth(t *testing.T) {
	net := binaryNet(t, 1, 2, 3, 1)
	examples := []dataset.Example{
		{Input: []float64{1, 0}, Target: []float64{1, 0}, Class: -1},
	}
	trainer := New(net, rand.New(rand.NewSource(1)))
	_, err := trainer.Train(context.Background(), examples, 1)

	var shapeErr *tensor.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestTrain_HistoryGrowsOnePerEpoch(t *testing.T) {
	net := binaryNet(t, 1, 8, 4, 1)
	rng := rand.New(rand.NewSource(2))
	examples := dataset.EvenOdd(50, rng)

	trainer := New(net, rng)
	history, err := trainer.Train(context.Background(), examples, 7)
	require.NoError(t, err)
	assert.Len(t, history, 7)
}

func TestTrain_LossImproves(t *testing.T) {
	net := binaryNet(t, 3, 8, 16, 1)
	rng := rand.New(rand.NewSource(4))
	examples := dataset.EvenOdd(300, rng)

	trainer := New(net, rng)
	before, err := trainer.Evaluate(examples)
	require.NoError(t, err)

	history, err := trainer.Train(context.Background(), examples, 30)
	require.NoError(t, err)

	after, err := trainer.Evaluate(examples)
	require.NoError(t, err)

	assert.Less(t, history[len(history)-1].Loss, history[0].Loss)
	assert.Less(t, after.Loss, before.Loss)
}

func TestTrain_DeterministicUnderFixedSeeds(t *testing.T) {
	run := func() *nn.Network {
		net := binaryNet(t, 42, 8, 16, 1)
		rng := rand.New(rand.NewSource(43))
		examples := dataset.EvenOdd(100, rand.New(rand.NewSource(44)))

		trainer := New(net, rng)
		_, err := trainer.Train(context.Background(), examples, 10)
		require.NoError(t, err)
		return net
	}

	a, b := run(), run()
	for i := range a.Weights() {
		assert.Equal(t, a.Weights()[i].Data(), b.Weights()[i].Data(), "layer %d weights", i)
		assert.Equal(t, a.Biases()[i], b.Biases()[i], "layer %d biases", i)
	}
}

func TestTrain_ContextCancellation(t *testing.T) {
	net := binaryNet(t, 1, 8, 4, 1)
	rng := rand.New(rand.NewSource(5))
	examples := dataset.EvenOdd(50, rng)

	ctx, cancel := context.WithCancel(context.Background())
	trainer := New(net, rng, WithProgress(func(epoch int, _ Epoch) {
		if epoch == 2 {
			cancel()
		}
	}))

	history, err := trainer.Train(ctx, examples, 100)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, history, 3, "three epochs complete before the cancel is observed")
}

func TestTrain_EarlyStoppingIsOptIn(t *testing.T) {
	net := binaryNet(t, 1, 8, 4, 1)
	rng := rand.New(rand.NewSource(6))
	examples := dataset.EvenOdd(50, rng)

	// An absurd minDelta means no epoch ever counts as an improvement
	// after the first, so training stops after patience stale epochs.
	trainer := New(net, rng, WithEarlyStopping(2, 1000))
	history, err := trainer.Train(context.Background(), examples, 50)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestTrain_ProgressCallbackSeesEveryEpoch(t *testing.T) {
	net := binaryNet(t, 1, 8, 4, 1)
	rng := rand.New(rand.NewSource(7))
	examples := dataset.EvenOdd(20, rng)

	var seen []int
	trainer := New(net, rng, WithProgress(func(epoch int, _ Epoch) {
		seen = append(seen, epoch)
	}))
	_, err := trainer.Train(context.Background(), examples, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}

func TestTrainMiniBatch_MatchesSequentialFanOut(t *testing.T) {
	run := func(par parallel.Config) *nn.Network {
		net := binaryNet(t, 21, 8, 16, 1)
		rng := rand.New(rand.NewSource(22))
		examples := dataset.EvenOdd(64, rand.New(rand.NewSource(23)))

		trainer := New(net, rng, WithParallel(par))
		_, err := trainer.TrainMiniBatch(context.Background(), examples, 5, 16)
		require.NoError(t, err)
		return net
	}

	sequential := run(parallel.Config{Enabled: false})
	concurrent := run(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})

	for i := range sequential.Weights() {
		assert.Equal(t, sequential.Weights()[i].Data(), concurrent.Weights()[i].Data(),
			"fan-out must not change the result, layer %d", i)
	}
}

func TestTrainMiniBatch_RejectsBadBatchSize(t *testing.T) {
	net := binaryNet(t, 1, 8, 4, 1)
	trainer := New(net, rand.New(rand.NewSource(1)))

	_, err := trainer.TrainMiniBatch(context.Background(), nil, 1, 0)
	assert.Error(t, err)
}

func TestTrainMiniBatch_Learns(t *testing.T) {
	net := binaryNet(t, 31, 8, 16, 1)
	rng := rand.New(rand.NewSource(32))
	examples := dataset.EvenOdd(256, rng)

	trainer := New(net, rng)
	history, err := trainer.TrainMiniBatch(context.Background(), examples, 60, 8)
	require.NoError(t, err)

	assert.Less(t, history[len(history)-1].Loss, history[0].Loss)
	assert.Greater(t, history[len(history)-1].Accuracy, 0.9)
}
