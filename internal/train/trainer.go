// Package train drives gradient-descent training of a Sable network.
//
// The default algorithm is single-example online SGD: every epoch reshuffles
// the examples, and each example's forward, backward, and weight update
// complete before the next example is touched. Weight mutation between
// examples is part of the algorithm's semantics, so the loop is strictly
// sequential and the trainer is the sole owner of the network for the run.
//
// TrainMiniBatch is the one sanctioned deviation: an explicit opt-in
// mini-batch mode that computes a batch's per-example gradients (in
// parallel when configured) against frozen weights and applies a single
// averaged update. It is a different algorithm, not a faster rendering of
// the online loop.
package train

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/sable-ml/sable/internal/dataset"
	"github.com/sable-ml/sable/internal/nn"
	"github.com/sable-ml/sable/internal/parallel"
	"github.com/sable-ml/sable/internal/tensor"
)

// Epoch holds the averaged metrics of one completed epoch.
type Epoch struct {
	Loss     float64
	Accuracy float64
}

// History is the append-only per-epoch metric sequence of a training run.
type History []Epoch

// ProgressFunc observes each completed epoch. It runs between epochs, never
// inside the example loop.
type ProgressFunc func(epoch int, stats Epoch)

// Option configures a Trainer.
type Option func(*Trainer)

// WithProgress registers a per-epoch callback.
func WithProgress(fn ProgressFunc) Option {
	return func(t *Trainer) { t.progress = fn }
}

// WithEarlyStopping stops training once the epoch loss has not improved by
// at least minDelta for patience consecutive epochs. Off unless requested.
func WithEarlyStopping(patience int, minDelta float64) Option {
	return func(t *Trainer) {
		t.early = &earlyStopping{patience: patience, minDelta: minDelta, best: math.Inf(1)}
	}
}

// WithParallel sets the fan-out configuration used by TrainMiniBatch.
func WithParallel(cfg parallel.Config) Option {
	return func(t *Trainer) { t.par = cfg }
}

type earlyStopping struct {
	patience int
	minDelta float64
	best     float64
	stale    int
}

// step reports whether training should stop after observing loss.
func (e *earlyStopping) step(loss float64) bool {
	if e.best-loss > e.minDelta {
		e.best = loss
		e.stale = 0
		return false
	}
	e.stale++
	return e.stale >= e.patience
}

// Trainer owns a network for the duration of a training run.
type Trainer struct {
	net      *nn.Network
	rng      *rand.Rand
	progress ProgressFunc
	early    *earlyStopping
	par      parallel.Config
}

// New creates a trainer around net. The random generator drives example
// shuffling; seeding it fixes the presentation order for reproducible runs.
func New(net *nn.Network, rng *rand.Rand, opts ...Option) *Trainer {
	t := &Trainer{net: net, rng: rng, par: parallel.DefaultConfig()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// checkExamples validates every example's shape before the first weight is
// touched, so a malformed dataset can never leave the network half-updated.
func (t *Trainer) checkExamples(examples []dataset.Example) error {
	cfg := t.net.Config()
	for i, ex := range examples {
		if len(ex.Input) != cfg.InputSize() {
			return &tensor.ShapeError{Op: fmt.Sprintf("example %d input", i), Want: cfg.InputSize(), Got: len(ex.Input)}
		}
		if len(ex.Target) != cfg.OutputSize() {
			return &tensor.ShapeError{Op: fmt.Sprintf("example %d target", i), Want: cfg.OutputSize(), Got: len(ex.Target)}
		}
	}
	return nil
}

// Train runs online SGD for up to epochs epochs and returns the per-epoch
// history.
//
// Cancellation is honored between epochs: a canceled context returns the
// history accumulated so far together with ctx.Err(). A non-finite epoch
// loss aborts with an error wrapping nn.ErrNonFinite.
func (t *Trainer) Train(ctx context.Context, examples []dataset.Example, epochs int) (History, error) {
	if err := t.checkExamples(examples); err != nil {
		return nil, err
	}
	loss := t.net.Config().Loss()
	lr := t.net.Config().LearningRate

	history := make(History, 0, epochs)
	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		t.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		var lossSum float64
		var correct, classified int
		for _, idx := range order {
			ex := examples[idx]

			state, err := t.net.Forward(ex.Input)
			if err != nil {
				return history, err
			}
			l, err := loss.Compute(state.Output(), ex.Target)
			if err != nil {
				return history, err
			}
			lossSum += l
			if ex.Class >= 0 {
				classified++
				if classOf(state.Output()) == ex.Class {
					correct++
				}
			}

			grads, err := t.net.Backward(ex.Target, state)
			if err != nil {
				return history, err
			}
			if err := t.net.Update(grads, lr); err != nil {
				return history, err
			}
		}

		stats, err := epochStats(lossSum, len(examples), correct, classified)
		if err != nil {
			return history, err
		}
		history = append(history, stats)
		if t.progress != nil {
			t.progress(epoch, stats)
		}
		if t.early != nil && t.early.step(stats.Loss) {
			break
		}
	}
	return history, nil
}

// Evaluate computes the average loss and accuracy of net over examples
// without updating any weights.
func (t *Trainer) Evaluate(examples []dataset.Example) (Epoch, error) {
	if err := t.checkExamples(examples); err != nil {
		return Epoch{}, err
	}
	loss := t.net.Config().Loss()

	var lossSum float64
	var correct, classified int
	for _, ex := range examples {
		out, err := t.net.Predict(ex.Input)
		if err != nil {
			return Epoch{}, err
		}
		l, err := loss.Compute(out, ex.Target)
		if err != nil {
			return Epoch{}, err
		}
		lossSum += l
		if ex.Class >= 0 {
			classified++
			if classOf(out) == ex.Class {
				correct++
			}
		}
	}
	return epochStats(lossSum, len(examples), correct, classified)
}

func epochStats(lossSum float64, n, correct, classified int) (Epoch, error) {
	avg := lossSum / float64(n)
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return Epoch{}, fmt.Errorf("epoch loss %v: %w", avg, nn.ErrNonFinite)
	}
	stats := Epoch{Loss: avg}
	if classified > 0 {
		stats.Accuracy = float64(correct) / float64(classified)
	}
	return stats, nil
}

// classOf mirrors Network.PredictClass on an already-computed output.
func classOf(out []float64) int {
	if len(out) == 1 {
		if out[0] > 0.5 {
			return 1
		}
		return 0
	}
	best := 0
	for i := 1; i < len(out); i++ {
		if out[i] > out[best] {
			best = i
		}
	}
	return best
}
