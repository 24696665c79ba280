package train

import (
	"context"
	"fmt"

	"github.com/sable-ml/sable/internal/dataset"
	"github.com/sable-ml/sable/internal/nn"
	"github.com/sable-ml/sable/internal/parallel"
	"github.com/sable-ml/sable/internal/tensor"
)

// TrainMiniBatch runs mini-batch SGD: per batch, every example's gradient
// is computed against the same frozen weights, then one update with the
// batch-averaged gradient is applied.
//
// Because weights are frozen within a batch, the per-example computations
// are independent and fan out across workers per the trainer's parallel
// configuration. Results are identical whether the fan-out runs on one
// goroutine or many.
func (t *Trainer) TrainMiniBatch(ctx context.Context, examples []dataset.Example, epochs, batchSize int) (History, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("train: batch size must be positive, got %d", batchSize)
	}
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

	type result struct {
		grads *nn.Gradients
		loss  float64
		hit   bool // correct classification
		class bool // example carries a class label
		err   error
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
		for start := 0; start < len(order); start += batchSize {
			end := min(start+batchSize, len(order))
			batch := order[start:end]
			results := make([]result, len(batch))

			parallel.For(len(batch), func(i int) {
				ex := examples[batch[i]]
				state, err := t.net.Forward(ex.Input)
				if err != nil {
					results[i].err = err
					return
				}
				l, err := loss.Compute(state.Output(), ex.Target)
				if err != nil {
					results[i].err = err
					return
				}
				grads, err := t.net.Backward(ex.Target, state)
				if err != nil {
					results[i].err = err
					return
				}
				results[i] = result{
					grads: grads,
					loss:  l,
					class: ex.Class >= 0,
					hit:   ex.Class >= 0 && classOf(state.Output()) == ex.Class,
				}
			}, t.par)

			acc, err := t.zeroGradients()
			if err != nil {
				return history, err
			}
			scale := 1 / float64(len(batch))
			for _, r := range results {
				if r.err != nil {
					return history, r.err
				}
				lossSum += r.loss
				if r.class {
					classified++
					if r.hit {
						correct++
					}
				}
				for li := range acc.W {
					if err := tensor.AxpyMatrix(scale, r.grads.W[li], acc.W[li]); err != nil {
						return history, err
					}
					if err := tensor.Axpy(scale, r.grads.B[li], acc.B[li]); err != nil {
						return history, err
					}
				}
			}
			if err := t.net.Update(acc, lr); err != nil {
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

// zeroGradients allocates a zero-valued gradient accumulator matching the
// network's parameter shapes.
func (t *Trainer) zeroGradients() (*nn.Gradients, error) {
	weights := t.net.Weights()
	biases := t.net.Biases()
	acc := &nn.Gradients{
		W: make([]*tensor.Matrix, len(weights)),
		B: make([][]float64, len(biases)),
	}
	for i, w := range weights {
		m, err := tensor.NewMatrix(w.Rows(), w.Cols())
		if err != nil {
			return nil, err
		}
		acc.W[i] = m
		acc.B[i] = make([]float64, len(biases[i]))
	}
	return acc, nil
}
