// Copyright 2026 Sable ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for Sable's training loop.
//
// A Trainer drives online stochastic gradient descent over a network:
// each epoch shuffles the examples and updates the weights after every
// example. TrainMiniBatch averages gradients over fixed-size batches
// instead, optionally computing them in parallel.
//
// Example:
//
//	trainer := train.New(net, rng, train.WithProgress(func(epoch int, e train.Epoch) {
//	    fmt.Printf("epoch %d loss %.4f\n", epoch, e.Loss)
//	}))
//	history, err := trainer.Train(ctx, examples, 100)
package train

import (
	"math/rand"

	"github.com/sable-ml/sable/internal/nn"
	"github.com/sable-ml/sable/internal/parallel"
	"github.com/sable-ml/sable/internal/train"
)

// Epoch summarizes one training epoch.
type Epoch = train.Epoch

// History is the per-epoch record of a training run.
type History = train.History

// ProgressFunc observes each completed epoch.
type ProgressFunc = train.ProgressFunc

// Option configures a Trainer.
type Option = train.Option

// Trainer runs gradient-descent training over a network.
type Trainer = train.Trainer

// ParallelConfig tunes the worker pool used by mini-batch gradient
// computation.
type ParallelConfig = parallel.Config

// New builds a trainer around net. The rng drives per-epoch shuffling and
// stays owned by the caller, so a fixed seed makes runs reproducible.
func New(net *nn.Network, rng *rand.Rand, opts ...Option) *Trainer {
	return train.New(net, rng, opts...)
}

// WithProgress registers fn to observe each completed epoch.
func WithProgress(fn ProgressFunc) Option {
	return train.WithProgress(fn)
}

// WithEarlyStopping stops training when the epoch loss has not improved
// by at least minDelta for patience consecutive epochs.
func WithEarlyStopping(patience int, minDelta float64) Option {
	return train.WithEarlyStopping(patience, minDelta)
}

// WithParallel enables parallel gradient computation for TrainMiniBatch.
func WithParallel(cfg ParallelConfig) Option {
	return train.WithParallel(cfg)
}

// DefaultParallelConfig returns the worker-pool defaults.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
