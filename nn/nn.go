// Copyright 2026 Sable ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for Sable's feedforward networks.
//
// A Network is a fully connected feedforward model built from a Config.
// Forward retains per-layer activations, Backward derives exact gradients
// from them by the chain rule, and Update applies a gradient-descent step.
// The loss function is not chosen directly: it follows from the output
// activation, so softmax always pairs with cross-entropy and sigmoid with
// binary cross-entropy.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	net, _ := nn.New(nn.Config{
//	    Layers:       []int{8, 16, 1},
//	    Hidden:       nn.ReLU,
//	    Output:       nn.Sigmoid,
//	    LearningRate: 0.1,
//	}, rng)
//	out, _ := net.Predict(x)
package nn

import (
	"math/rand"

	"github.com/sable-ml/sable/internal/nn"
	"github.com/sable-ml/sable/internal/tensor"
)

// Activation identifies a layer activation function.
type Activation = nn.Activation

// Activation constants.
const (
	Sigmoid Activation = nn.Sigmoid
	ReLU    Activation = nn.ReLU
	Tanh    Activation = nn.Tanh
	Softmax Activation = nn.Softmax
)

// ParseActivation maps a name like "relu" to its Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Loss identifies the loss function paired with an output activation.
type Loss = nn.Loss

// Loss constants.
const (
	CrossEntropy       Loss = nn.CrossEntropy
	BinaryCrossEntropy Loss = nn.BinaryCrossEntropy
	MSE                Loss = nn.MSE
)

// Config describes a network's topology and hyperparameters.
type Config = nn.Config

// Network is a fully connected feedforward network.
type Network = nn.Network

// ForwardState holds the per-layer pre-activations and activations of one
// forward pass.
type ForwardState = nn.ForwardState

// Gradients holds one example's weight and bias gradients.
type Gradients = nn.Gradients

// ErrNonFinite reports that training produced a NaN or infinite loss.
var ErrNonFinite = nn.ErrNonFinite

// New builds a network from cfg with small random initial weights drawn
// from rng.
func New(cfg Config, rng *rand.Rand) (*Network, error) {
	return nn.New(cfg, rng)
}

// NewFromParams builds a network from explicit weights and biases,
// deep-copying both.
func NewFromParams(cfg Config, weights []*tensor.Matrix, biases [][]float64) (*Network, error) {
	return nn.NewFromParams(cfg, weights, biases)
}
