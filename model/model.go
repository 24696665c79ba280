// Copyright 2026 Sable ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides the public API for saving and loading trained
// networks.
//
// Save produces a self-describing Snapshot; Write and Read move snapshots
// through JSON. A loaded snapshot rebuilds a network that predicts exactly
// like the one that was saved.
//
// Example:
//
//	snapshot := model.Save(net, history, nil)
//	if err := model.WriteFile("model.json", snapshot); err != nil {
//	    return err
//	}
package model

import (
	"io"

	"github.com/sable-ml/sable/internal/embed"
	"github.com/sable-ml/sable/internal/model"
	"github.com/sable-ml/sable/internal/nn"
	"github.com/sable-ml/sable/internal/train"
)

// Format constants.
const (
	ModelType     = model.ModelType
	FormatVersion = model.FormatVersion
)

// Snapshot is the persisted form of a trained network.
type Snapshot = model.Snapshot

// EpochRecord is one persisted training-history entry.
type EpochRecord = model.EpochRecord

// FormatError reports a structurally invalid snapshot field.
type FormatError = model.FormatError

// Sentinel errors for snapshot validation.
var (
	ErrInvalidFormat      = model.ErrInvalidFormat
	ErrUnsupportedVersion = model.ErrUnsupportedVersion
)

// Save snapshots net together with its training history and, for
// embedding models, the vocabulary. Pass a nil vocab for plain
// classifiers.
func Save(net *nn.Network, history train.History, vocab *embed.Vocab) *Snapshot {
	return model.Save(net, history, vocab)
}

// Write encodes s as indented JSON.
func Write(w io.Writer, s *Snapshot) error {
	return model.Write(w, s)
}

// Read decodes and validates a snapshot. Unknown fields and foreign model
// types are rejected.
func Read(r io.Reader) (*Snapshot, error) {
	return model.Read(r)
}

// WriteFile writes a snapshot to path.
func WriteFile(path string, s *Snapshot) error {
	return model.WriteFile(path, s)
}

// ReadFile reads and validates a snapshot from path.
func ReadFile(path string) (*Snapshot, error) {
	return model.ReadFile(path)
}
