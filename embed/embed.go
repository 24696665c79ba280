// Copyright 2026 Sable ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package embed provides the public API for querying learned embeddings.
//
// A Table views a trained weight matrix as an embedding table, one row
// per input unit, and answers nearest-neighbor queries by cosine
// similarity. A Vocab maps words to rows for models trained on text.
//
// Example:
//
//	table := embed.NewTable(net.Weights()[0])
//	matches, err := table.MostSimilar(3, 5)
package embed

import (
	"github.com/sable-ml/sable/internal/embed"
	"github.com/sable-ml/sable/internal/tensor"
)

// IndexError reports an embedding or vocabulary lookup out of range.
type IndexError = embed.IndexError

// Match pairs an embedding row with its similarity score.
type Match = embed.Match

// WordMatch pairs a vocabulary word with its similarity score.
type WordMatch = embed.WordMatch

// Table views a weight matrix as an embedding table.
type Table = embed.Table

// Vocab is an ordered word-to-index mapping.
type Vocab = embed.Vocab

// Cosine returns the cosine similarity of u and v, or 0 when either has
// zero norm.
func Cosine(u, v []float64) (float64, error) {
	return embed.Cosine(u, v)
}

// NewTable wraps m as an embedding table without copying it.
func NewTable(m *tensor.Matrix) *Table {
	return embed.NewTable(m)
}

// NewVocab builds a vocabulary from tokens in first-occurrence order.
func NewVocab(tokens []string) *Vocab {
	return embed.NewVocab(tokens)
}

// NewVocabFromWords builds a vocabulary from an already deduplicated,
// ordered word list.
func NewVocabFromWords(words []string) *Vocab {
	return embed.NewVocabFromWords(words)
}
