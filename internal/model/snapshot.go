// Package model is Sable's persistence codec. It snapshots a trained
// network into a self-describing, JSON-compatible structure and
// reconstructs an equivalent network from one.
//
// A snapshot is created only by an explicit Save and consumed only by an
// explicit load; it never aliases live network state. The format carries
// its own model type tag and version so foreign or malformed input fails
// fast instead of producing garbage predictions.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/sable-ml/sable/internal/embed"
	"github.com/sable-ml/sable/internal/nn"
	"github.com/sable-ml/sable/internal/tensor"
	"github.com/sable-ml/sable/internal/train"
)

// Format constants.
const (
	ModelType     = "sable.feedforward"
	FormatVersion = 1
)

// EpochRecord is one persisted training-history entry.
type EpochRecord struct {
	Loss     float64 `json:"loss"`
	Accuracy float64 `json:"accuracy"`
}

// Snapshot is the persisted form of a trained network: configuration,
// deep-copied parameters, training history, and the optional vocabulary of
// an embedding model.
type Snapshot struct {
	ModelType     string    `json:"model_type"`
	FormatVersion int       `json:"format_version"`
	RunID         string    `json:"run_id"`
	TrainedAt     time.Time `json:"trained_at"`

	LayerSizes       []int   `json:"layer_sizes"`
	HiddenActivation string  `json:"hidden_activation"`
	OutputActivation string  `json:"output_activation"`
	LearningRate     float64 `json:"learning_rate"`

	// Weights[i] is the row-major weight matrix between layers i and
	// i+1; Biases[i] the bias vector of layer i+1.
	Weights [][][]float64 `json:"weights"`
	Biases  [][]float64   `json:"biases"`

	History []EpochRecord `json:"training_history"`

	WordToIndex map[string]int `json:"word_to_idx,omitempty"`
	IndexToWord []string       `json:"idx_to_word,omitempty"`
}

// Save snapshots net together with its training history and, for embedding
// models, the vocabulary. All parameter values are deep-copied; mutating
// the network afterwards does not affect the snapshot.
func Save(net *nn.Network, history train.History, vocab *embed.Vocab) *Snapshot {
	cfg := net.Config()
	s := &Snapshot{
		ModelType:        ModelType,
		FormatVersion:    FormatVersion,
		RunID:            uuid.NewString(),
		TrainedAt:        time.Now().UTC(),
		LayerSizes:       cfg.Layers,
		HiddenActivation: cfg.Hidden.String(),
		OutputActivation: cfg.Output.String(),
		LearningRate:     cfg.LearningRate,
	}

	for _, w := range net.Weights() {
		rows := make([][]float64, w.Rows())
		for i := range rows {
			rows[i] = append([]float64(nil), w.Row(i)...)
		}
		s.Weights = append(s.Weights, rows)
	}
	for _, b := range net.Biases() {
		s.Biases = append(s.Biases, append([]float64(nil), b...))
	}

	for _, e := range history {
		s.History = append(s.History, EpochRecord{Loss: e.Loss, Accuracy: e.Accuracy})
	}

	if vocab != nil {
		s.IndexToWord = vocab.Words()
		s.WordToIndex = make(map[string]int, len(s.IndexToWord))
		for i, w := range s.IndexToWord {
			s.WordToIndex[w] = i
		}
	}
	return s
}

// Validate checks the snapshot's self-description and internal consistency
// without constructing anything.
func (s *Snapshot) Validate() error {
	if s.ModelType != ModelType {
		return formatErr("model_type", "want %q, got %q", ModelType, s.ModelType)
	}
	if s.FormatVersion != FormatVersion {
		return ErrUnsupportedVersion
	}
	if len(s.LayerSizes) < 2 {
		return formatErr("layer_sizes", "need at least 2 layers, got %d", len(s.LayerSizes))
	}
	for i, n := range s.LayerSizes {
		if n <= 0 {
			return formatErr("layer_sizes", "layer %d has size %d", i, n)
		}
	}
	if _, err := nn.ParseActivation(s.HiddenActivation); err != nil {
		return formatErr("hidden_activation", "%v", err)
	}
	if _, err := nn.ParseActivation(s.OutputActivation); err != nil {
		return formatErr("output_activation", "%v", err)
	}
	if s.LearningRate <= 0 {
		return formatErr("learning_rate", "must be positive, got %g", s.LearningRate)
	}

	layerCount := len(s.LayerSizes) - 1
	if len(s.Weights) != layerCount {
		return formatErr("weights", "want %d matrices, got %d", layerCount, len(s.Weights))
	}
	if len(s.Biases) != layerCount {
		return formatErr("biases", "want %d vectors, got %d", layerCount, len(s.Biases))
	}
	for i := 0; i < layerCount; i++ {
		if len(s.Weights[i]) != s.LayerSizes[i] {
			return formatErr("weights", "matrix %d: want %d rows, got %d", i, s.LayerSizes[i], len(s.Weights[i]))
		}
		for r, row := range s.Weights[i] {
			if len(row) != s.LayerSizes[i+1] {
				return formatErr("weights", "matrix %d row %d: want %d cols, got %d", i, r, s.LayerSizes[i+1], len(row))
			}
		}
		if len(s.Biases[i]) != s.LayerSizes[i+1] {
			return formatErr("biases", "vector %d: want %d values, got %d", i, s.LayerSizes[i+1], len(s.Biases[i]))
		}
	}

	if len(s.IndexToWord) > 0 {
		if len(s.WordToIndex) != len(s.IndexToWord) {
			return formatErr("word_to_idx", "want %d entries, got %d", len(s.IndexToWord), len(s.WordToIndex))
		}
		for i, w := range s.IndexToWord {
			if got, ok := s.WordToIndex[w]; !ok || got != i {
				return formatErr("word_to_idx", "word %q maps to %d, want %d", w, got, i)
			}
		}
	}
	return nil
}

// Network reconstructs a network equivalent to the one that was saved. Its
// forward-pass outputs match the original float for float.
func (s *Snapshot) Network() (*nn.Network, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	hidden, _ := nn.ParseActivation(s.HiddenActivation)
	output, _ := nn.ParseActivation(s.OutputActivation)
	cfg := nn.Config{
		Layers:       append([]int(nil), s.LayerSizes...),
		Hidden:       hidden,
		Output:       output,
		LearningRate: s.LearningRate,
	}

	weights := make([]*tensor.Matrix, len(s.Weights))
	for i, rows := range s.Weights {
		flat := make([]float64, 0, len(rows)*len(rows[0]))
		for _, row := range rows {
			flat = append(flat, row...)
		}
		m, err := tensor.NewMatrixFrom(len(rows), len(rows[0]), flat)
		if err != nil {
			return nil, formatErr("weights", "matrix %d: %v", i, err)
		}
		weights[i] = m
	}

	net, err := nn.NewFromParams(cfg, weights, s.Biases)
	if err != nil {
		return nil, formatErr("network", "%v", err)
	}
	return net, nil
}

// Vocab reconstructs the persisted vocabulary, or nil when the snapshot
// carries none.
func (s *Snapshot) Vocab() *embed.Vocab {
	if len(s.IndexToWord) == 0 {
		return nil
	}
	return embed.NewVocabFromWords(s.IndexToWord)
}

// TrainingHistory converts the persisted history records back to their
// in-memory form.
func (s *Snapshot) TrainingHistory() train.History {
	history := make(train.History, len(s.History))
	for i, r := range s.History {
		history[i] = train.Epoch{Loss: r.Loss, Accuracy: r.Accuracy}
	}
	return history
}
