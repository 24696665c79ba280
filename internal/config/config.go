// Package config loads the TOML run files consumed by the sable CLI. A run
// file describes one training run end to end: topology, hyperparameters,
// data source, and where to write the resulting model.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/sable-ml/sable/internal/nn"
)

// Data source kinds.
const (
	DataNPY     = "npy"
	DataEvenOdd = "evenodd"
	DataColors  = "colors"
	DataCorpus  = "corpus"
)

// Data describes where training examples come from.
type Data struct {
	// Kind selects the source: "npy", "evenodd", "colors", or "corpus".
	Kind string `toml:"kind"`

	// X and Y are the .npy feature/label paths for kind "npy".
	X string `toml:"x"`
	Y string `toml:"y"`

	// Corpus is the text file for kind "corpus"; Window the skip-gram
	// context radius.
	Corpus string `toml:"corpus"`
	Window int    `toml:"window"`

	// Samples is the synthetic set size for "evenodd" and "colors".
	Samples int `toml:"samples"`

	// Holdout examples are split off for evaluation after training.
	Holdout int `toml:"holdout"`
}

// Run is one complete training-run description.
type Run struct {
	Layers           []int   `toml:"layers"`
	HiddenActivation string  `toml:"hidden_activation"`
	OutputActivation string  `toml:"output_activation"`
	LearningRate     float64 `toml:"learning_rate"`
	Epochs           int     `toml:"epochs"`
	BatchSize        int     `toml:"batch_size"` // 0 selects online SGD
	Seed             int64   `toml:"seed"`
	Model            string  `toml:"model"` // output snapshot path

	Data Data `toml:"data"`
}

// defaults applied before validation.
func defaultRun() Run {
	return Run{
		HiddenActivation: "relu",
		OutputActivation: "sigmoid",
		LearningRate:     0.1,
		Epochs:           100,
		Seed:             1,
		Model:            "model.json",
		Data: Data{
			Kind:    DataEvenOdd,
			Window:  2,
			Samples: 800,
			Holdout: 200,
		},
	}
}

// Load reads, defaults, and validates a run file.
func Load(path string) (*Run, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	run := defaultRun()
	if err := toml.Unmarshal(raw, &run); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := run.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &run, nil
}

// Validate checks the run description, including that the topology and
// activations form a constructible network configuration.
func (r *Run) Validate() error {
	switch r.Data.Kind {
	case DataNPY:
		if r.Data.X == "" || r.Data.Y == "" {
			return errors.New("data.x and data.y are required for kind \"npy\"")
		}
	case DataCorpus:
		if r.Data.Corpus == "" {
			return errors.New("data.corpus is required for kind \"corpus\"")
		}
		if r.Data.Window <= 0 {
			return fmt.Errorf("data.window must be positive, got %d", r.Data.Window)
		}
	case DataEvenOdd, DataColors:
		if r.Data.Samples <= 0 {
			return fmt.Errorf("data.samples must be positive, got %d", r.Data.Samples)
		}
	default:
		return fmt.Errorf("unknown data.kind %q", r.Data.Kind)
	}

	// Corpus runs derive their input/output widths from the vocabulary,
	// so only the hidden widths are declared.
	if r.Data.Kind != DataCorpus {
		if _, err := r.NetworkConfig(); err != nil {
			return err
		}
	} else {
		for i, n := range r.Layers {
			if n <= 0 {
				return fmt.Errorf("layers[%d] must be positive, got %d", i, n)
			}
		}
	}

	if r.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", r.Epochs)
	}
	if r.BatchSize < 0 {
		return fmt.Errorf("batch_size must not be negative, got %d", r.BatchSize)
	}
	if r.Model == "" {
		return errors.New("model output path must not be empty")
	}
	if r.Data.Holdout < 0 {
		return fmt.Errorf("data.holdout must not be negative, got %d", r.Data.Holdout)
	}
	return nil
}

// NetworkConfig builds the nn.Config described by the run.
func (r *Run) NetworkConfig() (nn.Config, error) {
	hidden, err := nn.ParseActivation(r.HiddenActivation)
	if err != nil {
		return nn.Config{}, err
	}
	output, err := nn.ParseActivation(r.OutputActivation)
	if err != nil {
		return nn.Config{}, err
	}
	cfg := nn.Config{
		Layers:       append([]int(nil), r.Layers...),
		Hidden:       hidden,
		Output:       output,
		LearningRate: r.LearningRate,
	}
	if err := cfg.Validate(); err != nil {
		return nn.Config{}, err
	}
	return cfg, nil
}
