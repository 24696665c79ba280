package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/sable-ml/sable/internal/config"
	"github.com/sable-ml/sable/internal/dataset"
	"github.com/sable-ml/sable/internal/embed"
	"github.com/sable-ml/sable/internal/model"
	"github.com/sable-ml/sable/internal/nn"
	"github.com/sable-ml/sable/internal/train"
)

func newTrainCommand() *cobra.Command {
	var runPath string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a network as described by a TOML run file",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := config.Load(runPath)
			if err != nil {
				return err
			}
			return runTraining(cmd, run)
		},
	}

	cmd.Flags().StringVarP(&runPath, "run", "c", "run.toml", "Path to the run file")
	return cmd
}

func runTraining(cmd *cobra.Command, run *config.Run) error {
	rng := rand.New(rand.NewSource(run.Seed))

	examples, vocab, cfg, err := buildRun(run, rng)
	if err != nil {
		return err
	}
	trainSet, testSet := dataset.Split(examples, run.Data.Holdout, rng)
	if len(trainSet) == 0 {
		return fmt.Errorf("no training examples left after holding out %d", run.Data.Holdout)
	}

	net, err := nn.New(cfg, rng)
	if err != nil {
		return err
	}
	slog.Info("training",
		slog.Any("layers", cfg.Layers),
		slog.String("hidden", cfg.Hidden.String()),
		slog.String("output", cfg.Output.String()),
		slog.Float64("learning_rate", cfg.LearningRate),
		slog.Int("examples", len(trainSet)),
		slog.Int("epochs", run.Epochs),
	)

	bar := progressbar.NewOptions(run.Epochs,
		progressbar.OptionSetDescription("epochs"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	trainer := train.New(net, rng, train.WithProgress(func(epoch int, stats train.Epoch) {
		_ = bar.Add(1)
		slog.Debug("epoch", slog.Int("epoch", epoch), slog.Float64("loss", stats.Loss), slog.Float64("accuracy", stats.Accuracy))
	}))

	var history train.History
	if run.BatchSize > 0 {
		history, err = trainer.TrainMiniBatch(cmd.Context(), trainSet, run.Epochs, run.BatchSize)
	} else {
		history, err = trainer.Train(cmd.Context(), trainSet, run.Epochs)
	}
	_ = bar.Finish()
	if err != nil {
		return err
	}

	final := history[len(history)-1]
	slog.Info("finished", slog.Int("epochs", len(history)), slog.Float64("loss", final.Loss), slog.Float64("accuracy", final.Accuracy))

	if len(testSet) > 0 {
		held, err := trainer.Evaluate(testSet)
		if err != nil {
			return err
		}
		slog.Info("holdout", slog.Int("examples", len(testSet)), slog.Float64("loss", held.Loss), slog.Float64("accuracy", held.Accuracy))
	}

	snapshot := model.Save(net, history, vocab)
	if err := model.WriteFile(run.Model, snapshot); err != nil {
		return err
	}
	slog.Info("saved", slog.String("path", run.Model), slog.String("run_id", snapshot.RunID))
	return nil
}

// buildRun materializes the run's data source and resolves the final
// network configuration. Corpus runs derive input/output widths from the
// vocabulary: declared layers become the hidden widths.
func buildRun(run *config.Run, rng *rand.Rand) ([]dataset.Example, *embed.Vocab, nn.Config, error) {
	switch run.Data.Kind {
	case config.DataEvenOdd:
		cfg, err := run.NetworkConfig()
		return dataset.EvenOdd(run.Data.Samples, rng), nil, cfg, err
	case config.DataColors:
		cfg, err := run.NetworkConfig()
		return dataset.ColorWarmth(run.Data.Samples, rng), nil, cfg, err
	case config.DataNPY:
		cfg, err := run.NetworkConfig()
		if err != nil {
			return nil, nil, nn.Config{}, err
		}
		examples, err := dataset.LoadNPY(run.Data.X, run.Data.Y, cfg.OutputSize())
		return examples, nil, cfg, err
	case config.DataCorpus:
		raw, err := os.ReadFile(run.Data.Corpus)
		if err != nil {
			return nil, nil, nn.Config{}, fmt.Errorf("reading corpus: %w", err)
		}
		examples, vocab := dataset.SkipGrams(dataset.Tokenize(string(raw)), run.Data.Window)
		if vocab.Len() == 0 {
			return nil, nil, nn.Config{}, fmt.Errorf("corpus %s contains no tokens", run.Data.Corpus)
		}

		layers := append([]int{vocab.Len()}, run.Layers...)
		layers = append(layers, vocab.Len())
		corpusRun := *run
		corpusRun.Layers = layers
		cfg, err := corpusRun.NetworkConfig()
		return examples, vocab, cfg, err
	default:
		return nil, nil, nn.Config{}, fmt.Errorf("unknown data kind %q", run.Data.Kind)
	}
}
