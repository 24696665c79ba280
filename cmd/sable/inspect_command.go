package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sable-ml/sable/internal/model"
)

func newInspectCommand() *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a saved model file",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := model.ReadFile(modelPath)
			if err != nil {
				return err
			}

			sizes := make([]string, len(snapshot.LayerSizes))
			for i, n := range snapshot.LayerSizes {
				sizes[i] = strconv.Itoa(n)
			}

			rows := [][]string{
				{"Model type", snapshot.ModelType},
				{"Format version", strconv.Itoa(snapshot.FormatVersion)},
				{"Run ID", snapshot.RunID},
				{"Trained at", snapshot.TrainedAt.Format(time.RFC3339)},
				{"Topology", strings.Join(sizes, " x ")},
				{"Hidden activation", snapshot.HiddenActivation},
				{"Output activation", snapshot.OutputActivation},
				{"Learning rate", strconv.FormatFloat(snapshot.LearningRate, 'g', -1, 64)},
				{"Parameters", strconv.Itoa(parameterCount(snapshot))},
				{"Epochs trained", strconv.Itoa(len(snapshot.History))},
			}
			if n := len(snapshot.History); n > 0 {
				last := snapshot.History[n-1]
				rows = append(rows,
					[]string{"Final loss", strconv.FormatFloat(last.Loss, 'f', 6, 64)},
					[]string{"Final accuracy", fmt.Sprintf("%.2f%%", last.Accuracy*100)},
				)
			}
			if len(snapshot.IndexToWord) > 0 {
				rows = append(rows, []string{"Vocabulary", strconv.Itoa(len(snapshot.IndexToWord)) + " words"})
			}

			cmd.Println(renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "model.json", "Path to a saved model")
	return cmd
}

func parameterCount(s *model.Snapshot) int {
	total := 0
	for _, w := range s.Weights {
		for _, row := range w {
			total += len(row)
		}
	}
	for _, b := range s.Biases {
		total += len(b)
	}
	return total
}
