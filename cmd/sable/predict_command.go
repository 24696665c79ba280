package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sable-ml/sable/internal/model"
)

func newPredictCommand() *cobra.Command {
	var (
		modelPath string
		input     string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a saved model on one input vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := model.ReadFile(modelPath)
			if err != nil {
				return err
			}
			net, err := snapshot.Network()
			if err != nil {
				return err
			}

			x, err := parseVector(input)
			if err != nil {
				return err
			}
			out, err := net.Predict(x)
			if err != nil {
				return err
			}
			class, err := net.PredictClass(x)
			if err != nil {
				return err
			}

			rows := make([][]string, len(out))
			for i, v := range out {
				label := strconv.Itoa(i)
				if vocab := snapshot.Vocab(); vocab != nil {
					if word, err := vocab.Word(i); err == nil {
						label = word
					}
				}
				rows[i] = []string{label, strconv.FormatFloat(v, 'f', 6, 64)}
			}
			cmd.Println(renderTable([]string{"Output", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			cmd.Printf("class: %d\n", class)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "model.json", "Path to a saved model")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Comma-separated input vector")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func parseVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing input component %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
