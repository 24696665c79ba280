package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sable-ml/sable/internal/embed"
	"github.com/sable-ml/sable/internal/model"
)

func newSimilarCommand() *cobra.Command {
	var (
		modelPath string
		word      string
		index     int
		k         int
	)

	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Rank the embeddings closest to a word or row index",
		Long: `Similar treats the first weight matrix of a saved model as an embedding
table, one row per input unit, and ranks rows by cosine similarity to the
query row. For models trained on a corpus the query can be a word; any
model can be queried by row index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if word == "" && index < 0 {
				return errors.New("either --word or --index is required")
			}

			snapshot, err := model.ReadFile(modelPath)
			if err != nil {
				return err
			}
			net, err := snapshot.Network()
			if err != nil {
				return err
			}
			embeddings := embed.NewTable(net.Weights()[0])
			vocab := snapshot.Vocab()

			if word != "" {
				if vocab == nil {
					return errors.New("model has no vocabulary, query by --index instead")
				}
				matches, err := embeddings.MostSimilarWord(vocab, word, k)
				if err != nil {
					return err
				}
				rows := make([][]string, len(matches))
				for i, m := range matches {
					rows[i] = []string{m.Word, strconv.FormatFloat(m.Score, 'f', 6, 64)}
				}
				cmd.Println(renderTable([]string{"Word", "Cosine"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			}

			matches, err := embeddings.MostSimilar(index, k)
			if err != nil {
				return err
			}
			rows := make([][]string, len(matches))
			for i, m := range matches {
				rows[i] = []string{strconv.Itoa(m.Index), strconv.FormatFloat(m.Score, 'f', 6, 64)}
			}
			cmd.Println(renderTable([]string{"Index", "Cosine"}, rows, []columnAlignment{alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "model.json", "Path to a saved model")
	cmd.Flags().StringVarP(&word, "word", "w", "", "Query word (corpus-trained models)")
	cmd.Flags().IntVar(&index, "index", -1, "Query row index")
	cmd.Flags().IntVarP(&k, "top", "k", 5, "Number of neighbors to report")
	return cmd
}
