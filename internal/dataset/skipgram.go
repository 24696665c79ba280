package dataset

import (
	"strings"
	"unicode"

	"github.com/sable-ml/sable/internal/embed"
)

// Tokenize lower-cases text and splits it into word tokens, treating any
// run of non-letter, non-digit characters as a separator.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SkipGrams builds skip-gram training pairs from a token stream: for every
// center word, each context word within the window becomes one example
// with a one-hot center input and a one-hot context target.
//
// The returned vocabulary indexes the one-hot positions and later the rows
// of the trained embedding table.
func SkipGrams(tokens []string, window int) ([]Example, *embed.Vocab) {
	vocab := embed.NewVocab(tokens)
	size := vocab.Len()

	var examples []Example
	for i, tok := range tokens {
		center, err := vocab.Index(tok)
		if err != nil {
			// Vocab was built from these tokens; every token resolves.
			continue
		}
		for off := -window; off <= window; off++ {
			j := i + off
			if off == 0 || j < 0 || j >= len(tokens) {
				continue
			}
			context, err := vocab.Index(tokens[j])
			if err != nil {
				continue
			}
			examples = append(examples, FromClass(oneHot(center, size), context, size))
		}
	}
	return examples, vocab
}

func oneHot(index, size int) []float64 {
	v := make([]float64, size)
	v[index] = 1
	return v
}
