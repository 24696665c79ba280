package embed

// Vocab is a bidirectional word ↔ index mapping. Indices are dense and
// assigned in insertion order, matching the rows of the embedding table
// trained against it.
type Vocab struct {
	byWord map[string]int
	words  []string
}

// NewVocab builds a vocabulary from a token stream, keeping the first
// occurrence of each distinct token.
func NewVocab(tokens []string) *Vocab {
	v := &Vocab{byWord: make(map[string]int)}
	for _, tok := range tokens {
		if _, ok := v.byWord[tok]; ok {
			continue
		}
		v.byWord[tok] = len(v.words)
		v.words = append(v.words, tok)
	}
	return v
}

// NewVocabFromWords rebuilds a vocabulary from an ordered word list, as
// stored in a persisted model. Duplicates collapse onto their first index.
func NewVocabFromWords(words []string) *Vocab {
	return NewVocab(words)
}

// Len returns the vocabulary size.
func (v *Vocab) Len() int { return len(v.words) }

// Index returns the index for word.
func (v *Vocab) Index(word string) (int, error) {
	i, ok := v.byWord[word]
	if !ok {
		return 0, &IndexError{Index: -1, Size: len(v.words), Word: word}
	}
	return i, nil
}

// Word returns the word at index i.
func (v *Vocab) Word(i int) (string, error) {
	if i < 0 || i >= len(v.words) {
		return "", &IndexError{Index: i, Size: len(v.words)}
	}
	return v.words[i], nil
}

// Words returns the ordered word list backing the vocabulary.
func (v *Vocab) Words() []string {
	return append([]string(nil), v.words...)
}

// WordMatch pairs a vocabulary word with its similarity score.
type WordMatch struct {
	Word  string
	Score float64
}

// MostSimilarWord resolves word through the vocabulary and maps the
// resulting row matches back to words.
func (t *Table) MostSimilarWord(v *Vocab, word string, k int) ([]WordMatch, error) {
	idx, err := v.Index(word)
	if err != nil {
		return nil, err
	}
	matches, err := t.MostSimilar(idx, k)
	if err != nil {
		return nil, err
	}
	out := make([]WordMatch, len(matches))
	for i, m := range matches {
		w, err := v.Word(m.Index)
		if err != nil {
			return nil, err
		}
		out[i] = WordMatch{Word: w, Score: m.Score}
	}
	return out, nil
}
