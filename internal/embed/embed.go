// Package embed turns a trained weight matrix into a queryable embedding
// table: each row is the dense vector for one vocabulary entry, and queries
// rank rows by cosine similarity.
//
// MostSimilar scans every row, so a query costs O(rows × dim). At the
// vocabulary scales this engine targets (tens to low thousands of entries)
// that is the intended trade-off; no index structure is built.
package embed

import (
	"fmt"
	"sort"

	"github.com/sable-ml/sable/internal/tensor"
)

// IndexError reports a similarity or vocabulary lookup that referenced an
// unknown row index or word.
type IndexError struct {
	Index int    // offending index, -1 for word lookups
	Size  int    // table or vocabulary size
	Word  string // offending word, empty for index lookups
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("embed: unknown word %q", e.Word)
	}
	return fmt.Sprintf("embed: index %d out of range [0, %d)", e.Index, e.Size)
}

// Cosine returns the cosine similarity u·v / (‖u‖·‖v‖).
//
// When either vector has zero norm the similarity is 0 by definition here,
// not a division-by-zero failure. Mismatched lengths are a *tensor.ShapeError.
func Cosine(u, v []float64) (float64, error) {
	dot, err := tensor.Dot(u, v)
	if err != nil {
		return 0, err
	}
	nu := tensor.Norm(u)
	nv := tensor.Norm(v)
	if nu == 0 || nv == 0 {
		return 0, nil
	}
	return dot / (nu * nv), nil
}

// Match pairs an embedding row with its similarity score.
type Match struct {
	Index int
	Score float64
}

// Table views a weight matrix as an embedding table. The matrix is
// borrowed, not copied; the table must not outlive the network that owns
// the weights.
type Table struct {
	rows *tensor.Matrix
}

// NewTable wraps a weight matrix whose rows are embedding vectors.
func NewTable(m *tensor.Matrix) *Table {
	return &Table{rows: m}
}

// Len returns the number of embedding rows.
func (t *Table) Len() int { return t.rows.Rows() }

// Dim returns the embedding dimensionality.
func (t *Table) Dim() int { return t.rows.Cols() }

// Vector returns the embedding for row i as a view into the table.
func (t *Table) Vector(i int) ([]float64, error) {
	if i < 0 || i >= t.rows.Rows() {
		return nil, &IndexError{Index: i, Size: t.rows.Rows()}
	}
	return t.rows.Row(i), nil
}

// MostSimilar returns the k rows most similar to row index, ranked by
// descending cosine similarity. The query row itself is excluded. A k
// larger than the remaining rows returns all of them.
func (t *Table) MostSimilar(index, k int) ([]Match, error) {
	query, err := t.Vector(index)
	if err != nil {
		return nil, err
	}
	if k < 0 {
		k = 0
	}

	matches := make([]Match, 0, t.rows.Rows()-1)
	for i := 0; i < t.rows.Rows(); i++ {
		if i == index {
			continue
		}
		score, err := Cosine(query, t.rows.Row(i))
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{Index: i, Score: score})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}
