package dataset

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"
)

// LoadNPY reads a feature matrix and a label vector from NumPy .npy files
// and pairs them into classification examples.
//
// xPath must hold a 2-D float64 array of shape (n, features); yPath a 1-D
// float64 array of n class labels. outputWidth is the network's output
// size: 1 for a single sigmoid unit, the class count for one-hot targets.
func LoadNPY(xPath, yPath string, outputWidth int) ([]Example, error) {
	xs, xShape, err := readNPY(xPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: reading %s: %w", xPath, err)
	}
	if len(xShape) != 2 {
		return nil, fmt.Errorf("dataset: %s: want a 2-D feature array, got shape %v", xPath, xShape)
	}

	ys, yShape, err := readNPY(yPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: reading %s: %w", yPath, err)
	}
	if len(yShape) != 1 {
		return nil, fmt.Errorf("dataset: %s: want a 1-D label array, got shape %v", yPath, yShape)
	}

	n, features := xShape[0], xShape[1]
	if yShape[0] != n {
		return nil, fmt.Errorf("dataset: %d feature rows but %d labels", n, yShape[0])
	}

	examples := make([]Example, n)
	for i := 0; i < n; i++ {
		input := xs[i*features : (i+1)*features]
		class := int(ys[i])
		classes := outputWidth
		if classes == 1 {
			classes = 2 // single sigmoid unit encodes a binary label
		}
		if class < 0 || class >= classes {
			return nil, fmt.Errorf("dataset: label %d out of range for output width %d", class, outputWidth)
		}
		examples[i] = FromClass(input, class, outputWidth)
	}
	return examples, nil
}

func readNPY(path string) ([]float64, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, nil, err
	}

	var data []float64
	if err := r.Read(&data); err != nil {
		return nil, nil, err
	}
	return data, r.Header.Descr.Shape, nil
}
