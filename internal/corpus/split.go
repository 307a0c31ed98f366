package corpus

import (
	"fmt"
	"math/rand"
)

// Split shuffles examples with the given seed and divides them into train
// and test sets. The same seed always yields the same split.
func Split(examples []Example, testRatio float64, seed int64) (train, test []Example, err error) {
	if len(examples) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 examples to split, got %d", len(examples))
	}
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio must be in (0, 1), got %g", testRatio)
	}

	shuffled := make([]Example, len(examples))
	copy(shuffled, examples)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(float64(len(shuffled)) * testRatio)
	// Keep both sides non-empty
	if nTest == 0 {
		nTest = 1
	}
	if nTest == len(shuffled) {
		nTest = len(shuffled) - 1
	}

	return shuffled[nTest:], shuffled[:nTest], nil
}
