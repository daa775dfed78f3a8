package combo

import (
	"errors"
	"math/rand"

	"avatar-combiner/internal/classify"
	"avatar-combiner/internal/descriptor"
)

// ErrNegativeCount is returned when a negative number of combinations is
// requested.
var ErrNegativeCount = errors.New("combo: negative combination count")

// Combination is one part per category, all sharing one skeleton tag.
// Parts are ordered by category name.
type Combination struct {
	Skeleton string
	Parts    []descriptor.Descriptor
}

// Above this candidate-space size, sampling switches from shuffling the
// whole index range to rejection sampling.
const shuffleLimit = 1 << 16

// Generate draws up to n distinct combinations from the group's candidate
// space: the Cartesian product over its categories, one part per category.
// A group without the mandatory body category yields nothing. If n covers
// the whole space, the full product is returned in lexicographic index
// order. Otherwise n distinct tuples are drawn uniformly without
// replacement from rng; a nil rng uses the process-wide source.
func Generate(group *classify.Group, n int, rng *rand.Rand) ([]Combination, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n == 0 || !group.HasBody() {
		return nil, nil
	}

	cats := group.SortedCategories()
	counts := make([]int, len(cats))
	size := 1
	for i, c := range cats {
		counts[i] = len(group.Parts(c))
		if counts[i] == 0 {
			return nil, nil
		}
		size *= counts[i]
	}

	var picks []int
	switch {
	case n >= size:
		picks = make([]int, size)
		for i := range picks {
			picks[i] = i
		}
	case size <= shuffleLimit:
		perm := permInt(rng, size)
		picks = perm[:n]
	default:
		picks = make([]int, 0, n)
		drawn := make(map[int]bool, n)
		for len(picks) < n {
			idx := intn(rng, size)
			if drawn[idx] {
				continue
			}
			drawn[idx] = true
			picks = append(picks, idx)
		}
	}

	out := make([]Combination, len(picks))
	for i, idx := range picks {
		out[i] = decode(group, cats, counts, idx)
	}
	return out, nil
}

// decode converts one index of the Cartesian product into a combination.
// The last category varies fastest, which makes the full enumeration
// lexicographic over category-ordered index tuples.
func decode(group *classify.Group, cats []string, counts []int, idx int) Combination {
	parts := make([]descriptor.Descriptor, len(cats))
	for i := len(cats) - 1; i >= 0; i-- {
		parts[i] = group.Parts(cats[i])[idx%counts[i]]
		idx /= counts[i]
	}
	return Combination{Skeleton: group.Skeleton, Parts: parts}
}

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.Intn(n)
	}
	return rng.Intn(n)
}

func permInt(rng *rand.Rand, n int) []int {
	if rng == nil {
		return rand.Perm(n)
	}
	return rng.Perm(n)
}
