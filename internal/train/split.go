package train

import (
	"math/rand"
	"sort"
)

// StratifiedSplit partitions the row indices [0, len(classes)) into training
// and evaluation sets, keeping each class represented proportionally in both.
//
// The split is reproducible: rows are grouped per class in ascending class
// order regardless of input row order, each group is shuffled with the seeded
// generator, and both partitions are returned in ascending index order. The
// same classes and seed always produce the same partitions.
func StratifiedSplit(classes []int, testFraction float64, seed int64) (trainIdx, testIdx []int) {
	groups := make(map[int][]int)
	for i, c := range classes {
		groups[c] = append(groups[c], i)
	}

	keys := make([]int, 0, len(groups))
	for c := range groups {
		keys = append(keys, c)
	}
	sort.Ints(keys)

	rng := rand.New(rand.NewSource(seed))

	for _, c := range keys {
		group := groups[c]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		nTest := int(float64(len(group)) * testFraction)
		if nTest == 0 && len(group) > 1 && testFraction > 0 {
			nTest = 1
		}

		testIdx = append(testIdx, group[:nTest]...)
		trainIdx = append(trainIdx, group[nTest:]...)
	}

	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx
}
