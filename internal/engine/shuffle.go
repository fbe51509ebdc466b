package engine

import (
	"math/rand/v2"
	"slices"

	"github.com/desertthunder/nmp/internal/models"
)

// Shuffle returns a shuffled copy of list and the index of current in it (-1 when absent).
//
// After a Fisher–Yates permutation a single forward pass pulls a later song between two
// adjacent entries that are the same title by different artists. The pass is best effort.
func Shuffle(list []models.Song, current *models.Song, rng *rand.Rand) ([]models.Song, int) {
	out := slices.Clone(list)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	separateDuplicates(out)

	if current == nil {
		return out, -1
	}
	return out, indexOfPath(out, current.Path)
}

// separateDuplicates is the anti-consecutive repair pass.
func separateDuplicates(list []models.Song) {
	for i := 1; i < len(list); i++ {
		prevKey := TitleKey(list[i-1].Title)
		if TitleKey(list[i].Title) != prevKey || list[i].Artist == list[i-1].Artist {
			continue
		}

		for j := i + 1; j < len(list); j++ {
			if TitleKey(list[j].Title) != prevKey {
				list[i], list[j] = list[j], list[i]
				break
			}
		}
	}
}

func indexOfPath(list []models.Song, path string) int {
	return slices.IndexFunc(list, func(s models.Song) bool { return s.Path == path })
}
