package layout

import (
	"sort"

	"github.com/tsawler/outliner/model"
)

// AssignLevels maps selected candidates to H1/H2/H3 headings, preserving
// their order.
//
// The distinct font sizes among the candidates are ranked largest first:
// rank 0 is H1, rank 1 is H2 and anything smaller is H3. A leading section
// numeral overrides the size rank ("2.3.1 " is always H3, "2.3 " H2, "2 " H1).
func AssignLevels(candidates []HeadingCandidate) model.Outline {
	if len(candidates) == 0 {
		return model.Outline{}
	}

	ranks := sizeRanks(candidates)

	outline := make(model.Outline, 0, len(candidates))
	for _, c := range candidates {
		outline = append(outline, model.Heading{
			Level: determineLevel(c.Text, ranks[c.Size()]),
			Text:  c.Text,
			Page:  c.Page(),
		})
	}
	return outline
}

// sizeRanks maps each distinct candidate size to its rank, 0 being the largest
func sizeRanks(candidates []HeadingCandidate) map[float64]int {
	seen := make(map[float64]bool)
	var sizes []float64
	for _, c := range candidates {
		if !seen[c.Size()] {
			seen[c.Size()] = true
			sizes = append(sizes, c.Size())
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	ranks := make(map[float64]int, len(sizes))
	for i, size := range sizes {
		ranks[size] = i
	}
	return ranks
}

// determineLevel applies the numeral override, most specific pattern first,
// and falls back to the size rank.
func determineLevel(text string, rank int) model.Level {
	for _, o := range levelOverrides {
		if o.pattern.MatchString(text) {
			return o.level
		}
	}
	return levelForRank(rank)
}

func levelForRank(rank int) model.Level {
	switch rank {
	case 0:
		return model.H1
	case 1:
		return model.H2
	default:
		return model.H3
	}
}
