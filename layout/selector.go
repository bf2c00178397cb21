package layout

import (
	"math"
	"sort"
)

// SelectCandidates filters scored candidates down to the document's
// headings and returns them in reading order.
//
// The threshold is max(MinScore, ThresholdRatio × mean score). Survivors are
// ranked by score, highest first, with equal scores kept in extraction order;
// the top MaxHeadings are then re-sorted by page and top edge. The input slice
// is not modified.
func SelectCandidates(candidates []HeadingCandidate, config HeadingConfig) []HeadingCandidate {
	if len(candidates) == 0 {
		return nil
	}

	threshold := selectionThreshold(candidates, config)

	selected := make([]HeadingCandidate, 0, len(candidates))
	for _, c := range candidates {
		if float64(c.Score) >= threshold {
			selected = append(selected, c)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Score != selected[j].Score {
			return selected[i].Score > selected[j].Score
		}
		return selected[i].Index < selected[j].Index
	})

	if config.MaxHeadings > 0 && len(selected) > config.MaxHeadings {
		selected = selected[:config.MaxHeadings]
	}

	sortReadingOrder(selected)
	return selected
}

// selectionThreshold computes max(MinScore, ThresholdRatio × mean score)
func selectionThreshold(candidates []HeadingCandidate, config HeadingConfig) float64 {
	total := 0
	for _, c := range candidates {
		total += c.Score
	}
	mean := float64(total) / float64(len(candidates))
	return math.Max(config.MinScore, config.ThresholdRatio*mean)
}

// sortReadingOrder orders candidates by page, then top edge. The sort is
// stable, so candidates sharing a position keep their rank order.
func sortReadingOrder(candidates []HeadingCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Page() != candidates[j].Page() {
			return candidates[i].Page() < candidates[j].Page()
		}
		return candidates[i].Top() < candidates[j].Top()
	})
}
