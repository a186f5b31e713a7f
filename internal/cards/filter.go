package cards

import "strings"

// FilterOptions selects card rows for previews and listings.
type FilterOptions struct {
	// MinRepetitions drops rows printed fewer times than this.
	MinRepetitions int `json:"min_repetitions"`
	// FreeWords keeps rows containing every word in some cell,
	// case-insensitively.
	FreeWords string `json:"free_words"`
	// SkipInvalid drops rows whose repetition count could not be read.
	SkipInvalid bool `json:"skip_invalid"`
}

func containsAll(cells []string, words []string) bool {
	joined := strings.ToLower(strings.Join(cells, " "))
	for _, w := range words {
		if !strings.Contains(joined, strings.ToLower(w)) {
			return false
		}
	}
	return true
}

func Filter(rows []Row, opt FilterOptions) []Row {
	var out []Row
	words := strings.Fields(opt.FreeWords)
	for _, r := range rows {
		if r.RepetitionsErr != nil {
			if opt.SkipInvalid {
				continue
			}
		} else if r.Repetitions < opt.MinRepetitions {
			continue
		}
		if len(words) > 0 && !containsAll(r.Cells, words) {
			continue
		}
		out = append(out, r)
	}
	return out
}
