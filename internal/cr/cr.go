// Package cr holds the fixed, ordered domain of challenge-rating labels.
//
// Labels mix fractions and integers ("1/2", "10"), so they sort neither
// lexicographically nor by parsing the stored text. Position in the fixed
// list is the only ordering used.
package cr

import (
	"sort"

	"github.com/roach88/bestiary/internal/ir"
)

var labels = []string{
	"0", "1/8", "1/4", "1/2",
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
	"11", "12", "13", "14", "15", "16", "17", "18", "19", "20",
	"21", "22", "23", "24", "25", "26", "27", "28", "29", "30",
}

var positions = func() map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}()

// Lowest and Highest bound the domain.
const (
	Lowest  = "0"
	Highest = "30"
)

// Labels returns a copy of the full domain in ascending order.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Position returns the index of label in the domain.
func Position(label string) (int, bool) {
	i, ok := positions[label]
	return i, ok
}

// Valid reports whether label belongs to the domain.
func Valid(label string) bool {
	_, ok := positions[label]
	return ok
}

// Range returns the contiguous labels from min to max inclusive.
// A nil min starts at Lowest, a nil max ends at Highest.
//
// Returns an ir.ErrInvalidChallengeRating FilterError if a bound is not in
// the domain or if min sorts after max.
func Range(min, max *string) ([]string, error) {
	lo, hi := 0, len(labels)-1

	if min != nil {
		i, ok := positions[*min]
		if !ok {
			return nil, ir.NewInvalidChallengeRatingError(*min, "minimum is not a challenge rating")
		}
		lo = i
	}
	if max != nil {
		i, ok := positions[*max]
		if !ok {
			return nil, ir.NewInvalidChallengeRatingError(*max, "maximum is not a challenge rating")
		}
		hi = i
	}
	if lo > hi {
		return nil, ir.NewInvalidChallengeRatingError(labels[lo]+" > "+labels[hi], "minimum is above maximum")
	}

	out := make([]string, hi-lo+1)
	copy(out, labels[lo:hi+1])
	return out, nil
}

// Sort orders labels by domain position in place. Labels outside the domain
// go last, in lexicographic order.
func Sort(ls []string) {
	sort.SliceStable(ls, func(i, j int) bool {
		pi, iok := positions[ls[i]]
		pj, jok := positions[ls[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return ls[i] < ls[j]
		}
	})
}
