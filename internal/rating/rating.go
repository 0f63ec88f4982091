// Package rating derives review summaries and ranks products by them.
package rating

import (
	"slices"

	"itinfo/internal/models"
)

// Summary is the derived rating of one product. It is recomputed from the
// current reviews on every read and never persisted.
type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Summarize returns the unweighted mean and count of ratings.
// An empty input yields the zero Summary.
func Summarize(ratings []float64) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return Summary{Average: sum / float64(len(ratings)), Count: len(ratings)}
}

// FromReviews summarizes a product's reviews.
func FromReviews(reviews []*models.Review) Summary {
	ratings := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		if r != nil {
			ratings = append(ratings, r.Rating)
		}
	}
	return Summarize(ratings)
}

// Rank sorts items in place by key, highest first. Equal keys keep their input order.
func Rank[T any](items []T, key func(T) float64) {
	slices.SortStableFunc(items, func(a, b T) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		}
		return 0
	})
}
