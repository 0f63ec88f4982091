package rating

import (
	"testing"

	"itinfo/internal/models"

	"github.com/stretchr/testify/assert"
)

func reviews(ratings ...float64) []*models.Review {
	out := make([]*models.Review, 0, len(ratings))
	for i, r := range ratings {
		out = append(out, &models.Review{ID: uint(i + 1), Rating: r})
	}
	return out
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ratings []float64
		want    Summary
	}{
		{"empty", nil, Summary{Average: 0, Count: 0}},
		{"single fractional", []float64{4.5}, Summary{Average: 4.5, Count: 1}},
		{"three", []float64{5, 3, 4}, Summary{Average: 4.0, Count: 3}},
		{"four", []float64{5, 5, 4, 2}, Summary{Average: 4.0, Count: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Summarize(tt.ratings))
			assert.Equal(t, tt.want, FromReviews(reviews(tt.ratings...)))
		})
	}
}

func TestSummarize_FullPrecision(t *testing.T) {
	t.Parallel()

	s := Summarize([]float64{5, 4, 4})
	assert.InDelta(t, 13.0/3.0, s.Average, 1e-12)
	assert.NotEqual(t, 4.3, s.Average)
}

func TestSummarize_OrderInvariant(t *testing.T) {
	t.Parallel()

	a := Summarize([]float64{1, 2.5, 5, 3})
	b := Summarize([]float64{5, 3, 1, 2.5})
	assert.Equal(t, a, b)
}

type ranked struct {
	name    string
	summary Summary
}

func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("average outranks review count", func(t *testing.T) {
		t.Parallel()
		items := []ranked{
			{"X", Summary{Average: 4.0, Count: 3}},
			{"Y", Summary{Average: 4.5, Count: 1}},
		}
		Rank(items, func(r ranked) float64 { return r.summary.Average })
		assert.Equal(t, "Y", items[0].name)
		assert.Equal(t, "X", items[1].name)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		t.Parallel()
		items := []ranked{
			{"a", Summary{Average: 3}},
			{"b", Summary{Average: 5}},
			{"c", Summary{Average: 3}},
			{"d", Summary{}},
			{"e", Summary{Average: 5}},
		}
		Rank(items, func(r ranked) float64 { return r.summary.Average })
		var names []string
		for _, it := range items {
			names = append(names, it.name)
		}
		assert.Equal(t, []string{"b", "e", "a", "c", "d"}, names)
	})
}
