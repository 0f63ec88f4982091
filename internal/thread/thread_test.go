package thread

import (
	"testing"
	"time"

	"itinfo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id uint) *uint { return &id }

func comment(id uint, parent *uint) *models.Comment {
	return &models.Comment{
		ID:              id,
		PostID:          1,
		Content:         "c",
		ParentCommentID: parent,
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, int(id), 0, time.UTC),
	}
}

func ids(cs []*models.Comment) []uint {
	out := make([]uint, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestAssemble_Scenario(t *testing.T) {
	t.Parallel()

	in := []*models.Comment{
		comment(1, nil),
		comment(2, ptr(1)),
		comment(3, nil),
		comment(4, ptr(99)),
	}

	groups := Assemble(in)
	require.Len(t, groups, 2)
	assert.Equal(t, uint(1), groups[0].Comment.ID)
	assert.Equal(t, []uint{2}, ids(groups[0].Replies))
	assert.Equal(t, uint(3), groups[1].Comment.ID)
	assert.Empty(t, groups[1].Replies)
	assert.NotNil(t, groups[1].Replies)

	assert.Equal(t, []uint{4}, ids(Dropped(in)))
	assert.Equal(t, 3, Size(groups))
}

func TestAssemble_Boundaries(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		groups := Assemble(nil)
		assert.NotNil(t, groups)
		assert.Empty(t, groups)
	})

	t.Run("only top-level comments", func(t *testing.T) {
		t.Parallel()
		groups := Assemble([]*models.Comment{comment(1, nil), comment(2, nil), comment(3, nil)})
		require.Len(t, groups, 3)
		for i, g := range groups {
			assert.Equal(t, uint(i+1), g.Comment.ID)
			assert.Empty(t, g.Replies)
		}
	})

	t.Run("dangling reply appears nowhere", func(t *testing.T) {
		t.Parallel()
		groups := Assemble([]*models.Comment{comment(5, ptr(42))})
		assert.Empty(t, groups)
	})
}

func TestAssemble_ReplyBeforeParent(t *testing.T) {
	t.Parallel()

	// Timestamp order does not guarantee the parent comes first.
	in := []*models.Comment{
		comment(10, ptr(11)),
		comment(11, nil),
		comment(12, ptr(11)),
	}

	groups := Assemble(in)
	require.Len(t, groups, 1)
	assert.Equal(t, uint(11), groups[0].Comment.ID)
	assert.Equal(t, []uint{10, 12}, ids(groups[0].Replies))
}

func TestAssemble_ReplyToReplyIsDropped(t *testing.T) {
	t.Parallel()

	in := []*models.Comment{
		comment(1, nil),
		comment(2, ptr(1)),
		comment(3, ptr(2)),
	}

	groups := Assemble(in)
	require.Len(t, groups, 1)
	assert.Equal(t, []uint{2}, ids(groups[0].Replies))
	assert.Equal(t, []uint{3}, ids(Dropped(in)))
}

func TestAssemble_Properties(t *testing.T) {
	t.Parallel()

	in := []*models.Comment{
		comment(1, nil),
		comment(2, nil),
		comment(3, ptr(2)),
		comment(4, ptr(1)),
		comment(5, ptr(2)),
		comment(6, ptr(7)),
		comment(8, nil),
		comment(9, ptr(3)),
	}
	before := make([]models.Comment, len(in))
	for i, c := range in {
		before[i] = *c
	}

	groups := Assemble(in)

	t.Run("replies are exactly the matching children", func(t *testing.T) {
		for _, g := range groups {
			var want []uint
			for _, c := range in {
				if c.ParentCommentID != nil && *c.ParentCommentID == g.Comment.ID {
					want = append(want, c.ID)
				}
			}
			if want == nil {
				want = []uint{}
			}
			assert.Equal(t, want, ids(g.Replies))
		}
	})

	t.Run("group order follows input", func(t *testing.T) {
		var got []uint
		for _, g := range groups {
			got = append(got, g.Comment.ID)
		}
		assert.Equal(t, []uint{1, 2, 8}, got)
	})

	t.Run("input is untouched", func(t *testing.T) {
		for i, c := range in {
			assert.Equal(t, before[i], *c)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, groups, Assemble(in))
	})

	t.Run("visible plus dropped covers input", func(t *testing.T) {
		assert.Equal(t, len(in), Size(groups)+len(Dropped(in)))
	})
}
