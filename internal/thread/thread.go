// Package thread assembles the flat comment list of a post into a two-level
// display structure: top-level comments, each followed by its direct replies.
package thread

import "itinfo/internal/models"

// Group is one top-level comment and its direct replies, both in creation order.
type Group struct {
	Comment *models.Comment   `json:"comment"`
	Replies []*models.Comment `json:"replies"`
}

// Assemble partitions comments into groups.
//
// The input is expected in creation order but parents are not required to
// precede their replies. A reply whose parent is not a top-level comment of the
// input is dropped; that covers dangling references and replies to replies.
// The input slice and its elements are not modified.
func Assemble(comments []*models.Comment) []Group {
	groups := make([]Group, 0, len(comments))
	index := make(map[uint]int, len(comments))

	for _, c := range comments {
		if c == nil || !c.IsTopLevel() {
			continue
		}
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = len(groups)
		groups = append(groups, Group{Comment: c, Replies: []*models.Comment{}})
	}

	for _, c := range comments {
		if c == nil || c.IsTopLevel() {
			continue
		}
		if i, ok := index[*c.ParentCommentID]; ok {
			groups[i].Replies = append(groups[i].Replies, c)
		}
	}

	return groups
}

// Dropped returns the replies Assemble excludes, in input order.
func Dropped(comments []*models.Comment) []*models.Comment {
	top := make(map[uint]struct{}, len(comments))
	for _, c := range comments {
		if c != nil && c.IsTopLevel() {
			top[c.ID] = struct{}{}
		}
	}

	var dropped []*models.Comment
	for _, c := range comments {
		if c == nil || c.IsTopLevel() {
			continue
		}
		if _, ok := top[*c.ParentCommentID]; !ok {
			dropped = append(dropped, c)
		}
	}
	return dropped
}

// Size returns the number of comments visible in groups.
func Size(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += 1 + len(g.Replies)
	}
	return n
}
