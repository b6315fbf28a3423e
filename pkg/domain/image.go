package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// GalleryImage is one community record: a stored image URL plus the prompt
// that produced it. Likes always equals the size of LikedBy.
type GalleryImage struct {
	ID         string `bun:",pk"`
	Prompt     string
	ImageURL   string
	OwnerID    string
	OwnerEmail string
	Likes      int
	LikedBy    []string `bun:"-"`
	CreatedAt  time.Time
}

func (g *GalleryImage) IsLikedBy(userID string) bool {
	return lo.Contains(g.LikedBy, userID)
}

// ToggleLike adds userID to the liker set, or removes it when already
// present, and re-derives Likes from the set size.
func (g *GalleryImage) ToggleLike(userID string) (liked bool) {
	if g.IsLikedBy(userID) {
		g.LikedBy = lo.Without(g.LikedBy, userID)
	} else {
		g.LikedBy = append(g.LikedBy, userID)
		liked = true
	}
	g.Likes = len(g.LikedBy)
	return liked
}

// MatchesSearch reports whether the record's prompt contains term,
// case-insensitively. An empty term matches everything.
func (g *GalleryImage) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(g.Prompt), strings.ToLower(term))
}

// ImageLike is one row of the liker set.
type ImageLike struct {
	ImageID string `bun:",pk"`
	UserID  string `bun:",pk"`
}
