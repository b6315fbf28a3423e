package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
	"github.com/finddreams/find-dreams/pkg/server/middleware"
)

const communityCacheKey = "gallery:community"

type imageLister interface {
	ListCommunity(ctx context.Context) ([]*domain.GalleryImage, error)
}

type galleryCache interface {
	Get(k string) (any, bool)
	Set(k string, x any, d time.Duration)
}

// ListGallery returns the community page, newest first, optionally
// filtered by a case-insensitive substring of the prompt. The unfiltered
// page is cached briefly; the filter always runs over the loaded page.
func ListGallery(images imageLister, cache galleryCache) gin.HandlerFunc {
	load := func(ctx context.Context) ([]*domain.GalleryImage, error) {
		if cached, ok := cache.Get(communityCacheKey); ok {
			if page, ok := cached.([]*domain.GalleryImage); ok {
				return page, nil
			}
		}

		page, err := images.ListCommunity(ctx)
		if err != nil {
			return nil, err
		}
		cache.Set(communityCacheKey, page, gocache.DefaultExpiration)
		return page, nil
	}

	return func(c *gin.Context) {
		page, err := load(c.Request.Context())
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "loading community images", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load community images"})
			return
		}

		term := c.Query("q")
		filtered := lo.Filter(page, func(img *domain.GalleryImage, _ int) bool {
			return img.MatchesSearch(term)
		})

		session, _ := middleware.SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"images": lo.Map(filtered, func(img *domain.GalleryImage, _ int) gin.H {
				return imageJSON(img, session.UserID)
			}),
		})
	}
}

func imageJSON(img *domain.GalleryImage, viewerID string) gin.H {
	return gin.H{
		"id":          img.ID,
		"prompt":      img.Prompt,
		"image_url":   img.ImageURL,
		"owner_id":    img.OwnerID,
		"owner_email": img.OwnerEmail,
		"likes":       img.Likes,
		"liked":       viewerID != "" && img.IsLikedBy(viewerID),
		"created_at":  img.CreatedAt,
	}
}
