package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
	"github.com/finddreams/find-dreams/pkg/server/middleware"
)

type ownerImageLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.GalleryImage, error)
}

// ListMyImages returns every record owned by the authenticated user.
func ListMyImages(images ownerImageLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		mine, err := images.ListByOwner(c.Request.Context(), session.UserID)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "loading owner images", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load your images"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"images": lo.Map(mine, func(img *domain.GalleryImage, _ int) gin.H {
				return imageJSON(img, session.UserID)
			}),
		})
	}
}
