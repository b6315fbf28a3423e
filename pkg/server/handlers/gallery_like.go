package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
	"github.com/finddreams/find-dreams/pkg/server/middleware"
)

type likeToggler interface {
	ToggleLike(ctx context.Context, imageID, userID string) (liked bool, likes int, err error)
}

// ToggleLike likes a record the user hasn't liked yet and unlikes one
// they have. The repository performs the toggle atomically.
func ToggleLike(images likeToggler, cache cacheFlusher) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to like images"})
			return
		}

		liked, likes, err := images.ToggleLike(c.Request.Context(), c.Param("id"), session.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
				return
			}
			slog.ErrorContext(c.Request.Context(), "toggling like", logger.Err(err), "imageID", c.Param("id"))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like image"})
			return
		}

		cache.Flush()

		c.JSON(http.StatusOK, gin.H{
			"liked": liked,
			"likes": likes,
		})
	}
}
