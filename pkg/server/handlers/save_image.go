package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
	"github.com/finddreams/find-dreams/pkg/server/middleware"
)

type blobUploader interface {
	Upload(ctx context.Context, ownerID string, data []byte) (url, key string, err error)
	Delete(ctx context.Context, key string) error
}

type imageSaver interface {
	Save(ctx context.Context, image *domain.GalleryImage) error
}

type cacheFlusher interface {
	Flush()
}

type saveImageRequest struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
}

// SaveImage is the persistence bridge: fetch the generated image bytes,
// upload them to blob storage, then write the gallery record. The upload
// is rolled back when the record write fails.
func SaveImage(blobs blobUploader, images imageSaver, cache cacheFlusher) gin.HandlerFunc {
	fetchImage := func(ctx context.Context, link string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
		if err != nil {
			return nil, fmt.Errorf("creating HTTP request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching image: unexpected status code: %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	return func(c *gin.Context) {
		session, ok := middleware.SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "you must be logged in to save images"})
			return
		}

		var req saveImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.ImageURL) == "" || strings.TrimSpace(req.Prompt) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image_url and prompt are required"})
			return
		}

		data, err := fetchImage(c.Request.Context(), req.ImageURL)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "downloading generated image", logger.Err(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch the generated image"})
			return
		}

		storageURL, key, err := blobs.Upload(c.Request.Context(), session.UserID, data)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "uploading image to storage", logger.Err(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to upload image to storage"})
			return
		}

		image := &domain.GalleryImage{
			ID:         uuid.NewString(),
			Prompt:     req.Prompt,
			ImageURL:   storageURL,
			OwnerID:    session.UserID,
			OwnerEmail: session.Email,
			CreatedAt:  time.Now(),
		}

		if err := images.Save(c.Request.Context(), image); err != nil {
			// Roll back the upload so no orphaned blob is left behind.
			if delErr := blobs.Delete(c.Request.Context(), key); delErr != nil {
				err = multierror.Append(err, delErr)
			}
			slog.ErrorContext(c.Request.Context(), "saving gallery record", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
			return
		}

		cache.Flush()

		c.JSON(http.StatusCreated, gin.H{
			"id":         image.ID,
			"image_url":  image.ImageURL,
			"prompt":     image.Prompt,
			"created_at": image.CreatedAt,
		})
	}
}
