package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
)

type PromptEnhancer interface {
	EnhancePrompt(ctx context.Context, model, seed string) (string, error)
}

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, model string) (string, error)
}

type generateImageRequest struct {
	Prompt    string `json:"prompt"`
	Model     string `json:"model"`
	JourneyID string `json:"journey_id"`
}

// GenerateImage runs the pipeline: resolve the seed prompt (journey or
// free text), best-effort enhancement, then image generation. Enhancement
// failures never block generation; generation failures halt the request.
func GenerateImage(
	journeys journeyProvider,
	enhancer PromptEnhancer,
	chatModel string,
	images imageGenerator,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		seed := strings.TrimSpace(req.Prompt)
		if req.JourneyID != "" {
			journey, err := journeys.Get(req.JourneyID)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "journey not found or expired"})
				return
			}
			if !journey.Finalized() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "journey has unanswered questions"})
				return
			}
			seed = journey.SeedPrompt()
		}

		if seed == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prompt cannot be empty"})
			return
		}

		model := req.Model
		if model == "" {
			model = domain.GeminiFlashModel
		}

		prompt := seed
		enhanced := false
		notice := ""
		if enhancer != nil {
			rewritten, err := enhancer.EnhancePrompt(c.Request.Context(), chatModel, seed)
			if err != nil {
				// Best effort: fall back to the seed prompt.
				slog.WarnContext(c.Request.Context(), "prompt enhancement failed", logger.Err(err))
				notice = "prompt enhancement unavailable, used your prompt as-is"
			} else {
				prompt = rewritten
				enhanced = true
			}
		}

		imageURL, err := images.GenerateImage(c.Request.Context(), prompt, model)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "image generation failed", logger.Err(err), "model", model)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate image, please try again"})
			return
		}

		resp := gin.H{
			"image_url": imageURL,
			"prompt":    prompt,
			"enhanced":  enhanced,
		}
		if notice != "" {
			resp["notice"] = notice
		}
		c.JSON(http.StatusOK, resp)
	}
}
