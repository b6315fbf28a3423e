package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/wizard"
)

type journeyProvider interface {
	Get(id string) (*wizard.Journey, error)
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// AnswerQuestion records the answer for the journey's current question
// and advances it; the fifth answer finalizes the journey and exposes the
// composed seed prompt.
func AnswerQuestion(journeys journeyProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		journey, err := journeys.Get(c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "journey not found or expired"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load journey"})
			return
		}

		var req answerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if err := journey.Advance(req.Answer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, journeyState(journey))
	}
}
