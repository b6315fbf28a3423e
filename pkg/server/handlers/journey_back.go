package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finddreams/find-dreams/pkg/domain"
)

// PreviousQuestion steps the journey back one question; at the first
// question it leaves the journey unchanged.
func PreviousQuestion(journeys journeyProvider) gin.HandlerFunc {
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

		journey.Retreat()
		c.JSON(http.StatusOK, journeyState(journey))
	}
}
