package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type journeyDeleter interface {
	Delete(id string)
}

// AbandonJourney discards a journey when the user starts over.
func AbandonJourney(journeys journeyDeleter) gin.HandlerFunc {
	return func(c *gin.Context) {
		journeys.Delete(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"status": "journey discarded"})
	}
}
