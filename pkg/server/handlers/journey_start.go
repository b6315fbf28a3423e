package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finddreams/find-dreams/pkg/wizard"
)

type journeySaver interface {
	Save(journey *wizard.Journey)
}

// StartJourney opens a fresh question journey and returns its first step.
func StartJourney(journeys journeySaver) gin.HandlerFunc {
	return func(c *gin.Context) {
		journey := wizard.NewJourney()
		journeys.Save(journey)

		c.JSON(http.StatusCreated, journeyState(journey))
	}
}

// journeyState is the shared journey representation returned by all
// journey endpoints.
func journeyState(j *wizard.Journey) gin.H {
	state := gin.H{
		"journey_id": j.ID,
		"phase":      j.Phase(),
		"total":      len(wizard.Questions),
	}

	if j.Finalized() {
		state["answers"] = j.Answers()
		state["seed_prompt"] = j.SeedPrompt()
		return state
	}

	q := j.Current()
	state["question_index"] = j.Index()
	state["question"] = gin.H{
		"title":    q.Title,
		"subtitle": q.Subtitle,
	}
	return state
}
