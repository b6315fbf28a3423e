package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
)

// SignInAnonymous creates a throwaway identity so visitors can save and
// like without registering.
func SignInAnonymous(users signUpUserCreator, tokens tokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := &domain.User{
			ID:        uuid.NewString(),
			Provider:  domain.ProviderAnonymous,
			CreatedAt: time.Now(),
		}

		if err := users.Create(c.Request.Context(), user); err != nil {
			slog.ErrorContext(c.Request.Context(), "creating anonymous user", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		issueSession(c, tokens, user)
	}
}
