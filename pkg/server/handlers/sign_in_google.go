package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finddreams/find-dreams/pkg/auth"
	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
)

type googleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (auth.GoogleIdentity, error)
}

type googleUserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type signInGoogleRequest struct {
	IDToken string `json:"id_token"`
}

// SignInGoogle exchanges a verified Google ID token for a session,
// creating the federated user on first sign-in.
func SignInGoogle(verifier googleTokenVerifier, users googleUserStore, tokens tokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInGoogleRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id_token is required"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), req.IDToken)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "google token rejected", logger.Err(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), identity.Email)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrNotFound):
			user = &domain.User{
				ID:          uuid.NewString(),
				Email:       identity.Email,
				DisplayName: identity.Name,
				Provider:    domain.ProviderGoogle,
				CreatedAt:   time.Now(),
			}
			if err := users.Create(c.Request.Context(), user); err != nil {
				slog.ErrorContext(c.Request.Context(), "creating federated user", logger.Err(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
				return
			}
		default:
			slog.ErrorContext(c.Request.Context(), "fetching user", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
			return
		}

		issueSession(c, tokens, user)
	}
}
