package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finddreams/find-dreams/pkg/auth"
	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
)

type signUpUserCreator interface {
	Create(ctx context.Context, user *domain.User) error
}

type tokenIssuer interface {
	Issue(session auth.Session) (string, error)
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignUp(users signUpUserCreator, tokens tokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "please fill in all fields"})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "hashing password", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}

		user := &domain.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			PasswordHash: hash,
			Provider:     domain.ProviderPassword,
			CreatedAt:    time.Now(),
		}

		if err := users.Create(c.Request.Context(), user); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
				return
			}
			slog.ErrorContext(c.Request.Context(), "creating user", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}

		issueSession(c, tokens, user)
	}
}

// issueSession signs a token for user and writes the shared auth response.
func issueSession(c *gin.Context, tokens tokenIssuer, user *domain.User) {
	token, err := tokens.Issue(auth.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Anonymous: user.IsAnonymous(),
	})
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "issuing token", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"user_id":      user.ID,
		"email":        user.Email,
		"display_name": user.Label(),
		"anonymous":    user.IsAnonymous(),
	})
}
