package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finddreams/find-dreams/pkg/auth"
	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/logger"
)

type signInUserProvider interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignIn(users signInUserProvider, tokens tokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "please fill in all fields"})
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
				return
			}
			slog.ErrorContext(c.Request.Context(), "fetching user", logger.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
			return
		}

		if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
			return
		}

		issueSession(c, tokens, user)
	}
}
