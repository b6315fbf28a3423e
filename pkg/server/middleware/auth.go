package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finddreams/find-dreams/pkg/auth"
)

const sessionKey = "session"

type tokenVerifier interface {
	Verify(tokenString string) (auth.Session, error)
}

// Auth populates the request session from a bearer token when one is
// present. It never rejects: write operations enforce the session
// themselves via SessionFromContext.
func Auth(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if session, err := tokens.Verify(parts[1]); err == nil {
				c.Set(sessionKey, session)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests that carry no valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func SessionFromContext(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return auth.Session{}, false
	}
	session, ok := v.(auth.Session)
	return session, ok
}
