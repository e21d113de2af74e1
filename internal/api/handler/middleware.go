package handler

import (
	"errors"
	"net/http"

	"github.com/kangmariz/barangay-complaint-corner/internal/auth"
	"github.com/kangmariz/barangay-complaint-corner/internal/complaint"
	"github.com/kangmariz/barangay-complaint-corner/internal/models"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// AuthRequired resolves the Bearer token to a user and stores it in the
// request context. Requests without a live session are rejected here.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		user, err := h.Auth.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}

// currentUser returns the user placed in the context by AuthRequired.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// respondError maps service errors onto HTTP statuses. Every failure gets
// a specific message; the generic 500 is reserved for storage trouble.
func respondError(c *gin.Context, err error) {
	var vErr *complaint.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, complaint.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, complaint.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to do that"})
	case errors.Is(err, complaint.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}
