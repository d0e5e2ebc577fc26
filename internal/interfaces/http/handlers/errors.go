// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

// respondError maps facade errors onto HTTP responses: the unauthenticated
// precondition becomes 401, backend errors keep their status, anything else
// is a 500
func respondError(c *gin.Context, err error) {
	if errors.Is(err, auth.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": auth.ErrNotAuthenticated.Error(),
		})
		return
	}

	var backendErr *supabase.Error
	if errors.As(err, &backendErr) {
		status := backendErr.Status
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"error": backendErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
