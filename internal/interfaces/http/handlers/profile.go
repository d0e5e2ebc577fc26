// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lojamaq/storefront/internal/domain/profile"
	"github.com/lojamaq/storefront/internal/interfaces/http/middleware"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	profileService *profile.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile handles GET /profile. Unauthenticated callers get a null
// profile, not an error.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profileService.Get(c.Request.Context(), middleware.GetToken(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": p,
	})
}

// UpdateProfile handles PUT /profile. The body is a free-form field map so
// partial updates send only what changed.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No fields to update",
		})
		return
	}

	// The row identity is the auth identity; never let the body change it
	delete(fields, "id")

	updated, err := h.profileService.Update(c.Request.Context(), middleware.GetToken(c), fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Perfil atualizado",
		"data":    updated,
	})
}
