package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondErrorUnauthenticated(t *testing.T) {
	w := respond(auth.ErrNotAuthenticated)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "usuário não autenticado")
}

func TestRespondErrorKeepsBackendStatus(t *testing.T) {
	w := respond(&supabase.Error{Status: http.StatusNotFound, Message: "Not found"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not found")
}

func TestRespondErrorClampsBogusBackendStatus(t *testing.T) {
	w := respond(&supabase.Error{Status: 0, Message: "weird"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRespondErrorDefaultsToInternal(t *testing.T) {
	w := respond(errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "disk on fire")
}
