// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lojamaq/storefront/internal/config"
	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
	"github.com/lojamaq/storefront/internal/interfaces/http/middleware"
	"github.com/lojamaq/storefront/internal/pkg/session"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *auth.Service
	sessions    *session.Manager
	config      *config.Config
	log         *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, sessions *session.Manager, cfg *config.Config, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		config:      cfg,
		log:         log,
	}
}

// SignUpRequest is the sign-up payload
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

// SignInRequest is the sign-in payload
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RecoverRequest is the password recovery payload
type RecoverRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}

	// Projects requiring email confirmation return no token yet; the user
	// signs in after confirming
	if sess.AccessToken != "" {
		h.issueCookie(c, sess)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cadastro realizado com sucesso",
		"data":    sess.User,
	})
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.issueCookie(c, sess)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"data":    sess.User,
	})
}

// SignOut handles POST /auth/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	token := middleware.GetToken(c)
	if token != "" {
		if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
			// Backend revocation is best-effort; the local session dies anyway
			h.log.WithError(err).Warn("backend sign-out failed")
		}
	}

	if id := middleware.GetSessionID(c); id != "" {
		if err := h.sessions.Destroy(c.Request.Context(), id); err != nil {
			h.log.WithError(err).Warn("session destroy failed")
		}
	}
	h.clearCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout realizado com sucesso",
	})
}

// Session handles GET /auth/session. Unauthenticated callers get a null
// user, not an error.
func (h *AuthHandler) Session(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), middleware.GetToken(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": user,
	})
}

// Recover handles POST /auth/recover
func (h *AuthHandler) Recover(c *gin.Context) {
	var req RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email de recuperação enviado",
	})
}

func (h *AuthHandler) issueCookie(c *gin.Context, sess *supabase.Session) {
	id, err := h.sessions.Create(c.Request.Context(), session.Data{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		UserID:       sess.User.ID,
		Email:        sess.User.Email,
	})
	if err != nil {
		h.log.WithError(err).Error("session creation failed")
		return
	}

	c.SetCookie(
		h.sessions.CookieName(),
		id,
		int(h.sessions.TTL().Seconds()),
		"/",
		"",
		h.config.Session.CookieSecure,
		true,
	)
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetCookie(h.sessions.CookieName(), "", -1, "/", "", h.config.Session.CookieSecure, true)
}
