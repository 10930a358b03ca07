package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbbarber/barber-booking-backend/internal/auth"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthHandler exchanges the shop admin password for a short-lived access
// token. There are no user accounts here: parties are identified by the
// opaque IDs the conversational front-end supplies, and the only protected
// surface is the admin one.
type AuthHandler struct {
	passwordHash string
	hasher       auth.PasswordHasher
	jwtManager   *auth.JWTManager
}

func NewAuthHandler(passwordHash string, hasher auth.PasswordHasher, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		passwordHash: passwordHash,
		hasher:       hasher,
		jwtManager:   jwtManager,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.hasher.Compare(h.passwordHash, body.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.jwtManager.GenerateAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{AccessToken: token})
}
