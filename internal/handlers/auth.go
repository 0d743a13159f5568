package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerebra-app/cerebra-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := ah.authService.RegisterUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "Registered", "username": user.Username})
}

// POST /token (form-encoded, OAuth2 password-flow shape)
func (ah *AuthHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	accessToken, err := ah.authService.LoginUser(c.Request.Context(), username, password)
	if err != nil {
		// Bad credentials answer 400 on the token endpoint; 401 is
		// reserved for protected routes.
		c.JSON(http.StatusBadRequest, gin.H{"error": "incorrect username or password"})
		return
	}
	RespondOK(c, gin.H{"access_token": accessToken, "token_type": "bearer"})
}
