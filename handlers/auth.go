package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/postdigester/donation-backend/internal/config"
	"github.com/postdigester/donation-backend/internal/tokens"
	"github.com/postdigester/donation-backend/internal/users"
	"github.com/postdigester/donation-backend/pkg/logger"
	"github.com/postdigester/donation-backend/pkg/middleware"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Image    string `json:"image"`
}

// LoginRequest has no required fields: a missing email or password is just a
// failed login and answers 401 like any other bad credential.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u}
}

// Register mounts /register and /login on rg (normally /api/v1).
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/register", h.SignUp)
	rg.POST("/login", h.Login)
}

// RegisterProfile mounts /me behind bearer token verification. Extra
// middleware (e.g. a rate limiter) runs after authentication, so it sees the
// caller's email.
func (h *AuthHandler) RegisterProfile(rg *gin.RouterGroup, ver middleware.Verifier, mw ...gin.HandlerFunc) {
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(ver)}, mw...)
	chain = append(chain, h.Me)
	rg.GET("/me", chain...)
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	_, err := h.usersSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Image)
	if errors.Is(err, users.ErrUserExists) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists"})
		return
	}
	if err != nil {
		logger.Errorf("register %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "request body must be a JSON object"})
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}
	if err != nil {
		logger.Errorf("login %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}
	token, err := tokens.GenerateAccessToken(h.cfg, u, h.cfg.JWT.ExpiresIn)
	if err != nil {
		logger.Errorf("sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "token": token})
}

// Me returns the profile of the user named by the token's email claim.
func (h *AuthHandler) Me(c *gin.Context) {
	email := c.GetString("email")
	u, err := h.usersSvc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		logger.Errorf("me %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "user lookup failed"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}
