package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/middlewares"
	"github.com/myhuemungusD/skatehubbamvp/services"
	"github.com/myhuemungusD/skatehubbamvp/utils"
)

// AuthController handles signup and login, issuing JWTs that carry the
// user's uid and stored roles.
type AuthController struct {
	users         *services.UserService
	jwtSecret     string
	expiryMinutes int
}

func NewAuthController(users *services.UserService, jwtSecret string, expiryMinutes int) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret, expiryMinutes: expiryMinutes}
}

type signUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a new account and returns a token.
func (ctrl *AuthController) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := ctrl.users.Create(c, req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateToken(ctrl.jwtSecret, user.UID, user.Roles, ctrl.expiryMinutes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login authenticates an existing account and returns a token.
func (ctrl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := ctrl.users.Authenticate(c, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// Heal profiles created before the stats block existed.
	if err := ctrl.users.EnsureProfile(c, user.UID, user.Email, user.DisplayName); err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateToken(ctrl.jwtSecret, user.UID, user.Roles, ctrl.expiryMinutes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Profile returns the authenticated user's profile.
func (ctrl *AuthController) Profile(c *gin.Context) {
	user, err := ctrl.users.Get(c, middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
