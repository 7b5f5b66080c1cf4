package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"truck_dispatch/internal/middleware"
	"truck_dispatch/internal/services"
)

type AuthController struct {
	users services.UserService
}

func NewAuthController(users services.UserService) *AuthController {
	return &AuthController{users: users}
}

func (ac *AuthController) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}

	user, err := ac.users.Authenticate(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		logrus.WithField("username", body.Username).Warn("login rejected")
		respondError(c, "Login", err)
		return
	}

	token, expires, err := middleware.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		respondError(c, "Login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expires,
		"user":       user,
	})
}

// Me returns the authenticated user.
func (ac *AuthController) Me(c *gin.Context) {
	id, _ := c.Get(middleware.ContextUserID)
	userID, ok := id.(uint)
	if !ok || userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	user, err := ac.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Me", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
