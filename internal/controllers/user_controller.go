package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/services"
)

type UserController struct {
	users services.UserService
}

func NewUserController(users services.UserService) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondError(c, "ListUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := uc.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetUser", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var input services.UserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := uc.users.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, "CreateUser", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.UserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := uc.users.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, "UpdateUser", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeactivateUser disables the account; the row and its history are kept.
func (uc *UserController) DeactivateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := uc.users.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeactivateUser", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) ActivateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := uc.users.Activate(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ActivateUser", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) GetPermissions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	perms, err := uc.users.Permissions(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetPermissions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permissions": perms})
}

// SetPermissions replaces the user's permission set.
func (uc *UserController) SetPermissions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Permissions []string `json:"permissions"`
	}
	if !bindJSON(c, &body) {
		return
	}
	perms, err := uc.users.SetPermissions(c.Request.Context(), id, body.Permissions)
	if err != nil {
		respondError(c, "SetPermissions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permissions": perms})
}
