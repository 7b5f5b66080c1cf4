package routes

import (
	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/controllers"
	"truck_dispatch/internal/middleware"
	"truck_dispatch/internal/services"
)

// AdminRoutes registers user management, restricted to admins.
func AdminRoutes(r *gin.RouterGroup, svc *services.Services) {
	uc := controllers.NewUserController(svc.Users)

	users := r.Group("/users")
	users.Use(middleware.RequireRole(services.RoleAdmin))
	{
		users.GET("", uc.ListUsers)
		users.POST("", uc.CreateUser)
		users.GET("/:id", uc.GetUser)
		users.PUT("/:id", uc.UpdateUser)
		users.DELETE("/:id", uc.DeactivateUser)
		users.POST("/:id/activate", uc.ActivateUser)
		users.GET("/:id/permissions", uc.GetPermissions)
		users.PUT("/:id/permissions", uc.SetPermissions)
	}
}
