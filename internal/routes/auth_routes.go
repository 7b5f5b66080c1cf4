package routes

import (
	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/controllers"
	"truck_dispatch/internal/middleware"
	"truck_dispatch/internal/services"
)

func AuthRoutes(r *gin.RouterGroup, svc *services.Services) {
	ac := controllers.NewAuthController(svc.Users)

	auth := r.Group("/auth")
	{
		auth.POST("/login", ac.Login)
		auth.GET("/me", middleware.RequireAuth(), ac.Me)
	}
}
