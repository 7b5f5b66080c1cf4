package routes

import (
	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/controllers"
	"truck_dispatch/internal/middleware"
	"truck_dispatch/internal/services"
)

// DispatchRoutes registers routes, weekly routes and the status catalog.
func DispatchRoutes(r *gin.RouterGroup, svc *services.Services) {
	rc := controllers.NewRouteController(svc.Routes)
	routes := r.Group("/routes")
	{
		routes.GET("", rc.ListRoutes)
		routes.GET("/earnings", rc.Earnings)
		routes.GET("/:id", rc.GetRoute)
		routes.GET("/:id/audits", rc.ListAudits)
		routes.POST("", writers(), rc.CreateRoute)
		routes.PUT("/:id", writers(), rc.UpdateRoute)
		routes.DELETE("/:id", writers(), rc.DeleteRoute)
		routes.POST("/:id/comments", writers(), rc.AddComment)
	}

	wc := controllers.NewWeeklyRouteController(svc.WeeklyRoutes)
	weekly := r.Group("/weekly-routes")
	{
		weekly.GET("", wc.ListWeeklyRoutes)
		weekly.GET("/:id", wc.GetWeeklyRoute)
		weekly.POST("", writers(), wc.CreateWeeklyRoute)
		weekly.PUT("/:id", writers(), wc.UpdateWeeklyRoute)
		weekly.POST("/:id/routes", writers(), wc.AttachRoute)
		weekly.DELETE("/:id/routes/:detail_id", writers(), wc.DetachRoute)
	}

	sc := controllers.NewRouteStatusController(svc.RouteStatuses)
	statuses := r.Group("/route-statuses")
	{
		statuses.GET("", sc.ListStatuses)
		admin := statuses.Group("", middleware.RequireRole(services.RoleAdmin))
		admin.POST("", sc.CreateStatus)
		admin.PUT("/:id", sc.UpdateStatus)
		admin.DELETE("/:id", sc.DeleteStatus)
		admin.POST("/:id/default", sc.SetDefault)
		admin.POST("/:id/move", sc.MoveStatus)
	}
}
