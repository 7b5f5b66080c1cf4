package routes

import (
	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/controllers"
	"truck_dispatch/internal/models"
	"truck_dispatch/internal/services"
)

// DriverRoutes registers drivers, dispatchers and divisions.
func DriverRoutes(r *gin.RouterGroup, svc *services.Services) {
	drivers := r.Group("/drivers")
	referenceRoutes(drivers, controllers.NewReferenceController[models.Driver](svc.Drivers, "Driver"))
	drivers.GET("/:id/previous-route", controllers.NewRouteController(svc.Routes).PreviousRoute)

	referenceRoutes(r.Group("/dispatchers"), controllers.NewReferenceController[models.Dispatcher](svc.Dispatchers, "Dispatcher"))
	referenceRoutes(r.Group("/divisions"), controllers.NewReferenceController[models.Division](svc.Divisions, "Division"))
}

// referenceRoutes mounts list/get for everyone and writes for dispatchers.
func referenceRoutes[T any](g *gin.RouterGroup, rc *controllers.ReferenceController[T]) {
	g.GET("", rc.List)
	g.GET("/:id", rc.Get)
	g.POST("", writers(), rc.Create)
	g.PUT("/:id", writers(), rc.Update)
	g.DELETE("/:id", writers(), rc.Delete)
}
