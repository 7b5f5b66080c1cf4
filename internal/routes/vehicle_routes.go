package routes

import (
	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/controllers"
	"truck_dispatch/internal/models"
	"truck_dispatch/internal/services"
)

// VehicleRoutes registers trucks and trailers.
func VehicleRoutes(r *gin.RouterGroup, svc *services.Services) {
	referenceRoutes(r.Group("/trucks"), controllers.NewReferenceController[models.Truck](svc.Trucks, "Truck"))
	referenceRoutes(r.Group("/trailers"), controllers.NewReferenceController[models.Trailer](svc.Trailers, "Trailer"))
}
