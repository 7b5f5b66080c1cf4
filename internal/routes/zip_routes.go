package routes

import (
	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/controllers"
	"truck_dispatch/internal/services"
)

func ZipRoutes(r *gin.RouterGroup, svc *services.Services) {
	zc := controllers.NewZipController(svc.Zips)

	r.GET("/zip-codes/:zip", zc.LookupZip)
	r.POST("/zip-codes", writers(), zc.SaveZip)
	r.POST("/calculate-mileage", zc.CalculateMileage)
}
