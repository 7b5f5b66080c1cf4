package routes

import (
	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/controllers"
	"truck_dispatch/internal/middleware"
	"truck_dispatch/internal/services"
)

// Options carries the HTTP settings taken from config.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
}

// SetupRouter builds the engine. Everything under /api except login needs
// a bearer token.
func SetupRouter(svc *services.Services, db controllers.Pinger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.GET("/health", controllers.NewHealthController(db, opts.ServiceName).Health)

	api := r.Group("/api")
	AuthRoutes(api, svc)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())
	DispatchRoutes(protected, svc)
	DriverRoutes(protected, svc)
	VehicleRoutes(protected, svc)
	ZipRoutes(protected, svc)
	AdminRoutes(protected, svc)

	return r
}

// writers may change dispatch data; viewers only read.
func writers() gin.HandlerFunc {
	return middleware.RequireRole(services.RoleAdmin, services.RoleDispatcher)
}
