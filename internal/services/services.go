package services

import (
	"truck_dispatch/internal/geo"
	"truck_dispatch/internal/models"
	"truck_dispatch/internal/repository"
)

// Services is the aggregate entry point to every service.
type Services struct {
	Routes        RouteService
	RouteStatuses RouteStatusService
	WeeklyRoutes  WeeklyRouteService
	Users         UserService

	Drivers     ReferenceService[models.Driver]
	Dispatchers ReferenceService[models.Dispatcher]
	Trucks      ReferenceService[models.Truck]
	Trailers    ReferenceService[models.Trailer]
	Divisions   ReferenceService[models.Division]
	Zips        ZipService
}

func New(store repository.Store) *Services {
	resolver := geo.NewResolver(store.ZipCodes())
	estimator := geo.NewEstimator(resolver)

	return &Services{
		Routes:        NewRouteService(store, resolver, estimator),
		RouteStatuses: NewRouteStatusService(store),
		WeeklyRoutes:  NewWeeklyRouteService(store),
		Users:         NewUserService(store),

		Drivers: NewReferenceService[models.Driver, *models.Driver](store, "Driver",
			func(s repository.Store) repository.CrudRepository[models.Driver] { return s.Drivers() }),
		Dispatchers: NewReferenceService[models.Dispatcher, *models.Dispatcher](store, "Dispatcher",
			func(s repository.Store) repository.CrudRepository[models.Dispatcher] { return s.Dispatchers() }),
		Trucks: NewReferenceService[models.Truck, *models.Truck](store, "Truck",
			func(s repository.Store) repository.CrudRepository[models.Truck] { return s.Trucks() }),
		Trailers: NewReferenceService[models.Trailer, *models.Trailer](store, "Trailer",
			func(s repository.Store) repository.CrudRepository[models.Trailer] { return s.Trailers() }),
		Divisions: NewReferenceService[models.Division, *models.Division](store, "Division",
			func(s repository.Store) repository.CrudRepository[models.Division] { return s.Divisions() }),
		Zips: NewZipService(resolver, estimator),
	}
}
