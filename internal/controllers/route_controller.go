package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/models"
	"truck_dispatch/internal/repository"
	"truck_dispatch/internal/services"
)

type RouteController struct {
	routes services.RouteService
}

func NewRouteController(routes services.RouteService) *RouteController {
	return &RouteController{routes: routes}
}

// routeFilter reads the list filters shared by ListRoutes and Earnings.
func routeFilter(c *gin.Context) (repository.RouteFilter, bool) {
	var f repository.RouteFilter
	var ok bool
	if f.DriverID, ok = queryUint(c, "driver_id"); !ok {
		return f, false
	}
	if f.DivisionID, ok = queryUint(c, "division_id"); !ok {
		return f, false
	}
	if f.StartDate, ok = queryDate(c, "start_date"); !ok {
		return f, false
	}
	if f.EndDate, ok = queryDate(c, "end_date"); !ok {
		return f, false
	}
	f.Status = strings.TrimSpace(c.Query("status"))
	return f, true
}

// ListRoutes returns routes filtered by driver, division, status and date range.
func (rc *RouteController) ListRoutes(c *gin.Context) {
	f, ok := routeFilter(c)
	if !ok {
		return
	}
	routes, err := rc.routes.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, "ListRoutes", err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GetRoute returns a route with its comments and audit history.
func (rc *RouteController) GetRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	route, err := rc.routes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetRoute", err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (rc *RouteController) CreateRoute(c *gin.Context) {
	var input services.RouteInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserName = actorName(c, input.UserName)

	route, err := rc.routes.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, "CreateRoute", err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (rc *RouteController) UpdateRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.RouteInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserName = actorName(c, input.UserName)

	route, err := rc.routes.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, "UpdateRoute", err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// DeleteRoute removes a route after recording its final state. The body may
// carry user_name.
func (rc *RouteController) DeleteRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		UserName string `json:"user_name"`
	}
	if !bindOptionalJSON(c, &body) {
		return
	}

	if err := rc.routes.Delete(c.Request.Context(), id, actorName(c, body.UserName)); err != nil {
		respondError(c, "DeleteRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted"})
}

func (rc *RouteController) AddComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Text     string `json:"text"`
		UserName string `json:"user_name"`
	}
	if !bindJSON(c, &body) {
		return
	}

	comment, err := rc.routes.AddComment(c.Request.Context(), id, body.Text, actorName(c, body.UserName))
	if err != nil {
		respondError(c, "AddComment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListAudits returns the change history of a route, deleted or not.
func (rc *RouteController) ListAudits(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	audits, err := rc.routes.Audits(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ListAudits", err)
		return
	}
	c.JSON(http.StatusOK, audits)
}

func (rc *RouteController) Earnings(c *gin.Context) {
	f, ok := routeFilter(c)
	if !ok {
		return
	}
	summary, err := rc.routes.Earnings(c.Request.Context(), f)
	if err != nil {
		respondError(c, "Earnings", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PreviousRoute suggests the route a driver ran most recently before the
// given date, for routes in the "Driving previous route" status.
func (rc *RouteController) PreviousRoute(c *gin.Context) {
	driverID, ok := parseID(c, "id")
	if !ok {
		return
	}
	before, ok := queryDate(c, "before")
	if !ok {
		return
	}
	var day models.Date
	if before != nil {
		day = *before
	}

	route, err := rc.routes.PreviousRoute(c.Request.Context(), driverID, day)
	if err != nil {
		respondError(c, "PreviousRoute", err)
		return
	}
	c.JSON(http.StatusOK, route)
}
