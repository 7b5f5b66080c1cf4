package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/repository"
	"truck_dispatch/internal/services"
)

type WeeklyRouteController struct {
	weeks services.WeeklyRouteService
}

func NewWeeklyRouteController(weeks services.WeeklyRouteService) *WeeklyRouteController {
	return &WeeklyRouteController{weeks: weeks}
}

// ListWeeklyRoutes returns weekly routes overlapping start_date..end_date,
// optionally narrowed by driver, division and dispatcher.
func (wc *WeeklyRouteController) ListWeeklyRoutes(c *gin.Context) {
	var f repository.WeeklyRouteFilter
	var ok bool
	if f.StartDate, ok = queryDate(c, "start_date"); !ok {
		return
	}
	if f.EndDate, ok = queryDate(c, "end_date"); !ok {
		return
	}
	if f.DriverID, ok = queryUint(c, "driver_id"); !ok {
		return
	}
	if f.DivisionID, ok = queryUint(c, "division_id"); !ok {
		return
	}
	if f.DispatcherID, ok = queryUint(c, "dispatcher_id"); !ok {
		return
	}

	weeks, err := wc.weeks.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, "ListWeeklyRoutes", err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}

func (wc *WeeklyRouteController) GetWeeklyRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	week, err := wc.weeks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetWeeklyRoute", err)
		return
	}
	c.JSON(http.StatusOK, week)
}

func (wc *WeeklyRouteController) CreateWeeklyRoute(c *gin.Context) {
	var input services.WeeklyRouteInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserName = actorName(c, input.UserName)

	week, err := wc.weeks.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, "CreateWeeklyRoute", err)
		return
	}
	c.JSON(http.StatusCreated, week)
}

func (wc *WeeklyRouteController) UpdateWeeklyRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.WeeklyRouteInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserName = actorName(c, input.UserName)

	week, err := wc.weeks.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, "UpdateWeeklyRoute", err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// AttachRoute places a route on a day of the week.
func (wc *WeeklyRouteController) AttachRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.AttachRouteInput
	if !bindJSON(c, &input) {
		return
	}
	input.UserName = actorName(c, input.UserName)

	detail, err := wc.weeks.AttachRoute(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, "AttachRoute", err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (wc *WeeklyRouteController) DetachRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detailID, ok := parseID(c, "detail_id")
	if !ok {
		return
	}
	var body struct {
		UserName string `json:"user_name"`
	}
	if !bindOptionalJSON(c, &body) {
		return
	}

	detail, err := wc.weeks.DetachRoute(c.Request.Context(), id, detailID, actorName(c, body.UserName))
	if err != nil {
		respondError(c, "DetachRoute", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
