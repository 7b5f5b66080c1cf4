package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/services"
)

type RouteStatusController struct {
	statuses services.RouteStatusService
}

func NewRouteStatusController(statuses services.RouteStatusService) *RouteStatusController {
	return &RouteStatusController{statuses: statuses}
}

// ListStatuses returns the catalog in display order.
func (sc *RouteStatusController) ListStatuses(c *gin.Context) {
	statuses, err := sc.statuses.List(c.Request.Context())
	if err != nil {
		respondError(c, "ListStatuses", err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (sc *RouteStatusController) CreateStatus(c *gin.Context) {
	var input services.RouteStatusInput
	if !bindJSON(c, &input) {
		return
	}
	status, err := sc.statuses.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, "CreateStatus", err)
		return
	}
	c.JSON(http.StatusCreated, status)
}

func (sc *RouteStatusController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.RouteStatusInput
	if !bindJSON(c, &input) {
		return
	}
	status, err := sc.statuses.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, "UpdateStatus", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (sc *RouteStatusController) DeleteStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := sc.statuses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route status deleted"})
}

func (sc *RouteStatusController) SetDefault(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	status, err := sc.statuses.SetDefault(c.Request.Context(), id)
	if err != nil {
		respondError(c, "SetDefault", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// MoveStatus swaps a status with its neighbour and returns the new order.
func (sc *RouteStatusController) MoveStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Direction string `json:"direction" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}

	var up bool
	switch strings.ToLower(strings.TrimSpace(body.Direction)) {
	case "up":
		up = true
	case "down":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be \"up\" or \"down\""})
		return
	}

	statuses, err := sc.statuses.Move(c.Request.Context(), id, up)
	if err != nil {
		respondError(c, "MoveStatus", err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}
