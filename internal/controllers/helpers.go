package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"truck_dispatch/internal/middleware"
	"truck_dispatch/internal/models"
	"truck_dispatch/internal/services"
)

// respondError maps service errors to status codes. Anything unrecognised
// is a 500 and is logged with op.
func respondError(c *gin.Context, op string, err error) {
	var (
		ve *services.ValidationError
		ne *services.NotFoundError
		ce *services.ConflictError
		de *services.DuplicateError
	)
	_ = c.Error(err)

	switch {
	case errors.As(err, &ve):
		body := gin.H{"error": ve.Error()}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &ne):
		c.JSON(http.StatusNotFound, gin.H{"error": ne.Error()})
	case errors.As(err, &ce):
		c.JSON(http.StatusBadRequest, gin.H{"error": ce.Error()})
	case errors.As(err, &de):
		c.JSON(http.StatusConflict, gin.H{"error": de.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logrus.WithFields(logrus.Fields{
			"op":         op,
			"request_id": c.GetString(middleware.ContextRequestID),
		}).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseID reads a positive numeric path parameter. It writes a 400 and
// returns false when the parameter is malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := cast.ToUintE(c.Param(name))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// queryUint reads an optional numeric query parameter; absent means 0.
func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := cast.ToUintE(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return v, true
}

// queryDate reads an optional YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, name string) (*models.Date, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + ": " + err.Error()})
		return nil, false
	}
	return &d, true
}

// bindJSON binds the body into dst and writes a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints where the body may be empty.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return false
	}
	return true
}

// actorName prefers the name sent with the request and falls back to the
// authenticated user.
func actorName(c *gin.Context, fromBody string) string {
	if name := strings.TrimSpace(fromBody); name != "" {
		return name
	}
	return c.GetString(middleware.ContextUsername)
}
