package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger checks that the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db      Pinger
	service string
}

func NewHealthController(db Pinger, service string) *HealthController {
	return &HealthController{db: db, service: service}
}

func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hc.db.Ping(ctx); err != nil {
		logrus.WithError(err).Error("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": hc.service, "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": hc.service, "database": "up"})
}
