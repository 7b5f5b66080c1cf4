package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/services"
)

// ReferenceController serves plain CRUD for one reference table such as
// drivers or trucks.
type ReferenceController[T any] struct {
	svc    services.ReferenceService[T]
	entity string
}

func NewReferenceController[T any](svc services.ReferenceService[T], entity string) *ReferenceController[T] {
	return &ReferenceController[T]{svc: svc, entity: entity}
}

func (rc *ReferenceController[T]) List(c *gin.Context) {
	rows, err := rc.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, "List"+rc.entity, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (rc *ReferenceController[T]) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	row, err := rc.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Get"+rc.entity, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// activatable rows are created active unless the body says otherwise.
type activatable interface {
	SetActive(on bool)
}

func (rc *ReferenceController[T]) Create(c *gin.Context) {
	var input T
	if a, ok := any(&input).(activatable); ok {
		a.SetActive(true)
	}
	if !bindJSON(c, &input) {
		return
	}
	if err := rc.svc.Create(c.Request.Context(), &input); err != nil {
		respondError(c, "Create"+rc.entity, err)
		return
	}
	c.JSON(http.StatusCreated, input)
}

// Update replaces the row; omitted fields are reset to their zero value.
func (rc *ReferenceController[T]) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input T
	if !bindJSON(c, &input) {
		return
	}
	if err := rc.svc.Update(c.Request.Context(), id, &input); err != nil {
		respondError(c, "Update"+rc.entity, err)
		return
	}
	c.JSON(http.StatusOK, input)
}

func (rc *ReferenceController[T]) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rc.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Delete"+rc.entity, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": rc.entity + " deleted"})
}
