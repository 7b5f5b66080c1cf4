package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"truck_dispatch/internal/services"
)

type ZipController struct {
	zips services.ZipService
}

func NewZipController(zips services.ZipService) *ZipController {
	return &ZipController{zips: zips}
}

// LookupZip resolves a ZIP from the cache or the bundled table.
func (zc *ZipController) LookupZip(c *gin.Context) {
	loc, err := zc.zips.Lookup(c.Request.Context(), c.Param("zip"))
	if err != nil {
		respondError(c, "LookupZip", err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (zc *ZipController) SaveZip(c *gin.Context) {
	var input services.ZipInput
	if !bindJSON(c, &input) {
		return
	}
	zip, err := zc.zips.Save(c.Request.Context(), input)
	if err != nil {
		respondError(c, "SaveZip", err)
		return
	}
	c.JSON(http.StatusOK, zip)
}

// CalculateMileage estimates the distance between two ZIPs.
func (zc *ZipController) CalculateMileage(c *gin.Context) {
	var body struct {
		PickupZip   string `json:"pickup_zip"`
		DeliveryZip string `json:"delivery_zip"`
	}
	if !bindJSON(c, &body) {
		return
	}
	est, err := zc.zips.Mileage(c.Request.Context(), body.PickupZip, body.DeliveryZip)
	if err != nil {
		respondError(c, "CalculateMileage", err)
		return
	}
	c.JSON(http.StatusOK, est)
}
