package geo

import (
	"encoding/json"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"truck_dispatch/internal/models"
)

// PointGeoJSON renders the coordinates of z as a GeoJSON Point. It returns
// nil when z has no coordinates.
func PointGeoJSON(z *models.ZipCode) (json.RawMessage, error) {
	if !z.HasCoordinates() {
		return nil, nil
	}
	p, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{*z.Longitude, *z.Latitude})
	if err != nil {
		return nil, err
	}
	b, err := gjson.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
