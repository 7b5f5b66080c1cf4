package services

import (
	"encoding/json"
	"reflect"
	"time"

	"gorm.io/datatypes"

	"truck_dispatch/internal/models"
)

// trackedFields are the route columns compared on update, in the order
// they are reported in changed_fields.
var trackedFields = []string{
	"driver_id",
	"date",
	"pickup_city",
	"pickup_state",
	"pickup_county",
	"pickup_zip",
	"delivery_city",
	"delivery_state",
	"delivery_county",
	"delivery_zip",
	"mileage",
	"mileage_source",
	"rate",
	"sold_for",
	"division_id",
	"status",
	"status_color",
	"customer_load_number",
	"previous_route_ids",
}

// routeValues flattens the tracked fields of r into comparable, JSON-ready
// values. Decimals are JSON numbers and dates are strings.
func routeValues(r *models.Route) map[string]interface{} {
	return map[string]interface{}{
		"driver_id":            r.DriverID,
		"date":                 r.Date.String(),
		"pickup_city":          r.PickupCity,
		"pickup_state":         r.PickupState,
		"pickup_county":        r.PickupCounty,
		"pickup_zip":           r.PickupZip,
		"delivery_city":        r.DeliveryCity,
		"delivery_state":       r.DeliveryState,
		"delivery_county":      r.DeliveryCounty,
		"delivery_zip":         r.DeliveryZip,
		"mileage":              intOrNil(r.Mileage),
		"mileage_source":       r.MileageSource,
		"rate":                 json.Number(r.Rate.String()),
		"sold_for":             nullDecimalValue(r.SoldFor.Valid, r.SoldFor.Decimal.String()),
		"division_id":          uintOrNil(r.DivisionID),
		"status":               r.Status,
		"status_color":         stringOrNil(r.StatusColor),
		"customer_load_number": r.CustomerLoadNumber,
		"previous_route_ids":   int64s(r.PreviousRouteIDs),
	}
}

// routeSnapshot is the full row as written to created and deleted audits.
func routeSnapshot(r *models.Route) datatypes.JSONMap {
	m := datatypes.JSONMap(routeValues(r))
	m["id"] = r.ID
	m["last_comment_by"] = stringOrNil(r.LastCommentBy)
	m["last_comment_at"] = timeOrNil(r.LastCommentAt)
	m["last_edited_by"] = stringOrNil(r.LastEditedBy)
	m["last_edited_at"] = timeOrNil(r.LastEditedAt)
	m["created_at"] = r.CreatedAt.UTC().Format(time.RFC3339)
	m["updated_at"] = r.UpdatedAt.UTC().Format(time.RFC3339)
	return m
}

// diffRoutes returns the tracked fields that differ between old and next
// with their values on each side. Bookkeeping columns are never compared.
func diffRoutes(old, next *models.Route) ([]string, datatypes.JSONMap, datatypes.JSONMap) {
	before := routeValues(old)
	after := routeValues(next)

	var changed []string
	oldValues := datatypes.JSONMap{}
	newValues := datatypes.JSONMap{}
	for _, f := range trackedFields {
		if reflect.DeepEqual(before[f], after[f]) {
			continue
		}
		changed = append(changed, f)
		oldValues[f] = before[f]
		newValues[f] = after[f]
	}
	return changed, oldValues, newValues
}

func intOrNil(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func uintOrNil(v *uint) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func stringOrNil(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func timeOrNil(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return v.UTC().Format(time.RFC3339)
}

func nullDecimalValue(valid bool, s string) interface{} {
	if !valid {
		return nil
	}
	return json.Number(s)
}

func int64s(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}
