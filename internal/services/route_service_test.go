package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"truck_dispatch/internal/geo"
	"truck_dispatch/internal/models"
	"truck_dispatch/internal/repository"
)

// ── helpers ──

func init() {
	logrus.SetOutput(io.Discard)
}

func setupTestRouteService() (RouteService, *memStore) {
	store := newMemStore()
	seedStatuses(store)
	resolver := geo.NewResolver(store.ZipCodes())
	return NewRouteService(store, resolver, geo.NewEstimator(resolver)), store
}

func seedStatuses(store *memStore) {
	for i, st := range []models.RouteStatus{
		{Name: "Empty", Color: "#6C757D", IsDefault: true},
		{Name: "Loaded", Color: "#28A745"},
		{Name: "AT PU", Color: "#FFC107"},
		{Name: models.StatusDrivingPreviousRoute, Color: "#17A2B8"},
	} {
		st.SortOrder = i + 1
		_ = store.RouteStatuses().Create(context.Background(), &st)
	}
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func datePtr(s string) *models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func baseInput() RouteInput {
	return RouteInput{
		DriverID:    uintPtr(1),
		Date:        datePtr("2024-06-10"),
		PickupZip:   strPtr("60601"),
		DeliveryZip: strPtr("90210"),
		Rate:        decPtr("500"),
		UserName:    "dispatch1",
	}
}

func mustCreate(t *testing.T, svc RouteService, in RouteInput) *models.Route {
	t.Helper()
	route, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	return route
}

func auditsFor(store *memStore, routeID uint) []models.RouteAudit {
	var out []models.RouteAudit
	for _, a := range store.d.audits {
		if a.RouteID == routeID {
			out = append(out, a)
		}
	}
	return out
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError on %s, got %v", field, err)
	}
	if ve.Field != field {
		t.Errorf("expected ValidationError on %s, got %s", field, ve.Field)
	}
}

// ── Create ──

func TestRouteService_Create_EndToEnd(t *testing.T) {
	svc, store := setupTestRouteService()

	in := baseInput()
	in.Rate = decPtr("1500")
	route := mustCreate(t, svc, in)

	if route.PickupCity != "Chicago" || route.PickupState != "IL" {
		t.Errorf("pickup = %s, %s; want Chicago, IL", route.PickupCity, route.PickupState)
	}
	if route.DeliveryCity != "Beverly Hills" || route.DeliveryState != "CA" {
		t.Errorf("delivery = %s, %s; want Beverly Hills, CA", route.DeliveryCity, route.DeliveryState)
	}
	if route.Mileage == nil {
		t.Fatal("expected mileage to be estimated")
	}
	if *route.Mileage != 2015 || route.MileageSource != models.MileageStatePair {
		t.Errorf("mileage = %d (%s), want 2015 (state_pair)", *route.Mileage, route.MileageSource)
	}

	audits := auditsFor(store, route.ID)
	if len(audits) != 1 {
		t.Fatalf("expected exactly 1 audit, got %d", len(audits))
	}
	a := audits[0]
	if a.Status != models.AuditCreated {
		t.Errorf("audit status = %s, want created", a.Status)
	}
	if !reflect.DeepEqual([]string(a.ChangedFields), []string{models.AllFields}) {
		t.Errorf("changed_fields = %v, want [all]", a.ChangedFields)
	}
	if a.NewValues["rate"] != json.Number("1500") || a.NewValues["pickup_city"] != "Chicago" {
		t.Errorf("new_values missing route data: %v", a.NewValues)
	}
	if a.UserName != "dispatch1" {
		t.Errorf("audit user = %s, want dispatch1", a.UserName)
	}

	// both ZIPs were cached on first resolution
	if _, ok := store.d.zips["60601"]; !ok {
		t.Error("expected 60601 to be written to the zip cache")
	}
	if _, ok := store.d.zips["90210"]; !ok {
		t.Error("expected 90210 to be written to the zip cache")
	}
}

func TestRouteService_Create_DefaultStatusAndColor(t *testing.T) {
	svc, _ := setupTestRouteService()

	route := mustCreate(t, svc, baseInput())
	if route.Status != "Empty" {
		t.Errorf("status = %q, want default Empty", route.Status)
	}
	if route.StatusColor == nil || *route.StatusColor != "#6C757D" {
		t.Errorf("status_color = %v, want #6C757D", route.StatusColor)
	}

	in := baseInput()
	in.Status = strPtr("Custom thing")
	route = mustCreate(t, svc, in)
	if route.StatusColor != nil {
		t.Errorf("unknown status should have no color, got %s", *route.StatusColor)
	}
}

func TestRouteService_Create_Validation(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*RouteInput)
		field string
	}{
		{"missing rate", func(in *RouteInput) { in.Rate = nil }, "rate"},
		{"negative rate", func(in *RouteInput) { in.Rate = decPtr("-1") }, "rate"},
		{"missing driver", func(in *RouteInput) { in.DriverID = nil }, "driver_id"},
		{"missing date", func(in *RouteInput) { in.Date = nil }, "date"},
		{"short zip", func(in *RouteInput) { in.PickupZip = strPtr("6060") }, "pickup_zip"},
		{"letters in zip", func(in *RouteInput) { in.DeliveryZip = strPtr("9021A") }, "delivery_zip"},
		{"unresolvable zip", func(in *RouteInput) { in.PickupZip = strPtr("00001") }, "pickup_city"},
		{"previous route without ids", func(in *RouteInput) {
			in.Status = strPtr(models.StatusDrivingPreviousRoute)
		}, "previous_route_ids"},
		{"previous route unknown id", func(in *RouteInput) {
			in.Status = strPtr(models.StatusDrivingPreviousRoute)
			in.PreviousRouteIDs = []int64{999}
		}, "previous_route_ids"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := setupTestRouteService()
			in := baseInput()
			tc.edit(&in)

			_, err := svc.Create(context.Background(), in)
			assertValidation(t, err, tc.field)
			if len(store.d.routes) != 0 || len(store.d.audits) != 0 {
				t.Errorf("validation failure must not write: %d routes, %d audits", len(store.d.routes), len(store.d.audits))
			}
		})
	}
}

func TestRouteService_Create_UnresolvableZipWithManualCity(t *testing.T) {
	svc, _ := setupTestRouteService()

	in := baseInput()
	in.PickupZip = strPtr("00001")
	in.PickupCity = strPtr("Nowhere")
	in.PickupState = strPtr("ZZ")
	route := mustCreate(t, svc, in)

	if route.PickupCity != "Nowhere" {
		t.Errorf("pickup_city = %s, want Nowhere", route.PickupCity)
	}
	if route.Mileage == nil {
		t.Error("mileage should always be filled")
	}
}

func TestRouteService_Create_DrivingPreviousRoute(t *testing.T) {
	svc, _ := setupTestRouteService()
	first := mustCreate(t, svc, baseInput())

	in := baseInput()
	in.Date = datePtr("2024-06-11")
	in.Status = strPtr(models.StatusDrivingPreviousRoute)
	in.PreviousRouteIDs = []int64{int64(first.ID)}
	route := mustCreate(t, svc, in)

	if !reflect.DeepEqual([]int64(route.PreviousRouteIDs), []int64{int64(first.ID)}) {
		t.Errorf("previous_route_ids = %v", route.PreviousRouteIDs)
	}
	if route.StatusColor == nil || *route.StatusColor != "#17A2B8" {
		t.Errorf("status_color = %v, want #17A2B8", route.StatusColor)
	}
}

func TestRouteService_Create_ManualMileage(t *testing.T) {
	svc, _ := setupTestRouteService()

	in := baseInput()
	in.Mileage = intPtr(2100)
	route := mustCreate(t, svc, in)

	if *route.Mileage != 2100 || route.MileageSource != models.MileageManual {
		t.Errorf("mileage = %d (%s), want 2100 (manual)", *route.Mileage, route.MileageSource)
	}
}

func TestRouteService_Create_WithComment(t *testing.T) {
	svc, store := setupTestRouteService()

	in := baseInput()
	in.Comment = "  call shipper before 8am "
	route := mustCreate(t, svc, in)

	if len(route.Comments) != 1 || route.Comments[0].Text != "call shipper before 8am" {
		t.Fatalf("expected the trimmed comment on the route, got %+v", route.Comments)
	}
	stored := store.d.routes[route.ID]
	if stored.LastCommentBy == nil || *stored.LastCommentBy != "dispatch1" || stored.LastCommentAt == nil {
		t.Errorf("last comment pointer not set: %+v", stored)
	}
}

func TestRouteService_Create_AuditFailureRollsBack(t *testing.T) {
	svc, store := setupTestRouteService()
	store.failRouteAudit = errInjected

	_, err := svc.Create(context.Background(), baseInput())
	if !errors.Is(err, errInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if len(store.d.routes) != 0 {
		t.Errorf("route must not exist after a failed audit, found %d", len(store.d.routes))
	}
}

// ── Update ──

func TestRouteService_Update_NoOpWritesNoAudit(t *testing.T) {
	svc, store := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())

	// same payload as the create
	if _, err := svc.Update(context.Background(), route.ID, baseInput()); err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}

	// the full row as a client would send it back
	full := RouteInput{
		DriverID:           &route.DriverID,
		Date:               &route.Date,
		PickupZip:          &route.PickupZip,
		PickupCity:         &route.PickupCity,
		PickupState:        &route.PickupState,
		PickupCounty:       &route.PickupCounty,
		DeliveryZip:        &route.DeliveryZip,
		DeliveryCity:       &route.DeliveryCity,
		DeliveryState:      &route.DeliveryState,
		DeliveryCounty:     &route.DeliveryCounty,
		Mileage:            route.Mileage,
		Rate:               &route.Rate,
		SoldFor:            OptionalDecimal{Set: true, Value: route.SoldFor},
		Status:             &route.Status,
		CustomerLoadNumber: &route.CustomerLoadNumber,
		PreviousRouteIDs:   []int64{},
		UserName:           "someone-else",
	}
	if _, err := svc.Update(context.Background(), route.ID, full); err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}

	if n := len(auditsFor(store, route.ID)); n != 1 {
		t.Errorf("expected only the created audit, got %d audits", n)
	}
	if stored := store.d.routes[route.ID]; *stored.LastEditedBy != "dispatch1" {
		t.Errorf("no-op update must not touch last_edited_by, got %s", *stored.LastEditedBy)
	}
}

func TestRouteService_Update_SingleFieldDiff(t *testing.T) {
	svc, store := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())

	updated, err := svc.Update(context.Background(), route.ID, RouteInput{Rate: decPtr("600"), UserName: "dispatch2"})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if !updated.Rate.Equal(decimal.NewFromInt(600)) {
		t.Errorf("rate = %s, want 600", updated.Rate)
	}

	audits := auditsFor(store, route.ID)
	if len(audits) != 2 {
		t.Fatalf("expected 2 audits, got %d", len(audits))
	}
	a := audits[1]
	if a.Status != models.AuditUpdated || a.UserName != "dispatch2" {
		t.Errorf("audit = %s by %s, want updated by dispatch2", a.Status, a.UserName)
	}
	if !reflect.DeepEqual([]string(a.ChangedFields), []string{"rate"}) {
		t.Errorf("changed_fields = %v, want [rate]", a.ChangedFields)
	}
	oldJSON, _ := json.Marshal(a.OldValues)
	if string(oldJSON) != `{"rate":500}` {
		t.Errorf("old_values = %s, want {\"rate\":500}", oldJSON)
	}
	newJSON, _ := json.Marshal(a.NewValues)
	if string(newJSON) != `{"rate":600}` {
		t.Errorf("new_values = %s, want {\"rate\":600}", newJSON)
	}
	if stored := store.d.routes[route.ID]; *stored.LastEditedBy != "dispatch2" {
		t.Errorf("last_edited_by = %s, want dispatch2", *stored.LastEditedBy)
	}
}

func TestRouteService_Update_StatusColorSnapshot(t *testing.T) {
	svc, store := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())

	updated, err := svc.Update(context.Background(), route.ID, RouteInput{Status: strPtr("Loaded")})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if *updated.StatusColor != "#28A745" {
		t.Errorf("status_color = %s, want #28A745", *updated.StatusColor)
	}

	// recoloring the catalog leaves existing routes alone
	loaded, _ := store.RouteStatuses().GetByName(context.Background(), "Loaded")
	loaded.Color = "#000000"
	_ = store.RouteStatuses().Update(context.Background(), loaded)

	got, err := svc.Get(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("Get should succeed: %v", err)
	}
	if *got.StatusColor != "#28A745" {
		t.Errorf("status_color changed to %s after catalog edit", *got.StatusColor)
	}

	audits := auditsFor(store, route.ID)
	want := []string{"status", "status_color"}
	if !reflect.DeepEqual([]string(audits[len(audits)-1].ChangedFields), want) {
		t.Errorf("changed_fields = %v, want %v", audits[len(audits)-1].ChangedFields, want)
	}
}

func TestRouteService_Update_ZipChangeReestimates(t *testing.T) {
	svc, _ := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())

	updated, err := svc.Update(context.Background(), route.ID, RouteInput{DeliveryZip: strPtr("75201")})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if updated.DeliveryCity != "Dallas" || updated.DeliveryState != "TX" {
		t.Errorf("delivery = %s, %s; want Dallas, TX", updated.DeliveryCity, updated.DeliveryState)
	}
	if *updated.Mileage != 925 {
		t.Errorf("mileage = %d, want 925 for IL-TX", *updated.Mileage)
	}
}

func TestRouteService_Update_ManualMileageKeptWithoutZipChange(t *testing.T) {
	svc, store := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())

	updated, err := svc.Update(context.Background(), route.ID, RouteInput{Mileage: intPtr(1999)})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if *updated.Mileage != 1999 || updated.MileageSource != models.MileageManual {
		t.Errorf("mileage = %d (%s), want 1999 (manual)", *updated.Mileage, updated.MileageSource)
	}

	updated, err = svc.Update(context.Background(), route.ID, RouteInput{CustomerLoadNumber: strPtr("PO-77")})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if *updated.Mileage != 1999 {
		t.Errorf("mileage changed without a ZIP change: %d", *updated.Mileage)
	}
	if n := len(auditsFor(store, route.ID)); n != 3 {
		t.Errorf("expected 3 audits, got %d", n)
	}
}

func TestRouteService_Create_WithoutPreviousRoutesStoresEmptyList(t *testing.T) {
	svc, store := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())

	if route.PreviousRouteIDs == nil || len(route.PreviousRouteIDs) != 0 {
		t.Errorf("previous_route_ids = %#v, want an empty non-nil list", route.PreviousRouteIDs)
	}
	if stored := store.d.routes[route.ID]; stored.PreviousRouteIDs == nil {
		t.Error("stored previous_route_ids must not be nil")
	}
}

func TestRouteService_Update_ExplicitMileageWinsOverZipChange(t *testing.T) {
	svc, _ := setupTestRouteService()
	in := baseInput()
	in.Mileage = intPtr(2100)
	route := mustCreate(t, svc, in)

	updated, err := svc.Update(context.Background(), route.ID, RouteInput{
		DeliveryZip: strPtr("60606"),
		Mileage:     intPtr(2100),
	})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if updated.DeliveryCity != "Chicago" {
		t.Errorf("delivery_city = %s, want Chicago", updated.DeliveryCity)
	}
	if *updated.Mileage != 2100 || updated.MileageSource != models.MileageManual {
		t.Errorf("mileage = %d (%s), want 2100 (manual)", *updated.Mileage, updated.MileageSource)
	}
}

func TestRouteService_Update_CommentOnly(t *testing.T) {
	svc, store := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())

	_, err := svc.Update(context.Background(), route.ID, RouteInput{Comment: "driver is late", UserName: "dispatch2"})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if n := len(auditsFor(store, route.ID)); n != 1 {
		t.Errorf("comment-only update must not audit, got %d audits", n)
	}
	if len(store.d.comments) != 1 || store.d.comments[0].By != "dispatch2" {
		t.Fatalf("expected one comment by dispatch2, got %+v", store.d.comments)
	}
	if stored := store.d.routes[route.ID]; stored.LastCommentBy == nil || *stored.LastCommentBy != "dispatch2" {
		t.Error("last_comment_by not refreshed")
	}
}

func TestRouteService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestRouteService()

	_, err := svc.Update(context.Background(), 42, RouteInput{Rate: decPtr("1")})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Error() != "Route not found" {
		t.Fatalf("expected Route not found, got %v", err)
	}
}

func TestRouteService_Update_AuditFailureRollsBack(t *testing.T) {
	svc, store := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())
	store.failRouteAudit = errInjected

	_, err := svc.Update(context.Background(), route.ID, RouteInput{Rate: decPtr("900"), Comment: "raise"})
	if !errors.Is(err, errInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if got := store.d.routes[route.ID].Rate; !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("rate = %s after failed update, want 500", got)
	}
	if len(store.d.comments) != 0 {
		t.Error("comment must not be written when the update fails")
	}
}

// ── Delete ──

func TestRouteService_Delete_AuditBeforeDestroy(t *testing.T) {
	svc, store := setupTestRouteService()
	in := baseInput()
	in.Comment = "first"
	route := mustCreate(t, svc, in)

	if err := svc.Delete(context.Background(), route.ID, "dispatch9"); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if _, ok := store.d.routes[route.ID]; ok {
		t.Error("route row should be gone")
	}
	if len(store.d.comments) != 0 {
		t.Error("comments should be removed with the route")
	}

	audits, err := svc.Audits(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("Audits should succeed: %v", err)
	}
	if len(audits) != 2 {
		t.Fatalf("expected created and deleted audits, got %d", len(audits))
	}
	last := audits[0]
	if last.Status != models.AuditDeleted || last.UserName != "dispatch9" {
		t.Errorf("terminal audit = %s by %s", last.Status, last.UserName)
	}
	if last.OldValues["id"] != route.ID || last.OldValues["rate"] != json.Number("500") || last.OldValues["pickup_zip"] != "60601" {
		t.Errorf("old_values should hold the full row, got %v", last.OldValues)
	}
	if last.OldValues["last_comment_by"] != "dispatch1" {
		t.Errorf("old_values should include bookkeeping fields, got %v", last.OldValues["last_comment_by"])
	}
}

func TestRouteService_Delete_AuditFailureKeepsRoute(t *testing.T) {
	svc, store := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())
	store.failRouteAudit = errInjected

	if err := svc.Delete(context.Background(), route.ID, "x"); !errors.Is(err, errInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if _, ok := store.d.routes[route.ID]; !ok {
		t.Error("route must survive a failed delete audit")
	}
}

func TestRouteService_Delete_NotFound(t *testing.T) {
	svc, store := setupTestRouteService()

	err := svc.Delete(context.Background(), 7, "x")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(store.d.audits) != 0 {
		t.Error("no audit should be written for a missing route")
	}
}

// ── Comments ──

func TestRouteService_AddComment(t *testing.T) {
	svc, _ := setupTestRouteService()
	route := mustCreate(t, svc, baseInput())

	c, err := svc.AddComment(context.Background(), route.ID, "on site", "")
	if err != nil {
		t.Fatalf("AddComment should succeed: %v", err)
	}
	if c.By != SystemActor || c.RouteID != route.ID {
		t.Errorf("comment = %+v", c)
	}
	if _, err := svc.AddComment(context.Background(), route.ID, "second", "dispatch3"); err != nil {
		t.Fatalf("AddComment should succeed: %v", err)
	}

	detail, err := svc.Get(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("Get should succeed: %v", err)
	}
	if len(detail.Comments) != 2 || detail.Comments[0].Text != "on site" {
		t.Errorf("comments out of order: %+v", detail.Comments)
	}
	if *detail.LastCommentBy != "dispatch3" {
		t.Errorf("last_comment_by = %s, want dispatch3", *detail.LastCommentBy)
	}
	if len(detail.AuditHistory) != 1 {
		t.Errorf("comments must not create audits, got %d", len(detail.AuditHistory))
	}
}

func TestRouteService_AddComment_Errors(t *testing.T) {
	svc, _ := setupTestRouteService()

	_, err := svc.AddComment(context.Background(), 1, "   ", "a")
	assertValidation(t, err, "text")

	_, err = svc.AddComment(context.Background(), 1, "hello", "a")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// ── Lookups ──

func TestRouteService_PreviousRoute(t *testing.T) {
	svc, _ := setupTestRouteService()

	for _, d := range []string{"2024-06-03", "2024-06-07", "2024-06-12"} {
		in := baseInput()
		in.Date = datePtr(d)
		mustCreate(t, svc, in)
	}
	other := baseInput()
	other.DriverID = uintPtr(2)
	other.Date = datePtr("2024-06-09")
	mustCreate(t, svc, other)

	route, err := svc.PreviousRoute(context.Background(), 1, *datePtr("2024-06-10"))
	if err != nil {
		t.Fatalf("PreviousRoute should succeed: %v", err)
	}
	if route.Date.String() != "2024-06-07" {
		t.Errorf("previous route date = %s, want 2024-06-07", route.Date)
	}

	_, err = svc.PreviousRoute(context.Background(), 1, *datePtr("2024-06-01"))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRouteService_Earnings(t *testing.T) {
	svc, store := setupTestRouteService()
	driver := &models.Driver{Name: "Ann", Percentage: decimal.NewFromInt(25)}
	_ = store.Drivers().Create(context.Background(), driver)

	in := baseInput()
	in.DriverID = &driver.ID
	in.Rate = decPtr("1000")
	in.SoldFor = OptionalDecimal{Set: true, Value: decimal.NewNullDecimal(decimal.NewFromInt(700))}
	mustCreate(t, svc, in)

	sum, err := svc.Earnings(context.Background(), repository.RouteFilter{DriverID: driver.ID})
	if err != nil {
		t.Fatalf("Earnings should succeed: %v", err)
	}
	if len(sum.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(sum.Routes))
	}
	r := sum.Routes[0]
	if !r.GrossDifference.Equal(decimal.NewFromInt(300)) ||
		!r.PercentageIncome.Equal(decimal.NewFromInt(175)) ||
		!r.TotalEarnings.Equal(decimal.NewFromInt(475)) {
		t.Errorf("earnings = %s/%s/%s, want 300/175/475", r.GrossDifference, r.PercentageIncome, r.TotalEarnings)
	}
}

func TestRouteService_List_Filters(t *testing.T) {
	svc, _ := setupTestRouteService()
	mustCreate(t, svc, baseInput())
	in := baseInput()
	in.Status = strPtr("Loaded")
	in.Date = datePtr("2024-07-01")
	mustCreate(t, svc, in)

	routes, err := svc.List(context.Background(), repository.RouteFilter{Status: "Loaded"})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(routes) != 1 || routes[0].Status != "Loaded" {
		t.Errorf("status filter returned %+v", routes)
	}

	routes, _ = svc.List(context.Background(), repository.RouteFilter{EndDate: datePtr("2024-06-30")})
	if len(routes) != 1 || routes[0].Date.String() != "2024-06-10" {
		t.Errorf("date filter returned %d routes", len(routes))
	}
}
