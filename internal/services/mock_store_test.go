package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"truck_dispatch/internal/models"
	"truck_dispatch/internal/repository"
)

// ── in-memory Store ──

// memData is every table of the mock store. Transaction snapshots it and
// restores the snapshot when the callback fails.
type memData struct {
	seq uint

	routes     map[uint]models.Route
	audits     []models.RouteAudit
	comments   []models.RouteComment
	statuses   map[uint]models.RouteStatus
	weeks      map[uint]models.WeeklyRoute
	details    map[uint]models.WeeklyRouteDetail
	weekAudits []models.WeeklyRouteAudit
	zips       map[string]models.ZipCode
	users      map[uint]models.User
	perms      map[uint][]string

	drivers     memTable[models.Driver]
	dispatchers memTable[models.Dispatcher]
	trucks      memTable[models.Truck]
	trailers    memTable[models.Trailer]
	divisions   memTable[models.Division]
}

type memStore struct {
	d *memData

	// failRouteAudit and failWeekAudit, when set, are returned by the
	// next audit inserts.
	failRouteAudit error
	failWeekAudit  error
}

func newMemStore() *memStore {
	return &memStore{d: &memData{
		routes:      map[uint]models.Route{},
		statuses:    map[uint]models.RouteStatus{},
		weeks:       map[uint]models.WeeklyRoute{},
		details:     map[uint]models.WeeklyRouteDetail{},
		zips:        map[string]models.ZipCode{},
		users:       map[uint]models.User{},
		perms:       map[uint][]string{},
		drivers:     newMemTable(func(d *models.Driver) uint { return d.ID }),
		dispatchers: newMemTable(func(d *models.Dispatcher) uint { return d.ID }),
		trucks:      newMemTable(func(t *models.Truck) uint { return t.ID }),
		trailers:    newMemTable(func(t *models.Trailer) uint { return t.ID }),
		divisions:   newMemTable(func(d *models.Division) uint { return d.ID }),
	}}
}

func (d *memData) clone() *memData {
	c := *d
	c.routes = cloneMap(d.routes)
	c.audits = append([]models.RouteAudit(nil), d.audits...)
	c.comments = append([]models.RouteComment(nil), d.comments...)
	c.statuses = cloneMap(d.statuses)
	c.weeks = cloneMap(d.weeks)
	c.details = cloneMap(d.details)
	c.weekAudits = append([]models.WeeklyRouteAudit(nil), d.weekAudits...)
	c.zips = cloneMap(d.zips)
	c.users = cloneMap(d.users)
	c.perms = cloneMap(d.perms)
	c.drivers = d.drivers.clone()
	c.dispatchers = d.dispatchers.clone()
	c.trucks = d.trucks.clone()
	c.trailers = d.trailers.clone()
	c.divisions = d.divisions.clone()
	return &c
}

func (d *memData) nextID() uint {
	d.seq++
	return d.seq
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (m *memStore) Routes() repository.RouteRepository               { return &memRouteRepo{m} }
func (m *memStore) RouteAudits() repository.RouteAuditRepository     { return &memAuditRepo{m} }
func (m *memStore) RouteComments() repository.RouteCommentRepository { return &memCommentRepo{m} }
func (m *memStore) RouteStatuses() repository.RouteStatusRepository  { return &memStatusRepo{m} }
func (m *memStore) WeeklyRoutes() repository.WeeklyRouteRepository   { return &memWeekRepo{m} }
func (m *memStore) ZipCodes() repository.ZipCodeRepository           { return &memZipRepo{m} }
func (m *memStore) Users() repository.UserRepository                 { return &memUserRepo{m} }

func (m *memStore) Drivers() repository.CrudRepository[models.Driver] {
	return &memCrud[models.Driver]{m, func(d *memData) *memTable[models.Driver] { return &d.drivers }}
}

func (m *memStore) Dispatchers() repository.CrudRepository[models.Dispatcher] {
	return &memCrud[models.Dispatcher]{m, func(d *memData) *memTable[models.Dispatcher] { return &d.dispatchers }}
}

func (m *memStore) Trucks() repository.CrudRepository[models.Truck] {
	return &memCrud[models.Truck]{m, func(d *memData) *memTable[models.Truck] { return &d.trucks }}
}

func (m *memStore) Trailers() repository.CrudRepository[models.Trailer] {
	return &memCrud[models.Trailer]{m, func(d *memData) *memTable[models.Trailer] { return &d.trailers }}
}

func (m *memStore) Divisions() repository.CrudRepository[models.Division] {
	return &memCrud[models.Division]{m, func(d *memData) *memTable[models.Division] { return &d.divisions }}
}

func (m *memStore) Transaction(_ context.Context, fn func(tx repository.Store) error) error {
	snapshot := m.d.clone()
	if err := fn(m); err != nil {
		m.d = snapshot
		return err
	}
	return nil
}

func (m *memStore) Ping(context.Context) error { return nil }

// ── generic reference table ──

type memTable[T any] struct {
	rows  map[uint]T
	getID func(*T) uint
}

func newMemTable[T any](getID func(*T) uint) memTable[T] {
	return memTable[T]{rows: map[uint]T{}, getID: getID}
}

func (t memTable[T]) clone() memTable[T] {
	return memTable[T]{rows: cloneMap(t.rows), getID: t.getID}
}

type memCrud[T any] struct {
	m     *memStore
	table func(*memData) *memTable[T]
}

func (r *memCrud[T]) List(context.Context) ([]T, error) {
	t := r.table(r.m.d)
	out := make([]T, 0, len(t.rows))
	for _, id := range sortedKeys(t.rows) {
		out = append(out, t.rows[id])
	}
	return out, nil
}

func (r *memCrud[T]) GetByID(_ context.Context, id uint) (*T, error) {
	row, ok := r.table(r.m.d).rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *memCrud[T]) Create(_ context.Context, row *T) error {
	id := r.m.d.nextID()
	if s, ok := any(row).(interface{ SetID(uint) }); ok {
		s.SetID(id)
	}
	r.table(r.m.d).rows[id] = *row
	return nil
}

func (r *memCrud[T]) Update(_ context.Context, row *T) error {
	t := r.table(r.m.d)
	t.rows[t.getID(row)] = *row
	return nil
}

func (r *memCrud[T]) Delete(_ context.Context, id uint) error {
	t := r.table(r.m.d)
	if _, ok := t.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(t.rows, id)
	return nil
}

// ── routes ──

type memRouteRepo struct{ m *memStore }

func (r *memRouteRepo) List(_ context.Context, f repository.RouteFilter) ([]models.Route, error) {
	var out []models.Route
	for _, id := range sortedKeys(r.m.d.routes) {
		rt := r.m.d.routes[id]
		if f.DriverID != 0 && rt.DriverID != f.DriverID {
			continue
		}
		if f.Status != "" && rt.Status != f.Status {
			continue
		}
		if f.DivisionID != 0 && (rt.DivisionID == nil || *rt.DivisionID != f.DivisionID) {
			continue
		}
		if f.StartDate != nil && rt.Date.Before(f.StartDate.Time) {
			continue
		}
		if f.EndDate != nil && rt.Date.After(f.EndDate.Time) {
			continue
		}
		out = append(out, rt)
	}
	return out, nil
}

func (r *memRouteRepo) GetByID(_ context.Context, id uint) (*models.Route, error) {
	rt, ok := r.m.d.routes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rt, nil
}

func (r *memRouteRepo) Create(_ context.Context, route *models.Route) error {
	route.ID = r.m.d.nextID()
	now := time.Now()
	route.CreatedAt, route.UpdatedAt = now, now
	stored := *route
	stored.Comments = nil
	r.m.d.routes[route.ID] = stored
	return nil
}

func (r *memRouteRepo) Update(_ context.Context, route *models.Route) error {
	if _, ok := r.m.d.routes[route.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	route.UpdatedAt = time.Now()
	stored := *route
	stored.Comments = nil
	r.m.d.routes[route.ID] = stored
	return nil
}

func (r *memRouteRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.d.routes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.d.routes, id)
	// comments and weekly slots cascade, audits stay
	kept := r.m.d.comments[:0:0]
	for _, c := range r.m.d.comments {
		if c.RouteID != id {
			kept = append(kept, c)
		}
	}
	r.m.d.comments = kept
	for did, d := range r.m.d.details {
		if d.RouteID == id {
			delete(r.m.d.details, did)
		}
	}
	return nil
}

func (r *memRouteRepo) UpdateLastComment(_ context.Context, id uint, by string, at time.Time) error {
	rt, ok := r.m.d.routes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rt.LastCommentBy = &by
	rt.LastCommentAt = &at
	r.m.d.routes[id] = rt
	return nil
}

func (r *memRouteRepo) LatestBefore(_ context.Context, driverID uint, before models.Date) (*models.Route, error) {
	var best *models.Route
	for _, id := range sortedKeys(r.m.d.routes) {
		rt := r.m.d.routes[id]
		if rt.DriverID != driverID || !rt.Date.Before(before.Time) {
			continue
		}
		if best == nil || !rt.Date.Before(best.Date.Time) {
			c := rt
			best = &c
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

type memAuditRepo struct{ m *memStore }

func (r *memAuditRepo) Create(_ context.Context, a *models.RouteAudit) error {
	if r.m.failRouteAudit != nil {
		return r.m.failRouteAudit
	}
	a.ID = r.m.d.nextID()
	a.CreatedAt = time.Now()
	r.m.d.audits = append(r.m.d.audits, *a)
	return nil
}

func (r *memAuditRepo) ListByRoute(_ context.Context, routeID uint) ([]models.RouteAudit, error) {
	var out []models.RouteAudit
	for i := len(r.m.d.audits) - 1; i >= 0; i-- {
		if r.m.d.audits[i].RouteID == routeID {
			out = append(out, r.m.d.audits[i])
		}
	}
	return out, nil
}

type memCommentRepo struct{ m *memStore }

func (r *memCommentRepo) Create(_ context.Context, c *models.RouteComment) error {
	c.ID = r.m.d.nextID()
	r.m.d.comments = append(r.m.d.comments, *c)
	return nil
}

func (r *memCommentRepo) ListByRoute(_ context.Context, routeID uint) ([]models.RouteComment, error) {
	var out []models.RouteComment
	for _, c := range r.m.d.comments {
		if c.RouteID == routeID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ── route statuses ──

type memStatusRepo struct{ m *memStore }

func (r *memStatusRepo) List(context.Context) ([]models.RouteStatus, error) {
	out := make([]models.RouteStatus, 0, len(r.m.d.statuses))
	for _, id := range sortedKeys(r.m.d.statuses) {
		out = append(out, r.m.d.statuses[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *memStatusRepo) GetByID(_ context.Context, id uint) (*models.RouteStatus, error) {
	st, ok := r.m.d.statuses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &st, nil
}

func (r *memStatusRepo) GetByName(_ context.Context, name string) (*models.RouteStatus, error) {
	for _, id := range sortedKeys(r.m.d.statuses) {
		if st := r.m.d.statuses[id]; st.Name == name {
			return &st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStatusRepo) GetDefault(context.Context) (*models.RouteStatus, error) {
	for _, id := range sortedKeys(r.m.d.statuses) {
		if st := r.m.d.statuses[id]; st.IsDefault {
			return &st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStatusRepo) Create(_ context.Context, st *models.RouteStatus) error {
	for _, existing := range r.m.d.statuses {
		if existing.Name == st.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	st.ID = r.m.d.nextID()
	r.m.d.statuses[st.ID] = *st
	return nil
}

func (r *memStatusRepo) Update(_ context.Context, st *models.RouteStatus) error {
	for id, existing := range r.m.d.statuses {
		if id != st.ID && existing.Name == st.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	r.m.d.statuses[st.ID] = *st
	return nil
}

func (r *memStatusRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.m.d.statuses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.d.statuses, id)
	return nil
}

func (r *memStatusRepo) ClearDefault(context.Context) error {
	for id, st := range r.m.d.statuses {
		st.IsDefault = false
		r.m.d.statuses[id] = st
	}
	return nil
}

func (r *memStatusRepo) MarkDefault(_ context.Context, id uint) error {
	st, ok := r.m.d.statuses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	st.IsDefault = true
	r.m.d.statuses[id] = st
	return nil
}

func (r *memStatusRepo) Neighbor(ctx context.Context, sortOrder int, up bool) (*models.RouteStatus, error) {
	all, _ := r.List(ctx)
	if up {
		for i := len(all) - 1; i >= 0; i-- {
			if all[i].SortOrder < sortOrder {
				return &all[i], nil
			}
		}
	} else {
		for i := range all {
			if all[i].SortOrder > sortOrder {
				return &all[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStatusRepo) MaxSortOrder(context.Context) (int, error) {
	max := 0
	for _, st := range r.m.d.statuses {
		if st.SortOrder > max {
			max = st.SortOrder
		}
	}
	return max, nil
}

// ── weekly routes ──

type memWeekRepo struct{ m *memStore }

func (r *memWeekRepo) List(_ context.Context, f repository.WeeklyRouteFilter) ([]models.WeeklyRoute, error) {
	var out []models.WeeklyRoute
	for _, id := range sortedKeys(r.m.d.weeks) {
		w := r.m.d.weeks[id]
		if f.StartDate != nil && w.WeekEndDate.Before(f.StartDate.Time) {
			continue
		}
		if f.EndDate != nil && w.WeekStartDate.After(f.EndDate.Time) {
			continue
		}
		if f.DriverID != 0 && w.DriverID != f.DriverID {
			continue
		}
		if f.DivisionID != 0 && (w.DivisionID == nil || *w.DivisionID != f.DivisionID) {
			continue
		}
		if f.DispatcherID != 0 && (w.DispatcherID == nil || *w.DispatcherID != f.DispatcherID) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *memWeekRepo) GetByID(_ context.Context, id uint) (*models.WeeklyRoute, error) {
	w, ok := r.m.d.weeks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &w, nil
}

func (r *memWeekRepo) Create(_ context.Context, w *models.WeeklyRoute) error {
	w.ID = r.m.d.nextID()
	r.m.d.weeks[w.ID] = *w
	return nil
}

func (r *memWeekRepo) Update(_ context.Context, w *models.WeeklyRoute) error {
	r.m.d.weeks[w.ID] = *w
	return nil
}

func (r *memWeekRepo) Details(_ context.Context, weekID uint) ([]models.WeeklyRouteDetail, error) {
	var out []models.WeeklyRouteDetail
	for _, id := range sortedKeys(r.m.d.details) {
		d := r.m.d.details[id]
		if d.WeeklyRouteID != weekID {
			continue
		}
		if rt, ok := r.m.d.routes[d.RouteID]; ok {
			d.Route = &rt
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].SequenceNumber < out[j].SequenceNumber
	})
	return out, nil
}

func (r *memWeekRepo) GetDetail(_ context.Context, weekID, detailID uint) (*models.WeeklyRouteDetail, error) {
	d, ok := r.m.d.details[detailID]
	if !ok || d.WeeklyRouteID != weekID {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r *memWeekRepo) CountDay(_ context.Context, weekID uint, day int) (int64, error) {
	var n int64
	for _, d := range r.m.d.details {
		if d.WeeklyRouteID == weekID && d.DayOfWeek == day {
			n++
		}
	}
	return n, nil
}

func (r *memWeekRepo) CreateDetail(_ context.Context, d *models.WeeklyRouteDetail) error {
	d.ID = r.m.d.nextID()
	stored := *d
	stored.Route = nil
	r.m.d.details[d.ID] = stored
	return nil
}

func (r *memWeekRepo) DeleteDetail(_ context.Context, detailID uint) error {
	delete(r.m.d.details, detailID)
	return nil
}

func (r *memWeekRepo) CreateAudit(_ context.Context, a *models.WeeklyRouteAudit) error {
	if r.m.failWeekAudit != nil {
		return r.m.failWeekAudit
	}
	a.ID = r.m.d.nextID()
	r.m.d.weekAudits = append(r.m.d.weekAudits, *a)
	return nil
}

func (r *memWeekRepo) Audits(_ context.Context, weekID uint) ([]models.WeeklyRouteAudit, error) {
	var out []models.WeeklyRouteAudit
	for i := len(r.m.d.weekAudits) - 1; i >= 0; i-- {
		if r.m.d.weekAudits[i].WeeklyRouteID == weekID {
			out = append(out, r.m.d.weekAudits[i])
		}
	}
	return out, nil
}

// ── zip codes ──

type memZipRepo struct{ m *memStore }

func (r *memZipRepo) GetByZip(_ context.Context, zip string) (*models.ZipCode, error) {
	z, ok := r.m.d.zips[zip]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &z, nil
}

func (r *memZipRepo) Create(_ context.Context, z *models.ZipCode) error {
	if _, ok := r.m.d.zips[z.ZipCode]; ok {
		return gorm.ErrDuplicatedKey
	}
	z.ID = r.m.d.nextID()
	r.m.d.zips[z.ZipCode] = *z
	return nil
}

func (r *memZipRepo) UpdateByZip(_ context.Context, z *models.ZipCode) error {
	existing, ok := r.m.d.zips[z.ZipCode]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	z.ID = existing.ID
	r.m.d.zips[z.ZipCode] = *z
	return nil
}

// ── users ──

type memUserRepo struct{ m *memStore }

func (r *memUserRepo) List(context.Context) ([]models.User, error) {
	var out []models.User
	for _, id := range sortedKeys(r.m.d.users) {
		out = append(out, r.m.d.users[id])
	}
	return out, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.m.d.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.Permissions = nil
	for _, p := range r.m.d.perms[id] {
		u.Permissions = append(u.Permissions, models.UserPermission{UserID: id, Permission: p})
	}
	return &u, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.m.d.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.m.d.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = r.m.d.nextID()
	r.m.d.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Update(_ context.Context, u *models.User) error {
	r.m.d.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Permissions(_ context.Context, userID uint) ([]models.UserPermission, error) {
	var out []models.UserPermission
	for _, p := range r.m.d.perms[userID] {
		out = append(out, models.UserPermission{UserID: userID, Permission: p})
	}
	return out, nil
}

func (r *memUserRepo) ReplacePermissions(_ context.Context, userID uint, perms []string) error {
	r.m.d.perms[userID] = append([]string(nil), perms...)
	return nil
}

var errInjected = errors.New("injected store failure")
