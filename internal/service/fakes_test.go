package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/dashboard"
	"festive-births-svc/internal/models"
	"festive-births-svc/internal/models/response"
	"festive-births-svc/internal/repository"
)

type fakeUserRepo struct {
	users  map[uint]*models.User
	roles  map[string]models.Role
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]*models.User{}, roles: map[string]models.Role{}, nextID: 1}
	for i, role := range models.SeedRoles {
		role.ID = uint(i + 1)
		r.roles[role.Name] = role
	}
	return r
}

func (r *fakeUserRepo) add(u *models.User, roleNames ...string) *models.User {
	u.ID = r.nextID
	r.nextID++
	for _, name := range roleNames {
		u.Roles = append(u.Roles, r.roles[name])
	}
	if u.Profile != nil {
		u.Profile.UserID = u.ID
	}
	if !u.IsSuperuser && u.Profile != nil && u.Username == "" {
		u.Username = u.Profile.PersalNumber
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) clone(u *models.User) *models.User {
	c := *u
	if u.Profile != nil {
		p := *u.Profile
		c.Profile = &p
	}
	c.Roles = append([]models.Role(nil), u.Roles...)
	return &c
}

func (r *fakeUserRepo) List(_ context.Context, scope access.Scope, _ string, _, _ int) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range r.sorted() {
		if scope.Kind == access.ScopeAll || (u.Profile != nil && scope.Allows(u.Profile.District, "")) {
			out = append(out, *r.clone(u))
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) sorted() []*models.User {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.sorted() {
		out = append(out, *r.clone(u))
	}
	return out, nil
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *r.clone(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepo) NonSuperuserIDs(_ context.Context) ([]uint, error) {
	var ids []uint
	for _, u := range r.sorted() {
		if !u.IsSuperuser {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.clone(u), nil
}

func (r *fakeUserRepo) FindByPersal(_ context.Context, persal string) (*models.User, error) {
	for _, u := range r.users {
		if u.Profile != nil && u.Profile.PersalNumber == persal {
			return r.clone(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return r.clone(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) PersalExists(_ context.Context, persal string, excludeUserID uint) (bool, error) {
	for _, u := range r.users {
		if u.ID != excludeUserID && u.Profile != nil && u.Profile.PersalNumber == persal {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) FindRoles(_ context.Context, names []string) ([]models.Role, error) {
	var out []models.Role
	for _, n := range names {
		if role, ok := r.roles[n]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User, roles []models.Role) error {
	user.ID = r.nextID
	r.nextID++
	stored := r.clone(user)
	stored.Roles = roles
	if stored.Profile != nil {
		stored.Profile.UserID = user.ID
	}
	r.users[user.ID] = stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User, roles []models.Role) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := r.clone(user)
	stored.Roles = roles
	r.users[user.ID] = stored
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uint, hash string, mustChange bool) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hash
	u.MustChangePassword = mustChange
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

type fakeDeliveryRepo struct {
	deliveries map[uint]*models.Delivery
	abnormal   []response.AbnormalWeightRow
	nextID     uint
	lastScope  access.Scope
	nilFilter  repository.NilReportFilter
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{deliveries: map[uint]*models.Delivery{}, nextID: 1}
}

func (r *fakeDeliveryRepo) add(d models.Delivery) *models.Delivery {
	d.ID = r.nextID
	r.nextID++
	r.deliveries[d.ID] = &d
	return &d
}

func (r *fakeDeliveryRepo) scoped(scope access.Scope) []models.Delivery {
	ids := make([]uint, 0, len(r.deliveries))
	for id := range r.deliveries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Delivery
	for _, id := range ids {
		d := r.deliveries[id]
		if scope.Allows(d.District, d.Facility) {
			out = append(out, *d)
		}
	}
	return out
}

func (r *fakeDeliveryRepo) List(_ context.Context, scope access.Scope, _ string, _, _ int) ([]models.Delivery, int64, error) {
	r.lastScope = scope
	out := r.scoped(scope)
	return out, int64(len(out)), nil
}

func (r *fakeDeliveryRepo) FindByID(_ context.Context, id uint) (*models.Delivery, error) {
	d, ok := r.deliveries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *d
	return &c, nil
}

func (r *fakeDeliveryRepo) Create(_ context.Context, d *models.Delivery, babies []models.Baby) error {
	d.ID = r.nextID
	r.nextID++
	stored := *d
	for i := range babies {
		babies[i].ID = uint(i + 1)
		babies[i].DeliveryID = d.ID
	}
	stored.Babies = babies
	r.deliveries[d.ID] = &stored
	return nil
}

func (r *fakeDeliveryRepo) Update(_ context.Context, d *models.Delivery, create, update []models.Baby, deleteIDs []uint) error {
	old, ok := r.deliveries[d.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	deleted := map[uint]bool{}
	for _, id := range deleteIDs {
		deleted[id] = true
	}
	var babies []models.Baby
	for _, b := range old.Babies {
		if !deleted[b.ID] {
			babies = append(babies, b)
		}
	}
	babies = append(babies, create...)
	stored := *d
	stored.Babies = babies
	r.deliveries[d.ID] = &stored
	return nil
}

func (r *fakeDeliveryRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.deliveries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.deliveries, id)
	return nil
}

func (r *fakeDeliveryRepo) FindForDashboard(_ context.Context, scope access.Scope, f dashboard.Filters) ([]models.Delivery, error) {
	r.lastScope = scope
	var out []models.Delivery
	for _, d := range r.scoped(scope) {
		if f.District != "" && d.District != f.District {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDeliveryRepo) FindForExport(_ context.Context, scope access.Scope) ([]models.Delivery, error) {
	r.lastScope = scope
	return r.scoped(scope), nil
}

func (r *fakeDeliveryRepo) FindNilReports(_ context.Context, scope access.Scope, filter repository.NilReportFilter) ([]models.Delivery, error) {
	r.lastScope = scope
	r.nilFilter = filter
	var out []models.Delivery
	for _, d := range r.scoped(scope) {
		if d.NoBirthsToReport {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) FindAbnormalWeights(_ context.Context, scope access.Scope, _, _ int) ([]response.AbnormalWeightRow, error) {
	r.lastScope = scope
	return append([]response.AbnormalWeightRow(nil), r.abnormal...), nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
