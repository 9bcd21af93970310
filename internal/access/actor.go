package access

import (
	"festive-births-svc/internal/models"
)

// Effective roles. Superuser comes from the user flag, the rest from role rows.
const (
	RoleSuperuser    = "Superuser"
	RoleProvinceUser = models.RoleProvinceUser
	RoleAdmin        = models.RoleAdmin
	RoleUser         = models.RoleUser
	RoleNone         = ""
)

// ProfileLocation is the geographic assignment of an actor
type ProfileLocation struct {
	District          string
	LocalMunicipality string
	Facility          string
}

// Actor is the user an operation is performed on behalf of
type Actor struct {
	UserID    uint
	Username  string
	Superuser bool
	Roles     []string
	Profile   *ProfileLocation
}

// ActorFromUser builds an Actor from a loaded user with roles and profile
func ActorFromUser(u *models.User) Actor {
	a := Actor{
		UserID:    u.ID,
		Username:  u.Username,
		Superuser: u.IsSuperuser,
		Roles:     u.RoleNames(),
	}
	if p := u.Profile; p != nil {
		loc := &ProfileLocation{District: p.District}
		if p.LocalMunicipality != nil {
			loc.LocalMunicipality = *p.LocalMunicipality
		}
		if p.Facility != nil {
			loc.Facility = *p.Facility
		}
		a.Profile = loc
	}
	return a
}

// HasRole reports whether the actor holds the named role
func (a Actor) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// EffectiveRole picks the role that drives scoping.
// Precedence: Superuser, ProvinceUser, Admin, User.
func (a Actor) EffectiveRole() string {
	switch {
	case a.Superuser:
		return RoleSuperuser
	case a.HasRole(RoleProvinceUser):
		return RoleProvinceUser
	case a.HasRole(RoleAdmin):
		return RoleAdmin
	case a.HasRole(RoleUser):
		return RoleUser
	}
	return RoleNone
}

// Authenticated reports whether the actor refers to a real user
func (a Actor) Authenticated() bool {
	return a.UserID != 0
}

// CanModify reports whether the actor may create, edit or delete deliveries.
// Admin and user accounts also need an assignment that resolves to a scope.
func (a Actor) CanModify() bool {
	if !a.Authenticated() {
		return false
	}
	switch a.EffectiveRole() {
	case RoleSuperuser, RoleAdmin, RoleUser:
		return Resolve(a).Kind != ScopeNone
	}
	return false
}

// CanManageUsers reports whether the actor may list, create, edit or delete users
func (a Actor) CanManageUsers() bool {
	switch a.EffectiveRole() {
	case RoleSuperuser:
		return true
	case RoleAdmin:
		return a.Profile != nil
	}
	return false
}

// CanExportUsers reports whether the actor may download the user list
func (a Actor) CanExportUsers() bool {
	return a.Superuser
}
