package access

import (
	"gorm.io/gorm"
)

// ScopeKind is the width of an actor's view over deliveries
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeAll
	ScopeDistrict
	ScopeFacility
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "all"
	case ScopeDistrict:
		return "district"
	case ScopeFacility:
		return "facility"
	}
	return "none"
}

// Scope is a predicate over a record's district and facility
type Scope struct {
	Kind     ScopeKind
	District string
	Facility string
}

// Resolve computes the records an actor may see.
// A non-superuser without a profile, or without a recognised role, sees nothing.
func Resolve(a Actor) Scope {
	switch a.EffectiveRole() {
	case RoleSuperuser, RoleProvinceUser:
		return Scope{Kind: ScopeAll}
	case RoleAdmin:
		if a.Profile == nil || a.Profile.District == "" {
			return Scope{Kind: ScopeNone}
		}
		return Scope{Kind: ScopeDistrict, District: a.Profile.District}
	case RoleUser:
		if a.Profile == nil || a.Profile.Facility == "" {
			return Scope{Kind: ScopeNone}
		}
		return Scope{Kind: ScopeFacility, Facility: a.Profile.Facility}
	}
	return Scope{Kind: ScopeNone}
}

// Allows reports whether a record at district/facility falls inside the scope
func (s Scope) Allows(district, facility string) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeDistrict:
		return district == s.District
	case ScopeFacility:
		return facility == s.Facility
	}
	return false
}

// Apply narrows a deliveries query to the scope
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	switch s.Kind {
	case ScopeAll:
		return db
	case ScopeDistrict:
		return db.Where("deliveries.district = ?", s.District)
	case ScopeFacility:
		return db.Where("deliveries.facility = ?", s.Facility)
	}
	return db.Where("1 = 0")
}

// UserScope narrows a users query for user management.
// Superusers see every user, admins the users assigned to their district.
func UserScope(a Actor) Scope {
	switch a.EffectiveRole() {
	case RoleSuperuser:
		return Scope{Kind: ScopeAll}
	case RoleAdmin:
		if a.Profile != nil && a.Profile.District != "" {
			return Scope{Kind: ScopeDistrict, District: a.Profile.District}
		}
	}
	return Scope{Kind: ScopeNone}
}

// ApplyProfiles narrows a users query joined with profiles
func (s Scope) ApplyProfiles(db *gorm.DB) *gorm.DB {
	switch s.Kind {
	case ScopeAll:
		return db
	case ScopeDistrict:
		return db.Where("profiles.district = ?", s.District)
	case ScopeFacility:
		return db.Where("profiles.facility = ?", s.Facility)
	}
	return db.Where("1 = 0")
}
