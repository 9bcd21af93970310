package access

import (
	"testing"

	"festive-births-svc/internal/location"
	"festive-births-svc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	superuser = Actor{UserID: 1, Username: "root", Superuser: true}
	province  = Actor{UserID: 2, Username: "11111111", Roles: []string{RoleProvinceUser},
		Profile: &ProfileLocation{District: "Amathole DM"}}
	admin = Actor{UserID: 3, Username: "22222222", Roles: []string{RoleAdmin},
		Profile: &ProfileLocation{District: "Amathole DM"}}
	user = Actor{UserID: 4, Username: "33333333", Roles: []string{RoleUser},
		Profile: &ProfileLocation{District: "Amathole DM", LocalMunicipality: "Mnquma LM", Facility: "Butterworth Hospital"}}
	orphan     = Actor{UserID: 5, Username: "44444444", Roles: []string{RoleUser}}
	unassigned = Actor{UserID: 6, Username: "55555555", Profile: &ProfileLocation{District: "Amathole DM"}}
)

type record struct {
	district string
	facility string
}

func TestResolve_ScenarioAcrossDistricts(t *testing.T) {
	records := []record{
		{"Amathole DM", "Butterworth Hospital"},
		{"Amathole DM", "Komga Hospital"},
		{"Buffalo City MM", "Frere Hospital"},
	}

	visible := func(a Actor) []record {
		s := Resolve(a)
		var out []record
		for _, r := range records {
			if s.Allows(r.district, r.facility) {
				out = append(out, r)
			}
		}
		return out
	}

	assert.Equal(t, []record{records[0]}, visible(user))
	assert.Equal(t, records[:2], visible(admin))
	assert.Equal(t, records, visible(superuser))
	assert.Equal(t, records, visible(province))
	assert.Empty(t, visible(orphan))
	assert.Empty(t, visible(unassigned))
}

func TestResolve_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		want  Scope
	}{
		{"superuser", superuser, Scope{Kind: ScopeAll}},
		{"province user", province, Scope{Kind: ScopeAll}},
		{"admin", admin, Scope{Kind: ScopeDistrict, District: "Amathole DM"}},
		{"user", user, Scope{Kind: ScopeFacility, Facility: "Butterworth Hospital"}},
		{"user without profile", orphan, Scope{Kind: ScopeNone}},
		{"no role", unassigned, Scope{Kind: ScopeNone}},
		{"anonymous", Actor{}, Scope{Kind: ScopeNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.actor))
		})
	}
}

func TestEffectiveRole_Precedence(t *testing.T) {
	a := Actor{UserID: 9, Roles: []string{RoleUser, RoleAdmin, RoleProvinceUser}}
	assert.Equal(t, RoleProvinceUser, a.EffectiveRole())

	a.Superuser = true
	assert.Equal(t, RoleSuperuser, a.EffectiveRole())
}

func TestCapabilities(t *testing.T) {
	assert.True(t, superuser.CanModify())
	assert.True(t, admin.CanModify())
	assert.True(t, user.CanModify())
	assert.False(t, province.CanModify())
	assert.False(t, unassigned.CanModify())
	assert.False(t, Actor{}.CanModify())
	assert.False(t, orphan.CanModify())
	assert.False(t, Actor{UserID: 8, Roles: []string{RoleAdmin}}.CanModify())
	assert.False(t, Actor{UserID: 9, Roles: []string{RoleAdmin}, Profile: &ProfileLocation{}}.CanModify())
	assert.False(t, Actor{UserID: 10, Roles: []string{RoleUser}, Profile: &ProfileLocation{District: "Amathole DM"}}.CanModify())

	assert.True(t, superuser.CanManageUsers())
	assert.True(t, admin.CanManageUsers())
	assert.False(t, user.CanManageUsers())
	assert.False(t, province.CanManageUsers())

	assert.True(t, superuser.CanExportUsers())
	assert.False(t, admin.CanExportUsers())
}

func TestUserScope(t *testing.T) {
	assert.Equal(t, ScopeAll, UserScope(superuser).Kind)
	assert.Equal(t, Scope{Kind: ScopeDistrict, District: "Amathole DM"}, UserScope(admin))
	assert.Equal(t, ScopeNone, UserScope(user).Kind)
	assert.Equal(t, ScopeNone, UserScope(province).Kind)
}

func TestActorFromUser(t *testing.T) {
	facility := "Frere Hospital"
	u := &models.User{
		ID:       7,
		Username: "12345678",
		Roles:    []models.Role{{Name: models.RoleUser}},
		Profile:  &models.Profile{District: "Buffalo City MM", Facility: &facility},
	}

	a := ActorFromUser(u)
	assert.Equal(t, uint(7), a.UserID)
	assert.Equal(t, RoleUser, a.EffectiveRole())
	require.NotNil(t, a.Profile)
	assert.Equal(t, "Frere Hospital", a.Profile.Facility)
	assert.Empty(t, a.Profile.LocalMunicipality)

	u.Profile = nil
	assert.Nil(t, ActorFromUser(u).Profile)
}

func TestDeriveFieldConstraints_Delivery(t *testing.T) {
	dir := location.NewDirectory()

	t.Run("superuser cascades from selection", func(t *testing.T) {
		fields := DeriveFieldConstraints(superuser, dir, FormDelivery, FormSelection{District: "Buffalo City MM", LocalMunicipality: "Buffalo City SD"})
		assert.False(t, fields["district"].Locked)
		assert.Len(t, fields["district"].Choices, 8)
		assert.Equal(t, []string{"Buffalo City SD"}, fields["local_municipality"].Choices)
		assert.Contains(t, fields["facility"].Choices, "Frere Hospital")
		assert.True(t, fields["facility_type"].Locked)
		assert.True(t, fields["time_slot"].Locked)
	})

	t.Run("no selection gives empty children", func(t *testing.T) {
		fields := DeriveFieldConstraints(superuser, dir, FormDelivery, FormSelection{})
		assert.NotNil(t, fields["local_municipality"].Choices)
		assert.Empty(t, fields["local_municipality"].Choices)
		assert.Empty(t, fields["facility"].Choices)
	})

	t.Run("admin district locked", func(t *testing.T) {
		fields := DeriveFieldConstraints(admin, dir, FormDelivery, FormSelection{})
		assert.Equal(t, FieldConstraint{Choices: []string{"Amathole DM"}, Locked: true, Initial: "Amathole DM"}, fields["district"])
		assert.False(t, fields["local_municipality"].Locked)
		assert.Contains(t, fields["local_municipality"].Choices, "Mnquma LM")
	})

	t.Run("user fully locked", func(t *testing.T) {
		fields := DeriveFieldConstraints(user, dir, FormDelivery, FormSelection{District: "Buffalo City MM"})
		assert.True(t, fields["district"].Locked)
		assert.Equal(t, "Mnquma LM", fields["local_municipality"].Initial)
		assert.True(t, fields["local_municipality"].Locked)
		assert.Equal(t, []string{"Butterworth Hospital"}, fields["facility"].Choices)
		assert.True(t, fields["facility"].Locked)
	})

	t.Run("no profile locks every location field", func(t *testing.T) {
		for _, a := range []Actor{orphan, {UserID: 8, Roles: []string{RoleAdmin}}} {
			fields := DeriveFieldConstraints(a, dir, FormDelivery, FormSelection{District: "OR Tambo DM"})
			for _, name := range []string{"district", "local_municipality", "facility"} {
				assert.True(t, fields[name].Locked, name)
				assert.Empty(t, fields[name].Choices, name)
				assert.Empty(t, fields[name].Initial, name)
			}
		}
	})

	t.Run("province user unrestricted", func(t *testing.T) {
		fields := DeriveFieldConstraints(province, dir, FormReportFilter, FormSelection{})
		assert.False(t, fields["district"].Locked)
		assert.Len(t, fields["district"].Choices, 8)
	})
}

func TestDeriveFieldConstraints_UserForm(t *testing.T) {
	dir := location.NewDirectory()

	fields := DeriveFieldConstraints(superuser, dir, FormUser, FormSelection{})
	assert.Equal(t, []string{models.RoleProvinceUser, models.RoleAdmin, models.RoleUser}, fields["role"].Choices)
	assert.False(t, fields["district"].Locked)

	fields = DeriveFieldConstraints(admin, dir, FormUser, FormSelection{})
	assert.Equal(t, []string{models.RoleUser}, fields["role"].Choices)
	assert.True(t, fields["role"].Locked)
	assert.True(t, fields["district"].Locked)
	assert.Equal(t, "Amathole DM", fields["district"].Initial)
	assert.Contains(t, fields["local_municipality"].Choices, "Great Kei LM")
	assert.Equal(t, models.TitleChoices, fields["title"].Choices)
}
