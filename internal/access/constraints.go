package access

import (
	"festive-births-svc/internal/location"
	"festive-births-svc/internal/models"
)

// Form names accepted by DeriveFieldConstraints
const (
	FormDelivery     = "delivery"
	FormReportFilter = "report_filter"
	FormUser         = "user"
)

// FieldConstraint describes how one form field is offered to an actor.
// A nil Choices slice means the field is free text.
type FieldConstraint struct {
	Choices []string `json:"choices"`
	Locked  bool     `json:"locked"`
	Initial string   `json:"initial,omitempty"`
}

// FormSelection carries the values already chosen on a form, either submitted or persisted
type FormSelection struct {
	District          string
	LocalMunicipality string
}

// DeriveFieldConstraints returns the location and role fields of a form as seen by the actor.
// Choices cascade from the current selection; admin and user accounts get their assignment locked.
func DeriveFieldConstraints(a Actor, dir *location.Directory, form string, sel FormSelection) map[string]FieldConstraint {
	fields := map[string]FieldConstraint{
		"district":           {Choices: dir.Districts()},
		"local_municipality": {Choices: cascade(dir.Municipalities, sel.District)},
		"facility":           {Choices: cascade(dir.Facilities, sel.LocalMunicipality)},
	}

	switch form {
	case FormDelivery:
		fields["facility_type"] = FieldConstraint{Choices: location.FacilityTypeChoices, Locked: true}
		fields["time_slot"] = FieldConstraint{Choices: models.TimeSlotChoices, Locked: true}
		fields["birth_mode"] = FieldConstraint{Choices: models.BirthModeChoices}
	case FormUser:
		fields["role"] = FieldConstraint{Choices: []string{models.RoleProvinceUser, models.RoleAdmin, models.RoleUser}}
		fields["title"] = FieldConstraint{Choices: models.TitleChoices}
	}

	role := a.EffectiveRole()
	if role == RoleSuperuser || (role == RoleProvinceUser && form != FormUser) {
		return fields
	}

	p := a.Profile
	if p == nil {
		for _, name := range []string{"district", "local_municipality", "facility"} {
			fields[name] = FieldConstraint{Choices: []string{}, Locked: true}
		}
		return fields
	}

	switch {
	case form == FormUser && role == RoleAdmin:
		fields["district"] = locked(p.District)
		if sel.District == "" {
			fields["local_municipality"] = FieldConstraint{Choices: dir.Municipalities(p.District)}
		}
		fields["role"] = FieldConstraint{Choices: []string{models.RoleUser}, Locked: true, Initial: models.RoleUser}
	case form == FormUser:
		// Only superusers and admins manage users.
	case role == RoleAdmin:
		fields["district"] = locked(p.District)
		fields["local_municipality"] = FieldConstraint{Choices: dir.Municipalities(p.District)}
	case role == RoleUser:
		fields["district"] = locked(p.District)
		fields["local_municipality"] = locked(p.LocalMunicipality)
		fields["facility"] = locked(p.Facility)
	}
	return fields
}

func locked(value string) FieldConstraint {
	return FieldConstraint{Choices: []string{value}, Locked: true, Initial: value}
}

func cascade(lookup func(string) []string, parent string) []string {
	if parent == "" {
		return []string{}
	}
	return lookup(parent)
}
