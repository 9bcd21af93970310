package models

import "time"

// UserDetail is a flattened user + profile row used by lists and exports
type UserDetail struct {
	ID                uint      `json:"id" gorm:"column:id"`
	Username          string    `json:"username" gorm:"column:username"`
	Email             string    `json:"email" gorm:"column:email"`
	FirstName         string    `json:"first_name" gorm:"column:first_name"`
	LastName          string    `json:"last_name" gorm:"column:last_name"`
	IsActive          bool      `json:"is_active" gorm:"column:is_active"`
	Title             string    `json:"title" gorm:"column:title"`
	Designation       string    `json:"designation" gorm:"column:designation"`
	PersalNumber      string    `json:"persal_number" gorm:"column:persal_number"`
	MobileNumber      string    `json:"mobile_number" gorm:"column:mobile_number"`
	District          string    `json:"district" gorm:"column:district"`
	LocalMunicipality string    `json:"local_municipality" gorm:"column:local_municipality"`
	Facility          string    `json:"facility" gorm:"column:facility"`
	Roles             string    `json:"roles" gorm:"column:roles"`
	CreatedAt         time.Time `json:"date_joined" gorm:"column:created_at"`
}

// NewUserDetail flattens a user with its optional profile. A missing profile leaves blanks.
func NewUserDetail(u *User) UserDetail {
	d := UserDetail{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	for i, name := range u.RoleNames() {
		if i > 0 {
			d.Roles += ", "
		}
		d.Roles += name
	}
	if p := u.Profile; p != nil {
		d.Title = deref(p.Title)
		d.Designation = deref(p.Designation)
		d.PersalNumber = p.PersalNumber
		d.MobileNumber = deref(p.MobileNumber)
		d.District = p.District
		d.LocalMunicipality = deref(p.LocalMunicipality)
		d.Facility = deref(p.Facility)
	}
	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
