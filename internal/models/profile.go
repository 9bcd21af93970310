package models

import (
	"time"
)

// Title choices for profiles
var TitleChoices = []string{"Mr", "Ms", "Mrs", "Miss", "Dr", "Prof"}

// Profile represents the profiles table, one-to-one with User
type Profile struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	UserID            uint      `json:"user_id" gorm:"column:user_id;uniqueIndex;not null"`
	Title             *string   `json:"title" gorm:"column:title;size:10"`
	Designation       *string   `json:"designation" gorm:"column:designation;size:100"`
	PersalNumber      string    `json:"persal_number" gorm:"column:persal_number;size:8;uniqueIndex;not null"`
	MobileNumber      *string   `json:"mobile_number" gorm:"column:mobile_number;size:10"`
	District          string    `json:"district" gorm:"column:district;size:100;not null"`
	LocalMunicipality *string   `json:"local_municipality" gorm:"column:local_municipality;size:100"`
	Facility          *string   `json:"facility" gorm:"column:facility;size:100"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
