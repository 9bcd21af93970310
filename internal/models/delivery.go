package models

import (
	"strings"
	"time"
)

// Delivery is one reporting event at a facility for a report window.
// When NoBirthsToReport is set every mother field is nil and no live babies exist.
type Delivery struct {
	ID                uint       `json:"id" gorm:"primarykey"`
	DocumentID        string     `json:"document_id" gorm:"column:document_id;size:36;uniqueIndex"`
	District          string     `json:"district" gorm:"column:district;size:100;index"`
	LocalMunicipality string     `json:"local_municipality" gorm:"column:local_municipality;size:100;index"`
	Facility          string     `json:"facility" gorm:"column:facility;size:100;index"`
	FacilityType      string     `json:"facility_type" gorm:"column:facility_type;size:100"`
	ReportDate        string     `json:"report_date" gorm:"column:report_date;size:50;index"`
	TimeSlot          string     `json:"time_slot" gorm:"column:time_slot;size:20"`
	NoBirthsToReport  bool       `json:"no_births_to_report" gorm:"column:no_births_to_report;default:false"`
	BornBeforeArrival bool       `json:"born_before_arrival" gorm:"column:born_before_arrival;default:false"`
	DeliveryTime      *string    `json:"delivery_time" gorm:"column:delivery_time;size:5"`
	MotherName        *string    `json:"mother_name" gorm:"column:mother_name;size:100"`
	MotherSurname     *string    `json:"mother_surname" gorm:"column:mother_surname;size:100"`
	MotherDOB         *time.Time `json:"mother_dob" gorm:"column:mother_dob;type:date"`
	BirthMode         *string    `json:"birth_mode" gorm:"column:birth_mode;size:100"`
	Gravidity         *int       `json:"gravidity" gorm:"column:gravidity"`
	Parity            *int       `json:"parity" gorm:"column:parity"`
	CapturedByID      *uint      `json:"captured_by_id" gorm:"column:captured_by_id;index"`
	CreatedAt         time.Time  `json:"timestamp" gorm:"column:timestamp;autoCreateTime;index"`
	UpdatedAt         time.Time  `json:"updated_at"`

	CapturedBy *User  `json:"captured_by,omitempty" gorm:"foreignKey:CapturedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Babies     []Baby `json:"babies" gorm:"foreignKey:DeliveryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TableName sets the insert table name for Delivery
func (Delivery) TableName() string {
	return "deliveries"
}

// MotherFullName joins the mother's name and surname, skipping blanks
func (d *Delivery) MotherFullName() string {
	var parts []string
	for _, p := range []*string{d.MotherName, d.MotherSurname} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, " ")
}

// CapturedByUsername returns the capturing user's login or "N/A" once the user is gone
func (d *Delivery) CapturedByUsername() string {
	if d.CapturedBy == nil {
		return "N/A"
	}
	return d.CapturedBy.Username
}
