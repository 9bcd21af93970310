package models

import (
	"gorm.io/gorm"
)

// Gender values
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Baby belongs to exactly one Delivery. Removal is a soft delete.
type Baby struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	DeliveryID uint           `json:"delivery_id" gorm:"column:delivery_id;index;not null"`
	Gender     *string        `json:"gender" gorm:"column:gender;size:10"`
	Weight     *int           `json:"weight" gorm:"column:weight"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

// TableName sets the insert table name for Baby
func (Baby) TableName() string {
	return "babies"
}

// GenderValue returns the gender or an empty string
func (b *Baby) GenderValue() string {
	if b.Gender == nil {
		return ""
	}
	return *b.Gender
}
