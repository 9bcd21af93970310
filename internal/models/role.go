package models

import (
	"time"
)

// Role names. Superuser is a flag on User rather than a role row.
const (
	RoleProvinceUser = "ProvinceUser"
	RoleAdmin        = "Admin"
	RoleUser         = "User"
)

// SeedRoles lists the roles created at migration time
var SeedRoles = []Role{
	{Name: RoleProvinceUser, Description: "Provincial read-only access to all districts"},
	{Name: RoleAdmin, Description: "District administrator"},
	{Name: RoleUser, Description: "Facility data capturer"},
}

// Role represents the roles table
type Role struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"column:name;size:150;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Role
func (Role) TableName() string {
	return "roles"
}
