package models

import (
	"time"
)

// User represents the users table
type User struct {
	ID                 uint       `json:"id" gorm:"primarykey"`
	DocumentID         string     `json:"document_id" gorm:"column:document_id;size:36;uniqueIndex"`
	Username           string     `json:"username" gorm:"column:username;size:150;uniqueIndex;not null"`
	Email              string     `json:"email" gorm:"column:email;size:254"`
	FirstName          string     `json:"first_name" gorm:"column:first_name;size:150"`
	LastName           string     `json:"last_name" gorm:"column:last_name;size:150"`
	Password           string     `json:"-" gorm:"column:password;size:128;not null"`
	IsSuperuser        bool       `json:"is_superuser" gorm:"column:is_superuser;default:false"`
	IsActive           bool       `json:"is_active" gorm:"column:is_active;default:true"`
	MustChangePassword bool       `json:"must_change_password" gorm:"column:must_change_password;default:false"`
	LastLogin          *time.Time `json:"last_login" gorm:"column:last_login"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Roles   []Role   `json:"roles,omitempty" gorm:"many2many:user_roles_lnk;joinForeignKey:UserID;joinReferences:RoleID"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}

// RoleNames returns the names of the roles attached to the user
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// FullName joins first and last name
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
