package models

// UserRoleLink represents the user_roles_lnk join table
type UserRoleLink struct {
	UserID uint `json:"user_id" gorm:"column:user_id;primaryKey"`
	RoleID uint `json:"role_id" gorm:"column:role_id;primaryKey"`
}

// TableName sets the insert table name for UserRoleLink
func (UserRoleLink) TableName() string {
	return "user_roles_lnk"
}
