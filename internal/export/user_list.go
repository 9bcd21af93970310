package export

import (
	"festive-births-svc/internal/models"
)

// User list file details
const (
	UserListSheet    = "User List"
	UserListFilename = "user_list.xlsx"
)

// UserListHeaders is the fixed column order of the user list
var UserListHeaders = []string{
	"Username", "First Name", "Last Name", "Email", "Title", "Designation",
	"Persal Number", "Mobile Number", "District", "Local Municipality", "Facility",
	"Roles", "Active", "Date Joined",
}

// UserList writes one row per user. Users without a profile get blank profile columns.
func UserList(users []models.User) ([]byte, string, error) {
	rows := make([][]interface{}, 0, len(users))
	for i := range users {
		d := models.NewUserDetail(&users[i])
		rows = append(rows, []interface{}{
			d.Username, d.FirstName, d.LastName, d.Email, d.Title, d.Designation,
			d.PersalNumber, d.MobileNumber, d.District, d.LocalMunicipality, d.Facility,
			d.Roles, yesNo(d.IsActive), d.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	data, err := writeSheet(UserListSheet, UserListHeaders, rows)
	if err != nil {
		return nil, "", err
	}
	return data, UserListFilename, nil
}
