package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context, scope access.Scope, query string, page, limit int) ([]models.User, int64, error)
	ListAll(ctx context.Context) ([]models.User, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	NonSuperuserIDs(ctx context.Context) ([]uint, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByPersal(ctx context.Context, persal string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	PersalExists(ctx context.Context, persal string, excludeUserID uint) (bool, error)
	FindRoles(ctx context.Context, names []string) ([]models.Role, error)
	Create(ctx context.Context, user *models.User, roles []models.Role) error
	Update(ctx context.Context, user *models.User, roles []models.Role) error
	Delete(ctx context.Context, id uint) error
	UpdatePassword(ctx context.Context, id uint, hash string, mustChange bool) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Profile").Preload("Roles")
}

// List returns one page of users visible in scope ordered by first name, optionally searched
func (r *userRepository) List(ctx context.Context, scope access.Scope, query string, page, limit int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("left join profiles on profiles.user_id = users.id")
	base = scope.ApplyProfiles(base)
	if query != "" {
		like := "%" + query + "%"
		base = base.Where(
			"users.first_name ILIKE ? OR users.last_name ILIKE ? OR profiles.persal_number ILIKE ? OR profiles.district ILIKE ? OR profiles.facility ILIKE ?",
			like, like, like, like, like,
		)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := base.
		Preload("Profile").
		Preload("Roles").
		Order("users.first_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListAll returns every user for the user list export
func (r *userRepository) ListAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.withRelations(ctx).Order("users.id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByIDs loads the given users with their profiles
func (r *userRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.withRelations(ctx).Where("users.id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// NonSuperuserIDs returns ids of every user tracked by presence
func (r *userRepository) NonSuperuserIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("is_superuser = ?", false).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindByID loads a user with profile and roles
func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.withRelations(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPersal loads the user owning a persal number
func (r *userRepository) FindByPersal(ctx context.Context, persal string) (*models.User, error) {
	var user models.User
	err := r.withRelations(ctx).
		Joins("inner join profiles p on p.user_id = users.id").
		Where("p.persal_number = ?", persal).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername loads a user by login name
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.withRelations(ctx).Where("users.username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// PersalExists reports whether a profile other than excludeUserID's holds persal
func (r *userRepository) PersalExists(ctx context.Context, persal string, excludeUserID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Profile{}).Where("persal_number = ?", persal)
	if excludeUserID != 0 {
		query = query.Where("user_id <> ?", excludeUserID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRoles loads roles by name
func (r *userRepository) FindRoles(ctx context.Context, names []string) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Create inserts a user with profile and roles in one transaction
func (r *userRepository) Create(ctx context.Context, user *models.User, roles []models.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := user.Profile
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		if profile != nil {
			profile.UserID = user.ID
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}
		return replaceRoles(tx, user.ID, roles)
	})
}

// Update saves user columns, upserts the profile and replaces roles in one transaction
func (r *userRepository) Update(ctx context.Context, user *models.User, roles []models.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			return err
		}
		if p := user.Profile; p != nil {
			p.UserID = user.ID
			if err := tx.Save(p).Error; err != nil {
				return err
			}
		}
		return replaceRoles(tx, user.ID, roles)
	})
}

func replaceRoles(tx *gorm.DB, userID uint, roles []models.Role) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserRoleLink{}).Error; err != nil {
		return err
	}
	if len(roles) == 0 {
		return nil
	}
	links := make([]models.UserRoleLink, 0, len(roles))
	for _, role := range roles {
		links = append(links, models.UserRoleLink{UserID: userID, RoleID: role.ID})
	}
	return tx.Create(&links).Error
}

// Delete removes a user. Their deliveries keep existing with no capturing user.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Delivery{}).Where("captured_by_id = ?", id).Update("captured_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserRoleLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpdatePassword stores a new password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string, mustChange bool) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"password": hash, "must_change_password": mustChange}).Error
}

// UpdateLastLogin stamps the last successful login
func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
