package service

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/export"
	"festive-births-svc/internal/location"
	"festive-births-svc/internal/metrics"
	"festive-births-svc/internal/models"
	"festive-births-svc/internal/models/response"
	"festive-births-svc/internal/repository"
	"festive-births-svc/pkg/logger"
)

var (
	persalPattern = regexp.MustCompile(`^\d{8}$`)
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
)

// UserInput is a submitted user form. Password is only honoured on update.
type UserInput struct {
	FirstName         string `json:"first_name" binding:"required"`
	LastName          string `json:"last_name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Title             string `json:"title"`
	Designation       string `json:"designation"`
	PersalNumber      string `json:"persal_number" binding:"required" example:"12345678"`
	MobileNumber      string `json:"mobile_number" example:"0821234567"`
	District          string `json:"district"`
	LocalMunicipality string `json:"local_municipality"`
	Facility          string `json:"facility"`
	Role              string `json:"role" example:"User"`
	Password          string `json:"password,omitempty"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

// UserService interface defines user management methods
type UserService interface {
	List(ctx context.Context, actor access.Actor, query string, page, limit int) ([]models.UserDetail, int64, error)
	Get(ctx context.Context, actor access.Actor, id uint) (*models.UserDetail, error)
	Create(ctx context.Context, actor access.Actor, in UserInput) (*models.UserDetail, error)
	Update(ctx context.Context, actor access.Actor, id uint, in UserInput) (*models.UserDetail, error)
	Delete(ctx context.Context, actor access.Actor, id uint) error
	Form(actor access.Actor, sel access.FormSelection) response.FormResponse
	ActiveUsers(ctx context.Context, actor access.Actor) ([]response.ActiveUserResponse, error)
	ExportUsers(ctx context.Context, actor access.Actor) ([]byte, string, error)
}

// userService implements UserService interface
type userService struct {
	userRepo        repository.UserRepository
	presence        repository.PresenceStore
	dir             *location.Directory
	defaultPassword string
	metrics         *metrics.Metrics
	logger          *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	presence repository.PresenceStore,
	dir *location.Directory,
	defaultPassword string,
	m *metrics.Metrics,
	logger *logger.Logger,
) UserService {
	return &userService{
		userRepo:        userRepo,
		presence:        presence,
		dir:             dir,
		defaultPassword: defaultPassword,
		metrics:         m,
		logger:          logger,
	}
}

// List returns the users the actor manages, ordered by first name
func (s *userService) List(ctx context.Context, actor access.Actor, query string, page, limit int) ([]models.UserDetail, int64, error) {
	if !actor.CanManageUsers() {
		return nil, 0, ErrPermissionDenied
	}

	users, total, err := s.userRepo.List(ctx, access.UserScope(actor), strings.TrimSpace(query), page, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list users")
		return nil, 0, err
	}

	details := make([]models.UserDetail, 0, len(users))
	for i := range users {
		details = append(details, models.NewUserDetail(&users[i]))
	}
	return details, total, nil
}

// Get returns one managed user
func (s *userService) Get(ctx context.Context, actor access.Actor, id uint) (*models.UserDetail, error) {
	user, err := s.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	detail := models.NewUserDetail(user)
	return &detail, nil
}

// managed loads a user the actor may manage. Users outside the actor's scope are not found.
func (s *userService) managed(ctx context.Context, actor access.Actor, id uint) (*models.User, error) {
	if !actor.CanManageUsers() {
		return nil, ErrPermissionDenied
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateError(err)
	}

	if actor.Superuser {
		return user, nil
	}
	scope := access.UserScope(actor)
	if user.IsSuperuser || user.Profile == nil || !scope.Allows(user.Profile.District, "") {
		return nil, ErrNotFound
	}
	// Admins only manage data capturers.
	if target := access.ActorFromUser(user); target.EffectiveRole() != access.RoleUser && target.EffectiveRole() != access.RoleNone {
		return nil, ErrPermissionDenied
	}
	return user, nil
}

// Create adds an account on the default temporary password
func (s *userService) Create(ctx context.Context, actor access.Actor, in UserInput) (*models.UserDetail, error) {
	if !actor.CanManageUsers() {
		return nil, ErrPermissionDenied
	}

	profile, roles, err := s.validate(ctx, actor, in, 0)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		DocumentID:         uuid.New().String(),
		Username:           profile.PersalNumber,
		Email:              strings.TrimSpace(in.Email),
		FirstName:          strings.TrimSpace(in.FirstName),
		LastName:           strings.TrimSpace(in.LastName),
		Password:           string(hash),
		IsActive:           in.IsActive == nil || *in.IsActive,
		MustChangePassword: true,
		Profile:            profile,
	}

	if err := s.userRepo.Create(ctx, user, roles); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("persal_number", "A user with this persal number already exists.")
		}
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    user.ID,
		"created_by": actor.UserID,
		"role":       in.Role,
	}).Info("User created")

	return s.Get(ctx, actor, user.ID)
}

// Update edits a managed account. An empty password keeps the current one.
func (s *userService) Update(ctx context.Context, actor access.Actor, id uint, in UserInput) (*models.UserDetail, error) {
	user, err := s.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	profile, roles, err := s.validate(ctx, actor, in, user.ID)
	if err != nil {
		return nil, err
	}
	if user.Profile != nil {
		profile.ID = user.Profile.ID
		profile.CreatedAt = user.Profile.CreatedAt
	}

	if !user.IsSuperuser {
		user.Username = profile.PersalNumber
	}
	user.Email = strings.TrimSpace(in.Email)
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
		user.MustChangePassword = in.Password == s.defaultPassword
	}
	user.Profile = profile
	user.Roles = nil

	if err := s.userRepo.Update(ctx, user, roles); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("persal_number", "A user with this persal number already exists.")
		}
		s.logger.WithError(err).WithField("user_id", id).Error("Failed to update user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    id,
		"updated_by": actor.UserID,
	}).Info("User updated")

	return s.Get(ctx, actor, id)
}

// Delete removes a managed account. Deliveries it captured are kept.
func (s *userService) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if id == actor.UserID {
		return ErrPermissionDenied
	}
	if _, err := s.managed(ctx, actor, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("user_id", id).Error("Failed to delete user")
		return translateError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    id,
		"deleted_by": actor.UserID,
	}).Info("User deleted")
	return nil
}

// validate checks a user form and returns the profile and roles to store.
// excludeUserID is the account being edited, zero on create.
func (s *userService) validate(ctx context.Context, actor access.Actor, in UserInput, excludeUserID uint) (*models.Profile, []models.Role, error) {
	verr := &ValidationError{}
	fields := access.DeriveFieldConstraints(actor, s.dir, access.FormUser, access.FormSelection{
		District:          in.District,
		LocalMunicipality: in.LocalMunicipality,
	})

	if strings.TrimSpace(in.FirstName) == "" {
		verr.Add("first_name", requiredMessage)
	}
	if strings.TrimSpace(in.LastName) == "" {
		verr.Add("last_name", requiredMessage)
	}

	persal := strings.TrimSpace(in.PersalNumber)
	switch {
	case persal == "":
		verr.Add("persal_number", requiredMessage)
	case !persalPattern.MatchString(persal):
		verr.Add("persal_number", "Persal number must be exactly 8 digits.")
	default:
		exists, err := s.userRepo.PersalExists(ctx, persal, excludeUserID)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			verr.Add("persal_number", "A user with this persal number already exists.")
		}
	}

	mobile := strings.TrimSpace(in.MobileNumber)
	if mobile != "" && !mobilePattern.MatchString(mobile) {
		verr.Add("mobile_number", "Mobile number must be exactly 10 digits.")
	}

	title := strings.TrimSpace(in.Title)
	if title != "" && !contains(models.TitleChoices, title) {
		verr.Add("title", "Select a valid title.")
	}

	role := lockedValue(fields["role"], in.Role)
	switch {
	case role == "":
		verr.Add("role", requiredMessage)
	case !contains(fields["role"].Choices, role):
		verr.Add("role", "Select a valid role.")
	}

	district := lockedValue(fields["district"], in.District)
	municipality := strings.TrimSpace(in.LocalMunicipality)
	facility := strings.TrimSpace(in.Facility)
	switch {
	case district == "":
		verr.Add("district", requiredMessage)
	case !s.dir.HasDistrict(district):
		verr.Add("district", "Select a valid district.")
	case municipality != "" && !s.dir.HasMunicipality(district, municipality):
		verr.Add("local_municipality", "Select a valid local municipality for "+district+".")
	case facility != "" && !s.dir.HasFacility(municipality, facility):
		verr.Add("facility", "Select a valid facility for the chosen local municipality.")
	}
	if role == models.RoleUser && facility == "" && !verr.hasField("facility") {
		verr.Add("facility", "A facility is required for data capturers.")
	}

	if err := verr.orNil(); err != nil {
		return nil, nil, err
	}

	roles, err := s.userRepo.FindRoles(ctx, []string{role})
	if err != nil {
		return nil, nil, err
	}
	if len(roles) == 0 {
		return nil, nil, NewValidationError("role", "Select a valid role.")
	}

	return &models.Profile{
		Title:             optional(title),
		Designation:       optional(in.Designation),
		PersalNumber:      persal,
		MobileNumber:      optional(mobile),
		District:          district,
		LocalMunicipality: optional(municipality),
		Facility:          optional(facility),
	}, roles, nil
}

// Form describes the user form for the actor
func (s *userService) Form(actor access.Actor, sel access.FormSelection) response.FormResponse {
	return response.FormResponse{
		Form:   access.FormUser,
		Fields: access.DeriveFieldConstraints(actor, s.dir, access.FormUser, sel),
	}
}

// ActiveUsers lists managed users seen in the last five minutes, most recent first.
// Presence is best-effort: a cache failure yields an empty list.
func (s *userService) ActiveUsers(ctx context.Context, actor access.Actor) ([]response.ActiveUserResponse, error) {
	if !actor.CanManageUsers() {
		return nil, ErrPermissionDenied
	}

	ids, err := s.userRepo.NonSuperuserIDs(ctx)
	if err != nil {
		return nil, err
	}

	active := []response.ActiveUserResponse{}
	seen, err := s.presence.LastSeen(ctx, ids)
	if err != nil {
		s.logger.WithError(err).Warn("Presence lookup failed")
		return active, nil
	}
	if len(seen) == 0 {
		return active, nil
	}

	seenIDs := make([]uint, 0, len(seen))
	for id := range seen {
		seenIDs = append(seenIDs, id)
	}
	users, err := s.userRepo.ListByIDs(ctx, seenIDs)
	if err != nil {
		return nil, err
	}

	scope := access.UserScope(actor)
	for i := range users {
		u := &users[i]
		d := models.NewUserDetail(u)
		if !actor.Superuser && !scope.Allows(d.District, d.Facility) {
			continue
		}
		active = append(active, response.ActiveUserResponse{
			ID:           u.ID,
			Username:     u.Username,
			FullName:     u.FullName(),
			District:     d.District,
			Facility:     d.Facility,
			LastActivity: seen[u.ID].UTC().Format(time.RFC3339),
		})
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].LastActivity > active[j].LastActivity
	})
	return active, nil
}

// ExportUsers builds the user list spreadsheet
func (s *userService) ExportUsers(ctx context.Context, actor access.Actor) ([]byte, string, error) {
	if !actor.CanExportUsers() {
		return nil, "", ErrPermissionDenied
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load users for export")
		return nil, "", err
	}

	data, filename, err := export.UserList(users)
	if err != nil {
		s.logger.WithError(err).Error("Failed to build user list")
		return nil, "", err
	}

	s.metrics.IncrementReport("user_list")
	s.logger.WithField("users", len(users)).Info("User list exported")
	return data, filename, nil
}
