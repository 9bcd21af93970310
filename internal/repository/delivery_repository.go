package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/dashboard"
	"festive-births-svc/internal/models"
	"festive-births-svc/internal/models/response"
)

// NilReportFilter narrows the NIL report. Dates compare against the capture timestamp, both inclusive.
type NilReportFilter struct {
	StartDate         *time.Time
	EndDate           *time.Time
	District          string
	LocalMunicipality string
	Facility          string
}

// DeliveryRepository defines the interface for delivery data operations
type DeliveryRepository interface {
	List(ctx context.Context, scope access.Scope, query string, page, limit int) ([]models.Delivery, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Delivery, error)
	Create(ctx context.Context, delivery *models.Delivery, babies []models.Baby) error
	Update(ctx context.Context, delivery *models.Delivery, create, update []models.Baby, deleteIDs []uint) error
	Delete(ctx context.Context, id uint) error
	FindForDashboard(ctx context.Context, scope access.Scope, filters dashboard.Filters) ([]models.Delivery, error)
	FindForExport(ctx context.Context, scope access.Scope) ([]models.Delivery, error)
	FindNilReports(ctx context.Context, scope access.Scope, filter NilReportFilter) ([]models.Delivery, error)
	FindAbnormalWeights(ctx context.Context, scope access.Scope, min, max int) ([]response.AbnormalWeightRow, error)
}

// deliveryRepository implements DeliveryRepository
type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new instance of DeliveryRepository
func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{
		db: db,
	}
}

// List returns one page of scoped deliveries, newest first, optionally searched
func (r *deliveryRepository) List(ctx context.Context, scope access.Scope, query string, page, limit int) ([]models.Delivery, int64, error) {
	base := scope.Apply(r.db.WithContext(ctx).Model(&models.Delivery{}))
	if query != "" {
		like := "%" + query + "%"
		base = base.Where(
			"deliveries.facility ILIKE ? OR deliveries.mother_name ILIKE ? OR deliveries.mother_surname ILIKE ? OR deliveries.birth_mode ILIKE ?",
			like, like, like, like,
		)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var deliveries []models.Delivery
	offset := (page - 1) * limit
	err := base.
		Preload("Babies").
		Preload("CapturedBy").
		Order("deliveries.timestamp DESC").
		Offset(offset).
		Limit(limit).
		Find(&deliveries).Error
	if err != nil {
		return nil, 0, err
	}

	return deliveries, total, nil
}

// FindByID loads a delivery with its live babies and capturing user
func (r *deliveryRepository) FindByID(ctx context.Context, id uint) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.WithContext(ctx).
		Preload("Babies", func(db *gorm.DB) *gorm.DB { return db.Order("babies.id") }).
		Preload("CapturedBy").
		First(&delivery, id).Error
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

// Create inserts a delivery and its babies in one transaction
func (r *deliveryRepository) Create(ctx context.Context, delivery *models.Delivery, babies []models.Baby) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(delivery).Error; err != nil {
			return err
		}
		if len(babies) == 0 {
			return nil
		}
		for i := range babies {
			babies[i].DeliveryID = delivery.ID
		}
		if err := tx.Create(&babies).Error; err != nil {
			return err
		}
		delivery.Babies = babies
		return nil
	})
}

// Update saves every delivery column and applies the baby changes in one transaction.
// Deleted babies are soft deleted.
func (r *deliveryRepository) Update(ctx context.Context, delivery *models.Delivery, create, update []models.Baby, deleteIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(delivery).Error; err != nil {
			return err
		}

		if len(deleteIDs) > 0 {
			if err := tx.Where("delivery_id = ? AND id IN ?", delivery.ID, deleteIDs).Delete(&models.Baby{}).Error; err != nil {
				return err
			}
		}

		for _, b := range update {
			err := tx.Model(&models.Baby{}).
				Where("id = ? AND delivery_id = ?", b.ID, delivery.ID).
				Updates(map[string]interface{}{"gender": b.Gender, "weight": b.Weight}).Error
			if err != nil {
				return err
			}
		}

		if len(create) > 0 {
			for i := range create {
				create[i].DeliveryID = delivery.ID
			}
			if err := tx.Create(&create).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a delivery. Babies go with it through the foreign key cascade.
func (r *deliveryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Delivery{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindForDashboard loads scoped deliveries narrowed by the dashboard filters
func (r *deliveryRepository) FindForDashboard(ctx context.Context, scope access.Scope, filters dashboard.Filters) ([]models.Delivery, error) {
	query := scope.Apply(r.db.WithContext(ctx).Model(&models.Delivery{}))
	if filters.ReportDate != "" {
		query = query.Where("deliveries.report_date = ?", filters.ReportDate)
	}
	if filters.District != "" {
		query = query.Where("deliveries.district = ?", filters.District)
	}
	if filters.LocalMunicipality != "" {
		query = query.Where("deliveries.local_municipality = ?", filters.LocalMunicipality)
	}
	if filters.Facility != "" {
		query = query.Where("deliveries.facility = ?", filters.Facility)
	}

	var deliveries []models.Delivery
	if err := query.Preload("Babies").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindForExport loads every scoped delivery oldest first with babies and capturing user
func (r *deliveryRepository) FindForExport(ctx context.Context, scope access.Scope) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := scope.Apply(r.db.WithContext(ctx).Model(&models.Delivery{})).
		Preload("Babies", func(db *gorm.DB) *gorm.DB { return db.Order("babies.id") }).
		Preload("CapturedBy").
		Order("deliveries.timestamp ASC").
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindNilReports loads scoped NIL deliveries, newest first
func (r *deliveryRepository) FindNilReports(ctx context.Context, scope access.Scope, filter NilReportFilter) ([]models.Delivery, error) {
	query := scope.Apply(r.db.WithContext(ctx).Model(&models.Delivery{})).
		Where("deliveries.no_births_to_report = ?", true)
	if filter.StartDate != nil {
		query = query.Where("deliveries.timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("deliveries.timestamp < ?", filter.EndDate.AddDate(0, 0, 1))
	}
	if filter.District != "" {
		query = query.Where("deliveries.district = ?", filter.District)
	}
	if filter.LocalMunicipality != "" {
		query = query.Where("deliveries.local_municipality = ?", filter.LocalMunicipality)
	}
	if filter.Facility != "" {
		query = query.Where("deliveries.facility = ?", filter.Facility)
	}

	var deliveries []models.Delivery
	if err := query.Preload("CapturedBy").Order("deliveries.timestamp DESC").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindAbnormalWeights lists live babies weighing under min or at least max grams
func (r *deliveryRepository) FindAbnormalWeights(ctx context.Context, scope access.Scope, min, max int) ([]response.AbnormalWeightRow, error) {
	var rows []response.AbnormalWeightRow

	query := r.db.WithContext(ctx).
		Table("babies").
		Select(`babies.id as baby_id, babies.delivery_id, babies.gender, babies.weight,
			deliveries.report_date, deliveries.delivery_time, deliveries.district,
			deliveries.local_municipality, deliveries.facility,
			deliveries.mother_name, deliveries.mother_surname`).
		Joins("inner join deliveries on deliveries.id = babies.delivery_id").
		Where("babies.deleted_at IS NULL").
		Where("deliveries.no_births_to_report = ?", false).
		Where("babies.weight IS NOT NULL AND (babies.weight < ? OR babies.weight >= ?)", min, max)

	err := scope.Apply(query).
		Order("deliveries.facility, babies.weight").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
