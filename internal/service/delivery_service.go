package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/capture"
	"festive-births-svc/internal/location"
	"festive-births-svc/internal/metrics"
	"festive-births-svc/internal/models"
	"festive-births-svc/internal/models/response"
	"festive-births-svc/internal/repository"
	"festive-births-svc/pkg/logger"
)

// DeliveryService interface defines delivery capture methods
type DeliveryService interface {
	List(ctx context.Context, actor access.Actor, query string, page, limit int) ([]models.Delivery, int64, error)
	Get(ctx context.Context, actor access.Actor, id uint) (*models.Delivery, error)
	Create(ctx context.Context, actor access.Actor, in capture.Input) (*models.Delivery, error)
	Update(ctx context.Context, actor access.Actor, id uint, in capture.Input) (*models.Delivery, error)
	Delete(ctx context.Context, actor access.Actor, id uint) error
	Form(actor access.Actor, sel access.FormSelection) response.FormResponse
}

// deliveryService implements DeliveryService interface
type deliveryService struct {
	deliveryRepo repository.DeliveryRepository
	planner      *capture.Planner
	dir          *location.Directory
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(
	deliveryRepo repository.DeliveryRepository,
	planner *capture.Planner,
	dir *location.Directory,
	m *metrics.Metrics,
	logger *logger.Logger,
) DeliveryService {
	return &deliveryService{
		deliveryRepo: deliveryRepo,
		planner:      planner,
		dir:          dir,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// List returns one page of the deliveries the actor may see
func (s *deliveryService) List(ctx context.Context, actor access.Actor, query string, page, limit int) ([]models.Delivery, int64, error) {
	scope := access.Resolve(actor)
	deliveries, total, err := s.deliveryRepo.List(ctx, scope, strings.TrimSpace(query), page, limit)
	if err != nil {
		s.logger.WithError(err).WithField("scope", scope.Kind.String()).Error("Failed to list deliveries")
		return nil, 0, err
	}
	return deliveries, total, nil
}

// Get returns a delivery inside the actor's scope. Anything outside it is not found.
func (s *deliveryService) Get(ctx context.Context, actor access.Actor, id uint) (*models.Delivery, error) {
	delivery, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateError(err)
	}
	if !access.Resolve(actor).Allows(delivery.District, delivery.Facility) {
		return nil, ErrNotFound
	}
	return delivery, nil
}

// Create validates and stores a new submission with its babies
func (s *deliveryService) Create(ctx context.Context, actor access.Actor, in capture.Input) (*models.Delivery, error) {
	if !actor.CanModify() {
		return nil, ErrPermissionDenied
	}

	plan, err := s.planner.Plan(actor, in, nil, s.now())
	if err != nil {
		return nil, translateError(err)
	}

	d := plan.Delivery
	if !access.Resolve(actor).Allows(d.District, d.Facility) {
		return nil, ErrPermissionDenied
	}
	d.DocumentID = uuid.New().String()
	capturedBy := actor.UserID
	d.CapturedByID = &capturedBy

	if err := s.deliveryRepo.Create(ctx, d, plan.Create); err != nil {
		s.logger.WithError(err).Error("Failed to create delivery")
		return nil, err
	}

	s.metrics.IncrementDeliverySaved("create", string(plan.State))
	s.logger.WithFields(map[string]interface{}{
		"delivery_id": d.ID,
		"state":       plan.State,
		"babies":      len(plan.Create),
		"user_id":     actor.UserID,
	}).Info("Delivery captured")

	return s.Get(ctx, actor, d.ID)
}

// Update applies a submission to an existing delivery in the actor's scope
func (s *deliveryService) Update(ctx context.Context, actor access.Actor, id uint, in capture.Input) (*models.Delivery, error) {
	if !actor.CanModify() {
		return nil, ErrPermissionDenied
	}

	existing, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.Plan(actor, in, existing, s.now())
	if err != nil {
		return nil, translateError(err)
	}

	d := plan.Delivery
	if !access.Resolve(actor).Allows(d.District, d.Facility) {
		return nil, ErrPermissionDenied
	}
	d.Babies = nil
	d.CapturedBy = nil
	if err := s.deliveryRepo.Update(ctx, d, plan.Create, plan.Update, plan.Delete); err != nil {
		s.logger.WithError(err).WithField("delivery_id", id).Error("Failed to update delivery")
		return nil, err
	}

	s.metrics.IncrementDeliverySaved("update", string(plan.State))
	s.logger.WithFields(map[string]interface{}{
		"delivery_id": id,
		"state":       plan.State,
		"created":     len(plan.Create),
		"updated":     len(plan.Update),
		"deleted":     len(plan.Delete),
		"user_id":     actor.UserID,
	}).Info("Delivery updated")

	return s.Get(ctx, actor, id)
}

// Delete removes a delivery in the actor's scope together with its babies
func (s *deliveryService) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if !actor.CanModify() {
		return ErrPermissionDenied
	}
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := s.deliveryRepo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("delivery_id", id).Error("Failed to delete delivery")
		return translateError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"delivery_id": id,
		"user_id":     actor.UserID,
	}).Info("Delivery deleted")
	return nil
}

// Form describes the delivery form for the actor
func (s *deliveryService) Form(actor access.Actor, sel access.FormSelection) response.FormResponse {
	fields := access.DeriveFieldConstraints(actor, s.dir, access.FormDelivery, sel)
	fields["report_date"] = access.FieldConstraint{Choices: s.planner.ReportDates()}
	fields["gender"] = access.FieldConstraint{Choices: models.GenderChoices}
	return response.FormResponse{Form: access.FormDelivery, Fields: fields}
}
