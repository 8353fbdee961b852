package service

import (
	"context"
	"errors"
	"sync"

	propertyerrors "roamify/internal/properties/errors"
	"roamify/internal/properties/repository"
	"roamify/internal/properties/validator"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	apperrors "roamify/pkg/errors"
	"roamify/pkg/model"
)

type PropertyService interface {
	List(ctx context.Context, filter model.PropertyFilter, page, limit int) ([]*model.Property, int64, error)
	GetByID(ctx context.Context, id string) (*model.Property, error)
	ListByHost(ctx context.Context, caller auth.Identity) ([]*model.Property, error)
	Create(ctx context.Context, caller auth.Identity, property *model.Property) error
	Update(ctx context.Context, caller auth.Identity, id string, property *model.Property) (*model.Property, error)
	Delete(ctx context.Context, caller auth.Identity, id string) error
}

type propertyService struct {
	repo      repository.PropertyRepository
	validator *validator.PropertyValidator
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	validator *validator.PropertyValidator,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *propertyService) List(ctx context.Context, filter model.PropertyFilter, page, limit int) ([]*model.Property, int64, error) {
	var (
		count      int64
		properties []*model.Property
		errCount   error
		errFind    error
		wg         sync.WaitGroup
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountActive(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count properties", "error", errCount)
			errCount = apperrors.Internal("Failed to count properties", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		properties, errFind = s.repo.FindActive(ctx, filter, page, limit)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list properties", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve properties", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return properties, count, nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}
	return property, nil
}

func (s *propertyService) ListByHost(ctx context.Context, caller auth.Identity) ([]*model.Property, error) {
	properties, err := s.repo.FindByHost(ctx, caller.UserID)
	if err != nil {
		s.cfg.Log.Error("Failed to list host properties", "host_id", caller.UserID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve your properties", err)
	}
	return properties, nil
}

func (s *propertyService) Create(ctx context.Context, caller auth.Identity, property *model.Property) error {
	property.HostID = caller.UserID
	property.Ratings = model.Ratings{}
	if property.Status == "" {
		property.Status = model.PropertyActive
	}
	applyRuleDefaults(property)

	if err := s.validator.Validate(property); err != nil {
		s.cfg.Log.Warn("Property validation failed", "error", err)
		return apperrors.Validation("Property validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.cfg.Log.Error("Failed to create property", "error", err)
		return apperrors.Internal("Failed to create property", err)
	}

	s.cfg.Log.Info("Property created", "id", property.ID, "host_id", property.HostID)
	return nil
}

func (s *propertyService) Update(ctx context.Context, caller auth.Identity, id string, property *model.Property) (*model.Property, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	if !caller.OwnsOrAdmin(existing.HostID) {
		return nil, apperrors.Forbidden("Not authorized to update this property")
	}

	// Ownership and creation time survive any update payload.
	property.HostID = existing.HostID
	property.CreatedAt = existing.CreatedAt
	if property.Status == "" {
		property.Status = existing.Status
	}
	applyRuleDefaults(property)

	if err := s.validator.Validate(property); err != nil {
		s.cfg.Log.Warn("Property validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Property validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Replace(ctx, id, property); err != nil {
		if errors.Is(err, propertyerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		s.cfg.Log.Error("Failed to update property", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update property", err)
	}

	s.cfg.Log.Info("Property updated", "id", id)
	return property, nil
}

func (s *propertyService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateLookupError(err, id)
	}

	if !caller.OwnsOrAdmin(existing.HostID) {
		return apperrors.Forbidden("Not authorized to delete this property")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, propertyerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", id)
		}
		s.cfg.Log.Error("Failed to delete property", "id", id, "error", err)
		return apperrors.Internal("Failed to delete property", err)
	}

	s.cfg.Log.Info("Property deleted", "id", id)
	return nil
}

func applyRuleDefaults(p *model.Property) {
	if p.Rules.CheckInTime == "" {
		p.Rules.CheckInTime = "15:00"
	}
	if p.Rules.CheckOutTime == "" {
		p.Rules.CheckOutTime = "11:00"
	}
}

func translateLookupError(err error, id string) error {
	switch {
	case errors.Is(err, propertyerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Property", id)
	case errors.Is(err, propertyerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid property ID format")
	default:
		return apperrors.Internal("Failed to retrieve property", err)
	}
}
