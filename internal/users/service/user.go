package service

import (
	"context"
	"errors"

	propertyerrors "roamify/internal/properties/errors"
	propertyrepo "roamify/internal/properties/repository"
	usererrors "roamify/internal/users/errors"
	"roamify/internal/users/repository"
	"roamify/internal/users/validator"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	apperrors "roamify/pkg/errors"
	"roamify/pkg/model"
)

type UserService interface {
	GetProfile(ctx context.Context, caller auth.Identity) (*model.User, error)
	UpdateProfile(ctx context.Context, caller auth.Identity, update model.ProfileUpdate) (*model.User, error)
	UpdateSavedProperty(ctx context.Context, caller auth.Identity, propertyID, action string) ([]string, error)
	ListSavedProperties(ctx context.Context, caller auth.Identity) ([]*model.Property, error)
}

type userService struct {
	repo       repository.UserRepository
	properties propertyrepo.PropertyRepository
	validator  *validator.UserValidator
	cfg        *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	properties propertyrepo.PropertyRepository,
	validator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:       repo,
		properties: properties,
		validator:  validator,
		cfg:        cfg,
	}
}

func (s *userService) GetProfile(ctx context.Context, caller auth.Identity) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, translateLookupError(err, caller.UserID)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, caller auth.Identity, update model.ProfileUpdate) (*model.User, error) {
	if err := s.validator.ValidateProfileUpdate(&update); err != nil {
		s.cfg.Log.Warn("Profile validation failed", "user_id", caller.UserID, "error", err)
		return nil, apperrors.Validation("Profile validation failed", map[string]any{"error": err.Error()})
	}

	user, err := s.repo.UpdateProfile(ctx, caller.UserID, update)
	if err != nil {
		return nil, translateLookupError(err, caller.UserID)
	}

	s.cfg.Log.Info("Profile updated", "user_id", caller.UserID)
	return user, nil
}

// UpdateSavedProperty saves or unsaves a property for the caller. Both
// directions are idempotent: re-saving and re-unsaving are no-ops, not errors.
func (s *userService) UpdateSavedProperty(ctx context.Context, caller auth.Identity, propertyID, action string) ([]string, error) {
	if err := s.validator.ValidateSavedPropertyUpdate(&model.SavedPropertyUpdate{Action: action}); err != nil {
		return nil, apperrors.Validation("Invalid action", map[string]any{"error": err.Error()})
	}

	switch action {
	case model.SaveAction:
		// Only an existing property can enter the list.
		if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
			switch {
			case errors.Is(err, propertyerrors.ErrNotFound):
				return nil, apperrors.NotFoundWithID("Property", propertyID)
			case errors.Is(err, propertyerrors.ErrInvalidID):
				return nil, apperrors.InvalidInput("Invalid property ID format")
			default:
				return nil, apperrors.Internal("Failed to save property", err)
			}
		}
		if err := s.repo.AddSavedProperty(ctx, caller.UserID, propertyID); err != nil {
			return nil, translateLookupError(err, caller.UserID)
		}
	case model.UnsaveAction:
		if err := s.repo.RemoveSavedProperty(ctx, caller.UserID, propertyID); err != nil {
			return nil, translateLookupError(err, caller.UserID)
		}
	}

	user, err := s.repo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, translateLookupError(err, caller.UserID)
	}
	if user.SavedProperties == nil {
		return []string{}, nil
	}
	return user.SavedProperties, nil
}

// ListSavedProperties expands the caller's saved IDs into full documents.
// Stale references to deleted properties are silently dropped.
func (s *userService) ListSavedProperties(ctx context.Context, caller auth.Identity) ([]*model.Property, error) {
	user, err := s.repo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, translateLookupError(err, caller.UserID)
	}
	if len(user.SavedProperties) == 0 {
		return nil, nil
	}

	properties, err := s.properties.FindByIDs(ctx, user.SavedProperties)
	if err != nil {
		s.cfg.Log.Error("Failed to expand saved properties", "user_id", caller.UserID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve saved properties", err)
	}
	return properties, nil
}

func translateLookupError(err error, id string) error {
	switch {
	case errors.Is(err, usererrors.ErrNotFound):
		return apperrors.NotFoundWithID("User", id)
	case errors.Is(err, usererrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid user ID format")
	default:
		return apperrors.Internal("Failed to retrieve user", err)
	}
}
