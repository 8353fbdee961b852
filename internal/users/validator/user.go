package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"roamify/pkg/logger"
	"roamify/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *UserValidator) ValidateProfileUpdate(update *model.ProfileUpdate) error {
	return v.validateStruct(update)
}

func (v *UserValidator) ValidateSavedPropertyUpdate(update *model.SavedPropertyUpdate) error {
	return v.validateStruct(update)
}

func (v *UserValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +14155551234)", err.Field())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
