package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

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

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if req.CheckInDate.Before(today) {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckInDate",
				Message: "check-in date cannot be in the past",
			},
		}
	}

	return nil
}

func (v *BookingValidator) ValidateStatusUpdate(update *model.BookingStatusUpdate) error {
	if err := v.validate.Struct(update); err != nil {
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
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
