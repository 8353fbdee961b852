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

type PropertyValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPropertyValidator(log *logger.Logger) *PropertyValidator {
	return &PropertyValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *PropertyValidator) Validate(property *model.Property) error {
	if err := v.validate.Struct(property); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}

	if property.Price.Discounted != nil && *property.Price.Discounted >= property.Price.Regular {
		return ValidationErrors{
			ValidationError{
				Field:   "Price.Discounted",
				Message: "discounted price must be below the regular price",
			},
		}
	}

	mainImages := 0
	for _, img := range property.Images {
		if img.IsMain {
			mainImages++
		}
	}
	if mainImages > 1 {
		return ValidationErrors{
			ValidationError{
				Field:   "Images",
				Message: "at most one image may be flagged as main",
			},
		}
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
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +14155551234)", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
