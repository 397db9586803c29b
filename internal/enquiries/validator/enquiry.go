package validator

import (
	"errors"
	"fmt"
	"strings"

	"theworks/pkg/logger"
	"theworks/pkg/model"

	"github.com/go-playground/validator/v10"
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
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// EnquiryValidator runs after sanitization, so what it approves is what gets
// stored.
type EnquiryValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewEnquiryValidator(log *logger.Logger) *EnquiryValidator {
	return &EnquiryValidator{
		validate: validator.New(),
		log:      log,
	}
}

func (v *EnquiryValidator) ValidateCreate(input *model.EnquiryCreate) error {
	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s character(s)", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s character(s)", err.Field(), err.Param())
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
