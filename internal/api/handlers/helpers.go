package handlers

import (
	"fmt"

	"nexustalent/internal/models"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the pipeline-specific tags registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("pipeline_status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	return validate
}

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "gte", "lte":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be between 0 and 100", fieldName)
		case "pipeline_status":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of %v", fieldName, models.Statuses)
		}
	}
	return errorsMap
}
