package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("schedule_date", validateScheduleDate)

	return validator
}

// validateScheduleDate accepts YYYY-MM-DD strings that fall on today or
// later. The schedule endpoint never serves past days.
func validateScheduleDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return false
	}

	today := time.Now().Truncate(24 * time.Hour)

	return !date.Before(today)
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s element(s)", err.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s element(s)", err.Param())
	case "schedule_date":
		return "must be a date in YYYY-MM-DD format, today or later"
	default:
		return "is invalid"
	}
}
