package catalog

import "strings"

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCreateMenuItem validates a menu item before creation
func ValidateCreateMenuItem(item *MenuItem) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(item.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if item.Price < 0 {
		errors = append(errors, ValidationError{
			Field:   "price",
			Message: "price cannot be negative",
		})
	}

	return errors
}
