package utils

import (
	"Recipe-API/domain"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MissingFieldsError lists required request fields that were absent or empty,
// in the order they were asked for.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return domain.MessageMissingFields + strings.Join(e.Fields, ", ")
}

func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// CheckRequiredFields reports every name in required whose value in payload
// is absent, null, or the zero value of its JSON type ("" / 0 / false / [] / {}).
func CheckRequiredFields(v *validator.Validate, payload map[string]any, required ...string) error {
	var missing []string
	for _, field := range required {
		if !isPresent(v, payload[field]) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

func isPresent(v *validator.Validate, value any) bool {
	if value == nil {
		return false
	}
	tag := "required"
	switch value.(type) {
	case []any, map[string]any:
		tag = "required,gt=0"
	}
	return v.Var(value, tag) == nil
}
