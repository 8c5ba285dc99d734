package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator, reporting mapstructure
// names so errors read like the YAML the user wrote.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// convertValidationError turns the first validator failure into a readable error.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		if ve.Param() != "" {
			return fmt.Errorf("%s: must satisfy %s=%s, got %v", field, ve.Tag(), ve.Param(), ve.Value())
		}
		return fmt.Errorf("%s: failed validation for tag '%s'", field, ve.Tag())
	}
	return fmt.Errorf("config: %w", err)
}

// yamlishFieldName drops the root struct name: "Config.store.backend" -> "store.backend".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
