package app

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/roster/pkg/errors"
)

var (
	configValidator *validator.Validate
	validatorOnce   sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		configValidator = validator.New()
	})
	return configValidator
}

// formatValidationError reports the first failed field as a ConfigError
// wrapping a ValidationError for that field.
func formatValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return errors.NewConfigError("config", err.Error(), err)
	}

	e := fieldErrors[0]
	msg := fmt.Sprintf("failed on the '%s' tag", e.Tag())
	if e.Param() != "" {
		msg = fmt.Sprintf("failed on the '%s=%s' tag", e.Tag(), e.Param())
	}
	return errors.NewConfigError("config",
		fmt.Sprintf("field validation for '%s' %s", e.Field(), msg),
		errors.NewValidationError(e.Field(), e.Value(), msg))
}
