package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/vk/delaygen/pkg/estimator"
)

// Record is one declared operation of a delay model: its identifier and the
// estimator that prices it.
type Record struct {
	Operation string               `validate:"required,operation_id"`
	Estimator *estimator.Estimator `validate:"required"`

	// Source locates the declaration, e.g. "spec.hcl:12,1-9". Optional.
	Source string
}

// ValidOperationID reports whether id is an acceptable operation
// identifier: any non-empty string without whitespace or control
// characters, e.g. "add", "Add" or "kUMul".
func ValidOperationID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

func operationIDValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return ValidOperationID(val)
}

// recordValidator is shared by all builds.
var recordValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("operation_id", operationIDValidator)
	return v
})

// validateRecord checks the struct tags of r and reports failures as
// ErrInvalidRecord.
func validateRecord(v *validator.Validate, r Record) error {
	err := v.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "operation_id":
			msgs = append(msgs, fmt.Sprintf("operation %q must not contain whitespace or control characters", fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(msgs, "; "))
}

func (r Record) describe() string {
	if r.Source == "" {
		return fmt.Sprintf("operation %q", r.Operation)
	}
	return fmt.Sprintf("operation %q (%s)", r.Operation, r.Source)
}
