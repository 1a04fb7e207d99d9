// Package normalize turns raw TBA JSON payloads into validated domain
// fragments. It owns every entity-schema detail the fetch client is not
// allowed to know: field mapping, demo-record filters, and the explosion of
// nested one-to-many structures into child rows.
package normalize

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	teamKeyRegex  = regexp.MustCompile(`^frc\d+$`)
	eventKeyRegex = regexp.MustCompile(`^\d{4}[a-z0-9]+$`)
	matchKeyRegex = regexp.MustCompile(`^\d{4}[a-z0-9]+_(qm\d+|(ef|qf|sf|f)\d+m\d+)$`)
)

var fragmentValidator = newFragmentValidator()

func newFragmentValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "teamkey", teamKeyRegex)
	mustRegister(v, "eventkey", eventKeyRegex)
	mustRegister(v, "matchkey", matchKeyRegex)
	return v
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// validateFragments checks every fragment structurally. The first failure
// aborts the whole fetch unit; partial emission would leave the caller with
// rows it cannot trust.
func validateFragments[T any](kind string, rows []T) error {
	for i := range rows {
		if err := fragmentValidator.Struct(&rows[i]); err != nil {
			return fmt.Errorf("invalid %s fragment at index %d: %w", kind, i, err)
		}
	}
	return nil
}
