// Package validator bridges go-playground/validator into Echo's Validator hook.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	domainerrors "tally/internal/domain/errors"
)

type echoValidator struct {
	validate *playground.Validate
}

// New creates an echo.Validator backed by go-playground/validator struct tags.
func New() echo.Validator {
	return &echoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate checks the bound request struct against its validate tags.
// Failures surface as the domain's validation error so the central error
// handler maps them to a 400 without leaking field internals.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
