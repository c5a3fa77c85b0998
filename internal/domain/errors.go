package domain

import "errors"

var (
	// ErrInvalidNumber is returned when raw field input cannot be coerced to a
	// number. Callers keep the previous value.
	ErrInvalidNumber = errors.New("invalid number")

	ErrUnknownField          = errors.New("unknown field")
	ErrInvalidTierType       = errors.New("invalid tier type")
	ErrInvalidCommissionType = errors.New("invalid commission type")
)
