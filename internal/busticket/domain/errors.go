package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrRouteNotFound     = errors.New("route not found")
	ErrUnknownStatus     = errors.New("unknown status")
)

// InvalidTransitionError é retornado quando a máquina de estados recusa uma ação.
type InvalidTransitionError struct {
	From   Status
	Action Action
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return e.Reason
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
