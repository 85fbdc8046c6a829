package dyncast

import (
	"errors"
	"fmt"

	"dyncast-generator/own"
	"dyncast-generator/view"
)

// ErrContract marks a dispatcher that answered CanCast inconsistently with
// its Dispatch methods, or a result finalized with the wrong type or twice.
// It is raised by panic, wrapped in a *ContractError.
var ErrContract = errors.New("dispatcher contract violated")

// ContractError describes a contract violation.
type ContractError struct {
	Kind   own.Kind
	View   view.ID
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("dyncast: %s: %s cast to %s: %s", ErrContract, e.Kind, e.View, e.Reason)
}

func (e *ContractError) Unwrap() error {
	return ErrContract
}

func violation(kind own.Kind, to view.ID, format string, args ...any) *ContractError {
	return &ContractError{Kind: kind, View: to, Reason: fmt.Sprintf(format, args...)}
}
