package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a physical parameter outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrNegativeBound indicates a negative step or grid bound.
	ErrNegativeBound = errors.New("dynamo: negative bound")
)

// BoundError reports which named value violated a bound.
type BoundError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *BoundError) Error() string {
	return fmt.Sprintf("%s: %s = %g", e.Wrapped.Error(), e.Name, e.Value)
}

func (e *BoundError) Unwrap() error {
	return e.Wrapped
}

// CheckBound fails fast on negative step counts and grid sizes.
func CheckBound(name string, n int) error {
	if n < 0 {
		return &BoundError{Name: name, Value: float64(n), Wrapped: ErrNegativeBound}
	}
	return nil
}
