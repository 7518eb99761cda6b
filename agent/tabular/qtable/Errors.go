package qtable

import "errors"

var (
	// ErrInvalidShape is returned when a Table is created with a
	// non-positive state cardinality or number of actions
	ErrInvalidShape = errors.New("invalid table shape")

	// ErrIndexOutOfRange is returned when a state or action lies
	// outside the bounds of a Table
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyActionSpace is returned when action selection is
	// attempted on a Table with no actions
	ErrEmptyActionSpace = errors.New("empty action space")

	// ErrTableNotFound is returned when loading a Table that was never
	// saved
	ErrTableNotFound = errors.New("table not found")
)
