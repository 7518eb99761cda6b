// Package qtable implements a dense action-value table indexed by a
// discretized state and a discrete action.
//
// A Table with state cardinalities (c0, c1, ..., cN) and A actions is a
// rank N+2 array of shape (c0, c1, ..., cN, A), stored in row-major
// order so that all action values of a single state are contiguous.
// A Table is not safe for concurrent mutation.
package qtable

import (
	"fmt"

	"github.com/samuelfneumann/tabq/utils/intutils"
	"gorgonia.org/tensor"
)

// Table is a tabular action-value function
type Table struct {
	cardinalities []int
	actions       int

	values  []float64 // backing data of the tensor
	tensor  *tensor.Dense
	strides []int
}

// New creates a new zero-filled Table with the argument state
// cardinalities and number of actions.
func New(cardinalities []int, actions int) (*Table, error) {
	if err := validateShape(cardinalities, actions); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	values := make([]float64, intutils.Prod(cardinalities...)*actions)
	return fromValues(cardinalities, actions, values), nil
}

// fromValues constructs a Table over the argument backing values. The
// shape is assumed to have been validated and len(values) to match it.
func fromValues(cardinalities []int, actions int, values []float64) *Table {
	card := make([]int, len(cardinalities))
	copy(card, cardinalities)

	shape := append(append([]int{}, card...), actions)
	t := tensor.New(tensor.WithShape(shape...), tensor.WithBacking(values))

	return &Table{
		cardinalities: card,
		actions:       actions,
		values:        values,
		tensor:        t,
		strides:       append([]int{}, t.Strides()...),
	}
}

func validateShape(cardinalities []int, actions int) error {
	if len(cardinalities) == 0 {
		return fmt.Errorf("%w: no state dimensions", ErrInvalidShape)
	}
	for i, c := range cardinalities {
		if c <= 0 {
			return fmt.Errorf("%w: state dimension %d has cardinality %d",
				ErrInvalidShape, i, c)
		}
	}
	if actions <= 0 {
		return fmt.Errorf("%w: %d actions", ErrInvalidShape, actions)
	}
	return nil
}

// Cardinalities returns the number of values each state component can
// take on
func (t *Table) Cardinalities() []int {
	card := make([]int, len(t.cardinalities))
	copy(card, t.cardinalities)
	return card
}

// Actions returns the number of actions in the Table
func (t *Table) Actions() int {
	return t.actions
}

// Shape returns the full shape of the Table, which is the state
// cardinalities followed by the number of actions
func (t *Table) Shape() []int {
	return append(t.Cardinalities(), t.actions)
}

// Size returns the total number of cells in the Table
func (t *Table) Size() int {
	return len(t.values)
}

// Get returns the value of taking action in state
func (t *Table) Get(state []int, action int) (float64, error) {
	if err := t.checkAction(action); err != nil {
		return 0, fmt.Errorf("get: %w", err)
	}
	if err := t.checkState(state); err != nil {
		return 0, fmt.Errorf("get: %w", err)
	}

	v, err := t.tensor.At(append(append([]int{}, state...), action)...)
	if err != nil {
		return 0, fmt.Errorf("get: %v", err)
	}
	return v.(float64), nil
}

// Set overwrites the value of taking action in state
func (t *Table) Set(state []int, action int, value float64) error {
	if err := t.checkAction(action); err != nil {
		return fmt.Errorf("set: %w", err)
	}
	if err := t.checkState(state); err != nil {
		return fmt.Errorf("set: %w", err)
	}

	coords := append(append([]int{}, state...), action)
	if err := t.tensor.SetAt(value, coords...); err != nil {
		return fmt.Errorf("set: %v", err)
	}
	return nil
}

// Row returns a copy of the action values in state, indexed by action
func (t *Table) Row(state []int) ([]float64, error) {
	if err := t.checkState(state); err != nil {
		return nil, fmt.Errorf("row: %w", err)
	}

	start := t.offset(state)
	row := make([]float64, t.actions)
	copy(row, t.values[start:start+t.actions])
	return row, nil
}

// Each calls fn on every state of the Table in row-major order, so
// that the last state component varies fastest. The state and row
// passed to fn must not be retained.
func (t *Table) Each(fn func(state []int, row []float64)) {
	if len(t.values) == 0 {
		return
	}

	state := make([]int, len(t.cardinalities))
	for start := 0; start < len(t.values); start += t.actions {
		fn(state, t.values[start:start+t.actions])

		// Increment the state like an odometer
		for i := len(state) - 1; i >= 0; i-- {
			state[i]++
			if state[i] < t.cardinalities[i] {
				break
			}
			state[i] = 0
		}
	}
}

// Clone returns a deep copy of the Table
func (t *Table) Clone() *Table {
	values := make([]float64, len(t.values))
	copy(values, t.values)
	return fromValues(t.cardinalities, t.actions, values)
}

// Equal returns whether two Tables have the same shape and values
func (t *Table) Equal(other *Table) bool {
	if t.actions != other.actions ||
		len(t.cardinalities) != len(other.cardinalities) ||
		len(t.values) != len(other.values) {
		return false
	}
	for i := range t.cardinalities {
		if t.cardinalities[i] != other.cardinalities[i] {
			return false
		}
	}
	for i := range t.values {
		if t.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	return fmt.Sprintf("Table | Shape: %v", t.Shape())
}

// offset returns the index into the backing values of the first
// action value of state
func (t *Table) offset(state []int) int {
	offset := 0
	for i, s := range state {
		offset += s * t.strides[i]
	}
	return offset
}

func (t *Table) checkState(state []int) error {
	if len(state) != len(t.cardinalities) {
		return fmt.Errorf("%w: state %v has %d components, want %d",
			ErrIndexOutOfRange, state, len(state), len(t.cardinalities))
	}
	for i, s := range state {
		if s < 0 || s >= t.cardinalities[i] {
			return fmt.Errorf("%w: state component %d = %d outside [0, %d)",
				ErrIndexOutOfRange, i, s, t.cardinalities[i])
		}
	}
	return nil
}

func (t *Table) checkAction(action int) error {
	if t.actions == 0 {
		return ErrEmptyActionSpace
	}
	if action < 0 || action >= t.actions {
		return fmt.Errorf("%w: action %d outside [0, %d)",
			ErrIndexOutOfRange, action, t.actions)
	}
	return nil
}
