package qtable

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// table is the serialized form of a Table
type table struct {
	Cardinalities []int
	Actions       int
	Values        []float64
}

// GobEncode implements the gob.GobEncoder interface
func (t *Table) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(table{t.cardinalities, t.actions, t.values})
	if err != nil {
		return nil, fmt.Errorf("gobEncode: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (t *Table) GobDecode(in []byte) error {
	var decoded table
	dec := gob.NewDecoder(bytes.NewReader(in))
	if err := dec.Decode(&decoded); err != nil {
		return fmt.Errorf("gobDecode: %v", err)
	}

	if err := validateShape(decoded.Cardinalities, decoded.Actions); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}

	size := decoded.Actions
	for _, c := range decoded.Cardinalities {
		size *= c
	}
	if len(decoded.Values) != size {
		return fmt.Errorf("gobDecode: %w: %d values for shape %v x %d",
			ErrInvalidShape, len(decoded.Values), decoded.Cardinalities,
			decoded.Actions)
	}

	*t = *fromValues(decoded.Cardinalities, decoded.Actions, decoded.Values)
	return nil
}

// Save saves the Table to a file
func (t *Table) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(t); err != nil {
		return fmt.Errorf("save: could not encode table: %v", err)
	}
	return file.Close()
}

// Load loads a Table previously saved with Save. If no such file
// exists, the returned error wraps ErrTableNotFound.
func Load(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load: %w: %v", ErrTableNotFound, filename)
	} else if err != nil {
		return nil, fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	t := &Table{}
	if err := gob.NewDecoder(file).Decode(t); err != nil {
		return nil, fmt.Errorf("load: could not decode table: %w", err)
	}
	return t, nil
}

// LoadOrNew loads a Table from filename, falling back to a new zero
// Table with the argument shape if no Table has been saved. The bool
// return reports whether the Table was loaded from disk.
func LoadOrNew(filename string, cardinalities []int,
	actions int) (*Table, bool, error) {
	t, err := Load(filename)
	if err == nil {
		return t, true, nil
	} else if !errors.Is(err, ErrTableNotFound) {
		return nil, false, err
	}

	t, err = New(cardinalities, actions)
	return t, false, err
}
