package checkpointer

import "fmt"

// NStep implements checkpointing every N episodes
type NStep struct {
	interval int
	object   Saver

	// filename returns the filename of the next checkpoint. Use
	// FilenameEnumerator or RunEnumerator for numbered checkpoints and
	// FileTimer for timestamped ones:
	//
	//	n, err := NewNStep(10, table, FileTimer("q_table", ".gob"))
	filename func() string
}

// NewNStep returns a checkpointer that saves object every n episodes
func NewNStep(n int, object Saver, filename func() string) (*NStep, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newNStep: interval must be positive, got %d",
			n)
	}
	if filename == nil {
		return nil, fmt.Errorf("newNStep: no filename function")
	}

	return &NStep{interval: n, object: object, filename: filename}, nil
}

// Checkpoint saves the tracked object if episode is a multiple of the
// checkpointing interval
func (n *NStep) Checkpoint(episode int) error {
	if episode > 0 && episode%n.interval == 0 {
		if err := n.object.Save(n.filename()); err != nil {
			return fmt.Errorf("checkpoint: %v", err)
		}
	}
	return nil
}
