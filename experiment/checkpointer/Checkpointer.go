// Package checkpointer implements Checkpointers, which periodically
// save objects during an experiment
package checkpointer

// Saver is an object that can save itself to a file
type Saver interface {
	Save(filename string) error
}

// Checkpointer checkpoints/saves objects based on the number of
// completed episodes
type Checkpointer interface {
	Checkpoint(episode int) error
}
