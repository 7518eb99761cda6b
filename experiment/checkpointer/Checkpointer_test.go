package checkpointer

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	filenames []string
	err       error
}

func (r *recorder) Save(filename string) error {
	r.filenames = append(r.filenames, filename)
	return r.err
}

func TestNStep(t *testing.T) {
	r := &recorder{}
	n, err := NewNStep(3, r, FilenameEnumerator(0, "table", ".gob"))
	require.NoError(t, err)

	for episode := 0; episode <= 9; episode++ {
		require.NoError(t, n.Checkpoint(episode))
	}
	assert.Equal(t, []string{"table1.gob", "table2.gob", "table3.gob"},
		r.filenames)
}

func TestNStepErrors(t *testing.T) {
	_, err := NewNStep(0, &recorder{}, FileTimer("table", ".gob"))
	assert.Error(t, err)

	_, err = NewNStep(1, &recorder{}, nil)
	assert.Error(t, err)

	n, err := NewNStep(1, &recorder{err: fmt.Errorf("disk full")},
		FileTimer("table", ".gob"))
	require.NoError(t, err)
	assert.Error(t, n.Checkpoint(1))
}

func TestRunEnumerator(t *testing.T) {
	run := uuid.New()
	next := RunEnumerator(run, "q_table", ".gob")

	assert.Equal(t, fmt.Sprintf("q_table-%s-1.gob", run), next())
	assert.Equal(t, fmt.Sprintf("q_table-%s-2.gob", run), next())
}

func TestFileTimer(t *testing.T) {
	name := FileTimer("q_table", ".gob")()
	assert.True(t, strings.HasPrefix(name, "q_table-"))
	assert.True(t, strings.HasSuffix(name, ".gob"))
}

func TestCheckpointTable(t *testing.T) {
	dir := t.TempDir()
	table, err := qtable.New([]int{2}, 2)
	require.NoError(t, err)

	n, err := NewNStep(1, table, FilenameEnumerator(0,
		filepath.Join(dir, "q_table"), ".gob"))
	require.NoError(t, err)
	require.NoError(t, n.Checkpoint(1))

	loaded, err := qtable.Load(filepath.Join(dir, "q_table1.gob"))
	require.NoError(t, err)
	assert.True(t, table.Equal(loaded))
}
