package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "Training returns",
		Series{"Return", []float64{1, 2, 3}},
		Series{"Average", []float64{1, 1.5, 2}},
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Training returns")
	assert.Contains(t, buf.String(), "<html")
}

func TestRenderErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, "empty"))

	err := Render(&buf, "mismatched",
		Series{"a", []float64{1, 2}},
		Series{"b", []float64{1}},
	)
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "charts", "returns.html")
	require.NoError(t, Save(filename, "returns", Series{"Return",
		[]float64{0, 1}}))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)

	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 0))
}
