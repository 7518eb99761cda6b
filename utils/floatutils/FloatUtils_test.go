package floatutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestArgmaxTiesToLowestIndex(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{"empty", nil, -1},
		{"single", []float64{-3}, 0},
		{"unique", []float64{0.1, 2.5, -1}, 1},
		{"tie", []float64{1, 4, 4, 2}, 1},
		{"allZero", []float64{0, 0, 0}, 0},
		{"negative", []float64{-5, -2, -2}, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Argmax(test.values))
		})
	}
}

func TestMaxSlice(t *testing.T) {
	max, indices := MaxSlice([]float64{3, 1, 3, 2})
	assert.Equal(t, 3.0, max)
	assert.Equal(t, []int{0, 2}, indices)
}

func TestAllEqual(t *testing.T) {
	assert.True(t, AllEqual([]float64{0, 0, 0}, 0))
	assert.True(t, AllEqual(nil, 0))
	assert.False(t, AllEqual([]float64{0, 1e-12, 0}, 0))
}

func TestClipInterval(t *testing.T) {
	interval := r1.Interval{Min: -1, Max: 1}
	assert.Equal(t, 1.0, ClipInterval(4, interval))
	assert.Equal(t, -1.0, ClipInterval(-4, interval))
	assert.Equal(t, 0.5, ClipInterval(0.5, interval))
}
