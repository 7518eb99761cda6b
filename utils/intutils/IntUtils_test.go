package intutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProd(t *testing.T) {
	assert.Equal(t, 1, Prod())
	assert.Equal(t, 567, Prod(3, 3, 3, 3, 7))
}
