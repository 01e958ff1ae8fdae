package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 3, Round(2.5))
	assert.Equal(t, 2, Round(2.49))
	assert.Equal(t, -2, Round(-2.5))
	assert.Equal(t, -3, Round(-2.51))
	assert.Equal(t, 0, Round(0))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 7.5, Round1(7.45))
	assert.Equal(t, 6.2, Round1(6.2333))
	assert.Equal(t, 10.0, Round1(9.96))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 4.0, Clamp(3.2, 4, 10))
	assert.Equal(t, 10.0, Clamp(11, 4, 10))
	assert.Equal(t, 5.5, Clamp(5.5, 4, 10))
	assert.Equal(t, 0, ClampInt(-7, 0, 100))
	assert.Equal(t, 100, ClampInt(130, 0, 100))
	assert.Equal(t, 42, ClampInt(42, 0, 100))
}
