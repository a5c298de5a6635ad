package sentinel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePixels(t *testing.T) {
	// 0.01 degrees is roughly 1110 m, or 111 pixels at 10 m resolution.
	assert.Equal(t, 111, calculatePixels(0.01))
	// Tiny extents still produce at least one pixel.
	assert.Equal(t, 1, calculatePixels(0))
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, isUnavailable(errNoScene))
	assert.True(t, isUnavailable(errors.New("request failed: NO_DATA in time range")))
	assert.False(t, isUnavailable(errors.New("connection refused")))
}
