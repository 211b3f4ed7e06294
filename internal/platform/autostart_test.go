package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppSlug(t *testing.T) {
	assert.Equal(t, "focusdeck", appSlug("FocusDeck"))
	assert.Equal(t, "focus-deck", appSlug(" Focus Deck "))
	assert.Equal(t, "focusdeck", appSlug("  "))
}
