package theme

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	th := Default()

	assert.Equal(t, "midnightblue", th.Background)
	assert.Equal(t, "yellow", th.Accent.Highlight)
	assert.Equal(t, "white", th.Success.Text)
	assert.NotEmpty(t, th.Fonts.Title)
}

func TestTheme_RandomColor(t *testing.T) {
	// Given: a theme and a seeded random source
	th := Default()
	r := rand.New(rand.NewSource(42))

	// When: many random colours are drawn
	for i := 0; i < 100; i++ {
		// Then: every colour comes from the palette
		assert.Contains(t, th.Colors(), th.RandomColor(r))
	}
}
