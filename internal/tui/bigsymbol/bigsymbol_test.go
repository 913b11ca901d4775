package bigsymbol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderShape(t *testing.T) {
	require.True(t, Available())

	out := Render("Fe", 16, 6)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	for _, l := range lines {
		assert.Equal(t, 16, len([]rune(l)))
	}
	assert.True(t, strings.ContainsAny(out, "█▀▄"), "expected some ink in %q", out)
}

func TestRenderEmpty(t *testing.T) {
	assert.Empty(t, Render("", 10, 4))
	assert.Empty(t, Render("H", 0, 4))
}

func TestCached(t *testing.T) {
	a := Cached("He", 12, 5)
	b := Cached("He", 12, 5)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}
