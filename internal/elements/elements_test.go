package elements_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, 118, elements.Count())

	fe, err := elements.Lookup(26)
	require.NoError(t, err)
	assert.Equal(t, "Fe", fe.Symbol)
	assert.Equal(t, 4, fe.Period())

	_, err = elements.Lookup(0)
	assert.ErrorIs(t, err, elements.ErrUnknownElement)
	_, err = elements.Lookup(119)
	assert.ErrorIs(t, err, elements.ErrUnknownElement)
}

func TestBySymbol(t *testing.T) {
	kr, err := elements.BySymbol("kr")
	require.NoError(t, err)
	assert.Equal(t, 36, kr.Z)

	_, err = elements.BySymbol("Krypton")
	assert.ErrorIs(t, err, elements.ErrUnknownElement)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"6", 6},
		{"c", 6},
		{"Carbon", 6},
		{" kr ", 36},
		{"og", 118},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := elements.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Z)
		})
	}

	_, err := elements.Parse("unobtainium")
	assert.ErrorIs(t, err, elements.ErrUnknownElement)
}

func TestCoreNotation(t *testing.T) {
	tests := []struct {
		z    int
		want string
	}{
		{1, "1s¹"},
		{2, "1s²"},
		{6, "[He] 2s² 2p²"},
		{10, "[He] 2s² 2p⁶"},
		{11, "[Ne] 3s¹"},
		{26, "[Ar] 4s² 3d⁶"},
		{36, "[Ar] 4s² 3d¹⁰ 4p⁶"},
	}
	for _, tt := range tests {
		got := elements.CoreNotation(orbital.FullConfiguration(tt.z))
		assert.Equal(t, tt.want, got, "z=%d", tt.z)
	}
}

func TestCoreNotationPartialFill(t *testing.T) {
	f := orbital.NewFillState(11)
	for i := 0; i < 5; i++ {
		p, ok := orbital.NextCorrectPlacement(f)
		require.True(t, ok)
		require.NoError(t, f.Apply(p))
	}
	assert.Equal(t, "[He] 2s² 2p¹", elements.CoreNotation(f.Subshells()))
}

func TestExceptionsAndNobleGases(t *testing.T) {
	c, ok := elements.Exception(24)
	require.True(t, ok)
	assert.Contains(t, c, "3d⁵")
	_, ok = elements.Exception(26)
	assert.False(t, ok)

	assert.True(t, elements.MustLookup(18).NobleGas())
	assert.False(t, elements.MustLookup(17).NobleGas())
	assert.Len(t, elements.Range(1, 10), 10)
}
