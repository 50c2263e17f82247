package chartful

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColor(t *testing.T) {
	c, err := NewColor("#1F77B4")
	require.NoError(t, err)
	assert.Equal(t, "#1f77b4", c.Hex())
	assert.Empty(t, c.Name())

	c, err = NewColor("coral")
	require.NoError(t, err)
	assert.Equal(t, "#ff7f50", c.Hex())
	assert.Equal(t, "coral", c.Name())

	_, err = NewColor("not-a-color")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color")

	_, err = NewColor("#zzzzzz")
	require.Error(t, err)
}

func TestForeground(t *testing.T) {
	white := mustColor("white")
	black := mustColor("black")
	assert.Equal(t, "#000000", white.Foreground().Hex())
	assert.Equal(t, "#ffffff", black.Foreground().Hex())
	assert.Equal(t, "#ffffff", mustColor("navy").Foreground().Hex())
}

func TestLinearGradient(t *testing.T) {
	grad := mustColor("black").LinearGradient(mustColor("white"), 3)
	require.Len(t, grad, 3)
	assert.Equal(t, "#000000", grad[0].Hex())
	assert.Equal(t, "#808080", grad[1].Hex())
	assert.Equal(t, "#ffffff", grad[2].Hex())

	one := mustColor("black").LinearGradient(mustColor("white"), 1)
	require.Len(t, one, 1)
	assert.Equal(t, "#000000", one[0].Hex())
}

func TestRegisterColorName(t *testing.T) {
	require.NoError(t, RegisterColorName("brand-blue", "#0057B8"))
	c, err := NewColor("brand-blue")
	require.NoError(t, err)
	assert.Equal(t, "#0057b8", c.Hex())
	assert.Contains(t, ColorNames(), "brand-blue")

	err = RegisterColorName("bad", "nope")
	require.Error(t, err)
}
