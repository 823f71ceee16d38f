package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrewthecodertx/dmg-emulator/pkg/joypad"
)

func TestDefault_BindsConventionalKeys(t *testing.T) {
	cfg := Default()
	require.Equal(t, joypad.ButtonA, cfg.Keys["Z"])
	require.True(t, cfg.Paced)
}

func TestPaletteShades_ConvertsRGBTriples(t *testing.T) {
	cfg := Default()
	shades := cfg.PaletteShades()
	require.Equal(t, uint8(224), shades[0].R)
	require.Equal(t, uint8(8), shades[3].R)
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/path/dmg.yaml")
	require.Error(t, err)
}
