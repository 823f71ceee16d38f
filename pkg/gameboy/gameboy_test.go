package gameboy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func blankROM(cartType byte) []byte {
	rom := make([]byte, 0x8000)
	rom[0x0147] = cartType
	return rom
}

func TestNewFromBytes_StartsAtPostBootPC(t *testing.T) {
	g, err := NewFromBytes(blankROM(0x00))
	require.NoError(t, err)
	require.Equal(t, uint16(0x0100), g.CPU().PC)
}

func TestStep_NOPAdvancesPCAndCycles(t *testing.T) {
	rom := blankROM(0x00)
	rom[0x0100] = 0x00 // NOP
	g, err := NewFromBytes(rom)
	require.NoError(t, err)

	t_, err := g.Step()
	require.NoError(t, err)
	require.Equal(t, 4, t_)
	require.Equal(t, uint16(0x0101), g.CPU().PC)
	require.Equal(t, uint64(4), g.Cycles())
}

func TestRunFrame_AdvancesExactlyOneFrameOfCycles(t *testing.T) {
	rom := blankROM(0x00)
	for i := 0x0100; i < 0x8000; i++ {
		rom[i] = 0x00 // NOP forever
	}
	g, err := NewFromBytes(rom)
	require.NoError(t, err)

	require.NoError(t, g.RunFrame())
	require.Equal(t, uint64(70224), g.Cycles())
}
