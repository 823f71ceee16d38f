package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPowerOnBGP_ReadWriteRoundTrip(t *testing.T) {
	p := New()
	p.WriteRegister(0xFF40, 0x91)
	p.WriteRegister(0xFF47, 0xFC) // simulates the bus's own power-on seeding
	require.Equal(t, byte(0xFC), p.ReadRegister(0xFF47))

	p.WriteRegister(0xFF47, 0x1B)
	require.Equal(t, byte(0x1B), p.ReadRegister(0xFF47))
}

func TestPowerOnSTAT_ReadsExactlyTheSeededValue(t *testing.T) {
	p := New()
	p.WriteRegister(0xFF41, 0x00) // simulates the bus's own power-on seeding
	require.Equal(t, byte(0x00), p.ReadRegister(0xFF41))
}

func TestZeroVRAMScanline_RendersColorZeroThroughBGP(t *testing.T) {
	p := New()
	p.WriteRegister(0xFF40, 0x91)
	p.WriteRegister(0xFF47, 0xFC)

	p.renderScanline(0)
	want := applyPalette(0xFC, 0)
	for x := 0; x < ScreenWidth; x++ {
		require.Equal(t, want, p.frame[x], "pixel %d", x)
	}
}

func TestStep_OneAtATimeMatchesBulkStep(t *testing.T) {
	a := New()
	a.WriteRegister(0xFF40, 0x91)
	b := New()
	b.WriteRegister(0xFF40, 0x91)

	const total = 1000
	for i := 0; i < total; i++ {
		a.Step(1)
	}
	b.Step(total)

	require.Equal(t, a.mode, b.mode)
	require.Equal(t, a.modeClock, b.modeClock)
	require.Equal(t, a.regs.ly, b.regs.ly)
	require.Equal(t, a.frame, b.frame)
}

func TestStep_FullFrameRaisesVBlankExactlyOnceAndReturnsToStart(t *testing.T) {
	p := New()
	p.WriteRegister(0xFF40, 0x91)
	vblankCount := 0
	p.SetInterruptRequester(func(bit int) {
		if bit == intVBlank {
			vblankCount++
		}
	})

	p.Step(70224)

	require.Equal(t, ModeOAMSearch, p.mode)
	require.Equal(t, byte(0), p.regs.ly)
	require.Equal(t, 1, vblankCount)
}

func TestLYEqualsLYC_SetsCoincidenceFlag(t *testing.T) {
	p := New()
	p.WriteRegister(0xFF45, 5) // LYC = 5
	for p.regs.ly != 5 {
		p.Step(scanlineCycles)
	}
	require.Equal(t, byte(0x04), p.ReadRegister(0xFF41)&0x04)
}
