package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeBus is a flat 64 KiB array standing in for the real address bus, just
// enough surface for the CPU's own tests.
type fakeBus struct {
	mem [0x10000]byte
}

func (b *fakeBus) Read(addr uint16) byte       { return b.mem[addr] }
func (b *fakeBus) Write(addr uint16, v byte)   { b.mem[addr] = v }
func (b *fakeBus) load(at uint16, code []byte) { copy(b.mem[at:], code) }

func newTestCPU(code []byte) (*CPU, *fakeBus) {
	b := &fakeBus{}
	b.load(0x0100, code)
	c := New(b)
	return c, b
}

func TestStep_NOP(t *testing.T) {
	c, _ := newTestCPU([]byte{0x00})
	cycles, err := c.Step()
	require.NoError(t, err)
	require.Equal(t, 4, cycles)
	require.Equal(t, uint16(0x0101), c.PC)
}

func TestStep_LoadImmediateAndXor(t *testing.T) {
	c, _ := newTestCPU([]byte{0x3E, 0x12, 0xAF}) // LD A,0x12; XOR A
	_, err := c.Step()
	require.NoError(t, err)
	require.Equal(t, byte(0x12), c.A)

	_, err = c.Step()
	require.NoError(t, err)
	require.Equal(t, byte(0), c.A)
	require.True(t, c.FlagZero())
}

func TestStep_LoadThroughMemory(t *testing.T) {
	prog := []byte{0x3E, 0x77, 0xEA, 0x00, 0xC0, 0x3E, 0x00, 0xFA, 0x00, 0xC0}
	c, b := newTestCPU(prog)
	for i := 0; i < 4; i++ {
		_, err := c.Step()
		require.NoError(t, err)
	}
	require.Equal(t, byte(0x77), b.Read(0xC000))
	require.Equal(t, byte(0x77), c.A)
}

func TestStep_IllegalOpcode(t *testing.T) {
	c, _ := newTestCPU([]byte{0xD3})
	_, err := c.Step()
	require.True(t, errors.Is(err, ErrIllegalOpcode))
	require.True(t, c.Stopped)
}

func TestStep_ConditionalJumpTakenVsNotTaken(t *testing.T) {
	c, _ := newTestCPU([]byte{0xC2, 0x10, 0x01}) // JP NZ,0x0110
	c.SetFlags(true, false, false, false)        // Z set -> not taken
	cycles, err := c.Step()
	require.NoError(t, err)
	require.Equal(t, 12, cycles)
	require.Equal(t, uint16(0x0103), c.PC)

	c2, _ := newTestCPU([]byte{0xC2, 0x10, 0x01})
	c2.SetFlags(false, false, false, false) // Z clear -> taken
	cycles2, err := c2.Step()
	require.NoError(t, err)
	require.Equal(t, 16, cycles2)
	require.Equal(t, uint16(0x0110), c2.PC)
}

func TestPushPopAF_MasksLowNibble(t *testing.T) {
	c, _ := newTestCPU(nil)
	c.A = 0xAB
	c.F = 0xF0
	c.SP = 0xFFFE
	c.push16(c.AF())
	c.F = 0
	c.A = 0
	c.SetAF(c.pop16())
	require.Equal(t, byte(0xAB), c.A)
	require.Equal(t, byte(0xF0), c.F)
}

func TestServiceInterrupts_PriorityAndVector(t *testing.T) {
	c, b := newTestCPU([]byte{0x00}) // NOP, will be interrupted before it matters
	c.IME = true
	b.Write(regIE, 0x1F)
	b.Write(regIF, 0b00000110) // LCDSTAT and Timer both pending; LCDSTAT wins
	cycles, err := c.Step()
	require.NoError(t, err)
	require.Equal(t, 4+20, cycles)
	require.Equal(t, interruptVectors[intLCDStat], c.PC)
	require.Equal(t, byte(0b00000100), b.Read(regIF))
	require.False(t, c.IME)
}

func TestHalt_WakesOnPendingInterruptWithoutIME(t *testing.T) {
	c, b := newTestCPU([]byte{0x76}) // HALT
	c.IME = false
	_, err := c.Step()
	require.NoError(t, err)
	require.True(t, c.Halted)

	b.Write(regIE, 0x01)
	b.Write(regIF, 0x01)
	cycles, err := c.Step()
	require.NoError(t, err)
	require.False(t, c.Halted)
	require.Equal(t, 4, cycles)
}

func TestEI_TakesEffectAfterNextInstruction(t *testing.T) {
	c, b := newTestCPU([]byte{0xFB, 0x00, 0x00}) // EI; NOP; NOP
	b.Write(regIE, 0x01)
	b.Write(regIF, 0x01)

	_, err := c.Step() // EI itself: IME still false
	require.NoError(t, err)
	require.False(t, c.IME)

	cycles, err := c.Step() // first NOP after EI: IME takes effect, then interrupt fires
	require.NoError(t, err)
	require.Equal(t, 4+20, cycles)
	require.Equal(t, interruptVectors[intVBlank], c.PC)
}
