package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// romWithBankMarkers builds a 2 MiB image where the first byte of each
// 16 KiB bank equals the bank's own index, so bank-switching math can be
// checked by reading that marker back.
func romWithBankMarkers() []byte {
	rom := make([]byte, 128*bankSize)
	for bank := 0; bank < 128; bank++ {
		rom[bank*bankSize] = byte(bank)
	}
	return rom
}

func TestMBC1_Bank0IsAlwaysFixedAtBank0000(t *testing.T) {
	m := newMBC1(romWithBankMarkers())
	require.Equal(t, byte(0), m.ReadROM(0x0000))
}

func TestMBC1_BankSelectSwitchesHighWindow(t *testing.T) {
	m := newMBC1(romWithBankMarkers())
	m.WriteROM(0x2100, 0x02) // BANK1 := 2
	require.Equal(t, byte(2), m.ReadROM(0x4000))
}

func TestMBC1_BankRegisterZeroIsTreatedAsOne(t *testing.T) {
	m := newMBC1(romWithBankMarkers())
	m.WriteROM(0x2000, 0x00)
	require.Equal(t, byte(1), m.ReadROM(0x4000))
}

func TestMBC1_BANK2ExtendsPastFirst32Banks(t *testing.T) {
	m := newMBC1(romWithBankMarkers())
	m.WriteROM(0x2000, 0x01) // BANK1 := 1
	m.WriteROM(0x4000, 0x01) // BANK2 := 1 -> effective bank 0x21
	require.Equal(t, byte(0x21), m.ReadROM(0x4000))
}

func TestMBC1_RAMRequiresEnableLatch(t *testing.T) {
	m := newMBC1(romWithBankMarkers())
	m.WriteRAM(0xA000, 0x42)
	require.Equal(t, byte(0xFF), m.ReadRAM(0xA000))

	m.WriteROM(0x0000, 0x0A) // enable
	m.WriteRAM(0xA000, 0x42)
	require.Equal(t, byte(0x42), m.ReadRAM(0xA000))
}

func TestMBC1_ModeOneSelectsRAMBankFromBANK2(t *testing.T) {
	m := newMBC1(romWithBankMarkers())
	m.WriteROM(0x0000, 0x0A) // RAM enable
	m.WriteROM(0x6000, 0x01) // MODE := 1
	m.WriteROM(0x4000, 0x03) // BANK2 := 3 selects RAM bank 3

	m.WriteRAM(0xA000, 0x55)
	require.Equal(t, byte(0x55), m.ReadRAM(0xA000))

	m.WriteROM(0x4000, 0x00) // back to RAM bank 0
	require.Equal(t, byte(0), m.ReadRAM(0xA000))
}
