package cartridge

// ROMOnly is the no-bank-switching mapper: a cartridge with exactly 32 KiB
// of ROM and, optionally, a single fixed 8 KiB RAM bank. There is no
// control-register interception; ROM writes are simply dropped.
type ROMOnly struct {
	rom [0x8000]byte
	ram [0x2000]byte
}

func newROMOnly(rom []byte) *ROMOnly {
	m := &ROMOnly{}
	copy(m.rom[:], rom)
	return m
}

func (m *ROMOnly) ReadROM(addr uint16) byte { return m.rom[addr] }

func (m *ROMOnly) WriteROM(addr uint16, value byte) {}

func (m *ROMOnly) ReadRAM(addr uint16) byte { return m.ram[addr-0xA000] }

func (m *ROMOnly) WriteRAM(addr uint16, value byte) { m.ram[addr-0xA000] = value }

func (m *ROMOnly) RAMImage() []byte { return m.ram[:] }
