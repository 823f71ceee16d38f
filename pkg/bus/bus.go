// Package bus implements the Game Boy's 64 KiB address space: the single
// shared resource the CPU, PPU and cartridge mapper all read and write
// through.
package bus

import "github.com/andrewthecodertx/dmg-emulator/pkg/cartridge"

// PPU is the subset of pkg/ppu's surface the bus delegates register,
// VRAM and OAM access to.
type PPU interface {
	ReadRegister(addr uint16) byte
	WriteRegister(addr uint16, value byte)
	ReadVRAM(addr uint16) byte
	WriteVRAM(addr uint16, value byte)
	ReadOAM(addr uint16) byte
	WriteOAM(addr uint16, value byte)
}

// JoypadSource supplies the live button nibble for whichever group(s) the
// CPU has selected via bits 5:4 of the 0xFF00 register.
type JoypadSource interface {
	Nibble(selectActions, selectDirections bool) byte
}

const (
	regJOYP uint16 = 0xFF00
	regIF   uint16 = 0xFF0F
	regIE   uint16 = 0xFFFF
	regDMA  uint16 = 0xFF46
)

// Bus implements cpu.Bus and owns every RAM region that is not PPU- or
// cartridge-owned: WRAM, OAM's neighbor HRAM, and the raw I/O register
// file backing APU/timer/serial registers that have no behavioral model in
// this core but must still hold their power-on values.
type Bus struct {
	cart   *cartridge.Cartridge
	ppu    PPU
	joypad JoypadSource

	wram [0x2000]byte
	hram [0x7F]byte
	io   [0x80]byte
	ie   byte

	joypSelect     byte // raw bits 5:4 as last written
	lastJoypNibble byte
}

// New wires a bus to its cartridge and PPU. SetJoypad may be called
// afterward once a joypad source exists.
func New(cart *cartridge.Cartridge, ppu PPU) *Bus {
	b := &Bus{cart: cart, ppu: ppu, joypSelect: 0x30, lastJoypNibble: 0x0F}
	b.resetIO()
	return b
}

// SetJoypad attaches the host-facing joypad source. A bus with no joypad
// attached reads 0xFF00 as if no buttons were ever pressed.
func (b *Bus) SetJoypad(j JoypadSource) { b.joypad = j }

// resetIO seeds the power-on register defaults the hardware guarantees
// before the first CPU step, per the DMG boot sequence.
func (b *Bus) resetIO() {
	defaults := map[uint16]byte{
		0xFF05: 0x00, 0xFF06: 0x00, 0xFF07: 0x00, 0xFF0F: 0xE1,
		0xFF10: 0x80, 0xFF11: 0xBF, 0xFF12: 0xF3, 0xFF13: 0xFF, 0xFF14: 0xBF,
		0xFF16: 0x3F, 0xFF17: 0x00, 0xFF18: 0xFF, 0xFF19: 0xBF,
		0xFF1A: 0x7F, 0xFF1B: 0xFF, 0xFF1C: 0x9F, 0xFF1D: 0xFF, 0xFF1E: 0xBF,
		0xFF20: 0xFF, 0xFF21: 0x00, 0xFF22: 0x00, 0xFF23: 0xBF,
		0xFF24: 0x77, 0xFF25: 0xF3, 0xFF26: 0xF1,
		0xFF40: 0x91, 0xFF41: 0x00,
		0xFF42: 0x00, 0xFF43: 0x00, 0xFF44: 0x00, 0xFF45: 0x00, 0xFF46: 0xFF,
		0xFF47: 0xFC, 0xFF48: 0xFF, 0xFF49: 0xFF, 0xFF4A: 0x00, 0xFF4B: 0x00,
	}
	for addr, v := range defaults {
		if isPPURegister(addr) {
			b.ppu.WriteRegister(addr, v)
			continue
		}
		b.io[addr-0xFF00] = v
	}
}

func isPPURegister(addr uint16) bool {
	return addr == 0xFF40 || addr == 0xFF41 ||
		(addr >= 0xFF42 && addr <= 0xFF45) ||
		addr == 0xFF47 || addr == 0xFF48 || addr == 0xFF49 ||
		addr == 0xFF4A || addr == 0xFF4B
}

// Read dispatches a CPU (or debugger) read across the full 64 KiB space.
// Reads from unmapped addresses yield 0.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x8000:
		return b.cart.Mapper().ReadROM(addr)
	case addr < 0xA000:
		return b.ppu.ReadVRAM(addr - 0x8000)
	case addr < 0xC000:
		return b.cart.Mapper().ReadRAM(addr)
	case addr < 0xE000:
		return b.wram[addr-0xC000]
	case addr < 0xFE00:
		return b.wram[addr-0xE000] // echo RAM mirrors WRAM byte-for-byte
	case addr < 0xFEA0:
		return b.ppu.ReadOAM(addr - 0xFE00)
	case addr < 0xFF00:
		return 0 // unmapped OAM-adjacent range
	case addr == regJOYP:
		return b.readJoypad()
	case addr < 0xFF80:
		return b.readIO(addr)
	case addr < 0xFFFF:
		return b.hram[addr-0xFF80]
	default:
		return b.ie
	}
}

// Write dispatches a CPU write across the full 64 KiB space. Writes to
// unmapped ranges are silently dropped; writes into 0x0000-0x7FFF never
// mutate ROM, they are intercepted as mapper control.
func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr < 0x8000:
		b.cart.Mapper().WriteROM(addr, value)
	case addr < 0xA000:
		b.ppu.WriteVRAM(addr-0x8000, value)
	case addr < 0xC000:
		b.cart.Mapper().WriteRAM(addr, value)
	case addr < 0xE000:
		b.wram[addr-0xC000] = value
	case addr < 0xFE00:
		b.wram[addr-0xE000] = value // echo RAM mirrors WRAM byte-for-byte
	case addr < 0xFEA0:
		b.ppu.WriteOAM(addr-0xFE00, value)
	case addr < 0xFF00:
		// unmapped, dropped
	case addr == regJOYP:
		b.joypSelect = value & 0x30
	case addr == regDMA:
		b.triggerOAMDMA(value)
	case addr < 0xFF80:
		b.writeIO(addr, value)
	case addr < 0xFFFF:
		b.hram[addr-0xFF80] = value
	default:
		b.ie = value
	}
}

func (b *Bus) readIO(addr uint16) byte {
	if isPPURegister(addr) {
		return b.ppu.ReadRegister(addr)
	}
	if addr == regIF {
		return b.io[addr-0xFF00] | 0xE0 // upper three bits always read 1
	}
	return b.io[addr-0xFF00]
}

func (b *Bus) writeIO(addr uint16, value byte) {
	if isPPURegister(addr) {
		b.ppu.WriteRegister(addr, value)
		return
	}
	b.io[addr-0xFF00] = value
}

// readJoypad combines the CPU-selected group(s) with the live button
// nibble from the attached joypad source. Unselected groups, and a bus
// with no joypad attached, read as all-ones (no button pressed).
func (b *Bus) readJoypad() byte {
	selectActions := b.joypSelect&0x20 == 0
	selectDirections := b.joypSelect&0x10 == 0
	nibble := byte(0x0F)
	if b.joypad != nil {
		nibble = b.joypad.Nibble(selectActions, selectDirections)
	}
	return 0xC0 | b.joypSelect | nibble
}

// PollJoypad re-samples the joypad nibble and requests the joypad
// interrupt on any bit transitioning from unpressed (1) to pressed (0).
// The scheduler calls this between CPU steps, matching the bus's
// between-steps-only mutation discipline for host input.
func (b *Bus) PollJoypad() {
	if b.joypad == nil {
		return
	}
	selectActions := b.joypSelect&0x20 == 0
	selectDirections := b.joypSelect&0x10 == 0
	nibble := b.joypad.Nibble(selectActions, selectDirections)
	if b.lastJoypNibble&^nibble != 0 {
		b.RequestInterrupt(IntJoypad)
	}
	b.lastJoypNibble = nibble
}

// Interrupt bit positions within IF/IE, matching pkg/cpu's priority order.
const (
	IntVBlank = iota
	IntLCDStat
	IntTimer
	IntSerial
	IntJoypad
)

// RequestInterrupt ORs the given interrupt's bit into IF, the way the PPU
// raises VBlank/STAT and the joypad raises its own request.
func (b *Bus) RequestInterrupt(bit int) {
	b.io[regIF-0xFF00] |= 1 << uint(bit)
}

// triggerOAMDMA performs the instantaneous 160-byte copy from
// (value<<8)..(value<<8)+0x9F into OAM. Real hardware spreads this over
// 160 M-cycles during which the CPU can only access HRAM; this core has no
// sub-instruction timing model (see Non-goals), so the transfer completes
// synchronously on the triggering write.
func (b *Bus) triggerOAMDMA(page byte) {
	src := uint16(page) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.ppu.WriteOAM(i, b.Read(src+i))
	}
}
