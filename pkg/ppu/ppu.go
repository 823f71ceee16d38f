// Package ppu implements the DMG Picture Processing Unit: the scanline
// mode state machine and the background/window/sprite rasterization
// pipeline that fills a 160x144 framebuffer of 2-bit color indices.
package ppu

// Mode is one of the four PPU states a scanline cycles through.
type Mode byte

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMSearch
	ModePixelTransfer
)

// Per-mode T-cycle durations and frame geometry, per the DMG timing model.
const (
	oamSearchCycles     = 80
	pixelTransferCycles = 172
	hblankCycles        = 204
	scanlineCycles      = oamSearchCycles + pixelTransferCycles + hblankCycles // 456
	vblankLineCycles    = scanlineCycles

	ScreenWidth  = 160
	ScreenHeight = 144
	visibleLines = ScreenHeight
	totalLines   = 154
)

// InterruptRequester lets the PPU raise IF bits through the bus without an
// import cycle between the two packages.
type InterruptRequester func(bit int)

// Interrupt bit positions, mirrored from pkg/bus to avoid a dependency
// back onto it.
const (
	intVBlank   = 0
	intLCDStat  = 1
)

// PPU owns VRAM, OAM, the display-facing registers, and the 160x144
// framebuffer. Its Step method is the scanline/mode state machine; its
// renderScanline method (rendering.go) is the pixel pipeline.
type PPU struct {
	regs registers

	vram [0x2000]byte
	oam  [0xA0]byte

	mode      Mode
	modeClock int

	frame [ScreenWidth * ScreenHeight]byte

	windowLine int

	requestInterrupt InterruptRequester
}

// New constructs a PPU in its post-reset state: OAM_SEARCH, LY=0.
func New() *PPU {
	p := &PPU{mode: ModeOAMSearch}
	return p
}

// SetInterruptRequester attaches the callback used to OR VBlank/STAT bits
// into IF. Without one attached, Step still advances state but raises no
// interrupts (useful for rendering-only tests).
func (p *PPU) SetInterruptRequester(f InterruptRequester) { p.requestInterrupt = f }

// Framebuffer returns the current 160x144 grid of 2-bit color indices,
// row-major, overwritten scanline-by-scanline as frames render.
func (p *PPU) Framebuffer() []byte { return p.frame[:] }

func (p *PPU) raise(bit int) {
	if p.requestInterrupt != nil {
		p.requestInterrupt(bit)
	}
}

// Step advances the mode state machine by delta T-cycles, applying every
// mode transition delta's budget covers — delta may exceed a single
// mode's remaining duration, in which case modeClock carries the
// remainder across transitions within the same call.
func (p *PPU) Step(delta int) {
	p.modeClock += delta
	for p.applyOneTransition() {
	}
}

// applyOneTransition fires at most one mode transition if modeClock has
// accumulated enough budget, returning true if it did (so Step can keep
// draining a large delta).
func (p *PPU) applyOneTransition() bool {
	switch p.mode {
	case ModeOAMSearch:
		if p.modeClock < oamSearchCycles {
			return false
		}
		p.modeClock -= oamSearchCycles
		p.enterMode(ModePixelTransfer)
		return true

	case ModePixelTransfer:
		if p.modeClock < pixelTransferCycles {
			return false
		}
		p.modeClock -= pixelTransferCycles
		if p.regs.lcdc.lcdEnabled() {
			p.renderScanline(p.regs.ly)
		} else {
			p.blankScanline(p.regs.ly)
		}
		p.enterMode(ModeHBlank)
		return true

	case ModeHBlank:
		if p.modeClock < hblankCycles {
			return false
		}
		p.modeClock -= hblankCycles
		p.advanceLine()
		if p.regs.ly == visibleLines {
			p.enterMode(ModeVBlank)
			p.raise(intVBlank)
		} else {
			p.enterMode(ModeOAMSearch)
		}
		return true

	default: // ModeVBlank
		if p.modeClock < vblankLineCycles {
			return false
		}
		p.modeClock -= vblankLineCycles
		p.advanceLine()
		if p.regs.ly == totalLines {
			p.regs.ly = 0
			p.updateCoincidence()
			p.windowLine = 0
			p.enterMode(ModeOAMSearch)
		}
		return true
	}
}

// advanceLine increments LY and refreshes the LY==LYC coincidence flag,
// the way real hardware re-evaluates it on every line boundary.
func (p *PPU) advanceLine() {
	p.regs.ly++
	p.updateCoincidence()
}

func (p *PPU) updateCoincidence() {
	p.regs.stat = p.regs.stat.withCoincidence(p.regs.ly == p.regs.lyc)
}

// enterMode updates STAT's mode bits and raises the STAT interrupt when
// the newly-entered mode (or the coincidence flag) has its interrupt
// source enabled. The DMG's LY==LYC and mode-change STAT sources are not
// otherwise modeled by the source this core was distilled from; this
// follows the official timing reference's mode-interrupt behavior.
func (p *PPU) enterMode(m Mode) {
	p.mode = m
	p.regs.stat = p.regs.stat.withMode(m)

	statFires := false
	switch m {
	case ModeHBlank:
		statFires = p.regs.stat.hblankIntEnabled()
	case ModeVBlank:
		statFires = p.regs.stat.vblankIntEnabled()
	case ModeOAMSearch:
		statFires = p.regs.stat.oamIntEnabled()
	}
	if statFires || (p.regs.stat.coincidenceIntEnabled() && p.regs.ly == p.regs.lyc) {
		p.raise(intLCDStat)
	}
}

func (p *PPU) blankScanline(ly byte) {
	row := p.frame[int(ly)*ScreenWidth : int(ly)*ScreenWidth+ScreenWidth]
	for i := range row {
		row[i] = 0
	}
}

// ReadVRAM and WriteVRAM implement bus.PPU's VRAM delegation for
// 0x8000-0x9FFF (addr already rebased to 0x0000-0x1FFF by the bus).
func (p *PPU) ReadVRAM(addr uint16) byte     { return p.vram[addr] }
func (p *PPU) WriteVRAM(addr uint16, v byte) { p.vram[addr] = v }

// ReadOAM and WriteOAM implement bus.PPU's OAM delegation for
// 0xFE00-0xFE9F (addr already rebased to 0x00-0x9F by the bus).
func (p *PPU) ReadOAM(addr uint16) byte     { return p.oam[addr] }
func (p *PPU) WriteOAM(addr uint16, v byte) { p.oam[addr] = v }
