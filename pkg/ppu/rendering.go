package ppu

// renderScanline fills framebuffer row ly using the background, window and
// sprite pipeline described for PIXEL_TRANSFER's exit. It assumes LCDC's
// enable bit is already known to be set (Step only calls it then).
func (p *PPU) renderScanline(ly byte) {
	lcdc := p.regs.lcdc
	row := p.frame[int(ly)*ScreenWidth : int(ly)*ScreenWidth+ScreenWidth]
	bgColorIndex := make([]byte, ScreenWidth)

	if lcdc.bgEnabled() {
		p.renderBackgroundRow(ly, bgColorIndex)
	}

	windowDrawn := false
	if lcdc.windowEnabled() && p.regs.wy <= ly && p.regs.wx <= 166 {
		windowDrawn = p.renderWindowRow(ly, bgColorIndex)
	}
	if windowDrawn {
		p.windowLine++
	}

	for x := 0; x < ScreenWidth; x++ {
		row[x] = applyPalette(p.regs.bgp, bgColorIndex[x])
	}

	if lcdc.spritesEnabled() {
		p.renderSpriteRow(ly, row, bgColorIndex)
	}
}

// renderBackgroundRow fills dst with raw (pre-palette) 2-bit color indices
// for the scrolled background at scanline ly.
func (p *PPU) renderBackgroundRow(ly byte, dst []byte) {
	tileMapBase := uint16(0x9800)
	if p.regs.lcdc.bgTileMapHigh() {
		tileMapBase = 0x9C00
	}
	bgY := (int(ly) + int(p.regs.scy)) & 0xFF

	for x := 0; x < ScreenWidth; x++ {
		bgX := (x + int(p.regs.scx)) & 0xFF
		dst[x] = p.tilePixel(tileMapBase, bgX, bgY)
	}
}

// renderWindowRow fills dst (overwriting background pixels) for the
// portion of the window visible on scanline ly, returning whether the
// window was actually drawn on this line.
func (p *PPU) renderWindowRow(ly byte, dst []byte) bool {
	tileMapBase := uint16(0x9800)
	if p.regs.lcdc.windowTileMapHigh() {
		tileMapBase = 0x9C00
	}
	winX0 := int(p.regs.wx) - 7
	drawn := false
	for x := 0; x < ScreenWidth; x++ {
		if x < winX0 {
			continue
		}
		dst[x] = p.tilePixel(tileMapBase, x-winX0, p.windowLine)
		drawn = true
	}
	return drawn
}

// tilePixel looks up the tile at (mapX/8, mapY/8) within tileMapBase and
// returns the raw 2-bit color index for the pixel at (mapX%8, mapY%8).
func (p *PPU) tilePixel(tileMapBase uint16, mapX, mapY int) byte {
	tileCol := mapX / 8
	tileRow := mapY / 8
	tileIndexAddr := tileMapBase + uint16(tileRow*32+tileCol) - 0x8000
	tileIndex := p.vram[tileIndexAddr]

	tileAddr := p.tileDataAddr(tileIndex)
	lineOffset := uint16(mapY%8) * 2
	lo := p.vram[tileAddr+lineOffset-0x8000]
	hi := p.vram[tileAddr+lineOffset+1-0x8000]

	bit := uint(7 - mapX%8)
	loBit := (lo >> bit) & 1
	hiBit := (hi >> bit) & 1
	return hiBit<<1 | loBit
}

// tileDataAddr resolves a tile index to its base address in VRAM, honoring
// LCDC bit 4's unsigned-vs-signed addressing mode.
func (p *PPU) tileDataAddr(tileIndex byte) uint16 {
	if p.regs.lcdc.unsignedTileData() {
		return 0x8000 + uint16(tileIndex)*16
	}
	return uint16(int32(0x9000) + int32(int8(tileIndex))*16)
}

// applyPalette maps a raw 2-bit color index through a palette register's
// four packed 2-bit shade assignments.
func applyPalette(palette byte, colorIndex byte) byte {
	return (palette >> (colorIndex * 2)) & 0x03
}
