package ppu

const maxSpritesPerLine = 10

// spriteEntry is one OAM record decoded into its four fields.
type spriteEntry struct {
	y, tile, attr, x byte
	oamIndex         int
}

// renderSpriteRow overlays up to maxSpritesPerLine sprites visible on
// scanline ly onto row, which already holds the palette-mapped background
// pixel for each x; bgRaw holds the pre-palette background color indices
// used to decide BG-priority.
func (p *PPU) renderSpriteRow(ly byte, row []byte, bgRaw []byte) {
	height := 8
	if p.regs.lcdc.tallSprites() {
		height = 16
	}

	visible := p.scanSprites(ly, height)
	sortSpritesByPriority(visible)

	for _, s := range visible {
		p.drawSprite(s, ly, height, row, bgRaw)
	}
}

// scanSprites walks OAM in ascending byte order and returns up to
// maxSpritesPerLine entries whose vertical span covers ly.
func (p *PPU) scanSprites(ly byte, height int) []spriteEntry {
	var visible []spriteEntry
	for i := 0; i < 40 && len(visible) < maxSpritesPerLine; i++ {
		base := i * 4
		y := p.oam[base]
		spriteY := int(y) - 16
		if int(ly) < spriteY || int(ly) >= spriteY+height {
			continue
		}
		visible = append(visible, spriteEntry{
			y:        y,
			tile:     p.oam[base+1],
			attr:     p.oam[base+2],
			x:        p.oam[base+3],
			oamIndex: i,
		})
	}
	return visible
}

// sortSpritesByPriority orders sprites so the lowest-X sprite (ties broken
// by OAM order) is drawn last, i.e. wins when pixels overlap.
func sortSpritesByPriority(sprites []spriteEntry) {
	for i := 1; i < len(sprites); i++ {
		j := i
		for j > 0 && higherPriority(sprites[j], sprites[j-1]) {
			sprites[j], sprites[j-1] = sprites[j-1], sprites[j]
			j--
		}
	}
}

// higherPriority reports whether a belongs ahead of b in the draw order,
// i.e. is drawn first and so loses to b where they overlap: the higher X
// goes first, and on equal X the later OAM index goes first.
func higherPriority(a, b spriteEntry) bool {
	if a.x != b.x {
		return a.x > b.x
	}
	return a.oamIndex > b.oamIndex
}

func (p *PPU) drawSprite(s spriteEntry, ly byte, height int, row []byte, bgRaw []byte) {
	spriteY := int(s.y) - 16
	spriteX := int(s.x) - 8

	yFlip := s.attr&0x40 != 0
	xFlip := s.attr&0x20 != 0
	bgPriority := s.attr&0x80 != 0
	palette := p.regs.obp0
	if s.attr&0x10 != 0 {
		palette = p.regs.obp1
	}

	line := int(ly) - spriteY
	if yFlip {
		line = height - 1 - line
	}

	tile := s.tile
	if height == 16 {
		tile &^= 0x01 // the low bit is ignored for 8x16 sprites
	}
	tileAddr := 0x8000 + uint16(tile)*16 + uint16(line)*2
	lo := p.vram[tileAddr-0x8000]
	hi := p.vram[tileAddr+1-0x8000]

	for col := 0; col < 8; col++ {
		screenX := spriteX + col
		if screenX < 0 || screenX >= ScreenWidth {
			continue
		}
		bit := col
		if !xFlip {
			bit = 7 - col
		}
		loBit := (lo >> uint(bit)) & 1
		hiBit := (hi >> uint(bit)) & 1
		colorIndex := hiBit<<1 | loBit
		if colorIndex == 0 {
			continue // transparent, background shows through
		}
		if bgPriority && bgRaw[screenX] != 0 {
			continue // non-zero background wins
		}
		row[screenX] = applyPalette(palette, colorIndex)
	}
}
