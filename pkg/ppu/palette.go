package ppu

// Color is an RGB triple a host frontend can hand straight to its texture
// or framebuffer API.
type Color struct {
	R, G, B uint8
}

// Shades is the four colors a host maps the PPU's 2-bit framebuffer
// indices through. DefaultShades reproduces the classic DMG green-gray
// palette; hosts may supply their own (see pkg/config).
type Shades [4]Color

var DefaultShades = Shades{
	{224, 248, 208},
	{136, 192, 112},
	{52, 104, 86},
	{8, 24, 32},
}

// Resolve converts a raw framebuffer row of 2-bit indices into RGB colors
// under the given shade set.
func Resolve(frame []byte, shades Shades) []Color {
	out := make([]Color, len(frame))
	for i, idx := range frame {
		out[i] = shades[idx&0x03]
	}
	return out
}
