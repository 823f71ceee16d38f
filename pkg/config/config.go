// Package config loads the optional host-frontend settings file: joypad
// key bindings, pacing, and the 4-shade palette the PPU's framebuffer is
// resolved through.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrewthecodertx/dmg-emulator/pkg/joypad"
	"github.com/andrewthecodertx/dmg-emulator/pkg/ppu"
)

// KeyBindings maps SDL2 key names (as reported by sdl.GetKeyName) to
// joypad buttons.
type KeyBindings map[string]joypad.Button

// Config is the full set of host-frontend options. Only fields relevant
// to a terminal/SDL frontend live here; the CORE never reads this type.
type Config struct {
	Paced   bool        `yaml:"paced"`
	Keys    KeyBindings `yaml:"-"`
	RawKeys map[string]string `yaml:"keys"`
	Shades  [4][3]uint8 `yaml:"shades"`
}

// Default returns the out-of-the-box configuration: real-time pacing on,
// the classic DMG green-gray palette, and a conventional arrow-keys +
// Z/X/Enter/Backspace layout.
func Default() Config {
	return Config{
		Paced: true,
		Keys: KeyBindings{
			"Z":         joypad.ButtonA,
			"X":         joypad.ButtonB,
			"Return":    joypad.ButtonStart,
			"Backspace": joypad.ButtonSelect,
			"Right":     joypad.ButtonRight,
			"Left":      joypad.ButtonLeft,
			"Up":        joypad.ButtonUp,
			"Down":      joypad.ButtonDown,
		},
		Shades: [4][3]uint8{
			{224, 248, 208},
			{136, 192, 112},
			{52, 104, 86},
			{8, 24, 32},
		},
	}
}

// Load reads and parses a YAML config file, falling back to Default for
// any field the file omits.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Keys = resolveKeyBindings(cfg, Default().Keys)
	return cfg, nil
}

func resolveKeyBindings(cfg Config, defaults KeyBindings) KeyBindings {
	if len(cfg.RawKeys) == 0 {
		return defaults
	}
	bindings := make(KeyBindings, len(cfg.RawKeys))
	for key, name := range cfg.RawKeys {
		if b, ok := buttonByName[name]; ok {
			bindings[key] = b
		}
	}
	return bindings
}

var buttonByName = map[string]joypad.Button{
	"A": joypad.ButtonA, "B": joypad.ButtonB,
	"Select": joypad.ButtonSelect, "Start": joypad.ButtonStart,
	"Right": joypad.ButtonRight, "Left": joypad.ButtonLeft,
	"Up": joypad.ButtonUp, "Down": joypad.ButtonDown,
}

// PaletteShades converts the config's RGB triples into a ppu.Shades.
func (c Config) PaletteShades() ppu.Shades {
	var s ppu.Shades
	for i, rgb := range c.Shades {
		s[i] = ppu.Color{R: rgb[0], G: rgb[1], B: rgb[2]}
	}
	return s
}
