// Command dmg is the SDL2 host frontend: it opens a window, pumps the
// 160x144 framebuffer to a streaming texture, maps keyboard events to the
// joypad via the configured key bindings, and persists cartridge battery
// RAM to disk on clean shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/andrewthecodertx/dmg-emulator/pkg/config"
	"github.com/andrewthecodertx/dmg-emulator/pkg/cpu"
	"github.com/andrewthecodertx/dmg-emulator/pkg/gameboy"
	"github.com/andrewthecodertx/dmg-emulator/pkg/ppu"
)

const windowScale = 4

// frameDuration is the wall-clock length of one 70224 T-cycle frame.
const frameDuration = 70224 * time.Second / 4194304

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: dmg <rom-file> [config.yaml]")
		os.Exit(1)
	}
	romPath := os.Args[1]

	cfg := config.Default()
	if len(os.Args) > 2 {
		loaded, err := config.Load(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "dmg: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(romPath, cfg); err != nil {
		if errors.Is(err, cpu.ErrIllegalOpcode) {
			fmt.Fprintf(os.Stderr, "dmg: halted on illegal opcode: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "dmg: %v\n", err)
		os.Exit(1)
	}
}

func run(romPath string, cfg config.Config) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("dmg: init SDL: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"DMG - "+romPath,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(ppu.ScreenWidth*windowScale), int32(ppu.ScreenHeight*windowScale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return fmt.Errorf("dmg: create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("dmg: create renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24,
		sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight,
	)
	if err != nil {
		return fmt.Errorf("dmg: create texture: %w", err)
	}
	defer texture.Destroy()

	gb, err := gameboy.New(romPath)
	if err != nil {
		return fmt.Errorf("dmg: load ROM: %w", err)
	}

	savePath := batterySavePath(romPath)
	if gb.Cartridge().HasBattery() {
		loadBatteryRAM(gb, savePath)
	}

	gb.SetPaced(cfg.Paced)
	shades := cfg.PaletteShades()
	pixels := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*3)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE {
					running = false
					continue
				}
				name := sdl.GetKeyName(e.Keysym.Sym)
				if btn, ok := cfg.Keys[name]; ok {
					gb.Joypad().SetPressed(btn, e.Type == sdl.KEYDOWN)
				}
			}
		}
		if !running {
			break
		}

		select {
		case <-ctx.Done():
			running = false
			continue
		default:
		}

		frameStart := time.Now()
		if err := gb.RunFrame(); err != nil {
			if gb.Cartridge().HasBattery() {
				saveBatteryRAM(gb, savePath)
			}
			return err
		}

		colors := ppu.Resolve(gb.Framebuffer(), shades)
		for i, c := range colors {
			pixels[i*3+0] = c.R
			pixels[i*3+1] = c.G
			pixels[i*3+2] = c.B
		}
		texture.Update(nil, unsafe.Pointer(&pixels[0]), ppu.ScreenWidth*3)

		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()

		if cfg.Paced {
			if wait := frameDuration - time.Since(frameStart); wait > 0 {
				time.Sleep(wait)
			}
		}
	}

	if gb.Cartridge().HasBattery() {
		saveBatteryRAM(gb, savePath)
	}
	return nil
}

func batterySavePath(romPath string) string {
	ext := filepath.Ext(romPath)
	return strings.TrimSuffix(romPath, ext) + ".sav"
}

func loadBatteryRAM(gb *gameboy.GameBoy, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	copy(gb.Cartridge().Mapper().RAMImage(), data)
}

func saveBatteryRAM(gb *gameboy.GameBoy, path string) {
	image := gb.Cartridge().Mapper().RAMImage()
	if len(image) == 0 {
		return
	}
	_ = os.WriteFile(path, image, 0o644)
}
