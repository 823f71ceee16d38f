// Package gameboy wires the CPU, PPU, bus and cartridge into the
// cooperative CPU->PPU cycle loop a host drives either instruction-by-
// instruction (for a debugger) or frame-by-frame (for real-time play).
package gameboy

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andrewthecodertx/dmg-emulator/pkg/bus"
	"github.com/andrewthecodertx/dmg-emulator/pkg/cartridge"
	"github.com/andrewthecodertx/dmg-emulator/pkg/cpu"
	"github.com/andrewthecodertx/dmg-emulator/pkg/joypad"
	"github.com/andrewthecodertx/dmg-emulator/pkg/ppu"
)

// tCycleNanos is the length of one T-cycle at the DMG's 4.194304 MHz
// master clock, expressed in nanoseconds.
const tCycleNanos = 1e9 / 4194304.0

// GameBoy owns the CPU, PPU, bus and cartridge for one running session.
type GameBoy struct {
	cpu    *cpu.CPU
	bus    *bus.Bus
	ppu    *ppu.PPU
	cart   *cartridge.Cartridge
	joypad *joypad.Joypad

	cycles uint64
	paced  bool
}

// New loads romPath and wires a complete GameBoy ready to run from the
// post-boot-ROM reset state.
func New(romPath string) (*GameBoy, error) {
	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return nil, fmt.Errorf("gameboy: load ROM: %w", err)
	}
	return newFromCartridge(cart), nil
}

// NewFromBytes is New's in-memory counterpart, used by tests and by hosts
// that already have ROM data loaded (e.g. a drag-and-drop frontend).
func NewFromBytes(rom []byte) (*GameBoy, error) {
	cart, err := cartridge.LoadFromBytes(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: load ROM: %w", err)
	}
	return newFromCartridge(cart), nil
}

func newFromCartridge(cart *cartridge.Cartridge) *GameBoy {
	ppuUnit := ppu.New()
	systemBus := bus.New(cart, ppuUnit)
	ppuUnit.SetInterruptRequester(systemBus.RequestInterrupt)

	pad := joypad.New()
	systemBus.SetJoypad(pad)

	return &GameBoy{
		cpu:    cpu.New(systemBus),
		bus:    systemBus,
		ppu:    ppuUnit,
		cart:   cart,
		joypad: pad,
		paced:  true,
	}
}

// SetPaced toggles real-time pacing in Run; RunFrame and Step never pace
// regardless of this setting.
func (g *GameBoy) SetPaced(p bool) { g.paced = p }

// Step executes one CPU instruction (or one HALT/STOP idle tick), feeds
// the resulting T-cycles to the PPU, and polls the joypad for edge-
// triggered interrupts — the one CPU-step/PPU-step pair the scheduler is
// built around.
func (g *GameBoy) Step() (int, error) {
	t, err := g.cpu.Step()
	if err != nil {
		return t, err
	}
	g.ppu.Step(t)
	g.bus.PollJoypad()
	g.cycles += uint64(t)
	return t, nil
}

// RunFrame steps until a full 70224 T-cycle frame has elapsed.
func (g *GameBoy) RunFrame() error {
	const frameCycles = 70224
	var elapsed int
	for elapsed < frameCycles {
		t, err := g.Step()
		if err != nil {
			return err
		}
		elapsed += t
	}
	return nil
}

// Run drives frames until ctx is canceled, optionally pacing each step to
// real time. Cancellation is only honored between step pairs; an
// in-flight instruction always completes first.
func (g *GameBoy) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			t, err := g.Step()
			if err != nil {
				return err
			}
			if g.paced {
				time.Sleep(time.Duration(float64(t) * tCycleNanos))
			}
		}
	})
	return group.Wait()
}

// Framebuffer returns the current 160x144 grid of 2-bit color indices.
func (g *GameBoy) Framebuffer() []byte { return g.ppu.Framebuffer() }

// CPU returns the wired CPU for debugger/inspector use.
func (g *GameBoy) CPU() *cpu.CPU { return g.cpu }

// Bus returns the wired bus for debugger/inspector use.
func (g *GameBoy) Bus() *bus.Bus { return g.bus }

// Joypad returns the wired joypad source so a host frontend can report
// button state.
func (g *GameBoy) Joypad() *joypad.Joypad { return g.joypad }

// Cartridge returns the loaded cartridge, e.g. for battery RAM
// persistence on shutdown.
func (g *GameBoy) Cartridge() *cartridge.Cartridge { return g.cart }

// Cycles returns the total number of T-cycles executed since reset.
func (g *GameBoy) Cycles() uint64 { return g.cycles }
