// Package gameboy wires together the CPU, MMU, timer and interrupt
// controller into a runnable Game Boy core.
package gameboy

import (
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/cpu"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/mmu"
	"github.com/thelolagemann/gomeboy/internal/timer"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

const (
	// ClockSpeed is the Game Boy's clock speed, in T-cycles per second.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of T-cycles in one 59.7Hz frame.
	CyclesPerFrame = 70224
)

// System is a complete Game Boy core: CPU, MMU, timer and interrupt
// controller, with no PPU/APU/display/serial-link backend.
type System struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Timer      *timer.Controller
	Interrupts *interrupts.Service

	log.Logger

	romDigest    uint64
	cyclesBudget uint
}

// New constructs a System from ROM bytes.
func New(rom []byte, opts ...Option) (*System, error) {
	cart, err := cartridge.LoadROM(rom)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewService()
	t := timer.NewController(irq)
	bus := mmu.NewMMU(cart, irq, t)
	c := cpu.NewCPU(bus, irq, t)

	g := &System{
		CPU:        c,
		MMU:        bus,
		Timer:      t,
		Interrupts: irq,
		Logger:     log.NewNullLogger(),
		romDigest:  xxhash.Sum64(rom),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// LoadROM replaces the running cartridge with a new one, resetting the
// CPU to its power-on state.
func (g *System) LoadROM(rom []byte) error {
	cart, err := cartridge.LoadROM(rom)
	if err != nil {
		return err
	}
	g.MMU.Cartridge = cart
	g.romDigest = xxhash.Sum64(rom)
	g.Reset()
	return nil
}

// SkipBootROM seeds the CPU and stack pointer with the values real
// hardware's boot ROM leaves behind, so execution can start directly
// at the cartridge's entry point.
func (g *System) SkipBootROM() {
	g.CPU.PC = 0x0100
	g.CPU.SP = 0xFFFE
	g.CPU.A, g.CPU.F = 0x01, 0xB0
	g.CPU.B, g.CPU.C = 0x00, 0x13
	g.CPU.D, g.CPU.E = 0x00, 0xD8
	g.CPU.H, g.CPU.L = 0x01, 0x4D
}

// Reset returns the CPU registers, the interrupt registers and IME,
// and the frame cycle budget to their power-on state. Work RAM, high
// RAM, the timer, the joypad/serial registers and the cartridge's
// bank registers keep their current contents.
func (g *System) Reset() {
	g.CPU.Reset()
	*g.Interrupts = interrupts.Service{}
	g.cyclesBudget = 0
}

// Step executes exactly one CPU instruction and returns the number of
// T-cycles it consumed.
func (g *System) Step() uint8 {
	return g.CPU.Step()
}

// Frame runs whole instructions until the cycle budget, which starts
// with any overshoot carried over from the previous call, reaches one
// 70224-T-cycle frame, then subtracts one frame from the budget. It
// returns the number of T-cycles consumed this call.
func (g *System) Frame() uint {
	consumed := uint(0)
	for g.cyclesBudget < CyclesPerFrame {
		cycles := uint(g.Step())
		g.cyclesBudget += cycles
		consumed += cycles
	}
	g.cyclesBudget -= CyclesPerFrame
	return consumed
}

// SetInput presses or releases buttons to match the given bitmask, one
// active-high bit per button in mmu.Button order (bit set = pressed).
func (g *System) SetInput(mask uint8) {
	for button := mmu.Button(0); button < 8; button++ {
		if mask&(1<<button) != 0 {
			g.MMU.PressButton(button)
		} else {
			g.MMU.ReleaseButton(button)
		}
	}
}

// Read reads a byte from the System's address space.
func (g *System) Read(addr uint16) uint8 { return g.MMU.Read(addr) }

// Write writes a byte to the System's address space.
func (g *System) Write(addr uint16, v uint8) { g.MMU.Write(addr, v) }

// RAM returns the current contents of work RAM, for inspection or
// save-state snapshots.
func (g *System) RAM() []byte {
	ram := make([]byte, 0x2000)
	for i := range ram {
		ram[i] = g.MMU.Read(0xC000 + uint16(i))
	}
	return ram
}

// ROMDigest returns a fast, non-cryptographic digest of the currently
// loaded ROM, stable across repeated calls, for cache keys and
// regression-test identification of which ROM produced a result.
func (g *System) ROMDigest() uint64 {
	return g.romDigest
}
