// Package mmu implements the Game Boy's memory map: the address
// decoder that routes every CPU read and write to the cartridge, work
// RAM, high RAM, or one of the memory-mapped I/O registers this core
// models.
package mmu

import (
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/timer"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// MMU is the Game Boy's memory management unit: a single flat address
// space from 0x0000 to 0xFFFF, dispatched by range.
type MMU struct {
	Cartridge *cartridge.Cartridge
	wram      *WRAM
	hram      [0x7F]uint8

	irq   *interrupts.Service
	timer *timer.Controller

	// joypad holds the currently pressed buttons, active low: bits
	// 0-3 are the action buttons (A, B, Select, Start), bits 4-7 the
	// direction keys (Right, Left, Up, Down).
	joypad    uint8
	joypadSel uint8

	serialData    uint8
	serialControl uint8
	// SerialPending is set when a transfer is requested (a write of
	// 0x81 to SC) and cleared by the next read of SC. This core does
	// not model bit-by-bit shifting or an attached device; a transfer
	// completes instantly.
	SerialPending bool

	dma uint8
}

// NewMMU returns a new MMU wired to the given cartridge, interrupt
// controller and timer.
func NewMMU(cart *cartridge.Cartridge, irq *interrupts.Service, t *timer.Controller) *MMU {
	return &MMU{
		Cartridge: cart,
		wram:      NewWRAM(),
		irq:       irq,
		timer:     t,
		joypad:    0xFF,
		joypadSel: 0x30,
	}
}

// Read returns the byte at addr.
func (m *MMU) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return m.Cartridge.Read(addr)
	case addr < 0xA000:
		return 0xFF // VRAM stub (PPU out of scope)
	case addr < 0xC000:
		return m.Cartridge.Read(addr)
	case addr < 0xFE00:
		return m.wram.Read(addr)
	case addr < 0xFEA0:
		return 0xFF // OAM stub (PPU out of scope)
	case addr < 0xFF00:
		return 0xFF // unusable
	case addr < 0xFF80:
		return m.readIO(addr)
	case addr < 0xFFFF:
		return m.hram[addr-0xFF80]
	default:
		return m.irq.ReadIE()
	}
}

// Write stores v at addr.
func (m *MMU) Write(addr uint16, v uint8) {
	switch {
	case addr < 0x8000:
		m.Cartridge.Write(addr, v)
	case addr < 0xA000:
		// VRAM stub (PPU out of scope)
	case addr < 0xC000:
		m.Cartridge.Write(addr, v)
	case addr < 0xFE00:
		m.wram.Write(addr, v)
	case addr < 0xFEA0:
		// OAM stub (PPU out of scope)
	case addr < 0xFF00:
		// unusable
	case addr < 0xFF80:
		m.writeIO(addr, v)
	case addr < 0xFFFF:
		m.hram[addr-0xFF80] = v
	default:
		m.irq.WriteIE(v)
	}
}

func (m *MMU) readIO(addr uint16) uint8 {
	switch addr {
	case types.P1:
		return m.readJoypad()
	case types.SB:
		return m.serialData
	case types.SC:
		c := m.serialControl
		m.SerialPending = false
		return c
	case types.DIV:
		return m.timer.ReadDIV()
	case types.TIMA:
		return m.timer.ReadTIMA()
	case types.TMA:
		return m.timer.ReadTMA()
	case types.TAC:
		return m.timer.ReadTAC()
	case types.IF:
		return m.irq.ReadIF()
	case types.DMA:
		return m.dma
	default:
		return 0xFF // APU/PPU/LCD register stubs
	}
}

func (m *MMU) writeIO(addr uint16, v uint8) {
	switch addr {
	case types.P1:
		m.joypadSel = v & 0x30
	case types.SB:
		m.serialData = v
	case types.SC:
		m.serialControl = v | 0x7E
		if v&types.Bit7 != 0 && v&types.Bit0 != 0 {
			m.SerialPending = true
		}
	case types.DIV:
		m.timer.WriteDIV(v)
	case types.TIMA:
		m.timer.WriteTIMA(v)
	case types.TMA:
		m.timer.WriteTMA(v)
	case types.TAC:
		m.timer.WriteTAC(v)
	case types.IF:
		m.irq.WriteIF(v)
	case types.DMA:
		m.dma = v
		m.runDMA(v)
	default:
		// APU/PPU/LCD registers are not modeled; writes are discarded.
	}
}

// runDMA copies the 0xA0-byte OAM DMA source page into OAM. Since OAM
// is a permanent stub in this core, the copy has no observable effect
// beyond consuming the source reads; it exists so software polling a
// DMA-busy signal (timing aside) never stalls waiting on something
// this core doesn't model.
func (m *MMU) runDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 0xA0; i++ {
		_ = m.Read(base + i)
	}
}

// readJoypad resolves the P1 register against the currently pressed
// buttons. Selecting both action and direction keys (or neither) is
// legal; each selected nibble independently constrains the result,
// matching the two select lines being wired in parallel on hardware.
func (m *MMU) readJoypad() uint8 {
	d := uint8(0x0F)
	if m.joypadSel&types.Bit4 == 0 {
		d &= m.joypad >> 4
	}
	if m.joypadSel&types.Bit5 == 0 {
		d &= m.joypad & 0x0F
	}
	return 0xC0 | m.joypadSel | d
}

// Button identifies a physical button by the bit it occupies in the
// joypad shadow register.
type Button = uint8

const (
	ButtonA      Button = 0
	ButtonB      Button = 1
	ButtonSelect Button = 2
	ButtonStart  Button = 3
	ButtonRight  Button = 4
	ButtonLeft   Button = 5
	ButtonUp     Button = 6
	ButtonDown   Button = 7
)

// PressButton marks button as pressed (0 in the shadow register) and
// requests a joypad interrupt.
func (m *MMU) PressButton(button Button) {
	m.joypad &^= 1 << button
	m.irq.Request(interrupts.JoypadFlag)
}

// ReleaseButton marks button as released (1 in the shadow register).
func (m *MMU) ReleaseButton(button Button) {
	m.joypad |= 1 << button
}
