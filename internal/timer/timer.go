// Package timer implements the DIV/TIMA/TMA/TAC timer: a free-running
// 16-bit system counter (DIV is its upper byte) and a configurable
// counter (TIMA) that increments on a falling edge of a TAC-selected
// bit of that counter, requesting an interrupt on overflow.
package timer

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
)

// selectBits maps the two TAC rate-select bits to the system-counter
// bit whose falling edge increments TIMA.
var selectBits = [4]uint16{512, 8, 32, 128}

// Controller is the DIV/TIMA/TMA/TAC timer.
type Controller struct {
	sysClock uint16

	tima               uint8
	tma                uint8
	tac                uint8
	ticksSinceOverflow uint8

	Enabled    bool
	currentBit uint16
	lastBit    bool
	overflow   bool

	irq *interrupts.Service
}

// NewController returns a new timer controller in its post-boot-ROM
// state.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq:        irq,
		currentBit: selectBits[0],
		tac:        0xF8,
	}
}

// Tick advances the system counter, and TIMA's falling-edge
// detector along with it, by the given number of T-cycles.
func (c *Controller) Tick(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		c.sysClock++
		c.checkEdge()
	}
}

// checkEdge re-evaluates the TAC-selected bit of the system counter
// after it changes, advancing TIMA on a 1->0 transition and driving
// the four-cycle overflow-to-reload pipeline.
func (c *Controller) checkEdge() {
	newBit := c.Enabled && c.sysClock&c.currentBit != 0

	if !newBit && c.lastBit {
		c.tima++
		if c.tima == 0 {
			c.overflow = true
			c.ticksSinceOverflow = 0
		}
	}
	c.lastBit = newBit

	if c.overflow {
		c.ticksSinceOverflow++
		switch c.ticksSinceOverflow {
		case 4:
			c.irq.Request(interrupts.TimerFlag)
		case 5:
			c.tima = c.tma
		case 6:
			c.overflow = false
			c.ticksSinceOverflow = 0
		}
	}
}

// ReadDIV returns the upper byte of the system counter.
func (c *Controller) ReadDIV() uint8 {
	return uint8(c.sysClock >> 8)
}

// WriteDIV resets the system counter to 0. Because this can clear a
// bit that was driving TIMA's falling edge, it can spuriously
// increment TIMA exactly like disabling the timer via TAC does.
func (c *Controller) WriteDIV(uint8) {
	oldBit := c.lastBit
	c.sysClock = 0
	if oldBit {
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}
	c.lastBit = false
}

// ReadTIMA returns the timer counter.
func (c *Controller) ReadTIMA() uint8 {
	return c.tima
}

// WriteTIMA writes the timer counter. A write landing on the same
// cycle TIMA would reload from TMA is ignored, matching hardware.
func (c *Controller) WriteTIMA(v uint8) {
	if c.overflow && c.ticksSinceOverflow == 5 {
		return
	}
	c.tima = v
	c.overflow = false
	c.ticksSinceOverflow = 0
}

// ReadTMA returns the TIMA reload value.
func (c *Controller) ReadTMA() uint8 {
	return c.tma
}

// WriteTMA writes the TIMA reload value. If TIMA is reloading on this
// exact cycle, the new value takes effect immediately.
func (c *Controller) WriteTMA(v uint8) {
	c.tma = v
	if c.overflow && c.ticksSinceOverflow == 5 {
		c.tima = v
	}
}

// ReadTAC returns the timer control register. The unused upper 5
// bits always read back as set.
func (c *Controller) ReadTAC() uint8 {
	return c.tac | 0b1111_1000
}

// WriteTAC writes the timer control register, applying the
// documented "timer glitch" when the AND-gated edge falls as a result
// of the write.
func (c *Controller) WriteTAC(v uint8) {
	wasEnabled := c.Enabled
	oldBit := c.currentBit

	c.tac = v
	c.currentBit = selectBits[v&0b11]
	c.Enabled = v&0x4 == 0x4

	c.timaGlitch(wasEnabled, oldBit)
}

// timaGlitch reproduces the spurious TIMA increment that occurs when
// disabling the timer, or switching to a slower rate, while the old
// AND-gated bit was set: the gate's output falls even though the
// underlying counter bit never did.
func (c *Controller) timaGlitch(wasEnabled bool, oldBit uint16) {
	if !wasEnabled {
		return
	}
	if c.sysClock&oldBit == 0 {
		return
	}
	if c.Enabled && c.sysClock&c.currentBit != 0 {
		return
	}

	c.tima++
	if c.tima == 0 {
		c.tima = c.tma
		c.irq.Request(interrupts.TimerFlag)
	}
	c.lastBit = false
}
