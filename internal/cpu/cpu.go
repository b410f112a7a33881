package cpu

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/mmu"
	"github.com/thelolagemann/gomeboy/internal/timer"
	"github.com/thelolagemann/gomeboy/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU, in T-cycles per second.
	ClockSpeed = 4194304
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode: fetch, decode, execute.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT when IME is set. The CPU ticks but
	// does not fetch until an interrupt becomes pending.
	ModeHalt
	// ModeHaltDI is entered by HALT when IME is clear and no
	// interrupt is already pending.
	ModeHaltDI
	// ModeHaltBug is entered by HALT when IME is clear and an
	// interrupt is already pending: the byte following HALT is
	// fetched but PC fails to advance past it.
	ModeHaltBug
	// ModeEnableIME is entered by EI; IME takes effect after the
	// instruction following EI has executed.
	ModeEnableIME
)

// Register and RegisterPair are local aliases of the shared register
// types, so the instruction tables below can refer to them without a
// package qualifier.
type (
	Register     = types.Register
	RegisterPair = types.RegisterPair
	Registers    = types.Registers
)

// CPU emulates the Sharp SM83 core: its registers, the fetch/decode/
// execute loop, interrupt dispatch and the HALT/EI timing quirks.
type CPU struct {
	// PC is the program counter, it points to the next instruction to
	// be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit
	// register pairs.
	Registers

	mmu *mmu.MMU
	irq *interrupts.Service

	timer *timer.Controller

	Debug           bool
	DebugBreakpoint bool

	currentTick uint8
	mode        mode
}

// NewCPU creates a new CPU wired to the given MMU, interrupt service
// and timer.
func NewCPU(mmu *mmu.MMU, irq *interrupts.Service, timer *timer.Controller) *CPU {
	c := &CPU{
		Registers: Registers{},
		mmu:       mmu,
		irq:       irq,
		timer:     timer,
	}
	c.BC = &RegisterPair{High: &c.B, Low: &c.C}
	c.DE = &RegisterPair{High: &c.D, Low: &c.E}
	c.HL = &RegisterPair{High: &c.H, Low: &c.L}
	c.AF = &RegisterPair{High: &c.A, Low: &c.F}

	return c
}

// Reset returns the CPU to its power-on state.
func (c *CPU) Reset() {
	c.PC, c.SP = 0, 0
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0, 0
	c.mode = ModeNormal
	c.currentTick = 0
}

// registerIndex returns a pointer to the Register addressed by a
// standard 3-bit SM83 register field (B,C,D,E,H,L,-,A). Index 6,
// which addresses (HL) on real hardware, is handled by callers before
// reaching this function.
func (c *CPU) registerIndex(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic("cpu: invalid register index")
}

// registerName returns the mnemonic of a Register, for instruction
// naming.
func (c *CPU) registerName(reg *Register) string {
	switch reg {
	case &c.A:
		return "A"
	case &c.B:
		return "B"
	case &c.C:
		return "C"
	case &c.D:
		return "D"
	case &c.E:
		return "E"
	case &c.H:
		return "H"
	case &c.L:
		return "L"
	}
	return ""
}

// registerNameMap maps the 3-bit register field to its mnemonic,
// including index 6 which addresses (HL) rather than a Register.
var registerNameMap = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// Step executes one instruction (or one halted/stopped tick) and
// services a pending interrupt if one is due. It returns the number
// of T-cycles consumed.
func (c *CPU) Step() uint8 {
	c.currentTick = 0

	reqInt := false
	switch c.mode {
	case ModeNormal:
		c.runInstruction(c.readInstruction())
		reqInt = c.irq.IME && c.irq.HasInterrupts()
	case ModeHalt:
		c.tickCycle()
		reqInt = c.irq.HasInterrupts()
		if reqInt {
			c.mode = ModeNormal
		}
	case ModeHaltDI:
		c.tickCycle()
		if c.irq.HasInterrupts() {
			c.mode = ModeNormal
		}
	case ModeEnableIME:
		c.irq.IME = true
		c.mode = ModeNormal
		c.runInstruction(c.readInstruction())
		reqInt = c.irq.IME && c.irq.HasInterrupts()
	case ModeHaltBug:
		instr := c.readInstruction()
		c.PC--
		c.runInstruction(instr)
		c.mode = ModeNormal
		reqInt = c.irq.IME && c.irq.HasInterrupts()
	}

	if reqInt {
		c.executeInterrupt()
	}

	return c.currentTick
}

// readInstruction reads the opcode at PC and advances PC.
func (c *CPU) readInstruction() uint8 {
	c.tickCycle()
	value := c.mmu.Read(c.PC)
	c.PC++
	return value
}

// readOperand reads the byte at PC and advances PC. Distinct from
// readInstruction to keep opcode fetches and operand fetches
// separately named at call sites.
func (c *CPU) readOperand() uint8 {
	c.tickCycle()
	value := c.mmu.Read(c.PC)
	c.PC++
	return value
}

// readByte reads a byte from memory, ticking the rest of the system
// once for the access.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tickCycle()
	return c.mmu.Read(addr)
}

// writeByte writes a byte to memory, ticking the rest of the system
// once for the access.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.tickCycle()
	c.mmu.Write(addr, val)
}

func (c *CPU) runInstruction(opcode uint8) {
	var instruction Instruction
	if opcode == 0xCB {
		instruction = InstructionSetCB[c.readOperand()]
	} else {
		instruction = InstructionSet[opcode]
	}

	instruction.fn(c)

	if c.Debug && instruction.name == "LD B, B" {
		c.DebugBreakpoint = true
	}
}

func (c *CPU) executeInterrupt() {
	if c.irq.IME {
		c.tickCycle()
		c.tickCycle()

		c.SP--
		c.writeByte(c.SP, uint8(c.PC>>8))
		c.SP--
		c.writeByte(c.SP, uint8(c.PC&0xFF))

		c.PC = c.irq.Vector()
		c.irq.IME = false
	}

	c.mode = ModeNormal
}

// tick advances the timer by one T-cycle.
func (c *CPU) tick() {
	c.timer.Tick(1)
	c.currentTick++
}

// tickCycle advances the CPU and its dependents by one M-cycle (4
// T-cycles).
func (c *CPU) tickCycle() {
	c.tick()
	c.tick()
	c.tick()
	c.tick()
}

// shouldZeroFlag sets FlagZero if value is 0, and clears it otherwise.
func (c *CPU) shouldZeroFlag(value uint8) {
	if value == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}
