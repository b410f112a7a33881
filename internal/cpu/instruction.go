package cpu

type Instruction struct {
	name string
	fn   func(*CPU)
}

// DefineInstruction defines an instruction in the base-page
// InstructionSet, at the given opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// DefineInstructionCB defines an instruction in the CB-prefixed
// InstructionSetCB, at the given opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	// STOP's second byte is a hardware padding byte with no behavioral
	// effect in this core; PC skips over it without a memory access, so
	// STOP acts as a 2-byte NOP taking 4 T-cycles.
	DefineInstruction(0x10, "STOP", func(c *CPU) { c.PC++ })
	DefineInstruction(0x27, "DAA", func(cpu *CPU) {
		if !cpu.isFlagSet(FlagSubtract) {
			if cpu.isFlagSet(FlagCarry) || cpu.A > 0x99 {
				cpu.A += 0x60
				cpu.setFlag(FlagCarry)
			}
			if cpu.isFlagSet(FlagHalfCarry) || cpu.A&0xF > 0x9 {
				cpu.A += 0x06
				cpu.clearFlag(FlagHalfCarry)
			}
		} else if cpu.isFlagSet(FlagCarry) && cpu.isFlagSet(FlagHalfCarry) {
			cpu.A += 0x9a
			cpu.clearFlag(FlagHalfCarry)
		} else if cpu.isFlagSet(FlagCarry) {
			cpu.A += 0xa0
		} else if cpu.isFlagSet(FlagHalfCarry) {
			cpu.A += 0xfa
			cpu.clearFlag(FlagHalfCarry)
		}
		cpu.shouldZeroFlag(cpu.A)
	})
	DefineInstruction(0x2F, "CPL", func(cpu *CPU) {
		cpu.A = 0xFF ^ cpu.A
		cpu.setFlag(FlagSubtract)
		cpu.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(cpu *CPU) {
		cpu.setFlag(FlagCarry)
		cpu.clearFlag(FlagSubtract)
		cpu.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x3F, "CCF", func(cpu *CPU) {
		if cpu.isFlagSet(FlagCarry) {
			cpu.clearFlag(FlagCarry)
		} else {
			cpu.setFlag(FlagCarry)
		}
		cpu.clearFlag(FlagSubtract)
		cpu.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		switch {
		case c.irq.IME:
			c.mode = ModeHalt
		case c.irq.HasInterrupts():
			c.mode = ModeHaltBug
		default:
			c.mode = ModeHaltDI
		}
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) { c.irq.IME = false })
	DefineInstruction(0xFB, "EI", func(c *CPU) { c.mode = ModeEnableIME })

	// These opcodes have no defined behavior on real hardware. Rather
	// than crash the core on encountering one in a ROM, they behave
	// as a single-byte NOP.
	for _, opcode := range disallowedOpcodes {
		DefineInstruction(opcode, "disallowed", func(c *CPU) {})
	}
}

var disallowedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

var InstructionSet [256]Instruction
