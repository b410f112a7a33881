package cpu

import "fmt"

// andRegister performs a bitwise AND operation on the given Register and the
// A Register.
//
//	AND n
//	n = A, B, C, D, E, H, L, (HL)
//
// IF affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) andRegister(reg *Register) {
	c.A = c.and(c.A, *reg)
}

// and is a helper function for that performs a bitwise AND operation on the
// two given values, and sets the flags accordingly.
func (c *CPU) and(a, b uint8) uint8 {
	c.setFlag(FlagHalfCarry)
	c.clearFlag(FlagCarry)
	c.clearFlag(FlagSubtract)
	computed := a & b
	if computed == 0x00 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
	return computed
}

// orRegister performs a bitwise OR operation on the given Register and the A
// Register.
//
//	OR n
//	n = A, B, C, D, E, H, L, (HL)
//
// IF affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) orRegister(reg *Register) {
	c.A = c.or(c.A, *reg)
}

// or is a helper function for that performs a bitwise OR operation on the two
// given values, and sets the flags accordingly.
func (c *CPU) or(a, b uint8) uint8 {
	c.clearFlag(FlagHalfCarry)
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagCarry)
	computed := a | b
	if computed == 0x00 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
	return computed
}

// xorRegister performs a bitwise XOR operation on the given Register and the A
// Register.
//
//	XOR n
//	n = A, B, C, D, E, H, L, (HL)
//
// IF affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xorRegister(reg *Register) {
	c.A = c.xor(c.A, *reg)
}

// xor is a helper function for that performs a bitwise XOR operation on the two
// given values, and sets the flags accordingly.
func (c *CPU) xor(a, b uint8) uint8 {
	c.clearFlag(FlagHalfCarry)
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagCarry)
	computed := a ^ b
	if computed == 0x00 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
	return computed
}

// compareRegister compares the given Register with the A Register.
//
//	CP n
//	n = A, B, C, D, E, H, L, (HL)
//
// IF affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) compareRegister(reg *Register) {
	c.compare(*reg)
}

// compare is a helper function for that compares the two given values, and sets
// the flags accordingly.
func (c *CPU) compare(b uint8) {
	// c.mmu.Bus.Log().Debugf("compare: %d %d", a, b)
	c.setFlag(FlagSubtract)
	if c.A&0xF < b&0xF {
		c.setFlag(FlagHalfCarry)
	} else {
		c.clearFlag(FlagHalfCarry)
	}
	if c.A < b {
		c.setFlag(FlagCarry)
	} else {
		c.clearFlag(FlagCarry)
	}
	c.shouldZeroFlag(c.A - b)
}

func init() {
	// AND r / XOR r / OR r / CP r (0xA0-0xBF).
	for j := uint8(0); j < 8; j++ {
		reg := j
		read := func(c *CPU) uint8 { return *c.registerIndex(reg) }
		name := registerNameMap[reg]
		if reg == 6 {
			read = func(c *CPU) uint8 { return c.readByte(c.HL.Uint16()) }
		}
		DefineInstruction(0xA0+reg, fmt.Sprintf("AND %s", name), func(c *CPU) { c.A = c.and(c.A, read(c)) })
		DefineInstruction(0xA8+reg, fmt.Sprintf("XOR %s", name), func(c *CPU) { c.A = c.xor(c.A, read(c)) })
		DefineInstruction(0xB0+reg, fmt.Sprintf("OR %s", name), func(c *CPU) { c.A = c.or(c.A, read(c)) })
		DefineInstruction(0xB8+reg, fmt.Sprintf("CP %s", name), func(c *CPU) { c.compare(read(c)) })
	}

	DefineInstruction(0xE6, "AND d8", func(c *CPU) { c.A = c.and(c.A, c.readOperand()) })
	DefineInstruction(0xEE, "XOR d8", func(c *CPU) { c.A = c.xor(c.A, c.readOperand()) })
	DefineInstruction(0xF6, "OR d8", func(c *CPU) { c.A = c.or(c.A, c.readOperand()) })
	DefineInstruction(0xFE, "CP d8", func(c *CPU) { c.compare(c.readOperand()) })
}
