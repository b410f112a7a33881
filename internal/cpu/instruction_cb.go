package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy/pkg/bits"
)

var InstructionSetCB [256]Instruction

// generateRotateInstructions generates the CB-prefixed rotate
// instructions (RLC, RRC, RL, RR) for every register and (HL).
func generateRotateInstructions() {
	for j := uint8(0); j < 8; j++ {
		reg := j
		if reg == 6 {
			DefineInstructionCB(0x06, "RLC (HL)", func(c *CPU) {
				c.writeByte(c.HL.Uint16(), c.rotateLeftCarry(c.readByte(c.HL.Uint16())))
			})
			DefineInstructionCB(0x0E, "RRC (HL)", func(c *CPU) {
				c.writeByte(c.HL.Uint16(), c.rotateRightCarry(c.readByte(c.HL.Uint16())))
			})
			DefineInstructionCB(0x16, "RL (HL)", func(c *CPU) {
				c.writeByte(c.HL.Uint16(), c.rotateLeftThroughCarry(c.readByte(c.HL.Uint16())))
			})
			DefineInstructionCB(0x1E, "RR (HL)", func(c *CPU) {
				c.writeByte(c.HL.Uint16(), c.rotateRightThroughCarry(c.readByte(c.HL.Uint16())))
			})
			continue
		}

		name := registerNameMap[reg]
		DefineInstructionCB(0x00+reg, fmt.Sprintf("RLC %s", name), func(c *CPU) {
			r := c.registerIndex(reg)
			*r = c.rotateLeftCarry(*r)
		})
		DefineInstructionCB(0x08+reg, fmt.Sprintf("RRC %s", name), func(c *CPU) {
			r := c.registerIndex(reg)
			*r = c.rotateRightCarry(*r)
		})
		DefineInstructionCB(0x10+reg, fmt.Sprintf("RL %s", name), func(c *CPU) {
			r := c.registerIndex(reg)
			*r = c.rotateLeftThroughCarry(*r)
		})
		DefineInstructionCB(0x18+reg, fmt.Sprintf("RR %s", name), func(c *CPU) {
			r := c.registerIndex(reg)
			*r = c.rotateRightThroughCarry(*r)
		})
	}
}

// generateShiftInstructions generates the CB-prefixed shift
// instructions (SLA, SRA, SWAP, SRL) for every register and (HL).
func generateShiftInstructions() {
	for j := uint8(0); j < 8; j++ {
		reg := j
		if reg == 6 {
			DefineInstructionCB(0x26, "SLA (HL)", func(c *CPU) {
				c.writeByte(c.HL.Uint16(), c.shiftLeftArithmetic(c.readByte(c.HL.Uint16())))
			})
			DefineInstructionCB(0x2E, "SRA (HL)", func(c *CPU) {
				c.writeByte(c.HL.Uint16(), c.shiftRightArithmetic(c.readByte(c.HL.Uint16())))
			})
			DefineInstructionCB(0x36, "SWAP (HL)", func(c *CPU) {
				c.writeByte(c.HL.Uint16(), c.swap(c.readByte(c.HL.Uint16())))
			})
			DefineInstructionCB(0x3E, "SRL (HL)", func(c *CPU) {
				c.writeByte(c.HL.Uint16(), c.shiftRightLogical(c.readByte(c.HL.Uint16())))
			})
			continue
		}

		name := registerNameMap[reg]
		DefineInstructionCB(0x20+reg, fmt.Sprintf("SLA %s", name), func(c *CPU) {
			r := c.registerIndex(reg)
			*r = c.shiftLeftArithmetic(*r)
		})
		DefineInstructionCB(0x28+reg, fmt.Sprintf("SRA %s", name), func(c *CPU) {
			r := c.registerIndex(reg)
			*r = c.shiftRightArithmetic(*r)
		})
		DefineInstructionCB(0x30+reg, fmt.Sprintf("SWAP %s", name), func(c *CPU) {
			r := c.registerIndex(reg)
			*r = c.swap(*r)
		})
		DefineInstructionCB(0x38+reg, fmt.Sprintf("SRL %s", name), func(c *CPU) {
			r := c.registerIndex(reg)
			*r = c.shiftRightLogical(*r)
		})
	}
}

// generateBitInstructions generates the CB-prefixed BIT, RES and SET
// instructions for every bit position and every register/(HL).
//
//	0x40 - BIT 0, B
//	0x41 - BIT 0, C
//	...
//	0xFF - SET 7, A
func generateBitInstructions() {
	for bit := uint8(0); bit <= 7; bit++ {
		currentBit := bit
		for reg := uint8(0); reg <= 7; reg++ {
			index := reg
			if index == 6 {
				DefineInstructionCB(0x40+currentBit*8+index, fmt.Sprintf("BIT %d, (HL)", currentBit), func(c *CPU) {
					c.testBit(c.readByte(c.HL.Uint16()), currentBit)
				})
				DefineInstructionCB(0x80+currentBit*8+index, fmt.Sprintf("RES %d, (HL)", currentBit), func(c *CPU) {
					c.writeByte(c.HL.Uint16(), bits.Reset(c.readByte(c.HL.Uint16()), currentBit))
				})
				DefineInstructionCB(0xC0+currentBit*8+index, fmt.Sprintf("SET %d, (HL)", currentBit), func(c *CPU) {
					c.writeByte(c.HL.Uint16(), bits.Set(c.readByte(c.HL.Uint16()), currentBit))
				})
				continue
			}

			name := registerNameMap[index]
			DefineInstructionCB(0x40+currentBit*8+index, fmt.Sprintf("BIT %d, %s", currentBit, name), func(c *CPU) {
				c.testBit(*c.registerIndex(index), currentBit)
			})
			DefineInstructionCB(0x80+currentBit*8+index, fmt.Sprintf("RES %d, %s", currentBit, name), func(c *CPU) {
				r := c.registerIndex(index)
				*r = bits.Reset(*r, currentBit)
			})
			DefineInstructionCB(0xC0+currentBit*8+index, fmt.Sprintf("SET %d, %s", currentBit, name), func(c *CPU) {
				r := c.registerIndex(index)
				*r = bits.Set(*r, currentBit)
			})
		}
	}
}

// swap exchanges the upper and lower nibbles of a byte.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(value uint8) uint8 {
	computed := value<<4&0xF0 | value>>4
	c.setFlags(computed == 0, false, false, false)
	return computed
}

// testBit tests the bit at the given position in the given value.
//
//	BIT n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit n of value is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, position uint8) {
	c.shouldZeroFlag((value >> position) & 0x01)
	c.clearFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}
