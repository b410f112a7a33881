package cpu

import (
	"testing"

	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/mmu"
	"github.com/thelolagemann/gomeboy/internal/timer"
)

// newTestCPU wires a CPU to an MMU backed by a flat, bankless, all-zero
// ROM cartridge (no real header needed). Writes to the ROM range are
// discarded, so tests poke their programs into work RAM at 0xC000.
func newTestCPU(t *testing.T) (*CPU, *mmu.MMU) {
	t.Helper()

	rom := make([]byte, 0x8000)
	cart, err := cartridge.LoadROM(rom)
	if err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	irq := interrupts.NewService()
	tm := timer.NewController(irq)
	bus := mmu.NewMMU(cart, irq, tm)
	c := NewCPU(bus, irq, tm)
	return c, bus
}

func TestNewCPU_RegisterPairsAliasOwnFields(t *testing.T) {
	c, _ := newTestCPU(t)

	c.B, c.C = 0x12, 0x34
	if got := c.BC.Uint16(); got != 0x1234 {
		t.Fatalf("BC.Uint16() = %#04x, want 0x1234", got)
	}

	c.BC.SetUint16(0xABCD)
	if c.B != 0xAB || c.C != 0xCD {
		t.Fatalf("BC.SetUint16 did not write through to B/C: B=%#02x C=%#02x", c.B, c.C)
	}
}

func TestStep_NOPAdvancesPCAndConsumesOneCycle(t *testing.T) {
	c, bus := newTestCPU(t)
	bus.Write(0xC000, 0x00) // NOP

	c.PC = 0xC000
	cycles := c.Step()

	if c.PC != 0xC001 {
		t.Fatalf("PC = %#04x, want 0xC001", c.PC)
	}
	if cycles != 4 {
		t.Fatalf("Step() = %d cycles, want 4", cycles)
	}
}

func TestStep_DisallowedOpcodeActsAsNOP(t *testing.T) {
	c, bus := newTestCPU(t)
	bus.Write(0xC000, 0xD3)

	c.PC = 0xC000
	c.Step()

	if c.PC != 0xC001 {
		t.Fatalf("PC = %#04x, want 0xC001", c.PC)
	}
}

func TestDI_EI_IMETiming(t *testing.T) {
	c, bus := newTestCPU(t)
	// EI; NOP; NOP
	bus.Write(0xC000, 0xFB)
	bus.Write(0xC001, 0x00)
	bus.Write(0xC002, 0x00)
	c.PC = 0xC000

	c.Step() // runs EI, enters ModeEnableIME
	if c.irq.IME {
		t.Fatalf("IME set immediately after EI, should be delayed by one instruction")
	}

	c.Step() // IME takes effect, then the first NOP runs
	if !c.irq.IME {
		t.Fatalf("IME not set after the instruction following EI")
	}

	bus.Write(0xC003, 0xF3) // DI
	c.PC = 0xC003
	c.Step()
	if c.irq.IME {
		t.Fatalf("IME still set after DI")
	}
}

func TestHALT_ResumesOnPendingInterrupt(t *testing.T) {
	c, bus := newTestCPU(t)
	bus.Write(0xC000, 0x76) // HALT
	c.PC = 0xC000
	c.irq.IME = true

	c.Step() // executes HALT, enters ModeHalt
	if c.mode != ModeHalt {
		t.Fatalf("mode = %d, want ModeHalt", c.mode)
	}

	c.irq.Enable = interrupts.TimerFlag
	c.irq.Request(interrupts.TimerFlag)

	c.Step() // should notice the pending interrupt and resume
	if c.mode != ModeNormal {
		t.Fatalf("mode = %d, want ModeNormal after pending interrupt", c.mode)
	}
}

func TestExecuteInterrupt_PushesPCAndJumpsToVector(t *testing.T) {
	c, bus := newTestCPU(t)
	c.PC = 0xC100
	c.SP = 0xDFFE
	c.irq.IME = true
	c.irq.Enable = interrupts.VBlankFlag
	c.irq.Request(interrupts.VBlankFlag)

	bus.Write(0xC100, 0x00) // NOP, so reqInt check happens after it runs

	c.Step()

	if c.PC != 0x0040 {
		t.Fatalf("PC = %#04x, want vblank vector 0x0040", c.PC)
	}
	if c.irq.IME {
		t.Fatalf("IME should be cleared once the interrupt is serviced")
	}
	if c.SP != 0xDFFC {
		t.Fatalf("SP = %#04x, want 0xDFFC after pushing return address", c.SP)
	}
	low := bus.Read(0xDFFC)
	high := bus.Read(0xDFFD)
	if uint16(high)<<8|uint16(low) != 0xC101 {
		t.Fatalf("pushed return address = %#04x, want 0xC101", uint16(high)<<8|uint16(low))
	}
}

func TestArithmetic_INCSetsHalfCarryAndZero(t *testing.T) {
	c, _ := newTestCPU(t)

	c.B = 0x0F
	c.B = c.increment(c.B)
	if c.B != 0x10 || !c.isFlagSet(FlagHalfCarry) {
		t.Fatalf("INC 0x0F = %#02x flags=%#02x, want 0x10 with half carry set", c.B, c.F)
	}

	c.B = 0xFF
	c.B = c.increment(c.B)
	if c.B != 0x00 || !c.isFlagSet(FlagZero) {
		t.Fatalf("INC 0xFF = %#02x flags=%#02x, want 0x00 with zero set", c.B, c.F)
	}
}

func TestArithmetic_ADDSetsCarryOnOverflow(t *testing.T) {
	c, _ := newTestCPU(t)

	c.A = 0xFF
	result := c.add(c.A, 0x01, false)
	if result != 0x00 {
		t.Fatalf("0xFF + 0x01 = %#02x, want 0x00", result)
	}
	if !c.isFlagsSet(FlagZero, FlagCarry, FlagHalfCarry) {
		t.Fatalf("flags = %#02x, want zero, carry and half carry all set", c.F)
	}
	if c.isFlagSet(FlagSubtract) {
		t.Fatalf("subtract flag should be reset after ADD")
	}
}

func TestArithmetic_SUBBorrowSetsCarry(t *testing.T) {
	c, _ := newTestCPU(t)

	result := c.sub(0x00, 0x01, false)
	if result != 0xFF {
		t.Fatalf("0x00 - 0x01 = %#02x, want 0xFF", result)
	}
	if !c.isFlagsSet(FlagSubtract, FlagCarry, FlagHalfCarry) {
		t.Fatalf("flags = %#02x, want subtract, carry and half carry set", c.F)
	}
}

func TestLogic_ANDAlwaysSetsHalfCarryAndClearsCarry(t *testing.T) {
	c, _ := newTestCPU(t)
	c.setFlag(FlagCarry)

	result := c.and(0xF0, 0x0F)
	if result != 0x00 || !c.isFlagSet(FlagZero) || !c.isFlagSet(FlagHalfCarry) || c.isFlagSet(FlagCarry) {
		t.Fatalf("AND flags = %#02x result=%#02x, want zero+halfcarry set, carry clear", c.F, result)
	}
}

func TestLogic_CompareDoesNotModifyA(t *testing.T) {
	c, _ := newTestCPU(t)
	c.A = 0x10
	c.compare(0x10)

	if c.A != 0x10 {
		t.Fatalf("CP modified A: %#02x", c.A)
	}
	if !c.isFlagSet(FlagZero) || !c.isFlagSet(FlagSubtract) {
		t.Fatalf("flags = %#02x, want zero and subtract set for equal operands", c.F)
	}
}

func TestLoad_RegisterToRegisterByOpcode(t *testing.T) {
	c, bus := newTestCPU(t)
	c.B = 0x00
	c.C = 0x42
	bus.Write(0xC000, 0x41) // LD B, C
	c.PC = 0xC000

	c.Step()

	if c.B != 0x42 {
		t.Fatalf("B = %#02x after LD B, C, want 0x42", c.B)
	}
}

func TestLoad_LDHLIncrementsHL(t *testing.T) {
	c, bus := newTestCPU(t)
	c.A = 0x99
	c.HL.SetUint16(0xC000)
	bus.Write(0xC000, 0x22) // LD (HL+), A
	c.PC = 0xC000

	c.Step()

	if bus.Read(0xC000) != 0x99 {
		t.Fatalf("memory at 0xC000 = %#02x, want 0x99", bus.Read(0xC000))
	}
	if c.HL.Uint16() != 0xC001 {
		t.Fatalf("HL = %#04x after LD (HL+), A, want 0xC001", c.HL.Uint16())
	}
}

func TestStack_PushPop(t *testing.T) {
	c, _ := newTestCPU(t)
	c.SP = 0xDFFE
	c.B, c.C = 0xBE, 0xEF

	c.pushNN(c.B, c.C)
	if c.SP != 0xDFFC {
		t.Fatalf("SP = %#04x after push, want 0xDFFC", c.SP)
	}

	c.D, c.E = 0, 0
	c.popNN(&c.D, &c.E)
	if c.D != 0xBE || c.E != 0xEF {
		t.Fatalf("popped D,E = %#02x,%#02x, want 0xBE,0xEF", c.D, c.E)
	}
	if c.SP != 0xDFFE {
		t.Fatalf("SP = %#04x after pop, want back to 0xDFFE", c.SP)
	}
}

func TestJump_JRNegativeOffset(t *testing.T) {
	c, bus := newTestCPU(t)
	bus.Write(0xC010, 0x18) // JR n
	bus.Write(0xC011, 0xFE) // -2
	c.PC = 0xC010

	c.Step()

	if c.PC != 0xC010 {
		t.Fatalf("PC = %#04x after JR -2 from 0xC012, want 0xC010", c.PC)
	}
}

func TestJump_CALLAndRETRoundTrip(t *testing.T) {
	c, bus := newTestCPU(t)
	c.SP = 0xDFFE
	bus.Write(0xC000, 0xCD) // CALL nn
	bus.Write(0xC001, 0x00)
	bus.Write(0xC002, 0xC1)
	bus.Write(0xC100, 0xC9) // RET
	c.PC = 0xC000

	c.Step() // CALL
	if c.PC != 0xC100 {
		t.Fatalf("PC = %#04x after CALL, want 0xC100", c.PC)
	}

	c.Step() // RET
	if c.PC != 0xC003 {
		t.Fatalf("PC = %#04x after RET, want 0xC003 (return address)", c.PC)
	}
	if c.SP != 0xDFFE {
		t.Fatalf("SP = %#04x after CALL/RET round trip, want back to 0xDFFE", c.SP)
	}
}

func TestRotate_RLCSetsCarryFromTopBit(t *testing.T) {
	c, _ := newTestCPU(t)
	c.A = 0x80

	c.A = c.rotateLeftCarry(c.A)
	if c.A != 0x01 || !c.isFlagSet(FlagCarry) {
		t.Fatalf("RLC 0x80 = %#02x flags=%#02x, want 0x01 with carry set", c.A, c.F)
	}
}

func TestShift_SWAPExchangesNibbles(t *testing.T) {
	c, _ := newTestCPU(t)

	result := c.swap(0xAB)
	if result != 0xBA {
		t.Fatalf("SWAP 0xAB = %#02x, want 0xBA", result)
	}
}

func TestBit_BITSetsZeroWhenClear(t *testing.T) {
	c, _ := newTestCPU(t)
	c.setFlag(FlagSubtract)

	c.testBit(0x00, 3)
	if !c.isFlagSet(FlagZero) {
		t.Fatalf("BIT 3 of 0x00 should set zero flag")
	}
	if c.isFlagSet(FlagSubtract) {
		t.Fatalf("BIT should clear the subtract flag")
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Fatalf("BIT should set the half-carry flag")
	}
}

func TestInstructionSetCB_BITOpcodeDispatch(t *testing.T) {
	c, bus := newTestCPU(t)
	c.B = 0x00
	bus.Write(0xC000, 0xCB)
	bus.Write(0xC001, 0x40) // BIT 0, B
	c.PC = 0xC000

	c.Step()

	if !c.isFlagSet(FlagZero) {
		t.Fatalf("BIT 0, B with B=0 should set the zero flag")
	}
}

func TestInstructionSetCB_SETOpcodeDispatch(t *testing.T) {
	c, bus := newTestCPU(t)
	c.B = 0x00
	bus.Write(0xC000, 0xCB)
	bus.Write(0xC001, 0xC0) // SET 0, B
	c.PC = 0xC000

	c.Step()

	if c.B != 0x01 {
		t.Fatalf("B = %#02x after SET 0, B, want 0x01", c.B)
	}
}

func TestReset_ReturnsPowerOnState(t *testing.T) {
	c, _ := newTestCPU(t)
	c.PC, c.SP = 0x1234, 0x5678
	c.A = 0xFF
	c.irq.IME = true

	c.Reset()

	if c.PC != 0 || c.SP != 0 || c.A != 0 {
		t.Fatalf("Reset left PC=%#04x SP=%#04x A=%#02x, want all zero", c.PC, c.SP, c.A)
	}
	if c.mode != ModeNormal {
		t.Fatalf("Reset left mode=%d, want ModeNormal", c.mode)
	}
}
