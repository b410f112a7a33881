package interrupts

import "testing"

func TestRequestAndHasInterrupts(t *testing.T) {
	s := NewService()
	if s.HasInterrupts() {
		t.Fatalf("fresh Service should have no pending interrupts")
	}

	s.Request(VBlankFlag)
	if s.HasInterrupts() {
		t.Fatalf("requesting with IE=0 should not count as pending")
	}

	s.Enable = VBlankFlag
	if !s.HasInterrupts() {
		t.Fatalf("requested and enabled interrupt should be pending")
	}
}

func TestVector_PriorityOrder(t *testing.T) {
	s := NewService()
	s.Enable = 0x1F
	s.Request(TimerFlag)
	s.Request(VBlankFlag)

	if v := s.Vector(); v != 0x0040 {
		t.Fatalf("Vector() = %#04x, want VBlank vector 0x0040 to win priority", v)
	}
	if v := s.Vector(); v != 0x0050 {
		t.Fatalf("Vector() = %#04x, want Timer vector 0x0050 next", v)
	}
	if v := s.Vector(); v != 0 {
		t.Fatalf("Vector() = %#04x, want 0 once no interrupts remain", v)
	}
}

func TestVector_ClearsFlagBit(t *testing.T) {
	s := NewService()
	s.Enable = JoypadFlag
	s.Request(JoypadFlag)

	s.Vector()

	if s.Flag&JoypadFlag != 0 {
		t.Fatalf("Vector() should clear the serviced flag bit")
	}
}

func TestReadIF_UnusedBitsReadAsSet(t *testing.T) {
	s := NewService()
	s.Flag = 0x01

	if got := s.ReadIF(); got != 0xE1 {
		t.Fatalf("ReadIF() = %#02x, want 0xE1", got)
	}
}

func TestWriteIF_DiscardsUnusedBits(t *testing.T) {
	s := NewService()
	s.WriteIF(0xFF)

	if s.Flag != 0x1F {
		t.Fatalf("Flag = %#02x after WriteIF(0xFF), want 0x1F", s.Flag)
	}
}

func TestReadWriteIE(t *testing.T) {
	s := NewService()
	s.WriteIE(0xAB)

	if got := s.ReadIE(); got != 0xAB {
		t.Fatalf("ReadIE() = %#02x, want 0xAB", got)
	}
}
