package interrupts

import "github.com/thelolagemann/gomeboy/internal/types"

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1).
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2), requested when
	// TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4).
	JoypadFlag = types.Bit4
)

// Service holds the interrupt enable/flag registers and the master
// interrupt enable (IME). Peripherals call Request directly when they
// want to raise an interrupt; there is no hardware register registry.
//
// The IME is set by the DI, EI and RETI instructions and is used to
// gate whether a pending, enabled interrupt is actually serviced.
type Service struct {
	Flag   uint8 // interrupt Flag (IF), only the low 5 bits are meaningful
	Enable uint8 // interrupt Enable (IE)
	IME    bool
}

// NewService returns a new Service with interrupts disabled.
func NewService() *Service {
	return &Service{}
}

// HasInterrupts returns true if there are any interrupts that are
// requested and enabled, irrespective of IME.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag != 0
}

// Request requests the specified interrupt, by setting the
// corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Vector returns the currently serviced interrupt vector, or 0 if no
// interrupt is being serviced. This function will also clear the
// corresponding bit in the Flag register.
func (s *Service) Vector() uint16 {
	if s.Enable&s.Flag == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag ^= flag
			return uint16(0x0040 + i*8)
		}
	}
	return 0
}

// ReadIF returns the IF register. The unused upper 3 bits always read
// back as set.
func (s *Service) ReadIF() uint8 {
	return s.Flag | 0xE0
}

// WriteIF writes the IF register, discarding the unused upper 3 bits.
func (s *Service) WriteIF(value uint8) {
	s.Flag = value & 0x1F
}

// ReadIE returns the IE register.
func (s *Service) ReadIE() uint8 {
	return s.Enable
}

// WriteIE writes the IE register.
func (s *Service) WriteIE(value uint8) {
	s.Enable = value
}
