package cartridge

// rtc holds the MBC3 real-time-clock registers. Unlike real hardware,
// the clock does not advance against wall-clock time: it only moves
// when software explicitly writes to its registers. This keeps core
// behavior reproducible across runs instead of depending on the host
// clock.
type rtc struct {
	seconds, minutes, hours   uint8
	daysLower, daysHigherCtrl uint8

	latchedSeconds, latchedMinutes, latchedHours uint8
	latchedDaysLower, latchedDaysHigherCtrl      uint8

	register       uint8
	latchFlagValue uint8
}

func (r *rtc) latch() {
	r.latchedSeconds = r.seconds
	r.latchedMinutes = r.minutes
	r.latchedHours = r.hours
	r.latchedDaysLower = r.daysLower
	r.latchedDaysHigherCtrl = r.daysHigherCtrl
}

// mbc3 implements the MBC3 cartridge type: up to 128 switchable 16KiB
// ROM banks, up to 4 switchable 8KiB RAM banks, and an optional RTC
// exposed through the same bank-select register.
type mbc3 struct {
	rom     []byte
	romBank uint32

	ram        []byte
	ramBank    int32
	ramEnabled bool

	hasRTC     bool
	rtc        *rtc
	rtcEnabled bool

	cartridgeType Type
}

func newMBC3(rom []byte, header Header) *mbc3 {
	return &mbc3{
		rom:           rom,
		romBank:       1,
		ram:           make([]byte, header.RAMSize),
		hasRTC:        header.CartridgeType == MBC3TIMERBATT || header.CartridgeType == MBC3TIMERRAMBATT,
		rtc:           &rtc{},
		cartridgeType: header.CartridgeType,
	}
}

func (m *mbc3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		offset := uint32(address-0x4000) + m.romBank*0x4000
		if int(offset) >= len(m.rom) {
			return 0xFF
		}
		return m.rom[offset]
	case address >= 0xA000 && address < 0xC000:
		if m.ramBank >= 0 {
			if m.ramEnabled && len(m.ram) > 0 {
				return m.ram[(uint32(m.ramBank)*0x2000+uint32(address&0x1FFF))%uint32(len(m.ram))]
			}
			return 0xFF
		}
		if m.hasRTC && m.rtcEnabled {
			switch m.rtc.register {
			case 0x8:
				return m.rtc.latchedSeconds
			case 0x9:
				return m.rtc.latchedMinutes
			case 0xA:
				return m.rtc.latchedHours
			case 0xB:
				return m.rtc.latchedDaysLower
			case 0xC:
				return m.rtc.latchedDaysHigherCtrl
			}
		}
		return 0xFF
	}
	return 0xFF
}

func (m *mbc3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		switch m.cartridgeType {
		case MBC3RAM, MBC3RAMBATT:
			m.ramEnabled = value&0xF == 0xA
		case MBC3TIMERBATT:
			m.rtcEnabled = value&0xF == 0xA
		case MBC3TIMERRAMBATT:
			m.ramEnabled = value&0xF == 0xA
			m.rtcEnabled = value&0xF == 0xA
		}
	case address < 0x4000:
		m.romBank = uint32(value) & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
		if m.romBank*0x4000 >= uint32(len(m.rom)) {
			m.romBank %= uint32(len(m.rom)) / 0x4000
		}
	case address < 0x6000:
		switch {
		case value >= 0x08 && value <= 0x0C:
			if m.hasRTC && m.rtcEnabled {
				m.rtc.register = value
				m.ramBank = -1
			}
		case value <= 0x03:
			m.ramBank = int32(value & 0x03)
			if len(m.ram) > 0 {
				m.ramBank %= int32(len(m.ram)) / 0x2000
			} else {
				m.ramBank = 0
			}
		}
	case address < 0x8000:
		if m.hasRTC {
			if m.rtc.latchFlagValue == 0x00 && value == 0x01 {
				m.rtc.latch()
			}
			m.rtc.latchFlagValue = value
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramBank >= 0 {
			if m.ramEnabled && len(m.ram) > 0 {
				m.ram[(uint32(m.ramBank)*0x2000+uint32(address&0x1FFF))%uint32(len(m.ram))] = value
			}
		} else if m.hasRTC && m.rtcEnabled {
			switch m.rtc.register {
			case 0x8:
				m.rtc.seconds = value & 0x3F
			case 0x9:
				m.rtc.minutes = value & 0x3F
			case 0xA:
				m.rtc.hours = value & 0x1F
			case 0xB:
				m.rtc.daysLower = value
			case 0xC:
				m.rtc.daysHigherCtrl = value & 0xC1
			}
		}
	}
}

func (m *mbc3) RAM() []byte { return m.ram }
func (m *mbc3) LoadRAM(data []byte) {
	copy(m.ram, data)
}
