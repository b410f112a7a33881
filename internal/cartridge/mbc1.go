package cartridge

// mbc1 implements the MBC1 cartridge type: up to 125 switchable 16KiB
// ROM banks and up to 4 switchable 8KiB RAM banks, selected by a
// banking-mode bit that decides whether the upper bank-select bits
// affect ROM or RAM.
type mbc1 struct {
	rom     []byte
	romBank uint32

	ram        []byte
	ramBank    uint32
	ramEnabled bool

	romBanking bool

	cartridgeType Type
}

func newMBC1(rom []byte, header Header) *mbc1 {
	return &mbc1{
		rom:           rom,
		romBank:       1,
		ram:           make([]byte, header.RAMSize),
		romBanking:    true,
		cartridgeType: header.CartridgeType,
	}
}

func (m *mbc1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.romByte(uint32(address-0x4000) + m.romBank*0x4000)
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			return m.ram[(uint32(address-0xA000)+m.ramBank*0x2000)%uint32(len(m.ram))]
		}
		return 0xFF
	}
	return 0xFF
}

func (m *mbc1) romByte(offset uint32) uint8 {
	if int(offset) >= len(m.rom) {
		return 0xFF
	}
	return m.rom[offset]
}

func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		switch m.cartridgeType {
		case MBC1RAM, MBC1RAMBATT:
			m.ramEnabled = value&0x0F == 0x0A
		}
	case address < 0x4000:
		m.romBank = (m.romBank & 0x60) | uint32(value&0x1F)
		m.normalizeROMBank()
	case address < 0x6000:
		if m.romBanking {
			m.romBank = (m.romBank & 0x1F) | uint32(value&0x03)<<5
			m.normalizeROMBank()
		} else {
			m.ramBank = uint32(value) & 0x03
			if len(m.ram) > 0 {
				m.ramBank %= uint32(len(m.ram)) / 0x2000
			} else {
				m.ramBank = 0
			}
		}
	case address < 0x8000:
		m.romBanking = value&0x1 == 0x00
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[(uint32(address-0xA000)+m.ramBank*0x2000)%uint32(len(m.ram))] = value
		}
	}
}

// normalizeROMBank wraps the selected bank into range and applies the
// MBC1 quirk where selecting bank 0x00, 0x20, 0x40 or 0x60 maps the
// next bank up (0x01, 0x21, 0x41 or 0x61) instead.
func (m *mbc1) normalizeROMBank() {
	if m.romBank*0x4000 >= uint32(len(m.rom)) {
		m.romBank %= uint32(len(m.rom)) / 0x4000
	}
	if m.romBank == 0x00 || m.romBank == 0x20 || m.romBank == 0x40 || m.romBank == 0x60 {
		m.romBank++
	}
}

func (m *mbc1) RAM() []byte { return m.ram }
func (m *mbc1) LoadRAM(data []byte) {
	copy(m.ram, data)
}
