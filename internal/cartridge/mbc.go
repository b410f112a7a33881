// Package cartridge parses the cartridge header and implements the
// Memory Bank Controller variants needed to read and write a
// cartridge's ROM and external RAM.
package cartridge

import "fmt"

// MBC is a memory bank controller: the logic that maps CPU addresses
// in 0x0000-0x7FFF (ROM) and 0xA000-0xBFFF (external RAM) onto a
// cartridge's actual ROM/RAM storage, and that reacts to writes into
// those same ranges by switching banks or enabling RAM.
type MBC interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	// RAM returns the cartridge's battery-backed external RAM, for
	// save-data persistence. Returns a nil or empty slice if the
	// cartridge has none.
	RAM() []byte
	// LoadRAM restores previously saved external RAM.
	LoadRAM(data []byte)
}

// Cartridge wraps a parsed header and the MBC it selects.
type Cartridge struct {
	Header Header
	mbc    MBC
}

// LoadROM parses rom's header and constructs the MBC it specifies.
func LoadROM(rom []byte) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, ErrROMTooSmall
	}
	if len(rom) > 8*1024*1024 {
		return nil, ErrROMTooLarge
	}

	header, err := parseHeader(rom[0x100:0x150])
	if err != nil {
		return nil, err
	}
	if uint(len(rom)) < header.ROMSize {
		return nil, ErrROMTooSmall
	}

	var mbc MBC
	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		mbc = newNoneMBC(rom)
	case MBC1Type, MBC1RAM, MBC1RAMBATT:
		mbc = newMBC1(rom, header)
	case MBC3Type, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		mbc = newMBC3(rom, header)
	default:
		return nil, fmt.Errorf("cartridge type %#02x: %w", header.CartridgeType, ErrUnsupportedCartridge)
	}

	return &Cartridge{Header: header, mbc: mbc}, nil
}

func (c *Cartridge) Read(address uint16) uint8         { return c.mbc.Read(address) }
func (c *Cartridge) Write(address uint16, value uint8) { c.mbc.Write(address, value) }
func (c *Cartridge) RAM() []byte                       { return c.mbc.RAM() }
func (c *Cartridge) LoadRAM(data []byte)               { c.mbc.LoadRAM(data) }
func (c *Cartridge) Title() string                     { return c.Header.Title }
