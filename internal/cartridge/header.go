package cartridge

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the cartridge hardware type byte at 0x0147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1Type          Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2Type          Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3Type          Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5Type          Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
)

var ramSizeMap = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// ErrUnsupportedCartridge is returned by LoadROM for a cartridge
// type this core has no MBC implementation for.
var ErrUnsupportedCartridge = errors.New("cartridge: unsupported MBC type")

// ErrROMTooSmall is returned when a ROM is too short to contain a
// header, or shorter than the ROM size its header declares.
var ErrROMTooSmall = errors.New("cartridge: rom shorter than header declares")

// ErrROMTooLarge is returned when a ROM exceeds the maximum size this
// core supports.
var ErrROMTooLarge = errors.New("cartridge: rom exceeds maximum supported size")

// Header describes the cartridge header at 0x0100-0x014F.
type Header struct {
	Title           string
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16
}

// parseHeader parses the 0x50-byte header region starting at 0x0100.
func parseHeader(header []byte) (Header, error) {
	if len(header) != 0x50 {
		return Header{}, ErrROMTooSmall
	}

	h := Header{
		Title:           strings.TrimRight(string(header[0x34:0x44]), "\x00"),
		CartridgeType:   Type(header[0x47]),
		ROMSize:         (32 * 1024) * (1 << header[0x48]),
		RAMSize:         ramSizeMap[header[0x49]],
		OldLicenseeCode: header[0x4B],
		MaskROMVersion:  header[0x4C],
		HeaderChecksum:  header[0x4D],
		GlobalChecksum:  uint16(header[0x4E]) | uint16(header[0x4F])<<8,
	}
	return h, nil
}

func (h Header) String() string {
	return fmt.Sprintf("%s (type %#02x) | ROM: %dkB | RAM: %dkB", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
