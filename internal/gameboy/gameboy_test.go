package gameboy

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

func testROM(size int, cartType byte) []byte {
	rom := make([]byte, size)
	copy(rom[0x134:0x144], "TESTROM")
	rom[0x147] = cartType
	rom[0x100+0x00] = 0x00 // entry point: NOP, where SkipBootROM starts execution
	return rom
}

func TestNew_LoadsCartridgeAndNullLogger(t *testing.T) {
	g, err := New(testROM(0x8000, 0x00))
	require.NoError(t, err)
	require.NotNil(t, g.CPU)
	require.NotNil(t, g.MMU)
	require.Equal(t, "TESTROM", g.MMU.Cartridge.Title())
	require.Equal(t, log.NewNullLogger(), g.Logger)
}

func TestNew_RejectsUnsupportedCartridgeType(t *testing.T) {
	_, err := New(testROM(0x8000, 0x05)) // MBC2
	require.Error(t, err)
}

func TestNew_RejectsTooSmallROM(t *testing.T) {
	_, err := New(make([]byte, 0x10))
	require.Error(t, err)
}

func TestSkipBootROM_SeedsDocumentedPostBootState(t *testing.T) {
	g, err := New(testROM(0x8000, 0x00))
	require.NoError(t, err)

	g.SkipBootROM()

	require.Equal(t, uint16(0x0100), g.CPU.PC)
	require.Equal(t, uint16(0xFFFE), g.CPU.SP)
	require.Equal(t, uint8(0x01), g.CPU.A)
	require.Equal(t, uint8(0xB0), g.CPU.F)
	require.Equal(t, uint16(0x0013), g.CPU.BC.Uint16())
	require.Equal(t, uint16(0x00D8), g.CPU.DE.Uint16())
	require.Equal(t, uint16(0x014D), g.CPU.HL.Uint16())
}

func TestWithBootState_PreservesRegisterPairAliasing(t *testing.T) {
	g, err := New(testROM(0x8000, 0x00), WithBootState(BootState{
		PC: 0x1000, SP: 0xCFFF,
		A: 0x11, F: 0x00,
		B: 0x22, C: 0x33,
		D: 0x44, E: 0x55,
		H: 0x66, L: 0x77,
	}))
	require.NoError(t, err)

	require.Equal(t, uint16(0x2233), g.CPU.BC.Uint16())
	g.CPU.BC.SetUint16(0xAABB)
	require.Equal(t, uint8(0xAA), g.CPU.B)
	require.Equal(t, uint8(0xBB), g.CPU.C)
}

func TestFrame_ConsumesExactlyOneFramesWorthOfCycles(t *testing.T) {
	g, err := New(testROM(0x8000, 0x00))
	require.NoError(t, err)
	g.SkipBootROM()
	// zeroed ROM reads back as NOP (0x00), so Frame() free-runs 4-cycle
	// NOPs, which divide a frame evenly.

	consumed := g.Frame()
	require.Equal(t, uint(CyclesPerFrame), consumed)
}

func TestSetInput_PressesAndReleasesMatchingBitmask(t *testing.T) {
	g, err := New(testROM(0x8000, 0x00))
	require.NoError(t, err)

	g.Write(0xFF00, 0x10) // select the action nibble

	g.SetInput(0x01) // ButtonA pressed
	pressed := g.Read(0xFF00)
	require.Equal(t, uint8(0), pressed&0x01, "ButtonA's bit should read low while pressed")

	g.SetInput(0x00) // everything released
	released := g.Read(0xFF00)
	require.Equal(t, uint8(0x01), released&0x01, "ButtonA's bit should read high once released")
}

func TestROMDigest_StableAcrossCalls(t *testing.T) {
	rom := testROM(0x8000, 0x00)
	g, err := New(rom)
	require.NoError(t, err)

	require.Equal(t, g.ROMDigest(), g.ROMDigest())
}

func TestLoadROM_ResetsCPUState(t *testing.T) {
	g, err := New(testROM(0x8000, 0x00))
	require.NoError(t, err)
	g.SkipBootROM()
	require.Equal(t, uint16(0x0100), g.CPU.PC)

	require.NoError(t, g.LoadROM(testROM(0x8000, 0x00)))
	require.Equal(t, uint16(0), g.CPU.PC)
}

func TestRAM_ReflectsWrites(t *testing.T) {
	g, err := New(testROM(0x8000, 0x00))
	require.NoError(t, err)

	g.Write(0xC000, 0x5A)
	ram := g.RAM()
	require.Equal(t, uint8(0x5A), ram[0])
}
