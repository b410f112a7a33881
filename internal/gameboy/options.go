package gameboy

import "github.com/thelolagemann/gomeboy/pkg/log"

// Option configures a System at construction time.
type Option func(g *System)

// WithLogger sets the logger the System reports diagnostics to.
func WithLogger(l log.Logger) Option {
	return func(g *System) {
		g.Logger = l
	}
}

// WithDebug enables the CPU's LD B,B breakpoint trap.
func WithDebug() Option {
	return func(g *System) {
		g.CPU.Debug = true
	}
}

// BootState is an explicit register snapshot for WithBootState.
type BootState struct {
	PC, SP     uint16
	A, F       uint8
	B, C, D, E uint8
	H, L       uint8
}

// WithBootState seeds the CPU with an explicit post-boot register
// snapshot instead of the zeroed power-on state or the standard
// post-boot values that SkipBootROM applies. Useful for test harnesses that want a
// non-standard initial state. Fields are assigned individually,
// rather than replacing CPU.Registers wholesale, so the register-pair
// pointers (BC, DE, HL, AF) keep aliasing the CPU's own fields.
func WithBootState(s BootState) Option {
	return func(g *System) {
		g.CPU.PC, g.CPU.SP = s.PC, s.SP
		g.CPU.A, g.CPU.F = s.A, s.F
		g.CPU.B, g.CPU.C = s.B, s.C
		g.CPU.D, g.CPU.E = s.D, s.E
		g.CPU.H, g.CPU.L = s.H, s.L
	}
}
