// Package cpu implements the Intel 8080 microprocessor: register
// file, flags, the fetch-decode-execute loop, and the interrupt
// acknowledgement protocol described in spec.md §4.C.
package cpu

import (
	"fmt"
	"io"
	"math/bits"

	"zinvaders/bdos"
	"zinvaders/mask"
	"zinvaders/mem"
	"zinvaders/ports"
)

// Flags holds the 8080's five documented condition bits. The unused
// bits of the flag byte (5 and 3 always 0, bit 1 always 1) are not
// stored; they're reconstructed by ToByte.
type Flags struct {
	S  bool // Sign
	Z  bool // Zero
	AC bool // Auxiliary Carry
	P  bool // Parity (even)
	CY bool // Carry
}

// ToByte packs the flags into the PSW low byte: S Z 0 AC 0 P 1 CY.
func (f Flags) ToByte() byte {
	var b byte
	if f.S {
		b = mask.Set(b, mask.I1, 1)
	}
	if f.Z {
		b = mask.Set(b, mask.I2, 1)
	}
	if f.AC {
		b = mask.Set(b, mask.I4, 1)
	}
	if f.P {
		b = mask.Set(b, mask.I6, 1)
	}
	b = mask.Set(b, mask.I7, 1) // always 1
	if f.CY {
		b = mask.Set(b, mask.I8, 1)
	}
	return b
}

// FromByte unpacks a PSW low byte into flags, ignoring the unused
// bits (which the 8080 never exposes to software in any other way).
func (f *Flags) FromByte(b byte) {
	f.S = mask.IsSet(b, mask.I1)
	f.Z = mask.IsSet(b, mask.I2)
	f.AC = mask.IsSet(b, mask.I4)
	f.P = mask.IsSet(b, mask.I6)
	f.CY = mask.IsSet(b, mask.I8)
}

// CPU is the 8080 register file plus its two run latches (ime,
// halted) and the monotonic cycle counter.
type CPU struct {
	A, B, C, D, E, H, L byte
	SP, PC              uint16
	Flags               Flags

	IME    bool // interrupt master enable
	Halted bool
	Cycles uint64

	// Console receives BDOS console/string output. A nil Console
	// discards output (io.Discard semantics).
	Console io.Writer
}

// New returns a zeroed CPU, as if just reset. Flag bit 1 still reads
// as 1 from Flags.ToByte even though Flags itself has no field for it.
func New() *CPU {
	return &CPU{}
}

func (c *CPU) consoleWriter() io.Writer {
	if c.Console == nil {
		return io.Discard
	}
	return c.Console
}

// BC, DE, HL read the 16-bit register pairs, high byte first.
func (c *CPU) BC() uint16 { return mask.Word(c.C, c.B) }
func (c *CPU) DE() uint16 { return mask.Word(c.E, c.D) }
func (c *CPU) HL() uint16 { return mask.Word(c.L, c.H) }

// SetBC, SetDE, SetHL write the 16-bit register pairs.
func (c *CPU) SetBC(w uint16) { c.C, c.B = mask.SplitWord(w) }
func (c *CPU) SetDE(w uint16) { c.E, c.D = mask.SplitWord(w) }
func (c *CPU) SetHL(w uint16) { c.L, c.H = mask.SplitWord(w) }

// PSW returns the processor status word: A as the high byte, flags as
// the low byte.
func (c *CPU) PSW() uint16 { return mask.Word(c.Flags.ToByte(), c.A) }

// SetPSW writes the processor status word back into A and flags.
func (c *CPU) SetPSW(w uint16) {
	low, high := mask.SplitWord(w)
	c.A = high
	c.Flags.FromByte(low)
}

// Step runs one fetch-decode-execute cycle and returns the number of
// cycles it consumed. A halted CPU burns 4 cycles without fetching.
func (c *CPU) Step(m *mem.Bus, p *ports.Bus) int {
	if c.Halted {
		return 4
	}

	if c.PC == bdos.CallAddr {
		bdos.HandleCall(c.C, c.DE(), m, c.consoleWriter())
	}

	opcode := m.ReadByte(c.PC)
	c.PC++

	op := Opcodes[opcode]
	op.Exec(c, m, p)

	c.Cycles += uint64(op.Cycles)
	return op.Cycles
}

// Interrupt is the acceptance point of an externally vectored
// interrupt, equivalent to an RST n instruction forced onto the bus.
// If interrupts are disabled the request is silently dropped; callers
// may retry on a later frame boundary.
func (c *CPU) Interrupt(vector byte, m *mem.Bus) {
	if !c.IME {
		return
	}
	c.IME = false
	c.Halted = false
	c.push(c.PC, m)
	c.PC = uint16(vector) * 8
}

func (c *CPU) push(word uint16, m *mem.Bus) {
	c.SP -= 2
	m.WriteWord(c.SP, word)
}

func (c *CPU) pop(m *mem.Bus) uint16 {
	word := m.ReadWord(c.SP)
	c.SP += 2
	return word
}

// Trace renders a one-line disassembly-adjacent snapshot: PC, register
// pairs, SP, cycle count, and the next four bytes at PC. Used by the
// --trace CLI flag through host.Machine.RunCOM.
func (c *CPU) Trace(m *mem.Bus) string {
	next := [4]byte{
		m.ReadByte(c.PC),
		m.ReadByte(c.PC + 1),
		m.ReadByte(c.PC + 2),
		m.ReadByte(c.PC + 3),
	}
	return fmt.Sprintf(
		"PC:%04X AF:%04X BC:%04X DE:%04X HL:%04X SP:%04X CYC:%d\t(%02X %02X %02X %02X)",
		c.PC, c.PSW(), c.BC(), c.DE(), c.HL(), c.SP, c.Cycles,
		next[0], next[1], next[2], next[3],
	)
}

// evenParity reports whether b has an even number of set bits.
func evenParity(b byte) bool {
	return bits.OnesCount8(b)%2 == 0
}
