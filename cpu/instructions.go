package cpu

import "zinvaders/mem"

// imm8 fetches the byte immediately following the opcode and advances
// PC past it.
func (c *CPU) imm8(m *mem.Bus) byte {
	v := m.ReadByte(c.PC)
	c.PC++
	return v
}

// imm16 fetches the little-endian word immediately following the
// opcode and advances PC past it.
func (c *CPU) imm16(m *mem.Bus) uint16 {
	v := m.ReadWord(c.PC)
	c.PC += 2
	return v
}

// call pushes the return address (the current PC, already past the
// instruction's operand) and jumps to addr — the shared tail of
// CALL, Ccc, and RST.
func (c *CPU) call(addr uint16, m *mem.Bus) {
	c.push(c.PC, m)
	c.PC = addr
}

// testCond evaluates one of the eight 3-bit condition codes used by
// Jcc/Ccc/Rcc: 0=NZ 1=Z 2=NC 3=C 4=PO 5=PE 6=P 7=M.
func (c *CPU) testCond(cond byte) bool {
	switch cond {
	case 0:
		return !c.Flags.Z
	case 1:
		return c.Flags.Z
	case 2:
		return !c.Flags.CY
	case 3:
		return c.Flags.CY
	case 4:
		return !c.Flags.P
	case 5:
		return c.Flags.P
	case 6:
		return !c.Flags.S
	default:
		return c.Flags.S
	}
}
