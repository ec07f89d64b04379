package cpu

import "zinvaders/mem"

// reg8 returns the value of the 3-bit-encoded register idx, per the
// 8080's standard field encoding: 0=B 1=C 2=D 3=E 4=H 5=L 6=M 7=A.
// Register 6 (M) dereferences HL through m.
func (c *CPU) reg8(idx byte, m *mem.Bus) byte {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return m.ReadByte(c.HL())
	default:
		return c.A
	}
}

// setReg8 is the inverse of reg8.
func (c *CPU) setReg8(idx byte, v byte, m *mem.Bus) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		m.WriteByte(c.HL(), v)
	default:
		c.A = v
	}
}

// regPair is one of the four register-pair encodings used by
// LXI/INX/DCX/DAD. PUSH/POP encode PSW in the fourth slot instead of
// SP; those opcodes are wired directly and do not use regPair.
type regPair byte

const (
	pairBC regPair = 0
	pairDE regPair = 1
	pairHL regPair = 2
	pairSP regPair = 3
)

func (c *CPU) getPair(p regPair) uint16 {
	switch p {
	case pairBC:
		return c.BC()
	case pairDE:
		return c.DE()
	case pairHL:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setPair(p regPair, v uint16) {
	switch p {
	case pairBC:
		c.SetBC(v)
	case pairDE:
		c.SetDE(v)
	case pairHL:
		c.SetHL(v)
	default:
		c.SP = v
	}
}
