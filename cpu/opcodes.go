package cpu

import (
	"zinvaders/mem"
	"zinvaders/ports"
)

// Opcode is one entry of the 256-slot dispatch table: its mnemonic (for
// Trace/debugger display), its static cycle cost, and the function
// that performs it. Conditional CALL/RET/Jcc all use a single static
// cost rather than a taken/not-taken pair — see SPEC_FULL.md's Open
// Questions resolution.
type Opcode struct {
	Name   string
	Cycles int
	Exec   func(c *CPU, m *mem.Bus, p *ports.Bus)
}

// Opcodes is the full 256-entry 8080 dispatch table, populated by
// init from the grouped decode families below. The twelve undocumented
// opcodes (0x08/0x10/.../0x38, 0xCB, 0xD9, 0xDD/0xED/0xFD) are wired
// as aliases of their documented twins, matching silicon.
var Opcodes [256]Opcode

var regNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}
var pairNames = [4]string{"B", "D", "H", "SP"}

func op(name string, cycles int, exec func(c *CPU, m *mem.Bus, p *ports.Bus)) Opcode {
	return Opcode{Name: name, Cycles: cycles, Exec: exec}
}

func init() {
	for i := range Opcodes {
		Opcodes[i] = op("???", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) {})
	}

	Opcodes[0x00] = op("NOP", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) {})
	for _, alias := range []byte{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		Opcodes[alias] = op("NOP*", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) {})
	}

	// MOV r,r' (0x40-0x7F), with 0x76 carved out as HLT.
	for dst := byte(0); dst < 8; dst++ {
		for src := byte(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			cycles := 5
			if dst == 6 || src == 6 {
				cycles = 7
			}
			d, s := dst, src
			name := "MOV " + regNames[d] + "," + regNames[s]
			Opcodes[opcode] = op(name, cycles, func(c *CPU, m *mem.Bus, p *ports.Bus) {
				c.setReg8(d, c.reg8(s, m), m)
			})
		}
	}
	Opcodes[0x76] = op("HLT", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) {
		c.Halted = true
	})

	// MVI r,d8.
	for _, e := range []struct {
		opcode, reg byte
	}{{0x06, 0}, {0x0E, 1}, {0x16, 2}, {0x1E, 3}, {0x26, 4}, {0x2E, 5}, {0x36, 6}, {0x3E, 7}} {
		r := e.reg
		cycles := 7
		if r == 6 {
			cycles = 10
		}
		Opcodes[e.opcode] = op("MVI "+regNames[r]+",d8", cycles, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			d8 := m.ReadByte(c.PC)
			c.PC++
			c.setReg8(r, d8, m)
		})
	}

	// LXI rp,d16 / INX rp / DCX rp / DAD rp.
	for _, e := range []struct {
		opcode byte
		pair   regPair
	}{{0x01, pairBC}, {0x11, pairDE}, {0x21, pairHL}, {0x31, pairSP}} {
		rp := e.pair
		name := pairNames[rp]
		Opcodes[e.opcode] = op("LXI "+name+",d16", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			lo := m.ReadByte(c.PC)
			hi := m.ReadByte(c.PC + 1)
			c.PC += 2
			c.setPair(rp, mem16(lo, hi))
		})
	}
	for _, e := range []struct {
		opcode byte
		pair   regPair
	}{{0x03, pairBC}, {0x13, pairDE}, {0x23, pairHL}, {0x33, pairSP}} {
		rp := e.pair
		Opcodes[e.opcode] = op("INX "+pairNames[rp], 5, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			c.setPair(rp, c.getPair(rp)+1)
		})
	}
	for _, e := range []struct {
		opcode byte
		pair   regPair
	}{{0x0B, pairBC}, {0x1B, pairDE}, {0x2B, pairHL}, {0x3B, pairSP}} {
		rp := e.pair
		Opcodes[e.opcode] = op("DCX "+pairNames[rp], 5, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			c.setPair(rp, c.getPair(rp)-1)
		})
	}
	for _, e := range []struct {
		opcode byte
		pair   regPair
	}{{0x09, pairBC}, {0x19, pairDE}, {0x29, pairHL}, {0x39, pairSP}} {
		rp := e.pair
		Opcodes[e.opcode] = op("DAD "+pairNames[rp], 10, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			sum := uint32(c.HL()) + uint32(c.getPair(rp))
			c.Flags.CY = sum > 0xFFFF
			c.SetHL(uint16(sum))
		})
	}

	// INR r / DCR r.
	for _, e := range []struct {
		opcode, reg byte
	}{{0x04, 0}, {0x0C, 1}, {0x14, 2}, {0x1C, 3}, {0x24, 4}, {0x2C, 5}, {0x34, 6}, {0x3C, 7}} {
		r := e.reg
		cycles := 5
		if r == 6 {
			cycles = 10
		}
		Opcodes[e.opcode] = op("INR "+regNames[r], cycles, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			v := c.reg8(r, m)
			result := v + 1
			c.Flags.AC = v&0x0F == 0x0F
			c.setZSP(result)
			c.setReg8(r, result, m)
		})
	}
	for _, e := range []struct {
		opcode, reg byte
	}{{0x05, 0}, {0x0D, 1}, {0x15, 2}, {0x1D, 3}, {0x25, 4}, {0x2D, 5}, {0x35, 6}, {0x3D, 7}} {
		r := e.reg
		cycles := 5
		if r == 6 {
			cycles = 10
		}
		Opcodes[e.opcode] = op("DCR "+regNames[r], cycles, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			v := c.reg8(r, m)
			result := v - 1
			c.Flags.AC = v&0x0F == 0
			c.setZSP(result)
			c.setReg8(r, result, m)
		})
	}

	// ADD/ADC/SUB/SBB/ANA/XRA/ORA r (0x80-0xB7); CMP r (0xB8-0xBF) below.
	type aluOp struct {
		base byte
		name string
		fn   func(c *CPU, a, b byte) byte
	}
	alus := []aluOp{
		{0x80, "ADD", func(c *CPU, a, b byte) byte { return c.addByte(a, b, false) }},
		{0x88, "ADC", func(c *CPU, a, b byte) byte { return c.addByte(a, b, c.Flags.CY) }},
		{0x90, "SUB", func(c *CPU, a, b byte) byte { return c.subByte(a, b, false) }},
		{0x98, "SBB", func(c *CPU, a, b byte) byte { return c.subByte(a, b, c.Flags.CY) }},
		{0xA0, "ANA", func(c *CPU, a, b byte) byte { return c.andByte(a, b) }},
		{0xA8, "XRA", func(c *CPU, a, b byte) byte { return c.orXorByte(a ^ b) }},
		{0xB0, "ORA", func(c *CPU, a, b byte) byte { return c.orXorByte(a | b) }},
	}
	for _, alu := range alus {
		for r := byte(0); r < 8; r++ {
			opcode := alu.base + r
			cycles := 4
			if r == 6 {
				cycles = 7
			}
			reg, fn := r, alu.fn
			Opcodes[opcode] = op(alu.name+" "+regNames[reg], cycles, func(c *CPU, m *mem.Bus, p *ports.Bus) {
				c.A = fn(c, c.A, c.reg8(reg, m))
			})
		}
	}
	for r := byte(0); r < 8; r++ {
		opcode := 0xB8 + r
		cycles := 4
		if r == 6 {
			cycles = 7
		}
		reg := r
		Opcodes[opcode] = op("CMP "+regNames[reg], cycles, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			c.subByte(c.A, c.reg8(reg, m), false)
		})
	}

	// Immediate ALU forms.
	Opcodes[0xC6] = op("ADI d8", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = c.addByte(c.A, c.imm8(m), false) })
	Opcodes[0xCE] = op("ACI d8", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = c.addByte(c.A, c.imm8(m), c.Flags.CY) })
	Opcodes[0xD6] = op("SUI d8", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = c.subByte(c.A, c.imm8(m), false) })
	Opcodes[0xDE] = op("SBI d8", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = c.subByte(c.A, c.imm8(m), c.Flags.CY) })
	Opcodes[0xE6] = op("ANI d8", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = c.andByte(c.A, c.imm8(m)) })
	Opcodes[0xEE] = op("XRI d8", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = c.orXorByte(c.A ^ c.imm8(m)) })
	Opcodes[0xF6] = op("ORI d8", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = c.orXorByte(c.A | c.imm8(m)) })
	Opcodes[0xFE] = op("CPI d8", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.subByte(c.A, c.imm8(m), false) })

	// Rotates and single-bit flag ops.
	Opcodes[0x07] = op("RLC", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) {
		carry := c.A&0x80 != 0
		c.A = c.A<<1 | b2u8(carry)
		c.Flags.CY = carry
	})
	Opcodes[0x0F] = op("RRC", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) {
		carry := c.A&0x01 != 0
		c.A = c.A>>1 | b2u8(carry)<<7
		c.Flags.CY = carry
	})
	Opcodes[0x17] = op("RAL", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) {
		carryOut := c.A&0x80 != 0
		c.A = c.A<<1 | b2u8(c.Flags.CY)
		c.Flags.CY = carryOut
	})
	Opcodes[0x1F] = op("RAR", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) {
		carryOut := c.A&0x01 != 0
		c.A = c.A>>1 | b2u8(c.Flags.CY)<<7
		c.Flags.CY = carryOut
	})
	Opcodes[0x27] = op("DAA", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.daaCorrect() })
	Opcodes[0x2F] = op("CMA", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = ^c.A })
	Opcodes[0x37] = op("STC", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.Flags.CY = true })
	Opcodes[0x3F] = op("CMC", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.Flags.CY = !c.Flags.CY })

	// Direct/indirect load-store.
	Opcodes[0x02] = op("STAX B", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { m.WriteByte(c.BC(), c.A) })
	Opcodes[0x12] = op("STAX D", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { m.WriteByte(c.DE(), c.A) })
	Opcodes[0x0A] = op("LDAX B", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = m.ReadByte(c.BC()) })
	Opcodes[0x1A] = op("LDAX D", 7, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = m.ReadByte(c.DE()) })
	Opcodes[0x22] = op("SHLD addr", 16, func(c *CPU, m *mem.Bus, p *ports.Bus) { m.WriteWord(c.imm16(m), c.HL()) })
	Opcodes[0x2A] = op("LHLD addr", 16, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.SetHL(m.ReadWord(c.imm16(m))) })
	Opcodes[0x32] = op("STA addr", 13, func(c *CPU, m *mem.Bus, p *ports.Bus) { m.WriteByte(c.imm16(m), c.A) })
	Opcodes[0x3A] = op("LDA addr", 13, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = m.ReadByte(c.imm16(m)) })
	Opcodes[0xEB] = op("XCHG", 5, func(c *CPU, m *mem.Bus, p *ports.Bus) {
		c.H, c.L, c.D, c.E = c.D, c.E, c.H, c.L
	})

	// Stack, PUSH/POP (including PSW in the fourth slot).
	Opcodes[0xC1] = op("POP B", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.SetBC(c.pop(m)) })
	Opcodes[0xD1] = op("POP D", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.SetDE(c.pop(m)) })
	Opcodes[0xE1] = op("POP H", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.SetHL(c.pop(m)) })
	Opcodes[0xF1] = op("POP PSW", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.SetPSW(c.pop(m)) })
	Opcodes[0xC5] = op("PUSH B", 11, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.push(c.BC(), m) })
	Opcodes[0xD5] = op("PUSH D", 11, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.push(c.DE(), m) })
	Opcodes[0xE5] = op("PUSH H", 11, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.push(c.HL(), m) })
	Opcodes[0xF5] = op("PUSH PSW", 11, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.push(c.PSW(), m) })
	Opcodes[0xE3] = op("XTHL", 18, func(c *CPU, m *mem.Bus, p *ports.Bus) {
		top := m.ReadWord(c.SP)
		m.WriteWord(c.SP, c.HL())
		c.SetHL(top)
	})
	Opcodes[0xF9] = op("SPHL", 5, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.SP = c.HL() })

	// Unconditional jump/call/return and their documented aliases.
	Opcodes[0xC3] = op("JMP addr", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.PC = c.imm16(m) })
	Opcodes[0xCB] = op("JMP* addr", 10, Opcodes[0xC3].Exec)
	Opcodes[0xCD] = op("CALL addr", 17, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.call(c.imm16(m), m) })
	for _, alias := range []byte{0xDD, 0xED, 0xFD} {
		Opcodes[alias] = op("CALL* addr", 17, Opcodes[0xCD].Exec)
	}
	Opcodes[0xC9] = op("RET", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.PC = c.pop(m) })
	Opcodes[0xD9] = op("RET*", 10, Opcodes[0xC9].Exec)
	Opcodes[0xE9] = op("PCHL", 5, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.PC = c.HL() })

	// Conditional jump/call/return, 8 conditions each.
	condNames := [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
	for cc := byte(0); cc < 8; cc++ {
		cond := cc
		Opcodes[0xC2+cc*8] = op("J"+condNames[cond]+" addr", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			addr := c.imm16(m)
			if c.testCond(cond) {
				c.PC = addr
			}
		})
		Opcodes[0xC4+cc*8] = op("C"+condNames[cond]+" addr", 11, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			addr := c.imm16(m)
			if c.testCond(cond) {
				c.call(addr, m)
			}
		})
		Opcodes[0xC0+cc*8] = op("R"+condNames[cond], 5, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			if c.testCond(cond) {
				c.PC = c.pop(m)
			}
		})
	}

	// RST n.
	for n := byte(0); n < 8; n++ {
		vector := n
		Opcodes[0xC7+n*8] = op("RST", 11, func(c *CPU, m *mem.Bus, p *ports.Bus) {
			c.call(uint16(vector)*8, m)
		})
	}

	// I/O and interrupt control.
	Opcodes[0xDB] = op("IN d8", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.A = p.Read(c.imm8(m)) })
	Opcodes[0xD3] = op("OUT d8", 10, func(c *CPU, m *mem.Bus, p *ports.Bus) { p.Write(c.imm8(m), c.A) })
	Opcodes[0xF3] = op("DI", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.IME = false })
	Opcodes[0xFB] = op("EI", 4, func(c *CPU, m *mem.Bus, p *ports.Bus) { c.IME = true })
}

func mem16(lo, hi byte) uint16 { return uint16(hi)<<8 | uint16(lo) }

func b2u8(b bool) byte {
	if b {
		return 1
	}
	return 0
}
