// Package mem implements the 8080's memory bus: a flat 64 KiB
// byte-addressable store shared by ROM and RAM alike.
package mem

import "fmt"

// Size is the full 16-bit address space of the 8080.
const Size = 0x10000

// A Bus is the CPU's sole view of memory. Unlike a real arcade board,
// it does not distinguish ROM from RAM: writes to the ROM region
// succeed silently, since the hardware's write-protection is a
// convention enforced by the board, not the bus.
type Bus struct {
	RAM [Size]byte
}

// ReadByte reads one byte at addr.
func (b *Bus) ReadByte(addr uint16) byte {
	return b.RAM[addr]
}

// WriteByte writes one byte at addr.
func (b *Bus) WriteByte(addr uint16, data byte) {
	b.RAM[addr] = data
}

// ReadWord reads a little-endian word starting at addr, wrapping at
// the top of the address space.
func (b *Bus) ReadWord(addr uint16) uint16 {
	low := b.RAM[addr]
	high := b.RAM[addr+1]
	return uint16(high)<<8 | uint16(low)
}

// WriteWord writes a little-endian word starting at addr, wrapping at
// the top of the address space.
func (b *Bus) WriteWord(addr uint16, word uint16) {
	b.RAM[addr] = byte(word)
	b.RAM[addr+1] = byte(word >> 8)
}

// LoadROM copies rom into the bus starting at base. It fails, without
// copying anything, if the image would run past the top of the
// address space.
func (b *Bus) LoadROM(rom []byte, base uint16) error {
	end := int(base) + len(rom)
	if end > Size {
		return fmt.Errorf("mem: ROM of %d bytes at base 0x%04X exceeds %d-byte address space", len(rom), base, Size)
	}
	copy(b.RAM[base:end], rom)
	return nil
}
