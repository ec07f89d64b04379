package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetDefaults(t *testing.T) {
	b := New()
	assert.Equal(t, byte(0x08), b.Port1, "bit 3 of port 1 is always 1")
}

func TestShiftRegister(t *testing.T) {
	// spec.md §8 scenario 4: OUT 4,0xAB; OUT 4,0xCD; OUT 2,0x03; IN 3 == 0x6D
	// (register becomes 0xCDAB; reading with offset 3 takes the low
	// 8 bits of 0xCDAB>>5 == 0x066D)
	b := New()
	b.Write(4, 0xAB)
	b.Write(4, 0xCD)
	b.Write(2, 0x03)
	assert.Equal(t, byte(0x6D), b.Read(3))
}

func TestShiftAmountMasksToThreeBits(t *testing.T) {
	b := New()
	b.Write(2, 0xFF)
	assert.Equal(t, byte(0x07), b.shiftAmount)
}

func TestSoundLatches(t *testing.T) {
	b := New()
	b.Write(3, 0x01)
	b.Write(5, 0x10)
	p3, p5 := b.Latches()
	assert.Equal(t, byte(0x01), p3)
	assert.Equal(t, byte(0x10), p5)
}

func TestWatchdogAndUnknownPortsAreNoops(t *testing.T) {
	b := New()
	b.Write(6, 0xFF)
	b.Write(200, 0xFF)
	assert.Equal(t, byte(0), b.Read(200))
	assert.Equal(t, byte(0), b.Read(50))
}

func TestInputLatchRoundTrip(t *testing.T) {
	b := New()
	b.SetInputs(0x3C, 0x95)
	assert.Equal(t, byte(0x3C), b.Read(1))
	assert.Equal(t, byte(0x95), b.Read(2))
}
