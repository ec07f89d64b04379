package bdos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMem struct {
	data [0x10000]byte
}

func (m *fakeMem) ReadByte(addr uint16) byte { return m.data[addr] }

func TestConsoleCharOutput(t *testing.T) {
	var out bytes.Buffer
	HandleCall(2, uint16('X'), &fakeMem{}, &out)
	assert.Equal(t, "X", out.String())
}

func TestStringOutputStopsAtDollar(t *testing.T) {
	m := &fakeMem{}
	copy(m.data[0x0200:], "HELLO$GARBAGE")

	var out bytes.Buffer
	HandleCall(9, 0x0200, m, &out)
	assert.Equal(t, "HELLO", out.String())
}

func TestOtherFunctionsAreNoop(t *testing.T) {
	var out bytes.Buffer
	HandleCall(99, 0, &fakeMem{}, &out)
	assert.Equal(t, "", out.String())
}

func TestStringOutputWrapsAddress(t *testing.T) {
	m := &fakeMem{}
	m.data[0xFFFF] = 'A'
	m.data[0x0000] = '$'

	var out bytes.Buffer
	HandleCall(9, 0xFFFF, m, &out)
	assert.Equal(t, "A", out.String())
}
