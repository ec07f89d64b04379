package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDIPSwitches(t *testing.T) {
	k := Default()
	assert.Equal(t, byte(0x01), k.Port2(), "DIP3 (3 ships) is the factory default")
}

func TestPort1AlwaysOneBit(t *testing.T) {
	k := Keys{}
	assert.Equal(t, byte(0x08), k.Port1())
}

func TestPort1FullBitLayout(t *testing.T) {
	k := Keys{Coin: true, P2Start: true, P1Start: true, P1Shoot: true, P1Left: true, P1Right: true}
	assert.Equal(t, byte(0x7F), k.Port1())
}

func TestPort2FullBitLayout(t *testing.T) {
	k := Keys{DIP3: true, DIP5: true, Tilt: true, DIP6: true, P2Shoot: true, P2Left: true, P2Right: true, DIP7: true}
	assert.Equal(t, byte(0xFF), k.Port2())
}
