// Package input resolves Ebitengine keyboard state into the Space
// Invaders cabinet's port 1/2 bit layout, keeping the bit-level detail
// out of the ports package itself (ports only ever sees two plain
// bytes).
package input

import "github.com/hajimehoshi/ebiten/v2"

// Keys holds one polled frame of cabinet input, decoded from whatever
// key-reading backend the caller uses.
type Keys struct {
	Coin              bool
	P1Start, P2Start  bool
	P1Shoot           bool
	P1Left, P1Right   bool
	P2Shoot           bool
	P2Left, P2Right   bool
	Tilt              bool
	DIP3, DIP5, DIP6  bool // ships-per-game / extra-ship-at switches
	DIP7              bool // coin info
}

// Default returns the factory DIP-switch configuration: 3 ships,
// extra ship at 1500 points.
func Default() Keys {
	return Keys{DIP3: true}
}

// Port1 packs the player-1/coin/start bits, with the always-one bit 3
// set regardless of Keys' contents (matching the cabinet hardware).
func (k Keys) Port1() byte {
	var v byte
	if k.Coin {
		v |= 0x01
	}
	if k.P2Start {
		v |= 0x02
	}
	if k.P1Start {
		v |= 0x04
	}
	v |= 0x08
	if k.P1Shoot {
		v |= 0x10
	}
	if k.P1Left {
		v |= 0x20
	}
	if k.P1Right {
		v |= 0x40
	}
	return v
}

// Port2 packs the DIP switches, tilt, and player-2 bits.
func (k Keys) Port2() byte {
	var v byte
	if k.DIP3 {
		v |= 0x01
	}
	if k.DIP5 {
		v |= 0x02
	}
	if k.Tilt {
		v |= 0x04
	}
	if k.DIP6 {
		v |= 0x08
	}
	if k.P2Shoot {
		v |= 0x10
	}
	if k.P2Left {
		v |= 0x20
	}
	if k.P2Right {
		v |= 0x40
	}
	if k.DIP7 {
		v |= 0x80
	}
	return v
}

// Keyboard reads Ebitengine's key state into Keys each frame. It
// carries the previous frame's DIP-switch settings forward since
// those are cabinet configuration, not polled controls.
type Keyboard struct {
	prev Keys
}

// NewKeyboard returns a Keyboard with the factory DIP-switch defaults.
func NewKeyboard() *Keyboard {
	return &Keyboard{prev: Default()}
}

// Poll reads the current Ebitengine key state and returns the
// resulting Keys, suitable for host.InputSource via Port1/Port2.
func (kb *Keyboard) Poll() Keys {
	k := kb.prev
	k.P1Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	k.P1Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	k.P1Shoot = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW)

	k.P2Left = ebiten.IsKeyPressed(ebiten.KeyJ)
	k.P2Right = ebiten.IsKeyPressed(ebiten.KeyL)
	k.P2Shoot = ebiten.IsKeyPressed(ebiten.KeyI)

	k.Coin = ebiten.IsKeyPressed(ebiten.KeyDigit3)
	k.P1Start = ebiten.IsKeyPressed(ebiten.KeyDigit1)
	k.P2Start = ebiten.IsKeyPressed(ebiten.KeyDigit2)

	k.Tilt = ebiten.IsKeyPressed(ebiten.KeyT)

	kb.prev = k
	return k
}
