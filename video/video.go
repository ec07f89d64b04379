// Package video converts the arcade's rotated, bit-packed video RAM
// into an on-screen Ebitengine frame.
package video

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Width and Height are the display's native, already-rotated
	// dimensions (the cabinet itself is mounted sideways).
	Width  = 224
	Height = 256

	vramSize = 0x1C00
)

var (
	pixelOn  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	pixelOff = color.RGBA{A: 0xFF}
)

// Screen is an ebiten.Game that displays whatever video RAM was last
// handed to Present. It implements host.FrameSink.
type Screen struct {
	img   *ebiten.Image
	frame [Width * Height]color.RGBA
}

// NewScreen returns a Screen ready to receive frames.
func NewScreen() *Screen {
	return &Screen{img: ebiten.NewImage(Width, Height)}
}

// Present implements host.FrameSink: it unpacks vram (0x2400-0x3FFF,
// one byte per 8 vertical pixels, rotated 90 degrees counter-clockwise
// from the cabinet's physical orientation) into the screen buffer.
func (s *Screen) Present(vram []byte) {
	for offset := 0; offset < vramSize && offset < len(vram); offset++ {
		b := vram[offset]

		x := offset / 32 // 256 vertical pixels / 8 bits-per-byte = 32 bytes per column
		y := 255 - (offset*8)%256

		for bit := 0; bit < 8; bit++ {
			on := b&(1<<bit) != 0
			screenY := y - bit
			if x < 0 || x >= Width || screenY < 0 || screenY >= Height {
				continue
			}
			c := pixelOff
			if on {
				c = pixelOn
			}
			s.frame[screenY*Width+x] = c
		}
	}
	s.img.WritePixels(rgbaBytes(s.frame[:]))
}

func rgbaBytes(px []color.RGBA) []byte {
	buf := make([]byte, 0, len(px)*4)
	for _, c := range px {
		buf = append(buf, c.R, c.G, c.B, c.A)
	}
	return buf
}

// Update implements ebiten.Game. Input polling happens in a separate
// input.Keyboard driven from the host loop, not here.
func (s *Screen) Update() error { return nil }

// Draw implements ebiten.Game.
func (s *Screen) Draw(screen *ebiten.Image) {
	screen.DrawImage(s.img, nil)
}

// Layout implements ebiten.Game.
func (s *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return Width, Height
}
