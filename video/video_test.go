package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentDoesNotPanicOnShortVRAM(t *testing.T) {
	s := NewScreen()
	assert.NotPanics(t, func() {
		s.Present(make([]byte, 16))
	})
}

func TestPresentDecodesTopLeftColumn(t *testing.T) {
	s := NewScreen()
	vram := make([]byte, vramSize)
	vram[0] = 0xFF // offset 0: x=0, y=255, bits 0-7 all on -> rows 255 down to 248
	s.Present(vram)

	assert.Equal(t, pixelOn, s.frame[255*Width+0])
	assert.Equal(t, pixelOn, s.frame[248*Width+0])
	assert.Equal(t, pixelOff, s.frame[247*Width+0])
}

func TestLayoutReturnsNativeResolution(t *testing.T) {
	s := NewScreen()
	w, h := s.Layout(800, 600)
	assert.Equal(t, Width, w)
	assert.Equal(t, Height, h)
}
