// Package audio turns the port 3/5 sound-trigger latches into square-
// wave arcade sound effects, played back through oto.
package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

const sampleRate = 48000

// effect is one of the ten sound triggers decoded from ports 3 and 5.
type effect int

const (
	ufo effect = iota
	shot
	playerDie
	invaderDie
	extendedPlay
	fleetMove1
	fleetMove2
	fleetMove3
	fleetMove4
	ufoHit
)

// System detects rising edges on the port 3/5 latches and plays the
// matching square-wave effect. The zero value is not usable; build
// one with NewSystem.
type System struct {
	ctx *oto.Context

	mu        sync.Mutex
	lastPort3 byte
	lastPort5 byte
}

// NewSystem opens the default audio output device. Callers that can't
// or don't want sound should simply not construct a System; host.
// Machine.RunFrame accepts a nil SoundSink.
func NewSystem() (*System, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &System{ctx: ctx}, nil
}

// Update implements host.SoundSink: it compares this frame's port 3/5
// bytes against the previous frame's and fires an effect for every bit
// that transitioned 0->1.
func (s *System) Update(port3, port5 byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range risingEdges(s.lastPort3, port3, s.lastPort5, port5) {
		s.play(e)
	}
	s.lastPort3, s.lastPort5 = port3, port5
}

// risingEdges reports which effects should fire given the previous
// and current port 3/5 bytes: one per bit that transitioned 0->1.
// Pulled out of Update so it can be tested without an open audio
// device.
func risingEdges(lastPort3, port3, lastPort5, port5 byte) []effect {
	var fired []effect
	for bit := 0; bit < 5; bit++ {
		mask := byte(1) << bit
		if lastPort3&mask == 0 && port3&mask != 0 {
			fired = append(fired, effect(bit))
		}
		if lastPort5&mask == 0 && port5&mask != 0 {
			fired = append(fired, effect(bit+5))
		}
	}
	return fired
}

func (s *System) play(e effect) {
	wave := generate(e)
	player := s.ctx.NewPlayer(wave)
	player.Play()
	// The player is intentionally leaked to the runtime's GC once the
	// wave is exhausted; oto has no synchronous "fire and forget" API.
}

// generate renders one effect's square-wave envelope as a Reader oto
// can stream from directly.
func generate(e effect) *squareWaveReader {
	switch e {
	case ufo:
		return newSquareWaveReader(tones(4, 200, 240, 50))
	case shot:
		return newSquareWaveReader(descending(8, 1200, -140, 10))
	case playerDie:
		return newSquareWaveReader(descendingFloor(40, 400, -8, 50, 15, 12, 10))
	case invaderDie:
		return newSquareWaveReader(descendingFloor(12, 180, -12, 40, 15, 15, 12))
	case extendedPlay:
		tone := append(ascending(5, 400, 30, 40), tone{freq: 550, ms: 200})
		return newSquareWaveReader(tone)
	case fleetMove1:
		return newSquareWaveReader([]tone{{freq: 98, ms: 120}})
	case fleetMove2:
		return newSquareWaveReader([]tone{{freq: 110, ms: 120}})
	case fleetMove3:
		return newSquareWaveReader([]tone{{freq: 123, ms: 120}})
	case fleetMove4:
		return newSquareWaveReader([]tone{{freq: 139, ms: 120}})
	default: // ufoHit
		return newSquareWaveReader(descendingFloor(30, 800, -24, 60, 12, 10, 15))
	}
}

type tone struct {
	freq float32
	ms   int
}

func tones(n int, a, b float32, ms int) []tone {
	out := make([]tone, 0, n*2)
	for i := 0; i < n; i++ {
		out = append(out, tone{freq: a, ms: ms}, tone{freq: b, ms: ms})
	}
	return out
}

func descending(n int, start, step float32, ms int) []tone {
	out := make([]tone, n)
	for i := range out {
		out[i] = tone{freq: start + float32(i)*step, ms: ms}
	}
	return out
}

func ascending(n int, start, step float32, ms int) []tone {
	out := make([]tone, n)
	for i := range out {
		out[i] = tone{freq: start + float32(i)*step, ms: ms}
	}
	return out
}

// descendingFloor generates a descending run of n tones, clamped to a
// floor frequency. Tones before switchAt last msBefore ms; the rest
// last msAfter ms.
func descendingFloor(n int, start, step, floor float32, msBefore, msAfter, switchAt int) []tone {
	out := make([]tone, n)
	for i := range out {
		freq := start + float32(i)*step
		if freq < floor {
			freq = floor
		}
		ms := msAfter
		if i < switchAt {
			ms = msBefore
		}
		out[i] = tone{freq: freq, ms: ms}
	}
	return out
}
