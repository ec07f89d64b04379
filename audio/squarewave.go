package audio

import (
	"encoding/binary"
	"io"
	"math"
)

// squareWaveReader streams a sequence of tones as 32-bit float PCM, a
// square wave alternating between +0.2 and -0.2 at each tone's
// frequency, matching the arcade's buzzer-driven sound effects more
// closely than a sine wave would.
type squareWaveReader struct {
	tones   []tone
	toneIdx int
	sample  int
}

func newSquareWaveReader(tones []tone) *squareWaveReader {
	return &squareWaveReader{tones: tones}
}

func (r *squareWaveReader) Read(p []byte) (int, error) {
	n := 0
	for n+4 <= len(p) {
		v, ok := r.next()
		if !ok {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(v))
		n += 4
	}
	return n, nil
}

func (r *squareWaveReader) next() (float32, bool) {
	for r.toneIdx < len(r.tones) {
		t := r.tones[r.toneIdx]
		numSamples := int(float64(t.ms) / 1000 * sampleRate)
		if r.sample >= numSamples {
			r.toneIdx++
			r.sample = 0
			continue
		}
		elapsed := float64(r.sample) / sampleRate
		phase := math.Mod(elapsed*float64(t.freq), 1.0)
		r.sample++
		if phase < 0.5 {
			return 0.2, true
		}
		return -0.2, true
	}
	return 0, false
}
