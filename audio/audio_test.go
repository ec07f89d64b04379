package audio

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRisingEdgeDetection(t *testing.T) {
	assert.Equal(t, []effect{ufo}, risingEdges(0x00, 0x01, 0x00, 0x00))
	assert.Nil(t, risingEdges(0x01, 0x01, 0x00, 0x00), "already-set bit is not a rising edge")
	assert.Equal(t, []effect{fleetMove1}, risingEdges(0x00, 0x00, 0x00, 0x01))
	assert.Equal(t, []effect{shot, fleetMove2}, risingEdges(0x00, 0x02, 0x00, 0x02))
}

func TestSquareWaveReaderProducesExpectedSampleCount(t *testing.T) {
	r := newSquareWaveReader([]tone{{freq: 440, ms: 10}})
	expectedSamples := int(float64(10) / 1000 * sampleRate)

	buf := make([]byte, 4*(expectedSamples+10))
	n, err := r.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, expectedSamples*4, n)

	_, err = r.Read(buf)
	assert.Equal(t, io.EOF, err)
}

func TestGenerateCoversAllEffects(t *testing.T) {
	for e := ufo; e <= ufoHit; e++ {
		w := generate(e)
		assert.NotNil(t, w)
		assert.NotEmpty(t, w.tones)
	}
}
