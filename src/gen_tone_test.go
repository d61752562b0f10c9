package ttpower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tone_Keyer_Sample_Count(t *testing.T) {
	var sink captureSink
	var k tone_keyer_s
	tone_keyer_init(&k, &sink, DEFAULT_SAMPLES_PER_SEC, DEFAULT_AMPLITUDE)

	k.hold_ms(100)

	assert.Len(t, sink.samples, DEFAULT_SAMPLES_PER_SEC/10,
		"100 ms at 8000 samples/sec is 800 samples")
}

func Test_Tone_Keyer_Silence_When_Unkeyed(t *testing.T) {
	var sink captureSink
	var k tone_keyer_s
	tone_keyer_init(&k, &sink, DEFAULT_SAMPLES_PER_SEC, DEFAULT_AMPLITUDE)

	k.tone_stop()
	k.hold_ms(50)

	for _, sam := range sink.samples {
		require.Zero(t, sam)
	}
}

func Test_Tone_Keyer_Tone_When_Keyed(t *testing.T) {
	var sink captureSink
	var k tone_keyer_s
	tone_keyer_init(&k, &sink, DEFAULT_SAMPLES_PER_SEC, DEFAULT_AMPLITUDE)

	k.tone_start()
	k.hold_ms(50)

	// A sine at full amplitude swings most of the 16 bit range.
	var min, max int16
	for _, sam := range sink.samples {
		if sam < min {
			min = sam
		}
		if sam > max {
			max = sam
		}
	}

	assert.Greater(t, max, int16(30000))
	assert.Less(t, min, int16(-30000))
}

func Test_Tone_Keyer_Frequency(t *testing.T) {
	var sink captureSink
	var k tone_keyer_s
	tone_keyer_init(&k, &sink, DEFAULT_SAMPLES_PER_SEC, DEFAULT_AMPLITUDE)

	k.tone_start()
	k.hold_ms(1000)

	// Count positive-going zero crossings: one per cycle.
	var crossings = 0
	for i := 1; i < len(sink.samples); i++ {
		if sink.samples[i-1] <= 0 && sink.samples[i] > 0 {
			crossings++
		}
	}

	assert.InDelta(t, CW_TONE, crossings, 2)
}

func Test_Tone_Keyer_Amplitude_Scales(t *testing.T) {
	var sink captureSink
	var k tone_keyer_s
	tone_keyer_init(&k, &sink, DEFAULT_SAMPLES_PER_SEC, 50)

	k.tone_start()
	k.hold_ms(50)

	for _, sam := range sink.samples {
		require.LessOrEqual(t, sam, int16(32767/2+1))
		require.GreaterOrEqual(t, sam, int16(-32767/2-1))
	}
}

func Test_Tone_Keyer_Phase_Continuous_Across_Gaps(t *testing.T) {
	// Keying off and on again must not reset the phase
	// accumulator; an abrupt phase jump clicks on the air.
	var sink captureSink
	var k tone_keyer_s
	tone_keyer_init(&k, &sink, DEFAULT_SAMPLES_PER_SEC, DEFAULT_AMPLITUDE)

	k.tone_start()
	k.hold_ms(10)
	var phase_after_tone = k.phase

	k.tone_stop()
	k.hold_ms(10)
	assert.Equal(t, phase_after_tone, k.phase, "silence must not advance the accumulator")
}
