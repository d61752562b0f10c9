package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Generate the fixed-frequency CW sidetone.
 *
 * Description: Tone generation is a phase accumulator stepping
 *		through a precomputed sine table.  Everything that
 *		consumes audio implements sample_sink; the soundcard,
 *		a .WAV file, and the unit tests all look the same
 *		from here.
 *
 *		Pacing falls out of sample generation: writing n
 *		samples to a real soundcard takes n/rate seconds, so
 *		the keyer's hold operation doubles as the protocol
 *		timing primitive.
 *
 *---------------------------------------------------------------*/

import (
	"math"
)

const CW_TONE = 800 /* Hz.  Might get ambitious and make this adjustable some day. */

/*
 * Phase accumulator resolution.
 * Upper 8 bits index the sine table.
 */

const TICKS_PER_CYCLE = 256.0 * 256.0 * 256.0 * 256.0

type sample_sink interface {
	put_sample(sam int16)
}

/*
 * Generates tone or silence into a sink, one element at a time.
 */

type tone_keyer_s struct {
	sink        sample_sink
	sample_rate int
	keyed       bool

	sine_table       [256]int16
	phase            int
	phase_per_sample int
}

/*------------------------------------------------------------------
 *
 * Name:        tone_keyer_init
 *
 * Purpose:     Precompute the sine table and phase step.
 *
 * Inputs:      sink	- Destination for generated samples.
 *		rate	- Samples per second.
 *		amp	- Signal amplitude on scale of 0 .. 100.
 *
 *			  100 will produce maximum amplitude of +-32k samples.
 *
 *----------------------------------------------------------------*/

func tone_keyer_init(k *tone_keyer_s, sink sample_sink, rate int, amp int) {
	k.sink = sink
	k.sample_rate = rate
	k.keyed = false
	k.phase = 0
	k.phase_per_sample = int((CW_TONE*TICKS_PER_CYCLE)/float64(rate) + 0.5)

	for j := 0; j < len(k.sine_table); j++ {
		var a = (float64(j) / 256.0) * (2 * math.Pi)
		var s = int(math.Sin(a) * 32767.0 * float64(amp) / 100.0)

		/* 16 bit sound sample is in range of -32768 .. +32767. */
		Assert(s >= -32768 && s <= 32767)
		k.sine_table[j] = int16(s)
	}
}

func (k *tone_keyer_s) tone_start() {
	k.keyed = true
}

func (k *tone_keyer_s) tone_stop() {
	k.keyed = false
}

/*------------------------------------------------------------------
 *
 * Name:        hold_ms
 *
 * Purpose:     Emit tone or silence, per current keying state, for
 *		the given duration.
 *
 * Description:	This is the "hold for duration" primitive the Morse
 *		sender paces itself with.  A blocking soundcard sink
 *		makes it take real time; a file or test sink makes it
 *		instantaneous.
 *
 *----------------------------------------------------------------*/

func (k *tone_keyer_s) flush() {
	if f, ok := k.sink.(interface{ audio_flush() }); ok {
		f.audio_flush()
	}
}

func (k *tone_keyer_s) hold_ms(ms int) {
	var nsamples = int(float64(ms)*float64(k.sample_rate)/1000.0 + 0.5)

	for j := 0; j < nsamples; j++ {
		var sam int16

		if k.keyed {
			k.phase += k.phase_per_sample
			sam = k.sine_table[(k.phase>>24)&0xff]
		}

		k.sink.put_sample(sam)
	}
}
