package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Decoder for DTMF, commonly known as "touch tones."
 *
 * Description: This uses the Goertzel Algorithm for tone detection.
 *
 *		The controller core only ever asks "what button, if
 *		any, are we hearing right now?"  The answer comes from
 *		dtmf_decoder_current after each audio sample has been
 *		pushed through dtmf_decoder_sample.
 *
 * References:	http://eetimes.com/design/embedded/4024443/The-Goertzel-Algorithm
 *
 *---------------------------------------------------------------*/

import (
	"math"
)

const NUM_TONES = 8

var DTMF_TONES = [NUM_TONES]int{697, 770, 852, 941, 1209, 1336, 1477, 1633}

/*
 * Current state of the DTMF decoding for one audio channel.
 */

type dtmf_decoder_s struct {
	sample_rate int /* Samples per sec.  Typ. 8000, 44100, etc. */
	block_size  int /* Number of samples to process in one block. */
	coef        [NUM_TONES]float64

	n        int /* Samples processed in this block. */
	q1       [NUM_TONES]float64
	q2       [NUM_TONES]float64
	prev_dec byte
	current  byte /* Debounced result.  0 when hearing nothing. */
}

/*------------------------------------------------------------------
 *
 * Name:        dtmf_decoder_init
 *
 * Purpose:     Initialize the DTMF decoder.
 *
 * Inputs:      sample_rate	- Audio sample frequency.
 *
 * Description:	Pick a suitable processing block size.
 *		Larger = narrower bandwidth, slower response.
 *		205 samples at 8000/sec is the traditional choice.
 *
 *----------------------------------------------------------------*/

func dtmf_decoder_init(d *dtmf_decoder_s, sample_rate int) {
	d.sample_rate = sample_rate
	d.block_size = (205 * sample_rate) / 8000

	for j := 0; j < NUM_TONES; j++ {

		// Why do some insist on rounding k to the nearest integer?
		// That would move the filter center frequency away from ideal.
		// More consistent results for all the tones when k is not rounded off.

		var k = float64(d.block_size) * float64(DTMF_TONES[j]) / float64(sample_rate)

		d.coef[j] = 2.0 * math.Cos(2.0*math.Pi*k/float64(d.block_size))

		Assert(d.coef[j] > 0.0 && d.coef[j] < 2.0)
	}

	d.n = 0
	d.prev_dec = 0
	d.current = 0
}

/*------------------------------------------------------------------
 *
 * Name:        dtmf_decoder_sample
 *
 * Purpose:     Process one audio sample from the sound input source.
 *
 * Inputs:	d	- Decoder state.
 *		input	- Audio sample, any consistent scaling.
 *
 * Description:	Accumulates Goertzel feedback terms.  Each time a
 *		full block has been gathered, the per-tone magnitudes
 *		are evaluated and the debounced current button is
 *		updated.
 *
 *----------------------------------------------------------------*/

func dtmf_decoder_sample(d *dtmf_decoder_s, input float64) {

	for i := 0; i < NUM_TONES; i++ {
		var q0 = input + d.q1[i]*d.coef[i] - d.q2[i]
		d.q2[i] = d.q1[i]
		d.q1[i] = q0
	}

	d.n++
	if d.n < d.block_size {
		return
	}

	var output [NUM_TONES]float64

	for i := 0; i < NUM_TONES; i++ {
		output[i] = math.Sqrt(d.q1[i]*d.q1[i] + d.q2[i]*d.q2[i] - d.q1[i]*d.q2[i]*d.coef[i])
		d.q1[i] = 0
		d.q2[i] = 0
	}
	d.n = 0

	/*
	 * The input signal can vary over a couple orders of
	 * magnitude so we can't set some absolute threshold.
	 *
	 * See if one tone is stronger than the sum of the
	 * others in the same group multiplied by some factor.
	 *
	 * For perfect synthetic signals this needs to be in
	 * the range of about 1.33 (very sensitive) to 2.15 (very fussy).
	 * Use the mid point 1.74 as our initial guess.
	 */

	const THRESHOLD = 1.74

	var row, col = -1, -1

	for i := 0; i < 4; i++ {
		var others float64
		for j := 0; j < 4; j++ {
			if j != i {
				others += output[j]
			}
		}
		if output[i] > THRESHOLD*others {
			row = i
			break
		}
	}

	for i := 4; i < NUM_TONES; i++ {
		var others float64
		for j := 4; j < NUM_TONES; j++ {
			if j != i {
				others += output[j]
			}
		}
		if output[i] > THRESHOLD*others {
			col = i - 4
			break
		}
	}

	var rc2char = []byte{'1', '2', '3', 'A',
		'4', '5', '6', 'B',
		'7', '8', '9', 'C',
		'*', '0', '#', 'D'}

	var decoded byte
	if row >= 0 && col >= 0 {
		decoded = rc2char[row*4+col]
	}

	// Consider valid only if we get the same twice in a row.

	if decoded == d.prev_dec {
		d.current = decoded
	}
	d.prev_dec = decoded
}

/*------------------------------------------------------------------
 *
 * Name:        dtmf_decoder_current
 *
 * Purpose:     The button currently being heard, 0 for none.
 *
 *----------------------------------------------------------------*/

func dtmf_decoder_current(d *dtmf_decoder_s) byte {
	return d.current
}

/*-------------------------------------------------------------------
 *
 * Name:        dtmf_push_button
 *
 * Purpose:    	Generate DTMF tone for a button push.
 *
 * Inputs:	sink	- Where the audio samples go.
 *		rate	- Samples per second.
 *		amp	- Amplitude, 0 .. 100.
 *		button	- One of 0-9, A-D, *, #.  Others result in silence.
 *		ms	- Duration in milliseconds.
 *			  Use 50 ms of tone and 50 ms of silence for a
 *			  max rate of 10 per second.
 *
 *--------------------------------------------------------------------*/

var button_rowcol = map[byte][2]int{
	'1': {0, 4}, '2': {0, 5}, '3': {0, 6}, 'A': {0, 7},
	'4': {1, 4}, '5': {1, 5}, '6': {1, 6}, 'B': {1, 7},
	'7': {2, 4}, '8': {2, 5}, '9': {2, 6}, 'C': {2, 7},
	'*': {3, 4}, '0': {3, 5}, '#': {3, 6}, 'D': {3, 7},
}

func dtmf_push_button(sink sample_sink, rate int, amp int, button byte, ms int) {

	var fa, fb int
	if rc, ok := button_rowcol[button]; ok {
		fa = DTMF_TONES[rc[0]]
		fb = DTMF_TONES[rc[1]]
	}

	var phasea, phaseb float64

	for i := 0; i < (ms*rate)/1000; i++ {
		var dtmf float64

		if fa > 0 && fb > 0 {
			dtmf = math.Sin(phasea) + math.Sin(phaseb)
			phasea += 2.0 * math.Pi * float64(fa) / float64(rate)
			phaseb += 2.0 * math.Pi * float64(fb) / float64(rate)
		}

		// 'dtmf' can be in range of +-2.0 because it is the sum of
		// two sine waves.  Amplitude of 100 uses the full +-32k range.

		sink.put_sample(int16(dtmf * 16383.0 * float64(amp) / 100.0))
	}
}
