package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Soundcard interface.
 *
 * Description: portaudio on both sides.  The input stream feeds the
 *		DTMF decoder one block at a time; the output stream
 *		carries the generated CW tone.
 *
 *		Blocking reads and writes do the pacing.  Reading a
 *		block takes block/rate seconds of wall time, and
 *		writing tone samples takes exactly as long as the
 *		tone lasts, which is what keys the transmitter for
 *		the right duration.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

func audio_init() error {
	return portaudio.Initialize()
}

func audio_term() {
	portaudio.Terminate() //nolint:errcheck
}

/*
 * Receive side: implements tone_input for the scheduler.
 */

type audio_input_s struct {
	stream *portaudio.Stream
	buf    []int16
	dec    dtmf_decoder_s
}

/*-------------------------------------------------------------------
 *
 * Name:        audio_open_input
 *
 * Purpose:    	Open the default capture device and set up the DTMF
 *		decoder behind it.
 *
 *--------------------------------------------------------------------*/

func audio_open_input(config *audio_config_s) (*audio_input_s, error) {
	var a = &audio_input_s{}

	dtmf_decoder_init(&a.dec, config.SamplesPerSec)

	/* One Goertzel block per read keeps poll latency at ~25 ms. */
	a.buf = make([]int16, a.dec.block_size)

	var stream, err = portaudio.OpenDefaultStream(1, 0, float64(config.SamplesPerSec), len(a.buf), a.buf)
	if err != nil {
		return nil, fmt.Errorf("can't open audio input: %w", err)
	}
	a.stream = stream

	var startErr = a.stream.Start()
	if startErr != nil {
		a.stream.Close() //nolint:errcheck
		return nil, fmt.Errorf("can't start audio input: %w", startErr)
	}

	return a, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        poll
 *
 * Purpose:    	Advance the decoder past everything captured since
 *		the last poll and report the current button.
 *
 * Description:	The poll period can be longer than one capture block,
 *		so a single read per poll would fall ever further
 *		behind until the stream overflows.  Keep reading
 *		until less than a full block remains queued.
 *
 *		An overflow only means the backlog was dropped
 *		upstream; the block just read is still good audio.
 *		On any error the decoder keeps its last debounced
 *		answer, so a transient fault can't masquerade as a
 *		key release and fire a half-held command.
 *
 *--------------------------------------------------------------------*/

func (a *audio_input_s) poll() byte {
	for {
		var readErr = a.stream.Read()

		if !audio_feed_block(&a.dec, a.buf, readErr) {
			break
		}

		var avail, availErr = a.stream.AvailableToRead()
		if availErr != nil || avail < len(a.buf) {
			break
		}
	}

	return dtmf_decoder_current(&a.dec)
}

func audio_feed_block(d *dtmf_decoder_s, block []int16, readErr error) bool {
	if readErr != nil && readErr != portaudio.InputOverflowed {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Audio input error: %s\n", readErr)
		return false
	}

	for _, sam := range block {
		dtmf_decoder_sample(d, float64(sam))
	}

	return true
}

func (a *audio_input_s) close() {
	if a.stream != nil {
		a.stream.Stop()  //nolint:errcheck
		a.stream.Close() //nolint:errcheck
		a.stream = nil
	}
}

/*
 * Transmit side: implements sample_sink for the tone keyer.
 */

type audio_output_s struct {
	stream *portaudio.Stream
	buf    []int16
	n      int
}

func audio_open_output(config *audio_config_s) (*audio_output_s, error) {
	var a = &audio_output_s{}

	a.buf = make([]int16, config.SamplesPerSec/10)

	var stream, err = portaudio.OpenDefaultStream(0, 1, float64(config.SamplesPerSec), len(a.buf), a.buf)
	if err != nil {
		return nil, fmt.Errorf("can't open audio output: %w", err)
	}
	a.stream = stream

	var startErr = a.stream.Start()
	if startErr != nil {
		a.stream.Close() //nolint:errcheck
		return nil, fmt.Errorf("can't start audio output: %w", startErr)
	}

	return a, nil
}

func (a *audio_output_s) put_sample(sam int16) {
	a.buf[a.n] = sam
	a.n++

	if a.n == len(a.buf) {
		var err = a.stream.Write()
		if err != nil {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Audio output error: %s\n", err)
		}
		a.n = 0
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        audio_flush
 *
 * Purpose:    	Push out a partial buffer, padded with silence, so
 *		the tail of a transmission isn't left sitting in
 *		memory while PTT drops.
 *
 *--------------------------------------------------------------------*/

func (a *audio_output_s) audio_flush() {
	if a.n == 0 {
		return
	}

	for i := a.n; i < len(a.buf); i++ {
		a.buf[i] = 0
	}
	a.n = 0

	var err = a.stream.Write()
	if err != nil {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Audio output error: %s\n", err)
	}
}

func (a *audio_output_s) close() {
	if a.stream != nil {
		a.stream.Stop()  //nolint:errcheck
		a.stream.Close() //nolint:errcheck
		a.stream = nil
	}
}
