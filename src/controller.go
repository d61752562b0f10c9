package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	The controller state aggregate.
 *
 * Description: One instance per physical device.  All mutable state
 *		- relay table, deadlines, pending key, ID flag -
 *		lives here and is touched only from the scheduler
 *		loop, so no locking anywhere.
 *
 *		The clock, the idle wait, the tone input, and the
 *		transmit path are all injectable.  Production wires
 *		them to the real soundcard and GPIO; tests wire them
 *		to scripts and capture buffers and run years of
 *		simulated uptime in microseconds.
 *
 *---------------------------------------------------------------*/

import (
	"sync/atomic"
)

/*
 * What the scheduler needs from the tone decoder side:
 * "what button, if any, is being heard right now?"
 * 0 means silence.
 */

type tone_input interface {
	poll() byte
}

type controller_s struct {
	config *config_s

	now  func() uint32 /* monotonic milliseconds */
	idle func(ms int)  /* wait between ticks */

	input  tone_input
	interp tt_interpreter

	/* Acknowledgment / status transmit path.  Normally Morse over PTT. */
	transmit func(msg string)

	cw  *cw_sender_s
	ptt *ptt_s

	relays []*relay_s
	keypad keypad_s
	ident  ident_s
	elog   *event_log_s

	audio_out *audio_output_s /* only when wired to a real soundcard */

	poll_deadline deadline_s
	cmd_deadline  deadline_s
	id_deadline   deadline_s

	/* Written from the signal handler goroutine, read by the loop. */
	stop atomic.Bool
}

/*-------------------------------------------------------------------
 *
 * Name:        controller_init
 *
 * Purpose:    	Assemble a controller from its collaborators.
 *
 * Inputs:	config	- Validated configuration.
 *		input	- Tone decoder adapter.
 *		keyer	- CW tone generator, or nil for silent dry runs.
 *		ptt	- Transmitter control, or nil.
 *		relays	- Relay table, 1-based numbering already set.
 *
 * Description:	Arms the DTMF poll and station ID deadlines so the
 *		first tick behaves like every later one.  The command
 *		deadline stays disarmed until an interpreter opens a
 *		session.
 *
 *--------------------------------------------------------------------*/

func controller_init(config *config_s, input tone_input, keyer cw_keyer, ptt *ptt_s, relays []*relay_s) *controller_s {
	var c = &controller_s{
		config: config,
		now:    now_ms,
		idle:   SLEEP_MS,
		input:  input,
		interp: interpreter_init(config),
		ptt:    ptt,
		relays: relays,
		elog:   event_log_init(&config.Log),
	}

	if ptt != nil {
		ptt.ident = &c.ident
	}

	if keyer != nil && ptt != nil {
		c.cw = &cw_sender_s{}
		cw_sender_init(c.cw, keyer, ptt, config)
		c.transmit = func(msg string) {
			text_color_set(DW_COLOR_XMIT)
			dw_printf("[CW] %s\n", msg)
			cw_send(c.cw, msg)
		}
	} else {
		c.transmit = func(msg string) {
			text_color_set(DW_COLOR_XMIT)
			dw_printf("[CW] %s\n", msg)
		}
	}

	var now = c.now()
	deadline_arm(&c.poll_deadline, now, uint32(config.DtmfPollMs))
	deadline_arm(&c.id_deadline, now, uint32(config.IdPeriodMs))

	return c
}

func controller_term(c *controller_s) {
	for _, r := range c.relays {
		relay_term(r)
	}

	if c.ptt != nil {
		ptt_term(c.ptt)
	}

	event_log_term(c.elog)
}
