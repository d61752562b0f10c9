package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	The cooperative event scheduler.
 *
 * Description: Single threaded, non-preemptive, run to completion
 *		per tick.  Every iteration makes the same ordered
 *		checks:
 *
 *		1. DTMF poll deadline: sample the decoder, run the
 *		   key edge detector, hand accepted keys to the
 *		   command interpreter.
 *		2. Command session timeout.
 *		3. Station ID deadline.
 *		4. Per-relay auto-off deadlines.
 *		5. Idle until roughly the next timer tick.
 *
 *		Rearming always uses the tick's current now rather
 *		than the expired deadline, so drift can accumulate
 *		across missed ticks.  Nothing here cares about a few
 *		milliseconds; simplicity wins.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
)

func scheduler_tick(c *controller_s) {
	var now = c.now()

	/*
	 * 1. Poll the tone decoder.
	 */

	if deadline_due(&c.poll_deadline, now) {
		var sym = c.input.poll()

		if key, ok := keypad_update(&c.keypad, sym); ok {
			c.interp.Button(c, key)
		}

		deadline_arm(&c.poll_deadline, now, uint32(c.config.DtmfPollMs))
	}

	/*
	 * 2. Command session timeout.
	 */

	if deadline_due(&c.cmd_deadline, now) {
		deadline_disarm(&c.cmd_deadline)
		c.interp.Timeout(c)
	}

	/*
	 * 3. Station identification.  The deadline is rearmed whether or
	 * not an ID goes out, so skipped IDs never shift the cadence.
	 */

	if deadline_due(&c.id_deadline, now) {
		if ident_check(&c.ident) {
			event_log_write(c.elog, "id", c.config.Callsign)
			c.transmit(fmt.Sprintf("DE %s", c.config.Callsign))
			ident_clear(&c.ident)
		}

		deadline_arm(&c.id_deadline, now, uint32(c.config.IdPeriodMs))
	}

	/*
	 * 4. Relay auto-off.  Held relays have no deadline to come due.
	 */

	for _, r := range c.relays {
		if r.is_on && !r.hold && deadline_due(&r.off_deadline, now) {
			relay_deactivate(c, r)
		}
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        scheduler_run
 *
 * Purpose:    	Tick until asked to stop.
 *
 * Description:	The idle wait between ticks is the low power pause;
 *		1 ms keeps us well inside the shortest poll period.
 *
 *--------------------------------------------------------------------*/

func scheduler_run(c *controller_s) {
	for !c.stop.Load() {
		scheduler_tick(c)
		c.idle(1)
	}
}

/* Safe to call from another goroutine, e.g. a signal handler. */

func scheduler_stop(c *controller_s) {
	c.stop.Store(true)
}
