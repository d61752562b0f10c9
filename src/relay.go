package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Power relay state and actuation.
 *
 * Description: Each relay has an output line, a configured active
 *		level, and an on/off state.  A relay switched on
 *		without hold gets an auto-off deadline; a held relay
 *		stays on until an explicit off command.  Every state
 *		change is acknowledged over the air in Morse so the
 *		operator on the far end knows it took.
 *
 *		The scheduler is single threaded, so no two relay
 *		operations ever overlap and the acknowledgments go
 *		out strictly one after another.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

type relay_s struct {
	num  int /* 1-based, as spoken in acknowledgments. */
	name string

	line       gpiodOutputLine /* nil when running without hardware */
	active_low bool

	is_on bool
	hold  bool /* on until explicit off; auto-off deadline not meaningful */

	on_ms        uint32
	off_deadline deadline_s
}

/*-------------------------------------------------------------------
 *
 * Name:        relay_init
 *
 * Purpose:    	Build one relay from its configuration.
 *
 * Inputs:	config	- Relay section of the configuration.
 *		num	- 1-based relay number.
 *		line	- Output line, already requested.  nil for a
 *			  relay with no hardware attached (tests,
 *			  dry runs).
 *
 *--------------------------------------------------------------------*/

func relay_init(config *relay_config_s, num int, line gpiodOutputLine) *relay_s {
	var r = &relay_s{
		num:        num,
		name:       config.Name,
		line:       line,
		active_low: config.ActiveLow,
		on_ms:      uint32(config.OnMs),
	}

	relay_set_output(r)

	return r
}

/*-------------------------------------------------------------------
 *
 * Name:        relay_request_lines
 *
 * Purpose:    	Request the GPIO output line for every configured
 *		relay and build the relay table.
 *
 *--------------------------------------------------------------------*/

func relay_request_lines(config *config_s) ([]*relay_s, error) {
	var relays []*relay_s

	for i := range config.Relays {
		var rc = &config.Relays[i]

		var initial = IfThenElse(rc.ActiveLow, 1, 0) /* inactive level */

		var line, err = gpiocdev.RequestLine(config.GpioChip, rc.Line, gpiocdev.AsOutput(initial))
		if err != nil {
			for _, r := range relays {
				relay_term(r)
			}
			return nil, fmt.Errorf("can't request relay line %d on %s: %w", rc.Line, config.GpioChip, err)
		}

		relays = append(relays, relay_init(rc, i+1, line))
	}

	return relays, nil
}

func relay_set_output(r *relay_s) {
	if r.line == nil {
		return
	}

	var level = r.is_on
	if r.active_low {
		level = !level
	}

	var err = r.line.SetValue(IfThenElse(level, 1, 0))
	if err != nil {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Error driving relay %d (%s): %s\n", r.num, r.name, err)
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        relay_activate
 *
 * Purpose:    	Switch a relay on.
 *
 * Inputs:	c	- Controller state.
 *		r	- Relay to switch.
 *		hold	- true: stay on until explicit off.
 *			  false: arm the auto-off deadline.
 *
 * Description:	The acknowledgment messages differ so the operator
 *		can hear whether the relay will drop on its own.
 *
 *--------------------------------------------------------------------*/

func relay_activate(c *controller_s, r *relay_s, hold bool) {
	r.is_on = true
	r.hold = hold
	relay_set_output(r)

	if hold {
		deadline_disarm(&r.off_deadline)
		event_log_write(c.elog, "relay", fmt.Sprintf("%d %s hold on", r.num, r.name))
		c.transmit(fmt.Sprintf("%d HOLD", r.num))
	} else {
		deadline_arm(&r.off_deadline, c.now(), r.on_ms)
		event_log_write(c.elog, "relay", fmt.Sprintf("%d %s on", r.num, r.name))
		c.transmit(fmt.Sprintf("%d ON", r.num))
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        relay_deactivate
 *
 * Purpose:    	Switch a relay off, whether held, timed, or already off.
 *
 *--------------------------------------------------------------------*/

func relay_deactivate(c *controller_s, r *relay_s) {
	r.is_on = false
	r.hold = false
	deadline_disarm(&r.off_deadline)
	relay_set_output(r)

	event_log_write(c.elog, "relay", fmt.Sprintf("%d %s off", r.num, r.name))
	c.transmit(fmt.Sprintf("%d OFF", r.num))
}

func relay_term(r *relay_s) {
	r.is_on = false
	r.hold = false
	relay_set_output(r)

	if r.line != nil {
		r.line.Close() //nolint:errcheck
		r.line = nil
	}
}
