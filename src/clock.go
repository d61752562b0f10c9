package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Monotonic millisecond clock and deadline bookkeeping.
 *
 * Description:	All scheduling in the controller is done against a
 *		free-running 32 bit millisecond counter.  It wraps
 *		around after about 49.7 days of uptime, so due-ness
 *		must never be tested with a direct unsigned compare.
 *		Taking the signed difference of the two unsigned
 *		values gives the right answer as long as the deadline
 *		is within ± half the counter range of "now", which is
 *		over three weeks - vastly more than any period we arm.
 *
 *---------------------------------------------------------------*/

import (
	"time"
)

var monotonic_epoch = time.Now()

/*-------------------------------------------------------------------
 *
 * Name:        now_ms
 *
 * Purpose:    	Current monotonic time as a wrapping millisecond counter.
 *
 * Description:	time.Since uses the runtime's monotonic reading so this
 *		is immune to wall clock steps.  The truncation to uint32
 *		is deliberate.
 *
 *--------------------------------------------------------------------*/

func now_ms() uint32 {
	return uint32(time.Since(monotonic_epoch).Milliseconds())
}

/*
 * One scheduled check.  due is meaningless unless armed is set.
 */

type deadline_s struct {
	due   uint32
	armed bool
}

func deadline_arm(d *deadline_s, now uint32, period_ms uint32) {
	d.due = now + period_ms
	d.armed = true
}

func deadline_disarm(d *deadline_s) {
	d.armed = false
}

/*-------------------------------------------------------------------
 *
 * Name:        deadline_due
 *
 * Purpose:    	Has an armed deadline passed?
 *
 * Description:	Signed difference of the unsigned counter values.
 *		Works across counter wraparound; a direct unsigned
 *		comparison does not.
 *
 *--------------------------------------------------------------------*/

func deadline_due(d *deadline_s, now uint32) bool {
	if !d.armed {
		return false
	}

	return int32(d.due-now) < 0
}
