package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Turn "currently hearing digit X" into discrete
 *		accepted-key events.
 *
 * Description: The decoder reports what it hears right now, every
 *		poll.  A key is accepted only on the press-then-release
 *		edge: latch the symbol when tone appears, fire once
 *		when it goes away.  A tone held across many polls
 *		fires exactly once, and a single-poll glitch that
 *		never shows a release can't fire at all until silence
 *		returns.
 *
 *---------------------------------------------------------------*/

type keypad_s struct {
	pending  byte /* Latched symbol. */
	awaiting bool /* Waiting for the tone to end. */
}

/*-------------------------------------------------------------------
 *
 * Name:        keypad_update
 *
 * Purpose:    	Advance the edge detector by one poll.
 *
 * Inputs:	k	- Detector state.
 *		sym	- Symbol currently heard, 0 for silence.
 *
 * Returns:	Accepted key and true, exactly once per
 *		press-then-release cycle.
 *
 *--------------------------------------------------------------------*/

func keypad_update(k *keypad_s, sym byte) (byte, bool) {

	if !k.awaiting {
		if sym != 0 {
			k.pending = sym
			k.awaiting = true
		}
		return 0, false
	}

	if sym != 0 {
		/* Still held.  Nothing to report. */
		return 0, false
	}

	k.awaiting = false

	return k.pending, true
}
