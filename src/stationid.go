package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Periodic station identification.
 *
 * Description: Part 97 says identify if you've transmitted.  We keep
 *		a flag that is set whenever PTT is asserted for any
 *		reason.  At each ID deadline the flag decides whether
 *		an ID actually goes out; the deadline itself is
 *		rearmed every time so skipped IDs never shift the
 *		check cadence.
 *
 *---------------------------------------------------------------*/

type ident_s struct {
	transmitted bool /* Any PTT activity since the last check? */
}

func ident_transmitted(id *ident_s) {
	id.transmitted = true
}

/*-------------------------------------------------------------------
 *
 * Name:        ident_check
 *
 * Purpose:    	Called at each station-ID deadline.
 *
 * Returns:	true if an identification should be transmitted now.
 *
 * Description:	The caller clears the flag with ident_clear AFTER the
 *		ID transmission.  The ID itself keys the transmitter
 *		and would otherwise re-set the flag, committing us to
 *		identify forever.
 *
 *--------------------------------------------------------------------*/

func ident_check(id *ident_s) bool {
	return id.transmitted
}

func ident_clear(id *ident_s) {
	id.transmitted = false
}
