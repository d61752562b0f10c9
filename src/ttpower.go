package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Touch tone remote power controller.
 *
 *		Listens to a radio receiver's audio for DTMF digit
 *		commands, switches power relays accordingly, and
 *		acknowledges over the air with Morse code status
 *		messages keyed through the transmitter PTT line.
 *
 *---------------------------------------------------------------*/

const MAJOR_VERSION = 1
const MINOR_VERSION = 0

/* Audio defaults.  8000 samples/sec is plenty for tone work. */

const DEFAULT_SAMPLES_PER_SEC = 8000

const DEFAULT_AMPLITUDE = 100 /* % of audio sample range. */
