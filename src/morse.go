package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Render status text as Morse code tone pulses.
 *
 * Description: A character table maps printable characters to packed
 *		codes: up to 8 elements per character, 4 elements per
 *		packing unit, 2 units per character, each element 2
 *		bits.  Rendering walks the packed elements and emits
 *		timed tone/silence pulses.
 *
 *		Characters missing from the table produce no tone but
 *		keep their inter-character spacing, so unsendable
 *		input degrades to rhythm rather than garbage.
 *
 *---------------------------------------------------------------*/

import (
	"unicode"
)

/* The four element types, 2 bits each. */

const (
	CW_EL_FILL = 0b00 /* end of pattern padding */
	CW_EL_DOT  = 0b01
	CW_EL_DASH = 0b10
	CW_EL_GAP  = 0b11 /* word gap */
)

/*
 * Element timing in milliseconds before speed scaling.
 * The effective duration is the constant divided by the
 * configured integer speed divisor (>= 1, default 2).
 *
 * These are not the classic 1:3 weighting; they match the
 * original hardware build, which keyed a slightly heavy fist.
 */

const (
	CW_DASH_ON  = 385
	CW_DASH_OFF = 90
	CW_DOT_ON   = 125
	CW_DOT_OFF  = 100
	CW_WORD_GAP = 850
	CW_CHAR_GAP = 165
)

/* The reserved gap-only marker.  Renders as a word gap, nothing else. */

const CW_GAP_MARKER = '_'

type cw_code_s struct {
	ch  byte
	pat [2]byte /* 4 elements per unit, first element in the top bits. */
}

/*
 * Source form of the character table.  Packed at init.
 */

type cw_char_s struct {
	ch  byte
	enc string
}

var cw_chars = []cw_char_s{
	{'A', ".-"},
	{'B', "-..."},
	{'C', "-.-."},
	{'D', "-.."},
	{'E', "."},
	{'F', "..-."},
	{'G', "--."},
	{'H', "...."},
	{'I', ".."},
	{'J', ".---"},
	{'K', "-.-"},
	{'L', ".-.."},
	{'M', "--"},
	{'N', "-."},
	{'O', "---"},
	{'P', ".--."},
	{'Q', "--.-"},
	{'R', ".-."},
	{'S', "..."},
	{'T', "-"},
	{'U', "..-"},
	{'V', "...-"},
	{'W', ".--"},
	{'X', "-..-"},
	{'Y', "-.--"},
	{'Z', "--.."},
	{'1', ".----"},
	{'2', "..---"},
	{'3', "...--"},
	{'4', "....-"},
	{'5', "....."},
	{'6', "-...."},
	{'7', "--..."},
	{'8', "---.."},
	{'9', "----."},
	{'0', "-----"},
	{'.', ".-.-.-"},
	{',', "--..--"},
	{'?', "..--.."},
	{'/', "-..-."},
	{'=', "-...-"}, /* from ARRL */
	{'-', "-....-"},
}

var cw_table map[byte]cw_code_s

func init() {
	cw_table = make(map[byte]cw_code_s, len(cw_chars)+1)

	for _, c := range cw_chars {
		cw_table[c.ch] = cw_pack(c.ch, c.enc)
	}

	/* Gap marker is a bare word-gap element. */
	cw_table[CW_GAP_MARKER] = cw_code_s{ch: CW_GAP_MARKER, pat: [2]byte{CW_EL_GAP << 6, 0}}
}

/*-------------------------------------------------------------------
 *
 * Name:        cw_pack
 *
 * Purpose:    	Pack a dot/dash string into the 2-bit element form.
 *
 *--------------------------------------------------------------------*/

func cw_pack(ch byte, enc string) cw_code_s {
	Assert(len(enc) >= 1 && len(enc) <= 8)

	var code = cw_code_s{ch: ch}

	for i, e := range enc {
		var el byte
		switch e {
		case '.':
			el = CW_EL_DOT
		case '-':
			el = CW_EL_DASH
		default:
			Assert(false)
		}

		code.pat[i/4] |= el << ((3 - i%4) * 2)
	}

	return code
}

/*-------------------------------------------------------------------
 *
 * Name:        cw_lookup
 *
 * Purpose:    	Find the packed code for a character.
 *
 * Returns:	Code and true, or false if the character is not
 *		sendable.  Lower case folds to upper.  Space is not
 *		in the table; callers treat it as a word gap.
 *
 *--------------------------------------------------------------------*/

func cw_lookup(ch byte) (cw_code_s, bool) {
	if unicode.IsLower(rune(ch)) {
		ch = byte(unicode.ToUpper(rune(ch)))
	}

	var code, ok = cw_table[ch]

	return code, ok
}

/*
 * One timed keying action.
 */

type cw_pulse_s struct {
	tone bool
	ms   int
}

/*-------------------------------------------------------------------
 *
 * Name:        cw_render
 *
 * Purpose:    	Turn a message into the exact sequence of timed
 *		tone/silence pulses.
 *
 * Inputs:	msg	- Text to render.
 *		divisor	- Integer speed divisor, >= 1.
 *
 * Description:	Separated from the transmit path so the pulse train
 *		can be tested without hardware and is guaranteed
 *		deterministic for a given message.
 *
 *--------------------------------------------------------------------*/

func cw_render(msg string, divisor int) []cw_pulse_s {
	Assert(divisor >= 1)

	var pulses []cw_pulse_s

	for i := 0; i < len(msg); i++ {
		var ch = msg[i]

		if ch == ' ' {
			/* Word gap only, no tone, no extra character spacing. */
			pulses = append(pulses, cw_pulse_s{false, CW_WORD_GAP / divisor})
			continue
		}

		var code, ok = cw_lookup(ch)
		if ok {
			pulses = append(pulses, cw_render_char(code, divisor)...)
		}
		/* Unknown characters keep their spacing but make no sound. */

		if i != len(msg)-1 && ch != CW_GAP_MARKER {
			pulses = append(pulses, cw_pulse_s{false, CW_CHAR_GAP / divisor})
		}
	}

	return pulses
}

func cw_render_char(code cw_code_s, divisor int) []cw_pulse_s {
	var pulses []cw_pulse_s

	for i := 0; i < 8; i++ {
		var el = (code.pat[i/4] >> ((3 - i%4) * 2)) & 0b11

		switch el {
		case CW_EL_FILL:
			return pulses
		case CW_EL_DOT:
			pulses = append(pulses,
				cw_pulse_s{true, CW_DOT_ON / divisor},
				cw_pulse_s{false, CW_DOT_OFF / divisor})
		case CW_EL_DASH:
			pulses = append(pulses,
				cw_pulse_s{true, CW_DASH_ON / divisor},
				cw_pulse_s{false, CW_DASH_OFF / divisor})
		case CW_EL_GAP:
			pulses = append(pulses, cw_pulse_s{false, CW_WORD_GAP / divisor})
		}
	}

	return pulses
}

/*
 * What the Morse sender needs from the tone hardware.
 */

type cw_keyer interface {
	tone_start()
	tone_stop()
	hold_ms(ms int)
	flush() /* drain buffered audio before PTT drops */
}

type cw_sender_s struct {
	keyer     cw_keyer
	ptt       *ptt_s
	divisor   int
	prefix    byte /* 0 for none */
	settle_ms int
}

func cw_sender_init(s *cw_sender_s, keyer cw_keyer, ptt *ptt_s, config *config_s) {
	s.keyer = keyer
	s.ptt = ptt
	s.divisor = config.SpeedDivisor
	s.settle_ms = config.Ptt.SettleMs

	if config.Prefix != "" {
		s.prefix = config.Prefix[0]
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        cw_send
 *
 * Purpose:    	Transmit a status message.
 *
 * Inputs:	s	- Sender.
 *		msg	- Text to send.
 *
 * Returns:	Total number of milliseconds PTT was held.
 *
 * Description:	Assert PTT, hold the settle time so the transmitter
 *		is fully up before the first tone, send the optional
 *		station prefix and the message, hold the settle time
 *		again so the last element isn't chopped, drop PTT.
 *
 *		This blocks until the whole message has gone out.
 *		Nothing else needs to run meanwhile and an in-progress
 *		transmission cannot be cancelled.
 *
 *--------------------------------------------------------------------*/

func cw_send(s *cw_sender_s, msg string) int {

	var full = msg
	if s.prefix != 0 && msg != "" {
		full = string(s.prefix) + " " + msg
	}

	var total = 0

	ptt_set(s.ptt, true)

	s.keyer.tone_stop()
	s.keyer.hold_ms(s.settle_ms)
	total += s.settle_ms

	for _, p := range cw_render(full, s.divisor) {
		if p.tone {
			s.keyer.tone_start()
		} else {
			s.keyer.tone_stop()
		}
		s.keyer.hold_ms(p.ms)
		total += p.ms
	}

	s.keyer.tone_stop()
	s.keyer.hold_ms(s.settle_ms)
	total += s.settle_ms

	s.keyer.flush()
	ptt_set(s.ptt, false)

	return total
}
