package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Activate the transmitter push to talk (PTT) line.
 *
 * Description:	Two wiring styles are supported:
 *
 *		  - A GPIO line through the character device interface
 *		    (gpiochipN), the usual choice on a Raspberry Pi
 *		    class board sitting at the transmitter site.
 *
 *		  - The RTS or DTR signal of a serial port, the
 *		    traditional rig interface cable arrangement.
 *
 *		Every PTT assertion also notifies the station ID
 *		bookkeeping, because any keying of the transmitter
 *		obliges us to identify within the ID interval.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/pkg/term"
	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

const (
	PTT_METHOD_NONE = iota
	PTT_METHOD_GPIOD
	PTT_METHOD_SERIAL
)

const (
	PTT_LINE_RTS = iota
	PTT_LINE_DTR
)

func _TIOCM(fd int, value int, on bool) {
	var stuff, _ = unix.IoctlGetInt(fd, unix.TIOCMGET)
	if on {
		stuff |= value
	} else {
		stuff &= ^value
	}
	unix.IoctlSetInt(fd, unix.TIOCMSET, stuff) //nolint:errcheck
}

func RTS_SET(fd uintptr, on bool) {
	_TIOCM(int(fd), unix.TIOCM_RTS, on)
}

func DTR_SET(fd uintptr, on bool) {
	_TIOCM(int(fd), unix.TIOCM_DTR, on)
}

// gpiodOutputLine is the part of gpiocdev.Line we use, separated out
// so tests can substitute a recording double for real GPIO hardware.
type gpiodOutputLine interface {
	SetValue(value int) error
	Close() error
}

type ptt_s struct {
	method int
	invert bool

	line gpiodOutputLine /* PTT_METHOD_GPIOD */

	fd          *term.Term /* PTT_METHOD_SERIAL */
	serial_line int        /* PTT_LINE_RTS or PTT_LINE_DTR */

	ident *ident_s /* notified on every assert; may be nil in tests */

	is_on bool
}

var ptt_debug_level = 0

func ptt_set_debug(debug int) {
	ptt_debug_level = debug
}

/*-------------------------------------------------------------------
 *
 * Name:        ptt_init
 *
 * Purpose:    	Open whatever the configuration says PTT is wired to.
 *
 * Inputs:	config	- PTT section of the configuration.
 *		ident	- Station ID bookkeeping to notify on keying.
 *
 * Returns:	Ready to use PTT control, or an error if the GPIO
 *		line or serial port can't be opened.
 *
 *--------------------------------------------------------------------*/

func ptt_init(config *ptt_config_s, ident *ident_s) (*ptt_s, error) {
	var p = &ptt_s{invert: config.Invert, ident: ident}

	switch config.Method {
	case "none":
		p.method = PTT_METHOD_NONE

	case "gpiod":
		p.method = PTT_METHOD_GPIOD

		var line, err = gpiocdev.RequestLine(config.Chip, config.Line,
			gpiocdev.AsOutput(IfThenElse(config.Invert, 1, 0)))
		if err != nil {
			return nil, fmt.Errorf("can't request PTT line %d on %s: %w", config.Line, config.Chip, err)
		}
		p.line = line

	case "serial":
		p.method = PTT_METHOD_SERIAL
		p.serial_line = IfThenElse(config.SerialLine == "dtr", PTT_LINE_DTR, PTT_LINE_RTS)

		var fd, err = term.Open(config.SerialDevice, term.RawMode)
		if err != nil {
			return nil, fmt.Errorf("can't open serial port %s for PTT: %w", config.SerialDevice, err)
		}
		p.fd = fd

	default:
		return nil, fmt.Errorf("unknown PTT method %q", config.Method)
	}

	/* Make sure we start in the quiet state. */
	ptt_set(p, false)

	return p, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        ptt_set
 *
 * Purpose:    	Key or unkey the transmitter.
 *
 * Inputs:	p		- PTT control.
 *		ptt_signal	- true for transmit.
 *
 * Description:	More positive output corresponds to transmit unless
 *		invert is set.
 *
 *--------------------------------------------------------------------*/

func ptt_set(p *ptt_s, ptt_signal bool) {

	if ptt_debug_level >= 1 {
		text_color_set(DW_COLOR_DEBUG)
		dw_printf("PTT %s\n", IfThenElse(ptt_signal, "on", "off"))
	}

	p.is_on = ptt_signal

	if ptt_signal && p.ident != nil {
		ident_transmitted(p.ident)
	}

	var level = ptt_signal
	if p.invert {
		level = !level
	}

	switch p.method {
	case PTT_METHOD_GPIOD:
		if p.line == nil {
			return
		}

		var err = p.line.SetValue(IfThenElse(level, 1, 0))
		if err != nil {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Error setting PTT GPIO line: %s\n", err)
		}

	case PTT_METHOD_SERIAL:
		if p.fd == nil {
			return
		}

		if p.serial_line == PTT_LINE_DTR {
			p.fd.SetDTR(level) //nolint:errcheck
		} else {
			p.fd.SetRTS(level) //nolint:errcheck
		}
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        ptt_term
 *
 * Purpose:    	Drop PTT and release the control line.
 *
 *--------------------------------------------------------------------*/

func ptt_term(p *ptt_s) {
	ptt_set(p, false)

	if p.line != nil {
		p.line.Close() //nolint:errcheck
		p.line = nil
	}

	if p.fd != nil {
		p.fd.Close() //nolint:errcheck
		p.fd = nil
	}
}
