package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Map accepted touch tone keys to controller actions.
 *
 * Description: Two command entry policies exist behind the same
 *		interface.
 *
 *		The direct policy acts on every digit immediately
 *		through a static keymap.  It is what the original
 *		hardware ran day to day: one button press, one relay
 *		action, no authentication.
 *
 *		The session policy collects a whole
 *		*password*relay*function# sequence before acting,
 *		bounded by the command timeout.  Pick one in the
 *		configuration; the scheduler can't tell them apart.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
)

type tt_interpreter interface {
	/* An accepted key arrived.  May arm or refresh the command deadline. */
	Button(c *controller_s, button byte)

	/* The command session deadline expired. */
	Timeout(c *controller_s)
}

/*-------------------------------------------------------------------
 *
 * Name:        command_execute
 *
 * Purpose:    	Perform one resolved command action.
 *
 *--------------------------------------------------------------------*/

func command_execute(c *controller_s, action key_action_s) {
	switch action.Function {
	case FUNC_OFF:
		relay_deactivate(c, c.relays[action.Relay-1])
	case FUNC_ON:
		relay_activate(c, c.relays[action.Relay-1], false)
	case FUNC_HOLD:
		relay_activate(c, c.relays[action.Relay-1], true)
	case FUNC_VOLTAGE:
		voltage_report(c)
	}
}

/*
 * Echo an unusable key back with a question mark so the operator
 * hears that it arrived but did nothing.
 */

func command_reject(c *controller_s, button byte) {
	event_log_write(c.elog, "reject", string(button))
	c.transmit(string(button) + "?")
}

/* ------------------------------------------------------------------ */
/* Direct policy: every digit is a complete command.                  */
/* ------------------------------------------------------------------ */

type direct_tt_s struct {
	keymap map[byte]key_action_s
}

func direct_tt_init(config *config_s) *direct_tt_s {
	var d = &direct_tt_s{keymap: make(map[byte]key_action_s, len(config.Keymap))}

	for key, action := range config.Keymap {
		d.keymap[key[0]] = action
	}

	return d
}

func (d *direct_tt_s) Button(c *controller_s, button byte) {
	var action, ok = d.keymap[button]
	if !ok {
		command_reject(c, button)
		return
	}

	event_log_write(c.elog, "command", string(button))
	command_execute(c, action)
}

func (d *direct_tt_s) Timeout(c *controller_s) {
	/* Direct policy never opens a session, so nothing can time out. */
}

/* ------------------------------------------------------------------ */
/* Session policy: *password*relay*function#                          */
/* ------------------------------------------------------------------ */

const (
	TTS_IDLE = iota
	TTS_PASSWORD
	TTS_RELAY
	TTS_FUNCTION
)

const MAX_FIELD_LEN = 16

/* What the dial pad means in the function field. */

var session_functions = map[string]string{
	"0": FUNC_OFF,
	"1": FUNC_ON,
	"2": FUNC_HOLD,
	"9": FUNC_VOLTAGE,
}

const MSG_TIMEOUT = "TO" /* announced when a half-entered command expires */

type session_tt_s struct {
	password string

	state    int
	pw_field string
	relay_field string
	fn_field string
}

func session_tt_init(config *config_s) *session_tt_s {
	return &session_tt_s{password: config.Password}
}

func (s *session_tt_s) reset(c *controller_s) {
	s.state = TTS_IDLE
	s.pw_field = ""
	s.relay_field = ""
	s.fn_field = ""
	deadline_disarm(&c.cmd_deadline)
}

func (s *session_tt_s) Button(c *controller_s, button byte) {

	switch button {
	case '*':
		switch s.state {
		case TTS_IDLE:
			s.state = TTS_PASSWORD
		case TTS_PASSWORD:
			s.state = TTS_RELAY
		case TTS_RELAY:
			s.state = TTS_FUNCTION
		default:
			/* A fourth field doesn't exist.  Start over. */
			s.reset(c)
			command_reject(c, button)
			return
		}

	case '#':
		if s.state != TTS_FUNCTION {
			s.reset(c)
			command_reject(c, button)
			return
		}

		s.finish(c)
		return

	default:
		switch s.state {
		case TTS_IDLE:
			/* Sequence must open with '*'. */
			command_reject(c, button)
			return
		case TTS_PASSWORD:
			s.pw_field = session_append(s.pw_field, button)
		case TTS_RELAY:
			s.relay_field = session_append(s.relay_field, button)
		case TTS_FUNCTION:
			s.fn_field = session_append(s.fn_field, button)
		}
	}

	/* Session open: every key restarts the timeout clock. */
	deadline_arm(&c.cmd_deadline, c.now(), uint32(c.config.CmdTimeoutMs))
}

func session_append(field string, button byte) string {
	if len(field) >= MAX_FIELD_LEN {
		return field
	}

	return field + string(button)
}

/*-------------------------------------------------------------------
 *
 * Name:        finish
 *
 * Purpose:    	A complete sequence arrived.  Check and act on it.
 *
 * Description:	Bad password, unknown relay, and unknown function all
 *		get the reject sound rather than partial execution.
 *
 *--------------------------------------------------------------------*/

func (s *session_tt_s) finish(c *controller_s) {
	var pw = s.pw_field
	var relay_field = s.relay_field
	var fn_field = s.fn_field

	s.reset(c)

	if pw != s.password {
		event_log_write(c.elog, "reject", "bad password")
		c.transmit("?")
		return
	}

	var function, fn_ok = session_functions[fn_field]
	if !fn_ok {
		command_reject(c, '#')
		return
	}

	var action = key_action_s{Function: function}

	if function != FUNC_VOLTAGE {
		var relay_num, parseErr = strconv.Atoi(relay_field)
		if parseErr != nil || relay_num < 1 || relay_num > len(c.relays) {
			command_reject(c, '#')
			return
		}
		action.Relay = relay_num
	}

	event_log_write(c.elog, "command", fmt.Sprintf("relay %s function %s", relay_field, fn_field))
	command_execute(c, action)
}

func (s *session_tt_s) Timeout(c *controller_s) {
	s.reset(c)

	event_log_write(c.elog, "timeout", "command session")
	c.transmit(MSG_TIMEOUT)
}

/*-------------------------------------------------------------------
 *
 * Name:        interpreter_init
 *
 * Purpose:    	Build whichever policy the configuration selects.
 *
 *--------------------------------------------------------------------*/

func interpreter_init(config *config_s) tt_interpreter { //nolint:ireturn
	if config.Interpreter == "session" {
		return session_tt_init(config)
	}

	return direct_tt_init(config)
}
