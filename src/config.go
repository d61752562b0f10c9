package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Read the controller configuration file.
 *
 * Description: Everything adjustable lives in one YAML file:
 *		station identity, CW speed, PTT wiring, the relay
 *		table, the digit keymap, and the various periods.
 *		Anything not specified falls back to a default that
 *		matches the original hardware build.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const MAX_RELAYS = 8

/* Relay functions selectable from the keymap. */

const (
	FUNC_OFF     = "off"     /* immediate off */
	FUNC_ON      = "on"      /* on, auto-off after on_ms */
	FUNC_HOLD    = "hold"    /* on until explicit off */
	FUNC_VOLTAGE = "voltage" /* report supply voltage, no relay */
)

type relay_config_s struct {
	Name      string `yaml:"name"`
	Line      int    `yaml:"line"`       /* GPIO line offset on the chip. */
	ActiveLow bool   `yaml:"active_low"` /* Relay board pulls to activate. */
	OnMs      int    `yaml:"on_ms"`     /* Auto-off period for FUNC_ON. */
}

type key_action_s struct {
	Relay    int    `yaml:"relay"` /* 1-based, 0 for non-relay functions. */
	Function string `yaml:"function"`
}

type ptt_config_s struct {
	Method       string `yaml:"method"`        /* none, gpiod, serial */
	Chip         string `yaml:"chip"`          /* gpiod */
	Line         int    `yaml:"line"`          /* gpiod */
	Invert       bool   `yaml:"invert"`
	SerialDevice string `yaml:"serial_device"` /* serial */
	SerialLine   string `yaml:"serial_line"`   /* rts or dtr */
	SettleMs     int    `yaml:"settle_ms"`     /* PTT to first tone and last tone to drop. */
}

type audio_config_s struct {
	SamplesPerSec int `yaml:"sample_rate"`
	Amplitude     int `yaml:"amplitude"` /* 0 .. 100 */
}

type voltage_config_s struct {
	Path  string  `yaml:"path"`  /* sysfs file with millivolts, e.g. hwmon inN_input */
	Scale float64 `yaml:"scale"` /* external divider ratio */
}

type log_config_s struct {
	Path  string `yaml:"path"`
	Daily bool   `yaml:"daily"` /* path is a directory; daily file names inside it */
}

type config_s struct {
	Callsign       string `yaml:"callsign"`
	Prefix         string `yaml:"prefix"` /* single char sent before each status message */
	SpeedDivisor   int    `yaml:"cw_speed_divisor"`
	DtmfPollMs     int    `yaml:"dtmf_poll_ms"`
	IdPeriodMs     int    `yaml:"id_period_ms"`
	CmdTimeoutMs   int    `yaml:"command_timeout_ms"`
	Interpreter    string `yaml:"interpreter"` /* direct or session */
	Password       string `yaml:"password"`    /* session interpreter only */
	GpioChip       string `yaml:"gpio_chip"`

	Ptt     ptt_config_s            `yaml:"ptt"`
	Audio   audio_config_s          `yaml:"audio"`
	Relays  []relay_config_s        `yaml:"relays"`
	Keymap  map[string]key_action_s `yaml:"keymap"`
	Voltage voltage_config_s        `yaml:"voltage"`
	Log     log_config_s            `yaml:"log"`
}

/*-------------------------------------------------------------------
 *
 * Name:        config_defaults
 *
 * Purpose:    	Configuration matching the original two relay build.
 *
 *		Key 1/2/3 work relay 1 (off / timed on / hold on),
 *		key 4/5/6 work relay 2, key 0 reports supply voltage.
 *
 *--------------------------------------------------------------------*/

func config_defaults() *config_s {
	return &config_s{
		Callsign:     "N0CALL",
		Prefix:       "R",
		SpeedDivisor: 2,
		DtmfPollMs:   40,
		IdPeriodMs:   10 * 60 * 1000,
		CmdTimeoutMs: 30 * 1000,
		Interpreter:  "direct",
		GpioChip:     "gpiochip0",
		Ptt: ptt_config_s{
			Method:   "none",
			Chip:     "gpiochip0",
			SettleMs: 300,
		},
		Audio: audio_config_s{
			SamplesPerSec: DEFAULT_SAMPLES_PER_SEC,
			Amplitude:     DEFAULT_AMPLITUDE,
		},
		Relays: []relay_config_s{
			{Name: "RIG", Line: 17, OnMs: 5 * 60 * 1000},
			{Name: "AMP", Line: 27, OnMs: 5 * 60 * 1000},
		},
		Keymap: map[string]key_action_s{
			"1": {Relay: 1, Function: FUNC_OFF},
			"2": {Relay: 1, Function: FUNC_ON},
			"3": {Relay: 1, Function: FUNC_HOLD},
			"4": {Relay: 2, Function: FUNC_OFF},
			"5": {Relay: 2, Function: FUNC_ON},
			"6": {Relay: 2, Function: FUNC_HOLD},
			"0": {Function: FUNC_VOLTAGE},
		},
		Voltage: voltage_config_s{Scale: 11.0},
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        config_read
 *
 * Purpose:    	Load configuration from a YAML file over the defaults.
 *
 * Inputs:	fname	- Path to configuration file.
 *			  Empty string means defaults only.
 *
 * Returns:	Validated configuration or an error.
 *
 *--------------------------------------------------------------------*/

func config_read(fname string) (*config_s, error) {
	var config = config_defaults()

	if fname != "" {
		var raw, readErr = os.ReadFile(fname) //nolint:gosec // User-supplied config path from CLI
		if readErr != nil {
			return nil, fmt.Errorf("can't read config file: %w", readErr)
		}

		/*
		 * Unmarshalling over a populated map MERGES instead of
		 * replacing, and the digit keymap is a command surface:
		 * leftover default bindings would let keys the operator
		 * believes unmapped work relays.  A keymap in the file
		 * replaces the default map entirely.
		 */

		var shadow struct {
			Keymap map[string]key_action_s `yaml:"keymap"`
		}
		if yaml.Unmarshal(raw, &shadow) == nil && shadow.Keymap != nil {
			config.Keymap = nil
		}

		var unmarshalErr = yaml.Unmarshal(raw, config)
		if unmarshalErr != nil {
			return nil, fmt.Errorf("can't parse config file %s: %w", fname, unmarshalErr)
		}
	}

	var validateErr = config_validate(config)
	if validateErr != nil {
		return nil, validateErr
	}

	return config, nil
}

func config_validate(config *config_s) error {
	if config.SpeedDivisor < 1 {
		return fmt.Errorf("cw_speed_divisor must be at least 1, got %d", config.SpeedDivisor)
	}

	if config.DtmfPollMs < 1 {
		return fmt.Errorf("dtmf_poll_ms must be positive, got %d", config.DtmfPollMs)
	}

	if config.IdPeriodMs < 1 || config.CmdTimeoutMs < 1 {
		return fmt.Errorf("id_period_ms and command_timeout_ms must be positive")
	}

	if len(config.Prefix) > 1 {
		return fmt.Errorf("prefix must be a single character, got %q", config.Prefix)
	}

	if len(config.Relays) == 0 || len(config.Relays) > MAX_RELAYS {
		return fmt.Errorf("between 1 and %d relays required, got %d", MAX_RELAYS, len(config.Relays))
	}

	for i, r := range config.Relays {
		if r.OnMs < 1 {
			return fmt.Errorf("relay %d (%s) on_ms must be positive", i+1, r.Name)
		}
	}

	switch config.Interpreter {
	case "direct", "session":
	default:
		return fmt.Errorf("interpreter must be direct or session, got %q", config.Interpreter)
	}

	if config.Interpreter == "session" && config.Password == "" {
		return fmt.Errorf("session interpreter requires a password")
	}

	for key, action := range config.Keymap {
		if len(key) != 1 || !strings.ContainsRune("0123456789ABCD*#", rune(key[0])) {
			return fmt.Errorf("keymap key must be a single DTMF digit, got %q", key)
		}

		switch action.Function {
		case FUNC_OFF, FUNC_ON, FUNC_HOLD:
			if action.Relay < 1 || action.Relay > len(config.Relays) {
				return fmt.Errorf("keymap %q refers to relay %d but %d are configured", key, action.Relay, len(config.Relays))
			}
		case FUNC_VOLTAGE:
		default:
			return fmt.Errorf("keymap %q has unknown function %q", key, action.Function)
		}
	}

	switch config.Ptt.Method {
	case "none", "gpiod":
	case "serial":
		if config.Ptt.SerialLine != "rts" && config.Ptt.SerialLine != "dtr" {
			return fmt.Errorf("ptt serial_line must be rts or dtr, got %q", config.Ptt.SerialLine)
		}
	default:
		return fmt.Errorf("ptt method must be none, gpiod or serial, got %q", config.Ptt.Method)
	}

	if config.Audio.SamplesPerSec < 8000 {
		return fmt.Errorf("sample_rate must be at least 8000, got %d", config.Audio.SamplesPerSec)
	}

	if config.Audio.Amplitude < 1 || config.Audio.Amplitude > 100 {
		return fmt.Errorf("amplitude must be 1 .. 100, got %d", config.Audio.Amplitude)
	}

	return nil
}
