package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Report the station supply voltage.
 *
 * Description: The supply feeds an ADC through a divider; the kernel
 *		exposes the reading as millivolts in a sysfs file
 *		(hwmon or iio).  Multiply back up by the divider
 *		ratio and speak the result in Morse with the usual
 *		'R' decimal point convention, e.g. 13.8 V -> "13R8".
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func voltage_read(config *voltage_config_s) (float64, error) {
	if config.Path == "" {
		return 0, fmt.Errorf("no voltage sense path configured")
	}

	var raw, readErr = os.ReadFile(config.Path)
	if readErr != nil {
		return 0, fmt.Errorf("can't read voltage from %s: %w", config.Path, readErr)
	}

	var mv, parseErr = strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if parseErr != nil {
		return 0, fmt.Errorf("bad voltage reading in %s: %w", config.Path, parseErr)
	}

	return mv / 1000.0 * config.Scale, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        voltage_format
 *
 * Purpose:    	Render volts as a Morse friendly string with one
 *		decimal place, R standing in for the decimal point.
 *
 *--------------------------------------------------------------------*/

func voltage_format(volts float64) string {
	var tenths = int(volts*10.0 + 0.5)

	return fmt.Sprintf("%dR%d V", tenths/10, tenths%10)
}

func voltage_report(c *controller_s) {
	var volts, err = voltage_read(&c.config.Voltage)
	if err != nil {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Voltage report failed: %s\n", err)
		event_log_write(c.elog, "voltage", "read failed")
		c.transmit("V?")
		return
	}

	event_log_write(c.elog, "voltage", fmt.Sprintf("%.1f", volts))
	c.transmit(voltage_format(volts))
}
