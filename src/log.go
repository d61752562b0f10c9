package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Save controller events to a log file.
 *
 * Description: Commands, relay changes, timeouts, and station IDs
 *		are appended in CSV format for easy later processing.
 *
 *		There are two alternatives:
 *
 *		path + daily: true	Directory; one file per day
 *					is created inside it.
 *
 *		path + daily: false	Single file, appended forever.
 *
 *		Empty path disables the feature; every write becomes
 *		a no-op so callers never need to check.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
)

const daily_name_pattern = "%Y-%m-%d-ttpower.log"

type event_log_s struct {
	daily bool
	path  string

	fp         *os.File
	csv        *csv.Writer
	open_fname string /* Name currently open, for daily rollover. */
}

func event_log_init(config *log_config_s) *event_log_s {
	if config.Path == "" {
		return nil
	}

	var e = &event_log_s{daily: config.Daily, path: config.Path}

	if e.daily {
		var stat, statErr = os.Stat(e.path)
		if statErr != nil || !stat.IsDir() {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Log location \"%s\" is not a directory.  Logging disabled.\n", e.path)
			return nil
		}
	}

	return e
}

/*-------------------------------------------------------------------
 *
 * Name:        event_log_write
 *
 * Purpose:    	Append one event.
 *
 * Inputs:	e	- Log state.  nil means logging is disabled.
 *		event	- Short event class: command, relay, id, ...
 *		detail	- Free text.
 *
 * Description:	The file is kept open between writes.  With daily
 *		names, crossing midnight closes the old file and
 *		opens the new one.
 *
 *--------------------------------------------------------------------*/

func event_log_write(e *event_log_s, event string, detail string) {
	if e == nil {
		return
	}

	var now = time.Now()

	var fname = e.path
	if e.daily {
		var leaf, err = strftime.Format(daily_name_pattern, now)
		if err != nil {
			return
		}
		fname = filepath.Join(e.path, leaf)
	}

	if e.fp == nil || fname != e.open_fname {
		event_log_term(e)

		var fp, openErr = os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
		if openErr != nil {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Can't open log file \"%s\": %s\n", fname, openErr)
			return
		}

		e.fp = fp
		e.csv = csv.NewWriter(fp)
		e.open_fname = fname
	}

	e.csv.Write([]string{now.Format(time.RFC3339), event, detail}) //nolint:errcheck
	e.csv.Flush()
}

func event_log_term(e *event_log_s) {
	if e == nil || e.fp == nil {
		return
	}

	e.csv.Flush()
	e.fp.Close() //nolint:errcheck
	e.fp = nil
	e.csv = nil
	e.open_fname = ""
}
