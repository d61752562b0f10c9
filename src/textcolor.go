package ttpower

import "fmt"

// Optional ANSI colouring for console output, off by default so
// piping to a pager or log file stays clean.

type dw_color_e int

const (
	DW_COLOR_INFO  dw_color_e = iota /* default */
	DW_COLOR_ERROR                   /* red */
	DW_COLOR_REC                     /* green */
	DW_COLOR_XMIT                    /* magenta */
	DW_COLOR_DEBUG                   /* dark green */
)

var ansi_codes = map[dw_color_e]string{
	DW_COLOR_INFO:  "\033[0m",
	DW_COLOR_ERROR: "\033[1;31m",
	DW_COLOR_REC:   "\033[32m",
	DW_COLOR_XMIT:  "\033[35m",
	DW_COLOR_DEBUG: "\033[2;32m",
}

var _text_color_level int

func text_color_init(level int) {
	_text_color_level = level
}

func text_color_set(c dw_color_e) {
	if _text_color_level == 0 {
		return
	}

	fmt.Print(ansi_codes[c])
}
