package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Render a DTMF digit string to a .WAV file.
 *
 * Description: Play the result at the controller to exercise the
 *		whole receive path end to end:
 *
 *			ttpower-dtmfgen -o cmd.wav 2
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

func DtmfGenMain() {
	var outputFile = pflag.StringP("output-file", "o", "dtmf.wav", "Send output to .wav file.")
	var sampleRate = pflag.IntP("sample-rate", "r", DEFAULT_SAMPLES_PER_SEC, "Audio sample rate, per sec.")
	var amplitude = pflag.IntP("amplitude", "a", DEFAULT_AMPLITUDE, "Amplitude, 1 .. 100.")
	var speed = pflag.IntP("speed", "s", 5, "Buttons per second, 1 to 10.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ttpower-dtmfgen [options] digits\n")
		fmt.Fprintf(os.Stderr, "Digits are 0-9, A-D, * and #.\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help || len(pflag.Args()) != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	if *speed < 1 || *speed > 10 {
		fmt.Fprintf(os.Stderr, "Speed must be 1 to 10 buttons per second.\n")
		os.Exit(1)
	}

	var digits = strings.ToUpper(pflag.Arg(0))

	var w, createErr = wav_create(*outputFile, *sampleRate)
	if createErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", createErr)
		os.Exit(1)
	}

	/* Length of each tone and of the gap between. */
	var len_ms = int(500.0/float64(*speed) + 0.5)

	dtmf_push_button(w, *sampleRate, *amplitude, ' ', len_ms)

	for i := 0; i < len(digits); i++ {
		dtmf_push_button(w, *sampleRate, *amplitude, digits[i], len_ms)
		dtmf_push_button(w, *sampleRate, *amplitude, ' ', len_ms)
	}

	var closeErr = w.wav_close()
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", closeErr)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", *outputFile)
}
