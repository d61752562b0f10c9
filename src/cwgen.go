package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Render a CW status message to a .WAV file.
 *
 * Description: Handy for checking what the controller will sound
 *		like on the air, and for feeding Morse decoding
 *		tools in tests:
 *
 *			ttpower-cwgen -o id.wav "DE N0CALL"
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

func CwGenMain() {
	var outputFile = pflag.StringP("output-file", "o", "cw.wav", "Send output to .wav file.")
	var sampleRate = pflag.IntP("sample-rate", "r", DEFAULT_SAMPLES_PER_SEC, "Audio sample rate, per sec.")
	var amplitude = pflag.IntP("amplitude", "a", DEFAULT_AMPLITUDE, "Amplitude, 1 .. 100.")
	var divisor = pflag.IntP("speed-divisor", "s", 2, "Integer speed divisor, 1 for slowest.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ttpower-cwgen [options] message...\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help || len(pflag.Args()) == 0 {
		pflag.Usage()
		os.Exit(1)
	}

	if *divisor < 1 {
		fmt.Fprintf(os.Stderr, "Speed divisor must be at least 1.\n")
		os.Exit(1)
	}

	var message = strings.Join(pflag.Args(), " ")

	var w, createErr = wav_create(*outputFile, *sampleRate)
	if createErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", createErr)
		os.Exit(1)
	}

	var keyer = &tone_keyer_s{}
	tone_keyer_init(keyer, w, *sampleRate, *amplitude)

	var sender = &cw_sender_s{
		keyer:     keyer,
		ptt:       &ptt_s{method: PTT_METHOD_NONE},
		divisor:   *divisor,
		settle_ms: 100,
	}

	var ms = cw_send(sender, message)

	var closeErr = w.wav_close()
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", closeErr)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d ms of audio to %s\n", ms, *outputFile)
}
