package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Main program for the touch tone power controller.
 *
 *		Opens the soundcard, the relay GPIO lines, and the
 *		PTT line, then hands everything to the scheduler
 *		loop, which runs until the process is killed.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	ttpower "github.com/kf7lze/ttpower/src"
)

func main() {
	var configFileName = pflag.StringP("config-file", "c", "ttpower.yaml", "Configuration file name.")
	var textColor = pflag.IntP("text-color", "t", 0, "Text colors.  0=disabled.  1=enabled.")
	var debugStr = pflag.StringP("debug", "d", "", `Debug options:
o = output controls such as PTT.`)
	var calibrate = pflag.IntP("calibrate", "x", 0, "Hold PTT with steady tone for n seconds to adjust transmit level, then exit.")
	var showVersion = pflag.BoolP("version", "v", false, "Print version and exit.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - DTMF remote power controller with Morse code acknowledgment.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: ttpower [options]\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(ttpower.VersionString())
		os.Exit(0)
	}

	ttpower.TextColorInit(*textColor)

	for _, p := range *debugStr {
		switch p {
		case 'o':
			ttpower.PttSetDebug(1)
		default:
			log.Warn("unknown debug option", "option", string(p))
		}
	}

	var config, configErr = ttpower.ConfigRead(*configFileName)
	if configErr != nil {
		log.Fatal("configuration error", "err", configErr)
	}

	var audioErr = ttpower.AudioInit()
	if audioErr != nil {
		log.Fatal("can't initialize audio", "err", audioErr)
	}
	defer ttpower.AudioTerm()

	var controller, buildErr = ttpower.ControllerOpen(config)
	if buildErr != nil {
		log.Fatal("can't start controller", "err", buildErr)
	}
	defer ttpower.ControllerClose(controller)

	if *calibrate > 0 {
		log.Info("transmitting calibration tone", "seconds", *calibrate)
		ttpower.CalibrateTransmit(controller, *calibrate)
		return
	}

	log.Info("ttpower up",
		"callsign", config.Callsign,
		"relays", len(config.Relays),
		"interpreter", config.Interpreter)

	var sigch = make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigch
		log.Info("shutting down")
		ttpower.SchedulerStop(controller)
	}()

	ttpower.SchedulerRun(controller)
}
