package ttpower

/*------------------------------------------------------------------
 *
 * Purpose:   	Exported entry points for the command wrappers.
 *
 *---------------------------------------------------------------*/

func TextColorInit(level int) {
	text_color_init(level)
}

func PttSetDebug(debug int) {
	ptt_set_debug(debug)
}

func ConfigRead(fname string) (*config_s, error) {
	return config_read(fname)
}

func AudioInit() error {
	return audio_init()
}

func AudioTerm() {
	audio_term()
}

func SchedulerRun(c *controller_s) {
	scheduler_run(c)
}

func SchedulerStop(c *controller_s) {
	scheduler_stop(c)
}

/*-------------------------------------------------------------------
 *
 * Name:        ControllerOpen
 *
 * Purpose:    	Wire a controller to the real hardware: soundcard in
 *		and out, relay GPIO lines, PTT.
 *
 *--------------------------------------------------------------------*/

func ControllerOpen(config *config_s) (*controller_s, error) {
	var input, inputErr = audio_open_input(&config.Audio)
	if inputErr != nil {
		return nil, inputErr
	}

	var output, outputErr = audio_open_output(&config.Audio)
	if outputErr != nil {
		input.close()
		return nil, outputErr
	}

	var keyer = &tone_keyer_s{}
	tone_keyer_init(keyer, output, config.Audio.SamplesPerSec, config.Audio.Amplitude)

	var ptt, pttErr = ptt_init(&config.Ptt, nil)
	if pttErr != nil {
		output.close()
		input.close()
		return nil, pttErr
	}

	var relays, relayErr = relay_request_lines(config)
	if relayErr != nil {
		ptt_term(ptt)
		output.close()
		input.close()
		return nil, relayErr
	}

	var c = controller_init(config, input, keyer, ptt, relays)
	c.audio_out = output

	return c, nil
}

func ControllerClose(c *controller_s) {
	controller_term(c)

	if a, ok := c.input.(*audio_input_s); ok {
		a.close()
	}

	if c.audio_out != nil {
		c.audio_out.close()
		c.audio_out = nil
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        CalibrateTransmit
 *
 * Purpose:    	Key the transmitter with a steady tone so the audio
 *		level can be adjusted, then unkey.
 *
 *--------------------------------------------------------------------*/

func CalibrateTransmit(c *controller_s, seconds int) {
	if c.cw == nil {
		return
	}

	ptt_set(c.ptt, true)
	c.cw.keyer.tone_start()
	c.cw.keyer.hold_ms(seconds * 1000)
	c.cw.keyer.tone_stop()
	c.cw.keyer.flush()
	ptt_set(c.ptt, false)
}
