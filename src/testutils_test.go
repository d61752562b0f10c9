package ttpower

import (
	"testing"
)

// fakeClock lets tests run simulated hours of controller uptime instantly.
type fakeClock struct {
	ms uint32
}

func (f *fakeClock) now() uint32 {
	return f.ms
}

func (f *fakeClock) advance(ms uint32) {
	f.ms += ms
}

// scriptInput plays back a fixed sequence of decoder readings, one per
// poll, then silence forever.
type scriptInput struct {
	syms []byte
	i    int
}

func (s *scriptInput) poll() byte {
	if s.i >= len(s.syms) {
		return 0
	}

	var sym = s.syms[s.i]
	s.i++

	return sym
}

// captureKeyer records the exact tone/silence pulse train a transmission
// produces, without hardware and without real time passing.
type captureKeyer struct {
	keyed  bool
	pulses []cw_pulse_s
}

func (k *captureKeyer) tone_start() { k.keyed = true }
func (k *captureKeyer) tone_stop()  { k.keyed = false }
func (k *captureKeyer) flush()      {}

func (k *captureKeyer) hold_ms(ms int) {
	k.pulses = append(k.pulses, cw_pulse_s{k.keyed, ms})
}

// mockGPIODLine is a test double for gpiodOutputLine that records calls
// without requiring GPIO hardware.
type mockGPIODLine struct {
	value  int
	closed bool
}

func (m *mockGPIODLine) SetValue(v int) error {
	m.value = v
	return nil
}

func (m *mockGPIODLine) Close() error {
	m.closed = true
	return nil
}

// captureSink gathers generated audio samples in memory.
type captureSink struct {
	samples []int16
}

func (s *captureSink) put_sample(sam int16) {
	s.samples = append(s.samples, sam)
}

// newTestController builds a controller with a fake clock, scripted
// decoder input, hardware-free relays, and transmissions captured as
// plain strings.  Deadlines are rearmed against the fake clock so the
// first tick is deterministic.
func newTestController(t *testing.T, config *config_s, input *scriptInput) (*controller_s, *fakeClock, *[]string) {
	t.Helper()

	var clk = &fakeClock{}

	var relays []*relay_s
	for i := range config.Relays {
		relays = append(relays, relay_init(&config.Relays[i], i+1, nil))
	}

	var c = controller_init(config, input, nil, nil, relays)

	c.now = clk.now
	c.idle = func(int) {}

	deadline_arm(&c.poll_deadline, clk.now(), uint32(config.DtmfPollMs))
	deadline_arm(&c.id_deadline, clk.now(), uint32(config.IdPeriodMs))
	deadline_disarm(&c.cmd_deadline)

	var sent []string
	c.transmit = func(msg string) {
		sent = append(sent, msg)
	}

	return c, clk, &sent
}

// tickPast advances the clock beyond the poll period and runs one tick.
func tickPast(c *controller_s, clk *fakeClock, ms uint32) {
	clk.advance(ms + 1)
	scheduler_tick(c)
}
