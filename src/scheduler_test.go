package ttpower

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Scheduler_Key_To_Timed_Relay(t *testing.T) {
	var config = config_defaults()
	var c, clk, sent = newTestController(t, config, &scriptInput{syms: []byte{'2', 0}})

	// Press is heard on the first poll, accepted on the release.
	tickPast(c, clk, uint32(config.DtmfPollMs))
	require.Empty(t, *sent, "nothing fires while the tone is held")

	tickPast(c, clk, uint32(config.DtmfPollMs))
	require.True(t, c.relays[0].is_on)
	assert.Equal(t, []string{"1 ON"}, *sent)

	// The auto-off deadline drops the relay on its own.
	tickPast(c, clk, c.relays[0].on_ms)

	assert.False(t, c.relays[0].is_on)
	assert.Equal(t, []string{"1 ON", "1 OFF"}, *sent)
}

func Test_Scheduler_Held_Relay_Stays_On(t *testing.T) {
	var config = config_defaults()
	var c, clk, sent = newTestController(t, config, &scriptInput{syms: []byte{'3', 0}})

	tickPast(c, clk, uint32(config.DtmfPollMs))
	tickPast(c, clk, uint32(config.DtmfPollMs))
	require.True(t, c.relays[0].hold)

	// Simulated days of uptime.  Only the explicit off drops it.
	for i := 0; i < 200; i++ {
		tickPast(c, clk, 60*60*1000)
	}
	require.True(t, c.relays[0].is_on)

	c.input = &scriptInput{syms: []byte{'1', 0}}
	tickPast(c, clk, uint32(config.DtmfPollMs))
	tickPast(c, clk, uint32(config.DtmfPollMs))

	assert.False(t, c.relays[0].is_on)
	assert.Equal(t, "1 OFF", (*sent)[len(*sent)-1])
}

func Test_Scheduler_Unmapped_Key_Rejected(t *testing.T) {
	var config = config_defaults()
	var c, clk, sent = newTestController(t, config, &scriptInput{syms: []byte{'C', 0}})

	tickPast(c, clk, uint32(config.DtmfPollMs))
	tickPast(c, clk, uint32(config.DtmfPollMs))

	assert.Equal(t, []string{"C?"}, *sent)
}

func Test_Scheduler_Poll_Rearms_From_Tick_Now(t *testing.T) {
	var config = config_defaults()
	var c, clk, _ = newTestController(t, config, &scriptInput{})

	// Late tick: rearm measures from when the tick actually ran,
	// not from when the deadline was originally due.
	clk.advance(1000)
	scheduler_tick(c)

	assert.Equal(t, clk.now()+uint32(config.DtmfPollMs), c.poll_deadline.due)
}

func Test_Scheduler_Station_ID_Only_After_Transmitting(t *testing.T) {
	var config = config_defaults()
	var c, clk, sent = newTestController(t, config, &scriptInput{})

	// Nothing transmitted: the deadline passes quietly.
	tickPast(c, clk, uint32(config.IdPeriodMs))
	require.Empty(t, *sent)
	assert.True(t, c.id_deadline.armed, "skipped ID still rearms the cadence")

	ident_transmitted(&c.ident)
	tickPast(c, clk, uint32(config.IdPeriodMs))

	assert.Equal(t, []string{"DE N0CALL"}, *sent)
	assert.False(t, ident_check(&c.ident), "flag is cleared once the ID has gone out")

	// Quiet again: no second ID.
	tickPast(c, clk, uint32(config.IdPeriodMs))
	assert.Equal(t, []string{"DE N0CALL"}, *sent)
}

func Test_Scheduler_Session_Timeout(t *testing.T) {
	var config = config_defaults()
	config.Interpreter = "session"
	config.Password = "1234"

	var c, clk, sent = newTestController(t, config, &scriptInput{syms: []byte{'*', 0}})

	tickPast(c, clk, uint32(config.DtmfPollMs))
	tickPast(c, clk, uint32(config.DtmfPollMs))
	require.True(t, c.cmd_deadline.armed, "accepted '*' opens a session")

	tickPast(c, clk, uint32(config.CmdTimeoutMs))

	assert.Equal(t, []string{"TO"}, *sent)
	assert.False(t, c.cmd_deadline.armed)
}

func Test_Scheduler_Command_Deadline_Quiet_When_Idle(t *testing.T) {
	var config = config_defaults()
	var c, clk, sent = newTestController(t, config, &scriptInput{})

	// Direct policy, no session: hours pass without a timeout
	// announcement.
	for i := 0; i < 100; i++ {
		tickPast(c, clk, 60*1000)
	}

	assert.Empty(t, *sent)
}

func Test_Scheduler_Relay_Auto_Off_Across_Clock_Wrap(t *testing.T) {
	var config = config_defaults()
	var c, clk, sent = newTestController(t, config, &scriptInput{})

	// Park the clock just short of the 32 bit wrap, like a
	// controller that has been powered up for 49 days.
	clk.ms = ^uint32(0) - 1000
	deadline_arm(&c.poll_deadline, clk.now(), uint32(config.DtmfPollMs))
	deadline_arm(&c.id_deadline, clk.now(), uint32(config.IdPeriodMs))

	relay_activate(c, c.relays[0], false)
	require.True(t, c.relays[0].is_on)

	// Not due yet, even though the counter has wrapped past zero.
	tickPast(c, clk, 2000)
	assert.True(t, c.relays[0].is_on)

	tickPast(c, clk, c.relays[0].on_ms)

	assert.False(t, c.relays[0].is_on)
	assert.Equal(t, []string{"1 ON", "1 OFF"}, *sent)
}

func Test_Scheduler_Stop_From_Another_Goroutine(t *testing.T) {
	// The daemon's signal handler stops the loop from its own
	// goroutine; the loop must reliably observe the request.
	var config = config_defaults()
	var c, _, _ = newTestController(t, config, &scriptInput{})

	go func() {
		SLEEP_MS(10)
		scheduler_stop(c)
	}()

	var done = make(chan struct{})
	go func() {
		scheduler_run(c)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler loop never observed the stop request")
	}
}

func Test_Scheduler_Stop_Ends_Run(t *testing.T) {
	var config = config_defaults()
	var c, _, _ = newTestController(t, config, &scriptInput{})

	var ticks = 0
	c.idle = func(int) {
		ticks++
		if ticks >= 3 {
			scheduler_stop(c)
		}
	}

	scheduler_run(c)

	assert.Equal(t, 3, ticks)
}
