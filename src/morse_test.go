package ttpower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CW_Table_Packs_Cleanly(t *testing.T) {
	// Every source pattern must fit the 8 element packed form and
	// survive the round trip through packing.
	for _, c := range cw_chars {
		require.LessOrEqual(t, len(c.enc), 8, "pattern for %c too long", c.ch)

		var code, ok = cw_lookup(c.ch)
		require.True(t, ok)

		var n = 0
		for i := 0; i < 8; i++ {
			var el = (code.pat[i/4] >> ((3 - i%4) * 2)) & 0b11
			if el == CW_EL_FILL {
				break
			}
			switch el {
			case CW_EL_DOT:
				assert.Equal(t, byte('.'), c.enc[i], "%c element %d", c.ch, i)
			case CW_EL_DASH:
				assert.Equal(t, byte('-'), c.enc[i], "%c element %d", c.ch, i)
			}
			n++
		}
		assert.Equal(t, len(c.enc), n, "element count for %c", c.ch)
	}
}

func Test_CW_Lookup_Folds_Case(t *testing.T) {
	var upper, okUpper = cw_lookup('K')
	var lower, okLower = cw_lookup('k')

	require.True(t, okUpper)
	require.True(t, okLower)
	assert.Equal(t, upper, lower)
}

func Test_CW_Render_Single_Char(t *testing.T) {
	// A is dot dash.  Divisor 1 gives the raw constants.
	var pulses = cw_render("A", 1)

	assert.Equal(t, []cw_pulse_s{
		{true, CW_DOT_ON}, {false, CW_DOT_OFF},
		{true, CW_DASH_ON}, {false, CW_DASH_OFF},
	}, pulses)
}

func Test_CW_Render_Speed_Divisor(t *testing.T) {
	var pulses = cw_render("E", 2)

	assert.Equal(t, []cw_pulse_s{
		{true, CW_DOT_ON / 2}, {false, CW_DOT_OFF / 2},
	}, pulses)
}

func Test_CW_Render_Char_Gap_Between_Not_After(t *testing.T) {
	var pulses = cw_render("EE", 1)

	assert.Equal(t, []cw_pulse_s{
		{true, CW_DOT_ON}, {false, CW_DOT_OFF},
		{false, CW_CHAR_GAP},
		{true, CW_DOT_ON}, {false, CW_DOT_OFF},
	}, pulses)
}

func Test_CW_Render_Space_Is_Word_Gap_Only(t *testing.T) {
	var pulses = cw_render(" ", 1)

	assert.Equal(t, []cw_pulse_s{{false, CW_WORD_GAP}}, pulses)
}

func Test_CW_Render_Unknown_Char_Keeps_Spacing(t *testing.T) {
	// '*' is not sendable: no tone, but the rhythm of three
	// characters survives.
	var pulses = cw_render("E*E", 1)

	assert.Equal(t, []cw_pulse_s{
		{true, CW_DOT_ON}, {false, CW_DOT_OFF},
		{false, CW_CHAR_GAP},
		{false, CW_CHAR_GAP},
		{true, CW_DOT_ON}, {false, CW_DOT_OFF},
	}, pulses)
}

func Test_CW_Render_Gap_Marker(t *testing.T) {
	var pulses = cw_render(string(rune(CW_GAP_MARKER)), 1)

	assert.Equal(t, []cw_pulse_s{{false, CW_WORD_GAP}}, pulses)
}

func Test_CW_Render_Deterministic(t *testing.T) {
	var msg = "DE N0CALL 13R8 V"

	assert.Equal(t, cw_render(msg, 2), cw_render(msg, 2),
		"same message must render to an identical pulse train")
}

func Test_CW_Render_Empty(t *testing.T) {
	assert.Empty(t, cw_render("", 2))
}

func sendWithCapture(t *testing.T, config *config_s, msg string) []cw_pulse_s {
	t.Helper()

	var keyer captureKeyer
	var sender cw_sender_s
	cw_sender_init(&sender, &keyer, &ptt_s{method: PTT_METHOD_NONE}, config)

	cw_send(&sender, msg)

	return keyer.pulses
}

func Test_CW_Send_Empty_Message_Is_Settle_Only(t *testing.T) {
	var config = config_defaults()
	config.Ptt.SettleMs = 300

	var pulses = sendWithCapture(t, config, "")

	assert.Equal(t, []cw_pulse_s{{false, 300}, {false, 300}}, pulses,
		"empty message keys only the settle time, no tone bursts")
}

func Test_CW_Send_Prefix(t *testing.T) {
	var config = config_defaults()
	config.Prefix = "R"
	config.SpeedDivisor = 1
	config.Ptt.SettleMs = 100

	var pulses = sendWithCapture(t, config, "E")

	// Settle, R (.-.), character gap, word gap for the separating
	// space, the message, settle.
	assert.Equal(t, []cw_pulse_s{
		{false, 100},
		{true, CW_DOT_ON}, {false, CW_DOT_OFF},
		{true, CW_DASH_ON}, {false, CW_DASH_OFF},
		{true, CW_DOT_ON}, {false, CW_DOT_OFF},
		{false, CW_CHAR_GAP},
		{false, CW_WORD_GAP},
		{true, CW_DOT_ON}, {false, CW_DOT_OFF},
		{false, 100},
	}, pulses)
}

func Test_CW_Send_Sets_Transmitted_Flag(t *testing.T) {
	var config = config_defaults()

	var ident ident_s
	var keyer captureKeyer
	var sender cw_sender_s
	cw_sender_init(&sender, &keyer, &ptt_s{method: PTT_METHOD_NONE, ident: &ident}, config)

	require.False(t, ident_check(&ident))

	cw_send(&sender, "E")

	assert.True(t, ident_check(&ident), "keying PTT must mark the station as having transmitted")
}

func Test_CW_Send_Returns_Keyed_Duration(t *testing.T) {
	var config = config_defaults()
	config.Prefix = ""
	config.SpeedDivisor = 1
	config.Ptt.SettleMs = 100

	var keyer captureKeyer
	var sender cw_sender_s
	cw_sender_init(&sender, &keyer, &ptt_s{method: PTT_METHOD_NONE}, config)

	var total = cw_send(&sender, "E")

	assert.Equal(t, 100+CW_DOT_ON+CW_DOT_OFF+100, total)
}
