package ttpower

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVoltageFile(t *testing.T, content string) string {
	t.Helper()

	var fname = filepath.Join(t.TempDir(), "in1_input")
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o644))

	return fname
}

func Test_Voltage_Read_Scales_Millivolts(t *testing.T) {
	var config = voltage_config_s{
		Path:  writeVoltageFile(t, "1254\n"),
		Scale: 11.0,
	}

	var volts, err = voltage_read(&config)

	require.NoError(t, err)
	assert.InDelta(t, 13.794, volts, 0.001)
}

func Test_Voltage_Read_No_Path(t *testing.T) {
	var _, err = voltage_read(&voltage_config_s{})

	assert.Error(t, err)
}

func Test_Voltage_Read_Bad_Content(t *testing.T) {
	var config = voltage_config_s{
		Path:  writeVoltageFile(t, "not a number\n"),
		Scale: 11.0,
	}

	var _, err = voltage_read(&config)

	assert.Error(t, err)
}

func Test_Voltage_Format(t *testing.T) {
	assert.Equal(t, "13R8 V", voltage_format(13.79))
	assert.Equal(t, "13R8 V", voltage_format(13.82))
	assert.Equal(t, "12R0 V", voltage_format(11.96))
	assert.Equal(t, "0R0 V", voltage_format(0))
}

func Test_Voltage_Report(t *testing.T) {
	var config = config_defaults()
	config.Voltage.Path = writeVoltageFile(t, "1254")

	var c, _, sent = newTestController(t, config, &scriptInput{})

	voltage_report(c)

	assert.Equal(t, []string{"13R8 V"}, *sent)
}

func Test_Voltage_Report_Failure(t *testing.T) {
	var config = config_defaults()
	config.Voltage.Path = filepath.Join(t.TempDir(), "missing")

	var c, _, sent = newTestController(t, config, &scriptInput{})

	voltage_report(c)

	assert.Equal(t, []string{"V?"}, *sent)
}

func Test_Voltage_Via_Direct_Keymap(t *testing.T) {
	var config = config_defaults()
	config.Voltage.Path = writeVoltageFile(t, "1200")

	var c, clk, sent = newTestController(t, config, &scriptInput{syms: []byte{'0', 0}})

	tickPast(c, clk, uint32(config.DtmfPollMs))
	tickPast(c, clk, uint32(config.DtmfPollMs))

	assert.Equal(t, []string{"13R2 V"}, *sent)
}
