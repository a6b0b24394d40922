package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads1115-go/drivers/ads1115"
)

func TestDefaultProfiles(t *testing.T) {
	for _, name := range []string{"", "sim", "rpi", "pico"} {
		c, err := Default(name)
		require.NoError(t, err, name)
		require.NoError(t, c.Validate(), name)
	}
}

func TestSimDefaults(t *testing.T) {
	c, err := Parse("sim", nil)
	require.NoError(t, err)
	assert.Equal(t, BusSim, c.Bus.Kind)
	assert.Equal(t, time.Millisecond, c.Driver.PollInterval)
	assert.Equal(t, 10*time.Millisecond, c.Driver.PollMargin)
	assert.Equal(t, time.Second, c.Harness.Delay)
	assert.Equal(t, [4]float64{1.25, 0.5, 2.0, 0.0}, c.Sim.Inputs)

	g, err := c.Harness.DriverGain()
	require.NoError(t, err)
	assert.Equal(t, ads1115.Gain6V144, g)
	r, err := c.Harness.DriverRate()
	require.NoError(t, err)
	assert.Equal(t, ads1115.Rate128SPS, r)

	dc := c.DriverConfig(ads1115.AddrSDA)
	assert.Equal(t, ads1115.AddrSDA, dc.Address)
	assert.Equal(t, 1, dc.SettleSamples)
}

func TestOverlayKeepsDefaults(t *testing.T) {
	c, err := Parse("sim", []byte("harness:\n  rate: 860\n  delay: 250ms\n"))
	require.NoError(t, err)
	assert.Equal(t, uint32(860), c.Harness.Rate)
	assert.Equal(t, 250*time.Millisecond, c.Harness.Delay)
	assert.Equal(t, "AIN0_GND", c.Harness.ReadChannel, "untouched key lost")
	assert.Equal(t, 64, c.Harness.AlertTimeoutSamples)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		field string
	}{
		{"bus", "bus: {kind: spi}", "bus.kind"},
		{"gain", "harness: {gain: 3.3}", "harness.gain"},
		{"rate", "harness: {rate: 100}", "harness.rate"},
		{"channel", "harness: {read_channel: AIN9}", "harness.read_channel"},
		{"address", "sim: {address: VDD}", "sim.address"},
		{"baud", "console: {device: /dev/ttyUSB0, baud: 0}", "console.baud"},
		{"linux pin", "bus: {kind: linux}\nalert: {pin: \"\"}", "alert.pin"},
		{"machine pin", "bus: {kind: machine}\nalert: {pin: \"\"}", "alert.pin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("sim", []byte(tc.doc))
			var le *LoadError
			require.True(t, errors.As(err, &le), "err=%v", err)
			assert.Equal(t, tc.field, le.Field)
		})
	}
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse("sim", []byte("bus: [unterminated"))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "failed to parse YAML", le.Message)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ads.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sim:\n  address: SCL\n"), 0o644))
	c, err := Load("sim", path)
	require.NoError(t, err)
	a, err := ParseAddress(c.Sim.Address)
	require.NoError(t, err)
	assert.Equal(t, ads1115.AddrSCL, a)

	_, err = Load("sim", filepath.Join(dir, "missing.yaml"))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "missing.yaml")
}

func TestUnknownProfile(t *testing.T) {
	_, err := Default("esp32")
	assert.Error(t, err)
}

func TestEmbeddedLookupOverride(t *testing.T) {
	old := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(profile string) ([]byte, bool) {
		return []byte("bus: {kind: sim}\nharness: {gain: 0.256, rate: 8, read_channel: AIN3_GND}\nsim: {address: VCC}\n"), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = old })

	c, err := Parse("bench", nil)
	require.NoError(t, err)
	g, _ := c.Harness.DriverGain()
	assert.Equal(t, ads1115.Gain0V256, g)
	ch, _ := ParseChannel(c.Harness.ReadChannel)
	assert.Equal(t, ads1115.ChannelAIN3GND, ch)
}
