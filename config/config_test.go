package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(44100), cfg.Engine.ReferenceSampleRate)
	assert.True(t, cfg.BeatPulseEnabled())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Output.DeviceID = "0:IAC Driver Bus 1"
	ch := uint8(9)
	cfg.Output.Channel = &ch
	off := false
	cfg.Engine.BeatPulse = &off
	require.NoError(t, cfg.Save())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0:IAC Driver Bus 1", got.Output.DeviceID)
	require.NotNil(t, got.Output.Channel)
	assert.Equal(t, uint8(9), *got.Output.Channel)
	assert.False(t, got.BeatPulseEnabled())
}
