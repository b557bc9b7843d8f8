package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skybastion/parameter"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, parameter.GroupReviveDelay, cfg.Combat.ReviveDelay)
	assert.Equal(t, parameter.GroupForceReviveDelay, cfg.Combat.ForceReviveDelay)
	assert.Equal(t, parameter.AimMaxFailedSearches, cfg.Combat.MaxFailedSearches)
	assert.Equal(t, parameter.BossBand, cfg.Boss.Band)
	assert.Equal(t, parameter.BossEscortCheckpoints, cfg.Boss.EscortCheckpoints)
	assert.Equal(t, parameter.LockCircleRadius, cfg.Lock.CircleRadius)
	assert.True(t, cfg.Lock.RequireLOS)
	assert.Equal(t, parameter.GaugeLaserCharges, cfg.Gauge.LaserCharges)
	assert.Equal(t, parameter.GameUpdateInterval, cfg.Sandbox.Tick)
	assert.Equal(t, 1, cfg.Sandbox.Players)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, "skybastion.toml", `
[log]
level = "debug"

[combat]
reviveDelay = "30s"
perPlayerCap = 2

[boss]
band = 50000
escortCheckpoints = [600000, 300000]

[lock]
requireLos = false
halfFovDegrees = 40.0

[sandbox]
players = 3
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.Combat.ReviveDelay)
	assert.Equal(t, 2, cfg.Combat.PerPlayerCap)
	assert.Equal(t, 50_000, cfg.Boss.Band)
	assert.Equal(t, []int{600_000, 300_000}, cfg.Boss.EscortCheckpoints)
	assert.False(t, cfg.Lock.RequireLOS)
	assert.Equal(t, 40.0, cfg.Lock.HalfFOVDegrees)
	assert.Equal(t, 3, cfg.Sandbox.Players)

	// Untouched sections keep defaults
	assert.Equal(t, parameter.GroupForceReviveDelay, cfg.Combat.ForceReviveDelay)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/skybastion.toml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SKYBASTION_COMBAT_REVIVEDELAY", "12s")
	t.Setenv("SKYBASTION_LOG_LEVEL", "warn")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, cfg.Combat.ReviveDelay)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "skybastion.toml", `
[sandbox]
players = 3
headless = false
`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("players", 1, "")
	fs.Bool("headless", false, "")
	fs.Duration("tick", parameter.GameUpdateInterval, "")
	require.NoError(t, fs.Parse([]string{"--players=5", "--headless"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Sandbox.Players)
	assert.True(t, cfg.Sandbox.Headless)
	// Unset flags fall back to the file and defaults
	assert.Equal(t, parameter.GameUpdateInterval, cfg.Sandbox.Tick)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "bad.toml", `
[combat]
reviveDelay = "0s"
maxFailedSearches = 0

[boss]
escortCheckpoints = [100000, 200000]
`)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "combat.reviveDelay")
	assert.ErrorContains(t, err, "combat.maxFailedSearches")
	assert.ErrorContains(t, err, "boss.escortCheckpoints")
}

func TestTuning(t *testing.T) {
	cfg := Default()
	cfg.Combat.ReviveDelay = 5 * time.Second
	cfg.Lock.HalfFOVDegrees = 45
	cfg.Boss.EscortCheckpoints = []int{900, 100}

	tuning := cfg.Tuning()
	assert.Equal(t, 5*time.Second, tuning.ReviveDelay)
	assert.InDelta(t, parameter.DegToRad*45, tuning.HalfFOV, 1e-12)
	assert.Equal(t, []int{900, 100}, tuning.EscortCheckpoints)

	// The tuning owns its checkpoint slice
	cfg.Boss.EscortCheckpoints[0] = 1
	assert.Equal(t, 900, tuning.EscortCheckpoints[0])
}

func TestTuning_DefaultsMatchParameters(t *testing.T) {
	got := Default().Tuning()
	want := parameter.DefaultTuning()

	assert.InDelta(t, want.HalfFOV, got.HalfFOV, 1e-12)
	got.HalfFOV = want.HalfFOV
	assert.Equal(t, want, got)
}
