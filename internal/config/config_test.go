package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Len(t, cfg.Colonists, 3)
	assert.GreaterOrEqual(t, cfg.Clock.StartMillisol, cfg.Clock.SunriseAt, "colony starts in daylight")
	assert.Less(t, cfg.Clock.StartMillisol, cfg.Clock.SunsetAt, "colony starts in daylight")
}

func TestFromYAMLOverlaysDefaults(t *testing.T) {
	cfg, err := FromYAML([]byte(`
simulation:
  quantum: 2.5
  tick_interval: 250ms
storms:
  - {start: 1200, end: 1400}
colonists:
  - id: zed
    name: Zed
    skills: {eva_operations: 4}
    suit: true
`))
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Simulation.Quantum)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, uint64(1), cfg.Simulation.Seed, "unset keys keep defaults")
	require.Len(t, cfg.Storms, 1)
	require.Len(t, cfg.Colonists, 1)
	assert.Equal(t, 4, cfg.Colonists[0].Skills["eva_operations"])
}

func TestValidateCollectsProblems(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"quantum", "simulation: {quantum: -1}", "quantum"},
		{"clock", "clock: {sunrise_at: 800, sunset_at: 200}", "sunrise_at"},
		{"clock start", "clock: {start_millisol: 1000}", "start_millisol"},
		{"storm", "storms: [{start: 10, end: 5}]", "storms[0]"},
		{"duplicate colonist", "colonists: [{id: a}, {id: a}]", "duplicate id"},
		{"log format", "log: {format: xml}", "log.format"},
		{"bad yaml", "simulation: [", "invalid config yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"COLONYSIM_HTTP_ADDR":     ":9090",
		"COLONYSIM_CORS_ORIGIN":   "https://dash.example",
		"COLONYSIM_DB_DSN":        "postgres://sim",
		"COLONYSIM_LOG_LEVEL":     "debug",
		"COLONYSIM_QUANTUM":       "1.5",
		"COLONYSIM_TICK_INTERVAL": "2s",
		"COLONYSIM_SEED":          "42",
		"COLONYSIM_LOG_FORMAT":    "  ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "https://dash.example", cfg.Server.CORSOrigin)
	assert.Equal(t, "postgres://sim", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "blank values are ignored")
	assert.Equal(t, 1.5, cfg.Simulation.Quantum)
	assert.Equal(t, 2*time.Second, cfg.Simulation.TickInterval)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)

	env["COLONYSIM_QUANTUM"] = "fast"
	assert.ErrorContains(t, Default().ApplyEnv(lookup), "COLONYSIM_QUANTUM")
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colonysim.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: {addr: ':7000'}\n"), 0o600))
	t.Setenv("COLONYSIM_HTTP_ADDR", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "read config")
}
