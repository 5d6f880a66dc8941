// Package config loads colonysim.yml and applies COLONYSIM_* environment
// overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Server struct {
	Addr string `yaml:"addr"`
	// CORSOrigin is the browser origin allowed to call the API.
	CORSOrigin string `yaml:"cors_origin"`
}

type Log struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is json or console.
	Format string `yaml:"format"`
}

type Database struct {
	// DSN selects postgres storage; empty keeps history in memory.
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate"`
}

type Simulation struct {
	Quantum      float64       `yaml:"quantum"`
	TickInterval time.Duration `yaml:"tick_interval"`
	// Seed drives the accident model; 0 disables accidents.
	Seed        uint64 `yaml:"seed"`
	DefaultSite Point  `yaml:"default_site"`
}

type Clock struct {
	// StartMillisol is the time of sol the colony starts at.
	StartMillisol float64 `yaml:"start_millisol"`
	SunriseAt     float64 `yaml:"sunrise_at"`
	SunsetAt      float64 `yaml:"sunset_at"`
}

type Storm struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type Airlock struct {
	Name      string  `yaml:"name"`
	CycleTime float64 `yaml:"cycle_time"`
	Capacity  int     `yaml:"capacity"`
	Interior  Point   `yaml:"interior"`
	Exterior  Point   `yaml:"exterior"`
}

type Lab struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
}

type Colonist struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Role           string         `yaml:"role"`
	Skills         map[string]int `yaml:"skills"`
	Attributes     map[string]int `yaml:"attributes"`
	RoleActivities []string       `yaml:"role_activities"`
	Suit           bool           `yaml:"suit"`
}

type Config struct {
	Server     Server     `yaml:"server"`
	Log        Log        `yaml:"log"`
	Database   Database   `yaml:"database"`
	Simulation Simulation `yaml:"simulation"`
	Clock      Clock      `yaml:"clock"`
	Storms     []Storm    `yaml:"storms"`
	Airlock    Airlock    `yaml:"airlock"`
	Lab        Lab        `yaml:"lab"`
	Colonists  []Colonist `yaml:"colonists"`
}

// Default returns a small colony that runs without any config file.
func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8080", CORSOrigin: "*"},
		Log:    Log{Level: "info", Format: "json"},
		Simulation: Simulation{
			Quantum:      5,
			TickInterval: time.Second,
			Seed:         1,
			DefaultSite:  Point{X: 120, Y: 40},
		},
		Clock:   Clock{StartMillisol: 300, SunriseAt: 250, SunsetAt: 750},
		Airlock: Airlock{Name: "Airlock 1", CycleTime: 10, Capacity: 4, Exterior: Point{X: 5}},
		Lab:     Lab{Name: "Lab 1", Capacity: 2},
		Colonists: []Colonist{
			{ID: "ada", Name: "Ada", Role: "geologist", Skills: map[string]int{"areology": 2, "eva_operations": 1}, RoleActivities: []string{"Collect Samples"}, Suit: true},
			{ID: "bo", Name: "Bo", Role: "engineer", Skills: map[string]int{"eva_operations": 3}, Suit: true},
			{ID: "cy", Name: "Cy", Role: "scientist", Skills: map[string]int{"research": 3}, Attributes: map[string]int{"teaching": 70}, RoleActivities: []string{"Study"}},
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config yaml: %w", err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromYAML parses raw YAML over the defaults and validates it.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from COLONYSIM_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("COLONYSIM_HTTP_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := get("COLONYSIM_CORS_ORIGIN"); ok {
		c.Server.CORSOrigin = v
	}
	if v, ok := get("COLONYSIM_DB_DSN"); ok {
		c.Database.DSN = v
	}
	if v, ok := get("COLONYSIM_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("COLONYSIM_LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := get("COLONYSIM_QUANTUM"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("COLONYSIM_QUANTUM: %w", err)
		}
		c.Simulation.Quantum = f
	}
	if v, ok := get("COLONYSIM_TICK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("COLONYSIM_TICK_INTERVAL: %w", err)
		}
		c.Simulation.TickInterval = d
	}
	if v, ok := get("COLONYSIM_SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("COLONYSIM_SEED: %w", err)
		}
		c.Simulation.Seed = n
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.Quantum <= 0 {
		errs = append(errs, errors.New("simulation.quantum must be positive"))
	}
	if c.Simulation.TickInterval <= 0 {
		errs = append(errs, errors.New("simulation.tick_interval must be positive"))
	}
	if c.Clock.SunriseAt < 0 || c.Clock.SunsetAt > 1000 || c.Clock.SunsetAt <= c.Clock.SunriseAt {
		errs = append(errs, errors.New("clock needs 0 <= sunrise_at < sunset_at <= 1000"))
	}
	if c.Clock.StartMillisol < 0 || c.Clock.StartMillisol >= 1000 {
		errs = append(errs, errors.New("clock.start_millisol must be within [0, 1000)"))
	}
	for i, s := range c.Storms {
		if s.End <= s.Start {
			errs = append(errs, fmt.Errorf("storms[%d] ends before it starts", i))
		}
	}
	if c.Airlock.CycleTime < 0 || c.Airlock.Capacity < 0 {
		errs = append(errs, errors.New("airlock cycle_time and capacity must not be negative"))
	}
	seen := map[string]bool{}
	for i, col := range c.Colonists {
		if col.ID == "" {
			continue
		}
		if seen[col.ID] {
			errs = append(errs, fmt.Errorf("colonists[%d]: duplicate id %q", i, col.ID))
		}
		seen[col.ID] = true
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be json or console", c.Log.Format))
	}
	return errors.Join(errs...)
}
