// Runtime configuration for a Ghost LiDAR run
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// MinTickSeconds is the smallest simulated step a tick may represent.
	MinTickSeconds = 0.1
	// FastTotalSeconds compresses the workflow into one minute.
	FastTotalSeconds = 60
	// NominalTotalSeconds is the canonical 15-minute drafting cycle.
	NominalTotalSeconds = 900
	// DefaultOutputPath is where the live snapshot is written.
	DefaultOutputPath = "output/ghost_state.json"
	// EventLogName is the event log file created next to the snapshot.
	EventLogName = "sol_event.log"
	// TickEnv overrides the tick size when set.
	TickEnv = "GHOST_TICK_SECONDS"
)

// ErrInvalidConfig reports a configuration that cannot start a run.
var ErrInvalidConfig = errors.New("invalid configuration")

// RuntimeConfig is fixed for the lifetime of a run.
type RuntimeConfig struct {
	TickSeconds     float64 // simulated seconds per tick
	TotalSimSeconds int
	OutputPath      string
	EventLogPath    string
	HistoryPath     string // optional JSONL tick history
	DisableMOB      bool
	NoPacing        bool // skip the inter-tick sleep
}

// Options are the raw run parameters as supplied on the command line.
type Options struct {
	Tick         float64
	Fast         bool
	DisableMOB   bool
	NoPacing     bool
	OutputPath   string
	EventLogPath string
	HistoryPath  string
}

// DefaultOptions returns the parameters used when no flag is given.
func DefaultOptions() Options {
	return Options{Tick: 1.0, OutputPath: DefaultOutputPath}
}

// New resolves options into a validated RuntimeConfig. A tick of exactly 0
// selects unpaced mode at the minimum tick size; other ticks are clamped to
// MinTickSeconds.
func New(o Options) (RuntimeConfig, error) {
	if math.IsNaN(o.Tick) || math.IsInf(o.Tick, 0) || o.Tick < 0 {
		return RuntimeConfig{}, fmt.Errorf("%w: tick must be a non-negative number, got %v", ErrInvalidConfig, o.Tick)
	}
	cfg := RuntimeConfig{
		TickSeconds:     math.Max(MinTickSeconds, o.Tick),
		TotalSimSeconds: NominalTotalSeconds,
		OutputPath:      o.OutputPath,
		EventLogPath:    o.EventLogPath,
		HistoryPath:     o.HistoryPath,
		DisableMOB:      o.DisableMOB,
		NoPacing:        o.NoPacing || o.Tick == 0,
	}
	if o.Fast {
		cfg.TotalSimSeconds = FastTotalSeconds
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.EventLogPath == "" {
		cfg.EventLogPath = filepath.Join(filepath.Dir(cfg.OutputPath), EventLogName)
	}
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// Validate checks the config is runnable.
func (c RuntimeConfig) Validate() error {
	if !(c.TickSeconds > 0) {
		return fmt.Errorf("%w: tick seconds must be positive, got %v", ErrInvalidConfig, c.TickSeconds)
	}
	if c.TotalSimSeconds <= 0 {
		return fmt.Errorf("%w: total simulated seconds must be positive, got %d", ErrInvalidConfig, c.TotalSimSeconds)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path required", ErrInvalidConfig)
	}
	if c.EventLogPath == "" {
		return fmt.Errorf("%w: event log path required", ErrInvalidConfig)
	}
	return nil
}

// PrepareOutput creates the directories of every output file and verifies
// each is writable.
func (c RuntimeConfig) PrepareOutput() error {
	seen := make(map[string]bool)
	for _, p := range []string{c.OutputPath, c.EventLogPath, c.HistoryPath} {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
		probe, err := os.CreateTemp(dir, ".ghost-probe-*")
		if err != nil {
			return fmt.Errorf("output directory %s not writable: %w", dir, err)
		}
		name := probe.Name()
		probe.Close()
		os.Remove(name)
	}
	return nil
}

// ApplyEnv lets TickEnv override the tick size.
func ApplyEnv(o *Options) error {
	v := os.Getenv(TickEnv)
	if v == "" {
		return nil
	}
	tick, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, TickEnv, err)
	}
	o.Tick = tick
	return nil
}
