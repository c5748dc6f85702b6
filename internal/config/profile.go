// YAML run profiles with CUE validation
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed profile.cue
var profileSchema string

// Profile is a saved set of run parameters. Nil or empty fields leave the
// corresponding option untouched.
type Profile struct {
	TickSeconds  *float64 `yaml:"tick_seconds"`
	Fast         *bool    `yaml:"fast"`
	DisableMOB   *bool    `yaml:"disable_mob"`
	NoPacing     *bool    `yaml:"no_pacing"`
	OutputPath   string   `yaml:"output_path"`
	EventLogPath string   `yaml:"event_log_path"`
	HistoryPath  string   `yaml:"history_path"`
}

// LoadProfile reads a YAML profile and validates it against the embedded
// CUE schema.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile validates and decodes profile YAML.
func ParseProfile(data []byte) (*Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Profile{}, nil
	}
	if err := ValidateWithCue(data); err != nil {
		return nil, err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: parse profile: %v", ErrInvalidConfig, err)
	}
	return &p, nil
}

// ValidateWithCue checks profile YAML against the #Profile definition.
func ValidateWithCue(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(profileSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Profile"))
	if err := cueyaml.Validate(data, def); err != nil {
		return fmt.Errorf("%w: profile validation failed: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Merge fills o from the profile for every option whose flag was not set
// explicitly. changed reports whether the named flag was given.
func (p *Profile) Merge(o Options, changed func(flag string) bool) Options {
	if p == nil {
		return o
	}
	if p.TickSeconds != nil && !changed("tick") {
		o.Tick = *p.TickSeconds
	}
	if p.Fast != nil && !changed("fast") {
		o.Fast = *p.Fast
	}
	if p.DisableMOB != nil && !changed("no-mob") {
		o.DisableMOB = *p.DisableMOB
	}
	if p.NoPacing != nil && !changed("no-pace") {
		o.NoPacing = *p.NoPacing
	}
	if p.OutputPath != "" && !changed("output") {
		o.OutputPath = p.OutputPath
	}
	if p.EventLogPath != "" && !changed("event-log") {
		o.EventLogPath = p.EventLogPath
	}
	if p.HistoryPath != "" && !changed("history") {
		o.HistoryPath = p.HistoryPath
	}
	return o
}
