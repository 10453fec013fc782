// Package config loads tournament definitions from HCL files.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/dilemma/internal/strategy"
	"github.com/lox/dilemma/internal/tournament"
)

// Formats lists the accepted report formats
var Formats = []string{"pretty", "dots", "log", "tui", "none"}

// Config is a complete tournament definition
type Config struct {
	Tournament *TournamentSettings `hcl:"tournament,block"`
	Players    []PlayerConfig      `hcl:"player,block"`
	Report     *ReportSettings     `hcl:"report,block"`
}

// TournamentSettings holds the round range and run settings
type TournamentSettings struct {
	Name        string `hcl:"name,label"`
	MinRounds   *int   `hcl:"min_rounds,optional"`
	MaxRounds   *int   `hcl:"max_rounds,optional"`
	Seed        int64  `hcl:"seed,optional"`
	Parallelism int    `hcl:"parallelism,optional"`
}

// PlayerConfig adds one player to the roster
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
}

// ReportSettings controls how results are presented
type ReportSettings struct {
	Format    string `hcl:"format,optional"`
	ShowTurns bool   `hcl:"show_turns,optional"`
	Output    string `hcl:"output,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	Listen    string `hcl:"listen,optional"`
}

func intPtr(v int) *int { return &v }

// DefaultConfig returns the classic eight-player tournament
func DefaultConfig() *Config {
	cfg := &Config{
		Tournament: &TournamentSettings{
			Name:        tournament.DefaultName,
			MinRounds:   intPtr(tournament.DefaultMinRounds),
			MaxRounds:   intPtr(tournament.DefaultMaxRounds),
			Parallelism: 1,
		},
		Report: &ReportSettings{
			Format:   "pretty",
			LogLevel: "info",
		},
	}
	for _, e := range strategy.DefaultRoster {
		cfg.Players = append(cfg.Players, PlayerConfig{Name: e.Name, Strategy: e.Strategy})
	}
	return cfg
}

// LoadConfig loads a tournament from an HCL file. A missing file yields
// the default configuration.
func LoadConfig(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source and fills in defaults
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Tournament == nil {
		c.Tournament = defaults.Tournament
	}
	if c.Tournament.Name == "" {
		c.Tournament.Name = tournament.DefaultName
	}
	if c.Tournament.MinRounds == nil {
		c.Tournament.MinRounds = intPtr(tournament.DefaultMinRounds)
	}
	if c.Tournament.MaxRounds == nil {
		c.Tournament.MaxRounds = intPtr(max(*c.Tournament.MinRounds, tournament.DefaultMaxRounds))
	}
	if c.Tournament.Parallelism == 0 {
		c.Tournament.Parallelism = 1
	}

	if c.Report == nil {
		c.Report = defaults.Report
	}
	if c.Report.Format == "" {
		c.Report.Format = "pretty"
	}
	if c.Report.LogLevel == "" {
		c.Report.LogLevel = "info"
	}
}

// Validate validates the tournament configuration
func (c *Config) Validate() error {
	t := c.Tournament
	if t == nil {
		return fmt.Errorf("tournament block is required")
	}
	if t.MinRounds == nil || t.MaxRounds == nil {
		return fmt.Errorf("tournament %s: round range is not set", t.Name)
	}
	if *t.MinRounds < 0 {
		return fmt.Errorf("tournament %s: min_rounds must be non-negative", t.Name)
	}
	if *t.MaxRounds < *t.MinRounds {
		return fmt.Errorf("tournament %s: max_rounds must not be below min_rounds", t.Name)
	}
	if t.Parallelism < 1 {
		return fmt.Errorf("tournament %s: parallelism must be at least 1", t.Name)
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: defined more than once", p.Name)
		}
		seen[p.Name] = true
		if !strategy.Exists(p.Strategy) {
			return fmt.Errorf("player %s: %w: %s", p.Name, strategy.ErrUnknownStrategy, p.Strategy)
		}
	}

	if c.Report != nil && !slices.Contains(Formats, c.Report.Format) {
		return fmt.Errorf("report: invalid format %s", c.Report.Format)
	}

	return nil
}

// Roster returns the configured players as registry entries
func (c *Config) Roster() []strategy.Entry {
	entries := make([]strategy.Entry, len(c.Players))
	for i, p := range c.Players {
		entries[i] = strategy.Entry{Name: p.Name, Strategy: p.Strategy}
	}
	return entries
}

// TournamentConfig maps the settings onto a tournament.Config. Logger,
// Monitor and Clock are left for the caller.
func (c *Config) TournamentConfig() tournament.Config {
	t := c.Tournament
	return tournament.Config{
		Name:        t.Name,
		MinRounds:   *t.MinRounds,
		MaxRounds:   *t.MaxRounds,
		Seed:        t.Seed,
		Parallelism: t.Parallelism,
	}
}
