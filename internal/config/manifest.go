// Package config loads a game's static, host-editable data from YAML: the
// player-count range, default settings passed through as game.Options, and
// a card/piece manifest that host setup code expands (PieceSpec.Expand)
// into elements once the game is constructed. It is the generalized
// descendant of the teacher's dungeon.Config: a validated struct with a
// Validate() error method, loaded from a file or raw bytes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes one game's static configuration: how many players it
// seats, what default settings a fresh game.Game starts with, and the
// catalog of pieces a demo or host application draws from when building
// its element tree.
type Manifest struct {
	// Name identifies the game this manifest configures.
	Name string `yaml:"name" json:"name"`

	// PlayerCount constrains how many players a session may seat.
	PlayerCount PlayerCountRange `yaml:"playerCount" json:"playerCount"`

	// DefaultSettings is passed straight through to game.Options.Settings
	// when a host doesn't override it.
	DefaultSettings map[string]any `yaml:"defaultSettings,omitempty" json:"defaultSettings,omitempty"`

	// Pieces is the static catalog of piece/card definitions host setup
	// code can use to seed a deck or supply.
	Pieces []PieceSpec `yaml:"pieces,omitempty" json:"pieces,omitempty"`
}

// PlayerCountRange bounds how many players may be seated.
type PlayerCountRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// PieceSpec is one entry in a manifest's piece catalog: a class name, a
// display name, and a bag of attributes copied onto the element created
// from it. Count lets a single entry expand into multiple identical
// pieces (e.g. "12 copies of the Ox card") without repeating the entry.
type PieceSpec struct {
	Class      string         `yaml:"class" json:"class"`
	Name       string         `yaml:"name" json:"name"`
	Count      int            `yaml:"count,omitempty" json:"count,omitempty"`
	Attributes map[string]any `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// Load reads and validates a YAML manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading manifest file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a YAML manifest from raw bytes,
// useful for tests and for manifests embedded in a binary.
func LoadFromBytes(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parsing manifest YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &m, nil
}

// Validate checks structural constraints a manifest must satisfy before
// it can configure a session.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if err := m.PlayerCount.Validate(); err != nil {
		return fmt.Errorf("playerCount: %w", err)
	}
	for i, p := range m.Pieces {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pieces[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks that the range is sane: both bounds positive and
// non-decreasing.
func (r *PlayerCountRange) Validate() error {
	if r.Min < 1 {
		return fmt.Errorf("min must be at least 1, got %d", r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("max (%d) must be >= min (%d)", r.Max, r.Min)
	}
	return nil
}

// Validate checks that a piece entry names a class and carries a usable
// count.
func (p *PieceSpec) Validate() error {
	if p.Class == "" {
		return fmt.Errorf("class must not be empty")
	}
	if p.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if p.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", p.Count)
	}
	return nil
}

// Expand returns how many identical copies of this piece the manifest
// calls for: Count if set, otherwise exactly one.
func (p *PieceSpec) Expand() int {
	if p.Count <= 0 {
		return 1
	}
	return p.Count
}

// InRange reports whether n players falls within the manifest's
// configured player-count range.
func (r PlayerCountRange) InRange(n int) bool {
	return n >= r.Min && n <= r.Max
}
