// Package config provides YAML-based configuration loading for the
// terminal Tetris game.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Glyphs   GlyphConfig    `yaml:"glyphs"`
	Keys     KeyConfig      `yaml:"keys"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GameplayConfig defines the line target and gravity.
type GameplayConfig struct {
	Lines     int `yaml:"lines"`      // prompt answer on an empty Enter
	DropDelay int `yaml:"drop_delay"` // frames between gravity steps
}

// GlyphConfig defines the two-column strings drawn per board cell.
type GlyphConfig struct {
	Block  string `yaml:"block"`
	Shadow string `yaml:"shadow"`
}

// KeyConfig lists the key names bound to each action, in bubbletea's
// key.String() form ("left", "ctrl+c", " ").
type KeyConfig struct {
	SoftDrop  []string `yaml:"soft_drop"`
	HardDrop  []string `yaml:"hard_drop"`
	Hold      []string `yaml:"hold"`
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	RotateCCW []string `yaml:"rotate_ccw"`
	RotateCW  []string `yaml:"rotate_cw"`
	Restart   []string `yaml:"restart"`
	Quit      []string `yaml:"quit"`
}

// Rules converts the board and gameplay sections to engine rules.
func (c TetrisConfig) Rules() tetris.Rules {
	return tetris.Rules{
		Width:     c.Board.Width,
		Height:    c.Board.Height,
		Lines:     c.Gameplay.Lines,
		DropDelay: c.Gameplay.DropDelay,
	}
}

// TetrisGlyphs converts the glyph section to renderer glyphs.
func (c TetrisConfig) TetrisGlyphs() tetris.Glyphs {
	return tetris.Glyphs{
		Block:  c.Glyphs.Block,
		Shadow: c.Glyphs.Shadow,
	}
}

// Validate checks that the configuration can drive a game.
func (c TetrisConfig) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	glyphs := []struct{ name, value string }{
		{"block", c.Glyphs.Block},
		{"shadow", c.Glyphs.Shadow},
	}
	for _, g := range glyphs {
		if n := utf8.RuneCountInString(g.value); n != 2 {
			return fmt.Errorf("%w: glyph %s must be 2 characters wide, got %d", ErrInvalidConfig, g.name, n)
		}
	}

	for _, b := range c.Keys.bindings() {
		if len(b.keys) == 0 {
			return fmt.Errorf("%w: no keys bound to %s", ErrInvalidConfig, b.name)
		}
	}
	return nil
}

// keyBinding pairs a YAML key name with its configured keys.
type keyBinding struct {
	name string
	keys []string
}

// bindings returns the key lists in declaration order.
func (k KeyConfig) bindings() []keyBinding {
	return []keyBinding{
		{"soft_drop", k.SoftDrop},
		{"hard_drop", k.HardDrop},
		{"hold", k.Hold},
		{"left", k.Left},
		{"right", k.Right},
		{"rotate_ccw", k.RotateCCW},
		{"rotate_cw", k.RotateCW},
		{"restart", k.Restart},
		{"quit", k.Quit},
	}
}
