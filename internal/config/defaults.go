package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultTetrisYAML))
	copy(out, defaultTetrisYAML)
	return out
}

// Default returns the default game configuration.
func Default() TetrisConfig {
	rules := tetris.DefaultRules()
	glyphs := tetris.DefaultGlyphs()

	return TetrisConfig{
		Board: BoardConfig{
			Width:  rules.Width,
			Height: rules.Height,
		},
		Gameplay: GameplayConfig{
			Lines:     rules.Lines,
			DropDelay: rules.DropDelay,
		},
		Glyphs: GlyphConfig{
			Block:  glyphs.Block,
			Shadow: glyphs.Shadow,
		},
		Keys: KeyConfig{
			SoftDrop:  []string{"down"},
			HardDrop:  []string{"up"},
			Hold:      []string{" "},
			Left:      []string{"left"},
			Right:     []string{"right"},
			RotateCCW: []string{"z"},
			RotateCW:  []string{"x"},
			Restart:   []string{"r"},
			Quit:      []string{"q", "ctrl+c"},
		},
	}
}
