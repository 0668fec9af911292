package tetris

import (
	"errors"
	"fmt"
)

// Rules holds the board geometry and pacing of a game.
type Rules struct {
	Width     int // Board columns
	Height    int // Board rows
	Lines     int // Rows to clear to win
	DropDelay int // Frames between gravity soft drops
}

// DefaultRules returns the classic 10×20 board with a 40-line target and one
// gravity step per second at 60 frames per second.
func DefaultRules() Rules {
	return Rules{
		Width:     10,
		Height:    20,
		Lines:     40,
		DropDelay: 60,
	}
}

// ErrInvalidRules is wrapped by every error returned from Validate.
var ErrInvalidRules = errors.New("invalid rules")

// Validate checks that the rules describe a playable game.
// The widest piece is 4 cells, so smaller boards cannot spawn it.
func (r Rules) Validate() error {
	switch {
	case r.Width < maxPieceSize:
		return fmt.Errorf("%w: board width %d is below %d", ErrInvalidRules, r.Width, maxPieceSize)
	case r.Height < maxPieceSize:
		return fmt.Errorf("%w: board height %d is below %d", ErrInvalidRules, r.Height, maxPieceSize)
	case r.Lines < 1:
		return fmt.Errorf("%w: line target must be positive, got %d", ErrInvalidRules, r.Lines)
	case r.DropDelay < 1:
		return fmt.Errorf("%w: drop delay must be positive, got %d", ErrInvalidRules, r.DropDelay)
	}
	return nil
}
