package tetris

// GameStateType names the phase of a run.
type GameStateType string

const (
	StatePlaying GameStateType = "playing"
	StateWon     GameStateType = "won"
	StateLost    GameStateType = "lost"
)

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Frame     int
	X, Y      int
	Current   Kind // KindNone when no piece is active
	Next      Kind
	Held      Kind // KindNone when nothing is held
	HoldUsed  bool
	DropTimer int
	LinesLeft int
	Filled    int // Number of settled cells
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.won:
		state = StateWon
	case g.lost:
		state = StateLost
	}

	snap := Snapshot{
		Frame:     g.elapsedFrames,
		X:         g.x,
		Y:         g.y,
		Next:      g.next.kind,
		HoldUsed:  g.holdUsed,
		DropTimer: g.dropTimer,
		LinesLeft: g.remainingLines,
		State:     state,
	}
	if g.current != nil {
		snap.Current = g.current.kind
	}
	if g.hold != nil {
		snap.Held = g.hold.kind
	}
	for x := 0; x < g.board.Width(); x++ {
		for y := 0; y < g.board.Height(); y++ {
			if g.board.IsFilled(x, y) {
				snap.Filled++
			}
		}
	}
	return snap
}
