package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Rotation selects the direction of a 90° turn.
type Rotation int

const (
	RotateCW Rotation = iota
	RotateCCW
)

// Game is the state machine of a single Tetris run.
//
// A piece spawns at the top center, falls one row every DropDelay frames,
// and freezes into the board when it cannot fall further. Freezing runs the
// line-clear scanner and spawns the next piece. The game is won when the
// line target reaches zero and lost when a piece cannot be placed at spawn.
// Once either happens every operation is a no-op.
//
// Invalid moves, rotations and holds are silently rejected; nothing here
// returns an error.
type Game struct {
	rules    Rules
	glyphs   Glyphs
	tickRate int
	rng      *rand.Rand

	board   *Board
	current *Piece // nil until spawned
	next    Piece
	hold    *Piece // nil until the first hold
	x, y    int    // top-left of the current piece

	dropTimer      int
	targetLines    int
	remainingLines int
	elapsedFrames  int
	holdUsed       bool
	won            bool
	lost           bool
}

// New builds a game with an empty board and performs the initial spawn.
// rng drives piece selection; pass a seeded source for reproducible games.
func New(rules Rules, rng *rand.Rand) *Game {
	g := &Game{
		rules:       rules,
		glyphs:      DefaultGlyphs(),
		tickRate:    core.DefaultConfig().TickRate,
		targetLines: rules.Lines,
	}
	g.start(rng)
	return g
}

// start resets all run state and spawns the first piece.
func (g *Game) start(rng *rand.Rand) {
	g.rng = rng
	g.board = NewBoard(g.rules.Width, g.rules.Height)
	g.current = nil
	g.hold = nil
	g.x, g.y = 0, 0
	g.dropTimer = g.rules.DropDelay
	g.remainingLines = g.targetLines
	g.elapsedFrames = 0
	g.holdUsed = false
	g.won = false
	g.lost = false

	g.next = randomPiece(g.rng)
	g.Spawn()
}

// Reset restarts the game from a new seed, keeping the rules and line target.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate > 0 {
		g.tickRate = cfg.TickRate
	}
	g.start(rand.New(rand.NewSource(cfg.Seed)))
}

// SetLines sets the number of lines to clear. Call it before play starts.
func (g *Game) SetLines(lines int) {
	g.targetLines = lines
	g.remainingLines = lines
}

// SetGlyphs changes the strings drawn for blocks and the drop shadow.
func (g *Game) SetGlyphs(glyphs Glyphs) {
	g.glyphs = glyphs
}

// SetTickRate sets the frames per second used to display elapsed time.
func (g *Game) SetTickRate(fps int) {
	if fps > 0 {
		g.tickRate = fps
	}
}

// IsGameOver reports whether the game has been won or lost.
func (g *Game) IsGameOver() bool {
	return g.won || g.lost
}

// Won reports whether the line target was reached.
func (g *Game) Won() bool { return g.won }

// Lost reports whether a piece could not be placed at spawn.
func (g *Game) Lost() bool { return g.lost }

// LinesLeft returns the number of lines still to clear.
func (g *Game) LinesLeft() int { return g.remainingLines }

// ElapsedFrames returns the number of frames played.
func (g *Game) ElapsedFrames() int { return g.elapsedFrames }

// Board returns the settled blocks.
func (g *Game) Board() *Board { return g.board }

// Next returns the piece that will spawn next.
func (g *Game) Next() Piece { return g.next }

// Held returns the held piece, if any.
func (g *Game) Held() (Piece, bool) {
	if g.hold == nil {
		return Piece{}, false
	}
	return *g.hold, true
}

// Current returns the active piece and its position without spawning one.
func (g *Game) Current() (p Piece, x, y int, ok bool) {
	if g.current == nil {
		return Piece{}, 0, 0, false
	}
	return *g.current, g.x, g.y, true
}

// ensureCurrent spawns a piece if none is active. Every operation that
// works on the active piece calls it first.
func (g *Game) ensureCurrent() {
	if g.current == nil {
		g.Spawn()
	}
}

// Spawn promotes the next piece to the top center of the board and draws a
// new next piece. If the spawned piece collides the game is lost.
func (g *Game) Spawn() {
	if g.IsGameOver() {
		return
	}
	g.setCurrent(g.next)
	g.next = randomPiece(g.rng)
}

// setCurrent replaces the active piece and moves it to the spawn position.
func (g *Game) setCurrent(p Piece) {
	g.current = &p
	g.x = g.rules.Width/2 - p.size/2
	g.y = 0

	if g.board.Collides(p, g.x, g.y) {
		g.lost = true
	}
}

// Hold stashes the canonical form of the active piece. With an empty hold
// slot the next piece spawns; otherwise the previously held piece becomes
// active. It works once per spawned piece until the next freeze.
func (g *Game) Hold() {
	if g.IsGameOver() || g.holdUsed {
		return
	}
	g.ensureCurrent()
	if g.IsGameOver() {
		return
	}

	g.holdUsed = true
	stashed := g.current.Canonical()
	if g.hold == nil {
		g.hold = &stashed
		g.Spawn()
		return
	}

	held := *g.hold
	g.hold = &stashed
	g.setCurrent(held)
}

// SoftDrop moves the active piece down one row, or freezes it in place
// when the row below is blocked.
func (g *Game) SoftDrop() {
	if g.IsGameOver() {
		return
	}
	g.ensureCurrent()
	if g.IsGameOver() {
		return
	}

	if g.board.Collides(*g.current, g.x, g.y+1) {
		g.freeze()
		return
	}
	g.y++
}

// HardDrop snaps the active piece to its floor and freezes it.
func (g *Game) HardDrop() {
	if g.IsGameOver() {
		return
	}
	g.ensureCurrent()
	if g.IsGameOver() {
		return
	}

	g.y = g.FloorY()
	g.SoftDrop()
}

// FloorY returns the lowest row the active piece can reach by falling
// straight down from its current position. It does not spawn a piece; with
// no active piece it returns the current row.
func (g *Game) FloorY() int {
	if g.current == nil {
		return g.y
	}
	dy := 0
	for !g.board.Collides(*g.current, g.x, g.y+dy+1) {
		dy++
	}
	return g.y + dy
}

// TryMoveHorizontal shifts the active piece by dx columns if the new
// position is free.
func (g *Game) TryMoveHorizontal(dx int) {
	if g.IsGameOver() {
		return
	}
	g.ensureCurrent()
	if g.IsGameOver() {
		return
	}

	if !g.board.Collides(*g.current, g.x+dx, g.y) {
		g.x += dx
	}
}

// TryRotate turns the active piece in place if the rotated bitmap fits at
// the current position. There are no wall kicks.
func (g *Game) TryRotate(dir Rotation) {
	if g.IsGameOver() {
		return
	}
	g.ensureCurrent()
	if g.IsGameOver() {
		return
	}

	var rotated Piece
	if dir == RotateCCW {
		rotated = g.current.RotatedCCW()
	} else {
		rotated = g.current.RotatedCW()
	}

	if !g.board.Collides(rotated, g.x, g.y) {
		g.current = &rotated
	}
}

// freeze commits the active piece to the board, clears full rows and
// spawns the next piece unless the clear won the game.
func (g *Game) freeze() {
	g.board.Place(*g.current, g.x, g.y)
	g.current = nil

	g.scanAndClear()
	if g.IsGameOver() {
		return
	}

	g.Spawn()
	g.holdUsed = false
}

// scanAndClear clears full rows scanning top to bottom. A cleared row is
// compacted immediately, so rows found later in the same pass are already
// at their shifted index.
func (g *Game) scanAndClear() {
	for y := 0; y < g.board.Height(); y++ {
		if g.board.RowIsFull(y) {
			g.clearRow(y)
		}
	}
}

// clearRow removes row y and counts it toward the line target. The counter
// stops at zero; reaching zero wins the game.
func (g *Game) clearRow(y int) {
	g.board.ShiftDown(y)

	if g.remainingLines > 0 {
		g.remainingLines--
		if g.remainingLines == 0 {
			g.won = true
		}
	}
}

// Update advances the game by one frame using the keys held in the frame.
func (g *Game) Update(in core.InputFrame) {
	if g.IsGameOver() {
		return
	}

	// gravity
	g.dropTimer--
	if g.dropTimer <= 0 || in.Has(core.ActionSoftDrop) {
		g.SoftDrop()
		g.dropTimer = g.rules.DropDelay
	}

	if in.Has(core.ActionHardDrop) {
		g.HardDrop()
	}

	if in.Has(core.ActionHold) && !g.holdUsed {
		g.Hold()
	}

	moveX := 0
	if in.Has(core.ActionLeft) {
		moveX--
	}
	if in.Has(core.ActionRight) {
		moveX++
	}
	if moveX != 0 {
		g.TryMoveHorizontal(moveX)
	}

	// CCW is checked first and wins when both are held.
	if in.Has(core.ActionRotateCCW) {
		g.TryRotate(RotateCCW)
	} else if in.Has(core.ActionRotateCW) {
		g.TryRotate(RotateCW)
	}

	g.elapsedFrames++
}

// Step advances the simulation by one tick for the platform loop.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.Update(in)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver:  g.IsGameOver(),
		Won:       g.won,
		Lost:      g.lost,
		LinesLeft: g.remainingLines,
		Frames:    g.elapsedFrames,
	}
}
