package tetris

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	return New(DefaultRules(), rand.New(rand.NewSource(seed)))
}

// frameWith builds an input frame holding the given actions.
func frameWith(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// force replaces the active piece with the canonical piece of kind k at spawn.
func force(g *Game, k Kind) {
	g.setCurrent(CanonicalPiece(k))
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 1)

	p, x, y, ok := g.Current()
	require.True(t, ok, "constructor performs the initial spawn")
	assert.Equal(t, 10/2-p.Size()/2, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, p.Canonical(), p)

	assert.Equal(t, 40, g.LinesLeft())
	assert.Equal(t, 0, g.ElapsedFrames())
	assert.Equal(t, 60, g.dropTimer)
	assert.False(t, g.IsGameOver())
	_, held := g.Held()
	assert.False(t, held)
	assert.Equal(t, 0, g.Snapshot().Filled)
}

func TestSpawnPosition(t *testing.T) {
	g := newTestGame(t, 1)

	tests := []struct {
		kind Kind
		x    int
	}{
		{KindI, 3},
		{KindO, 4},
		{KindT, 4},
		{KindL, 4},
	}
	for _, tc := range tests {
		g.next = CanonicalPiece(tc.kind)
		g.Spawn()
		p, x, y, _ := g.Current()
		assert.Equal(t, tc.kind, p.Kind())
		assert.Equal(t, tc.x, x, "kind %s", tc.kind)
		assert.Equal(t, 0, y)
	}
}

func TestSpawnPromotesNext(t *testing.T) {
	g := newTestGame(t, 3)
	next := g.Next()

	g.Spawn()
	p, _, _, _ := g.Current()
	assert.Equal(t, next, p)
}

func TestLazySpawnAfterDespawn(t *testing.T) {
	g := newTestGame(t, 3)
	next := g.Next()
	g.current = nil

	g.TryMoveHorizontal(1)

	p, x, _, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, next.Kind(), p.Kind())
	assert.Equal(t, 10/2-p.Size()/2+1, x)
}

func TestSoftDropMovesDown(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindO)

	g.SoftDrop()
	_, _, y, _ := g.Current()
	assert.Equal(t, 1, y)
}

func TestSoftDropFreezesAtFloor(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindO)
	g.y = 18

	g.SoftDrop()

	assert.True(t, g.Board().IsFilled(4, 18))
	assert.True(t, g.Board().IsFilled(5, 19))
	_, _, y, ok := g.Current()
	require.True(t, ok, "freeze spawns the next piece")
	assert.Equal(t, 0, y)
}

func TestHardDrop(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindO)
	assert.Equal(t, 18, g.FloorY())

	g.HardDrop()

	for _, c := range [][2]int{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		assert.Equal(t, KindO, g.Board().KindAt(c[0], c[1]))
	}
	assert.Equal(t, 4, g.Snapshot().Filled)
}

func TestFloorYIsLowestFreeRow(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for range 50 {
		g := newTestGame(t, rng.Int63())
		for range 15 {
			g.Board().Fill(rng.Intn(10), 4+rng.Intn(16), KindS)
		}
		force(g, Kinds()[rng.Intn(7)])
		if g.lost {
			continue
		}

		p, x, y, _ := g.Current()
		floor := g.FloorY()
		assert.GreaterOrEqual(t, floor, y)
		assert.False(t, g.Board().Collides(p, x, floor))
		assert.True(t, g.Board().Collides(p, x, floor+1))
	}
}

func TestTryMoveHorizontalWalls(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindI)

	g.TryMoveHorizontal(-3)
	_, x, _, _ := g.Current()
	assert.Equal(t, 0, x)

	g.TryMoveHorizontal(-1)
	_, x, _, _ = g.Current()
	assert.Equal(t, 0, x, "left wall rejects the move")

	g.TryMoveHorizontal(6)
	_, x, _, _ = g.Current()
	assert.Equal(t, 6, x)

	g.TryMoveHorizontal(1)
	_, x, _, _ = g.Current()
	assert.Equal(t, 6, x, "right wall rejects the move")
}

func TestTryMoveHorizontalBlocked(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindO)
	g.Board().Fill(6, 1, KindJ)

	g.TryMoveHorizontal(1)
	_, x, _, _ := g.Current()
	assert.Equal(t, 4, x)
}

func TestTryRotate(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindT)

	g.TryRotate(RotateCW)
	p, _, _, _ := g.Current()
	assert.Equal(t, CanonicalPiece(KindT).RotatedCW(), p)

	g.TryRotate(RotateCCW)
	p, _, _, _ = g.Current()
	assert.Equal(t, CanonicalPiece(KindT), p)
}

func TestTryRotateRejectedWithoutKick(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindI)
	g.TryRotate(RotateCW) // vertical in column dx=2
	g.TryMoveHorizontal(-5)

	vertical, x, _, _ := g.Current()
	require.Equal(t, -2, x, "vertical I hugs the left wall")

	g.TryRotate(RotateCCW)
	p, x2, _, _ := g.Current()
	assert.Equal(t, vertical, p, "rotation into the wall is ignored")
	assert.Equal(t, -2, x2, "no kick to another column")
}

func TestHoldFirstUse(t *testing.T) {
	g := newTestGame(t, 5)
	force(g, KindT)
	g.TryRotate(RotateCW)
	next := g.Next()

	g.Hold()

	held, ok := g.Held()
	require.True(t, ok)
	assert.Equal(t, CanonicalPiece(KindT), held, "hold stores the unrotated form")

	p, x, y, _ := g.Current()
	assert.Equal(t, next, p, "the previous next piece becomes active")
	assert.Equal(t, 10/2-p.Size()/2, x)
	assert.Equal(t, 0, y)
	assert.True(t, g.holdUsed)
}

func TestHoldOncePerPiece(t *testing.T) {
	g := newTestGame(t, 5)
	g.Update(frameWith(core.ActionHold))

	before := g.Snapshot()
	current, _, _, _ := g.Current()
	held, _ := g.Held()

	g.Update(frameWith(core.ActionHold))

	after := g.Snapshot()
	current2, _, _, _ := g.Current()
	held2, _ := g.Held()

	assert.Equal(t, current, current2)
	assert.Equal(t, held, held2)
	assert.Equal(t, before.Next, after.Next)
	assert.Equal(t, before.X, after.X)
	assert.Equal(t, before.Y, after.Y)
	assert.True(t, after.HoldUsed)
	assert.Equal(t, before.Frame+1, after.Frame)
}

func TestHoldSwapAfterFreeze(t *testing.T) {
	g := newTestGame(t, 9)
	force(g, KindL)
	g.Hold()

	g.HardDrop()
	require.False(t, g.holdUsed, "freeze re-enables hold")

	force(g, KindZ)
	g.TryRotate(RotateCCW)
	next := g.Next()

	g.Hold()

	p, x, y, _ := g.Current()
	assert.Equal(t, CanonicalPiece(KindL), p, "held piece returns in spawn orientation")
	assert.Equal(t, 4, x)
	assert.Equal(t, 0, y)
	held, _ := g.Held()
	assert.Equal(t, CanonicalPiece(KindZ), held)
	assert.Equal(t, next, g.Next(), "a swap does not draw from next")
}

func TestUpdateGravity(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindO)
	empty := core.NewInputFrame()

	for range 59 {
		g.Update(empty)
	}
	_, _, y, _ := g.Current()
	assert.Equal(t, 0, y)

	g.Update(empty)
	_, _, y, _ = g.Current()
	assert.Equal(t, 1, y)
	assert.Equal(t, 60, g.dropTimer)
	assert.Equal(t, 60, g.ElapsedFrames())
}

func TestUpdateForcedSoftDropResetsTimer(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindO)
	g.Update(core.NewInputFrame())

	g.Update(frameWith(core.ActionSoftDrop))

	_, _, y, _ := g.Current()
	assert.Equal(t, 1, y)
	assert.Equal(t, 60, g.dropTimer)
}

func TestUpdateHorizontalInputsCancel(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindO)

	g.Update(frameWith(core.ActionLeft, core.ActionRight))
	_, x, _, _ := g.Current()
	assert.Equal(t, 4, x)

	g.Update(frameWith(core.ActionRight))
	_, x, _, _ = g.Current()
	assert.Equal(t, 5, x)
}

func TestUpdateRotateCCWWins(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindJ)

	g.Update(frameWith(core.ActionRotateCW, core.ActionRotateCCW))

	p, _, _, _ := g.Current()
	assert.Equal(t, CanonicalPiece(KindJ).RotatedCCW(), p)
}

func TestUpdateHardDrop(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindI)

	g.Update(frameWith(core.ActionHardDrop))

	for x := 3; x <= 6; x++ {
		assert.True(t, g.Board().IsFilled(x, 19))
	}
}

func TestScanAndClearTopDown(t *testing.T) {
	g := newTestGame(t, 1)
	b := g.Board()
	b.Fill(0, 16, KindT)
	fillRow(b, 17)
	b.Fill(1, 18, KindS)
	fillRow(b, 19)

	g.scanAndClear()

	for y := 0; y < b.Height(); y++ {
		assert.False(t, b.RowIsFull(y), "row %d still full", y)
	}
	assert.Equal(t, KindT, b.KindAt(0, 18), "row 16 moves down by two")
	assert.Equal(t, KindS, b.KindAt(1, 19), "row 18 moves down by one")
	assert.Equal(t, 2, g.Snapshot().Filled)
	assert.Equal(t, 38, g.LinesLeft())
}

func TestScanAndClearAdjacentRows(t *testing.T) {
	g := newTestGame(t, 1)
	b := g.Board()
	b.Fill(3, 17, KindL)
	fillRow(b, 18)
	fillRow(b, 19)

	g.scanAndClear()

	assert.Equal(t, KindL, b.KindAt(3, 19))
	assert.Equal(t, 1, g.Snapshot().Filled)
	for x := 0; x < b.Width(); x++ {
		assert.False(t, b.IsFilled(x, 0))
	}
	assert.Equal(t, 38, g.LinesLeft())
}

func TestWinByClearingLastLine(t *testing.T) {
	rules := DefaultRules()
	rules.Lines = 1
	g := New(rules, rand.New(rand.NewSource(2)))

	// Two I pieces frozen into the bottom row cover columns 0-7.
	force(g, KindI)
	g.TryMoveHorizontal(-3)
	g.HardDrop()
	force(g, KindI)
	g.TryMoveHorizontal(1)
	g.HardDrop()
	require.False(t, g.IsGameOver())
	require.False(t, g.Board().RowIsFull(19))

	// The O piece fills the gap in columns 8-9.
	force(g, KindO)
	g.TryMoveHorizontal(4)
	g.HardDrop()

	assert.Equal(t, 0, g.LinesLeft())
	assert.True(t, g.Won())
	assert.False(t, g.Lost())
	assert.True(t, g.IsGameOver())
	assert.Equal(t, 2, g.Snapshot().Filled, "top half of the O remains")
	assert.True(t, g.Board().IsFilled(8, 19))
	assert.True(t, g.Board().IsFilled(9, 19))
	_, _, _, active := g.Current()
	assert.False(t, active, "no piece spawns after the win")
}

func TestWinCounterStopsAtZero(t *testing.T) {
	g := newTestGame(t, 1)
	g.SetLines(1)
	fillRow(g.Board(), 18)
	fillRow(g.Board(), 19)

	g.scanAndClear()

	assert.Equal(t, 0, g.LinesLeft())
	assert.True(t, g.Won())
	assert.False(t, g.Lost())
}

func TestLoseOnBlockedSpawn(t *testing.T) {
	g := newTestGame(t, 4)

	// Freezing the active piece where it spawned blocks the next spawn:
	// every kind covers cell (5, 1) at spawn.
	g.freeze()

	assert.True(t, g.Lost())
	assert.False(t, g.Won())
	assert.True(t, g.IsGameOver())
}

func TestGameOverIsTerminal(t *testing.T) {
	g := newTestGame(t, 4)
	g.freeze()
	require.True(t, g.Lost())

	before := g.Snapshot()
	cells := make([]Kind, len(g.Board().cells))
	copy(cells, g.Board().cells)

	all := frameWith(
		core.ActionSoftDrop, core.ActionHardDrop, core.ActionHold,
		core.ActionLeft, core.ActionRotateCW,
	)
	for range 120 {
		g.Update(all)
	}
	g.Spawn()
	g.Hold()
	g.SoftDrop()
	g.HardDrop()
	g.TryMoveHorizontal(1)
	g.TryRotate(RotateCW)

	assert.Equal(t, before, g.Snapshot())
	assert.Equal(t, cells, g.Board().cells)
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	script := []core.Action{
		core.ActionLeft, core.ActionRotateCW, core.ActionHardDrop,
		core.ActionHold, core.ActionRight, core.ActionSoftDrop,
		core.ActionRotateCCW, core.ActionHardDrop,
	}
	for i := range 2000 {
		in := core.NewInputFrame()
		if i%7 == 0 {
			in.Set(script[(i/7)%len(script)])
		}
		g1.Update(in)
		g2.Update(in)
		require.Equal(t, g1.Snapshot(), g2.Snapshot(), "diverged at frame %d", i)
	}
}

func TestResetKeepsLineTarget(t *testing.T) {
	g := newTestGame(t, 1)
	g.SetLines(7)
	g.freeze()
	require.True(t, g.IsGameOver())

	g.Reset(core.RuntimeConfig{Seed: 99, TickRate: 30})

	assert.False(t, g.IsGameOver())
	assert.Equal(t, 7, g.LinesLeft())
	assert.Equal(t, 0, g.Snapshot().Filled)
	assert.Equal(t, 30, g.tickRate)
}

func TestStepReportsState(t *testing.T) {
	g := newTestGame(t, 1)
	res := g.Step(core.NewInputFrame())

	assert.Equal(t, core.GameState{LinesLeft: 40, Frames: 1}, res.State)
}

func TestRenderLayout(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "40 lines left")
	assert.Contains(t, out, "00:00:00")
	assert.Contains(t, out, "Next")
	assert.Contains(t, out, "Hold")
	assert.Contains(t, out, "██")
	assert.Contains(t, out, "░░", "shadow is drawn at the floor")
	assert.NotContains(t, out, "You")
}

func TestRenderFrozenBlocksColored(t *testing.T) {
	g := newTestGame(t, 1)
	force(g, KindO)
	g.HardDrop()

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	needW, needH := LayoutSize(10, 20)
	ox, oy := (80-needW)/2, (24-needH)/2
	// Board cell (4, 19) is grid cell (5, 20).
	cell := screen.GetCell(ox+5*cellWidth, oy+20)
	assert.Equal(t, '█', cell.Rune)
	assert.Equal(t, core.ColorYellow, cell.Color)
}

func TestRenderTextColors(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	needW, needH := LayoutSize(10, 20)
	ox, oy := (80-needW)/2, (24-needH)/2

	// "Next" title starts one cell right of the panel's left border.
	next := screen.GetCell(ox+(10+nextOffsetX+1)*cellWidth, oy)
	assert.Equal(t, 'N', next.Rune)
	assert.Equal(t, core.ColorWhite, next.Color)

	readout := "40 lines left"
	center := (10 + 2) * cellWidth / 2
	first := screen.GetCell(ox+center-len(readout)/2, oy+22)
	assert.Equal(t, '4', first.Rune)
	assert.Equal(t, core.ColorGray, first.Color)

	clock := screen.GetCell(ox+center-len("00:00:00")/2, oy+23)
	assert.Equal(t, '0', clock.Rune)
	assert.Equal(t, core.ColorGray, clock.Color)
}

func TestRenderBanners(t *testing.T) {
	g := newTestGame(t, 4)
	g.freeze()
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "You Lost")

	g = newTestGame(t, 4)
	g.SetLines(1)
	fillRow(g.Board(), 19)
	g.scanAndClear()
	g.elapsedFrames = 90
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "You Win")
	assert.Equal(t, 2, strings.Count(out, "00:01:50"), "readout and banner both show the final time")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(40, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		frames, fps int
		want        string
	}{
		{0, 60, "00:00:00"},
		{60, 60, "00:01:00"},
		{90, 60, "00:01:50"},
		{3660, 60, "01:01:00"},
		{60*3600 + 30, 60, "60:00:50"},
		{45, 30, "00:01:50"},
		{30, 0, "00:00:50"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatElapsed(tc.frames, tc.fps), "frames=%d fps=%d", tc.frames, tc.fps)
	}
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	bad := []Rules{
		{Width: 3, Height: 20, Lines: 1, DropDelay: 1},
		{Width: 10, Height: 2, Lines: 1, DropDelay: 1},
		{Width: 10, Height: 20, Lines: 0, DropDelay: 1},
		{Width: 10, Height: 20, Lines: 1, DropDelay: 0},
	}
	for _, r := range bad {
		assert.ErrorIs(t, r.Validate(), ErrInvalidRules, "%+v", r)
	}
}
