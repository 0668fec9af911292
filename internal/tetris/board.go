package tetris

// Board is a fixed-size grid of settled blocks. The origin is the top-left
// cell and y grows downward. Each cell remembers the kind that filled it so
// the renderer can color it; KindNone means empty.
type Board struct {
	width  int
	height int
	cells  []Kind // row-major, index y*width+x
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Kind, width*height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// inBounds reports whether (x, y) lies on the board.
func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// IsFilled reports whether cell (x, y) holds a settled block.
// The caller guarantees (x, y) is in bounds.
func (b *Board) IsFilled(x, y int) bool {
	return b.cells[y*b.width+x] != KindNone
}

// KindAt returns the kind that filled cell (x, y), or KindNone.
func (b *Board) KindAt(x, y int) Kind {
	return b.cells[y*b.width+x]
}

// Fill marks cell (x, y) as settled by a block of kind k.
func (b *Board) Fill(x, y int, k Kind) {
	b.cells[y*b.width+x] = k
}

// Collides is the single collision rule: it reports whether piece p placed
// with its top-left at (x, y) has any occupied cell outside the board or on a
// filled cell. Walls, floor, settled blocks and spawn overlap all use it.
func (b *Board) Collides(p Piece, x, y int) bool {
	for dx := 0; dx < p.size; dx++ {
		for dy := 0; dy < p.size; dy++ {
			if !p.cells[dx][dy] {
				continue
			}
			xx, yy := x+dx, y+dy
			if !b.inBounds(xx, yy) || b.IsFilled(xx, yy) {
				return true
			}
		}
	}
	return false
}

// Place writes every occupied cell of p at (x, y) into the board.
// The caller guarantees the placement does not collide.
func (b *Board) Place(p Piece, x, y int) {
	p.each(func(dx, dy int) {
		b.Fill(x+dx, y+dy, p.kind)
	})
}

// RowIsFull reports whether every column of row y is filled.
func (b *Board) RowIsFull(y int) bool {
	for x := 0; x < b.width; x++ {
		if !b.IsFilled(x, y) {
			return false
		}
	}
	return true
}

// ShiftDown removes row y by moving every row above it down by one.
// Row 0 becomes empty.
func (b *Board) ShiftDown(y int) {
	copy(b.cells[b.width:(y+1)*b.width], b.cells[:y*b.width])
	for x := 0; x < b.width; x++ {
		b.cells[x] = KindNone
	}
}
