// Package tetris implements the falling-block puzzle engine: piece geometry,
// the board and its collision rule, line clearing and the per-frame state machine.
// It renders into a core.Screen and reads input from a core.InputFrame, so it
// has no terminal dependencies of its own.
package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven tetrominoes. The zero value is KindNone,
// which the board uses for empty cells.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL

	kindCount
)

// maxPieceSize is the side of the largest bitmap (the I piece).
const maxPieceSize = 4

// String returns the one-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "-"
	}
}

// Color returns the display color for blocks of this kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindO:
		return core.ColorYellow
	case KindT:
		return core.ColorMagenta
	case KindS:
		return core.ColorGreen
	case KindZ:
		return core.ColorRed
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Piece is an immutable square occupancy bitmap of a given kind.
// Rotations return new values; the canonical table is never modified.
// Pieces are comparable with ==.
type Piece struct {
	kind  Kind
	size  int
	cells [maxPieceSize][maxPieceSize]bool // indexed [x][y]
}

// Templates are read row by row: character y*size+x describes cell (x, y).
var templates = [kindCount]struct {
	size  int
	shape string
}{
	KindI: {4, "XXXXOOOOXXXXXXXX"},
	KindO: {2, "OOOO"},
	KindT: {3, "XOXOOOXXX"},
	KindS: {3, "XOOOOXXXX"},
	KindZ: {3, "OOXXOOXXX"},
	KindJ: {3, "OXXOOOXXX"},
	KindL: {3, "XXOOOOXXX"},
}

// canonical holds the spawn orientation of every kind, built once at init.
var canonical [kindCount]Piece

func init() {
	for k := KindI; k < kindCount; k++ {
		canonical[k] = parseTemplate(k, templates[k].size, templates[k].shape)
	}
}

// parseTemplate builds a bitmap from a template string where 'O' marks an
// occupied cell and any other character an empty one.
func parseTemplate(kind Kind, size int, shape string) Piece {
	p := Piece{kind: kind, size: size}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			p.cells[x][y] = shape[y*size+x] == 'O'
		}
	}
	return p
}

// Kinds returns all seven playable kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// CanonicalPiece returns the spawn orientation of the given kind.
func CanonicalPiece(k Kind) Piece {
	return canonical[k]
}

// randomPiece picks one of the seven kinds uniformly. This is not a 7-bag.
func randomPiece(rng *rand.Rand) Piece {
	return canonical[KindI+Kind(rng.Intn(int(kindCount-KindI)))]
}

// Kind returns the piece identity.
func (p Piece) Kind() Kind {
	return p.kind
}

// Size returns the side of the square bitmap (2, 3 or 4).
func (p Piece) Size() int {
	return p.size
}

// Occupies reports whether bitmap cell (dx, dy) is occupied.
// Both indices must be in [0, Size()).
func (p Piece) Occupies(dx, dy int) bool {
	return p.cells[dx][dy]
}

// Canonical returns the unrotated form of this piece's kind.
func (p Piece) Canonical() Piece {
	return canonical[p.kind]
}

// RotatedCW returns the piece turned 90° clockwise.
func (p Piece) RotatedCW() Piece {
	r := Piece{kind: p.kind, size: p.size}
	n := p.size
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			r.cells[x][y] = p.cells[y][n-1-x]
		}
	}
	return r
}

// RotatedCCW returns the piece turned 90° counter-clockwise.
func (p Piece) RotatedCCW() Piece {
	r := Piece{kind: p.kind, size: p.size}
	n := p.size
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			r.cells[x][y] = p.cells[n-1-y][x]
		}
	}
	return r
}

// BlockCount returns the number of occupied cells.
func (p Piece) BlockCount() int {
	count := 0
	p.each(func(int, int) { count++ })
	return count
}

// each calls fn for every occupied cell of the bitmap.
func (p Piece) each(fn func(dx, dy int)) {
	for dx := 0; dx < p.size; dx++ {
		for dy := 0; dy < p.size; dy++ {
			if p.cells[dx][dy] {
				fn(dx, dy)
			}
		}
	}
}
