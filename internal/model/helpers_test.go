package model

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

var sortSquares = cmpopts.SortSlices(func(a, b Square) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
})

func mustSquare(t *testing.T, s string) Square {
	t.Helper()
	sq, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("parse square %q: %v", s, err)
	}
	return sq
}

func mustSquares(t *testing.T, ss ...string) []Square {
	t.Helper()
	out := make([]Square, 0, len(ss))
	for _, s := range ss {
		out = append(out, mustSquare(t, s))
	}
	return out
}

// emptyPosition has no pieces, White to move and both queen flags set.
func emptyPosition() Position {
	return Position{ToMove: White, WhiteQueenExists: true, BlackQueenExists: true}
}

// withKings places both kings in far corners so that terminal checks pass.
func withKings(t *testing.T) Position {
	t.Helper()
	p := emptyPosition()
	p.Set(mustSquare(t, "h1"), Piece{Type: King, Color: White})
	p.Set(mustSquare(t, "h8"), Piece{Type: King, Color: Black})
	return p
}

func place(t *testing.T, p *Position, s string, kind PieceType, color Color) Square {
	t.Helper()
	sq := mustSquare(t, s)
	p.Set(sq, Piece{Type: kind, Color: color})
	return sq
}
