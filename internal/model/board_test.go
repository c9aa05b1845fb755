package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPosition(t *testing.T) {
	p := NewPosition()

	if p.ToMove != White {
		t.Errorf("side to move: got %s", p.ToMove)
	}
	if !p.WhiteQueenExists || !p.BlackQueenExists {
		t.Error("queen flags must start set")
	}
	checks := map[string]Piece{
		"a8": {Type: Rook, Color: Black},
		"d8": {Type: Queen, Color: Black},
		"e8": {Type: King, Color: Black},
		"g7": {Type: Pawn, Color: Black},
		"b2": {Type: Pawn, Color: White},
		"d1": {Type: Queen, Color: White},
		"e1": {Type: King, Color: White},
		"g1": {Type: Knight, Color: White},
		"e4": {},
	}
	for s, want := range checks {
		if got := p.At(mustSquare(t, s)); got != want {
			t.Errorf("%s: got %+v, want %+v", s, got, want)
		}
	}
}

func TestResetRestoresInitialPosition(t *testing.T) {
	p := NewPosition()
	for _, m := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}, {"d8", "d5"}} {
		if _, err := p.PlayMove(mustSquare(t, m[0]), mustSquare(t, m[1])); err != nil {
			t.Fatalf("%s-%s: %v", m[0], m[1], err)
		}
	}
	p.WhiteQueenExists = false
	p.BlackQueenExists = false

	p.Reset()
	if diff := cmp.Diff(NewPosition(), p); diff != "" {
		t.Errorf("reset mismatch (-want +got):\n%s", diff)
	}
	for row := range p.PawnMoved {
		for col := range p.PawnMoved[row] {
			if p.PawnMoved[row][col] {
				t.Fatalf("pawn flag left at (%d,%d)", row, col)
			}
		}
	}
}

func TestPositionIsAValue(t *testing.T) {
	p := NewPosition()
	snapshot := p
	if err := p.ApplyMove(mustSquare(t, "b1"), mustSquare(t, "c3")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(NewPosition(), snapshot); diff != "" {
		t.Errorf("snapshot changed (-want +got):\n%s", diff)
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in      string
		want    Square
		wantErr bool
	}{
		{in: "a8", want: Square{Row: 0, Col: 0}},
		{in: "h1", want: Square{Row: 7, Col: 7}},
		{in: "E2", want: Square{Row: 6, Col: 4}},
		{in: " d5 ", want: Square{Row: 3, Col: 3}},
		{in: "i1", wantErr: true},
		{in: "a9", wantErr: true},
		{in: "a", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSquare(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%q: got %+v, want %+v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() != strings.ToLower(strings.TrimSpace(tt.in)) {
			t.Errorf("%q: String() = %q", tt.in, got.String())
		}
	}
}

func TestPositionString(t *testing.T) {
	lines := strings.Split(NewPosition().String(), "\n")
	if lines[0] != "8 r n b q k b n r" {
		t.Errorf("rank 8: %q", lines[0])
	}
	if lines[4] != "4 . . . . . . . ." {
		t.Errorf("rank 4: %q", lines[4])
	}
	if lines[7] != "1 R N B Q K B N R" {
		t.Errorf("rank 1: %q", lines[7])
	}
	if lines[8] != "  a b c d e f g h" {
		t.Errorf("files: %q", lines[8])
	}
}

func TestColorOpponent(t *testing.T) {
	if White.Opponent() != Black || Black.Opponent() != White || NoColor.Opponent() != NoColor {
		t.Error("unexpected opponents")
	}
}
