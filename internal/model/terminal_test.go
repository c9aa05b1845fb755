package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCheckTerminal(t *testing.T) {
	tests := []struct {
		name       string
		removeKing string
		wantLoser  Color
		wantWinner Color
	}{
		{name: "both kings present", wantLoser: NoColor, wantWinner: NoColor},
		{name: "black king gone", removeKing: "e8", wantLoser: Black, wantWinner: White},
		{name: "white king gone", removeKing: "e1", wantLoser: White, wantWinner: Black},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := NewPosition()
			if tt.removeKing != "" {
				p.Set(mustSquare(t, tt.removeKing), Piece{})
			}
			if got := p.KingCaptured(); got != tt.wantLoser {
				t.Errorf("KingCaptured: got %q, want %q", got, tt.wantLoser)
			}
			if got := p.CheckTerminal(); got != tt.wantWinner {
				t.Errorf("CheckTerminal: got %q, want %q", got, tt.wantWinner)
			}
		})
	}
}

func TestKingCapturedPrefersWhite(t *testing.T) {
	p := emptyPosition()
	if got := p.KingCaptured(); got != White {
		t.Errorf("no kings: got %q, want white", got)
	}
}

func TestQueenCapturingKingEndsTheGame(t *testing.T) {
	p := emptyPosition()
	place(t, &p, "e1", King, White)
	queen := place(t, &p, "e4", Queen, White)
	blackKing := place(t, &p, "e8", King, Black)

	if err := p.ApplyMove(queen, blackKing); err != nil {
		t.Fatalf("Qxe8: %v", err)
	}
	if got := p.CheckTerminal(); got != White {
		t.Errorf("CheckTerminal: got %q, want white", got)
	}
}

func TestPlayMoveKingCaptureResets(t *testing.T) {
	p := emptyPosition()
	place(t, &p, "e1", King, White)
	queen := place(t, &p, "e4", Queen, White)
	blackKing := place(t, &p, "e8", King, Black)
	p.WhiteQueenExists = false

	outcome, err := p.PlayMove(queen, blackKing)
	if err != nil {
		t.Fatalf("Qxe8: %v", err)
	}
	if outcome.Winner != White {
		t.Fatalf("winner: got %q, want white", outcome.Winner)
	}
	if outcome.Announcement() != "White wins!" {
		t.Errorf("announcement: got %q", outcome.Announcement())
	}
	if diff := cmp.Diff(NewPosition(), p); diff != "" {
		t.Errorf("position not reset (-want +got):\n%s", diff)
	}
}

func TestPlayMoveTogglesTurn(t *testing.T) {
	p := NewPosition()
	moves := [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}}
	want := []Color{Black, White, Black}
	for i, m := range moves {
		outcome, err := p.PlayMove(mustSquare(t, m[0]), mustSquare(t, m[1]))
		if err != nil {
			t.Fatalf("%s-%s: %v", m[0], m[1], err)
		}
		if outcome.Winner != NoColor || outcome.PendingPromotion != nil {
			t.Fatalf("%s-%s: unexpected outcome %v", m[0], m[1], outcome)
		}
		if p.ToMove != want[i] {
			t.Errorf("after %s-%s: side to move %q, want %q", m[0], m[1], p.ToMove, want[i])
		}
	}
	if !p.PawnMoved[4][4] || !p.PawnMoved[3][4] {
		t.Errorf("pawn flags not set on e4/e5: %v", p.PawnMoved)
	}
	if p.PawnMoved[5][5] {
		t.Error("knight destination must not set the pawn flag")
	}
}

func TestPlayMoveRejectsIllegal(t *testing.T) {
	p := NewPosition()
	before := p
	if _, err := p.PlayMove(mustSquare(t, "e7"), mustSquare(t, "e5")); err == nil {
		t.Fatal("black moved on white's turn")
	}
	if diff := cmp.Diff(before, p); diff != "" {
		t.Errorf("position changed (-before +after):\n%s", diff)
	}
}

func TestShortestKingCapture(t *testing.T) {
	p := NewPosition()
	moves := [][2]string{
		{"f2", "f3"}, {"e7", "e5"},
		{"g2", "g4"}, {"d8", "h4"},
		{"a2", "a3"}, {"h4", "e1"},
	}
	var outcome Outcome
	for _, m := range moves {
		var err error
		outcome, err = p.PlayMove(mustSquare(t, m[0]), mustSquare(t, m[1]))
		if err != nil {
			t.Fatalf("%s-%s: %v", m[0], m[1], err)
		}
	}
	if outcome.Winner != Black {
		t.Fatalf("winner: got %q, want black", outcome.Winner)
	}
	if diff := cmp.Diff(NewPosition(), p); diff != "" {
		t.Errorf("position not reset (-want +got):\n%s", diff)
	}
}
