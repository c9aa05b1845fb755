package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/kingchess-backend/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestProcessMatchmaking(t *testing.T) {
	gm := NewGameManager()
	if gm.processMatchmaking() {
		t.Fatal("empty queue produced a game")
	}

	chA := make(chan string, 1)
	chB := make(chan string, 1)
	gm.RegisterMatchmakingChannel("a", chA)
	gm.RegisterMatchmakingChannel("b", chB)
	for _, id := range []string{"a", "b"} {
		if err := gm.JoinMatchmaking(id); err != nil {
			t.Fatal(err)
		}
	}

	if !gm.processMatchmaking() {
		t.Fatal("two queued players were not paired")
	}

	var evA, evB MatchFoundEvent
	if err := json.Unmarshal([]byte(<-chA), &evA); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(<-chB), &evB); err != nil {
		t.Fatal(err)
	}
	if evA.GameID == "" || evA.GameID != evB.GameID {
		t.Fatalf("game ids: %q %q", evA.GameID, evB.GameID)
	}
	if evA.Color != model.White || evB.Color != model.Black {
		t.Errorf("colors: %s %s", evA.Color, evB.Color)
	}
	if _, ok := <-chA; ok {
		t.Error("channel a not closed after delivery")
	}

	game, err := gm.GetGame(evA.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if !game.IsPlayerInGame("a") || !game.IsPlayerInGame("b") {
		t.Error("players not seated")
	}
	if gm.QueueSize() != 0 {
		t.Errorf("queue size: %d", gm.QueueSize())
	}
}

func TestRegisterMatchmakingChannelReplacesOld(t *testing.T) {
	gm := NewGameManager()
	old := make(chan string, 1)
	gm.RegisterMatchmakingChannel("a", old)
	gm.RegisterMatchmakingChannel("a", make(chan string, 1))
	if _, ok := <-old; ok {
		t.Error("old channel still open")
	}

	current := make(chan string, 1)
	gm.RegisterMatchmakingChannel("b", current)
	gm.UnregisterMatchmakingChannel("b", make(chan string))
	gm.mu.RLock()
	_, ok := gm.matchingChannels["b"]
	gm.mu.RUnlock()
	if !ok {
		t.Error("unregistering a different channel removed the current one")
	}
}

func TestRunStopsWithContext(t *testing.T) {
	gm := NewGameManager()
	for _, id := range []string{"a", "b"} {
		if err := gm.JoinMatchmaking(id); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gm.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for gm.QueueSize() != 0 {
		select {
		case <-deadline:
			t.Fatal("players never paired")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestGameServiceFlow(t *testing.T) {
	gs := NewGameService(NewGameManager())

	if _, err := gs.CreateGame("garbage"); !errors.Is(err, model.ErrInvalidFEN) {
		t.Errorf("bad fen: expected ErrInvalidFEN, got %v", err)
	}
	if _, err := gs.GetGameState("missing"); !errors.Is(err, model.ErrGameNotFound) {
		t.Errorf("missing game: expected ErrGameNotFound, got %v", err)
	}

	id, err := gs.CreateGame("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if c, err := gs.JoinGame(id, "alice"); err != nil || c != model.White {
		t.Fatalf("alice: %v %v", c, err)
	}
	if c, err := gs.JoinGame(id, "bob"); err != nil || c != model.Black {
		t.Fatalf("bob: %v %v", c, err)
	}

	e2 := model.Square{Row: 6, Col: 4}
	moves, err := gs.LegalMoves(id, e2)
	if err != nil {
		t.Fatal(err)
	}
	want := []model.Square{{Row: 4, Col: 4}, {Row: 5, Col: 4}}
	if diff := cmp.Diff(want, moves); diff != "" {
		t.Errorf("legal moves mismatch (-want +got):\n%s", diff)
	}

	if err := gs.HandleSelect(id, "alice", e2); err != nil {
		t.Fatal(err)
	}
	if err := gs.HandleSelect(id, "alice", model.Square{Row: 4, Col: 4}); err != nil {
		t.Fatal(err)
	}
	state, err := gs.GetGameState(id)
	if err != nil {
		t.Fatal(err)
	}
	if state.FEN != "4k3/8/8/8/4P3/8/8/4K3 b - - 0 1" {
		t.Errorf("fen after e4: %q", state.FEN)
	}

	if err := gs.HandleMove(id, "bob", model.MoveRequest{From: model.Square{Row: 0, Col: 4}, To: model.Square{Row: 1, Col: 4}}); err != nil {
		t.Fatal(err)
	}
	if err := gs.HandlePromotion(id, "alice", model.PromotionRequest{}); !errors.Is(err, model.ErrNoPromotionPending) {
		t.Errorf("expected ErrNoPromotionPending, got %v", err)
	}
	if err := gs.HandleReset(id, "alice"); err != nil {
		t.Fatal(err)
	}
	if state, _ := gs.GetGameState(id); state.FEN != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1" {
		t.Errorf("fen after reset: %q", state.FEN)
	}
}
