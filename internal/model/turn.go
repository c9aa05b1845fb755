package model

import "fmt"

// Outcome is what a collaborator needs to know after one step of play.
type Outcome struct {
	// Winner is set when the step captured a king. The position has already
	// been reset to the standard setup by then.
	Winner Color `json:"winner,omitempty"`
	// PendingPromotion is set when a pawn reached the back rank and the side
	// to move has to pick a piece from Options.
	PendingPromotion *Square     `json:"pendingPromotion,omitempty"`
	Options          []PieceType `json:"options,omitempty"`
}

// PlayMove validates and applies one move and then either finishes the turn
// or stops at a promotion prompt.
func (p *Position) PlayMove(from, to Square) (Outcome, error) {
	if err := p.ApplyMove(from, to); err != nil {
		return Outcome{}, err
	}
	return p.afterMove(to), nil
}

func (p *Position) afterMove(to Square) Outcome {
	if !p.NeedsPromotion(to) {
		return p.finishTurn(to)
	}
	if p.PromotionWinsImmediately(to) {
		// to holds the pawn that just arrived, so this cannot fail.
		outcome, _ := p.ResolvePromotion(to, nil)
		return outcome
	}
	sq := to
	return Outcome{PendingPromotion: &sq, Options: p.PromotionOptions()}
}

// finishTurn marks the pawn flag, then ends the game or hands the move over.
func (p *Position) finishTurn(to Square) Outcome {
	if p.At(to).Type == Pawn {
		p.PawnMoved[to.Row][to.Col] = true
	}
	if winner := p.CheckTerminal(); winner != NoColor {
		p.Reset()
		return Outcome{Winner: winner}
	}
	p.ToMove = p.ToMove.Opponent()
	return Outcome{}
}

// Announcement is the message shown to players when a game ends.
func (o Outcome) Announcement() string {
	switch o.Winner {
	case White:
		return "White wins!"
	case Black:
		return "Black wins!"
	}
	return ""
}

func (o Outcome) String() string {
	switch {
	case o.Winner != NoColor:
		return o.Announcement()
	case o.PendingPromotion != nil:
		return fmt.Sprintf("promotion on %s: %v", o.PendingPromotion, o.Options)
	}
	return "ok"
}
