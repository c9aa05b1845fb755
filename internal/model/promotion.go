package model

import "fmt"

var (
	reducedPromotionMenu = []PieceType{Rook, Knight, Bishop}
	fullPromotionMenu    = []PieceType{Queen, Rook, Knight, Bishop}
)

// NeedsPromotion reports whether sq holds a pawn on either back rank.
func (p *Position) NeedsPromotion(sq Square) bool {
	return sq.onBoard() && (sq.Row == 0 || sq.Row == 7) && p.At(sq).Type == Pawn
}

// PromotionWinsImmediately puts a queen of the mover's color on sq, asks
// whether a king is gone, and puts the original piece back.
func (p *Position) PromotionWinsImmediately(sq Square) bool {
	original := p.At(sq)
	p.Set(sq, Piece{Type: Queen, Color: p.ToMove})
	captured := p.KingCaptured()
	p.Set(sq, original)
	return captured != NoColor
}

// PromotionOptions lists the menu offered to the side to move. Once that side
// has had a queen the menu drops it, even if the queen was later captured.
func (p *Position) PromotionOptions() []PieceType {
	menu := fullPromotionMenu
	if p.queenExists(p.ToMove) {
		menu = reducedPromotionMenu
	}
	return append([]PieceType(nil), menu...)
}

// promotionPiece maps a menu index to the resulting piece type. The mapping is
// by index, not by label: with the full menu, "rook" at index 1 gives a
// knight and "bishop" at index 3 falls through to a queen.
func (p *Position) promotionPiece(choice *int) PieceType {
	if choice == nil {
		return Queen
	}
	switch *choice {
	case 0:
		if p.queenExists(p.ToMove) {
			return Rook
		}
		return Queen
	case 1:
		return Knight
	case 2:
		return Bishop
	}
	return Queen
}

// ResolvePromotion replaces the pawn on sq and finishes the turn. A nil choice
// promotes to a queen; callers pass nil both for the winning short-circuit and
// for a dismissed prompt. It returns ErrNoPromotionPending and leaves the
// position alone unless sq holds a pawn on a back rank.
func (p *Position) ResolvePromotion(sq Square, choice *int) (Outcome, error) {
	if !p.NeedsPromotion(sq) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoPromotionPending, sq)
	}
	piece := Piece{Type: p.promotionPiece(choice), Color: p.ToMove}
	p.Set(sq, piece)
	if piece.Type == Queen {
		p.markQueen(piece.Color)
	}
	return p.finishTurn(sq), nil
}
