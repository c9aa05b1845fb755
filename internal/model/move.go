package model

import "fmt"

// MoveRequest is a move as sent by a client.
type MoveRequest struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// PromotionRequest answers a pending promotion. A nil Choice means the prompt
// was dismissed.
type PromotionRequest struct {
	Choice *int `json:"choice"`
}

// CastleRookMove is the rook relocation performed by a two-column king move.
type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

type Ply struct {
	Piece         Piece     `json:"piece"`
	From          Square    `json:"from"`
	To            Square    `json:"to"`
	CapturedPiece *Piece    `json:"capturedPiece"`
	Promotion     PieceType `json:"promotion"`
	Notation      string    `json:"notation"`
}

type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Apply moves the piece on from to to without any legality check. Whatever
// stood on to is overwritten, which is how captures happen. A king moving two
// columns also brings the rook from its corner to the square it passed over.
// The side to move is left unchanged. The rook relocation, if any, is returned.
func (p *Position) Apply(from, to Square) *CastleRookMove {
	piece := p.At(from)
	p.Set(to, piece)
	p.Set(from, Piece{})

	if piece.Type != King || abs(from.Col-to.Col) != 2 {
		return nil
	}
	rook := &CastleRookMove{
		From: Square{Row: to.Row, Col: 0},
		To:   Square{Row: to.Row, Col: to.Col + 1},
	}
	if to.Col > from.Col {
		rook.From.Col = 7
		rook.To.Col = to.Col - 1
	}
	p.Set(rook.To, p.At(rook.From))
	p.Set(rook.From, Piece{})
	return rook
}

// ApplyMove applies a move only if it is one of LegalDestinations(from).
func (p *Position) ApplyMove(from, to Square) error {
	if !p.IsLegalDestination(from, to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidMove, from, to)
	}
	p.Apply(from, to)
	return nil
}

// makePly records a move before it is applied.
func (p *Position) makePly(from, to Square) Ply {
	ply := Ply{
		Piece:    p.At(from),
		From:     from,
		To:       to,
		Notation: p.getNotation(from, to),
	}
	if captured := p.At(to); !captured.IsEmpty() {
		ply.CapturedPiece = &captured
	}
	return ply
}

func (p *Position) getNotation(from, to Square) string {
	piece := p.At(from)
	capture := ""
	if !p.At(to).IsEmpty() {
		capture = "x"
	}
	pawnFile := ""
	if piece.Type == Pawn && from.Col != to.Col {
		pawnFile = from.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", piece.Type.getPieceNotation(), pawnFile, capture, to.getSquareNotation())
}
