package model

import (
	"fmt"

	"github.com/notnil/chess"
)

var toChessPiece = map[Piece]chess.Piece{
	{Type: King, Color: White}:   chess.WhiteKing,
	{Type: Queen, Color: White}:  chess.WhiteQueen,
	{Type: Rook, Color: White}:   chess.WhiteRook,
	{Type: Bishop, Color: White}: chess.WhiteBishop,
	{Type: Knight, Color: White}: chess.WhiteKnight,
	{Type: Pawn, Color: White}:   chess.WhitePawn,
	{Type: King, Color: Black}:   chess.BlackKing,
	{Type: Queen, Color: Black}:  chess.BlackQueen,
	{Type: Rook, Color: Black}:   chess.BlackRook,
	{Type: Bishop, Color: Black}: chess.BlackBishop,
	{Type: Knight, Color: Black}: chess.BlackKnight,
	{Type: Pawn, Color: Black}:   chess.BlackPawn,
}

var fromChessType = map[chess.PieceType]PieceType{
	chess.King:   King,
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
	chess.Pawn:   Pawn,
}

func chessSquare(sq Square) chess.Square {
	return chess.NewSquare(chess.File(sq.Col), chess.Rank(7-sq.Row))
}

func fromChessSquare(sq chess.Square) Square {
	return Square{Row: 7 - int(sq.Rank()), Col: int(sq.File())}
}

// ParseFEN builds a position from the placement and side-to-move fields of a
// FEN record. Castling and en passant fields are accepted but ignored, and the
// queen flags start out set as they do at the start of a game. Each side must
// have exactly one king and no pawn may stand on a back rank.
func ParseFEN(fen string) (Position, error) {
	var cp chess.Position
	if err := cp.UnmarshalText([]byte(fen)); err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	p := Position{
		ToMove:           White,
		WhiteQueenExists: true,
		BlackQueenExists: true,
	}
	if cp.Turn() == chess.Black {
		p.ToMove = Black
	}
	for sq, piece := range cp.Board().SquareMap() {
		if piece == chess.NoPiece {
			continue
		}
		color := White
		if piece.Color() == chess.Black {
			color = Black
		}
		p.Set(fromChessSquare(sq), Piece{Type: fromChessType[piece.Type()], Color: color})
	}
	if err := p.validatePlacement(); err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return p, nil
}

func (p *Position) validatePlacement() error {
	kings := map[Color]int{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.Board[row][col]
			switch {
			case piece.Type == King:
				kings[piece.Color]++
			case piece.Type == Pawn && (row == 0 || row == 7):
				return fmt.Errorf("pawn on back rank at %s", Square{Row: row, Col: col})
			}
		}
	}
	for _, c := range []Color{White, Black} {
		if kings[c] != 1 {
			return fmt.Errorf("%s has %d kings, want 1", c, kings[c])
		}
	}
	return nil
}

// FEN encodes the board and side to move. The engine keeps no castling or en
// passant state, so those fields are always "-".
func (p Position) FEN() string {
	m := make(map[chess.Square]chess.Piece)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.Board[row][col]
			if piece.IsEmpty() {
				continue
			}
			m[chessSquare(Square{Row: row, Col: col})] = toChessPiece[piece]
		}
	}
	turn := "w"
	if p.ToMove == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(m).String(), turn)
}
