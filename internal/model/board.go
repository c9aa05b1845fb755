package model

import (
	"fmt"
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

type Color string

const (
	NoColor Color = ""
	White   Color = "white"
	Black   Color = "black"
)

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// Piece is the content of one square. The zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

// Letter is the single-character tag for the piece, upper case for white.
func (p Piece) Letter() byte {
	var c byte
	switch p.Type {
	case King:
		c = 'k'
	case Queen:
		c = 'q'
	case Rook:
		c = 'r'
	case Bishop:
		c = 'b'
	case Knight:
		c = 'n'
	case Pawn:
		c = 'p'
	default:
		return ' '
	}
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) onBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) getSquareNotation() string {
	return fmt.Sprintf("%c%d", s.Col+'a', 8-s.Row)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", s.Col+'a')
}

func (s Square) String() string {
	if !s.onBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return s.getSquareNotation()
}

// ParseSquare reads algebraic coordinates such as "e2".
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return Square{Row: 8 - int(s[1]-'0'), Col: int(s[0] - 'a')}, nil
}

// Position is the complete engine state. It is a plain value, so assigning it
// takes a snapshot.
type Position struct {
	Board            [8][8]Piece `json:"board"`
	ToMove           Color       `json:"toMove"`
	PawnMoved        [8][8]bool  `json:"pawnMoved"`
	WhiteQueenExists bool        `json:"whiteQueenExists"`
	BlackQueenExists bool        `json:"blackQueenExists"`
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewPosition() Position {
	p := Position{
		ToMove:           White,
		WhiteQueenExists: true,
		BlackQueenExists: true,
	}
	for col := 0; col < 8; col++ {
		p.Board[0][col] = Piece{Type: backRank[col], Color: Black}
		p.Board[1][col] = Piece{Type: Pawn, Color: Black}
		p.Board[6][col] = Piece{Type: Pawn, Color: White}
		p.Board[7][col] = Piece{Type: backRank[col], Color: White}
	}
	return p
}

// Reset discards the position and replaces it with the standard setup.
func (p *Position) Reset() {
	*p = NewPosition()
}

// At returns the piece on sq, or an empty piece when sq is off the board.
func (p *Position) At(sq Square) Piece {
	if !sq.onBoard() {
		return Piece{}
	}
	return p.Board[sq.Row][sq.Col]
}

func (p *Position) Set(sq Square, piece Piece) {
	p.Board[sq.Row][sq.Col] = piece
}

func (p *Position) queenExists(c Color) bool {
	if c == White {
		return p.WhiteQueenExists
	}
	return p.BlackQueenExists
}

func (p *Position) markQueen(c Color) {
	switch c {
	case White:
		p.WhiteQueenExists = true
	case Black:
		p.BlackQueenExists = true
	}
}

// String draws the board with rank and file labels, white pieces in upper case.
func (p Position) String() string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&b, "%d ", 8-row)
		for col := 0; col < 8; col++ {
			c := p.Board[row][col].Letter()
			if c == ' ' {
				c = '.'
			}
			b.WriteByte(c)
			if col < 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("  a b c d e f g h\n")
	return b.String()
}
