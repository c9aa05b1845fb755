package model

// KingCaptured returns the side whose king is missing from the board, or
// NoColor while both kings stand. White is checked first.
func (p *Position) KingCaptured() Color {
	whiteKing, blackKing := false, false
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.Board[row][col]
			if piece.Type != King {
				continue
			}
			switch piece.Color {
			case White:
				whiteKing = true
			case Black:
				blackKing = true
			}
		}
	}
	if !whiteKing {
		return White
	}
	if !blackKing {
		return Black
	}
	return NoColor
}

// CheckTerminal returns the winner, or NoColor if the game goes on.
func (p *Position) CheckTerminal() Color {
	return p.KingCaptured().Opponent()
}
