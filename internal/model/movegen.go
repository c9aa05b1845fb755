package model

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// IsLegal reports whether the piece on from may move to to by its shape and
// path rules. Occupancy of the destination by a friendly piece is not checked
// here; LegalDestinations filters that.
func (p *Position) IsLegal(from, to Square) bool {
	if !from.onBoard() || !to.onBoard() || from == to {
		return false
	}
	piece := p.At(from)
	if piece.IsEmpty() || piece.Color != p.ToMove {
		return false
	}

	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)

	switch piece.Type {
	case Pawn:
		return p.isLegalPawnMove(piece, from, to, colDiff)
	case Knight:
		return (rowDiff == 2 && colDiff == 1) || (rowDiff == 1 && colDiff == 2)
	case Bishop:
		return rowDiff == colDiff && p.isPathClear(from, to)
	case Rook:
		return (rowDiff == 0 || colDiff == 0) && p.isPathClear(from, to)
	case Queen:
		return (rowDiff == 0 || colDiff == 0 || rowDiff == colDiff) && p.isPathClear(from, to)
	case King:
		// Two-column king moves never pass here, so the rook relocation in
		// Apply is only reachable through the unchecked applier.
		return rowDiff <= 1 && colDiff <= 1
	}
	return false
}

func (p *Position) isLegalPawnMove(piece Piece, from, to Square, colDiff int) bool {
	startRow, dir := 6, -1
	if piece.Color == Black {
		startRow, dir = 1, 1
	}
	target := p.At(to)

	if colDiff == 0 && from.Row+dir == to.Row && target.IsEmpty() {
		return true
	}
	if colDiff == 0 && from.Row == startRow && from.Row+2*dir == to.Row &&
		target.IsEmpty() && p.Board[from.Row+dir][to.Col].IsEmpty() {
		return true
	}
	if colDiff == 1 && from.Row+dir == to.Row && !target.IsEmpty() && target.Color != piece.Color {
		return true
	}
	return false
}

// isPathClear checks every square strictly between from and to along the
// line joining them.
func (p *Position) isPathClear(from, to Square) bool {
	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)
	cur := Square{Row: from.Row + rowDir, Col: from.Col + colDir}
	for cur != to {
		if !p.At(cur).IsEmpty() {
			return false
		}
		cur = Square{Row: cur.Row + rowDir, Col: cur.Col + colDir}
	}
	return true
}

// LegalDestinations returns every square the piece on from can move to, in
// row-major order. The result is freshly built each call.
func (p *Position) LegalDestinations(from Square) []Square {
	destinations := []Square{}
	piece := p.At(from)
	if piece.IsEmpty() {
		return destinations
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			to := Square{Row: row, Col: col}
			if !p.IsLegal(from, to) {
				continue
			}
			if target := p.At(to); target.IsEmpty() || target.Color != piece.Color {
				destinations = append(destinations, to)
			}
		}
	}
	return destinations
}

// IsLegalDestination reports whether to is among LegalDestinations(from).
func (p *Position) IsLegalDestination(from, to Square) bool {
	for _, sq := range p.LegalDestinations(from) {
		if sq == to {
			return true
		}
	}
	return false
}
