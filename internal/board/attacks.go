package board

// Leaper templates, placed on a square by shifting.
const (
	knightTemplate Bitboard = 0xA1100110A // knight on c3
	kingTemplate   Bitboard = 0x70507     // king on b2
)

// place moves a template centred on centre so that it is centred on sq.
// Bits shifted past either end of the board are dropped, never wrapped;
// the caller still masks the files a horizontal shift can spill into.
func place(template Bitboard, centre, sq Square) Bitboard {
	bb := template
	if dr := sq.Rank() - centre.Rank(); dr >= 0 {
		bb <<= 8 * uint(dr)
	} else {
		bb >>= 8 * uint(-dr)
	}
	if df := sq.File() - centre.File(); df >= 0 {
		bb <<= uint(df)
	} else {
		bb >>= uint(-df)
	}
	return bb
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard {
	bb := place(knightTemplate, C3, sq)
	switch {
	case sq.File() <= 1:
		bb &= NotFileGH
	case sq.File() >= 6:
		bb &= NotFileAB
	}
	return bb
}

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) Bitboard {
	bb := place(kingTemplate, B2, sq)
	switch sq.File() {
	case 0:
		bb &= NotFileH
	case 7:
		bb &= NotFileA
	}
	return bb
}

// PawnAttacks returns the squares attacked by the pawns in bb.
func PawnAttacks(bb Bitboard, c Color) Bitboard {
	if c == White {
		return bb.NorthEast() | bb.NorthWest()
	}
	return bb.SouthEast() | bb.SouthWest()
}

// KnightTargets returns the knight moves from sq that do not land on own pieces.
func KnightTargets(pos Positions, sq Square) Bitboard {
	return KnightAttacks(sq) &^ pos.Mine
}

// KingTargets returns the king steps from sq that do not land on own pieces.
// Castling is added by the board, which knows the rights.
func KingTargets(pos Positions, sq Square) Bitboard {
	return KingAttacks(sq) &^ pos.Mine
}

// pieceSets splits a player's pieces by kind, promoted pawns counted as queens.
func (p *Player) pieceSets() [6]Bitboard {
	var sets [6]Bitboard
	for i, loc := range p {
		if loc.Occupied() {
			sets[p.Kind(i)] |= loc.Pos()
		}
	}
	return sets
}

// Attacked reports whether sq is attacked by any piece of color by.
func (b *Board) Attacked(sq Square, by Color) bool {
	them := b.Players[by].pieceSets()
	// Look outward from sq as if it held a piece of the defending side.
	pos := b.PositionsFor(by.Other())

	if KnightAttacks(sq)&them[Knight] != 0 {
		return true
	}
	if KingAttacks(sq)&them[King] != 0 {
		return true
	}
	if PawnAttacks(SquareBB(sq), by.Other())&them[Pawn] != 0 {
		return true
	}
	if RookTargets(pos, sq)&(them[Rook]|them[Queen]) != 0 {
		return true
	}
	return BishopTargets(pos, sq)&(them[Bishop]|them[Queen]) != 0
}

// Attacks returns every square color c attacks: the pseudo-legal targets of
// its pieces (castling excluded) plus both pawn diagonals.
func (b *Board) Attacks(c Color) Bitboard {
	p := &b.Players[c]
	pos := b.PositionsFor(c)
	var bb Bitboard
	for i, loc := range p {
		if !loc.Occupied() {
			continue
		}
		sq := loc.Square()
		switch p.Kind(i) {
		case Pawn:
			bb |= PawnAttacks(loc.Pos(), c)
		case Knight:
			bb |= KnightTargets(pos, sq)
		case Bishop:
			bb |= BishopTargets(pos, sq)
		case Rook:
			bb |= RookTargets(pos, sq)
		case Queen:
			bb |= QueenTargets(pos, sq)
		case King:
			bb |= KingTargets(pos, sq)
		}
	}
	return bb
}

// InCheck reports whether c's king is attacked.
// A board without that king is an invariant violation and panics.
func (b *Board) InCheck(c Color) bool {
	sq, ok := b.Players[c].King()
	if !ok {
		panic("board: no " + c.String() + " king on board")
	}
	return b.Attacked(sq, c.Other())
}
