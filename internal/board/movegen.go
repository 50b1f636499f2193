package board

// PawnTargets returns the destinations of a pawn of color c on sq.
// ep is the en-passant target square as a bitboard (0 if none).
func PawnTargets(pos Positions, sq Square, c Color, ep Bitboard) Bitboard {
	bb := SquareBB(sq)
	empty := ^pos.All()

	var push, double Bitboard
	if c == White {
		push = bb.North() & empty
		double = (push & Rank3).North() & empty
	} else {
		push = bb.South() & empty
		double = (push & Rank6).South() & empty
	}
	return push | double | PawnAttacks(bb, c)&(pos.Opponent|ep)
}

// castleTargets returns the king destinations for castling that the rights
// and the empty squares allow. Attacked squares are checked by CastleSafe.
func (b *Board) castleTargets(c Color, pos Positions) Bitboard {
	home := E1
	if c == Black {
		home = E8
	}
	p := &b.Players[c]
	if !p[SlotKing].Occupied() || p[SlotKing].Square() != home {
		return Empty
	}

	rooks := p.pieceSets()[Rook]
	all := pos.All()
	var bb Bitboard
	cr := b.Castling()
	if cr.CanCastle(c, true) && rooks.IsSet(home+3) &&
		!all.IsSet(home+1) && !all.IsSet(home+2) {
		bb = bb.Set(home + 2)
	}
	if cr.CanCastle(c, false) && rooks.IsSet(home-4) &&
		!all.IsSet(home-1) && !all.IsSet(home-2) && !all.IsSet(home-3) {
		bb = bb.Set(home - 2)
	}
	return bb
}

// targets returns the pseudo-legal destinations of the piece in slot i of
// the side to move.
func (b *Board) targets(i int, pos Positions) Bitboard {
	us := b.Turn()
	p := &b.Players[us]
	sq := p[i].Square()

	switch p.Kind(i) {
	case Pawn:
		var ep Bitboard
		if epSq, ok := b.EnPassant(); ok {
			ep = SquareBB(epSq)
		}
		return PawnTargets(pos, sq, us, ep)
	case Knight:
		return KnightTargets(pos, sq)
	case Bishop:
		return BishopTargets(pos, sq)
	case Rook:
		return RookTargets(pos, sq)
	case Queen:
		return QueenTargets(pos, sq)
	default:
		return KingTargets(pos, sq) | b.castleTargets(us, pos)
	}
}

// PseudoLegalMoves generates every move of the side to move that lands on an
// empty or opponent square, without testing whether the king is left in check.
func (b *Board) PseudoLegalMoves() MoveList {
	var ml MoveList
	pos := b.Positions()
	for i, loc := range b.Me() {
		if !loc.Occupied() {
			continue
		}
		from := loc.Square()
		bb := b.targets(i, pos)
		for bb != 0 {
			ml.Add(NewMove(from, bb.PopLSB()))
		}
	}
	return ml
}

// Mobility counts the pseudo-legal moves c would have with c to move.
func (b *Board) Mobility(c Color) int {
	view := *b
	if view.Turn() != c {
		view.Meta = view.Meta.WithTurn(c).WithoutEnPassant()
	}
	ml := view.PseudoLegalMoves()
	return ml.Len()
}

// isCastle reports whether m is a two-file king move of the side to move.
func (b *Board) isCastle(m Move) bool {
	k := b.Me()[SlotKing]
	if !k.Occupied() || k.Square() != m.From() {
		return false
	}
	df := m.To().File() - m.From().File()
	return df == 2 || df == -2
}

// CastleSafe reports whether the king does not castle out of, through or into
// an attacked square. Moves that are not castling are always safe.
func (b *Board) CastleSafe(m Move) bool {
	if !b.isCastle(m) {
		return true
	}
	them := b.Turn().Other()
	lo, hi := m.From(), m.To()
	if hi < lo {
		lo, hi = hi, lo
	}
	for sq := lo; sq <= hi; sq++ {
		if b.Attacked(sq, them) {
			return false
		}
	}
	return true
}

// legal reports whether the pseudo-legal move m keeps the mover's king safe.
// A side without a king only has to respect castling safety.
func (b *Board) legal(m Move) bool {
	if !b.CastleSafe(m) {
		return false
	}
	us := b.Turn()
	if !b.Players[us][SlotKing].Occupied() {
		return true
	}
	child := b.Child(m)
	king, _ := child.Players[us].King()
	return !child.Attacked(king, us.Other())
}

// LegalMoves generates all legal moves for the side to move.
func (b *Board) LegalMoves() MoveList {
	pseudo := b.PseudoLegalMoves()
	var ml MoveList
	for _, m := range pseudo.Slice() {
		if b.legal(m) {
			ml.Add(m)
		}
	}
	return ml
}

// LegalTargets returns the legal destinations of the piece on sq.
// It is empty when sq does not hold a piece of the side to move.
func (b *Board) LegalTargets(sq Square) Bitboard {
	i := b.Me().SlotAt(sq)
	if i < 0 {
		return Empty
	}
	bb := b.targets(i, b.Positions())
	var legal Bitboard
	for bb != 0 {
		to := bb.PopLSB()
		if b.legal(NewMove(sq, to)) {
			legal = legal.Set(to)
		}
	}
	return legal
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (b *Board) HasLegalMoves() bool {
	pseudo := b.PseudoLegalMoves()
	for _, m := range pseudo.Slice() {
		if b.legal(m) {
			return true
		}
	}
	return false
}

// Status describes whether the game can continue.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Status reports checkmate or stalemate for the side to move.
func (b *Board) Status() Status {
	if b.HasLegalMoves() {
		return Ongoing
	}
	king, ok := b.Me().King()
	if ok && b.Attacked(king, b.Turn().Other()) {
		return Checkmate
	}
	return Stalemate
}

// Play applies m if it is legal for the side to move and reports whether it did.
// The board is left untouched on failure.
func (b *Board) Play(m Move) bool {
	moves := b.LegalMoves()
	if !moves.Contains(m) {
		return false
	}
	b.Apply(m)
	return true
}
