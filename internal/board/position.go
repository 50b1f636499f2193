package board

// Positions is the occupancy snapshot for one ply, seen from the side that
// generates moves. Inverted and transposed forms are kept alongside so the
// one-sided slider algorithm can be reused for every direction.
type Positions struct {
	Mine     Bitboard
	Opponent Bitboard

	mineInv, oppInv   Bitboard // rotated 180 degrees
	mineT, oppT       Bitboard // transposed
	mineInvT, oppInvT Bitboard // rotated and transposed
}

// NewPositions builds the snapshot from the two occupancy sets.
func NewPositions(mine, opponent Bitboard) Positions {
	return Positions{
		Mine:     mine,
		Opponent: opponent,
		mineInv:  mine.Invert(),
		oppInv:   opponent.Invert(),
		mineT:    mine.Transpose(),
		oppT:     opponent.Transpose(),
		mineInvT: mine.Invert().Transpose(),
		oppInvT:  opponent.Invert().Transpose(),
	}
}

// Invert returns the snapshot rotated by 180 degrees.
func (p Positions) Invert() Positions {
	return Positions{
		Mine:     p.mineInv,
		Opponent: p.oppInv,
		mineInv:  p.Mine,
		oppInv:   p.Opponent,
		mineT:    p.mineInvT,
		oppT:     p.oppInvT,
		mineInvT: p.mineT,
		oppInvT:  p.oppT,
	}
}

// Transpose returns the snapshot flipped about the a1-h8 diagonal.
func (p Positions) Transpose() Positions {
	return Positions{
		Mine:     p.mineT,
		Opponent: p.oppT,
		mineInv:  p.mineInvT,
		oppInv:   p.oppInvT,
		mineT:    p.Mine,
		oppT:     p.Opponent,
		mineInvT: p.mineInv,
		oppInvT:  p.oppInv,
	}
}

// Swap returns the snapshot from the opponent's perspective.
func (p Positions) Swap() Positions {
	return Positions{
		Mine:     p.Opponent,
		Opponent: p.Mine,
		mineInv:  p.oppInv,
		oppInv:   p.mineInv,
		mineT:    p.oppT,
		oppT:     p.mineT,
		mineInvT: p.oppInvT,
		oppInvT:  p.mineInvT,
	}
}

// All returns every occupied square.
func (p Positions) All() Bitboard {
	return p.Mine | p.Opponent
}
