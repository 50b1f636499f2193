package board

// Sliding piece targets.
//
// Every direction is reduced to one case: the run along a line toward higher
// square indices. Occupied squares on the ray become blockers (own pieces as
// they are, opponent pieces moved one step further out so the capture square
// stays reachable). Adding the ray to "blockers or off-ray" turns every ray
// bit at or past the first blocker into a carry, which leaves exactly the
// reachable squares set. The lower half of a line is the upper half of the
// rotated board, and files are ranks of the transposed board.

// run returns the reachable squares of ray, which must lie above the source.
func run(ray, mine, opp Bitboard, step uint) Bitboard {
	blockers := mine&ray | (opp&ray)<<step&ray
	gaps := ^ray | blockers
	return (gaps + ray) & ray &^ blockers
}

func upward(line Bitboard, pos Positions, sq Square, step uint) Bitboard {
	return run(line&Above(sq), pos.Mine, pos.Opponent, step)
}

func rankRuns(pos Positions, sq Square) Bitboard {
	inv := sq.Invert()
	right := upward(Rank(sq.Rank()), pos, sq, 1)
	left := upward(Rank(inv.Rank()), pos.Invert(), inv, 1).Invert()
	return right | left
}

func fileRuns(pos Positions, sq Square) Bitboard {
	return rankRuns(pos.Transpose(), sq.Transpose()).Transpose()
}

func diagonalRuns(pos Positions, sq Square) Bitboard {
	inv := sq.Invert()
	up := upward(DiagonalMask[sq.File()-sq.Rank()+7], pos, sq, 9)
	down := upward(DiagonalMask[inv.File()-inv.Rank()+7], pos.Invert(), inv, 9).Invert()
	return up | down
}

func antiDiagonalRuns(pos Positions, sq Square) Bitboard {
	inv := sq.Invert()
	up := upward(AntiDiagonalMask[sq.File()+sq.Rank()], pos, sq, 7)
	down := upward(AntiDiagonalMask[inv.File()+inv.Rank()], pos.Invert(), inv, 7).Invert()
	return up | down
}

// RookTargets returns the squares a rook on sq can move to.
func RookTargets(pos Positions, sq Square) Bitboard {
	return rankRuns(pos, sq) | fileRuns(pos, sq)
}

// BishopTargets returns the squares a bishop on sq can move to.
func BishopTargets(pos Positions, sq Square) Bitboard {
	return diagonalRuns(pos, sq) | antiDiagonalRuns(pos, sq)
}

// QueenTargets returns the squares a queen on sq can move to.
func QueenTargets(pos Positions, sq Square) Bitboard {
	return RookTargets(pos, sq) | BishopTargets(pos, sq)
}
