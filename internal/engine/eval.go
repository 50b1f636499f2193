// Package engine implements evaluation and alpha-beta search over board
// positions.
package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Evaluate returns the static evaluation of b from White's perspective.
// The score is symmetric: each side is scored the same way and Black's
// total is subtracted from White's.
func Evaluate(b *board.Board, p *Params) int {
	return evaluateSide(b, board.White, p) - evaluateSide(b, board.Black, p)
}

func evaluateSide(b *board.Board, c board.Color, p *Params) int {
	pl := &b.Players[c]
	score := 0

	for i, loc := range pl {
		if !loc.Occupied() {
			continue
		}
		sq := loc.Square()
		score += p.Material * p.table(pl.Kind(i))[sq.RelativeRank(c)][sq.File()]
	}

	if _, ok := pl.King(); ok {
		score += p.KingBonus
	}

	cr := b.Castling()
	if cr.CanCastle(c, true) {
		score += p.CastleKingside
	}
	if cr.CanCastle(c, false) {
		score += p.CastleQueenside
	}

	if p.MaterialOnly {
		return score
	}

	score += p.Mobility * b.Mobility(c)
	attacked, defended := exchanges(b, c)
	score += p.Attacked * attacked / 100
	score += p.Defended * defended / 100
	return score
}

// EvaluateMaterial returns the table-only part of the evaluation.
func EvaluateMaterial(b *board.Board, p *Params) int {
	q := *p
	q.MaterialOnly = true
	return Evaluate(b, &q)
}

// attackSet returns the squares a piece of kind pt on sq attacks, up to and
// including the first piece of either color on each line.
func attackSet(pt board.PieceType, c board.Color, sq board.Square, occ board.Bitboard) board.Bitboard {
	pos := board.NewPositions(board.Empty, occ&^board.SquareBB(sq))
	switch pt {
	case board.Pawn:
		return board.PawnAttacks(board.SquareBB(sq), c)
	case board.Knight:
		return board.KnightAttacks(sq)
	case board.Bishop:
		return board.BishopTargets(pos, sq)
	case board.Rook:
		return board.RookTargets(pos, sq)
	case board.Queen:
		return board.QueenTargets(pos, sq)
	default:
		return board.KingAttacks(sq)
	}
}

// exchanges sums, over every piece of c, how much more its attacked enemy
// pieces are worth than it is, and how much more it is worth than the own
// pieces it defends. Negative differences count as zero.
func exchanges(b *board.Board, c board.Color) (attacked, defended int) {
	me, them := &b.Players[c], &b.Players[c.Other()]
	occ := b.Occupancy()
	mine, theirs := me.Occupancy(), them.Occupancy()

	for i, loc := range me {
		if !loc.Occupied() {
			continue
		}
		kind := me.Kind(i)
		value := pieceValues[kind]
		set := attackSet(kind, c, loc.Square(), occ)

		for victims := set & theirs; victims != 0; {
			j := them.SlotAt(victims.PopLSB())
			attacked += max(0, pieceValues[them.Kind(j)]-value)
		}
		for friends := set & mine; friends != 0; {
			j := me.SlotAt(friends.PopLSB())
			defended += max(0, value-pieceValues[me.Kind(j)])
		}
	}
	return attacked, defended
}
