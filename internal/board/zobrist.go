package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [16]uint64       // All 16 castling combinations
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist key of the position. Two boards holding the same
// pieces on the same squares hash equally even if the pieces sit in
// different slots.
func (b *Board) Hash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		p := &b.Players[c]
		for i, loc := range p {
			if loc.Occupied() {
				h ^= zobristPiece[c][p.Kind(i)][loc.Square()]
			}
		}
	}
	h ^= zobristCastling[b.Castling()]
	if file, ok := b.Meta.EnPassant(); ok {
		h ^= zobristEnPassant[file]
	}
	if b.Turn() == Black {
		h ^= zobristSideToMove
	}
	return h
}

// SamePosition reports whether b and o have the same pieces on the same
// squares and the same metadata. Slot assignment is ignored, as in Hash.
func (b *Board) SamePosition(o *Board) bool {
	if b.Meta != o.Meta {
		return false
	}
	for c := White; c <= Black; c++ {
		if b.Players[c].pieceSets() != o.Players[c].pieceSets() {
			return false
		}
	}
	return true
}
