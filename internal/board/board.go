package board

import (
	"errors"
	"fmt"
	"strings"
)

// Player holds the piece slots of one color. Slot ranges are fixed:
// 0 king, 1 queen, 2-3 bishops, 4-5 knights, 6-7 rooks, 8-15 pawns.
type Player [NumSlots]Location

// Kind returns the kind of the piece in slot i. A promoted pawn is a queen.
func (p *Player) Kind(i int) PieceType {
	if p[i].Promoted() {
		return Queen
	}
	return slotKind[i]
}

// Occupancy returns the squares occupied by the player.
func (p *Player) Occupancy() Bitboard {
	var bb Bitboard
	for _, loc := range p {
		bb |= loc.Pos()
	}
	return bb
}

// Pieces returns the squares of the player's pieces of kind pt.
func (p *Player) Pieces(pt PieceType) Bitboard {
	var bb Bitboard
	for i, loc := range p {
		if loc.Occupied() && p.Kind(i) == pt {
			bb |= loc.Pos()
		}
	}
	return bb
}

// SlotAt returns the slot whose piece stands on sq, or -1.
func (p *Player) SlotAt(sq Square) int {
	for i, loc := range p {
		if loc.Occupied() && loc.Square() == sq {
			return i
		}
	}
	return -1
}

// King returns the king's square.
func (p *Player) King() (Square, bool) {
	if !p[SlotKing].Occupied() {
		return NoSquare, false
	}
	return p[SlotKing].Square(), true
}

// Count returns the number of pieces the player has left.
func (p *Player) Count() int {
	n := 0
	for _, loc := range p {
		if loc.Occupied() {
			n++
		}
	}
	return n
}

// Board is the complete game state. It is a plain value: copying a Board
// copies the position.
type Board struct {
	Players [2]Player
	Meta    Metadata
}

// ErrSlotsFull is returned by Put when the player has no free slot for the piece.
var ErrSlotsFull = errors.New("no free slot for piece")

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard initial position: White to move,
// full castling rights, no en-passant target.
func NewBoard() Board {
	b := EmptyBoard()
	for c := White; c <= Black; c++ {
		home, pawns := 0, 1
		if c == Black {
			home, pawns = 7, 6
		}
		for file, pt := range backRank {
			b.mustPut(c, pt, NewSquare(file, home))
		}
		for file := 0; file < 8; file++ {
			b.mustPut(c, Pawn, NewSquare(file, pawns))
		}
	}
	b.Meta = b.Meta.WithCastling(AllCastling)
	return b
}

// EmptyBoard returns a board with no pieces, White to move and no castling rights.
func EmptyBoard() Board {
	return Board{}
}

func (b *Board) mustPut(c Color, pt PieceType, sq Square) {
	if err := b.Put(c, pt, sq); err != nil {
		panic(err)
	}
}

// Put places a piece of kind pt on an empty square, in the first free slot of
// its kind. Additional queens take a free pawn slot as promoted pawns.
func (b *Board) Put(c Color, pt PieceType, sq Square) error {
	if !sq.IsValid() || pt >= NoPieceType || c >= NoColor {
		return fmt.Errorf("put %v %v on %v: invalid argument", c, pt, sq)
	}
	if b.PieceAt(sq) != NoPiece {
		return fmt.Errorf("put %v %v on %v: square occupied", c, pt, sq)
	}

	p := &b.Players[c]
	first, last := slotRange(pt)
	for i := first; i < last; i++ {
		if !p[i].Occupied() {
			p[i] = At(sq)
			return nil
		}
	}
	if pt == Queen {
		for i := SlotPawn; i < NumSlots; i++ {
			if !p[i].Occupied() {
				p[i] = At(sq).WithPromoted()
				return nil
			}
		}
	}
	return fmt.Errorf("put %v %v on %v: %w", c, pt, sq, ErrSlotsFull)
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.Meta.Turn()
}

// Me returns the player whose turn it is.
func (b *Board) Me() *Player {
	return &b.Players[b.Turn()]
}

// Opponent returns the player waiting for its turn.
func (b *Board) Opponent() *Player {
	return &b.Players[b.Turn().Other()]
}

// Castling returns the current castling rights.
func (b *Board) Castling() CastlingRights {
	return b.Meta.Castling()
}

// EnPassant returns the square a pawn can capture onto en passant.
func (b *Board) EnPassant() (Square, bool) {
	file, ok := b.Meta.EnPassant()
	if !ok {
		return NoSquare, false
	}
	if b.Turn() == White {
		return NewSquare(file, 5), true
	}
	return NewSquare(file, 2), true
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	for c := White; c <= Black; c++ {
		if i := b.Players[c].SlotAt(sq); i >= 0 {
			return NewPiece(b.Players[c].Kind(i), c)
		}
	}
	return NoPiece
}

// Occupancy returns all occupied squares.
func (b *Board) Occupancy() Bitboard {
	return b.Players[White].Occupancy() | b.Players[Black].Occupancy()
}

// Positions returns the occupancy snapshot from the side to move's perspective.
func (b *Board) Positions() Positions {
	return b.PositionsFor(b.Turn())
}

// PositionsFor returns the occupancy snapshot from c's perspective.
func (b *Board) PositionsFor(c Color) Positions {
	return NewPositions(b.Players[c].Occupancy(), b.Players[c.Other()].Occupancy())
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			p := b.PieceAt(NewSquare(file, rank))
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(fmt.Sprintf("Turn: %s  Castling: %s", b.Turn(), b.Castling()))
	if sq, ok := b.EnPassant(); ok {
		sb.WriteString(fmt.Sprintf("  EP: %s", sq))
	}
	sb.WriteByte('\n')
	return sb.String()
}
