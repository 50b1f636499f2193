package board

// Location is the content of a piece slot, packed in one byte:
// bits 0-5: square (0-63)
// bit 6:    promoted (a pawn that reached the last rank, moves as a queen)
// bit 7:    occupied
// The zero value is an empty slot.
type Location uint8

const (
	locSquareMask Location = 0x3F
	locPromoted   Location = 1 << 6
	locOccupied   Location = 1 << 7
)

// NoLocation is the empty slot.
const NoLocation Location = 0

// NewLocation returns an occupied location at (rank, file).
func NewLocation(rank, file int) Location {
	return At(NewSquare(file, rank))
}

// At returns an occupied location on sq.
func At(sq Square) Location {
	return locOccupied | Location(sq)&locSquareMask
}

// Occupied reports whether the slot holds a piece.
func (l Location) Occupied() bool {
	return l&locOccupied != 0
}

// Square returns the square of the location. Only meaningful when occupied.
func (l Location) Square() Square {
	return Square(l & locSquareMask)
}

// Rank returns the rank (0-7).
func (l Location) Rank() int {
	return l.Square().Rank()
}

// File returns the file (0-7).
func (l Location) File() int {
	return l.Square().File()
}

// Pos projects the location onto a single-bit bitboard. Empty slots project to 0.
func (l Location) Pos() Bitboard {
	if !l.Occupied() {
		return Empty
	}
	return SquareBB(l.Square())
}

// Promoted reports whether the pawn in this slot has been promoted.
func (l Location) Promoted() bool {
	return l&locPromoted != 0
}

// WithPromoted returns the location with the promoted flag set.
func (l Location) WithPromoted() Location {
	return l | locPromoted
}

// Invert mirrors the location through the board centre: (7-rank, 7-file).
func (l Location) Invert() Location {
	return l&^locSquareMask | Location(l.Square().Invert())
}

// Transpose swaps rank and file.
func (l Location) Transpose() Location {
	return l&^locSquareMask | Location(l.Square().Transpose())
}

// Equal compares two locations by square. The promoted flag is ignored.
func (l Location) Equal(o Location) bool {
	if l.Occupied() != o.Occupied() {
		return false
	}
	return !l.Occupied() || l.Square() == o.Square()
}

// MoveTo returns the location relocated to sq, keeping the promoted flag.
func (l Location) MoveTo(sq Square) Location {
	return l&locPromoted | At(sq)
}

func (l Location) String() string {
	if !l.Occupied() {
		return "-"
	}
	if l.Promoted() {
		return l.Square().String() + "=Q"
	}
	return l.Square().String()
}
