package board

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	if kingSide {
		return WhiteKingSideCastle << (2 * c)
	}
	return WhiteQueenSideCastle << (2 * c)
}

// castleClear[sq] is the set of rights lost when a piece leaves or lands on sq.
var castleClear [64]CastlingRights

func init() {
	castleClear[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	castleClear[H1] = WhiteKingSideCastle
	castleClear[A1] = WhiteQueenSideCastle
	castleClear[E8] = BlackKingSideCastle | BlackQueenSideCastle
	castleClear[H8] = BlackKingSideCastle
	castleClear[A8] = BlackQueenSideCastle
}

// Metadata packs the non-piece state of a board:
// bit 0:    side to move (0 = White)
// bits 1-4: castling rights
// bit 5:    en-passant target valid
// bits 6-8: en-passant file
type Metadata uint16

const (
	metaTurn        Metadata = 1
	metaCastleShift          = 1
	metaCastleMask  Metadata = 0xF << metaCastleShift
	metaEPValid     Metadata = 1 << 5
	metaEPShift              = 6
	metaEPFileMask  Metadata = 7 << metaEPShift
)

// Turn returns the side to move.
func (m Metadata) Turn() Color {
	return Color(m & metaTurn)
}

// WithTurn returns m with the side to move set to c.
func (m Metadata) WithTurn(c Color) Metadata {
	return m&^metaTurn | Metadata(c)&metaTurn
}

// Castling returns the castling rights.
func (m Metadata) Castling() CastlingRights {
	return CastlingRights((m & metaCastleMask) >> metaCastleShift)
}

// WithCastling returns m with the castling rights replaced.
func (m Metadata) WithCastling(cr CastlingRights) Metadata {
	return m&^metaCastleMask | Metadata(cr&AllCastling)<<metaCastleShift
}

// EnPassant returns the file of the pawn that just made a double step.
func (m Metadata) EnPassant() (file int, ok bool) {
	if m&metaEPValid == 0 {
		return 0, false
	}
	return int((m & metaEPFileMask) >> metaEPShift), true
}

// WithEnPassant records a double pawn push on file.
func (m Metadata) WithEnPassant(file int) Metadata {
	return m&^metaEPFileMask | metaEPValid | Metadata(file&7)<<metaEPShift
}

// WithoutEnPassant clears the en-passant target.
func (m Metadata) WithoutEnPassant() Metadata {
	return m &^ (metaEPValid | metaEPFileMask)
}
