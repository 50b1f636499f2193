package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hailam/chesscore/internal/board"
)

// MaxDepth bounds the configured search depth.
const MaxDepth = 32

// ErrInvalidParams is returned when a parameter set fails validation.
var ErrInvalidParams = errors.New("invalid params")

// Table holds per-square values for one piece kind, indexed
// [rank][file] from the owner's side of the board: rank 0 is the owner's
// back rank.
type Table [8][8]int

// Params configures evaluation and search. It is passed explicitly to every
// evaluator and search call.
type Params struct {
	Depth        int `json:"depth"`
	PresortDepth int `json:"presort_depth"`

	Material        int  `json:"material"`
	Mobility        int  `json:"mobility"`
	CastleKingside  int  `json:"castle_kingside"`
	CastleQueenside int  `json:"castle_queenside"`
	Attacked        int  `json:"attacked"`
	Defended        int  `json:"defended"`
	KingBonus       int  `json:"king_bonus"`
	MaterialOnly    bool `json:"material_only"`

	Pawn   Table `json:"pawn"`
	Knight Table `json:"knight"`
	Bishop Table `json:"bishop"`
	Rook   Table `json:"rook"`
	Queen  Table `json:"queen"`
	King   Table `json:"king"`
}

// Piece values used to build the default tables and to weigh exchanges.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 2000
)

var pieceValues = [6]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue}

// Positional bonuses, owner's back rank first.
var (
	pawnPST = Table{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 10, 10, -20, -20, 10, 10, 5},
		{5, -5, -10, 0, 0, -10, -5, 5},
		{0, 0, 0, 20, 20, 0, 0, 0},
		{5, 5, 10, 25, 25, 10, 5, 5},
		{10, 10, 20, 30, 30, 20, 10, 10},
		{50, 50, 50, 50, 50, 50, 50, 50},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	knightPST = Table{
		{-50, -40, -30, -30, -30, -30, -40, -50},
		{-40, -20, 0, 5, 5, 0, -20, -40},
		{-30, 5, 10, 15, 15, 10, 5, -30},
		{-30, 0, 15, 20, 20, 15, 0, -30},
		{-30, 5, 15, 20, 20, 15, 5, -30},
		{-30, 0, 10, 15, 15, 10, 0, -30},
		{-40, -20, 0, 0, 0, 0, -20, -40},
		{-50, -40, -30, -30, -30, -30, -40, -50},
	}
	bishopPST = Table{
		{-20, -10, -10, -10, -10, -10, -10, -20},
		{-10, 5, 0, 0, 0, 0, 5, -10},
		{-10, 10, 10, 10, 10, 10, 10, -10},
		{-10, 0, 10, 10, 10, 10, 0, -10},
		{-10, 5, 5, 10, 10, 5, 5, -10},
		{-10, 0, 5, 10, 10, 5, 0, -10},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-20, -10, -10, -10, -10, -10, -10, -20},
	}
	rookPST = Table{
		{0, 0, 0, 5, 5, 0, 0, 0},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{5, 10, 10, 10, 10, 10, 10, 5},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	queenPST = Table{
		{-20, -10, -10, -5, -5, -10, -10, -20},
		{-10, 0, 5, 0, 0, 0, 0, -10},
		{-10, 5, 5, 5, 5, 5, 0, -10},
		{0, 0, 5, 5, 5, 5, 0, -5},
		{-5, 0, 5, 5, 5, 5, 0, -5},
		{-10, 0, 5, 5, 5, 5, 0, -10},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-20, -10, -10, -5, -5, -10, -10, -20},
	}
	kingPST = Table{
		{20, 30, 10, 0, 0, 10, 30, 20},
		{20, 20, 0, 0, 0, 0, 20, 20},
		{-10, -20, -20, -20, -20, -20, -20, -10},
		{-20, -30, -30, -40, -40, -30, -30, -20},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
	}
)

func withBase(base int, pst Table) Table {
	var t Table
	for r := range pst {
		for f := range pst[r] {
			t[r][f] = base + pst[r][f]
		}
	}
	return t
}

// DefaultParams returns the built-in parameter set.
func DefaultParams() *Params {
	return &Params{
		Depth:           4,
		PresortDepth:    3,
		Material:        1,
		Mobility:        2,
		CastleKingside:  15,
		CastleQueenside: 10,
		Attacked:        4,
		Defended:        2,
		KingBonus:       10000,

		Pawn:   withBase(PawnValue, pawnPST),
		Knight: withBase(KnightValue, knightPST),
		Bishop: withBase(BishopValue, bishopPST),
		Rook:   withBase(RookValue, rookPST),
		Queen:  withBase(QueenValue, queenPST),
		// The king's presence is scored by KingBonus.
		King: kingPST,
	}
}

// LoadParams decodes JSON from r over the defaults and validates the result.
// Fields missing from the input keep their default values.
func LoadParams(r io.Reader) (*Params, error) {
	p := DefaultParams()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that p can drive a search.
func (p *Params) Validate() error {
	if p.Depth < 1 || p.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d out of range [1, %d]", ErrInvalidParams, p.Depth, MaxDepth)
	}
	if p.PresortDepth < 0 {
		return fmt.Errorf("%w: negative presort_depth %d", ErrInvalidParams, p.PresortDepth)
	}
	return nil
}

// Clone returns a copy of p.
func (p *Params) Clone() *Params {
	c := *p
	return &c
}

// table returns the value table for pt.
func (p *Params) table(pt board.PieceType) *Table {
	switch pt {
	case board.Pawn:
		return &p.Pawn
	case board.Knight:
		return &p.Knight
	case board.Bishop:
		return &p.Bishop
	case board.Rook:
		return &p.Rook
	case board.Queen:
		return &p.Queen
	default:
		return &p.King
	}
}
