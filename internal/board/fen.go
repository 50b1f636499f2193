package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Board. The move counters are accepted
// but not kept.
func ParseFEN(fen string) (Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return Board{}, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	b := EmptyBoard()
	if err := parsePiecePlacement(&b, parts[0]); err != nil {
		return Board{}, err
	}

	switch parts[1] {
	case "w":
		b.Meta = b.Meta.WithTurn(White)
	case "b":
		b.Meta = b.Meta.WithTurn(Black)
	default:
		return Board{}, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	cr, err := parseCastlingRights(parts[2])
	if err != nil {
		return Board{}, err
	}
	b.Meta = b.Meta.WithCastling(cr)

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Board{}, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		want := 5
		if b.Turn() == Black {
			want = 2
		}
		if sq.Rank() != want {
			return Board{}, fmt.Errorf("invalid en passant square for %s to move: %s", b.Turn(), parts[3])
		}
		b.Meta = b.Meta.WithEnPassant(sq.File())
	}

	return b, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			if err := b.Put(piece.Color(), piece.Type(), NewSquare(file, rank)); err != nil {
				return fmt.Errorf("invalid piece placement: %w", err)
			}
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(castling string) (CastlingRights, error) {
	cr := NoCastling
	if castling == "-" {
		return cr, nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("invalid castling character: %c", c)
		}
	}

	return cr, nil
}

// FEN returns the FEN representation of the board. Move counters are
// written as "0 1".
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.Turn() == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.Castling().String())

	sb.WriteByte(' ')
	ep, _ := b.EnPassant()
	sb.WriteString(ep.String())

	sb.WriteString(" 0 1")
	return sb.String()
}

// MoveString returns m in UCI notation, with a "q" suffix when a pawn
// reaches the last rank.
func (b *Board) MoveString(m Move) string {
	s := m.String()
	us := b.Turn()
	if i := b.Players[us].SlotAt(m.From()); i >= 0 && b.Players[us].Kind(i) == Pawn &&
		m.To().RelativeRank(us) == 7 {
		s += "q"
	}
	return s
}
