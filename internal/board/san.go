package board

import (
	"fmt"
	"strings"
)

// SAN converts a legal move to Standard Algebraic Notation.
func (b *Board) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To()
	piece := b.PieceAt(from)
	if piece == NoPiece || piece.Color() != b.Turn() {
		return m.String()
	}
	pt := piece.Type()

	var sb strings.Builder
	switch {
	case b.isCastle(m) && to > from:
		sb.WriteString("O-O")
	case b.isCastle(m):
		sb.WriteString("O-O-O")
	default:
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(b.disambiguation(m, pt))
		}
		if b.isCapture(m) {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if pt == Pawn && to.RelativeRank(b.Turn()) == 7 {
			sb.WriteString("=Q")
		}
	}

	child := b.Child(m)
	switch child.Status() {
	case Checkmate:
		sb.WriteByte('#')
	default:
		if king, ok := child.Me().King(); ok && child.Attacked(king, child.Turn().Other()) {
			sb.WriteByte('+')
		}
	}

	return sb.String()
}

// isCapture reports whether m takes a piece, en passant included.
func (b *Board) isCapture(m Move) bool {
	if b.Opponent().SlotAt(m.To()) >= 0 {
		return true
	}
	ep, ok := b.EnPassant()
	return ok && ep == m.To() && b.PieceAt(m.From()).Type() == Pawn
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece kind to the same square.
func (b *Board) disambiguation(m Move, pt PieceType) string {
	from, to := m.From(), m.To()
	sameFile, sameRank, ambiguous := false, false, false

	moves := b.LegalMoves()
	for _, other := range moves.Slice() {
		if other.To() != to || other.From() == from || b.PieceAt(other.From()).Type() != pt {
			continue
		}
		ambiguous = true
		if other.From().File() == from.File() {
			sameFile = true
		}
		if other.From().Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// ParseSAN parses a SAN string and returns the matching legal move.
func (b *Board) ParseSAN(s string) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")
	moves := b.LegalMoves()

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		kingSide := len(s) == 3
		for _, m := range moves.Slice() {
			if b.isCastle(m) && (m.To() > m.From()) == kingSide {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}

	orig := s
	if idx := strings.Index(s, "="); idx >= 0 {
		if s[idx+1:] != "Q" {
			return NoMove, fmt.Errorf("%w: %s (only queen promotion)", ErrIllegalMove, orig)
		}
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && strings.IndexByte("NBRQK", s[0]) >= 0 {
		pt = PieceType(strings.IndexByte("PNBRQK", s[0]))
		s = s[1:]
	}
	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}

	fileHint, rankHint := -1, -1
	for _, c := range s[:len(s)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			fileHint = int(c - 'a')
		case c >= '1' && c <= '8':
			rankHint = int(c - '1')
		}
	}

	for _, m := range moves.Slice() {
		from := m.From()
		if m.To() != dest || b.PieceAt(from).Type() != pt {
			continue
		}
		if fileHint >= 0 && from.File() != fileHint {
			continue
		}
		if rankHint >= 0 && from.Rank() != rankHint {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, orig)
}

// MovesToSAN converts a sequence of moves played from b to SAN.
func MovesToSAN(b Board, moves []Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = b.SAN(m)
		b.Apply(m)
	}
	return result
}
