package board

// Apply plays m on the board without any legality check. The piece on the
// origin square of the side to move is relocated; captures, castling,
// en passant and promotion are derived from the board. Applying a move that
// the generator did not produce leaves the board in an unspecified but
// memory-safe state.
func (b *Board) Apply(m Move) {
	us := b.Turn()
	me, opp := &b.Players[us], &b.Players[us.Other()]
	from, to := m.From(), m.To()

	slot := me.SlotAt(from)
	if slot < 0 {
		return
	}
	kind := me.Kind(slot)

	if i := opp.SlotAt(to); i >= 0 {
		opp[i] = NoLocation
	} else if kind == Pawn && from.File() != to.File() {
		// En passant: the captured pawn stands beside the origin square.
		if i := opp.SlotAt(NewSquare(to.File(), from.Rank())); i >= 0 {
			opp[i] = NoLocation
		}
	}

	if kind == King {
		switch to.File() - from.File() {
		case 2:
			moveSlot(me, from+3, from+1)
		case -2:
			moveSlot(me, from-4, from-1)
		}
	}

	me[slot] = me[slot].MoveTo(to)
	if kind == Pawn && to.RelativeRank(us) == 7 {
		me[slot] = me[slot].WithPromoted()
	}

	meta := b.Meta.WithCastling(b.Castling() &^ castleClear[from] &^ castleClear[to])
	if dr := to.Rank() - from.Rank(); kind == Pawn && (dr == 2 || dr == -2) {
		meta = meta.WithEnPassant(to.File())
	} else {
		meta = meta.WithoutEnPassant()
	}
	b.Meta = meta.WithTurn(us.Other())
}

func moveSlot(p *Player, from, to Square) {
	if i := p.SlotAt(from); i >= 0 {
		p[i] = p[i].MoveTo(to)
	}
}

// Child returns a copy of the board with m applied.
func (b Board) Child(m Move) Board {
	b.Apply(m)
	return b
}
