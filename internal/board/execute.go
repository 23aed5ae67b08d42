package board

// MakeMove applies m to p in place and returns the information needed to
// reverse it with UnmakeMove. m is assumed to already be legal; execute does
// no legality checking of its own.
func MakeMove(p *Position, m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPieceType: NoPieceType,
		GameState:         p.GameState,
		ZobristKey:        p.ZobristKey,
		FiftyMoveCounter:  p.FiftyMoveCounter,
		PlyCount:          p.PlyCount,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	moving := p.PieceAt(from)
	pieceType := moving.Type()

	irreversible := pieceType == Pawn

	// Remove any captured piece before the mover lands. En passant captures
	// a pawn that is not on the destination square.
	if m.IsEnPassant() {
		capSq := epCapturedSquare(to, us)
		captured := p.PieceAt(capSq)
		p.ZobristKey ^= ZobristPiece[pieceZobristIndex(captured)][capSq]
		p.removePiece(capSq, captured)
		undo.CapturedPieceType = Pawn
		irreversible = true
	} else if !p.IsEmpty(to) {
		captured := p.PieceAt(to)
		p.ZobristKey ^= ZobristPiece[pieceZobristIndex(captured)][to]
		p.removePiece(to, captured)
		undo.CapturedPieceType = captured.Type()
		irreversible = true
	}

	// Clear the old en passant file before computing a new one.
	if ep := p.EnPassantSquare(); ep != NoSquare {
		p.ZobristKey ^= ZobristEnPassantFile[ep.File()]
	}
	p.clearEnPassant()

	// Relocate (or promote) the moving piece.
	p.ZobristKey ^= ZobristPiece[pieceZobristIndex(moving)][from]
	if pieceType == King {
		p.Square[from] = NoPiece
		p.Square[to] = moving
		p.KingSquare[us] = to
	} else if m.IsPromotion() {
		promoted := NewPiece(m.Promotion(), us)
		p.removePiece(from, moving)
		p.setPiece(to, promoted)
		moving = promoted // so the zobrist XOR-in below uses the promoted piece
	} else {
		p.Square[from] = NoPiece
		p.Square[to] = moving
		p.PieceListOf(us, pieceType).Move(from, to)
	}
	p.ZobristKey ^= ZobristPiece[pieceZobristIndex(moving)][to]

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		rook := p.PieceAt(rookFrom)
		p.ZobristKey ^= ZobristPiece[pieceZobristIndex(rook)][rookFrom]
		p.Square[rookFrom] = NoPiece
		p.Square[rookTo] = rook
		p.PieceListOf(us, Rook).Move(rookFrom, rookTo)
		p.ZobristKey ^= ZobristPiece[pieceZobristIndex(rook)][rookTo]
	}

	// Castling rights: a king move forfeits both of that side's rights; a
	// rook move or capture on a corner square forfeits the single right
	// anchored there.
	newRights := p.GameState & gameStateCastlingMask
	if pieceType == King {
		if us == White {
			newRights &^= uint32(WhiteKingSide | WhiteQueenSide)
		} else {
			newRights &^= uint32(BlackKingSide | BlackQueenSide)
		}
	}
	newRights &^= castlingRightLostAt(from)
	newRights &^= castlingRightLostAt(to)
	if newRights != p.GameState&gameStateCastlingMask {
		p.ZobristKey ^= ZobristCastling[p.GameState&gameStateCastlingMask]
		p.GameState = (p.GameState &^ gameStateCastlingMask) | newRights
		p.ZobristKey ^= ZobristCastling[p.GameState&gameStateCastlingMask]
	}

	if m.IsPawnTwoForward() {
		p.setEnPassantFile(from.File())
		p.ZobristKey ^= ZobristEnPassantFile[from.File()]
	}

	p.SideToMove = them
	p.ZobristKey ^= ZobristSideToMove

	p.PlyCount++
	if irreversible {
		p.FiftyMoveCounter = 0
	} else {
		p.FiftyMoveCounter++
	}
	p.ZobristHistory = append(p.ZobristHistory, p.ZobristKey)

	return undo
}

// UnmakeMove reverses the effect of MakeMove(p, m), given the UndoInfo it
// returned. p must be in the exact state MakeMove left it in.
func UnmakeMove(p *Position, m Move, undo UndoInfo) {
	p.ZobristHistory = p.ZobristHistory[:len(p.ZobristHistory)-1]

	them := p.SideToMove
	us := them.Other()
	p.SideToMove = us

	from, to := m.From(), m.To()

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		rook := p.PieceAt(rookTo)
		p.Square[rookTo] = NoPiece
		p.Square[rookFrom] = rook
		p.PieceListOf(us, Rook).Move(rookTo, rookFrom)
	}

	if m.IsPromotion() {
		promoted := p.PieceAt(to)
		p.removePiece(to, promoted)
		p.setPiece(from, NewPiece(Pawn, us))
	} else if p.PieceAt(to).Type() == King {
		p.Square[to] = NoPiece
		p.Square[from] = NewPiece(King, us)
		p.KingSquare[us] = from
	} else {
		mover := p.PieceAt(to)
		p.Square[to] = NoPiece
		p.Square[from] = mover
		p.PieceListOf(us, mover.Type()).Move(to, from)
	}

	if m.IsEnPassant() {
		capSq := epCapturedSquare(to, us)
		p.setPiece(capSq, NewPiece(Pawn, them))
	} else if undo.CapturedPieceType != NoPieceType {
		p.setPiece(to, NewPiece(undo.CapturedPieceType, them))
	}

	p.GameState = undo.GameState
	p.ZobristKey = undo.ZobristKey
	p.FiftyMoveCounter = undo.FiftyMoveCounter
	p.PlyCount = undo.PlyCount
}

// epCapturedSquare returns the square holding the pawn captured en passant,
// given the destination square of the capturing pawn and its color.
func epCapturedSquare(to Square, capturingColor Color) Square {
	if capturingColor == White {
		return to - 8
	}
	return to + 8
}

// castlingRookSquares returns the rook's origin and destination for a
// castling move identified by the king's from/to squares.
func castlingRookSquares(kingFrom, kingTo Square) (Square, Square) {
	if kingTo > kingFrom {
		return kingFrom + 3, kingFrom + 1 // kingside
	}
	return kingFrom - 4, kingFrom - 1 // queenside
}

// castlingRightLostAt returns the castling right forfeited when a piece moves
// to or from sq. Only the four rook corner squares anchor a right (a king
// move is handled separately by MakeMove), so the same helper works for a
// mover's `from` and `to`.
func castlingRightLostAt(sq Square) uint32 {
	switch sq {
	case A1:
		return uint32(WhiteQueenSide)
	case H1:
		return uint32(WhiteKingSide)
	case A8:
		return uint32(BlackQueenSide)
	case H8:
		return uint32(BlackKingSide)
	default:
		return 0
	}
}
