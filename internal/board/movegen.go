package board

// attackData is computed once per Generate call and drives every piece's
// move restriction: sliding/knight/pawn checks contribute to checkRayMask,
// sliding x-ray detection contributes pinnedSquares/pinRayMask, and
// opponentAttackMap gates king moves and castling.
type attackData struct {
	opponentAttackMap Bitboard
	inCheck           bool
	doubleCheck       bool
	checkRayMask      Bitboard // valid only when inCheck && !doubleCheck

	pinnedSquares Bitboard
	pinRayMask    [64]Bitboard // valid only where pinnedSquares is set
}

func isSliderFor(pt PieceType, diagonal bool) bool {
	if pt == Queen {
		return true
	}
	if diagonal {
		return pt == Bishop
	}
	return pt == Rook
}

// calculateAttackData walks all eight directions from us's king to find
// checks and pins in one pass, then separately folds in knight/pawn checks
// and the full opponent attack map used for king safety.
func calculateAttackData(p *Position, us Color) attackData {
	them := us.Other()
	kingSq := p.KingSquare[us]
	// King is excluded from occupancy so a slider's ray is seen to continue
	// past the king: otherwise the king could "hide" behind
	// itself by stepping straight back along the checking ray.
	occNoKing := occupancyBB(p) &^ SquareBB(kingSq)

	var data attackData
	numCheckers := 0

	addChecker := func(mask Bitboard) {
		if numCheckers == 0 {
			data.checkRayMask = mask
		} else {
			data.doubleCheck = true
		}
		data.inCheck = true
		numCheckers++
	}

	for dir := 0; dir < 8; dir++ {
		maxDist := SquaresToEdge[kingSq][dir]
		if maxDist == 0 {
			continue
		}
		diagonal := dir >= dirNorthWest

		friendly := NoSquare
		cur := int(kingSq)
		for step := 1; step <= maxDist; step++ {
			cur += DirectionOffsets[dir]
			sq := Square(cur)

			piece := p.Square[sq]
			if piece == NoPiece {
				continue
			}
			if piece.Color() == us {
				if friendly == NoSquare {
					friendly = sq
					continue
				}
				break // two friendly blockers: no pin or check possible here
			}

			if !isSliderFor(piece.Type(), diagonal) {
				break
			}
			// Between excludes both endpoints, so OR in sq itself to get the
			// full ray from one step past the king through the slider.
			mask := Between(kingSq, sq) | SquareBB(sq)
			if friendly == NoSquare {
				addChecker(mask)
			} else {
				data.pinnedSquares = data.pinnedSquares.Set(friendly)
				data.pinRayMask[friendly] = mask
			}
			break
		}
	}

	knights := p.PieceListOf(them, Knight)
	for i := 0; i < knights.Len(); i++ {
		sq := knights.At(i)
		if KnightAttackBB[sq].IsSet(kingSq) {
			addChecker(SquareBB(sq))
		}
	}

	pawns := p.PieceListOf(them, Pawn)
	for i := 0; i < pawns.Len(); i++ {
		sq := pawns.At(i)
		if PawnAttacks[sq][them].IsSet(kingSq) {
			addChecker(SquareBB(sq))
		}
	}

	data.opponentAttackMap = opponentAttackMap(p, them, occNoKing)

	return data
}

// opponentAttackMap returns every square attacked by color c, computing
// sliding attacks against occForSliders (normally occupancy with the
// defending king removed).
func opponentAttackMap(p *Position, c Color, occForSliders Bitboard) Bitboard {
	var attacked Bitboard

	pawns := p.PieceListOf(c, Pawn)
	for i := 0; i < pawns.Len(); i++ {
		attacked |= PawnAttacks[pawns.At(i)][c]
	}
	knights := p.PieceListOf(c, Knight)
	for i := 0; i < knights.Len(); i++ {
		attacked |= KnightAttackBB[knights.At(i)]
	}
	bishops := p.PieceListOf(c, Bishop)
	for i := 0; i < bishops.Len(); i++ {
		attacked |= BishopAttacks(bishops.At(i), occForSliders)
	}
	rooks := p.PieceListOf(c, Rook)
	for i := 0; i < rooks.Len(); i++ {
		attacked |= RookAttacks(rooks.At(i), occForSliders)
	}
	queens := p.PieceListOf(c, Queen)
	for i := 0; i < queens.Len(); i++ {
		attacked |= QueenAttacks(queens.At(i), occForSliders)
	}
	attacked |= KingAttackBB[p.KingSquare[c]]

	return attacked
}

// Generate returns every legal move available to the side to move.
func Generate(p *Position) *MoveList {
	return generate(p, false)
}

// GenerateCaptures returns only legal captures and promotions (quiet
// promotions are suppressed, promotion captures are not), for quiescence-style
// callers that never need the full quiet move list.
func GenerateCaptures(p *Position) *MoveList {
	return generate(p, true)
}

func generate(p *Position, capturesOnly bool) *MoveList {
	ml := &MoveList{}
	us := p.SideToMove
	data := calculateAttackData(p, us)

	generateKingMoves(p, ml, us, data, capturesOnly)
	if data.doubleCheck {
		return ml // only the king can move out of a double check
	}

	ownOcc := colorOccupancyBB(p, us)
	enemyOcc := colorOccupancyBB(p, us.Other())
	occAll := ownOcc | enemyOcc

	generateSlidingMoves(p, ml, us, data, ownOcc, occAll, capturesOnly)
	generateKnightMoves(p, ml, us, data, ownOcc, capturesOnly)
	generatePawnMoves(p, ml, us, data, enemyOcc, occAll, capturesOnly)

	return ml
}

// colorOccupancyBB returns every square occupied by color c, including its
// king square.
func colorOccupancyBB(p *Position, c Color) Bitboard {
	occ := SquareBB(p.KingSquare[c])
	for pt := Pawn; pt < King; pt++ {
		list := p.PieceListOf(c, pt)
		for i := 0; i < list.Len(); i++ {
			occ = occ.Set(list.At(i))
		}
	}
	return occ
}

func generateKingMoves(p *Position, ml *MoveList, us Color, data attackData, capturesOnly bool) {
	from := p.KingSquare[us]
	ownOcc := colorOccupancyBB(p, us)
	enemyOcc := colorOccupancyBB(p, us.Other())

	for _, to := range KingTargets[from] {
		if ownOcc.IsSet(to) {
			continue
		}
		if capturesOnly && !enemyOcc.IsSet(to) {
			continue
		}
		if data.opponentAttackMap.IsSet(to) {
			continue
		}
		ml.Add(NewMove(from, to, FlagQuiet))
	}

	if data.inCheck || capturesOnly {
		return
	}

	occAll := occupancyBB(p)

	kingSideRight, queenSideRight := WhiteKingSide, WhiteQueenSide
	if us == Black {
		kingSideRight, queenSideRight = BlackKingSide, BlackQueenSide
	}

	if p.HasCastlingRight(kingSideRight) {
		pathEmpty := !occAll.IsSet(from+1) && !occAll.IsSet(from+2)
		pathSafe := !data.opponentAttackMap.IsSet(from+1) && !data.opponentAttackMap.IsSet(from+2)
		if pathEmpty && pathSafe {
			ml.Add(NewMove(from, from+2, FlagCastling))
		}
	}
	if p.HasCastlingRight(queenSideRight) {
		pathEmpty := !occAll.IsSet(from-1) && !occAll.IsSet(from-2) && !occAll.IsSet(from-3)
		pathSafe := !data.opponentAttackMap.IsSet(from-1) && !data.opponentAttackMap.IsSet(from-2)
		if pathEmpty && pathSafe {
			ml.Add(NewMove(from, from-2, FlagCastling))
		}
	}
}

func generateSlidingMoves(p *Position, ml *MoveList, us Color, data attackData, ownOcc, occAll Bitboard, capturesOnly bool) {
	enemyOcc := colorOccupancyBB(p, us.Other())
	addSlider := func(pt PieceType, attacks func(sq Square, occ Bitboard) Bitboard) {
		list := p.PieceListOf(us, pt)
		for i := 0; i < list.Len(); i++ {
			sq := list.At(i)
			targets := attacks(sq, occAll) &^ ownOcc
			if data.pinnedSquares.IsSet(sq) {
				targets &= data.pinRayMask[sq]
			}
			if data.inCheck {
				targets &= data.checkRayMask
			}
			if capturesOnly {
				targets &= enemyOcc
			}
			for targets != 0 {
				to := targets.PopLSB()
				ml.Add(NewMove(sq, to, FlagQuiet))
			}
		}
	}

	addSlider(Bishop, BishopAttacks)
	addSlider(Rook, RookAttacks)
	addSlider(Queen, QueenAttacks)
}

func generateKnightMoves(p *Position, ml *MoveList, us Color, data attackData, ownOcc Bitboard, capturesOnly bool) {
	enemyOcc := colorOccupancyBB(p, us.Other())
	list := p.PieceListOf(us, Knight)
	for i := 0; i < list.Len(); i++ {
		sq := list.At(i)
		if data.pinnedSquares.IsSet(sq) {
			continue // a pinned knight can never move without exposing the king
		}
		targets := KnightAttackBB[sq] &^ ownOcc
		if data.inCheck {
			targets &= data.checkRayMask
		}
		if capturesOnly {
			targets &= enemyOcc
		}
		for targets != 0 {
			to := targets.PopLSB()
			ml.Add(NewMove(sq, to, FlagQuiet))
		}
	}
}

func generatePawnMoves(p *Position, ml *MoveList, us Color, data attackData, enemyOcc, occAll Bitboard, capturesOnly bool) {
	forward := 8
	startRank, promoRank := 1, 7
	if us == Black {
		forward = -8
		startRank, promoRank = 6, 0
	}

	addPawnMove := func(from, to Square, flag uint16, isCapture bool) {
		if to.Rank() == promoRank {
			if capturesOnly && !isCapture {
				return
			}
			ml.Add(NewMove(from, to, FlagPromoteQueen))
			ml.Add(NewMove(from, to, FlagPromoteKnight))
			ml.Add(NewMove(from, to, FlagPromoteRook))
			ml.Add(NewMove(from, to, FlagPromoteBishop))
			return
		}
		if capturesOnly && !isCapture {
			return
		}
		ml.Add(NewMove(from, to, flag))
	}

	allowed := func(sq Square, to Square) bool {
		if data.pinnedSquares.IsSet(sq) && !data.pinRayMask[sq].IsSet(to) {
			return false
		}
		if data.inCheck && !data.checkRayMask.IsSet(to) {
			return false
		}
		return true
	}

	list := p.PieceListOf(us, Pawn)
	epSquare := p.EnPassantSquare()

	for i := 0; i < list.Len(); i++ {
		from := list.At(i)

		single := Square(int(from) + forward)
		if !occAll.IsSet(single) {
			if allowed(from, single) {
				addPawnMove(from, single, FlagQuiet, false)
			}
			if !capturesOnly && from.Rank() == startRank {
				double := Square(int(from) + 2*forward)
				if !occAll.IsSet(double) && allowed(from, double) {
					ml.Add(NewMove(from, double, FlagPawnTwoForward))
				}
			}
		}

		for _, dirIdx := range PawnAttackDirIndices[us] {
			if SquaresToEdge[from][dirIdx] == 0 {
				continue
			}
			to := Square(int(from) + DirectionOffsets[dirIdx])

			if to == epSquare {
				capSq := epCapturedSquare(to, us)
				// Taking en passant also answers a check given by the pawn it removes.
				evades := !data.inCheck || data.checkRayMask.IsSet(to) || data.checkRayMask.IsSet(capSq)
				pinOK := !data.pinnedSquares.IsSet(from) || data.pinRayMask[from].IsSet(to)
				if evades && pinOK && !enPassantExposesKing(p, us, from, capSq) {
					ml.Add(NewMove(from, to, FlagEnPassantCapture))
				}
				continue
			}

			if enemyOcc.IsSet(to) && allowed(from, to) {
				addPawnMove(from, to, FlagQuiet, true)
			}
		}
	}
}

// enPassantExposesKing reports whether capturing en passant would leave us's
// king attacked by an enemy rook, bishop or queen. The capture removes two
// pawns and fills the target square in one move, which can open a line
// (most often along the king's rank) that no ordinary pin check catches.
func enPassantExposesKing(p *Position, us Color, capturingPawnSq, capturedPawnSq Square) bool {
	kingSq := p.KingSquare[us]
	them := us.Other()
	occ := occupancyBB(p)&^SquareBB(capturingPawnSq)&^SquareBB(capturedPawnSq) | SquareBB(p.EnPassantSquare())
	if RookAttacks(kingSq, occ)&rooksAndQueensBB(p, them) != 0 {
		return true
	}
	diagonals := BishopAttacks(kingSq, occ)
	for _, pt := range [2]PieceType{Bishop, Queen} {
		list := p.PieceListOf(them, pt)
		for i := 0; i < list.Len(); i++ {
			if diagonals.IsSet(list.At(i)) {
				return true
			}
		}
	}
	return false
}

func rooksAndQueensBB(p *Position, c Color) Bitboard {
	var bb Bitboard
	rooks := p.PieceListOf(c, Rook)
	for i := 0; i < rooks.Len(); i++ {
		bb = bb.Set(rooks.At(i))
	}
	queens := p.PieceListOf(c, Queen)
	for i := 0; i < queens.Len(); i++ {
		bb = bb.Set(queens.At(i))
	}
	return bb
}

// HasLegalMoves reports whether the side to move has at least one legal
// move. It builds the full move list with Generate and checks its length.
func HasLegalMoves(p *Position) bool {
	return Generate(p).Len() > 0
}

// IsCheckmate reports whether the side to move is in check with no legal
// moves.
func IsCheckmate(p *Position) bool {
	return p.InCheck() && !HasLegalMoves(p)
}

// IsStalemate reports whether the side to move is not in check but has no
// legal moves.
func IsStalemate(p *Position) bool {
	return !p.InCheck() && !HasLegalMoves(p)
}
