package board

// betweenBB[sq1][sq2] holds the squares strictly between sq1 and sq2 when
// they share a rank, file, or diagonal; used to turn a king-to-checker walk
// in calculateAttackData into a single lookup instead of re-deriving the
// mask a second time.
var betweenBB [64][64]Bitboard

func init() {
	initBetweenBB()
}

func initBetweenBB() {
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			if sq1 == sq2 {
				continue
			}

			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()

			df := sign(f2 - f1)
			dr := sign(r2 - r1)

			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue // not on a shared rank, file, or diagonal
			}
			if df == 0 && dr == 0 {
				continue
			}

			var between Bitboard
			f, r := f1+df, r1+dr
			for f != f2 || r != r2 {
				if f < 0 || f > 7 || r < 0 || r > 7 {
					break
				}
				between = between.Set(NewSquare(f, r))
				f += df
				r += dr
			}

			betweenBB[sq1][sq2] = between
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// Between returns the bitboard of squares strictly between two squares.
// Empty if the squares are not aligned on a rank, file, or diagonal.
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// slideAttacks walks every direction in [startDir, endDir) from sq using the
// same DirectionOffsets/SquaresToEdge tables the generator's own ray walks
// use, stopping a ray at (and including) the first occupied square.
func slideAttacks(sq Square, occupied Bitboard, startDir, endDir int) Bitboard {
	var attacks Bitboard
	for dir := startDir; dir < endDir; dir++ {
		cur := int(sq)
		for step := 1; step <= SquaresToEdge[sq][dir]; step++ {
			cur += DirectionOffsets[dir]
			to := Square(cur)
			attacks = attacks.Set(to)
			if occupied.IsSet(to) {
				break
			}
		}
	}
	return attacks
}

// BishopAttacks returns the bishop attack bitboard for a square with the
// given board occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slideAttacks(sq, occupied, dirNorthWest, dirNorthWest+4)
}

// RookAttacks returns the rook attack bitboard for a square with the given
// board occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slideAttacks(sq, occupied, dirNorth, dirNorth+4)
}

// QueenAttacks returns the queen attack bitboard for a square with the given
// board occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// occupancyBB returns a bitboard of every occupied square on p, built from
// the piece lists and king squares. Callers that need occupancy more than
// once per query should cache it; this walks all ten non-king piece lists.
func occupancyBB(p *Position) Bitboard {
	var occ Bitboard
	occ = occ.Set(p.KingSquare[White]).Set(p.KingSquare[Black])
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt < King; pt++ {
			list := p.PieceListOf(c, pt)
			for i := 0; i < list.Len(); i++ {
				occ = occ.Set(list.At(i))
			}
		}
	}
	return occ
}

// AttackersByColor returns a bitboard of every piece of color c attacking
// sq, given board occupancy occ.
func AttackersByColor(p *Position, sq Square, c Color, occ Bitboard) Bitboard {
	var attackers Bitboard

	pawns := p.PieceListOf(c, Pawn)
	for i := 0; i < pawns.Len(); i++ {
		from := pawns.At(i)
		if PawnAttacks[from][c].IsSet(sq) {
			attackers = attackers.Set(from)
		}
	}

	knights := p.PieceListOf(c, Knight)
	for i := 0; i < knights.Len(); i++ {
		if KnightAttackBB[knights.At(i)].IsSet(sq) {
			attackers = attackers.Set(knights.At(i))
		}
	}

	if KingAttackBB[p.KingSquare[c]].IsSet(sq) {
		attackers = attackers.Set(p.KingSquare[c])
	}

	bishops := p.PieceListOf(c, Bishop)
	for i := 0; i < bishops.Len(); i++ {
		from := bishops.At(i)
		if BishopAttacks(sq, occ).IsSet(from) {
			attackers = attackers.Set(from)
		}
	}
	rooks := p.PieceListOf(c, Rook)
	for i := 0; i < rooks.Len(); i++ {
		from := rooks.At(i)
		if RookAttacks(sq, occ).IsSet(from) {
			attackers = attackers.Set(from)
		}
	}
	queens := p.PieceListOf(c, Queen)
	for i := 0; i < queens.Len(); i++ {
		from := queens.At(i)
		if QueenAttacks(sq, occ).IsSet(from) {
			attackers = attackers.Set(from)
		}
	}

	return attackers
}

// IsSquareAttacked reports whether sq is attacked by any piece of color
// byColor in position p.
func IsSquareAttacked(p *Position, sq Square, byColor Color) bool {
	return AttackersByColor(p, sq, byColor, occupancyBB(p)) != 0
}
