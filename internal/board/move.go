package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: flag, one of the Flag* constants below
type Move uint16

// Move flags. Ordinary quiet moves and ordinary captures share FlagQuiet;
// whether a move captures is read off the board, not the move itself.
const (
	FlagQuiet uint16 = iota << 12
	FlagEnPassantCapture
	FlagCastling
	FlagPawnTwoForward
	FlagPromoteQueen
	FlagPromoteKnight
	FlagPromoteRook
	FlagPromoteBishop
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move with the given flag.
func NewMove(from, to Square, flag uint16) Move {
	return Move(from) | Move(to)<<6 | Move(flag)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the move flag.
func (m Move) Flag() uint16 {
	return uint16(m) & 0xF000
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag() >= FlagPromoteQueen
}

// Promotion returns the promotion piece type. Only valid if IsPromotion().
func (m Move) Promotion() PieceType {
	switch m.Flag() {
	case FlagPromoteQueen:
		return Queen
	case FlagPromoteKnight:
		return Knight
	case FlagPromoteRook:
		return Rook
	case FlagPromoteBishop:
		return Bishop
	default:
		return NoPieceType
	}
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flag() == FlagCastling
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassantCapture
}

// IsPawnTwoForward returns true if this is a pawn's initial two-square
// advance, the only move that can open an en passant target.
func (m Move) IsPawnTwoForward() bool {
	return m.Flag() == FlagPawnTwoForward
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return !pos.IsEmpty(m.To())
}

// IsQuiet returns true if this is not a capture or promotion.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}

	return s
}

// ParseMove parses a UCI format move string against the position to recover
// which flag applies (the string alone can't distinguish a quiet king step
// from castling, or a quiet pawn push from an en passant capture).
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		var flag uint16
		switch s[4] {
		case 'n':
			flag = FlagPromoteKnight
		case 'b':
			flag = FlagPromoteBishop
		case 'r':
			flag = FlagPromoteRook
		case 'q':
			flag = FlagPromoteQueen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewMove(from, to, flag), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewMove(from, to, FlagCastling), nil
	}
	if pt == Pawn && to == pos.EnPassantSquare() {
		return NewMove(from, to, FlagEnPassantCapture), nil
	}
	if pt == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		return NewMove(from, to, FlagPawnTwoForward), nil
	}

	return NewMove(from, to, FlagQuiet), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// At returns the move at index i.
func (ml *MoveList) At(i int) Move {
	return ml.moves[i]
}


// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Find returns the move in the list whose UCI string matches s, resolving a
// UCI move string from an external caller against the actual legal move
// list. Nothing in this repository calls it; the --only CLI filter compares
// split entries' move strings directly.
func (ml *MoveList) Find(s string) (Move, bool) {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].String() == s {
			return ml.moves[i], true
		}
	}
	return NoMove, false
}

// UndoInfo stores the information needed to reverse one MakeMove call. It is
// deliberately minimal: scalars that changed plus the captured piece type,
// not a snapshot of the whole position.
type UndoInfo struct {
	CapturedPieceType PieceType
	GameState         uint32
	ZobristKey        uint64
	FiftyMoveCounter  int
	PlyCount          int
}
