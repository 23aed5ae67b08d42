package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece. None occupies value 0 so
// that a zeroed Piece reads as an empty square.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if int(pt) >= len(chars) {
		return ' '
	}
	return chars[pt]
}

// PieceValue returns the material value of the piece type in centipawns,
// indexed by PieceType.
var PieceValue = [7]int{0, 100, 320, 330, 500, 900, 20000}

// Piece packs a PieceType and a Color into a single byte: the low three bits
// carry the type {None,Pawn,Knight,Bishop,Rook,Queen,King}, the next two bits
// carry the color. A zero Piece is an empty square.
type Piece uint8

const (
	typeBits  = 3
	typeMask  = 0x7
	colorMask = 0x3
)

// NewPiece packs a PieceType and Color into a Piece.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece(pt&typeMask) | Piece(c&colorMask)<<typeBits
}

// NoPiece marks an empty square.
const NoPiece Piece = 0

const (
	WhitePawn   = Piece(Pawn) | Piece(White)<<typeBits
	WhiteKnight = Piece(Knight) | Piece(White)<<typeBits
	WhiteBishop = Piece(Bishop) | Piece(White)<<typeBits
	WhiteRook   = Piece(Rook) | Piece(White)<<typeBits
	WhiteQueen  = Piece(Queen) | Piece(White)<<typeBits
	WhiteKing   = Piece(King) | Piece(White)<<typeBits
	BlackPawn   = Piece(Pawn) | Piece(Black)<<typeBits
	BlackKnight = Piece(Knight) | Piece(Black)<<typeBits
	BlackBishop = Piece(Bishop) | Piece(Black)<<typeBits
	BlackRook   = Piece(Rook) | Piece(Black)<<typeBits
	BlackQueen  = Piece(Queen) | Piece(Black)<<typeBits
	BlackKing   = Piece(King) | Piece(Black)<<typeBits
)

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & typeMask)
}

// Color returns the Color of the piece. Meaningless if the piece is empty.
func (p Piece) Color() Color {
	return Color((p >> typeBits) & colorMask)
}

// IsEmpty reports whether the piece is the empty-square sentinel.
func (p Piece) IsEmpty() bool {
	return p.Type() == NoPieceType
}

// String returns the FEN character for the piece, uppercase for white and
// lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	c := p.Type().Char()
	if p.Color() == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN character to a Piece, or NoPiece if c is not a
// recognized piece letter.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
