package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// LoadFEN parses a FEN string into a fresh Position. Per the truncated-FEN
// convention, only the piece placement field is mandatory: a missing active
// color defaults to White, missing castling rights to none, missing en
// passant to none, and missing move counters to 0 and 1.
func LoadFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fenErrorf(fen, "missing piece placement")
	}

	p := NewEmptyPosition()

	if err := parsePiecePlacement(p, parts[0]); err != nil {
		return nil, err
	}
	if p.KingSquare[White] == NoSquare {
		return nil, fenErrorf(fen, "no White king")
	}
	if p.KingSquare[Black] == NoSquare {
		return nil, fenErrorf(fen, "no Black king")
	}

	p.SideToMove = White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			p.SideToMove = White
		case "b":
			p.SideToMove = Black
		default:
			return nil, fenErrorf(fen, "invalid side to move: %s", parts[1])
		}
	}

	if len(parts) > 2 {
		if err := parseCastlingRights(p, parts[2]); err != nil {
			return nil, err
		}
	}

	if len(parts) > 3 && parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fenErrorf(fen, "invalid en passant square: %s", parts[3])
		}
		p.setEnPassantFile(sq.File())
	}

	p.FiftyMoveCounter = 0
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fenErrorf(fen, "invalid half-move clock: %s", parts[4])
		}
		p.FiftyMoveCounter = hmc
	}

	fullMove := 1
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fenErrorf(fen, "invalid full-move number: %s", parts[5])
		}
		fullMove = fmn
	}
	p.PlyCount = (fullMove-1)*2 + int(p.SideToMove)

	p.ZobristKey = computeZobristFromScratch(p)
	p.ZobristHistory = append(p.ZobristHistory, p.ZobristKey)

	return p, nil
}

func parsePiecePlacement(p *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fenErrorf(placement, "need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fenErrorf(placement, "too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fenErrorf(placement, "invalid piece character: %c", c)
			}
			if piece.Type() == King && p.KingSquare[piece.Color()] != NoSquare {
				return fenErrorf(placement, "more than one %s king", piece.Color())
			}
			p.setPiece(NewSquare(file, rank), piece)
			file++
		}

		if file != 8 {
			return fenErrorf(placement, "invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

func parseCastlingRights(p *Position, castling string) error {
	if castling == "-" {
		return nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			p.GameState |= uint32(WhiteKingSide)
		case 'Q':
			p.GameState |= uint32(WhiteQueenSide)
		case 'k':
			p.GameState |= uint32(BlackKingSide)
		case 'q':
			p.GameState |= uint32(BlackQueenSide)
		default:
			return fenErrorf(castling, "invalid castling character: %c", c)
		}
	}
	return nil
}

func castlingRightsString(gameState uint32) string {
	var sb strings.Builder
	if gameState&uint32(WhiteKingSide) != 0 {
		sb.WriteByte('K')
	}
	if gameState&uint32(WhiteQueenSide) != 0 {
		sb.WriteByte('Q')
	}
	if gameState&uint32(BlackKingSide) != 0 {
		sb.WriteByte('k')
	}
	if gameState&uint32(BlackQueenSide) != 0 {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Square[NewSquare(file, rank)]
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
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(castlingRightsString(p.GameState))

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassantSquare().String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FiftyMoveCounter))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.PlyCount/2 + 1))

	return sb.String()
}

// computeZobristFromScratch rebuilds the Zobrist key by hashing every piece,
// the side to move, castling rights, and en passant file independently of
// any incremental state. Used when loading a FEN and as a correctness check
// against MakeMove/UnmakeMove's incremental updates.
func computeZobristFromScratch(p *Position) uint64 {
	var key uint64

	for sq := A1; sq <= H8; sq++ {
		piece := p.Square[sq]
		if piece == NoPiece {
			continue
		}
		key ^= ZobristPiece[pieceZobristIndex(piece)][sq]
	}

	if p.SideToMove == Black {
		key ^= ZobristSideToMove
	}
	key ^= ZobristCastling[p.GameState&gameStateCastlingMask]

	if ep := p.EnPassantSquare(); ep != NoSquare {
		key ^= ZobristEnPassantFile[ep.File()]
	}

	return key
}
