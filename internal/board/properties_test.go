package board

import (
	"math/rand"
	"testing"
)

// TestBulkCountEquivalence checks that disabling the depth-1 bulk-count fast
// path never changes the result: it's purely a micro-optimization, not a
// different counting rule.
func TestBulkCountEquivalence(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	var bulkCount, noBulkCount func(p *Position, depth int) int64
	bulkCount = func(p *Position, depth int) int64 {
		if depth == 0 {
			return 1
		}
		moves := Generate(p)
		if depth == 1 {
			return int64(moves.Len())
		}
		var n int64
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			undo := MakeMove(p, m)
			n += bulkCount(p, depth-1)
			UnmakeMove(p, m, undo)
		}
		return n
	}
	noBulkCount = func(p *Position, depth int) int64 {
		if depth == 0 {
			return 1
		}
		moves := Generate(p)
		var n int64
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			undo := MakeMove(p, m)
			n += noBulkCount(p, depth-1)
			UnmakeMove(p, m, undo)
		}
		return n
	}

	for _, fen := range fens {
		for depth := 1; depth <= 3; depth++ {
			a := bulkCount(mustLoadFEN(t, fen), depth)
			b := noBulkCount(mustLoadFEN(t, fen), depth)
			if a != b {
				t.Errorf("fen %q depth %d: bulk=%d no-bulk=%d", fen, depth, a, b)
			}
		}
	}
}

// TestMoveStringRoundTrip verifies every legal move's UCI string parses back
// into the identical Move against the same position.
func TestMoveStringRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, fen := range fens {
		p := mustLoadFEN(t, fen)
		moves := Generate(p)
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			parsed, err := ParseMove(m.String(), p)
			if err != nil {
				t.Fatalf("ParseMove(%s): %v", m, err)
			}
			if parsed != m {
				t.Errorf("ParseMove(%s) = %v, want %v", m, parsed, m)
			}
		}
	}
}

// TestGenerateCapturesSubsetOfGenerate checks that GenerateCaptures never
// invents a move Generate wouldn't also produce, and that every quiet
// promotion is excluded while every capture (including promotion captures)
// survives.
func TestGenerateCapturesSubsetOfGenerate(t *testing.T) {
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	p := mustLoadFEN(t, fen)
	all := Generate(p)
	captures := GenerateCaptures(p)

	for i := 0; i < captures.Len(); i++ {
		m := captures.At(i)
		if !all.Contains(m) {
			t.Errorf("GenerateCaptures produced %s which Generate does not", m)
		}
		if !m.IsCapture(p) {
			t.Errorf("GenerateCaptures produced non-capture move %s", m)
		}
	}

	for i := 0; i < all.Len(); i++ {
		m := all.At(i)
		if m.IsCapture(p) && !captures.Contains(m) {
			t.Errorf("GenerateCaptures missing capture %s", m)
		}
	}
}

// TestRandomMakeUnmakeSequenceRestoresState plays up to 40 random legal
// plies from each fixed test position and then unmakes them in reverse,
// checking that the Zobrist key, board, piece lists, and king squares are
// restored exactly.
func TestRandomMakeUnmakeSequenceRestoresState(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	rng := rand.New(rand.NewSource(1))

	for _, fen := range fens {
		p := mustLoadFEN(t, fen)
		before := p.Clone()

		type played struct {
			m    Move
			undo UndoInfo
		}
		var history []played

		for i := 0; i < 40; i++ {
			moves := Generate(p)
			if moves.Len() == 0 {
				break
			}
			m := moves.At(rng.Intn(moves.Len()))
			undo := MakeMove(p, m)
			history = append(history, played{m, undo})
		}

		for i := len(history) - 1; i >= 0; i-- {
			UnmakeMove(p, history[i].m, history[i].undo)
		}

		if p.ZobristKey != before.ZobristKey {
			t.Fatalf("fen %q: ZobristKey not restored: got %x want %x", fen, p.ZobristKey, before.ZobristKey)
		}
		if p.Square != before.Square {
			t.Fatalf("fen %q: board not restored", fen)
		}
		if p.KingSquare != before.KingSquare {
			t.Fatalf("fen %q: king squares not restored", fen)
		}
		for c := White; c <= Black; c++ {
			for pt := Pawn; pt < King; pt++ {
				got, want := p.PieceListOf(c, pt), before.PieceListOf(c, pt)
				if got.Len() != want.Len() {
					t.Fatalf("fen %q: %v %v piece list length not restored", fen, c, pt)
				}
				for j := 0; j < want.Len(); j++ {
					if !got.Contains(want.At(j)) {
						t.Fatalf("fen %q: %v %v piece list missing %v", fen, c, pt, want.At(j))
					}
				}
			}
		}
		if p.GameState != before.GameState {
			t.Fatalf("fen %q: game state not restored", fen)
		}
		if p.FiftyMoveCounter != before.FiftyMoveCounter || p.PlyCount != before.PlyCount {
			t.Fatalf("fen %q: counters not restored", fen)
		}
		if len(p.ZobristHistory) != len(before.ZobristHistory) {
			t.Fatalf("fen %q: history length not restored: got %d want %d", fen, len(p.ZobristHistory), len(before.ZobristHistory))
		}
	}
}
