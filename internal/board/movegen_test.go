package board

import "testing"

// perft counts the leaf nodes of the legal move tree at a given depth. Depth
// 1 short-circuits to a bulk count of the just-generated move list, since at
// that depth every move IS a leaf and there is no need to make/unmake it.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := Generate(p)
	if depth == 1 {
		return int64(moves.Len())
	}
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		undo := MakeMove(p, m)
		nodes += perft(p, depth-1)
		UnmakeMove(p, m, undo)
	}
	return nodes
}

func mustLoadFEN(t *testing.T, fen string) *Position {
	t.Helper()
	p, err := LoadFEN(fen)
	if err != nil {
		t.Fatalf("LoadFEN(%q): %v", fen, err)
	}
	return p
}

func TestPerftStartingPosition(t *testing.T) {
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		p := mustLoadFEN(t, StartFEN)
		if got := perft(p, c.depth); got != c.want {
			t.Errorf("perft(start, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		p := mustLoadFEN(t, fen)
		if got := perft(p, c.depth); got != c.want {
			t.Errorf("perft(kiwipete, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition3(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	for _, c := range cases {
		p := mustLoadFEN(t, fen)
		if got := perft(p, c.depth); got != c.want {
			t.Errorf("perft(position3, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition4(t *testing.T) {
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	}
	for _, c := range cases {
		p := mustLoadFEN(t, fen)
		if got := perft(p, c.depth); got != c.want {
			t.Errorf("perft(position4, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	fen := "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 44},
		{2, 1486},
		{3, 62379},
	}
	for _, c := range cases {
		p := mustLoadFEN(t, fen)
		if got := perft(p, c.depth); got != c.want {
			t.Errorf("perft(position5, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

// TestPerftEnPassantPin covers the horizontal-pin edge case: the black king
// and a would-be en passant capture share rank 4 with a white rook, so the
// capture is illegal even though nothing about the capturing pawn looks
// pinned on its own.
func TestPerftEnPassantPin(t *testing.T) {
	p := mustLoadFEN(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")

	moves := Generate(p)
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).IsEnPassant() {
			t.Fatalf("en passant capture %s should be illegal (horizontal pin)", moves.At(i))
		}
	}

	cases := []struct {
		depth int
		want  int64
	}{
		{1, 6},
		{2, 94},
	}
	for _, c := range cases {
		fresh := mustLoadFEN(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
		if got := perft(fresh, c.depth); got != c.want {
			t.Errorf("perft(ep-pin, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestMakeUnmakeRestoresZobristKey(t *testing.T) {
	p := mustLoadFEN(t, StartFEN)
	moves := Generate(p)
	for i := 0; i < moves.Len(); i++ {
		before := p.ZobristKey
		m := moves.At(i)
		undo := MakeMove(p, m)
		UnmakeMove(p, m, undo)
		if p.ZobristKey != before {
			t.Fatalf("UnmakeMove(%s) left ZobristKey %x, want %x", m, p.ZobristKey, before)
		}
		if p.ZobristKey != computeZobristFromScratch(p) {
			t.Fatalf("ZobristKey %x does not match scratch recompute %x after undo of %s", p.ZobristKey, computeZobristFromScratch(p), m)
		}
	}
}

func TestIncrementalZobristMatchesScratch(t *testing.T) {
	p := mustLoadFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var walk func(depth int)
	walk = func(depth int) {
		if p.ZobristKey != computeZobristFromScratch(p) {
			t.Fatalf("incremental key %x != scratch key %x", p.ZobristKey, computeZobristFromScratch(p))
		}
		if depth == 0 {
			return
		}
		moves := Generate(p)
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			undo := MakeMove(p, m)
			walk(depth - 1)
			UnmakeMove(p, m, undo)
		}
	}
	walk(2)
}

func TestCheckmateDetection(t *testing.T) {
	// Fool's mate.
	p := mustLoadFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !IsCheckmate(p) {
		t.Fatalf("expected checkmate in fool's mate position")
	}
}

func TestStalemateDetection(t *testing.T) {
	p := mustLoadFEN(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if !IsStalemate(p) {
		t.Fatalf("expected stalemate")
	}
}
