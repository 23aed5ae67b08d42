package board

import "testing"

func TestLoadFENTruncatedDefaults(t *testing.T) {
	explicit, err := LoadFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	if err != nil {
		t.Fatalf("LoadFEN(explicit defaults): %v", err)
	}
	truncated, err := LoadFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	if err != nil {
		t.Fatalf("LoadFEN(truncated): %v", err)
	}
	if truncated.SideToMove != White {
		t.Errorf("truncated side to move = %v, want White", truncated.SideToMove)
	}
	if truncated.GameState&gameStateCastlingMask != 0 {
		t.Errorf("truncated castling rights = %#x, want none", truncated.GameState&gameStateCastlingMask)
	}
	if truncated.EnPassantSquare() != NoSquare {
		t.Errorf("truncated en passant = %v, want none", truncated.EnPassantSquare())
	}
	if truncated.FiftyMoveCounter != 0 || truncated.PlyCount != 0 {
		t.Errorf("truncated counters = (%d,%d), want (0,0)", truncated.FiftyMoveCounter, truncated.PlyCount)
	}
	if truncated.ZobristKey != explicit.ZobristKey {
		t.Errorf("truncated FEN and its explicit-defaults form should hash identically")
	}
}

func TestLoadFENRejectsMissingKing(t *testing.T) {
	_, err := LoadFEN("8/8/8/8/8/8/8/4K3 w - - 0 1")
	if err == nil {
		t.Fatalf("expected error for missing Black king")
	}
	var fenErr *FenParseError
	if _, ok := err.(*FenParseError); !ok {
		t.Fatalf("expected *FenParseError, got %T", err)
	}
	_ = fenErr
}

func TestLoadFENRejectsDuplicateKing(t *testing.T) {
	_, err := LoadFEN("k3k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err == nil {
		t.Fatalf("expected error for duplicate Black king")
	}
}

func TestLoadFENRejectsMalformedPlacement(t *testing.T) {
	cases := []string{
		"8/8/8/8/8/8/8 w - - 0 1",                      // only 7 ranks
		"rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w", // bad piece char
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w", // too many squares
	}
	for _, fen := range cases {
		if _, err := LoadFEN(fen); err == nil {
			t.Errorf("LoadFEN(%q): expected error, got none", fen)
		}
	}
}

func TestToFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		p, err := LoadFEN(fen)
		if err != nil {
			t.Fatalf("LoadFEN(%q): %v", fen, err)
		}
		if got := p.ToFEN(); got != fen {
			t.Errorf("ToFEN() = %q, want %q", got, fen)
		}
	}
}
