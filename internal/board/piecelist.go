package board

// maxPieceListLen is large enough to hold every piece of one type a side
// could ever have on the board (ten knights, bishops or rooks after
// promoting every pawn to one of them is the worst case; 16 leaves headroom).
const maxPieceListLen = 16

// PieceList is a dense, order-independent set of squares occupied by pieces
// of one (color, type) pair. Add/Remove/Move are O(1): removal swaps the
// last entry into the removed slot instead of shifting the tail, so the list
// never needs to be sorted or searched for the square being moved.
type PieceList struct {
	squares [maxPieceListLen]Square
	index   [64]int8 // index[sq] = position in squares, or -1 if absent
	count   int8
}

// NewPieceList returns an empty piece list.
func NewPieceList() PieceList {
	pl := PieceList{}
	for i := range pl.index {
		pl.index[i] = -1
	}
	return pl
}

// Len returns the number of occupied squares.
func (pl *PieceList) Len() int {
	return int(pl.count)
}

// At returns the i-th occupied square. Order is unspecified and changes
// across Remove calls.
func (pl *PieceList) At(i int) Square {
	return pl.squares[i]
}

// Contains reports whether sq is present in the list.
func (pl *PieceList) Contains(sq Square) bool {
	return pl.index[sq] != -1
}

// Add inserts sq, which must not already be present.
func (pl *PieceList) Add(sq Square) {
	pl.index[sq] = pl.count
	pl.squares[pl.count] = sq
	pl.count++
}

// Remove deletes sq, which must be present, by swapping the last element
// into its slot.
func (pl *PieceList) Remove(sq Square) {
	removedIdx := pl.index[sq]
	lastIdx := pl.count - 1
	lastSquare := pl.squares[lastIdx]

	pl.squares[removedIdx] = lastSquare
	pl.index[lastSquare] = removedIdx

	pl.count--
	pl.index[sq] = -1
}

// Move relocates a piece from one square to another in place, preserving its
// slot so callers holding an index remain valid.
func (pl *PieceList) Move(from, to Square) {
	idx := pl.index[from]
	pl.squares[idx] = to
	pl.index[from] = -1
	pl.index[to] = idx
}
