// Package perft counts leaf nodes of the legal move tree rooted at a
// position, in three modes: a plain recursive count, a per-root-move split,
// and a root-parallel count that spreads the first ply's subtrees across a
// worker pool.
package perft

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bbchess/bbchess/internal/board"
)

// WorkerPanic wraps a recovered panic from inside a root-parallel worker so
// it surfaces as an ordinary error instead of taking down the whole process.
type WorkerPanic struct {
	Move string
	Err  any
}

func (e *WorkerPanic) Error() string {
	return fmt.Sprintf("perft worker for move %s panicked: %v", e.Move, e.Err)
}

func guardWorker(move string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerPanic{Move: move, Err: r}
		}
	}()
	return fn()
}

// Count walks the legal move tree depth plies deep and returns the number of
// leaf positions, with the depth-1 bulk-count fast path enabled. depth 0
// always returns 1 (the root itself counts as a single node).
func Count(p *board.Position, depth int) int64 {
	return CountBulk(p, depth, true)
}

// CountBulk is Count with the bulk-count fast path made explicit: when bulk
// is false, depth 1 is still made and unmade move by move rather than
// returning the move-list length directly. Both modes must agree on every
// position; the package tests check this, CountBulk itself does not.
func CountBulk(p *board.Position, depth int, bulk bool) int64 {
	if depth == 0 {
		return 1
	}
	moves := board.Generate(p)
	if depth == 1 && bulk {
		return int64(moves.Len())
	}
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		undo := board.MakeMove(p, m)
		nodes += CountBulk(p, depth-1, bulk)
		board.UnmakeMove(p, m, undo)
	}
	return nodes
}

// SplitEntry is one root move's subtree count, as produced by Split.
type SplitEntry struct {
	Move  string
	Nodes int64
}

// Split returns the node count broken down by root move, matching the
// conventional "perft divide" / "go perft" split output used to diagnose a
// move generator against a reference engine one root move at a time.
func Split(p *board.Position, depth int) ([]SplitEntry, int64) {
	moves := board.Generate(p)
	entries := make([]SplitEntry, 0, moves.Len())
	var total int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		undo := board.MakeMove(p, m)
		nodes := Count(p, depth-1)
		board.UnmakeMove(p, m, undo)
		entries = append(entries, SplitEntry{Move: m.String(), Nodes: nodes})
		total += nodes
	}
	return entries, total
}

// CountParallel behaves like Count but distributes the root's immediate
// moves across up to `workers` goroutines, each operating on its own cloned
// Position so no mutable state is shared between them. workers <= 1 falls
// back to the sequential Count. A panic inside a worker is recovered and
// reported as a WorkerPanic rather than crashing the process; the other
// workers are still joined before it is returned.
func CountParallel(ctx context.Context, p *board.Position, depth, workers int) (int64, error) {
	return CountParallelBulk(ctx, p, depth, workers, true)
}

// CountParallelBulk is CountParallel with the bulk-count fast path made
// explicit, mirroring CountBulk.
func CountParallelBulk(ctx context.Context, p *board.Position, depth, workers int, bulk bool) (int64, error) {
	if workers <= 1 || depth < 2 {
		return CountBulk(p, depth, bulk), nil
	}

	moves := board.Generate(p)
	var total int64
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		g.Go(func() error {
			return guardWorker(m.String(), func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				clone := p.Clone()
				undo := board.MakeMove(clone, m)
				nodes := CountBulk(clone, depth-1, bulk)
				board.UnmakeMove(clone, m, undo)

				mu.Lock()
				total += nodes
				mu.Unlock()
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total, nil
}

// SplitParallel is Split's root-parallel counterpart: every root move's
// subtree is counted on its own clone, potentially concurrently, but the
// returned entries are always in root-move-generation order so output is
// reproducible regardless of goroutine scheduling.
func SplitParallel(ctx context.Context, p *board.Position, depth, workers int) ([]SplitEntry, int64, error) {
	if workers <= 1 || depth < 2 {
		entries, total := Split(p, depth)
		return entries, total, nil
	}

	moves := board.Generate(p)
	entries := make([]SplitEntry, moves.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < moves.Len(); i++ {
		i, m := i, moves.At(i)
		g.Go(func() error {
			return guardWorker(m.String(), func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				clone := p.Clone()
				undo := board.MakeMove(clone, m)
				nodes := Count(clone, depth-1)
				board.UnmakeMove(clone, m, undo)
				entries[i] = SplitEntry{Move: m.String(), Nodes: nodes}
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var total int64
	for _, e := range entries {
		total += e.Nodes
	}
	return entries, total, nil
}

// FormatSplit renders split entries sorted by UCI move string, matching the
// stable ordering external perft-comparison tools expect.
func FormatSplit(entries []SplitEntry) []string {
	sorted := append([]SplitEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Move < sorted[j].Move })
	lines := make([]string, len(sorted))
	for i, e := range sorted {
		lines[i] = fmt.Sprintf("%s: %d", e.Move, e.Nodes)
	}
	return lines
}
