// Command perft drives internal/perft from the command line: an iterative
// depth sweep by default, a per-root-move split on request, and an optional
// thread count for root-parallel counting.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bbchess/bbchess/internal/board"
	"github.com/bbchess/bbchess/internal/config"
	"github.com/bbchess/bbchess/internal/perft"
	"github.com/bbchess/bbchess/internal/telemetry"
)

// out formats node counts with thousands separators, the way perft output
// reads in every engine that bothers to print them for humans.
var out = message.NewPrinter(language.English)

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func main() {
	args := os.Args[1:]

	// flag does not interleave positional args with flags, so split the
	// flag-looking arguments from the positional ones ourselves.
	var flagArgs, posArgs []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--no-bulk" || a == "--profile" {
			flagArgs = append(flagArgs, a)
			continue
		}
		if a == "--threads" || a == "-t" || a == "--only" || a == "--config" {
			flagArgs = append(flagArgs, a)
			if i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
			continue
		}
		posArgs = append(posArgs, a)
	}

	defaults := config.Default()
	for i, a := range flagArgs {
		if a == "--config" && i+1 < len(flagArgs) {
			if loaded, err := config.Load(flagArgs[i+1]); err == nil {
				defaults = loaded
			}
		}
	}

	fs := flag.NewFlagSet("perft", flag.ExitOnError)
	threads := fs.Int("threads", defaults.Threads, "number of root-parallel workers (0 or 1 runs sequentially)")
	fs.IntVar(threads, "t", defaults.Threads, "shorthand for --threads")
	only := fs.String("only", "", "restrict the root split to a single UCI move")
	noBulk := fs.Bool("no-bulk", !defaults.Bulk, "disable the depth-1 bulk-count fast path")
	cpuProfile := fs.Bool("profile", false, "write a pprof CPU profile of the run to ./cpu.pprof")
	fs.String("config", "", "path to a TOML file overriding depth/threads/bulk/fen defaults")

	if err := fs.Parse(flagArgs); err != nil {
		log.Fatal(err)
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	telemetry.SetLevel(defaults.LogLevel)
	logger := telemetry.GetLogger("perft")

	depth := defaults.Depth
	split := false
	fenWords := []string(nil)

	idx := 0
	if idx < len(posArgs) && posArgs[idx] == "split" {
		split = true
		idx++
		if idx < len(posArgs) && isNumber(posArgs[idx]) {
			depth, _ = strconv.Atoi(posArgs[idx])
			idx++
		}
	} else if idx < len(posArgs) && isNumber(posArgs[idx]) {
		depth, _ = strconv.Atoi(posArgs[idx])
		idx++
	}
	if idx < len(posArgs) {
		fenWords = posArgs[idx:]
	}
	if depth < 1 {
		depth = 1
	}

	fen := board.StartFEN
	if defaults.FEN != "" {
		fen = defaults.FEN
	}
	if len(fenWords) > 0 {
		fen = joinFEN(fenWords)
	}

	pos, err := board.LoadFEN(fen)
	if err != nil {
		logger.Errorf("FEN load failed: %v", err)
		log.Fatalf("invalid FEN %q: %v", fen, err)
	}

	out.Printf("FEN: %s\n", fen)
	if *threads > 1 {
		out.Printf("Using %d threads\n", *threads)
	}
	if *only != "" {
		out.Printf("Filtering for move: %s\n", *only)
	}

	ctx := context.Background()

	bulk := !*noBulk

	if split {
		start := time.Now()
		entries, total, err := perft.SplitParallel(ctx, pos, depth, *threads)
		if err != nil {
			logger.Errorf("split aborted: %v", err)
			log.Fatal(err)
		}
		elapsed := time.Since(start)
		for _, line := range perft.FormatSplit(filterEntries(entries, *only)) {
			out.Println(line)
		}
		out.Printf("Split completed in %d milliseconds\n", elapsed.Milliseconds())
		out.Printf("Nodes searched: %d\n", total)
		return
	}

	for d := 1; d <= depth; d++ {
		start := time.Now()
		var nodes int64
		if *threads > 0 && d >= 4 {
			nodes, err = perft.CountParallelBulk(ctx, pos, d, *threads, bulk)
			if err != nil {
				logger.Errorf("depth %d aborted: %v", d, err)
				log.Fatal(err)
			}
		} else {
			nodes = perft.CountBulk(pos, d, bulk)
		}
		elapsed := time.Since(start)
		out.Printf("Depth: %d ply  Result: %d positions  Time: %d milliseconds\n", d, nodes, elapsed.Milliseconds())
		logger.Debugf("depth %d: %d nodes in %s", d, nodes, elapsed)
	}
}

func joinFEN(words []string) string {
	fen := ""
	for i, w := range words {
		if i > 0 {
			fen += " "
		}
		fen += w
	}
	return fen
}

func filterEntries(entries []perft.SplitEntry, only string) []perft.SplitEntry {
	if only == "" {
		return entries
	}
	filtered := make([]perft.SplitEntry, 0, 1)
	for _, e := range entries {
		if e.Move == only {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
