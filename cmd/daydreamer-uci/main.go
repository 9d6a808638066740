package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/herohde/daydreamer/pkg/engine"
	"github.com/herohde/daydreamer/pkg/engine/console"
	"github.com/herohde/daydreamer/pkg/engine/uci"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/seekerror/logw"
	"os"
)

var (
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (zero disables it)")
	depth = flag.Uint("depth", 0, "Fixed search depth (zero means use time control)")
	noise = flag.Uint("noise", 10, "Evaluation noise in millipawns (zero if deterministic)")
	book  = flag.String("book", "", "Opening book file (plain text, one line of moves per opening)")
)

const (
	materialTableBytes = 1 << 22
	pawnTableBytes     = 1 << 20
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: daydreamer-uci [options]

Daydreamer is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	full := eval.NewFullEvaluator(materialTableBytes, pawnTableBytes)
	s := search.AlphaBeta{
		Explore: search.FullExploration,
		Eval: search.Quiescence{
			Explore: search.QuiescenceExploration,
			Eval:    search.StaticEval{Eval: full},
		},
		Static: full,
	}
	e := engine.New(ctx, "daydreamer", "herohde", s, engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
		Noise: *noise,
	}))

	var uciOpts []uci.Option
	if *book != "" {
		b, err := engine.ReadBookFile(*book)
		if err != nil {
			logw.Warningf(ctx, "Book unavailable at %v: %v; continuing without", *book, err)
		} else {
			uciOpts = append(uciOpts, uci.UseBook(b, 0))
		}
	}

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		driver, out := uci.NewDriver(ctx, e, in, uciOpts...)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
