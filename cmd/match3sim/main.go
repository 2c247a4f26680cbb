package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/match3-server/internal/match3"
)

var log = logrus.New()

type options struct {
	seed    uint64
	params  match3.GameParams
	turns   int
	verbose bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("match3sim", flag.ContinueOnError)
	fs.Uint64Var(&opts.seed, "seed", 1, "random seed")
	fs.IntVar(&opts.params.Level, "level", 1, "level to play")
	fs.IntVar(&opts.params.GemTypes, "gems", 0, "gem types on level 1, 0 for the default")
	fs.IntVar(&opts.params.Width, "width", match3.DefaultWidth, "board width")
	fs.IntVar(&opts.params.Height, "height", match3.DefaultHeight, "board height")
	fs.IntVar(&opts.turns, "turns", 0, "stop after this many turns, 0 to play the level out")
	fs.BoolVar(&opts.verbose, "v", false, "print the board after every turn")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, opts.params.Validate()
}

// simulate plays the first hinted move each turn until the level ends, the
// turn limit is hit or no move is left. It returns the number of turns played.
func simulate(game *match3.GameState, opts options, out func(string)) (int, error) {
	turns := 0
	for !game.Over() && (opts.turns == 0 || turns < opts.turns) {
		move, ok := game.Hint()
		if !ok {
			break
		}
		sr, err := game.Swap(move.From, move.To)
		if err != nil {
			return turns, err
		}
		turns++

		log.WithFields(logrus.Fields{
			"turn":   turns,
			"from":   move.From,
			"to":     move.To,
			"combo":  sr.Combo,
			"passes": len(sr.Passes),
			"gained": sr.Score,
			"score":  game.Score,
		}).Debug("turn played")

		if opts.verbose {
			out(fmt.Sprintf("turn %d: %s <-> %s, +%d (chain %d)", turns, move.From, move.To, sr.Score, sr.Result.Combo))
			out(renderBoard(game.Board))
		}
	}
	return turns, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	match3.Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	game, err := match3.NewGame(&opts.params, rand.New(rand.NewPCG(opts.seed, opts.seed)))
	if err != nil {
		log.Fatal("unable to start game: ", err)
	}

	emit := func(s string) { fmt.Println(s) }
	emit(renderBoard(game.Board))

	turns, err := simulate(game, opts, emit)
	if err != nil {
		log.Fatal("simulation failed: ", err)
	}
	emit(renderSummary(game, turns))
}
