package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSimMoves    int
	flagSimStrategy string
	flagSimJSON     bool
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim [board]",
	Short: "Autoplay a seeded game and print the result",
	Long: `Play a game without a terminal using a simple strategy.
The same --seed always produces the same game.

Strategies:
  greedy - take the move with the biggest score gain, then the emptiest board
  corner - prefer down, then left, then right, then up

Examples:
  t2048 sim --seed 42
  t2048 sim 2048_5x5 --strategy corner --json
  t2048 sim --seed 7 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 100000, "Maximum number of moves")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", "greedy", "Move strategy: greedy, corner")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the result as JSON")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the result in the scores database")
}

// simResult is the outcome of an autoplayed game.
type simResult struct {
	Game    string      `json:"game"`
	Seed    int64       `json:"seed"`
	Score   int         `json:"score"`
	Moves   int         `json:"moves"`
	MaxTile int         `json:"max_tile"`
	Won     bool        `json:"won"`
	State   t2048.State `json:"state"`
	Board   [][]int     `json:"board"`
}

// strategy picks the next direction for a board. ok is false when no move changes it.
type strategy func(g t2048.Grid) (dir t2048.Direction, ok bool)

var strategies = map[string]strategy{
	"greedy": greedyMove,
	"corner": cornerMove,
}

func greedyMove(g t2048.Grid) (t2048.Direction, bool) {
	best, bestDelta, bestEmpty, found := t2048.DirUp, -1, -1, false
	for _, d := range t2048.Directions {
		res, err := t2048.ResolveMove(g, d)
		if err != nil || !res.Moved {
			continue
		}
		empty := len(res.Grid.EmptyPositions())
		if res.ScoreDelta > bestDelta || (res.ScoreDelta == bestDelta && empty > bestEmpty) {
			best, bestDelta, bestEmpty, found = d, res.ScoreDelta, empty, true
		}
	}
	return best, found
}

func cornerMove(g t2048.Grid) (t2048.Direction, bool) {
	for _, d := range []t2048.Direction{t2048.DirDown, t2048.DirLeft, t2048.DirRight, t2048.DirUp} {
		if res, err := t2048.ResolveMove(g, d); err == nil && res.Moved {
			return d, true
		}
	}
	return t2048.DirUp, false
}

// simulate plays gameID with seed until the game is over or maxMoves is reached.
// Reaching the win tile never stops the run.
func simulate(gameID string, seed int64, maxMoves int, pick strategy) (simResult, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return simResult{}, err
	}
	g, ok := game.(*t2048.Game)
	if !ok {
		return simResult{}, fmt.Errorf("board %q cannot be simulated", gameID)
	}

	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	s := g.Session()

	for s.Moves() < maxMoves {
		if s.State() == t2048.StateWonPending {
			s.ContinueAfterWin()
		}
		if s.State() == t2048.StateOver {
			break
		}
		dir, ok := pick(s.Grid())
		if !ok {
			break
		}
		if _, err := s.Move(dir); err != nil {
			return simResult{}, err
		}
	}

	return simResult{
		Game:    gameID,
		Seed:    seed,
		Score:   s.Score(),
		Moves:   s.Moves(),
		MaxTile: s.Grid().MaxTile(),
		Won:     s.Won(),
		State:   s.State(),
		Board:   s.Grid().Values(),
	}, nil
}

func runSim(_ *cobra.Command, args []string) error {
	gameID := "2048"
	if len(args) == 1 {
		gameID = args[0]
	}
	pick, ok := strategies[flagSimStrategy]
	if !ok {
		return fmt.Errorf("unknown strategy %q (want greedy or corner)", flagSimStrategy)
	}

	result, err := simulate(gameID, flagSeed, flagSimMoves, pick)
	if err != nil {
		return err
	}

	if flagSimSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.SaveResult(storage.Result{
			GameID:  result.Game,
			Score:   result.Score,
			MaxTile: result.MaxTile,
			Moves:   result.Moves,
			Won:     result.Won,
		}); err != nil {
			return err
		}
	}

	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printSimResult(os.Stdout, result)
	return nil
}

func printSimResult(w io.Writer, r simResult) {
	fmt.Fprintf(w, "%s  seed %d\n\n", r.Game, r.Seed)
	for _, row := range r.Board {
		for _, v := range row {
			if v == 0 {
				fmt.Fprintf(w, "%6s", ".")
			} else {
				fmt.Fprintf(w, "%6d", v)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nScore: %d  Moves: %d  Max tile: %d  Won: %v  State: %s\n",
		r.Score, r.Moves, r.MaxTile, r.Won, r.State)
}
