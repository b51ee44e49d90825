package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show high scores for a board",
	Long: `Display the top high scores for the specified board.

Examples:
  t2048 scores 2048
  t2048 scores 2048_5x5 --limit 20
  t2048 scores 2048 --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the board")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show (0 for all)")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w\nRun 't2048 list' to see available boards", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", title)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagLimit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println(headingStyle.Render("High Scores - " + title))
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println(hintStyle.Render(fmt.Sprintf("Play 't2048 play %s' to set the first high score!", gameID)))
		return nil
	}

	rows := make([][]string, len(scores))
	for i, e := range scores {
		won := ""
		if e.Won {
			won = "yes"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.MaxTile),
			strconv.Itoa(e.Moves),
			won,
			e.CreatedAt.Format("2006-01-02 15:04"),
		}
	}
	printTable([]string{"Rank", "Score", "Max Tile", "Moves", "Won", "Date"}, rows)

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}
	fmt.Println(hintStyle.Render(fmt.Sprintf("Games: %d  Best: %d  Average: %.0f  Max tile: %d  Wins: %d",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.MaxTile, stats.Wins)))
	return nil
}
