package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every board variant with its size and, once played, its game count and best score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	boards := registry.List()
	if len(boards) == 0 {
		fmt.Println("No boards available.")
		return
	}

	// A missing database just leaves the stats columns blank.
	stats := map[string]*storage.GameStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			stats = all
		}
		store.Close()
	}

	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		size := "config"
		if v, ok := t2048.VariantByID(b.ID); ok && v.Size > 0 {
			size = fmt.Sprintf("%dx%d", v.Size, v.Size)
		}
		played, best := "-", "-"
		if st, ok := stats[b.ID]; ok {
			played, best = strconv.Itoa(st.GamesCount), strconv.Itoa(st.HighScore)
		}
		rows = append(rows, []string{b.ID, b.Title, size, played, best})
	}

	fmt.Println(headingStyle.Render("Available boards"))
	printTable([]string{"ID", "Title", "Size", "Games", "Best"}, rows)
	fmt.Println(hintStyle.Render("Run 't2048 play <id>' to play a board."))
}
