// simon-says-scores prints best scores without starting the game.
//
// Usage:
//
//	./simon-says-scores                    # local bests from the data directory
//	./simon-says-scores --db simon.db      # server leaderboard, one table per difficulty
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"simon-says/internal/config"
	"simon-says/internal/score"
	"simon-says/internal/simon"
)

var (
	border = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	header = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	cell   = lipgloss.NewStyle().Padding(0, 1)
	title  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("error: %v", err)
	}
	dbPath := flag.String("db", "", "Print the server leaderboard from this SQLite database")
	limit := flag.Int("limit", 10, "Rows per difficulty with --db")
	flag.Parse()

	if err := run(os.Stdout, cfg, *dbPath, *limit); err != nil {
		config.Exitf("error: %v", err)
	}
}

func run(w io.Writer, cfg config.Config, dbPath string, limit int) error {
	if dbPath != "" {
		db, err := score.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		return printLeaderboard(w, db, limit)
	}

	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	keeper := score.NewKeeper(score.NewFileStore(filepath.Join(dir, score.FileName)), score.SystemClock, logger)
	fmt.Fprintln(w, renderBests(keeper))
	return nil
}

// renderBests draws one row per difficulty.
func renderBests(k *score.Keeper) string {
	rows := make([][]string, 0, len(simon.Difficulties))
	for _, d := range simon.Difficulties {
		b := k.Best(d)
		rows = append(rows, []string{
			d.String(),
			strconv.Itoa(b.Today),
			strconv.Itoa(b.Week),
			strconv.Itoa(b.AllTime),
			strconv.Itoa(b.Recorded),
		})
	}
	return newTable("Difficulty", "Today", "Week", "All-time", "Games").Rows(rows...).Render()
}

func printLeaderboard(w io.Writer, db *score.SQLiteDB, limit int) error {
	for _, d := range simon.Difficulties {
		top, err := db.Top(context.Background(), d, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, title.Render(d.String()))
		fmt.Fprintln(w, renderTop(top))
	}
	return nil
}

// renderTop draws a ranked leaderboard.
func renderTop(top []score.Ranked) string {
	t := newTable("#", "Player", "Score", "Date")
	if len(top) == 0 {
		return t.Row("-", "no games yet", "", "").Render()
	}
	for i, r := range top {
		t.Row(strconv.Itoa(i+1), r.Player, strconv.Itoa(r.Score), r.Date)
	}
	return t.Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return cell
		})
}
