package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/game"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("history")

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		s, err := rt.game.Stats(cmd.Context())
		if err != nil {
			return err
		}
		printStats(s, limit)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("history", 10, "How many recent completions to list")
}

func printStats(s game.Stats, limit int) {
	fmt.Printf("Explorer:      %s\n", s.Name)
	fmt.Printf("Stars:         %d\n", s.Stars)
	fmt.Printf("Streak:        %d day(s)\n", s.Streak)
	fmt.Printf("Days finished: %d (next: day %d)\n", s.CompletedDays, s.NextDay)
	fmt.Printf("Accuracy:      %.0f%%\n", s.Accuracy()*100)
	fmt.Printf("Correct total: %d\n", s.TotalCorrect)
	fmt.Printf("Time played:   %dm%02ds\n", s.TotalTimeSeconds/60, s.TotalTimeSeconds%60)
	fmt.Printf("Perfect run:   %d\n", s.PerfectRun)
	fmt.Printf("Review queue:  %d due, %d pending\n", s.DueForReview, s.Pending)
	fmt.Printf("Collection:    %d card(s), %d sticker(s), %d coupon(s)\n", len(s.Cards), s.Stickers, len(s.Coupons))

	if s.Today.LevelsCompleted > 0 {
		fmt.Printf("Today:         %d level(s), %d mistake(s), %ds\n",
			s.Today.LevelsCompleted, s.Today.Mistakes, s.Today.TimeSpentSeconds)
	}

	if s.MistakesByCat.Total() > 0 {
		fmt.Println()
		fmt.Println("Mistakes by category")
		for _, c := range bank.Categories() {
			if n := s.MistakesByCat.Get(c); n > 0 {
				fmt.Printf("  %-12s %d\n", c.DisplayName(), n)
			}
		}
	}

	if len(s.History) == 0 || limit == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%-19s  %-4s  %-6s  %-7s  %-8s  %s\n", "Finished", "Day", "Stars", "Correct", "Mistakes", "Time")
	fmt.Println(strings.Repeat("─", 60))
	history := s.History
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	for i := len(history) - 1; i >= 0; i-- {
		ev := history[i]
		fmt.Printf("%-19s  %-4d  %-6d  %d/%-5d  %-8d  %ds\n",
			ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
			ev.Day, ev.Points, ev.Correct, ev.Questions, ev.Mistakes, ev.Seconds)
	}
}
