package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/ledger"
	"github.com/abhisek/questisland/internal/play"
)

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Record a lesson played away from the terminal",
	Long: `Record a lesson as finished. Questions named by --wrong count as one
mistake each and go into the review queue; --skipped questions are not
queued.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetInt("day")
		wrong, _ := cmd.Flags().GetStringSlice("wrong")
		skipped, _ := cmd.Flags().GetStringSlice("skipped")
		seconds, _ := cmd.Flags().GetInt("seconds")

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		ctx := cmd.Context()
		p, err := rt.game.LoadProfile(ctx)
		if err != nil {
			return err
		}
		if day == 0 {
			day = p.NextDay()
		}
		l, err := rt.game.Lesson(p, day)
		if err != nil {
			return fmt.Errorf("build lesson: %w", err)
		}
		c, err := play.Record(l, wrong, skipped, seconds)
		if err != nil {
			return err
		}
		_, out, err := rt.game.Complete(ctx, p, c)
		if err != nil {
			return err
		}
		printOutcome(day, out)
		return nil
	},
}

func init() {
	completeCmd.Flags().Int("day", 0, "Day number (default: next unfinished day)")
	completeCmd.Flags().StringSlice("wrong", nil, "IDs of questions answered wrong")
	completeCmd.Flags().StringSlice("skipped", nil, "IDs of questions skipped")
	completeCmd.Flags().Int("seconds", 0, "Time spent on the lesson")
}

func printOutcome(day int, out ledger.Outcome) {
	headline := "Day complete!"
	if out.Perfect {
		headline = "Perfect day!"
	}
	fmt.Printf("Day %d: %s\n", day, headline)
	fmt.Printf("  ★ +%d stars   %d correct   %d days finished\n", out.StarsEarned, out.Correct, out.CompletedCount)
	if out.Reward != nil {
		fmt.Printf("  Chest: %s %s (%s)\n", out.Reward.Icon, out.Reward.Name, out.Reward.Type)
	}
	for _, c := range out.NewCards {
		fmt.Printf("  New card: %s %s\n", c.Icon, c.Title)
	}
	if n := len(out.DueForReview); n > 0 {
		fmt.Printf("  %d question(s) waiting for review\n", n)
	}
}
