package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/lesson"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Print the lesson for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetInt("day")
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		p, err := rt.game.LoadProfile(cmd.Context())
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

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(l)
		}
		printLesson(l)
		return nil
	},
}

func init() {
	lessonCmd.Flags().Int("day", 0, "Day number (default: next unfinished day)")
	lessonCmd.Flags().Bool("json", false, "Print the lesson as JSON")
}

func printLesson(l *lesson.Lesson) {
	fmt.Printf("%s Day %d: %s\n", l.Icon, l.Day, l.Title)
	fmt.Printf("%s\n", l.Story)
	fmt.Printf("Reward: %d stars   Difficulty: %d\n", l.Points, l.DifficultyLevel)
	fmt.Println(strings.Repeat("─", 60))

	review := map[string]bool{}
	for _, id := range l.ReviewIDs {
		review[id] = true
	}
	for i, q := range l.Questions {
		mark := ""
		if review[q.ID] {
			mark = " ↺"
		}
		fmt.Printf("%2d. [%s/%s] %s%s\n", i+1, q.Category, q.Type, q.Text, mark)
		if q.Type == bank.TypeMultipleChoice || q.Type == bank.TypeFillInBlank {
			for j, o := range q.Options {
				fmt.Printf("      %c) %s\n", 'a'+j, o)
			}
		}
		fmt.Printf("      id: %s\n", q.ID)
	}
}
