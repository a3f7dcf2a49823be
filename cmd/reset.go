package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restart the island map from day one",
	Long: `Restart the island map from day one. Stars, cards and the backpack are
kept. With --all the whole profile and completion log are erased instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		prompt := "This clears the island map; stars and cards are kept."
		if all {
			prompt = "This erases all progress, stars and cards."
		}
		if !yes && !confirm(os.Stdin, os.Stdout, prompt) {
			fmt.Println("Aborted.")
			return nil
		}

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		if all {
			if err := rt.game.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Progress erased. A new adventure starts next launch.")
			return nil
		}
		p, err := rt.game.ResetProgress(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Island map reset. %d stars and %d cards kept.\n", p.Stars, len(p.UnlockedAchievements))
		return nil
	},
}

// confirm asks for a typed "yes" on in.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s Type 'yes' to continue: ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

func init() {
	resetCmd.Flags().Bool("all", false, "Erase the whole profile, including stars and cards")
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
