package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change parent settings",
}

var settingsShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"export"},
	Short:   "Print the current settings as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		p, err := rt.game.LoadProfile(cmd.Context())
		if err != nil {
			return err
		}
		data, err := settings.MarshalYAML(p.ParentSettings)
		if err != nil {
			return err
		}
		if out == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(out, data, 0o644)
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Apply a YAML settings file over the current settings",
	Long: `Apply a YAML settings file. Fields the file leaves out keep their
current values; question_counts may list only some categories.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read settings: %w", err)
		}

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
		ps, err := settings.UnmarshalYAML(data, p.ParentSettings)
		if err != nil {
			return err
		}
		if _, err := rt.game.UpdateSettings(ctx, p, ps); err != nil {
			return err
		}
		fmt.Printf("Settings updated: %d questions per day.\n", ps.QuestionCounts.Total())
		return nil
	},
}

func init() {
	settingsShowCmd.Flags().String("out", "", "Write to a file instead of stdout")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsImportCmd)
}
