package cmd

import (
	"fmt"

	"github.com/abhisek/questisland/internal/app"
	"github.com/spf13/cobra"
)

// runApp opens the store, records today's login, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer rt.close()

	p, err := rt.game.Login(cmd.Context())
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return app.Run(app.Options{Game: rt.game, Profile: p})
}
