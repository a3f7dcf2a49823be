package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/achievements"
	"github.com/abhisek/questisland/internal/rewards"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List honor cards and chest coupons",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		p, err := rt.game.LoadProfile(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Honor cards (%d/%d)\n", len(p.UnlockedAchievements), len(achievements.All()))
		for _, c := range achievements.All() {
			owned := slices.Contains(p.UnlockedAchievements, c.ID)
			switch {
			case owned:
				fmt.Printf("  %s %-24s %s\n", c.Icon, c.Title, c.Description)
			case all:
				fmt.Printf("  🔒 %-24s %s\n", c.Title, c.Condition)
			}
		}

		fmt.Println()
		fmt.Println("Coupons")
		var n int
		for _, it := range p.Inventory {
			if it.Type != rewards.ItemCustomCoupon {
				continue
			}
			n++
			state := "ready"
			if it.Redeemed {
				state = "used"
			}
			fmt.Printf("  %s %-32s %-5s %s  %s\n", it.Icon, it.Name, state, it.ObtainedAt.Local().Format("2006-01-02"), it.ID)
		}
		if n == 0 {
			fmt.Println("  none yet")
		}
		return nil
	},
}

func init() {
	cardsCmd.Flags().Bool("all", false, "Include locked cards with their unlock condition")
}

var cardsRedeemCmd = &cobra.Command{
	Use:   "redeem <coupon-id>",
	Short: "Mark a chest coupon as used",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if _, err := rt.game.Redeem(ctx, p, args[0]); err != nil {
			return err
		}
		fmt.Println("Coupon redeemed.")
		return nil
	},
}

func init() {
	cardsCmd.AddCommand(cardsRedeemCmd)
}
