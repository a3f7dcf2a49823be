package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/game"
	"github.com/abhisek/questisland/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Back up or restore the explorer profile",
}

var profileExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the profile as a JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		if out == "" {
			return exportProfile(cmd.Context(), rt.game, os.Stdout)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		if err := exportProfile(cmd.Context(), rt.game, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Backup written to %s\n", out)
		return nil
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the profile with a JSON backup",
	Long: `Replace the profile with a JSON backup written by "profile export".
Older backup formats are upgraded. Files that cannot be read as a profile
are rejected and the current profile is left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		defer f.Close()

		if !yes && !confirm(os.Stdin, os.Stdout, "This replaces the current stars, cards and progress.") {
			fmt.Println("Aborted.")
			return nil
		}

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		p, err := importProfile(cmd.Context(), rt.game, f)
		if err != nil {
			return err
		}
		fmt.Printf("Restored %s: %d stars, %d levels done.\n", displayName(p), p.Stars, p.CompletedCount())
		return nil
	},
}

func exportProfile(ctx context.Context, svc *game.Service, w io.Writer) error {
	data, err := svc.Export(ctx)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

func importProfile(ctx context.Context, svc *game.Service, r io.Reader) (*profile.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return svc.Import(ctx, data)
}

func displayName(p *profile.Profile) string {
	if p.Name == "" {
		return "explorer"
	}
	return p.Name
}

func init() {
	profileExportCmd.Flags().String("out", "", "Write to a file instead of stdout")
	profileImportCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileImportCmd)
}
