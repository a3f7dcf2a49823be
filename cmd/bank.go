package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/authoring"
	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/config"
	"github.com/abhisek/questisland/internal/llm"
	"github.com/abhisek/questisland/internal/logging"
	"github.com/abhisek/questisland/internal/store"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect, validate and extend the question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "Summarise the loaded question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		envFiles, _ := cmd.Flags().GetStringSlice("env-file")
		cfg, err := config.Load(envFiles...)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		b, err := loadBank(cfg.BankDir)
		if err != nil {
			return err
		}

		if category != "" {
			c := bank.Category(category)
			if !c.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}
			for _, q := range b.ByCategory(c) {
				fmt.Printf("%-16s  %-18s  d%d  %s\n", q.ID, q.Type, q.EffectiveDifficulty(), q.Text)
			}
			return nil
		}

		fmt.Printf("%-12s  %5s  %s\n", "Category", "Count", "By difficulty (1..5)")
		fmt.Println(strings.Repeat("─", 50))
		for _, c := range bank.Categories() {
			qs := b.ByCategory(c)
			var tiers [bank.MaxDifficulty + 1]int
			for _, q := range qs {
				tiers[q.EffectiveDifficulty()]++
			}
			fmt.Printf("%-12s  %5d  %v\n", c.DisplayName(), len(qs), tiers[bank.MinDifficulty:])
		}
		fmt.Printf("%-12s  %5d\n", "Total", b.Len())
		return nil
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file-or-dir>",
	Short: "Check bank files against the schema and the embedded bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, err := readBankPath(args[0])
		if err != nil {
			return err
		}
		base, err := bank.Default()
		if err != nil {
			return err
		}
		if _, err := base.Merge(extra.All()); err != nil {
			return fmt.Errorf("merge with embedded bank: %w", err)
		}
		counts := extra.Counts()
		fmt.Printf("OK: %d questions (basic %d, application %d, logic %d, sentence %d, word %d)\n",
			extra.Len(), counts.Basic, counts.Application, counts.Logic, counts.Sentence, counts.Word)
		return nil
	},
}

func readBankPath(p string) (*bank.Bank, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return bank.LoadDir(p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	f, err := bank.Parse(filepath.Base(p), data)
	if err != nil {
		return nil, err
	}
	return bank.New(f.Questions)
}

var bankAuthorCmd = &cobra.Command{
	Use:   "author",
	Short: "Draft new questions with an LLM and write them as a bank file",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		qtype, _ := cmd.Flags().GetString("type")
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		topic, _ := cmd.Flags().GetString("topic")
		subject, _ := cmd.Flags().GetString("subject")
		out, _ := cmd.Flags().GetString("out")

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, rt.cfg.LLM, rt.store.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		author := authoring.New(provider, rt.bank, authoring.DefaultConfig())
		res, err := author.Generate(ctx, authoring.Request{
			Category:   bank.Category(category),
			Type:       bank.QuestionType(qtype),
			Difficulty: difficulty,
			Count:      count,
			Topic:      topic,
		})
		if err != nil {
			return err
		}

		log := logging.FromContext(ctx)
		for _, r := range res.Rejected {
			log.Debug().Str("text", r.Text).Str("reason", r.Reason).Msg("draft rejected")
		}
		fmt.Fprintf(os.Stderr, "%d accepted, %d rejected\n", len(res.Questions), len(res.Rejected))
		if len(res.Questions) == 0 {
			return fmt.Errorf("no usable questions drafted")
		}

		data, err := res.Encode(subject)
		if err != nil {
			return err
		}
		if out == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := store.EnsureDir(out); err != nil {
			return err
		}
		return os.WriteFile(out, data, 0o644)
	},
}

var bankSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema for bank files",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bank.FileSchema)
	},
}

func init() {
	bankListCmd.Flags().String("category", "", "List the questions of one category")

	bankAuthorCmd.Flags().String("category", string(bank.CategoryWord), "Category to draft for")
	bankAuthorCmd.Flags().String("type", "", "Question type (default: any)")
	bankAuthorCmd.Flags().Int("difficulty", 0, "Target difficulty 1..5 (default: any)")
	bankAuthorCmd.Flags().Int("count", 5, "How many questions to draft")
	bankAuthorCmd.Flags().String("topic", "", "Optional theme for the questions")
	bankAuthorCmd.Flags().String("subject", "authored", "Subject written into the bank file")
	bankAuthorCmd.Flags().String("out", "", "Write the bank file here instead of stdout")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankAuthorCmd)
	bankCmd.AddCommand(bankSchemaCmd)
}
