package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questisland/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

// filterLLMEvents keeps events matching purpose (empty keeps all) and then
// the newest limit of them (0 keeps all).
func filterLLMEvents(events []store.LLMRequestEvent, purpose string, limit int) []store.LLMRequestEvent {
	var out []store.LLMRequestEvent
	for _, e := range events {
		if purpose == "" || e.Purpose == purpose {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		events, err := rt.store.EventRepo().ListLLMRequests(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return err
		}
		events = filterLLMEvents(events, purpose, limit)
		if len(events) == 0 {
			fmt.Println("No LLM requests found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-20s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 106))

		for i := len(events) - 1; i >= 0; i-- {
			e := events[i]
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-5d  %-19s  %-20s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

type llmUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
}

func aggregateLLMUsage(events []store.LLMRequestEvent) []llmUsage {
	byPurpose := map[string]*llmUsage{}
	for _, e := range events {
		u, ok := byPurpose[e.Purpose]
		if !ok {
			u = &llmUsage{Purpose: e.Purpose}
			byPurpose[e.Purpose] = u
		}
		u.Calls++
		if !e.Success {
			u.Failures++
		}
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
		u.LatencyMs += int64(e.LatencyMs)
	}
	out := make([]llmUsage, 0, len(byPurpose))
	for _, u := range byPurpose {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Purpose < out[j].Purpose })
	return out
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		events, err := rt.store.EventRepo().ListLLMRequests(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return err
		}
		stats := aggregateLLMUsage(events)
		if len(stats) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println("Usage by Purpose")
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%-20s  %6s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 80))

		var total llmUsage
		for _, st := range stats {
			fmt.Printf("%-20s  %6d  %6d  %10d  %10d  %10d  %8d\n",
				st.Purpose, st.Calls, st.Failures, st.InputTokens, st.OutputTokens,
				st.InputTokens+st.OutputTokens, st.LatencyMs/int64(st.Calls))
			total.Calls += st.Calls
			total.Failures += st.Failures
			total.InputTokens += st.InputTokens
			total.OutputTokens += st.OutputTokens
		}
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%-20s  %6d  %6d  %10d  %10d  %10d\n",
			"TOTAL", total.Calls, total.Failures, total.InputTokens, total.OutputTokens,
			total.InputTokens+total.OutputTokens)
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose (e.g. question-authoring)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
