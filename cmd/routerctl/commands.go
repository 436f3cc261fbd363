package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"intent-router/internal/model"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the reference index with the routes file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Router.Sync(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "synced with %s: added=%d removed=%d kept=%d (%s)\n",
			a.Encoder.Identity(), out.Added, out.Removed, out.Kept, out.Duration)
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <query...>",
	Short: "Classify one query per argument",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := openApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		intents, err := a.Router.ClassifyBatch(cmd.Context(), args)
		if err != nil {
			return err
		}
		for i, in := range intents {
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), args[i], in); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", in.ChosenRoute, formatScore(in.Score), args[i])
		}
		return nil
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the registered routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		for _, r := range a.Router.Routes() {
			threshold := "default"
			if r.Threshold != nil {
				threshold = formatScore(*r.Threshold)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d utterances\tthreshold=%s\n", r.Name, len(r.Utterances), threshold)
		}
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Answer a query through the full chat pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Chat.Reply(cmd.Context(), model.Scope{UserID: "cli", Channel: "cli"}, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s %s]\n%s\n", out.Intent.ChosenRoute, formatScore(out.Intent.Score), out.Answer)
		return nil
	},
}

var ingestFAQCmd = &cobra.Command{
	Use:   "ingest-faq <csv>",
	Short: "Embed a question,answer CSV into the FAQ collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		if a.FAQ == nil {
			return fmt.Errorf("FAQ store not configured: set qdrant.url")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		out, err := a.FAQ.Ingest(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "read=%d upserted=%d skipped=%d\n", out.Read, out.Upserted, out.Skipped)
		return nil
	},
}

var importCatalogCmd = &cobra.Command{
	Use:   "import-catalog <csv>",
	Short: "Load products from a CSV into the catalog database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		if a.Catalog == nil {
			return fmt.Errorf("catalog not configured: set catalog.db_path")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := a.Catalog.Import(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n", n)
		return nil
	},
}

func init() {
	classifyCmd.Flags().Bool("json", false, "print one JSON object per query")
}

func formatScore(s float64) string {
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return "-"
	}
	return fmt.Sprintf("%.4f", s)
}

// writeJSON prints the intent with candidate scores sorted by route name.
// Infinite scores are reported as null.
func writeJSON(w io.Writer, query string, in model.Intent) error {
	type candidate struct {
		Route string   `json:"route"`
		Score *float64 `json:"score"`
	}
	finite := func(v float64) *float64 {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil
		}
		return &v
	}

	candidates := make([]candidate, 0, len(in.CandidateScores))
	for route, score := range in.CandidateScores {
		candidates = append(candidates, candidate{Route: route, Score: finite(score)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Route < candidates[j].Route })

	return json.NewEncoder(w).Encode(struct {
		Query       string      `json:"query"`
		ChosenRoute string      `json:"chosen_route"`
		Score       *float64    `json:"score"`
		Candidates  []candidate `json:"candidates"`
	}{query, in.ChosenRoute, finite(in.Score), candidates})
}
