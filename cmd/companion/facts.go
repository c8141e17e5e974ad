package main

import (
	"fmt"
	"io"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/service/refresher"
	"github.com/I-am-Milind/backend-ai/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	factsLimit int
	factsStale bool
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Inspect the verified fact cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		var facts []core.FactEntry
		if factsStale {
			facts, err = a.facts.ListStale(ctx, factsLimit)
		} else {
			facts, err = a.facts.Recent(ctx, factsLimit)
		}
		if err != nil {
			return err
		}

		total, err := a.facts.Count(ctx)
		if err != nil {
			return err
		}

		printFacts(cmd.OutOrStdout(), facts, total)
		return nil
	},
}

var factsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-verify stale facts against live search once",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		r := refresher.NewRefresher(a.facts, a.search, a.probe, a.semantic, 0, factsLimit)
		n, err := r.RefreshOnce(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "refreshed %d fact(s)\n", n)
		return nil
	},
}

func printFacts(w io.Writer, facts []core.FactEntry, total int) {
	fmt.Fprintln(w, ui.TitleStyle.Render(fmt.Sprintf("FACTS (%d stored)", total)))
	if len(facts) == 0 {
		fmt.Fprintln(w, ui.DescStyle.Render("  nothing to show"))
		return
	}

	for _, f := range facts {
		fmt.Fprintf(w, "%s %s\n  %s\n",
			ui.UsageStyle.Render(f.Key),
			ui.DescStyle.Render(f.Updated.Format("2006-01-02")),
			f.Answer,
		)
		for _, src := range f.Sources {
			fmt.Fprintln(w, ui.DescStyle.Render("  ↳ "+src))
		}
	}
}

func init() {
	factsCmd.PersistentFlags().IntVarP(&factsLimit, "limit", "n", 10, "maximum number of facts")
	factsCmd.Flags().BoolVar(&factsStale, "stale", false, "only list facts past the freshness window")
	factsCmd.AddCommand(factsRefreshCmd)
	rootCmd.AddCommand(factsCmd)
}
