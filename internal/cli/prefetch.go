package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rohmanhakim/rudolf/internal/puzzle"
	"github.com/spf13/cobra"
)

var (
	prefetchFrom int
	prefetchTo   int
)

var prefetchCmd = &cobra.Command{
	Use:   "prefetch <year>",
	Short: "Warm the cache for a range of days",
	Long: `Resolve every day in --from..--to of a year, one request at a time with the
politeness delay between requests. Days already cached are not downloaded again.
A failing day does not stop the others; the command fails if any day failed.`,
	Example: "  rudolf prefetch 2022\n  rudolf prefetch 2023 --from 1 --to 10",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseYear(args[0])
		if err != nil {
			return err
		}
		for _, day := range []int{prefetchFrom, prefetchTo} {
			if idErr := puzzle.NewIdentifier(year, day).Validate(); idErr != nil {
				return idErr
			}
		}
		if prefetchFrom > prefetchTo {
			return fmt.Errorf("--from %d is after --to %d", prefetchFrom, prefetchTo)
		}

		rt, err := newRuntime(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		report := rt.resolver.ResolveRange(cmd.Context(), year, prefetchFrom, prefetchTo, rt.recorder)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, outcome := range report.Outcomes() {
			if outcome.Err() != nil {
				fmt.Fprintf(w, "%s\tfailed\t%s\n", outcome.Identifier(), outcome.Err())
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", outcome.Identifier(), outcome.Source(), humanize.Bytes(uint64(outcome.Size())))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d cached, %d downloaded, %d failed in %s\n",
			report.FromCache(), report.FromRemote(), report.Failed(), report.Duration().Round(time.Millisecond))

		if report.Failed() > 0 {
			return fmt.Errorf("%d of %d days failed", report.Failed(), len(report.Outcomes()))
		}
		return nil
	},
}

func init() {
	prefetchCmd.Flags().IntVar(&prefetchFrom, "from", puzzle.FirstDay, "first day to fetch")
	prefetchCmd.Flags().IntVar(&prefetchTo, "to", puzzle.LastDay, "last day to fetch")
}

func resetPrefetchFlags() {
	prefetchFrom = puzzle.FirstDay
	prefetchTo = puzzle.LastDay
}
