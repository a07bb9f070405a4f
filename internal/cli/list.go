package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rohmanhakim/rudolf/internal/storage"
	"github.com/rohmanhakim/rudolf/pkg/hashutil"
	"github.com/rohmanhakim/rudolf/pkg/textutil"
	"github.com/spf13/cobra"
)

var listYear int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached inputs",
	Long:  `List the inputs in the cache file with their size and a short BLAKE3 digest.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		store, openErr := storage.Open(cmd.Context(), rt.cfg.DBPath(), rt.recorder)
		if openErr != nil {
			return openErr
		}
		defer store.Close()

		records, listErr := store.List(cmd.Context(), listYear)
		if listErr != nil {
			return listErr
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "YEAR\tDAY\tSIZE\tLINES\tDIGEST")
		for _, record := range records {
			fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\n",
				record.Identifier().Year(),
				record.Identifier().Day(),
				humanize.Bytes(uint64(record.Size())),
				lineCount(record.Text()),
				hashutil.ShortDigest(record.Text()),
			)
		}
		return w.Flush()
	},
}

func lineCount(text string) int {
	return len(textutil.Lines(text))
}

func init() {
	listCmd.Flags().IntVar(&listYear, "year", 0, "only list this year (0 for every year)")
}

func resetListFlags() {
	listYear = 0
}
