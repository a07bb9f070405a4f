package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rohmanhakim/rudolf/pkg/textutil"
	"github.com/spf13/cobra"
)

var (
	splitDelims   string
	splitQuote    bool
	splitEachLine bool
)

var splitCmd = &cobra.Command{
	Use:   "split [text]",
	Short: "Split text on delimiter characters",
	Long: `Split text on any of the --delims characters and print one piece per line.
Consecutive delimiters produce empty pieces. Without an argument the text is
read from stdin and one trailing newline is dropped.

With --each-line every input line is split on its own and its pieces are
printed on one line separated by tabs.`,
	Example: "  rudolf split 'a,,b' --quote\n  rudolf input 2023 2 | rudolf split --delims ':;,' --each-line",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = strings.TrimSuffix(string(raw), "\n")
		}

		out := cmd.OutOrStdout()
		if splitEachLine {
			for _, line := range textutil.Lines(text) {
				fmt.Fprintln(out, strings.Join(render(textutil.Split(line, splitDelims)), "\t"))
			}
			return nil
		}
		for _, piece := range render(textutil.Split(text, splitDelims)) {
			fmt.Fprintln(out, piece)
		}
		return nil
	},
}

func render(pieces []string) []string {
	if !splitQuote {
		return pieces
	}
	quoted := make([]string, len(pieces))
	for i, piece := range pieces {
		quoted[i] = strconv.Quote(piece)
	}
	return quoted
}

func init() {
	splitCmd.Flags().StringVar(&splitDelims, "delims", ",", "delimiter characters, any of which ends a piece")
	splitCmd.Flags().BoolVar(&splitQuote, "quote", false, "print pieces as quoted Go strings so empty pieces are visible")
	splitCmd.Flags().BoolVar(&splitEachLine, "each-line", false, "split every line separately")
}

func resetSplitFlags() {
	splitDelims = ","
	splitQuote = false
	splitEachLine = false
}
