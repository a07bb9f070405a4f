package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

var inputCmd = &cobra.Command{
	Use:   "input <year> <day>",
	Short: "Print the puzzle input for a year and day",
	Long: `Print the puzzle input for a year and day to stdout, byte for byte.

The input is read from the cache when present. Otherwise it is downloaded once
and cached; a failure to cache is logged but the input is still printed.`,
	Example: "  rudolf input 2023 1 > day01.txt",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0], args[1])
		if err != nil {
			return err
		}

		rt, err := newRuntime(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		resolution, resolveErr := rt.resolver.Resolve(cmd.Context(), id)
		if resolveErr != nil {
			return resolveErr
		}
		if writeErr := resolution.CacheWriteError(); writeErr != nil {
			rt.logger.Warn().
				Str("puzzle", id.String()).
				Err(writeErr).
				Msg("input fetched but not cached")
		}

		_, err = io.WriteString(cmd.OutOrStdout(), resolution.Text())
		return err
	},
}
