package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dba-c24/extern/codec"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print the field structure of every record in a stream",
	Long: `Dump reads records back to back until EOF, printing each one's
field count followed by a line per field: its stable index, its wire
tag name, and the number of bytes its payload occupied.

With no file argument, dump reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("extern-dump: %w", err)
			}
			defer f.Close()
			r = f
		}

		c := codec.New()
		out := cmd.OutOrStdout()

		for i := 0; ; i++ {
			if err := c.Introspect(r, out); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return fmt.Errorf("extern-dump: record %d: %w", i, err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
