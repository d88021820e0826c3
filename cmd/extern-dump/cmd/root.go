// Package cmd implements the extern-dump command-line tool, a structural
// inspector for streams of bean records. It needs no generated or
// registered Go types: every field it prints comes from the wire tag
// byte alone, the same mechanism a decoder uses to skip a field its
// descriptor.Descriptor doesn't recognize.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "extern-dump",
	Short: "Inspect a stream of extern-encoded records",
	Long: `extern-dump reads one or more concatenated bean records from a file
or stdin and prints each field's index, wire tag, and payload size.

It never needs the record's concrete Go type: the wire format is
self-describing enough to walk structurally, field by field.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
