package cmd

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "parse5",
		Short:        "parse5",
		SilenceUsage: true,
		Long:         `Streaming HTML5 preprocessor, tokenizer, and scriptable driver.`,
	}

	directory string
	chunked   bool
	silent    bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "directory to load parse5.yaml/fixtures from")
	rootCmd.PersistentFlags().BoolVar(&chunked, "chunked", false, "feed input one codepoint per chunk, to exercise the streaming chunk-boundary path")
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "run with parse-error reporting disabled")
	return rootCmd.Execute()
}

func init() {
}
