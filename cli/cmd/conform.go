package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TheRakeshPurohit/parse5/htmltest"
	"github.com/TheRakeshPurohit/parse5/testdata"
)

// conformCmd runs the fixture corpus through the tokenizer (optionally
// fed one codepoint per chunk via the persistent --chunked flag, to exercise
// the streaming chunk-boundary path) and reports mismatches.
var conformCmd = &cobra.Command{
	Use:   "conform",
	Short: "Run the fixture corpus through the tokenizer and report mismatches",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logrus.StandardLogger()
		if silent {
			log.SetLevel(logrus.ErrorLevel)
		}
		run := htmltest.NewRun(log)

		var failures int
		for _, f := range testdata.Fixtures {
			got := run.Tokenize(f, chunked)
			if diff := htmltest.Diff(f, got); diff != "" {
				failures++
				fmt.Println(diff)
			}
		}

		fmt.Printf("%d/%d fixtures passed\n", len(testdata.Fixtures)-failures, len(testdata.Fixtures))
		if failures > 0 {
			return fmt.Errorf("%d fixture(s) failed", failures)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(conformCmd)
}
