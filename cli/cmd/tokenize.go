package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/TheRakeshPurohit/parse5/preprocessor"
	"github.com/TheRakeshPurohit/parse5/tokenizer"
)

// tokenizeCmd reads a file (or stdin) and prints the resulting token
// stream as YAML, one document per token — mirrors the teacher's
// hash.go in being a small, single-purpose subcommand built directly
// on a library call rather than its own business logic.
var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a file (or stdin) and print the token stream as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			_ = cmd.Help()
			return errors.New("too many arguments")
		}

		var src io.Reader = os.Stdin
		name := "<stdin>"
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
			name = args[0]
		}

		content, err := io.ReadAll(src)
		if err != nil {
			return err
		}

		sink := &tokenizer.CollectingSink{}
		var onErr func(tokenizer.ParserError)
		if !silent {
			onErr = func(e tokenizer.ParserError) {
				fmt.Fprintf(os.Stderr, "%s: %s\n", name, e.Error())
			}
		}

		pre := preprocessor.New(preprocessor.FileRef(name))
		tok := tokenizer.New(pre, tokenizer.Options{Sink: sink, OnParseError: onErr})
		tokenizeContent(tok, string(content), chunked)

		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		for _, t := range sink.Tokens {
			if err := enc.Encode(t); err != nil {
				return err
			}
		}
		return nil
	},
}

// tokenizeContent feeds content through tok, either as one chunk or
// split one codepoint per Write call, draining the run loop to true
// EOF in either case.
func tokenizeContent(tok *tokenizer.Tokenizer, content string, chunked bool) {
	chunks := []string{content}
	if chunked {
		chunks = nil
		for _, r := range content {
			chunks = append(chunks, string(r))
		}
		if chunks == nil {
			chunks = []string{""}
		}
	}

	for i, chunk := range chunks {
		isLast := i == len(chunks)-1
		tok.Write(chunk, isLast)
		res := tok.RunParsingLoopForCurrentChunk()
		if isLast {
			for res != tokenizer.RunEOF {
				res = tok.RunParsingLoopForCurrentChunk()
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
