package htmltest

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/repr"

	"github.com/TheRakeshPurohit/parse5/tokenizer"
)

// Diff compares a fixture's expected tokens against a run's actual
// output and returns a human-readable mismatch report, or the empty
// string if they match. Grounded on sqltest.DumpRows (querydump.go): the
// same tabwriter-plus-repr.String device, repurposed from dumping SQL
// query result mismatches to dumping mismatched token streams.
func Diff(f Fixture, got []tokenizer.Token) string {
	if matches(f.Expected, got) {
		return ""
	}

	var out bytes.Buffer
	writer := tabwriter.NewWriter(&out, 0, 0, 4, ' ', 0)
	fmt.Fprintf(writer, "fixture\t%s\n", f.Name)
	fmt.Fprintln(writer, "----------------\t------------")

	n := len(f.Expected)
	if len(got) > n {
		n = len(got)
	}
	for i := 0; i < n; i++ {
		var want, have string
		if i < len(f.Expected) {
			want = repr.String(f.Expected[i])
		}
		if i < len(got) {
			have = repr.String(got[i])
		}
		fmt.Fprintf(writer, "want\t%s\n", want)
		fmt.Fprintf(writer, "have\t%s\n", have)
		fmt.Fprintln(writer, "----------------\t------------")
	}
	writer.Flush()
	return out.String()
}

func matches(expected []ExpectedToken, got []tokenizer.Token) bool {
	if len(expected) != len(got) {
		return false
	}
	for i, e := range expected {
		g := got[i]
		if e.Kind != g.Kind || e.Name != g.Name || e.Chars != g.Chars || e.Comment != g.CommentData {
			return false
		}
	}
	return true
}
