// Package htmltest adapts the teacher's sqltest package (a throwaway,
// uuid-tagged database fixture per test run) to a throwaway, uuid-tagged
// tokenizer run per conformance fixture: there is no database here, but
// the "tag ephemeral state with a correlation id for log output" shape
// is the same.
package htmltest

import (
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"

	"github.com/TheRakeshPurohit/parse5/preprocessor"
	"github.com/TheRakeshPurohit/parse5/tokenizer"
)

// Fixture is a single conformance case. Fixtures are hand-authored Go
// values in testdata/ rather than parsed html5lib .test files at run
// time, keeping the #data/#errors/#tokens split already resolved into
// native Go values per spec.md §9.
type Fixture struct {
	Name     string
	Input    string
	Expected []ExpectedToken
}

// ExpectedToken is the reduced shape a Fixture checks against: Kind,
// Name, Chars and Comment, deliberately omitting source locations so fixtures
// stay stable across whitespace/reformatting of the input they describe.
type ExpectedToken struct {
	Kind    tokenizer.TokenKind
	Name    string
	Chars   string
	Comment string
}

// Run is a single, uuid-tagged conformance run. Grounded on
// sqltest.NewFixture's uuid-per-ephemeral-state device (fixture.go),
// repurposed from tagging a throwaway database to tagging a tokenizer
// run, so overlapping conformance runs can be told apart in logs.
type Run struct {
	ID  uuid.UUID
	Log logrus.FieldLogger
}

// NewRun creates a Run tagged with a fresh correlation id. A nil log
// falls back to the standard logger, the same default the driver uses.
func NewRun(log logrus.FieldLogger) *Run {
	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.Nil
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Run{ID: id, Log: log.WithField("run_id", id.String())}
}

// Tokenize runs f.Input through a fresh Tokenizer and returns the
// collected tokens. When chunked is true, input is split one codepoint
// per Write call to exercise the chunking-invariance property spec.md
// §8 requires of the preprocessor/tokenizer pair.
func (r *Run) Tokenize(f Fixture, chunked bool) []tokenizer.Token {
	sink := &tokenizer.CollectingSink{}
	pre := preprocessor.New(preprocessor.FileRef(f.Name))
	tok := tokenizer.New(pre, tokenizer.Options{Sink: sink})

	chunks := []string{f.Input}
	if chunked {
		chunks = nil
		for _, c := range f.Input {
			chunks = append(chunks, string(c))
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

	r.Log.WithField("fixture", f.Name).WithField("tokens", len(sink.Tokens)).Debug("htmltest: tokenized fixture")
	return sink.Tokens
}
