package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheRakeshPurohit/parse5/preprocessor"
	"github.com/TheRakeshPurohit/parse5/tokenizer"
)

func newTestDriver(t *testing.T, sink tokenizer.Sink) *Driver {
	t.Helper()
	pre := preprocessor.New("test")
	return New(pre, sink, nil, nil)
}

func TestPausesAfterScriptEndTag(t *testing.T) {
	sink := &tokenizer.CollectingSink{}
	d := newTestDriver(t, sink)

	d.Write("<script>var x = 1 < 2;</script>after", true)

	res := d.Run()
	require.Equal(t, tokenizer.RunPaused, res)
	assert.True(t, d.Paused())

	require.NoError(t, d.Resume())
	assert.False(t, d.Paused())

	res = d.Run()
	require.Equal(t, tokenizer.RunEOF, res)

	var gotStart, gotEnd bool
	var trailing string
	for _, tok := range sink.Tokens {
		switch tok.Kind {
		case tokenizer.StartTagToken:
			if tok.Name == "script" {
				gotStart = true
			}
		case tokenizer.EndTagToken:
			if tok.Name == "script" {
				gotEnd = true
			}
		case tokenizer.CharacterToken:
			trailing += tok.Chars
		}
	}
	assert.True(t, gotStart)
	assert.True(t, gotEnd)
	assert.Contains(t, trailing, "after")
}

func TestInjectWriteAppliesInCallOrder(t *testing.T) {
	sink := &tokenizer.CollectingSink{}
	d := newTestDriver(t, sink)

	d.Write("<script>ignored</script>", true)
	require.Equal(t, tokenizer.RunPaused, d.Run())

	require.NoError(t, d.InjectWrite("A"))
	require.NoError(t, d.InjectWrite("B"))
	require.NoError(t, d.InjectWrite("C"))
	require.NoError(t, d.Resume())

	require.Equal(t, tokenizer.RunEOF, d.Run())

	var chars string
	for _, tok := range sink.Tokens {
		if tok.Kind == tokenizer.CharacterToken {
			chars += tok.Chars
		}
	}
	// The script body is emitted as character tokens too.
	assert.Equal(t, "ignoredABC", chars)
}

func TestInjectWriteRequiresPause(t *testing.T) {
	d := newTestDriver(t, tokenizer.DiscardSink{})
	assert.Equal(t, ErrNotPaused, d.InjectWrite("oops"))
}

func TestResumeRequiresPause(t *testing.T) {
	d := newTestDriver(t, tokenizer.DiscardSink{})
	assert.Equal(t, ErrAlreadyResumed, d.Resume())
}

func TestDriverHasDistinctID(t *testing.T) {
	d1 := newTestDriver(t, tokenizer.DiscardSink{})
	d2 := newTestDriver(t, tokenizer.DiscardSink{})
	assert.NotEqual(t, d1.ID(), d2.ID())
}

// TestRcdataSwitchViaStateForSpecialElement checks that the driver
// itself (standing in for a tree builder) switches tokenization mode on
// <title>, not just <script> — exercising StateForSpecialElement rather
// than a hardcoded script-only check.
func TestRcdataSwitchViaStateForSpecialElement(t *testing.T) {
	sink := &tokenizer.CollectingSink{}
	d := newTestDriver(t, sink)

	d.Write(`<title><b>not a tag</b></title>tail`, true)
	require.Equal(t, tokenizer.RunEOF, d.Run())

	var chars string
	for _, tok := range sink.Tokens {
		if tok.Kind == tokenizer.CharacterToken {
			chars += tok.Chars
		}
	}
	assert.Equal(t, "<b>not a tag</b>tail", chars)
}

// TestForeignContentTracking checks that entering and leaving an <svg>
// subtree round-trips through InForeignNode/AllowCDATA via
// IsForeignBoundaryElement, and that a CDATA section inside it is
// tokenized as character data.
func TestForeignContentTracking(t *testing.T) {
	sink := &tokenizer.CollectingSink{}
	d := newTestDriver(t, sink)

	d.Write(`<svg><![CDATA[raw]]></svg>after`, true)
	require.Equal(t, tokenizer.RunEOF, d.Run())

	assert.False(t, d.tok.IsInForeignNode())

	var chars string
	for _, tok := range sink.Tokens {
		if tok.Kind == tokenizer.CharacterToken {
			chars += tok.Chars
		}
	}
	assert.Contains(t, chars, "raw")
	assert.Contains(t, chars, "after")
}
