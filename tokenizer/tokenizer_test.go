package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheRakeshPurohit/parse5/preprocessor"
)

func runAll(t *testing.T, tok *Tokenizer, input string) {
	t.Helper()
	tok.Write(input, true)
	for {
		res := tok.RunParsingLoopForCurrentChunk()
		if res == RunEOF {
			return
		}
		require.Equal(t, RunEndOfChunk, res, "unexpected pause in a run with no script sink")
	}
}

func tokenizeAll(t *testing.T, input string) []Token {
	t.Helper()
	sink := &CollectingSink{}
	pre := preprocessor.New("test")
	tok := New(pre, Options{Sink: sink})
	runAll(t, tok, input)
	return sink.Tokens
}

func namesOfKind(tokens []Token, kind TokenKind) []string {
	var out []string
	for _, tok := range tokens {
		if tok.Kind == kind {
			out = append(out, tok.Name)
		}
	}
	return out
}

func TestPlainElementRoundTrip(t *testing.T) {
	tokens := tokenizeAll(t, `<p class="a">hi</p>`)
	require.NotEmpty(t, tokens)

	assert.Equal(t, []string{"p"}, namesOfKind(tokens, StartTagToken))
	assert.Equal(t, []string{"p"}, namesOfKind(tokens, EndTagToken))

	start := tokens[0]
	require.Equal(t, StartTagToken, start.Kind)
	require.Len(t, start.Attrs, 1)
	assert.Equal(t, "class", start.Attrs[0].Name)
	assert.Equal(t, "a", start.Attrs[0].Value)

	var chars string
	for _, tok := range tokens {
		if tok.Kind == CharacterToken {
			chars += tok.Chars
		}
	}
	assert.Equal(t, "hi", chars)

	require.Equal(t, EOFTokenKind, tokens[len(tokens)-1].Kind)
}

func TestSelfClosingVoidTag(t *testing.T) {
	tokens := tokenizeAll(t, `<br/>`)
	require.Len(t, tokens, 2) // StartTag + EOF
	assert.Equal(t, "br", tokens[0].Name)
	assert.True(t, tokens[0].SelfClosing)
}

func TestCommentAndDoctype(t *testing.T) {
	tokens := tokenizeAll(t, `<!DOCTYPE html><!-- hello -->`)
	require.GreaterOrEqual(t, len(tokens), 3)

	doctype := tokens[0]
	require.Equal(t, DoctypeToken, doctype.Kind)
	assert.Nil(t, doctype.PublicID)
	assert.Nil(t, doctype.SystemID)
	assert.False(t, doctype.ForceQuirks)

	comment := tokens[1]
	require.Equal(t, CommentToken, comment.Kind)
	assert.Equal(t, " hello ", comment.CommentData)
}

func TestNullCharacterInDataGetsNullCharacterKind(t *testing.T) {
	tokens := tokenizeAll(t, "a\x00b")
	var kinds []CharacterKind
	for _, tok := range tokens {
		if tok.Kind == CharacterToken {
			kinds = append(kinds, tok.CharKind)
		}
	}
	require.Len(t, kinds, 3)
	assert.Equal(t, NormalCharacters, kinds[0])
	assert.Equal(t, NullCharacters, kinds[1])
	assert.Equal(t, NormalCharacters, kinds[2])
}

// rcdataSwitchingSink mimics a tree builder: it flips the tokenizer into
// RCDATAState as soon as it observes a <title> start tag. Real callers
// must do this from inside the Sink callback (the run loop will already
// have consumed the rest of the buffer in the old state by the time
// RunParsingLoopForCurrentChunk returns, since nothing else pauses it).
type rcdataSwitchingSink struct {
	CollectingSink
	tok *Tokenizer
}

func (s *rcdataSwitchingSink) OnStartTag(t *Token) {
	s.CollectingSink.OnStartTag(t)
	if t.Name == "title" {
		s.tok.SetState(RCDATAState)
	}
}

func TestRcdataDoesNotTokenizeTags(t *testing.T) {
	sink := &rcdataSwitchingSink{}
	pre := preprocessor.New("test")
	tok := New(pre, Options{Sink: sink})
	sink.tok = tok

	runAll(t, tok, `<title><b>not a tag</b></title>`)

	var chars string
	for _, got := range sink.Tokens {
		if got.Kind == CharacterToken {
			chars += got.Chars
		}
	}
	assert.Equal(t, "<b>not a tag</b>", chars)
	assert.Equal(t, []string{"title"}, namesOfKind(sink.Tokens, EndTagToken))
}

func TestNamedCharacterReferenceInData(t *testing.T) {
	tokens := tokenizeAll(t, "a &amp; b")
	var chars string
	for _, tok := range tokens {
		if tok.Kind == CharacterToken {
			chars += tok.Chars
		}
	}
	assert.Equal(t, "a & b", chars)
}

func TestDecimalNumericCharacterReference(t *testing.T) {
	tokens := tokenizeAll(t, "&#65;")
	var chars string
	for _, tok := range tokens {
		if tok.Kind == CharacterToken {
			chars += tok.Chars
		}
	}
	assert.Equal(t, "A", chars)
}

// TestChunkingIsInvariant checks that splitting the same input across
// arbitrary chunk boundaries produces the same token stream as feeding
// it in one go (spec.md §2's streaming contract).
func TestChunkingIsInvariant(t *testing.T) {
	input := `<div id="x">hello &amp; <b>world</b></div>`

	whole := tokenizeAll(t, input)

	for split := 1; split < len(input); split++ {
		sink := &CollectingSink{}
		pre := preprocessor.New("test")
		tok := New(pre, Options{Sink: sink})

		tok.Write(input[:split], false)
		res := tok.RunParsingLoopForCurrentChunk()
		require.Equal(t, RunEndOfChunk, res)

		tok.Write(input[split:], true)
		for res != RunEOF {
			res = tok.RunParsingLoopForCurrentChunk()
		}

		require.Equal(t, len(whole), len(sink.Tokens), "split at %d produced a different token count", split)
		for i := range whole {
			assert.Equal(t, whole[i].Kind, sink.Tokens[i].Kind, "split at %d, token %d kind", split, i)
			assert.Equal(t, whole[i].Name, sink.Tokens[i].Name, "split at %d, token %d name", split, i)
			assert.Equal(t, whole[i].Chars, sink.Tokens[i].Chars, "split at %d, token %d chars", split, i)
		}
	}
}

func TestDuplicateAttributeIsDropped(t *testing.T) {
	var errs []ParserError
	sink := &CollectingSink{}
	pre := preprocessor.New("test")
	tok := New(pre, Options{
		Sink:         sink,
		OnParseError: func(e ParserError) { errs = append(errs, e) },
	})
	runAll(t, tok, `<p a="1" a="2">`)

	require.Len(t, sink.Tokens, 2) // StartTag + EOF
	require.Len(t, sink.Tokens[0].Attrs, 1)
	assert.Equal(t, "1", sink.Tokens[0].Attrs[0].Value)

	var sawDup bool
	for _, e := range errs {
		if e.Code == ErrDuplicateAttribute {
			sawDup = true
		}
	}
	assert.True(t, sawDup)
}

func TestSilentModeSuppressesErrors(t *testing.T) {
	sink := &CollectingSink{}
	pre := preprocessor.New("test")
	tok := New(pre, Options{Sink: sink}) // OnParseError nil
	runAll(t, tok, `<p a="1" a="2">&unknownentity;`)
	// Must not panic with a nil onParseError, and still tokenizes.
	require.NotEmpty(t, sink.Tokens)
}
