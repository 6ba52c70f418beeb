package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheRakeshPurohit/parse5/tokenizer"
)

// exampleTreeBuilderSink is a minimal stand-in for a real tree builder:
// it classifies start tags as custom elements using
// tokenizer.IsValidCustomElementName instead of hardcoding a name list,
// the way a real implementation would use the same capability-set
// interface to decide whether to instantiate a custom element versus an
// ordinary HTMLUnknownElement.
type exampleTreeBuilderSink struct {
	tokenizer.DiscardSink
	customElements []string
	ordinary       []string
}

func (s *exampleTreeBuilderSink) OnStartTag(t *tokenizer.Token) {
	if tokenizer.IsValidCustomElementName(t.Name) {
		s.customElements = append(s.customElements, t.Name)
		return
	}
	s.ordinary = append(s.ordinary, t.Name)
}

func TestExampleSinkClassifiesCustomElements(t *testing.T) {
	sink := &exampleTreeBuilderSink{}
	d := newTestDriver(t, sink)

	d.Write(`<my-widget></my-widget><div></div><x-1></x-1>`, true)
	require.Equal(t, tokenizer.RunEOF, d.Run())

	assert.Equal(t, []string{"my-widget", "x-1"}, sink.customElements)
	assert.Equal(t, []string{"div"}, sink.ordinary)
}

func TestIsValidCustomElementNameRequiresHyphen(t *testing.T) {
	assert.True(t, tokenizer.IsValidCustomElementName("my-widget"))
	assert.False(t, tokenizer.IsValidCustomElementName("div"))
	assert.False(t, tokenizer.IsValidCustomElementName("-leading"))
	assert.False(t, tokenizer.IsValidCustomElementName(""))
}
