package tokenizer

import "github.com/TheRakeshPurohit/parse5/preprocessor"

// Attribute is a single tag attribute, positioned per spec.md §3.
// Grounded on the "named value with a position" shape of
// sqlparser.Declare/PosString (sqlparser/dom.go), generalized to carry
// separate name/value locations since HTML attribute errors need to
// distinguish the two.
type Attribute struct {
	Name      string
	Value     string
	Prefix    string
	Namespace string

	NameLoc  preprocessor.Location
	ValueLoc preprocessor.Location
}

// Token is the tagged variant spec.md §3 describes. Rather than a Go sum
// type (one interface + six structs), it is a single flat struct with a
// Kind discriminator and kind-specific fields left zero otherwise — the
// same device golang.org/x/net/html.Token uses, and the shape the old
// Go-standard-library html package bundled in the teacher's repository
// snapshot (go/src/pkg/html/parse.go) consumes from its Tokenizer.
type Token struct {
	Kind TokenKind

	// StartTag / EndTag
	Name          string
	SelfClosing   bool
	AckSelfClosing bool
	Attrs         []Attribute

	// Comment
	CommentData string

	// Doctype
	PublicID    *string
	SystemID    *string
	ForceQuirks bool

	// Character
	Chars    string
	CharKind CharacterKind

	// Every token kind carries a start location; Character/Comment/Tag
	// tokens also carry an end location one past the last consumed
	// codepoint, per spec.md §4.2's character-coalescing location rule.
	Start preprocessor.Location
	End   preprocessor.Location
}

// Sink is the token consumer spec.md §6 calls the "token sink": a
// downstream tree builder (deliberately out of core scope) implements
// this to receive tokens by reference. A Sink must copy anything it
// wants to retain past the call, since the Tokenizer reuses token
// storage between emissions.
type Sink interface {
	OnCharacter(*Token)
	OnNullCharacter(*Token)
	OnWhitespaceCharacter(*Token)
	OnComment(*Token)
	OnDoctype(*Token)
	OnStartTag(*Token)
	OnEndTag(*Token)
	OnEOF(*Token)
}

// DiscardSink is a Sink that does nothing; useful as a base for tests
// that only care about a subset of callbacks, or for callers that only
// want parse errors out of a run.
type DiscardSink struct{}

func (DiscardSink) OnCharacter(*Token)           {}
func (DiscardSink) OnNullCharacter(*Token)        {}
func (DiscardSink) OnWhitespaceCharacter(*Token)  {}
func (DiscardSink) OnComment(*Token)              {}
func (DiscardSink) OnDoctype(*Token)              {}
func (DiscardSink) OnStartTag(*Token)             {}
func (DiscardSink) OnEndTag(*Token)               {}
func (DiscardSink) OnEOF(*Token)                  {}

// CollectingSink appends every emitted token to Tokens, copying each one
// (per the Sink contract) — the simplest possible consumer, used by
// tests and by the conformance CLI.
type CollectingSink struct {
	Tokens []Token
}

func (s *CollectingSink) push(t *Token) { s.Tokens = append(s.Tokens, *t) }

func (s *CollectingSink) OnCharacter(t *Token)          { s.push(t) }
func (s *CollectingSink) OnNullCharacter(t *Token)       { s.push(t) }
func (s *CollectingSink) OnWhitespaceCharacter(t *Token) { s.push(t) }
func (s *CollectingSink) OnComment(t *Token)             { s.push(t) }
func (s *CollectingSink) OnDoctype(t *Token)             { s.push(t) }
func (s *CollectingSink) OnStartTag(t *Token)            { s.push(t) }
func (s *CollectingSink) OnEndTag(t *Token)              { s.push(t) }
func (s *CollectingSink) OnEOF(t *Token)                 { s.push(t) }
