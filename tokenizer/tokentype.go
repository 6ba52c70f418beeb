package tokenizer

// TokenKind discriminates the tagged variants of Token described in
// spec.md §3. Grounded on sqlparser.TokenType (tokentype.go): an
// iota-based enum with a description map whose completeness is checked
// in init(), the same device used there for TokenType/EOFToken.
type TokenKind int

const (
	StartTagToken TokenKind = iota + 1
	EndTagToken
	CommentToken
	DoctypeToken
	CharacterToken
	EOFTokenKind
)

func (k TokenKind) String() string { return tokenKindToDescription[k] }

var tokenKindToDescription = map[TokenKind]string{
	StartTagToken: "StartTag",
	EndTagToken:   "EndTag",
	CommentToken:  "Comment",
	DoctypeToken:  "Doctype",
	CharacterToken: "Character",
	EOFTokenKind:  "EOF",
}

func init() {
	for k := StartTagToken; k <= EOFTokenKind; k++ {
		if tokenKindToDescription[k] == "" {
			panic("tokenizer: tokenKindToDescription is missing an entry")
		}
	}
}

// CharacterKind distinguishes the three flavors of coalesced Character
// tokens spec.md §3 requires: contiguous runs of the same kind merge, a
// kind change flushes the run.
type CharacterKind int

const (
	NormalCharacters CharacterKind = iota
	WhitespaceCharacters
	NullCharacters
)

func (k CharacterKind) String() string { return characterKindToDescription[k] }

var characterKindToDescription = map[CharacterKind]string{
	NormalCharacters:     "Normal",
	WhitespaceCharacters: "Whitespace",
	NullCharacters:       "Null",
}

func init() {
	for k := NormalCharacters; k <= NullCharacters; k++ {
		if characterKindToDescription[k] == "" {
			panic("tokenizer: characterKindToDescription is missing an entry")
		}
	}
}
