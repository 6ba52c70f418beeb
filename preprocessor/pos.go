// Package preprocessor owns the growing input buffer, cursor, and
// line/column/offset bookkeeping that the tokenizer reads codepoints
// through. It is the only place CR/LF normalization and surrogate-pair
// combination happen.
package preprocessor

// FileRef names the source a Preprocessor is reading, for error messages.
// A dedicated type, the same way sqlparser.FileRef wraps a bare string.
type FileRef string

// Location identifies a single point in the input: the 1-based line, the
// 0-based column, and the UTF-16-code-unit offset from the start of the
// stream (including anything already dropped by dropParsedChunk).
type Location struct {
	Source FileRef
	Line   int
	Col    int
	Offset int
}

// EOF is the sentinel codepoint returned by Advance both for genuine
// end-of-input and for end-of-current-chunk; callers distinguish the two
// cases via Preprocessor.EndOfChunkHit.
const EOF int32 = -1
