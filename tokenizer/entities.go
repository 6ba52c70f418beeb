package tokenizer

// Named character references are, per spec.md §1/§9, deliberately out of
// core scope: the full ~2,231-entry HTML5 table is generated at build
// time into a trie and handed to the tokenizer as static data. What is
// in scope is the *consumption logic* around that data: longest-match
// with backtracking, the attribute-value-context restriction, and the
// missing-semicolon parse error. namedCharacterReferences below is a
// representative seed of the real table — large enough to exercise
// multi-character names, the semicolon/no-semicolon legacy split, and a
// failed-match rollback — standing in for the generated trie; see
// DESIGN.md.
var namedCharacterReferences = map[string][]rune{
	"amp":    {'&'},
	"amp;":   {'&'},
	"lt":     {'<'},
	"lt;":    {'<'},
	"gt":     {'>'},
	"gt;":    {'>'},
	"quot":   {'"'},
	"quot;":  {'"'},
	"apos;":  {'\''},
	"nbsp":   {0x00A0},
	"nbsp;":  {0x00A0},
	"copy":   {0x00A9},
	"copy;":  {0x00A9},
	"reg":    {0x00AE},
	"reg;":   {0x00AE},
	"AElig":  {0x00C6},
	"AElig;": {0x00C6},
	"Aacute;": {0x00C1},
	"eacute;": {0x00E9},
	"hellip;": {0x2026},
	"mdash;":  {0x2014},
	"ndash;":  {0x2013},
	"not":     {0x00AC},
	"not;":    {0x00AC},
	"notin;":  {0x2209},
	"times;":  {0x00D7},
	"divide;": {0x00F7},
	"trade":   {0x2122},
	"trade;":  {0x2122},
}

var maxEntityNameLength = func() int {
	n := 0
	for k := range namedCharacterReferences {
		if len(k) > n {
			n = len(k)
		}
	}
	return n
}()

func isAsciiAlphanumeric(cp int32) bool {
	return (cp >= '0' && cp <= '9') || (cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z')
}

// consumeCharacterReference implements the "named character reference
// state" + "ambiguous ampersand" handling of the HTML5 tokenizer. It
// assumes the leading '&' has already been consumed. inAttribute is true
// when the return state is one of the attribute-value states, which
// changes whether a non-semicolon-terminated legacy match is honored.
//
// It returns the replacement runes and true on a match (having left the
// cursor positioned after the matched text), or false if nothing matched
// (having retreated the cursor back to just after the '&', so the caller
// re-emits the raw ampersand and lets the next state reconsume whatever
// follows). suspend is true when the scan ran into the end of the
// current chunk rather than a genuine non-matching character; the
// cursor is retreated back to just after the '&' in that case too, so
// the caller can return stepEndOfChunk and retry the whole reference
// from scratch once more input arrives, per spec.md §4.2's end-of-chunk
// rule.
func (t *Tokenizer) consumeCharacterReference(inAttribute bool) (runes []rune, matched bool, suspend bool) {
	var buf []int32
	for len(buf) < maxEntityNameLength {
		cp := t.pre.Advance()
		if cp == -1 {
			if t.pre.EndOfChunkHit() {
				t.pre.Retreat(len(buf))
				return nil, false, true
			}
			// Advance moved the cursor onto the end of stream; undo
			// that so the retreats below count only buffered runes.
			t.pre.Retreat(1)
			break
		}
		if !(isAsciiAlphanumeric(cp) || cp == ';') {
			t.pre.Retreat(1)
			break
		}
		buf = append(buf, cp)
		if cp == ';' {
			break
		}
	}

	for l := len(buf); l >= 1; l-- {
		candidate := string(runesToRune32String(buf[:l]))
		repl, ok := namedCharacterReferences[candidate]
		if !ok {
			continue
		}
		// Put back anything consumed beyond this match.
		if extra := len(buf) - l; extra > 0 {
			t.pre.Retreat(extra)
		}
		terminated := candidate[len(candidate)-1] == ';'
		if !terminated {
			next := t.pre.Peek(1)
			if inAttribute && t.pre.EndOfChunkHit() {
				// Whether an unterminated match is honored depends on
				// what follows, so only in attribute context does
				// running out of chunk here force a suspend; outside
				// an attribute the match is accepted regardless.
				t.pre.Retreat(l)
				return nil, false, true
			}
			if inAttribute && (next == '=' || isAsciiAlphanumeric(next)) {
				// Per spec: flush as literal text instead of
				// substituting, to avoid breaking legacy attribute
				// values like href="foo.html?a=b&copy=1".
				t.pre.Retreat(l)
				return nil, false, false
			}
			t.emitError(ErrMissingSemicolonAfterCharacterRef, t.pre.GetLocation(), t.pre.GetLocation())
		}
		return repl, true, false
	}

	t.pre.Retreat(len(buf))
	return nil, false, false
}

func runesToRune32String(cps []int32) []rune {
	out := make([]rune, len(cps))
	for i, cp := range cps {
		out[i] = rune(cp)
	}
	return out
}

// noncharacters and the C1-control substitution table used by the
// numeric character reference end state, per spec.md §4.2.
var controlCharacterReferenceSubstitutions = map[int32]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

func isNoncharacter(cp int32) bool {
	if cp >= 0xFDD0 && cp <= 0xFDEF {
		return true
	}
	switch cp & 0xFFFF {
	case 0xFFFE, 0xFFFF:
		return true
	}
	return false
}

func isSurrogateCodepoint(cp int32) bool { return cp >= 0xD800 && cp <= 0xDFFF }

func isControlOtherThanAsciiWhitespace(cp int32) bool {
	if cp == 0x09 || cp == 0x0A || cp == 0x0C || cp == 0x0D || cp == 0x20 {
		return false
	}
	return (cp >= 0x00 && cp <= 0x1F) || (cp >= 0x7F && cp <= 0x9F)
}
