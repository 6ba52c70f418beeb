package tokenizer

import (
	"github.com/TheRakeshPurohit/parse5/preprocessor"
)

// state enumerates the tokenizer states of spec.md §3/§4.2 — the ~70
// named states of the HTML5 tokenization algorithm (data, tag-open,
// the attribute family, the comment family, the doctype family, CDATA,
// and the character-reference family). Grounded on the same
// iota-enum-plus-description-map device as TokenKind
// (sqlparser.TokenType), but states are dispatched on far more often
// than they are printed, so no description map is kept for them.
type state int

const (
	dataState state = iota
	rcdataState
	rawtextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcdataLessThanSignState
	rcdataEndTagOpenState
	rcdataEndTagNameState
	rawtextLessThanSignState
	rawtextEndTagOpenState
	rawtextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
)

// RunResult reports why RunParsingLoopForCurrentChunk returned, per
// spec.md §7's suspension contract.
type RunResult int

const (
	// RunEndOfChunk means the preprocessor ran out of buffered input
	// without reaching end of stream; call Write with more data and run
	// again to resume exactly where parsing left off.
	RunEndOfChunk RunResult = iota
	// RunEOF means the tokenizer consumed the true end of stream and
	// emitted the final EOF token. Running the loop again repeats the
	// end-of-stream handling and emits another EOF token.
	RunEOF
	// RunPaused means a Sink callback called Pause during this run; the
	// loop stopped immediately after that callback returned, with no
	// further input consumed. A driver uses this to suspend around
	// <script> execution (spec.md §7).
	RunPaused
)

// Options configures a Tokenizer. Sink is required; OnParseError may be
// nil to run in "silent mode" (spec.md §9's resolved open question):
// parse errors are then dropped instead of delivered. The error checks
// themselves, and the preprocessor's offset-dedup set, still run.
type Options struct {
	Sink         Sink
	OnParseError func(ParserError)
}

// Tokenizer is the HTML5 tokenization state machine of spec.md §3. It
// owns a Preprocessor for input and emits tokens to a Sink; it knows
// nothing about tree construction beyond the small capability-set
// interface (SetState/InForeignNode/AllowCDATA/LastStartTagName) a tree
// builder uses to steer it, which is how spec.md §9 breaks the natural
// cyclic Tokenizer<->tree-builder reference.
//
// Grounded on sqlparser.Scanner/Parser's single-struct-owns-cursor
// shape, generalized from a single fully-buffered string to streaming,
// suspendable input.
type Tokenizer struct {
	pre  *preprocessor.Preprocessor
	sink Sink

	onParseError func(ParserError)

	state       state
	returnState state

	inForeignNode bool
	allowCDATA    bool

	inLoop         bool
	pauseRequested bool

	lastStartTagName string

	currentToken *Token
	attrIdx      int
	attrNames    map[string]bool

	commentBuf  []rune
	doctypeName []rune
	doctypePub  []rune
	doctypeSys  []rune

	pendingChars []rune
	pendingKind  CharacterKind
	pendingStart preprocessor.Location
	pendingEnd   preprocessor.Location
	havePending  bool

	tempBuff []rune

	charRefCode       int32
	charRefReturnAttr bool
}

// New creates a Tokenizer reading from pre (already primed with Write
// calls by the caller) and starting in the data state, per spec.md §4.2.
func New(pre *preprocessor.Preprocessor, opts Options) *Tokenizer {
	t := &Tokenizer{
		pre:          pre,
		sink:         opts.Sink,
		onParseError: opts.OnParseError,
		state:        dataState,
	}
	pre.OnError = func(e preprocessor.ParserError) {
		t.emitError(ParseErrorCode(e.Code), e.Location, e.Location)
	}
	return t
}

// Write appends more input, per spec.md §4.1.
func (t *Tokenizer) Write(chunk string, isLast bool) { t.pre.Write(chunk, isLast) }

// InsertHtmlAtCurrentPos splices chunk immediately after the cursor.
// Legal only while paused (spec.md §7's document.write contract); the
// driver is responsible for enforcing that.
func (t *Tokenizer) InsertHtmlAtCurrentPos(chunk string) { t.pre.InsertHTMLAtCurrentPos(chunk) }

// GetCurrentLocation reports the cursor's current position.
func (t *Tokenizer) GetCurrentLocation() preprocessor.Location { return t.pre.GetLocation() }

// SetState lets a tree builder switch the tokenizer into RCDATA,
// RAWTEXT, script-data, or PLAINTEXT mode after inserting the
// corresponding element (spec.md §4.2), or back to the data state.
func (t *Tokenizer) SetState(s TokenizerState) { t.state = stateFromPublic(s) }

// InForeignNode lets a tree builder report whether the current
// insertion point is foreign (SVG/MathML) content. The tokenizer only
// stores the hint for IsInForeignNode; CDATA sections are enabled
// separately through AllowCDATA.
func (t *Tokenizer) InForeignNode(v bool) { t.inForeignNode = v }

// IsInForeignNode reports the value last set by InForeignNode, letting a
// tree builder read back its own hint (e.g. to decide, on an end tag,
// whether it is still inside the foreign subtree it pushed).
func (t *Tokenizer) IsInForeignNode() bool { return t.inForeignNode }

// AllowCDATA lets a tree builder enable CDATA section parsing, which
// spec.md restricts to foreign content.
func (t *Tokenizer) AllowCDATA(v bool) { t.allowCDATA = v }

// LastStartTagName reports the most recently emitted start tag's name,
// used by a tree builder (or, internally, by RCDATA/RAWTEXT/script-data
// end tag matching) to recognize an "appropriate end tag token".
func (t *Tokenizer) LastStartTagName() string { return t.lastStartTagName }

// Pause requests that RunParsingLoopForCurrentChunk stop immediately
// after the current Sink callback returns, without consuming further
// input. Only meaningful when called from within a Sink method.
func (t *Tokenizer) Pause() { t.pauseRequested = true }

// TokenizerState is the public subset of state a tree builder can
// request via SetState.
type TokenizerState int

const (
	DataState TokenizerState = iota
	RCDATAState
	RAWTEXTState
	ScriptDataState
	PLAINTEXTState
)

func stateFromPublic(s TokenizerState) state {
	switch s {
	case RCDATAState:
		return rcdataState
	case RAWTEXTState:
		return rawtextState
	case ScriptDataState:
		return scriptDataState
	case PLAINTEXTState:
		return plaintextState
	default:
		return dataState
	}
}

// RunParsingLoopForCurrentChunk drives the state machine until it runs
// out of buffered input (RunEndOfChunk), consumes true end of stream
// (RunEOF), or a Sink callback calls Pause (RunPaused) — spec.md §7's
// three suspension outcomes. It is not reentrant: a Sink callback that
// calls back into it is a contract violation (mirrors the driver's own
// AlreadyResumed check, here as a hard panic since it signals a bug in
// the embedding code, not a caller-triggerable runtime condition).
func (t *Tokenizer) RunParsingLoopForCurrentChunk() RunResult {
	if t.inLoop {
		panic("tokenizer: RunParsingLoopForCurrentChunk called reentrantly")
	}
	t.inLoop = true
	defer func() { t.inLoop = false }()

	for {
		res := t.step()
		if t.pauseRequested {
			t.pauseRequested = false
			return RunPaused
		}
		switch res {
		case stepEndOfChunk:
			return RunEndOfChunk
		case stepEOF:
			return RunEOF
		}
	}
}

type stepResult int

const (
	stepContinue stepResult = iota
	stepEndOfChunk
	stepEOF
)

func (t *Tokenizer) emitError(code ParseErrorCode, start, end preprocessor.Location) {
	if t.onParseError == nil {
		return
	}
	t.onParseError(newParserError(code, start, end))
}

// --- character coalescing -------------------------------------------------

func (t *Tokenizer) emitChar(r rune, kind CharacterKind) {
	if t.havePending && t.pendingKind != kind {
		t.flushPendingChars()
	}
	if !t.havePending {
		t.pendingStart = t.pre.GetLocation()
		t.pendingKind = kind
		t.havePending = true
	}
	t.pendingChars = append(t.pendingChars, r)
	// Captured here, at the point r's own codepoint was consumed, not at
	// flush time: flushing is often triggered by consuming the *next*
	// run's first codepoint, by which point GetLocation() would already
	// have moved past the end of this run.
	t.pendingEnd = t.pre.GetLocation()
}

func (t *Tokenizer) flushPendingChars() {
	if !t.havePending {
		return
	}
	tok := Token{
		Kind:     CharacterToken,
		Chars:    string(t.pendingChars),
		CharKind: t.pendingKind,
		Start:    t.pendingStart,
		End:      t.pendingEnd,
	}
	switch t.pendingKind {
	case WhitespaceCharacters:
		t.sink.OnWhitespaceCharacter(&tok)
	case NullCharacters:
		t.sink.OnNullCharacter(&tok)
	default:
		t.sink.OnCharacter(&tok)
	}
	t.pendingChars = t.pendingChars[:0]
	t.havePending = false
}

func (t *Tokenizer) emitEOF() {
	t.flushPendingChars()
	loc := t.pre.GetLocation()
	t.sink.OnEOF(&Token{Kind: EOFTokenKind, Start: loc, End: loc})
}

// --- tag construction ------------------------------------------------------

func (t *Tokenizer) startTag(kind TokenKind) {
	t.flushPendingChars()
	t.currentToken = &Token{Kind: kind, Start: t.pre.GetLocation()}
	t.attrIdx = -1
	t.attrNames = nil
}

func (t *Tokenizer) appendTagName(r rune) {
	t.currentToken.Name += string(r)
}

func (t *Tokenizer) startAttribute() {
	t.currentToken.Attrs = append(t.currentToken.Attrs, Attribute{NameLoc: t.pre.GetLocation()})
	t.attrIdx = len(t.currentToken.Attrs) - 1
}

func (t *Tokenizer) curAttr() *Attribute { return &t.currentToken.Attrs[t.attrIdx] }

func (t *Tokenizer) appendAttrName(r rune) { t.curAttr().Name += string(r) }
func (t *Tokenizer) appendAttrValue(r rune) {
	if t.attrIdx < 0 {
		// value of a duplicate attribute that finishAttributeName dropped
		return
	}
	t.curAttr().Value += string(r)
}

// finishAttributeName runs the duplicate-attribute check (spec.md's
// parse-error catalog) once an attribute name is complete, dropping the
// duplicate from the emitted tag per the HTML5 algorithm (the first
// occurrence wins).
func (t *Tokenizer) finishAttributeName() {
	a := t.curAttr()
	if t.attrNames == nil {
		t.attrNames = make(map[string]bool)
	}
	if t.attrNames[a.Name] {
		t.emitError(ErrDuplicateAttribute, a.NameLoc, t.pre.GetLocation())
		t.currentToken.Attrs = t.currentToken.Attrs[:t.attrIdx]
		t.attrIdx = -1
		return
	}
	t.attrNames[a.Name] = true
	a.ValueLoc = t.pre.GetLocation()
}

func (t *Tokenizer) emitCurrentTag(selfClosing bool) {
	t.currentToken.SelfClosing = selfClosing
	t.currentToken.End = t.pre.GetLocation()
	if t.currentToken.Kind == StartTagToken {
		t.lastStartTagName = t.currentToken.Name
		// AckSelfClosing starts false: only a Sink that recognizes the
		// element as void or foreign content knows whether the slash
		// was meaningful.
		t.sink.OnStartTag(t.currentToken)
		return
	}
	if len(t.currentToken.Attrs) > 0 {
		t.emitError(ErrEndTagWithAttributes, t.currentToken.Start, t.currentToken.End)
	}
	if t.currentToken.SelfClosing {
		t.emitError(ErrEndTagWithTrailingSolidus, t.currentToken.Start, t.currentToken.End)
	}
	t.sink.OnEndTag(t.currentToken)
}

// --- comment / bogus comment / doctype construction -------------------------

func (t *Tokenizer) startComment() {
	t.flushPendingChars()
	t.currentToken = &Token{Kind: CommentToken, Start: t.pre.GetLocation()}
	t.commentBuf = t.commentBuf[:0]
}

func (t *Tokenizer) appendComment(r rune) { t.commentBuf = append(t.commentBuf, r) }

func (t *Tokenizer) emitComment() {
	t.currentToken.CommentData = string(t.commentBuf)
	t.currentToken.End = t.pre.GetLocation()
	t.sink.OnComment(t.currentToken)
}

func (t *Tokenizer) startDoctype() {
	t.flushPendingChars()
	t.currentToken = &Token{Kind: DoctypeToken, Start: t.pre.GetLocation()}
	t.doctypeName = t.doctypeName[:0]
	t.doctypePub = t.doctypePub[:0]
	t.doctypeSys = t.doctypeSys[:0]
}

func (t *Tokenizer) emitDoctype() {
	if len(t.doctypeName) > 0 {
		name := string(t.doctypeName)
		t.currentToken.Name = name
	}
	if t.currentToken.PublicID == nil && t.doctypePub != nil {
		s := string(t.doctypePub)
		t.currentToken.PublicID = &s
	}
	if t.currentToken.SystemID == nil && t.doctypeSys != nil {
		s := string(t.doctypeSys)
		t.currentToken.SystemID = &s
	}
	t.currentToken.End = t.pre.GetLocation()
	t.sink.OnDoctype(t.currentToken)
}

// --- small matching helpers --------------------------------------------------

func isAsciiUpper(cp int32) bool { return cp >= 'A' && cp <= 'Z' }
func toAsciiLower(cp int32) rune { return rune(cp + 0x20) }
func isWhitespace(cp int32) bool {
	switch cp {
	case '\t', '\n', '\f', ' ', '\r':
		return true
	}
	return false
}

func (t *Tokenizer) appropriateEndTag() bool {
	return t.currentToken != nil && t.currentToken.Kind == EndTagToken &&
		t.currentToken.Name == t.lastStartTagName && t.lastStartTagName != ""
}

func tempBuffString(b []rune) string { return string(b) }
