package tokenizer

import "github.com/TheRakeshPurohit/parse5/preprocessor"

// step executes exactly one consume-dispatch-act cycle of the
// tokenization algorithm against the current state, per spec.md §4.2.
// It is the heart of the module: the switch below is the ~70-state
// table the HTML5 tokenizer specification describes, translated
// directly (state name for state name) rather than collapsed into a
// smaller equivalent machine, so that it stays checkable against the
// spec one case at a time.
func (t *Tokenizer) step() stepResult {
	switch t.state {

	case dataState:
		return t.stepData()
	case rcdataState:
		return t.stepRcdata()
	case rawtextState:
		return t.stepRawtext()
	case scriptDataState:
		return t.stepScriptData()
	case plaintextState:
		return t.stepPlaintext()

	case tagOpenState:
		return t.stepTagOpen()
	case endTagOpenState:
		return t.stepEndTagOpen()
	case tagNameState:
		return t.stepTagName()

	case rcdataLessThanSignState:
		return t.stepLessThanSignGeneric(rcdataEndTagOpenState, rcdataState)
	case rcdataEndTagOpenState:
		return t.stepEndTagOpenGeneric(rcdataEndTagNameState, rcdataState)
	case rcdataEndTagNameState:
		return t.stepEndTagNameGeneric(rcdataState)

	case rawtextLessThanSignState:
		return t.stepLessThanSignGeneric(rawtextEndTagOpenState, rawtextState)
	case rawtextEndTagOpenState:
		return t.stepEndTagOpenGeneric(rawtextEndTagNameState, rawtextState)
	case rawtextEndTagNameState:
		return t.stepEndTagNameGeneric(rawtextState)

	case scriptDataLessThanSignState:
		return t.stepScriptDataLessThanSign()
	case scriptDataEndTagOpenState:
		return t.stepEndTagOpenGeneric(scriptDataEndTagNameState, scriptDataState)
	case scriptDataEndTagNameState:
		return t.stepEndTagNameGeneric(scriptDataState)
	case scriptDataEscapeStartState:
		return t.stepScriptDataEscapeStart()
	case scriptDataEscapeStartDashState:
		return t.stepScriptDataEscapeStartDash()
	case scriptDataEscapedState:
		return t.stepScriptDataEscaped()
	case scriptDataEscapedDashState:
		return t.stepScriptDataEscapedDash()
	case scriptDataEscapedDashDashState:
		return t.stepScriptDataEscapedDashDash()
	case scriptDataEscapedLessThanSignState:
		return t.stepScriptDataEscapedLessThanSign()
	case scriptDataEscapedEndTagOpenState:
		return t.stepEndTagOpenGeneric(scriptDataEscapedEndTagNameState, scriptDataEscapedState)
	case scriptDataEscapedEndTagNameState:
		return t.stepEndTagNameGeneric(scriptDataEscapedState)
	case scriptDataDoubleEscapeStartState:
		return t.stepScriptDataDoubleEscapeStart()
	case scriptDataDoubleEscapedState:
		return t.stepScriptDataDoubleEscaped()
	case scriptDataDoubleEscapedDashState:
		return t.stepScriptDataDoubleEscapedDash()
	case scriptDataDoubleEscapedDashDashState:
		return t.stepScriptDataDoubleEscapedDashDash()
	case scriptDataDoubleEscapedLessThanSignState:
		return t.stepScriptDataDoubleEscapedLessThanSign()
	case scriptDataDoubleEscapeEndState:
		return t.stepScriptDataDoubleEscapeEnd()

	case beforeAttributeNameState:
		return t.stepBeforeAttributeName()
	case attributeNameState:
		return t.stepAttributeName()
	case afterAttributeNameState:
		return t.stepAfterAttributeName()
	case beforeAttributeValueState:
		return t.stepBeforeAttributeValue()
	case attributeValueDoubleQuotedState:
		return t.stepAttributeValueQuoted('"')
	case attributeValueSingleQuotedState:
		return t.stepAttributeValueQuoted('\'')
	case attributeValueUnquotedState:
		return t.stepAttributeValueUnquoted()
	case afterAttributeValueQuotedState:
		return t.stepAfterAttributeValueQuoted()
	case selfClosingStartTagState:
		return t.stepSelfClosingStartTag()

	case bogusCommentState:
		return t.stepBogusComment()
	case markupDeclarationOpenState:
		return t.stepMarkupDeclarationOpen()

	case commentStartState:
		return t.stepCommentStart()
	case commentStartDashState:
		return t.stepCommentStartDash()
	case commentState:
		return t.stepComment()
	case commentLessThanSignState:
		return t.stepCommentLessThanSign()
	case commentLessThanSignBangState:
		return t.stepCommentLessThanSignBang()
	case commentLessThanSignBangDashState:
		return t.stepCommentLessThanSignBangDash()
	case commentLessThanSignBangDashDashState:
		return t.stepCommentLessThanSignBangDashDash()
	case commentEndDashState:
		return t.stepCommentEndDash()
	case commentEndState:
		return t.stepCommentEnd()
	case commentEndBangState:
		return t.stepCommentEndBang()

	case doctypeState:
		return t.stepDoctype()
	case beforeDoctypeNameState:
		return t.stepBeforeDoctypeName()
	case doctypeNameState:
		return t.stepDoctypeName()
	case afterDoctypeNameState:
		return t.stepAfterDoctypeName()
	case afterDoctypePublicKeywordState:
		return t.stepAfterDoctypePublicKeyword()
	case beforeDoctypePublicIdentifierState:
		return t.stepBeforeDoctypePublicIdentifier()
	case doctypePublicIdentifierDoubleQuotedState:
		return t.stepDoctypePublicIdentifierQuoted('"')
	case doctypePublicIdentifierSingleQuotedState:
		return t.stepDoctypePublicIdentifierQuoted('\'')
	case afterDoctypePublicIdentifierState:
		return t.stepAfterDoctypePublicIdentifier()
	case betweenDoctypePublicAndSystemIdentifiersState:
		return t.stepBetweenDoctypePublicAndSystemIdentifiers()
	case afterDoctypeSystemKeywordState:
		return t.stepAfterDoctypeSystemKeyword()
	case beforeDoctypeSystemIdentifierState:
		return t.stepBeforeDoctypeSystemIdentifier()
	case doctypeSystemIdentifierDoubleQuotedState:
		return t.stepDoctypeSystemIdentifierQuoted('"')
	case doctypeSystemIdentifierSingleQuotedState:
		return t.stepDoctypeSystemIdentifierQuoted('\'')
	case afterDoctypeSystemIdentifierState:
		return t.stepAfterDoctypeSystemIdentifier()
	case bogusDoctypeState:
		return t.stepBogusDoctype()

	case cdataSectionState:
		return t.stepCdataSection()
	case cdataSectionBracketState:
		return t.stepCdataSectionBracket()
	case cdataSectionEndState:
		return t.stepCdataSectionEnd()

	case characterReferenceState:
		return t.stepCharacterReference()
	case numericCharacterReferenceState:
		return t.stepNumericCharacterReference()
	case hexadecimalCharacterReferenceStartState:
		return t.stepHexadecimalCharacterReferenceStart()
	case decimalCharacterReferenceStartState:
		return t.stepDecimalCharacterReferenceStart()
	case hexadecimalCharacterReferenceState:
		return t.stepHexadecimalCharacterReference()
	case decimalCharacterReferenceState:
		return t.stepDecimalCharacterReference()
	case numericCharacterReferenceEndState:
		return t.stepNumericCharacterReferenceEnd()
	}
	panic("tokenizer: unhandled state")
}

// consume reads the next codepoint and classifies end-of-input. Every
// per-state function starts by calling this; ok is false when the
// caller should return the given stepResult immediately.
func (t *Tokenizer) consume() (cp int32, res stepResult, ok bool) {
	cp = t.pre.Advance()
	if cp != preprocessor.EOF {
		return cp, stepContinue, true
	}
	if t.pre.EndOfChunkHit() {
		return 0, stepEndOfChunk, false
	}
	return 0, stepContinue, false // true EOF; caller handles explicitly
}

func (t *Tokenizer) loc() preprocessor.Location { return t.pre.GetLocation() }

// --- content states ---------------------------------------------------------

func (t *Tokenizer) stepData() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '&':
		t.returnState = dataState
		t.state = characterReferenceState
	case '<':
		t.state = tagOpenState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0, NullCharacters)
	default:
		t.emitChar(rune(cp), classifyChar(cp))
	}
	return stepContinue
}

func classifyChar(cp int32) CharacterKind {
	if isWhitespace(cp) {
		return WhitespaceCharacters
	}
	return NormalCharacters
}

func (t *Tokenizer) stepRcdata() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '&':
		t.returnState = rcdataState
		t.state = characterReferenceState
	case '<':
		t.state = rcdataLessThanSignState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
	default:
		t.emitChar(rune(cp), classifyChar(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepRawtext() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '<':
		t.state = rawtextLessThanSignState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
	default:
		t.emitChar(rune(cp), classifyChar(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepScriptData() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '<':
		t.state = scriptDataLessThanSignState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
	default:
		t.emitChar(rune(cp), classifyChar(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepPlaintext() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitEOF()
		return stepEOF
	}
	if cp == 0 {
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
		return stepContinue
	}
	t.emitChar(rune(cp), classifyChar(cp))
	return stepContinue
}

// --- tag open family ---------------------------------------------------------

func (t *Tokenizer) stepTagOpen() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFBeforeTagName, t.loc(), t.loc())
		t.emitChar('<', NormalCharacters)
		t.emitEOF()
		return stepEOF
	}
	switch {
	case cp == '!':
		t.state = markupDeclarationOpenState
	case cp == '/':
		t.state = endTagOpenState
	case isAsciiAlpha(cp):
		t.startTag(StartTagToken)
		t.pre.Retreat(1)
		t.state = tagNameState
	case cp == '?':
		t.emitError(ErrUnexpectedQuestionMarkInsteadOfTagName, t.loc(), t.loc())
		t.startComment()
		t.pre.Retreat(1)
		t.state = bogusCommentState
	default:
		t.emitError(ErrInvalidFirstCharacterOfTagName, t.loc(), t.loc())
		t.emitChar('<', NormalCharacters)
		t.pre.Retreat(1)
		t.state = dataState
	}
	return stepContinue
}

func isAsciiAlpha(cp int32) bool {
	return (cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z')
}

func (t *Tokenizer) stepEndTagOpen() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFBeforeTagName, t.loc(), t.loc())
		t.emitChar('<', NormalCharacters)
		t.emitChar('/', NormalCharacters)
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isAsciiAlpha(cp):
		t.startTag(EndTagToken)
		t.pre.Retreat(1)
		t.state = tagNameState
	case cp == '>':
		t.emitError(ErrMissingEndTagName, t.loc(), t.loc())
		t.state = dataState
	default:
		t.emitError(ErrInvalidFirstCharacterOfTagName, t.loc(), t.loc())
		t.startComment()
		t.pre.Retreat(1)
		t.state = bogusCommentState
	}
	return stepContinue
}

func (t *Tokenizer) stepTagName() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInTag, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		t.state = beforeAttributeNameState
	case cp == '/':
		t.state = selfClosingStartTagState
	case cp == '>':
		t.state = dataState
		t.emitCurrentTag(false)
	case isAsciiUpper(cp):
		t.appendTagName(toAsciiLower(cp))
	case cp == 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.appendTagName(0xFFFD)
	default:
		t.appendTagName(rune(cp))
	}
	return stepContinue
}

// --- RCDATA/RAWTEXT/script-data "<" and end-tag-open/name families --------
//
// These three families (RCDATA, RAWTEXT, plain script data) share an
// identical shape differing only in which state to return to; rather
// than tripling the code, the shared shape is parameterized.

func (t *Tokenizer) stepLessThanSignGeneric(endTagOpen, fallback state) stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		// True EOF: nothing was consumed. Emit the pending '<' and let
		// the fallback state observe EOF itself on the next step.
		t.emitChar('<', NormalCharacters)
		t.state = fallback
		return stepContinue
	}
	if cp == '/' {
		t.tempBuff = t.tempBuff[:0]
		t.state = endTagOpen
		return stepContinue
	}
	t.emitChar('<', NormalCharacters)
	t.pre.Retreat(1)
	t.state = fallback
	return stepContinue
}

func (t *Tokenizer) stepEndTagOpenGeneric(endTagName, fallback state) stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitChar('<', NormalCharacters)
		t.emitChar('/', NormalCharacters)
		t.state = fallback
		return stepContinue
	}
	if isAsciiAlpha(cp) {
		t.startTag(EndTagToken)
		t.pre.Retreat(1)
		t.state = endTagName
		return stepContinue
	}
	t.emitChar('<', NormalCharacters)
	t.emitChar('/', NormalCharacters)
	t.pre.Retreat(1)
	t.state = fallback
	return stepContinue
}

func (t *Tokenizer) stepEndTagNameGeneric(fallback state) stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitChar('<', NormalCharacters)
		t.emitChar('/', NormalCharacters)
		for _, r := range t.tempBuff {
			t.emitChar(r, NormalCharacters)
		}
		t.state = fallback
		t.currentToken = nil
		return stepContinue
	}
	if isWhitespace(cp) && t.appropriateEndTag() {
		t.state = beforeAttributeNameState
		return stepContinue
	}
	if cp == '/' && t.appropriateEndTag() {
		t.state = selfClosingStartTagState
		return stepContinue
	}
	if cp == '>' && t.appropriateEndTag() {
		t.emitCurrentTag(false)
		t.state = dataState
		return stepContinue
	}
	if isAsciiUpper(cp) {
		t.appendTagName(toAsciiLower(cp))
		t.tempBuff = append(t.tempBuff, rune(cp))
		return stepContinue
	}
	if isAsciiAlpha(cp) {
		t.appendTagName(rune(cp))
		t.tempBuff = append(t.tempBuff, rune(cp))
		return stepContinue
	}
	// Not a valid end tag name continuation and not (yet) appropriate:
	// flush "</" plus whatever was buffered as plain characters and
	// reconsume in the fallback raw state.
	t.emitChar('<', NormalCharacters)
	t.emitChar('/', NormalCharacters)
	for _, r := range t.tempBuff {
		t.emitChar(r, NormalCharacters)
	}
	t.pre.Retreat(1)
	t.state = fallback
	t.currentToken = nil
	return stepContinue
}

// --- script data escape states ----------------------------------------------

func (t *Tokenizer) stepScriptDataLessThanSign() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitChar('<', NormalCharacters)
		t.state = scriptDataState
		return stepContinue
	}
	switch cp {
	case '/':
		t.tempBuff = t.tempBuff[:0]
		t.state = scriptDataEndTagOpenState
	case '!':
		t.emitChar('<', NormalCharacters)
		t.emitChar('!', NormalCharacters)
		t.state = scriptDataEscapeStartState
	default:
		t.emitChar('<', NormalCharacters)
		t.pre.Retreat(1)
		t.state = scriptDataState
	}
	return stepContinue
}

func (t *Tokenizer) stepScriptDataEscapeStart() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = scriptDataState
		return stepContinue
	}
	if cp == '-' {
		t.emitChar('-', NormalCharacters)
		t.state = scriptDataEscapeStartDashState
		return stepContinue
	}
	t.pre.Retreat(1)
	t.state = scriptDataState
	return stepContinue
}

func (t *Tokenizer) stepScriptDataEscapeStartDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = scriptDataState
		return stepContinue
	}
	if cp == '-' {
		t.emitChar('-', NormalCharacters)
		t.state = scriptDataEscapedDashDashState
		return stepContinue
	}
	t.pre.Retreat(1)
	t.state = scriptDataState
	return stepContinue
}

func (t *Tokenizer) stepScriptDataEscaped() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInScriptHTMLCommentLikeText, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '-':
		t.emitChar('-', NormalCharacters)
		t.state = scriptDataEscapedDashState
	case '<':
		t.state = scriptDataEscapedLessThanSignState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
	default:
		t.emitChar(rune(cp), classifyChar(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepScriptDataEscapedDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInScriptHTMLCommentLikeText, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '-':
		t.emitChar('-', NormalCharacters)
		t.state = scriptDataEscapedDashDashState
	case '<':
		t.state = scriptDataEscapedLessThanSignState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
		t.state = scriptDataEscapedState
	default:
		t.emitChar(rune(cp), classifyChar(cp))
		t.state = scriptDataEscapedState
	}
	return stepContinue
}

func (t *Tokenizer) stepScriptDataEscapedDashDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInScriptHTMLCommentLikeText, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '-':
		t.emitChar('-', NormalCharacters)
	case '<':
		t.state = scriptDataEscapedLessThanSignState
	case '>':
		t.emitChar('>', NormalCharacters)
		t.state = scriptDataState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
		t.state = scriptDataEscapedState
	default:
		t.emitChar(rune(cp), classifyChar(cp))
		t.state = scriptDataEscapedState
	}
	return stepContinue
}

func (t *Tokenizer) stepScriptDataEscapedLessThanSign() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitChar('<', NormalCharacters)
		t.state = scriptDataEscapedState
		return stepContinue
	}
	if cp == '/' {
		t.tempBuff = t.tempBuff[:0]
		t.state = scriptDataEscapedEndTagOpenState
		return stepContinue
	}
	if isAsciiAlpha(cp) {
		t.tempBuff = t.tempBuff[:0]
		t.emitChar('<', NormalCharacters)
		t.pre.Retreat(1)
		t.state = scriptDataDoubleEscapeStartState
		return stepContinue
	}
	t.emitChar('<', NormalCharacters)
	t.pre.Retreat(1)
	t.state = scriptDataEscapedState
	return stepContinue
}

func (t *Tokenizer) stepScriptDataDoubleEscapeStart() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = scriptDataEscapedState
		return stepContinue
	}
	if isWhitespace(cp) || cp == '/' || cp == '>' {
		if tempBuffString(t.tempBuff) == "script" {
			t.state = scriptDataDoubleEscapedState
		} else {
			t.state = scriptDataEscapedState
		}
		t.emitChar(rune(cp), classifyChar(cp))
		return stepContinue
	}
	if isAsciiUpper(cp) {
		t.tempBuff = append(t.tempBuff, toAsciiLower(cp))
		t.emitChar(rune(cp), NormalCharacters)
		return stepContinue
	}
	if isAsciiAlpha(cp) {
		t.tempBuff = append(t.tempBuff, rune(cp))
		t.emitChar(rune(cp), NormalCharacters)
		return stepContinue
	}
	t.pre.Retreat(1)
	t.state = scriptDataEscapedState
	return stepContinue
}

func (t *Tokenizer) stepScriptDataDoubleEscaped() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInScriptHTMLCommentLikeText, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '-':
		t.emitChar('-', NormalCharacters)
		t.state = scriptDataDoubleEscapedDashState
	case '<':
		t.emitChar('<', NormalCharacters)
		t.state = scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
	default:
		t.emitChar(rune(cp), classifyChar(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepScriptDataDoubleEscapedDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInScriptHTMLCommentLikeText, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '-':
		t.emitChar('-', NormalCharacters)
		t.state = scriptDataDoubleEscapedDashDashState
	case '<':
		t.emitChar('<', NormalCharacters)
		t.state = scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
		t.state = scriptDataDoubleEscapedState
	default:
		t.emitChar(rune(cp), classifyChar(cp))
		t.state = scriptDataDoubleEscapedState
	}
	return stepContinue
}

func (t *Tokenizer) stepScriptDataDoubleEscapedDashDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInScriptHTMLCommentLikeText, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '-':
		t.emitChar('-', NormalCharacters)
	case '<':
		t.emitChar('<', NormalCharacters)
		t.state = scriptDataDoubleEscapedLessThanSignState
	case '>':
		t.emitChar('>', NormalCharacters)
		t.state = scriptDataState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.emitChar(0xFFFD, NormalCharacters)
		t.state = scriptDataDoubleEscapedState
	default:
		t.emitChar(rune(cp), classifyChar(cp))
		t.state = scriptDataDoubleEscapedState
	}
	return stepContinue
}

func (t *Tokenizer) stepScriptDataDoubleEscapedLessThanSign() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = scriptDataDoubleEscapedState
		return stepContinue
	}
	if cp == '/' {
		t.tempBuff = t.tempBuff[:0]
		t.emitChar('/', NormalCharacters)
		t.state = scriptDataDoubleEscapeEndState
		return stepContinue
	}
	t.pre.Retreat(1)
	t.state = scriptDataDoubleEscapedState
	return stepContinue
}

func (t *Tokenizer) stepScriptDataDoubleEscapeEnd() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = scriptDataDoubleEscapedState
		return stepContinue
	}
	if isWhitespace(cp) || cp == '/' || cp == '>' {
		if tempBuffString(t.tempBuff) == "script" {
			t.state = scriptDataEscapedState
		} else {
			t.state = scriptDataDoubleEscapedState
		}
		t.emitChar(rune(cp), classifyChar(cp))
		return stepContinue
	}
	if isAsciiUpper(cp) {
		t.tempBuff = append(t.tempBuff, toAsciiLower(cp))
		t.emitChar(rune(cp), NormalCharacters)
		return stepContinue
	}
	if isAsciiAlpha(cp) {
		t.tempBuff = append(t.tempBuff, rune(cp))
		t.emitChar(rune(cp), NormalCharacters)
		return stepContinue
	}
	t.pre.Retreat(1)
	t.state = scriptDataDoubleEscapedState
	return stepContinue
}

// --- attribute family --------------------------------------------------------

func (t *Tokenizer) stepBeforeAttributeName() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		return t.stepAfterAttributeNameEOF()
	}
	switch {
	case isWhitespace(cp):
		return stepContinue
	case cp == '/' || cp == '>':
		t.pre.Retreat(1)
		t.state = afterAttributeNameState
	case cp == '=':
		t.emitError(ErrUnexpectedEqualsSignBeforeAttrName, t.loc(), t.loc())
		t.startAttribute()
		t.appendAttrName('=')
		t.state = attributeNameState
	default:
		t.startAttribute()
		t.pre.Retreat(1)
		t.state = attributeNameState
	}
	return stepContinue
}

func (t *Tokenizer) stepAfterAttributeNameEOF() stepResult {
	t.emitError(ErrEOFInTag, t.loc(), t.loc())
	t.emitEOF()
	return stepEOF
}

func (t *Tokenizer) stepAttributeName() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.finishAttributeName()
		return t.stepAfterAttributeNameEOF()
	}
	switch {
	case isWhitespace(cp) || cp == '/' || cp == '>':
		t.finishAttributeName()
		t.pre.Retreat(1)
		t.state = afterAttributeNameState
	case cp == '=':
		t.finishAttributeName()
		t.state = beforeAttributeValueState
	case isAsciiUpper(cp):
		t.appendAttrName(toAsciiLower(cp))
	case cp == 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.appendAttrName(0xFFFD)
	case cp == '"' || cp == '\'' || cp == '<':
		t.emitError(ErrUnexpectedCharacterInAttributeName, t.loc(), t.loc())
		t.appendAttrName(rune(cp))
	default:
		t.appendAttrName(rune(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepAfterAttributeName() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		return t.stepAfterAttributeNameEOF()
	}
	switch {
	case isWhitespace(cp):
		return stepContinue
	case cp == '/':
		t.state = selfClosingStartTagState
	case cp == '=':
		t.state = beforeAttributeValueState
	case cp == '>':
		t.emitCurrentTag(false)
		t.state = dataState
	default:
		t.startAttribute()
		t.pre.Retreat(1)
		t.state = attributeNameState
	}
	return stepContinue
}

func (t *Tokenizer) stepBeforeAttributeValue() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrMissingAttributeValue, t.loc(), t.loc())
		t.emitCurrentTag(false)
		t.state = dataState
		return stepContinue
	}
	switch {
	case isWhitespace(cp):
		return stepContinue
	case cp == '"':
		t.state = attributeValueDoubleQuotedState
	case cp == '\'':
		t.state = attributeValueSingleQuotedState
	case cp == '>':
		t.emitError(ErrMissingAttributeValue, t.loc(), t.loc())
		t.emitCurrentTag(false)
		t.state = dataState
	default:
		t.pre.Retreat(1)
		t.state = attributeValueUnquotedState
	}
	return stepContinue
}

func (t *Tokenizer) stepAttributeValueQuoted(quote int32) stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInTag, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case quote:
		t.state = afterAttributeValueQuotedState
	case '&':
		t.returnState = t.state
		t.charRefReturnAttr = true
		t.state = characterReferenceState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.appendAttrValue(0xFFFD)
	default:
		t.appendAttrValue(rune(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepAttributeValueUnquoted() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInTag, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		t.state = beforeAttributeNameState
	case cp == '&':
		t.returnState = t.state
		t.charRefReturnAttr = true
		t.state = characterReferenceState
	case cp == '>':
		t.emitCurrentTag(false)
		t.state = dataState
	case cp == 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.appendAttrValue(0xFFFD)
	case cp == '"' || cp == '\'' || cp == '<' || cp == '=' || cp == '`':
		t.emitError(ErrUnexpectedCharacterInUnquotedAttrVal, t.loc(), t.loc())
		t.appendAttrValue(rune(cp))
	default:
		t.appendAttrValue(rune(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInTag, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		t.state = beforeAttributeNameState
	case cp == '/':
		t.state = selfClosingStartTagState
	case cp == '>':
		t.emitCurrentTag(false)
		t.state = dataState
	default:
		t.emitError(ErrMissingWhitespaceBetweenAttributes, t.loc(), t.loc())
		t.pre.Retreat(1)
		t.state = beforeAttributeNameState
	}
	return stepContinue
}

func (t *Tokenizer) stepSelfClosingStartTag() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInTag, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	if cp == '>' {
		t.emitCurrentTag(true)
		t.state = dataState
		return stepContinue
	}
	t.emitError(ErrUnexpectedSolidusInTag, t.loc(), t.loc())
	t.pre.Retreat(1)
	t.state = beforeAttributeNameState
	return stepContinue
}

// --- bogus comment / markup declaration open --------------------------------

func (t *Tokenizer) stepBogusComment() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitComment()
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '>':
		t.emitComment()
		t.state = dataState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.appendComment(0xFFFD)
	default:
		t.appendComment(rune(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepMarkupDeclarationOpen() stepResult {
	if t.pre.StartsWith("--", true) {
		t.pre.Advance()
		t.pre.Advance()
		t.startComment()
		t.state = commentStartState
		return stepContinue
	}
	if t.pre.EndOfChunkHit() {
		return stepEndOfChunk
	}
	if t.pre.StartsWith("DOCTYPE", false) {
		for i := 0; i < 7; i++ {
			t.pre.Advance()
		}
		t.state = doctypeState
		return stepContinue
	}
	if t.pre.EndOfChunkHit() {
		return stepEndOfChunk
	}
	if t.allowCDATA && t.pre.StartsWith("[CDATA[", true) {
		for i := 0; i < 7; i++ {
			t.pre.Advance()
		}
		t.state = cdataSectionState
		return stepContinue
	}
	if t.pre.EndOfChunkHit() {
		return stepEndOfChunk
	}
	if t.pre.StartsWith("[CDATA[", true) {
		for i := 0; i < 7; i++ {
			t.pre.Advance()
		}
		t.emitError(ErrCDATAInHTMLContent, t.loc(), t.loc())
		t.startComment()
		t.commentBuf = append(t.commentBuf, []rune("[CDATA[")...)
		t.state = bogusCommentState
		return stepContinue
	}
	if t.pre.EndOfChunkHit() {
		return stepEndOfChunk
	}
	t.emitError(ErrIncorrectlyOpenedComment, t.loc(), t.loc())
	t.startComment()
	t.state = bogusCommentState
	return stepContinue
}

// --- comment family ----------------------------------------------------------

func (t *Tokenizer) stepCommentStart() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = commentState
		return stepContinue
	}
	switch cp {
	case '-':
		t.state = commentStartDashState
	case '>':
		t.emitError(ErrAbruptClosingOfEmptyComment, t.loc(), t.loc())
		t.emitComment()
		t.state = dataState
	default:
		t.pre.Retreat(1)
		t.state = commentState
	}
	return stepContinue
}

func (t *Tokenizer) stepCommentStartDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInComment, t.loc(), t.loc())
		t.emitComment()
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '-':
		t.state = commentEndState
	case '>':
		t.emitError(ErrAbruptClosingOfEmptyComment, t.loc(), t.loc())
		t.emitComment()
		t.state = dataState
	default:
		t.appendComment('-')
		t.pre.Retreat(1)
		t.state = commentState
	}
	return stepContinue
}

func (t *Tokenizer) stepComment() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInComment, t.loc(), t.loc())
		t.emitComment()
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '<':
		t.appendComment('<')
		t.state = commentLessThanSignState
	case '-':
		t.state = commentEndDashState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.appendComment(0xFFFD)
	default:
		t.appendComment(rune(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepCommentLessThanSign() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = commentState
		return stepContinue
	}
	switch cp {
	case '!':
		t.appendComment('!')
		t.state = commentLessThanSignBangState
	case '<':
		t.appendComment('<')
	default:
		t.pre.Retreat(1)
		t.state = commentState
	}
	return stepContinue
}

func (t *Tokenizer) stepCommentLessThanSignBang() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = commentState
		return stepContinue
	}
	if cp == '-' {
		t.state = commentLessThanSignBangDashState
		return stepContinue
	}
	t.pre.Retreat(1)
	t.state = commentState
	return stepContinue
}

func (t *Tokenizer) stepCommentLessThanSignBangDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = commentEndDashState
		return stepContinue
	}
	if cp == '-' {
		t.state = commentLessThanSignBangDashDashState
		return stepContinue
	}
	t.pre.Retreat(1)
	t.state = commentEndDashState
	return stepContinue
}

func (t *Tokenizer) stepCommentLessThanSignBangDashDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.state = commentEndState
		return stepContinue
	}
	if cp == '>' {
		t.state = commentEndState
		return stepContinue
	}
	t.emitError(ErrNestedComment, t.loc(), t.loc())
	t.pre.Retreat(1)
	t.state = commentEndState
	return stepContinue
}

func (t *Tokenizer) stepCommentEndDash() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInComment, t.loc(), t.loc())
		t.emitComment()
		t.emitEOF()
		return stepEOF
	}
	if cp == '-' {
		t.state = commentEndState
		return stepContinue
	}
	t.appendComment('-')
	t.pre.Retreat(1)
	t.state = commentState
	return stepContinue
}

func (t *Tokenizer) stepCommentEnd() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInComment, t.loc(), t.loc())
		t.emitComment()
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '>':
		t.emitComment()
		t.state = dataState
	case '!':
		t.state = commentEndBangState
	case '-':
		t.appendComment('-')
	default:
		t.appendComment('-')
		t.appendComment('-')
		t.pre.Retreat(1)
		t.state = commentState
	}
	return stepContinue
}

func (t *Tokenizer) stepCommentEndBang() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInComment, t.loc(), t.loc())
		t.emitComment()
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '-':
		t.appendComment('-')
		t.appendComment('-')
		t.appendComment('!')
		t.state = commentEndDashState
	case '>':
		t.emitError(ErrIncorrectlyClosedComment, t.loc(), t.loc())
		t.emitComment()
		t.state = dataState
	default:
		t.appendComment('-')
		t.appendComment('-')
		t.appendComment('!')
		t.pre.Retreat(1)
		t.state = commentState
	}
	return stepContinue
}

// --- doctype family -----------------------------------------------------------

func (t *Tokenizer) stepDoctype() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.startDoctype()
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		t.state = beforeDoctypeNameState
	case cp == '>':
		t.pre.Retreat(1)
		t.state = beforeDoctypeNameState
	default:
		t.emitError(ErrMissingWhitespaceBeforeDoctypeName, t.loc(), t.loc())
		t.pre.Retreat(1)
		t.state = beforeDoctypeNameState
	}
	return stepContinue
}

func (t *Tokenizer) stepBeforeDoctypeName() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.startDoctype()
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		return stepContinue
	case isAsciiUpper(cp):
		t.startDoctype()
		t.doctypeName = append(t.doctypeName, toAsciiLower(cp))
		t.state = doctypeNameState
	case cp == 0:
		t.startDoctype()
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.doctypeName = append(t.doctypeName, 0xFFFD)
		t.state = doctypeNameState
	case cp == '>':
		t.startDoctype()
		t.emitError(ErrMissingDoctypeName, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		t.startDoctype()
		t.doctypeName = append(t.doctypeName, rune(cp))
		t.state = doctypeNameState
	}
	return stepContinue
}

func (t *Tokenizer) stepDoctypeName() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		t.state = afterDoctypeNameState
	case cp == '>':
		t.emitDoctype()
		t.state = dataState
	case isAsciiUpper(cp):
		t.doctypeName = append(t.doctypeName, toAsciiLower(cp))
	case cp == 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.doctypeName = append(t.doctypeName, 0xFFFD)
	default:
		t.doctypeName = append(t.doctypeName, rune(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepAfterDoctypeName() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	if isWhitespace(cp) {
		return stepContinue
	}
	if cp == '>' {
		t.emitDoctype()
		t.state = dataState
		return stepContinue
	}
	if t.pre.StartsWith("UBLIC", false) && (cp == 'P' || cp == 'p') {
		for i := 0; i < 5; i++ {
			t.pre.Advance()
		}
		t.state = afterDoctypePublicKeywordState
		return stepContinue
	}
	if t.pre.StartsWith("YSTEM", false) && (cp == 'S' || cp == 's') {
		for i := 0; i < 5; i++ {
			t.pre.Advance()
		}
		t.state = afterDoctypeSystemKeywordState
		return stepContinue
	}
	if t.pre.EndOfChunkHit() {
		// put cp back so the keyword check reruns once more input arrives
		t.pre.Retreat(1)
		return stepEndOfChunk
	}
	t.emitError(ErrInvalidFirstCharacterOfTagName, t.loc(), t.loc())
	t.currentToken.ForceQuirks = true
	t.pre.Retreat(1)
	t.state = bogusDoctypeState
	return stepContinue
}

func (t *Tokenizer) stepAfterDoctypePublicKeyword() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		t.state = beforeDoctypePublicIdentifierState
	case cp == '"':
		t.emitError(ErrMissingWhitespaceAfterDoctypePublic, t.loc(), t.loc())
		t.doctypePub = []rune{}
		t.state = doctypePublicIdentifierDoubleQuotedState
	case cp == '\'':
		t.emitError(ErrMissingWhitespaceAfterDoctypePublic, t.loc(), t.loc())
		t.doctypePub = []rune{}
		t.state = doctypePublicIdentifierSingleQuotedState
	case cp == '>':
		t.emitError(ErrMissingDoctypePublicIdentifier, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		t.emitError(ErrMissingQuoteBeforeDoctypePublicID, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.pre.Retreat(1)
		t.state = bogusDoctypeState
	}
	return stepContinue
}

func (t *Tokenizer) stepBeforeDoctypePublicIdentifier() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		return stepContinue
	case cp == '"':
		t.doctypePub = []rune{}
		t.state = doctypePublicIdentifierDoubleQuotedState
	case cp == '\'':
		t.doctypePub = []rune{}
		t.state = doctypePublicIdentifierSingleQuotedState
	case cp == '>':
		t.emitError(ErrMissingDoctypePublicIdentifier, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		t.emitError(ErrMissingQuoteBeforeDoctypePublicID, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.pre.Retreat(1)
		t.state = bogusDoctypeState
	}
	return stepContinue
}

func (t *Tokenizer) stepDoctypePublicIdentifierQuoted(quote int32) stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case cp == quote:
		t.state = afterDoctypePublicIdentifierState
	case cp == 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.doctypePub = append(t.doctypePub, 0xFFFD)
	case cp == '>':
		t.emitError(ErrAbruptDoctypePublicIdentifier, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		t.doctypePub = append(t.doctypePub, rune(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepAfterDoctypePublicIdentifier() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		t.state = betweenDoctypePublicAndSystemIdentifiersState
	case cp == '>':
		t.emitDoctype()
		t.state = dataState
	case cp == '"':
		t.emitError(ErrMissingWhitespaceBetweenDoctypePublicAndSystem, t.loc(), t.loc())
		t.doctypeSys = []rune{}
		t.state = doctypeSystemIdentifierDoubleQuotedState
	case cp == '\'':
		t.emitError(ErrMissingWhitespaceBetweenDoctypePublicAndSystem, t.loc(), t.loc())
		t.doctypeSys = []rune{}
		t.state = doctypeSystemIdentifierSingleQuotedState
	default:
		t.emitError(ErrMissingQuoteBeforeDoctypeSystemID, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.pre.Retreat(1)
		t.state = bogusDoctypeState
	}
	return stepContinue
}

func (t *Tokenizer) stepBetweenDoctypePublicAndSystemIdentifiers() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		return stepContinue
	case cp == '>':
		t.emitDoctype()
		t.state = dataState
	case cp == '"':
		t.doctypeSys = []rune{}
		t.state = doctypeSystemIdentifierDoubleQuotedState
	case cp == '\'':
		t.doctypeSys = []rune{}
		t.state = doctypeSystemIdentifierSingleQuotedState
	default:
		t.emitError(ErrMissingQuoteBeforeDoctypeSystemID, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.pre.Retreat(1)
		t.state = bogusDoctypeState
	}
	return stepContinue
}

func (t *Tokenizer) stepAfterDoctypeSystemKeyword() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		t.state = beforeDoctypeSystemIdentifierState
	case cp == '"':
		t.emitError(ErrMissingWhitespaceAfterDoctypeSystem, t.loc(), t.loc())
		t.doctypeSys = []rune{}
		t.state = doctypeSystemIdentifierDoubleQuotedState
	case cp == '\'':
		t.emitError(ErrMissingWhitespaceAfterDoctypeSystem, t.loc(), t.loc())
		t.doctypeSys = []rune{}
		t.state = doctypeSystemIdentifierSingleQuotedState
	case cp == '>':
		t.emitError(ErrMissingDoctypeSystemIdentifier, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		t.emitError(ErrMissingQuoteBeforeDoctypeSystemID, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.pre.Retreat(1)
		t.state = bogusDoctypeState
	}
	return stepContinue
}

func (t *Tokenizer) stepBeforeDoctypeSystemIdentifier() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		return stepContinue
	case cp == '"':
		t.doctypeSys = []rune{}
		t.state = doctypeSystemIdentifierDoubleQuotedState
	case cp == '\'':
		t.doctypeSys = []rune{}
		t.state = doctypeSystemIdentifierSingleQuotedState
	case cp == '>':
		t.emitError(ErrMissingDoctypeSystemIdentifier, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		t.emitError(ErrMissingQuoteBeforeDoctypeSystemID, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.pre.Retreat(1)
		t.state = bogusDoctypeState
	}
	return stepContinue
}

func (t *Tokenizer) stepDoctypeSystemIdentifierQuoted(quote int32) stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case cp == quote:
		t.state = afterDoctypeSystemIdentifierState
	case cp == 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
		t.doctypeSys = append(t.doctypeSys, 0xFFFD)
	case cp == '>':
		t.emitError(ErrAbruptDoctypeSystemIdentifier, t.loc(), t.loc())
		t.currentToken.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		t.doctypeSys = append(t.doctypeSys, rune(cp))
	}
	return stepContinue
}

func (t *Tokenizer) stepAfterDoctypeSystemIdentifier() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.currentToken.ForceQuirks = true
		t.emitError(ErrEOFInDoctype, t.loc(), t.loc())
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch {
	case isWhitespace(cp):
		return stepContinue
	case cp == '>':
		t.emitDoctype()
		t.state = dataState
	default:
		t.emitError(ErrInvalidFirstCharacterOfTagName, t.loc(), t.loc())
		t.pre.Retreat(1)
		t.state = bogusDoctypeState
	}
	return stepContinue
}

func (t *Tokenizer) stepBogusDoctype() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitDoctype()
		t.emitEOF()
		return stepEOF
	}
	switch cp {
	case '>':
		t.emitDoctype()
		t.state = dataState
	case 0:
		t.emitError(ErrUnexpectedNullCharacter, t.loc(), t.loc())
	default:
	}
	return stepContinue
}

// --- CDATA section -----------------------------------------------------------

func (t *Tokenizer) stepCdataSection() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrEOFInCDATA, t.loc(), t.loc())
		t.emitEOF()
		return stepEOF
	}
	if cp == ']' {
		t.state = cdataSectionBracketState
		return stepContinue
	}
	t.emitChar(rune(cp), classifyChar(cp))
	return stepContinue
}

func (t *Tokenizer) stepCdataSectionBracket() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitChar(']', NormalCharacters)
		t.state = cdataSectionState
		return stepContinue
	}
	if cp == ']' {
		t.state = cdataSectionEndState
		return stepContinue
	}
	t.emitChar(']', NormalCharacters)
	t.pre.Retreat(1)
	t.state = cdataSectionState
	return stepContinue
}

func (t *Tokenizer) stepCdataSectionEnd() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitChar(']', NormalCharacters)
		t.emitChar(']', NormalCharacters)
		t.state = cdataSectionState
		return stepContinue
	}
	switch cp {
	case ']':
		t.emitChar(']', NormalCharacters)
	case '>':
		t.state = dataState
	default:
		t.emitChar(']', NormalCharacters)
		t.emitChar(']', NormalCharacters)
		t.pre.Retreat(1)
		t.state = cdataSectionState
	}
	return stepContinue
}

// --- character reference family -----------------------------------------------

func (t *Tokenizer) stepCharacterReference() stepResult {
	t.charRefReturnAttr = isAttrState(t.returnState)
	runes, matched, suspend := t.consumeCharacterReference(t.charRefReturnAttr)
	if suspend {
		return stepEndOfChunk
	}
	if matched {
		for _, r := range runes {
			t.emitOrAppendReferenceResult(r)
		}
		t.state = t.returnState
		return stepContinue
	}
	cp := t.pre.Peek(1)
	if t.pre.EndOfChunkHit() {
		return stepEndOfChunk
	}
	if cp == '#' {
		t.pre.Advance()
		t.tempBuff = t.tempBuff[:0]
		t.state = numericCharacterReferenceState
		return stepContinue
	}
	t.emitOrAppendReferenceResult('&')
	t.state = t.returnState
	return stepContinue
}

func isAttrState(s state) bool {
	switch s {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

func (t *Tokenizer) emitOrAppendReferenceResult(r rune) {
	if t.charRefReturnAttr {
		t.appendAttrValue(r)
		return
	}
	t.emitChar(r, classifyChar(int32(r)))
}

func (t *Tokenizer) stepNumericCharacterReference() stepResult {
	t.charRefCode = 0
	cp := t.pre.Peek(1)
	if t.pre.EndOfChunkHit() {
		return stepEndOfChunk
	}
	if cp == 'x' || cp == 'X' {
		t.pre.Advance()
		t.tempBuff = append(t.tempBuff, rune(cp))
		t.state = hexadecimalCharacterReferenceStartState
		return stepContinue
	}
	t.state = decimalCharacterReferenceStartState
	return stepContinue
}

func isHexDigit(cp int32) bool {
	return (cp >= '0' && cp <= '9') || (cp >= 'a' && cp <= 'f') || (cp >= 'A' && cp <= 'F')
}

func hexDigitValue(cp int32) int32 {
	switch {
	case cp >= '0' && cp <= '9':
		return cp - '0'
	case cp >= 'a' && cp <= 'f':
		return cp - 'a' + 10
	default:
		return cp - 'A' + 10
	}
}

func (t *Tokenizer) stepHexadecimalCharacterReferenceStart() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrAbsenceOfDigitsInNumericCharRef, t.loc(), t.loc())
		t.flushCharRefFailure()
		t.state = t.returnState
		return stepContinue
	}
	if isHexDigit(cp) {
		t.pre.Retreat(1)
		t.state = hexadecimalCharacterReferenceState
		return stepContinue
	}
	t.emitError(ErrAbsenceOfDigitsInNumericCharRef, t.loc(), t.loc())
	t.flushCharRefFailure()
	t.pre.Retreat(1)
	t.state = t.returnState
	return stepContinue
}

func (t *Tokenizer) stepDecimalCharacterReferenceStart() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		t.emitError(ErrAbsenceOfDigitsInNumericCharRef, t.loc(), t.loc())
		t.flushCharRefFailure()
		t.state = t.returnState
		return stepContinue
	}
	if cp >= '0' && cp <= '9' {
		t.pre.Retreat(1)
		t.state = decimalCharacterReferenceState
		return stepContinue
	}
	t.emitError(ErrAbsenceOfDigitsInNumericCharRef, t.loc(), t.loc())
	t.flushCharRefFailure()
	t.pre.Retreat(1)
	t.state = t.returnState
	return stepContinue
}

// flushCharRefFailure re-emits "&#" (plus any 'x'/'X' already consumed) as
// literal characters when a numeric reference turns out to have no
// digits, per the HTML5 algorithm's "flush code points consumed as a
// character reference" step.
func (t *Tokenizer) flushCharRefFailure() {
	t.emitOrAppendReferenceResult('&')
	t.emitOrAppendReferenceResult('#')
	for _, r := range t.tempBuff {
		t.emitOrAppendReferenceResult(r)
	}
}

func (t *Tokenizer) stepHexadecimalCharacterReference() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		return t.numericCharacterReferenceEOF()
	}
	switch {
	case isHexDigit(cp):
		t.charRefCode = t.charRefCode*16 + hexDigitValue(cp)
	case cp == ';':
		t.state = numericCharacterReferenceEndState
	default:
		t.pre.Retreat(1)
		t.state = numericCharacterReferenceEndState
	}
	return stepContinue
}

func (t *Tokenizer) stepDecimalCharacterReference() stepResult {
	cp, res, ok := t.consume()
	if !ok {
		if res == stepEndOfChunk {
			return res
		}
		return t.numericCharacterReferenceEOF()
	}
	switch {
	case cp >= '0' && cp <= '9':
		t.charRefCode = t.charRefCode*10 + (cp - '0')
	case cp == ';':
		t.state = numericCharacterReferenceEndState
	default:
		t.pre.Retreat(1)
		t.state = numericCharacterReferenceEndState
	}
	return stepContinue
}

func (t *Tokenizer) numericCharacterReferenceEOF() stepResult {
	t.emitError(ErrEOFInTag, t.loc(), t.loc())
	t.applyNumericCharacterReference()
	t.state = t.returnState
	t.emitEOF()
	return stepEOF
}

func (t *Tokenizer) stepNumericCharacterReferenceEnd() stepResult {
	t.applyNumericCharacterReference()
	t.state = t.returnState
	return stepContinue
}

// applyNumericCharacterReference implements the end state's substitution
// table and error checks, per spec.md §4.2.
func (t *Tokenizer) applyNumericCharacterReference() {
	code := t.charRefCode
	loc := t.loc()
	switch {
	case code == 0:
		t.emitError(ErrNullCharacterReference, loc, loc)
		code = 0xFFFD
	case code > 0x10FFFF:
		t.emitError(ErrCharacterReferenceOutsideUnicodeRange, loc, loc)
		code = 0xFFFD
	case isSurrogateCodepoint(code):
		t.emitError(ErrSurrogateCharacterReference, loc, loc)
		code = 0xFFFD
	case isNoncharacter(code):
		t.emitError(ErrNoncharacterCharacterReference, loc, loc)
	case code == 0x0D || isControlOtherThanAsciiWhitespace(code):
		t.emitError(ErrControlCharacterReference, loc, loc)
		if sub, ok := controlCharacterReferenceSubstitutions[code]; ok {
			code = int32(sub)
		}
	}
	t.emitOrAppendReferenceResult(rune(code))
}
