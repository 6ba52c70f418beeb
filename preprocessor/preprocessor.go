package preprocessor

import "unicode/utf16"

const (
	defaultWaterline = 65536

	cr = 0x000D
	lf = 0x000A
)

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

// Preprocessor is the streaming input layer described in spec.md §4.1: it
// owns a growing code-unit buffer, the cursor into it, and the line/col/
// offset bookkeeping the tokenizer's Location values are derived from.
//
// Like sqlparser.Scanner it exposes a single cursor with Start()/Stop()
// style position queries, but unlike Scanner (which only ever scans a
// fully buffered string) it supports appending further chunks after the
// cursor has already advanced, retreating across gaps, and truncating a
// already-consumed prefix.
type Preprocessor struct {
	Source FileRef

	html []uint16
	pos  int // -1 means "before first character"

	lineStartPos int
	line         int

	gapStack   []int
	lastGapPos int

	droppedBufferSize int

	lastChunkWritten bool
	endOfChunkHit    bool

	bufferWaterline int
	skipNextNewLine bool
	afterNewLine    bool

	reportedErrors map[dedupKey]struct{}

	// OnError, if set, is invoked for diagnostics raised directly by the
	// Preprocessor (currently only surrogateInInputStream). The tokenizer
	// wires this to its own onParseError during construction.
	OnError func(ParserError)
}

// New creates a Preprocessor with no data yet written. source is used only
// for error messages.
func New(source FileRef) *Preprocessor {
	return &Preprocessor{
		Source:          source,
		pos:             -1,
		line:            1,
		lastGapPos:      -2,
		bufferWaterline: defaultWaterline,
	}
}

// Write appends chunk to the input, as UTF-16 code units. isLast marks the
// end of the stream: once set, a subsequent Advance past the buffer end
// returns true EOF instead of setting EndOfChunkHit.
func (p *Preprocessor) Write(chunk string, isLast bool) {
	p.html = append(p.html, utf16.Encode([]rune(chunk))...)
	p.endOfChunkHit = false
	if isLast {
		p.lastChunkWritten = true
	}
}

// InsertHTMLAtCurrentPos splices chunk into the buffer immediately after
// the cursor. Used for document.write-style reentrant injection; legal
// only while the tokenizer is suspended (enforced by the driver, not
// here).
func (p *Preprocessor) InsertHTMLAtCurrentPos(chunk string) {
	units := utf16.Encode([]rune(chunk))
	insertAt := p.pos + 1
	merged := make([]uint16, 0, len(p.html)+len(units))
	merged = append(merged, p.html[:insertAt]...)
	merged = append(merged, units...)
	merged = append(merged, p.html[insertAt:]...)
	p.html = merged
	p.endOfChunkHit = false
}

// EndOfChunkHit reports whether the last Advance/Peek/StartsWith call
// could not be satisfied because the current chunk was exhausted (as
// opposed to the stream having genuinely ended).
func (p *Preprocessor) EndOfChunkHit() bool { return p.endOfChunkHit }

// LastChunkWritten reports whether the producer has signaled end of
// stream via Write(_, true).
func (p *Preprocessor) LastChunkWritten() bool { return p.lastChunkWritten }

// Offset returns the UTF-16 code-unit distance from the start of the
// stream, including any prefix already discarded by DropParsedChunk.
func (p *Preprocessor) Offset() int { return p.droppedBufferSize + p.pos }

func (p *Preprocessor) col() int {
	c := p.pos - p.lineStartPos
	if p.lastGapPos == p.pos {
		c++
	}
	return c
}

// GetLocation returns the line/col/offset of the cursor's current
// position (the codepoint most recently returned by Advance).
func (p *Preprocessor) GetLocation() Location {
	return Location{Source: p.Source, Line: p.line, Col: p.col(), Offset: p.Offset()}
}

func (p *Preprocessor) reportSurrogateError() {
	if err, ok := p.getErrorLocked("surrogateInInputStream"); ok && p.OnError != nil {
		p.OnError(err)
	}
}

// Advance moves the cursor forward by one character, applying CR->LF
// normalization, CRLF collapsing, and surrogate-pair combination, and
// returns the resulting codepoint. It returns EOF both when the stream
// has truly ended (LastChunkWritten true) and when the current chunk is
// merely exhausted (EndOfChunkHit becomes true in that case; the cursor
// is left unmoved so a later Advance resumes from the same spot once more
// data arrives).
func (p *Preprocessor) Advance() int32 {
	for {
		next := p.pos + 1
		if next >= len(p.html) {
			if !p.lastChunkWritten {
				p.endOfChunkHit = true
				return EOF
			}
			if next == len(p.html) {
				p.pos = next
			}
			return EOF
		}
		p.pos = next

		u := p.html[p.pos]
		cp := int32(u)

		if isHighSurrogate(u) && p.pos+1 < len(p.html) && isLowSurrogate(p.html[p.pos+1]) {
			low := p.html[p.pos+1]
			cp = 0x10000 + (int32(u)-0xD800)*0x400 + (int32(low) - 0xDC00)
			p.gapStack = append(p.gapStack, p.pos+1)
			p.lastGapPos = p.pos + 1
			p.pos++
		} else if isHighSurrogate(u) || isLowSurrogate(u) {
			p.reportSurrogateError()
		}

		if cp == cr {
			cp = lf
			p.skipNextNewLine = true
		} else if cp == lf && p.skipNextNewLine {
			p.skipNextNewLine = false
			p.gapStack = append(p.gapStack, p.pos)
			p.lastGapPos = p.pos
			continue
		} else {
			p.skipNextNewLine = false
		}

		// A newline's line-number bump is applied lazily, on the next
		// returned character rather than on the newline itself: the
		// newline is the last character of the line it terminates
		// (spec.md scenario 4 — "b", "c", "d" start lines 2/3/4, while
		// the newline that precedes each is still reported on the
		// earlier line).
		if p.afterNewLine {
			p.line++
			p.lineStartPos = p.pos
			p.afterNewLine = false
		}
		if cp == lf {
			p.afterNewLine = true
		}

		return cp
	}
}

// Retreat moves the cursor back by n characters, unwinding gapStack so
// that subsequent Offset/GetLocation calls remain correct: a gap position
// the cursor previously stepped over costs one additional decrement, per
// spec.md's retreat round-trip invariant.
func (p *Preprocessor) Retreat(n int) {
	for ; n > 0; n-- {
		leftLineStart := p.pos == p.lineStartPos && p.line > 1
		p.pos--
		if top := len(p.gapStack) - 1; top >= 0 && (p.gapStack[top] == p.pos+1 || (p.gapStack[top] == p.pos && p.html[p.pos] == lf)) {
			p.gapStack = p.gapStack[:top]
			p.pos--
		}
		if len(p.gapStack) > 0 {
			p.lastGapPos = p.gapStack[len(p.gapStack)-1]
		} else {
			p.lastGapPos = -2
		}
		if leftLineStart {
			// back onto the newline that ended the previous line
			p.line--
			for p.lineStartPos = p.pos; p.lineStartPos > 0 && p.html[p.lineStartPos-1] != lf && p.html[p.lineStartPos-1] != cr; p.lineStartPos-- {
			}
		}
	}
	if p.pos < len(p.html) {
		p.endOfChunkHit = false
	}
	// Re-arm the lazy line bump and CRLF fusing for the character now
	// under the cursor, as Advance left them when it returned it.
	var under uint16
	if p.pos >= 0 && p.pos < len(p.html) {
		under = p.html[p.pos]
	}
	p.afterNewLine = under == lf || under == cr
	p.skipNextNewLine = under == cr
}

// Peek looks ahead k characters (1-based: Peek(1) is the next character
// Advance would return) without moving the cursor. It does not combine
// surrogate pairs or collapse CRLF — it is meant for single-code-unit
// lookahead used by startsWith-style matching.
func (p *Preprocessor) Peek(k int) int32 {
	idx := p.pos + k
	if idx < 0 {
		return EOF
	}
	if idx >= len(p.html) {
		if !p.lastChunkWritten {
			p.endOfChunkHit = true
		}
		return EOF
	}
	return int32(p.html[idx])
}

// StartsWith reports whether the remaining buffer (from the character
// after the cursor) begins with pattern. If the buffer is shorter than
// pattern and the stream has not ended, it sets EndOfChunkHit and returns
// false rather than guessing.
func (p *Preprocessor) StartsWith(pattern string, caseSensitive bool) bool {
	units := utf16.Encode([]rune(pattern))
	if p.pos+1+len(units) > len(p.html) {
		if !p.lastChunkWritten {
			p.endOfChunkHit = true
		}
		return false
	}
	for i, want := range units {
		got := p.html[p.pos+1+i]
		if got == want {
			continue
		}
		if !caseSensitive && toLowerUnit(got) == toLowerUnit(want) {
			continue
		}
		return false
	}
	return true
}

func toLowerUnit(u uint16) uint16 {
	if u >= 'A' && u <= 'Z' {
		return u + 0x20
	}
	return u
}

// DropParsedChunk truncates html[0:pos] once pos exceeds bufferWaterline,
// accounting the dropped length into droppedBufferSize so Offset stays
// correct. Only safe to call when no in-progress token references the
// dropped range; nothing here checks that, and the tokenizer never calls
// it, so a buffer read through a Tokenizer is not compacted.
func (p *Preprocessor) DropParsedChunk() {
	if p.pos <= p.bufferWaterline {
		return
	}
	dropped := p.pos
	p.html = append([]uint16(nil), p.html[dropped:]...)
	p.droppedBufferSize += dropped
	p.lineStartPos -= dropped
	// Gaps recorded before the drop point can never be retreated past
	// again (retreat cannot cross the dropped boundary), so they are
	// simply forgotten rather than renumbered.
	p.gapStack = nil
	p.lastGapPos = -2
	p.pos = 0
}
