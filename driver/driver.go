// Package driver wires a tokenizer.Tokenizer to a tokenizer.Sink and adds
// the one piece of coordination the core tokenizer deliberately leaves
// out (spec.md §7): suspending around a <script> element so a host can
// run the script, then resuming with any document.write output spliced
// in at the point execution paused.
package driver

import (
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"

	"github.com/TheRakeshPurohit/parse5/preprocessor"
	"github.com/TheRakeshPurohit/parse5/tokenizer"
)

// Driver sits between a Tokenizer and the caller's real Sink. It
// forwards every callback through unchanged, but watches start/end tags
// for "script" so it can switch the tokenizer into script-data mode on
// the start tag and request a pause once the matching end tag has been
// tokenized — after the full element, not before it, so the tokenizer
// has already reset to dataState by the time the host regains control
// (spec.md §7).
type Driver struct {
	tok    *tokenizer.Tokenizer
	sink   tokenizer.Sink
	log    logrus.FieldLogger
	id     uuid.UUID

	paused        bool
	scriptDepth   int
	foreignStack  []string
	pendingWrites []string
}

// New builds a Driver around a freshly constructed Tokenizer, wiring the
// Driver itself in as the Tokenizer's Sink so OnStartTag/OnEndTag can be
// intercepted. sink receives every callback the Driver forwards.
func New(pre *preprocessor.Preprocessor, sink tokenizer.Sink, onParseError func(tokenizer.ParserError), log logrus.FieldLogger) *Driver {
	id, err := uuid.NewV4()
	if err != nil {
		// uuid.NewV4 only fails if the system CSPRNG is broken; there is
		// nothing a caller could do differently with the error, and a
		// nil/zero id degrades to a less useful log field, not a crash.
		id = uuid.Nil
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("driver_id", id.String())

	d := &Driver{sink: sink, log: log, id: id}
	d.tok = tokenizer.New(pre, tokenizer.Options{Sink: d, OnParseError: onParseError})
	return d
}

// Tokenizer exposes the underlying Tokenizer for callers that need to
// feed it chunks directly (Write is also available via the Driver).
func (d *Driver) Tokenizer() *tokenizer.Tokenizer { return d.tok }

// ID returns the correlation id this driver logs under.
func (d *Driver) ID() uuid.UUID { return d.id }

// Paused reports whether the driver is currently suspended for script
// execution.
func (d *Driver) Paused() bool { return d.paused }

// Write feeds another chunk of source HTML to the preprocessor. isLast
// marks the final chunk of the whole stream (spec.md §2).
func (d *Driver) Write(chunk string, isLast bool) {
	d.tok.Write(chunk, isLast)
}

// InjectWrite queues a document.write-style string for insertion at the
// point parsing suspended. It is only legal while paused; injected
// content does not take effect until Resume is called. Multiple calls
// before Resume accumulate in call order.
func (d *Driver) InjectWrite(html string) error {
	if !d.paused {
		return ErrNotPaused
	}
	d.pendingWrites = append(d.pendingWrites, html)
	d.log.WithField("len", len(html)).Debug("driver: queued document.write")
	return nil
}

// Resume splices any queued InjectWrite content back into the stream
// and lets tokenization continue. InsertHtmlAtCurrentPos always splices
// immediately after the tokenizer's cursor, which does not move while
// paused, so queuing writes A, B, C (in that call order) and inserting
// them in the same order would leave C directly after the cursor and A
// furthest from it — the reverse of the document order document.write
// is supposed to produce. Inserting in reverse call order (C, B, A)
// cancels that reversal: each insertion lands immediately after the
// cursor and pushes the previous one forward, so the buffer reads A,
// B, C moving away from the cursor, matching call order.
func (d *Driver) Resume() error {
	if !d.paused {
		return ErrAlreadyResumed
	}
	for i := len(d.pendingWrites) - 1; i >= 0; i-- {
		d.tok.InsertHtmlAtCurrentPos(d.pendingWrites[i])
	}
	d.log.WithField("writes", len(d.pendingWrites)).Debug("driver: resuming after script")
	d.pendingWrites = d.pendingWrites[:0]
	d.paused = false
	return nil
}

// Run drives the tokenizer over whatever input is currently buffered,
// stopping on end-of-chunk, true EOF, or a script pause.
func (d *Driver) Run() tokenizer.RunResult {
	res := d.tok.RunParsingLoopForCurrentChunk()
	switch res {
	case tokenizer.RunEndOfChunk:
		d.log.Debug("driver: suspended at end of chunk")
	case tokenizer.RunEOF:
		d.log.Debug("driver: reached end of stream")
	case tokenizer.RunPaused:
		d.log.Debug("driver: suspended for script execution")
	}
	return res
}

// --- tokenizer.Sink, standing in for a tree builder ---
//
// These two callbacks play the part spec.md §4.2/§4.3 assigns to a tree
// builder: switching tokenization mode on the handful of elements that
// need it (StateForSpecialElement), tracking foreign (SVG/MathML)
// content (InForeignNode/AllowCDATA), and pausing after a <script>
// element specifically (IsScriptElement) rather than on every special
// element.

func (d *Driver) OnStartTag(t *tokenizer.Token) {
	d.sink.OnStartTag(t)

	if state, ok := tokenizer.StateForSpecialElement(t.Name); ok {
		d.tok.SetState(state)
		if tokenizer.IsScriptElement(t.Name) {
			d.scriptDepth++
		}
	}

	if tokenizer.IsForeignBoundaryElement(t.Name) {
		d.foreignStack = append(d.foreignStack, t.Name)
		d.tok.InForeignNode(true)
		d.tok.AllowCDATA(true)
	}
}

func (d *Driver) OnEndTag(t *tokenizer.Token) {
	d.sink.OnEndTag(t)

	if tokenizer.IsScriptElement(t.Name) && d.scriptDepth > 0 && d.tok.LastStartTagName() == t.Name {
		d.scriptDepth--
		d.paused = true
		d.log.Debug("driver: pausing after </script>")
		d.tok.Pause()
	}

	if n := len(d.foreignStack); n > 0 && d.foreignStack[n-1] == t.Name {
		d.foreignStack = d.foreignStack[:n-1]
		if len(d.foreignStack) == 0 && d.tok.IsInForeignNode() {
			d.tok.InForeignNode(false)
			d.tok.AllowCDATA(false)
		}
	}
}

func (d *Driver) OnCharacter(t *tokenizer.Token)          { d.sink.OnCharacter(t) }
func (d *Driver) OnNullCharacter(t *tokenizer.Token)      { d.sink.OnNullCharacter(t) }
func (d *Driver) OnWhitespaceCharacter(t *tokenizer.Token) { d.sink.OnWhitespaceCharacter(t) }
func (d *Driver) OnComment(t *tokenizer.Token)            { d.sink.OnComment(t) }
func (d *Driver) OnDoctype(t *tokenizer.Token)            { d.sink.OnDoctype(t) }
func (d *Driver) OnEOF(t *tokenizer.Token)                { d.sink.OnEOF(t) }

var _ tokenizer.Sink = (*Driver)(nil)
