package preprocessor

import "fmt"

// ParserError is a point-located diagnostic produced directly by the
// Preprocessor (currently only surrogateInInputStream). It is the
// preprocessor-layer equivalent of sqlcode.PreprocessorError, repurposed
// from SQL-schema preprocessing to HTML input preprocessing and extended
// with an Offset since the tokenizer's location model needs one.
type ParserError struct {
	Code string
	Location
}

func (e ParserError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Col, e.Code)
}

type dedupKey struct {
	code   string
	offset int
}

// getErrorLocked builds a ParserError at the current cursor position,
// deduplicating by (code, offset) per spec: advance/retreat thrashing at
// the same offset must not re-report the same error twice.
func (p *Preprocessor) getErrorLocked(code string) (ParserError, bool) {
	key := dedupKey{code, p.Offset()}
	if p.reportedErrors == nil {
		p.reportedErrors = make(map[dedupKey]struct{})
	}
	if _, seen := p.reportedErrors[key]; seen {
		return ParserError{}, false
	}
	p.reportedErrors[key] = struct{}{}
	return p.GetError(code), true
}

// GetError builds a ParserError for code at the current cursor position,
// without deduplication. Exported so the tokenizer can build its own
// richer ParserError (which carries a start/end range) from the same
// underlying location data.
func (p *Preprocessor) GetError(code string) ParserError {
	return ParserError{Code: code, Location: p.GetLocation()}
}
