package tokenizer

import (
	"fmt"
	"strings"

	"github.com/TheRakeshPurohit/parse5/preprocessor"
)

// ParseErrorCode enumerates the HTML5 tokenization parse-error catalog
// named in spec.md §6. A plain string type (rather than an int enum) —
// unlike TokenKind, these are never dispatched on in a switch, only
// formatted and compared, so a string constant is simpler and also
// self-describing in logs, matching how sqlcode.PreprocessorError simply
// carries a free-form Message rather than a coded enum.
type ParseErrorCode string

const (
	ErrUnexpectedNullCharacter              ParseErrorCode = "unexpectedNullCharacter"
	ErrInvalidFirstCharacterOfTagName       ParseErrorCode = "invalidFirstCharacterOfTagName"
	ErrMissingEndTagName                    ParseErrorCode = "missingEndTagName"
	ErrEOFBeforeTagName                     ParseErrorCode = "eofBeforeTagName"
	ErrEOFInTag                             ParseErrorCode = "eofInTag"
	ErrEOFInScriptHTMLCommentLikeText       ParseErrorCode = "eofInScriptHtmlCommentLikeText"
	ErrEOFInComment                         ParseErrorCode = "eofInComment"
	ErrEOFInDoctype                         ParseErrorCode = "eofInDoctype"
	ErrEOFInCDATA                           ParseErrorCode = "eofInCdata"
	ErrAbruptClosingOfEmptyComment          ParseErrorCode = "abruptClosingOfEmptyComment"
	ErrAbruptDoctypePublicIdentifier        ParseErrorCode = "abruptDoctypePublicIdentifier"
	ErrAbruptDoctypeSystemIdentifier        ParseErrorCode = "abruptDoctypeSystemIdentifier"
	ErrNestedComment                        ParseErrorCode = "nestedComment"
	ErrIncorrectlyOpenedComment             ParseErrorCode = "incorrectlyOpenedComment"
	ErrIncorrectlyClosedComment             ParseErrorCode = "incorrectlyClosedComment"
	ErrCDATAInHTMLContent                   ParseErrorCode = "cdataInHtmlContent"
	ErrDuplicateAttribute                   ParseErrorCode = "duplicateAttribute"
	ErrUnexpectedSolidusInTag               ParseErrorCode = "unexpectedSolidusInTag"
	ErrUnexpectedEqualsSignBeforeAttrName   ParseErrorCode = "unexpectedEqualsSignBeforeAttributeName"
	ErrMissingWhitespaceBetweenAttributes   ParseErrorCode = "missingWhitespaceBetweenAttributes"
	ErrMissingAttributeValue                ParseErrorCode = "missingAttributeValue"
	ErrUnexpectedCharacterInAttributeName   ParseErrorCode = "unexpectedCharacterInAttributeName"
	ErrUnexpectedCharacterInUnquotedAttrVal ParseErrorCode = "unexpectedCharacterInUnquotedAttributeValue"
	ErrMissingWhitespaceAfterDoctypePublic  ParseErrorCode = "missingWhitespaceAfterDoctypePublicKeyword"
	ErrMissingWhitespaceAfterDoctypeSystem  ParseErrorCode = "missingWhitespaceAfterDoctypeSystemKeyword"
	ErrMissingWhitespaceBetweenDoctypePublicAndSystem ParseErrorCode = "missingWhitespaceBetweenDoctypePublicAndSystemIdentifiers"
	ErrMissingWhitespaceBeforeDoctypeName   ParseErrorCode = "missingWhitespaceBeforeDoctypeName"
	ErrMissingDoctypeName                   ParseErrorCode = "missingDoctypeName"
	ErrMissingDoctypePublicIdentifier       ParseErrorCode = "missingDoctypePublicIdentifier"
	ErrMissingDoctypeSystemIdentifier       ParseErrorCode = "missingDoctypeSystemIdentifier"
	ErrMissingQuoteBeforeDoctypePublicID    ParseErrorCode = "missingQuoteBeforeDoctypePublicIdentifier"
	ErrMissingQuoteBeforeDoctypeSystemID    ParseErrorCode = "missingQuoteBeforeDoctypeSystemIdentifier"
	ErrUnexpectedQuestionMarkInsteadOfTagName ParseErrorCode = "unexpectedQuestionMarkInsteadOfTagName"
	ErrEndTagWithAttributes                 ParseErrorCode = "endTagWithAttributes"
	ErrEndTagWithTrailingSolidus            ParseErrorCode = "endTagWithTrailingSolidus"
	ErrUnknownNamedCharacterReference       ParseErrorCode = "unknownNamedCharacterReference"
	ErrAbsenceOfDigitsInNumericCharRef      ParseErrorCode = "absenceOfDigitsInNumericCharacterReference"
	ErrMissingSemicolonAfterCharacterRef    ParseErrorCode = "missingSemicolonAfterCharacterReference"
	ErrCharacterReferenceOutsideUnicodeRange ParseErrorCode = "characterReferenceOutsideUnicodeRange"
	ErrSurrogateCharacterReference          ParseErrorCode = "surrogateCharacterReference"
	ErrNoncharacterCharacterReference       ParseErrorCode = "noncharacterCharacterReference"
	ErrControlCharacterReference            ParseErrorCode = "controlCharacterReference"
	ErrNullCharacterReference                ParseErrorCode = "nullCharacterReference"
	ErrSurrogateInInputStream                ParseErrorCode = "surrogateInInputStream"
	ErrControlCharacterInInputStream         ParseErrorCode = "controlCharacterInInputStream"
	ErrNoncharacterInInputStream              ParseErrorCode = "noncharacterInInputStream"
)

// ParserError is the range-located diagnostic delivered to onParseError,
// per spec.md §6. Grounded on sqlcode.SQLCodeParseErrors's element shape
// (Pos+Message in error.go), expanded to a start/end range and an Offset
// pair since spec.md's location model needs both line/col and UTF-16
// offsets.
type ParserError struct {
	Code                           ParseErrorCode
	StartLine, EndLine             int
	StartCol, EndCol               int
	StartOffset, EndOffset         int
}

func (e ParserError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.StartLine, e.StartCol, e.Code)
}

func newParserError(code ParseErrorCode, start, end preprocessor.Location) ParserError {
	return ParserError{
		Code:        code,
		StartLine:   start.Line,
		StartCol:    start.Col,
		StartOffset: start.Offset,
		EndLine:     end.Line,
		EndCol:      end.Col,
		EndOffset:   end.Offset,
	}
}

// ParseErrors aggregates every error observed in a run, with a
// multi-line Error() — grounded verbatim on sqlcode.SQLCodeParseErrors
// (error.go), repurposed from the T-SQL parse-error catalog to the HTML5
// one.
type ParseErrors struct {
	Errors []ParserError
}

func (e ParseErrors) Error() string {
	var msg strings.Builder
	msg.WriteString("html5 tokenization errors:\n\n")
	for _, err := range e.Errors {
		fmt.Fprintf(&msg, "%d:%d: %s\n", err.StartLine, err.StartCol, err.Code)
	}
	return msg.String()
}
