package mathexpr

import "strconv"

// CharError is an error indicating a character that cannot start a token. It
// implements InputError.
type CharError struct {
	// Col is the byte column of the character.
	Col int
	// Char is the character that was not understood.
	Char rune
}

func (err *CharError) Error() string {
	return errpos(err.Col, "unexpected character "+strconv.QuoteRune(err.Char))
}

func (err *CharError) Pos() int {
	return err.Col
}

// NumberError is an error indicating a run of digits and decimal points that
// is not a number, e.g. 1.2.3. It implements InputError.
type NumberError struct {
	// Col is the position of the start of the number.
	Col int
	// Text is the scanned text with separators removed.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number format "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

// GrammarErrorKind describes what was wrong with a token sequence.
type GrammarErrorKind int8

const (
	// ErrEmpty is an expression with no tokens.
	ErrEmpty GrammarErrorKind = iota + 1
	// ErrNumberAfterNumber is two adjacent numbers.
	ErrNumberAfterNumber
	// ErrOperatorAfterOperator is two adjacent operators.
	ErrOperatorAfterOperator
	// ErrOperatorAfterOpen is an operator other than - right after (.
	ErrOperatorAfterOpen
	// ErrLeadingOperator is * or / at the very start.
	ErrLeadingOperator
	// ErrCloseAfterOperator is ) right after an operator.
	ErrCloseAfterOperator
	// ErrEmptyGroup is ().
	ErrEmptyGroup
	// ErrUnmatchedClose is ) with no open bracket.
	ErrUnmatchedClose
	// ErrUnclosed is ( with no close bracket by the end of input.
	ErrUnclosed
	// ErrTrailingOperator is an operator at the end of input.
	ErrTrailingOperator
)

var grammarmsgs = [...]string{
	ErrEmpty:                 "no expression",
	ErrNumberAfterNumber:     "unexpected number after another number",
	ErrOperatorAfterOperator: "unexpected operator after another operator",
	ErrOperatorAfterOpen:     "unexpected operator after opening bracket",
	ErrLeadingOperator:       "unexpected operator at the start",
	ErrCloseAfterOperator:    "unexpected closing bracket after operator",
	ErrEmptyGroup:            "unexpected closing bracket immediately after opening",
	ErrUnmatchedClose:        "unexpected closing bracket without opening",
	ErrUnclosed:              "unclosed bracket",
	ErrTrailingOperator:      "unexpected operator at the end",
}

func (k GrammarErrorKind) String() string {
	if k <= 0 || int(k) >= len(grammarmsgs) {
		return "GrammarErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return grammarmsgs[k]
}

// GrammarError is an error indicating a token sequence that is not an
// expression. It implements InputError.
type GrammarError struct {
	// Col is the position of the offending token. For ErrUnclosed, it is the
	// position of the outermost unclosed bracket.
	Col int
	// Kind is what went wrong.
	Kind GrammarErrorKind
}

func (err *GrammarError) Error() string {
	return errpos(err.Col, err.Kind.String())
}

func (err *GrammarError) Pos() int {
	return err.Col
}

// NestingError is an error indicating brackets nested deeper than allowed by
// MaxNesting. It implements InputError.
type NestingError struct {
	// Col is the position of the first bracket past the limit.
	Col int
	// Max is the configured limit.
	Max int
}

func (err *NestingError) Error() string {
	return errpos(err.Col, "brackets nested deeper than "+strconv.Itoa(err.Max))
}

func (err *NestingError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based byte column of the start of the token that
	// caused the error.
	Pos() int
}

var (
	_ InputError = (*CharError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*GrammarError)(nil)
	_ InputError = (*NestingError)(nil)
)
