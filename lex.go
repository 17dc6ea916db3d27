package mathexpr

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Operators contains the bytes which are considered to be operators, in the
// order of the Operator constants.
const Operators = "+-*/"

// Separators contains the bytes that are skipped everywhere, including inside
// numbers, so that "1 000_000" is a single number.
const Separators = " _"

type lexer struct {
	src string
	// off is the byte offset of the next unread byte.
	off int
	buf strings.Builder
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// Tokenize splits an expression into tokens. The result is not validated;
// pass it to Validate before Rewrite.
func Tokenize(src string) (Tokens, error) {
	l := lex(src)
	// Most expressions are about one token per two bytes.
	toks := make(Tokens, 0, len(src)/2+1)
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenNone {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// next scans the next token from the input. At the end of the input, the
// result is a TokenNone token with a nil error.
func (l *lexer) next() (Token, error) {
	for l.off < len(l.src) {
		c := l.src[l.off]
		pos := l.off + 1
		switch {
		case strings.IndexByte(Separators, c) >= 0:
			l.off++
		case c == '(':
			l.off++
			return openTok(pos), nil
		case c == ')':
			l.off++
			return closeTok(pos), nil
		default:
			if k := strings.IndexByte(Operators, c); k >= 0 {
				l.off++
				return opTok(Operator(k), pos), nil
			}
			x, err := l.scanNum()
			if err != nil {
				return Token{}, err
			}
			return numTok(x, pos), nil
		}
	}
	return Token{}, nil
}

// scanNum scans a number starting at the current offset.
func (l *lexer) scanNum() (float64, error) {
	defer l.buf.Reset()
	start := l.off
	for l.off < len(l.src) {
		c := l.src[l.off]
		if strings.IndexByte(Separators, c) >= 0 {
			l.off++
			continue
		}
		if '0' <= c && c <= '9' || c == '.' {
			l.buf.WriteByte(c)
			l.off++
			continue
		}
		break
	}
	if l.buf.Len() == 0 {
		// Nothing was consumed, so the offset still points at the byte that
		// can't start a token.
		r, _ := utf8.DecodeRuneInString(l.src[l.off:])
		return 0, &CharError{Col: l.off + 1, Char: r}
	}
	x, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		// Overflow is fine; ParseFloat gives the properly signed infinity.
		if errors.Is(err, strconv.ErrRange) {
			return x, nil
		}
		return 0, &NumberError{Col: start + 1, Text: l.buf.String()}
	}
	return x, nil
}
