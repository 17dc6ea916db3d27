package mathexpr

import (
	"strconv"
	"strings"
)

// Token is a single lexical unit of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Num is the value of a TokenNumber.
	Num float64
	// Op is the operator of a TokenOperator.
	Op Operator
	// Pos is the 1-based byte column at which the token starts. Implicit
	// tokens inserted by Rewrite use the column of the token they precede.
	Pos int
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNumber is a numeric literal.
	TokenNumber
	// TokenOperator is one of + - * /.
	TokenOperator
	// TokenOpen is an open bracket.
	TokenOpen
	// TokenClose is a close bracket.
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenOperator:
		return "Operator"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Operator is a binary arithmetic operator.
type Operator int8

const (
	Plus Operator = iota
	Minus
	Mul
	Div
)

// Additive returns whether o binds loosely, i.e. is + or -.
func (o Operator) Additive() bool {
	return o == Plus || o == Minus
}

// Apply computes l o r. It is the only place arithmetic happens; every
// evaluation strategy folds through it so that all of them round the same way.
func (o Operator) Apply(l, r float64) float64 {
	switch o {
	case Plus:
		return l + r
	case Minus:
		return l - r
	case Mul:
		return l * r
	case Div:
		return l / r
	}
	panic("mathexpr: invalid operator " + o.String())
}

func (o Operator) String() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "Operator(" + strconv.Itoa(int(o)) + ")"
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenOperator:
		return t.Op.String()
	case TokenOpen:
		return "("
	case TokenClose:
		return ")"
	}
	return "$"
}

// Tokens is an ordered token sequence.
type Tokens []Token

// String formats the tokens separated by spaces, e.g. "0 - 3 * ( 1 + 2 )".
func (toks Tokens) String() string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// numTok, opTok, openTok, and closeTok are shorthands for building tokens.
func numTok(x float64, pos int) Token { return Token{Kind: TokenNumber, Num: x, Pos: pos} }
func opTok(o Operator, pos int) Token { return Token{Kind: TokenOperator, Op: o, Pos: pos} }
func openTok(pos int) Token           { return Token{Kind: TokenOpen, Pos: pos} }
func closeTok(pos int) Token          { return Token{Kind: TokenClose, Pos: pos} }
