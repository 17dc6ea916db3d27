// Package refcheck evaluates expressions at high precision to measure the
// rounding error of float64 evaluation.
//
// The reference starts from the same float64 numbers the tokenizer produces,
// so it measures only the error introduced by arithmetic, not by parsing.
package refcheck

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"

	mathexpr "github.com/crazygoldblock/Math-expression-parser"
)

// DefaultPrec is the default precision of reference evaluation in bits.
const DefaultPrec = 256

// ErrNaN is returned when the exact result is undefined, e.g. 0/0 or
// inf-inf. The float64 result is then NaN.
var ErrNaN = errors.New("refcheck: result is not a number")

// Eval evaluates src with prec bits of precision. Input errors are the same
// as mathexpr.Evaluate returns.
func Eval(src string, prec uint) (*big.Float, error) {
	toks, err := mathexpr.Tokenize(src)
	if err != nil {
		return nil, err
	}
	if err := mathexpr.Validate(toks); err != nil {
		return nil, err
	}
	return EvalTokens(mathexpr.Rewrite(toks), prec)
}

// stackop is an entry on the operator stack: an operator, or an open
// bracket if open is set.
type stackop struct {
	op   mathexpr.Operator
	open bool
}

type evaluator struct {
	prec uint
	vals []*big.Float
	ops  []stackop
}

// EvalTokens evaluates rewritten tokens with prec bits of precision using
// operator precedence parsing. toks must be the output of mathexpr.Rewrite.
func EvalTokens(toks mathexpr.Tokens, prec uint) (r *big.Float, err error) {
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(big.ErrNaN); ok {
				r, err = nil, ErrNaN
				return
			}
			panic(e)
		}
	}()
	ev := evaluator{prec: prec}
	for _, tok := range toks {
		switch tok.Kind {
		case mathexpr.TokenNumber:
			ev.vals = append(ev.vals, new(big.Float).SetPrec(prec).SetFloat64(tok.Num))
		case mathexpr.TokenOperator:
			// Everything to the left that binds at least as tightly goes
			// first, which makes both classes left associative.
			for len(ev.ops) > 0 {
				top := ev.ops[len(ev.ops)-1]
				if top.open || top.op.Additive() && !tok.Op.Additive() {
					break
				}
				ev.reduce()
			}
			ev.ops = append(ev.ops, stackop{op: tok.Op})
		case mathexpr.TokenOpen:
			ev.ops = append(ev.ops, stackop{open: true})
		case mathexpr.TokenClose:
			for !ev.ops[len(ev.ops)-1].open {
				ev.reduce()
			}
			ev.ops = ev.ops[:len(ev.ops)-1]
		default:
			panic("refcheck: invalid token " + tok.String())
		}
	}
	for len(ev.ops) > 0 {
		ev.reduce()
	}
	if len(ev.vals) != 1 {
		panic("refcheck: inconsistent stack (tokens not rewritten?)")
	}
	return ev.vals[0], nil
}

// reduce applies the top operator to the top two values.
func (ev *evaluator) reduce() {
	o := ev.ops[len(ev.ops)-1]
	ev.ops = ev.ops[:len(ev.ops)-1]
	if o.open {
		panic("refcheck: unclosed bracket")
	}
	r := ev.vals[len(ev.vals)-1]
	ev.vals = ev.vals[:len(ev.vals)-1]
	l := ev.vals[len(ev.vals)-1]
	switch o.op {
	case mathexpr.Plus:
		l.Add(l, r)
	case mathexpr.Minus:
		l.Sub(l, r)
	case mathexpr.Mul:
		l.Mul(l, r)
	case mathexpr.Div:
		l.Quo(l, r)
	}
}

// Digits returns the number of decimal digits to which got agrees with want,
// -log10(|got-want|/|want|). Exact agreement, including matching infinities,
// gives +Inf. A non-finite got for a finite want gives 0.
func Digits(got float64, want *big.Float) float64 {
	if want.IsInf() {
		if math.IsInf(got, want.Sign()) {
			return math.Inf(1)
		}
		return 0
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		return 0
	}
	prec := want.Prec()
	diff := new(big.Float).SetPrec(prec).SetFloat64(got)
	diff.Sub(diff, want)
	if diff.Sign() == 0 {
		return math.Inf(1)
	}
	if want.Sign() == 0 {
		return 0
	}
	diff.Abs(diff)
	rel := diff.Quo(diff, new(big.Float).Abs(want))
	bigfloat.Log(rel, rel)
	ten := new(big.Float).SetPrec(prec).SetFloat64(10)
	bigfloat.Log(ten, ten)
	rel.Quo(rel, ten)
	d, _ := rel.Float64()
	return -d
}

// Agree reports whether got agrees with want to at least digits decimal
// digits.
func Agree(got float64, want *big.Float, digits float64) bool {
	return Digits(got, want) >= digits
}
