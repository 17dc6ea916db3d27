// Package gen generates random arithmetic expressions for tests and
// benchmarks.
package gen

import (
	"bufio"
	"io"
	"math/rand"
	"strconv"
	"strings"
)

// DefaultMaxNumber is the default upper bound of generated numbers.
const DefaultMaxNumber = 100

// A Generator generates random expressions. The zero value generates flat
// expressions of reals in [1, DefaultMaxNumber] joined by + - * /.
type Generator struct {
	// Rand is the source of randomness. If nil, a source seeded with 1 is
	// used, so output is reproducible.
	Rand *rand.Rand

	// If NoReals is set, all numbers are integers.
	NoReals bool

	// MaxNumber is the upper bound of generated numbers. Numbers are never
	// less than 1, so division never divides by zero.
	// If this is 0, DefaultMaxNumber is used.
	MaxNumber float64

	// Ops is the set of operators to choose from. If empty, all four are.
	Ops string

	// Brackets is the probability that a term opens a bracket group.
	Brackets float64

	// MaxDepth limits bracket nesting. If this is 0, there is no limit.
	MaxDepth int

	// Implicit is the probability that a group following a value omits its
	// multiplication sign, as in 2(3+4).
	Implicit float64

	// Unary is the probability that a group or the whole expression starts
	// with a minus sign.
	Unary float64

	// Spaces puts spaces around operators.
	Spaces bool
}

// Generate returns an expression with n numbers. n must be positive.
func (g *Generator) Generate(n int) string {
	var b strings.Builder
	// Write to a strings.Builder never fails.
	g.write(&b, n)
	return b.String()
}

// GenerateTo writes an expression with n numbers to w.
func (g *Generator) GenerateTo(w io.Writer, n int) error {
	bw := bufio.NewWriter(w)
	g.write(bw, n)
	return bw.Flush()
}

type byteWriter interface {
	io.Writer
	WriteByte(byte) error
	WriteString(string) (int, error)
}

func (g *Generator) write(w byteWriter, n int) {
	if n <= 0 {
		panic("gen: expression needs at least one number, not " + strconv.Itoa(n))
	}
	r := g.Rand
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	ops := g.Ops
	if ops == "" {
		ops = "+-*/"
	}
	depth := 0
	start := true
	for i := 0; i < n; i++ {
		implicit := false
		if !start {
			if g.canOpen(depth) && r.Float64() < g.Implicit {
				implicit = true
			} else {
				g.sep(w)
				w.WriteByte(ops[r.Intn(len(ops))])
				g.sep(w)
			}
		}
		// An implicit multiplication needs a group to open.
		for opened := 0; g.canOpen(depth) && (implicit && opened == 0 || r.Float64() < g.Brackets); opened++ {
			w.WriteByte('(')
			depth++
			if r.Float64() < g.Unary {
				w.WriteByte('-')
			}
		}
		if start && depth == 0 && r.Float64() < g.Unary {
			w.WriteByte('-')
		}
		w.WriteString(g.number(r))
		start = false
		for depth > 0 && r.Float64() < 0.3 {
			w.WriteByte(')')
			depth--
		}
	}
	for ; depth > 0; depth-- {
		w.WriteByte(')')
	}
}

func (g *Generator) canOpen(depth int) bool {
	return g.Brackets > 0 && (g.MaxDepth == 0 || depth < g.MaxDepth)
}

func (g *Generator) sep(w byteWriter) {
	if g.Spaces {
		w.WriteByte(' ')
	}
}

func (g *Generator) number(r *rand.Rand) string {
	max := g.MaxNumber
	if max == 0 {
		max = DefaultMaxNumber
	}
	if g.NoReals {
		return strconv.Itoa(1 + r.Intn(int(max)))
	}
	return strconv.FormatFloat(1+r.Float64()*(max-1), 'f', 3, 64)
}
