package mathexpr

import "strconv"

// flat evaluates rewritten tokens in place. Folding an operator writes its
// result into the operator's slot and tombstones the two operands, leaving
// TokenNone behind. Later folds skip tombstones to find their operands, so
// the buffer is compacted once enough folds and skips have accumulated.
type flat struct {
	buf Tokens
	c   *config

	// folds and skipped count operator folds and tombstones skipped over
	// since the last compaction.
	folds   int
	skipped int
	// compactions is the total number of compactions, for tracing.
	compactions int
}

// group holds the pending operators of an open bracket group.
type group struct {
	// open is the index of the open bracket, or -1 for the whole expression.
	open int
	muls []int
	adds []int
}

func evalFlat(toks Tokens, c *config) float64 {
	f := flat{buf: toks, c: c}
	x := f.run()
	c.log.Debug().
		Int("tokens", len(toks)).
		Int("compactions", f.compactions).
		Msg("flat evaluation done")
	return x
}

func (f *flat) run() float64 {
	groups := make([]group, 1, 8)
	groups[0] = group{open: -1}
	for i := 0; i < len(f.buf); i++ {
		g := &groups[len(groups)-1]
		tok := f.buf[i]
		switch tok.Kind {
		case TokenNumber:
			// Numbers are found by the folds that consume them.
		case TokenOperator:
			if tok.Op.Additive() {
				g.adds = append(g.adds, i)
			} else {
				g.muls = append(g.muls, i)
			}
		case TokenOpen:
			if len(groups) < cap(groups) {
				groups = groups[:len(groups)+1]
				groups[len(groups)-1] = group{open: i, muls: groups[len(groups)-1].muls[:0], adds: groups[len(groups)-1].adds[:0]}
			} else {
				groups = append(groups, group{open: i})
			}
		case TokenClose:
			if len(groups) < 2 {
				panic("mathexpr: unmatched close bracket at " + strconv.Itoa(tok.Pos))
			}
			r := f.fold(g, g.open+1, i)
			// The group's value takes the place of its open bracket.
			f.buf[g.open] = numTok(f.buf[r].Num, f.buf[g.open].Pos)
			f.buf[r] = Token{}
			f.buf[i] = Token{}
			groups = groups[:len(groups)-1]
		default:
			panic("mathexpr: invalid token " + tok.String())
		}
	}
	if len(groups) != 1 {
		panic("mathexpr: unclosed brackets")
	}
	r := f.fold(&groups[0], 0, len(f.buf))
	return f.buf[r].Num
}

// fold applies all operators of g, which lies in buf[lo:hi], multiplicative
// ones first, each class left to right. It returns the index of the number
// holding the result.
func (f *flat) fold(g *group, lo, hi int) int {
	res := []int{-1}
	for k := range g.muls {
		res[0] = f.apply(g.muls[k], lo, hi)
		if f.due() {
			hi = f.compact(lo, hi, res, g.muls[k+1:], g.adds)
		}
	}
	for k := range g.adds {
		res[0] = f.apply(g.adds[k], lo, hi)
		if f.due() {
			hi = f.compact(lo, hi, res, g.adds[k+1:])
		}
	}
	if res[0] >= 0 {
		return res[0]
	}
	// No operators, so the group is a single number.
	return f.neighbor(lo-1, 1, lo, hi)
}

// apply folds the operator at i into its slot and returns i.
func (f *flat) apply(i, lo, hi int) int {
	o := f.buf[i]
	if o.Kind != TokenOperator {
		panic("mathexpr: fold on non-operator at " + strconv.Itoa(i))
	}
	l := f.neighbor(i, -1, lo, hi)
	r := f.neighbor(i, 1, lo, hi)
	f.buf[i] = numTok(o.Op.Apply(f.buf[l].Num, f.buf[r].Num), o.Pos)
	f.buf[l] = Token{}
	f.buf[r] = Token{}
	f.folds++
	return i
}

// neighbor finds the nearest live slot from i in the direction of step
// within [lo, hi). It must be a number.
func (f *flat) neighbor(i, step, lo, hi int) int {
	for j := i + step; lo <= j && j < hi; j += step {
		switch f.buf[j].Kind {
		case TokenNone:
			f.skipped++
		case TokenNumber:
			return j
		default:
			panic("mathexpr: operand at " + strconv.Itoa(j) + " is " + f.buf[j].String())
		}
	}
	panic("mathexpr: missing operand at " + strconv.Itoa(i))
}

// due reports whether enough work has been wasted on tombstones to pay for
// a compaction.
func (f *flat) due() bool {
	return f.folds > f.c.folds && f.skipped > f.c.span
}

// compact moves the live slots of buf[lo:hi] to the front of the range,
// keeping their order, and tombstones the rest. Each slice in pending must be
// ascending and hold only indices of live slots in range; they are updated to
// the new positions. It returns the new end of the live range.
func (f *flat) compact(lo, hi int, pending ...[]int) int {
	next := make([]int, len(pending))
	w := lo
	for r := lo; r < hi; r++ {
		if f.buf[r].Kind == TokenNone {
			continue
		}
		for k, p := range pending {
			for next[k] < len(p) && p[next[k]] == r {
				p[next[k]] = w
				next[k]++
			}
		}
		f.buf[w] = f.buf[r]
		w++
	}
	for r := w; r < hi; r++ {
		f.buf[r] = Token{}
	}
	f.c.log.Trace().
		Int("lo", lo).
		Int("hi", hi).
		Int("live", w-lo).
		Int("folds", f.folds).
		Int("skipped", f.skipped).
		Msg("compacted")
	f.folds, f.skipped = 0, 0
	f.compactions++
	return w
}
