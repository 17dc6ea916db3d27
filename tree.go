package mathexpr

import (
	"strconv"
	"strings"

	"github.com/edwingeng/deque"
)

// node is an entry in a tree arena. Children are referenced by index into the
// same arena.
type node struct {
	kind nodeKind
	op   Operator
	num  float64

	left  int
	right int
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // leaf holding num
	nodeOp  // apply op to left and right
)

// tree is the arena for one bracket group under construction.
type tree struct {
	nodes []node
	// base is the index of the root.
	base int
	// last is the index of the root of the rightmost multiplicative term,
	// which is where the next * or / grafts.
	last int
	// pending is the operator that joins the next value to the tree. A group
	// starts out adding its first value.
	pending Operator
}

func (t *tree) reset() {
	t.nodes = t.nodes[:0]
	t.base, t.last = 0, 0
	t.pending = Plus
}

// add attaches a value using the pending operator.
func (t *tree) add(x float64) {
	n := len(t.nodes)
	if n == 0 {
		t.nodes = append(t.nodes, node{kind: nodeNum, num: x})
		t.base, t.last = 0, 0
		return
	}
	if t.pending.Additive() {
		// + and - always apply to everything so far, so the new operation
		// becomes the root. The new leaf starts a new term.
		t.nodes = append(t.nodes,
			node{kind: nodeNum, num: x},
			node{kind: nodeOp, op: t.pending, left: t.base, right: n},
		)
		t.base = n + 1
		t.last = n
		return
	}
	// * and / apply to the current term only. Move the term's root out of the
	// way and put the operation in its slot, so whatever refers to the term,
	// possibly base itself, now refers to the product.
	t.nodes = append(t.nodes, t.nodes[t.last], node{kind: nodeNum, num: x})
	t.nodes[t.last] = node{kind: nodeOp, op: t.pending, left: n, right: n + 1}
}

// eval reduces the tree to a single number. Arenas smaller than threshold
// are evaluated recursively, others with an explicit work list. A negative
// threshold always recurses.
func (t *tree) eval(threshold int) float64 {
	if len(t.nodes) == 0 {
		panic("mathexpr: eval on empty group")
	}
	if threshold < 0 || len(t.nodes) < threshold {
		return t.evalRecursive(t.base)
	}
	return t.evalIterative()
}

func (t *tree) evalRecursive(i int) float64 {
	n := &t.nodes[i]
	switch n.kind {
	case nodeNum:
		return n.num
	case nodeOp:
		l := t.evalRecursive(n.left)
		r := t.evalRecursive(n.right)
		return n.op.Apply(l, r)
	}
	panic("mathexpr: invalid node at " + strconv.Itoa(i))
}

// evalIterative folds the tree in place. Each operation whose children are
// both numbers is replaced by its result; others wait on the work list until
// their children have been folded.
func (t *tree) evalIterative() float64 {
	if t.nodes[t.base].kind == nodeNum {
		return t.nodes[t.base].num
	}
	work := deque.NewDeque()
	work.PushBack(t.base)
	for !work.Empty() {
		i := work.Back().(int)
		n := &t.nodes[i]
		if n.kind != nodeOp {
			panic("mathexpr: invalid node on work list at " + strconv.Itoa(i))
		}
		l, r := &t.nodes[n.left], &t.nodes[n.right]
		if l.kind == nodeNum && r.kind == nodeNum {
			*n = node{kind: nodeNum, num: n.op.Apply(l.num, r.num)}
			work.PopBack()
			continue
		}
		if r.kind != nodeNum {
			work.PushBack(n.right)
		}
		if l.kind != nodeNum {
			work.PushBack(n.left)
		}
	}
	return t.nodes[t.base].num
}

// String lists the arena, one node per line.
func (t *tree) String() string {
	var b strings.Builder
	b.WriteString("base=" + strconv.Itoa(t.base) + " last=" + strconv.Itoa(t.last))
	for i, n := range t.nodes {
		b.WriteString("\n" + strconv.Itoa(i) + " ")
		switch n.kind {
		case nodeNum:
			b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
		case nodeOp:
			b.WriteString(n.op.String() + " " + strconv.Itoa(n.left) + " " + strconv.Itoa(n.right))
		default:
			b.WriteByte('$')
		}
	}
	return b.String()
}

// evalTree reduces rewritten tokens to a number with the tree backend. Each
// open bracket pushes a new arena and each close bracket evaluates the top one
// and attaches the result to the one below, so nesting depth costs heap
// rather than stack.
func evalTree(toks Tokens, c *config) float64 {
	frames := make([]tree, 1, 8)
	frames[0].reset()
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNumber:
			frames[len(frames)-1].add(tok.Num)
		case TokenOperator:
			frames[len(frames)-1].pending = tok.Op
		case TokenOpen:
			// Reuse the arena of a group that has already been closed at this
			// depth, if there is one.
			if len(frames) < cap(frames) {
				frames = frames[:len(frames)+1]
			} else {
				frames = append(frames, tree{})
			}
			frames[len(frames)-1].reset()
		case TokenClose:
			if len(frames) < 2 {
				panic("mathexpr: unmatched close bracket at " + strconv.Itoa(tok.Pos))
			}
			x := evalGroup(&frames[len(frames)-1], len(frames)-1, c)
			frames = frames[:len(frames)-1]
			frames[len(frames)-1].add(x)
		default:
			panic("mathexpr: invalid token " + tok.String())
		}
	}
	if len(frames) != 1 {
		panic("mathexpr: unclosed brackets")
	}
	return evalGroup(&frames[0], 0, c)
}

func evalGroup(t *tree, depth int, c *config) float64 {
	if e := c.log.Trace(); e.Enabled() {
		e.Int("depth", depth).
			Int("nodes", len(t.nodes)).
			Bool("iterative", c.threshold >= 0 && len(t.nodes) >= c.threshold).
			Stringer("arena", t).
			Msg("evaluating group")
	}
	return t.eval(c.threshold)
}
