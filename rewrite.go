package mathexpr

// Rewrite makes implicit tokens explicit. It inserts * between a number or
// close bracket and a following open bracket, and between a close bracket and
// a following number, so "2(3)(4)5" becomes "2*(3)*(4)*5". Then it inserts 0
// before a - that starts the expression or a group and before a + that starts
// the expression, so "-(-3)" becomes "0-(0-3)" and "+3" becomes "0+3".
// Afterward numbers and operators strictly alternate within each group.
//
// toks must have passed Validate. Rewrite takes ownership of toks and may reuse
// its storage. Rewriting an already explicit sequence returns it unchanged.
func Rewrite(toks Tokens) Tokens {
	var at []int
	last := TokenNone
	for i, tok := range toks {
		switch tok.Kind {
		case TokenOpen:
			if last == TokenNumber || last == TokenClose {
				at = append(at, i)
			}
		case TokenNumber:
			if last == TokenClose {
				at = append(at, i)
			}
		}
		last = tok.Kind
	}
	toks = insert(toks, at, func(next Token) Token { return opTok(Mul, next.Pos) })

	at = at[:0]
	last = TokenNone
	for i, tok := range toks {
		if tok.Kind == TokenOperator && unary(tok.Op, last) {
			at = append(at, i)
		}
		last = tok.Kind
	}
	return insert(toks, at, func(next Token) Token { return numTok(0, next.Pos) })
}

// unary reports whether o is a sign rather than a binary operator when it
// follows a token of kind last.
func unary(o Operator, last TokenKind) bool {
	switch last {
	case TokenNone:
		return o.Additive()
	case TokenOpen:
		return o == Minus
	}
	return false
}

// insert inserts one token before each index in at, which must be ascending.
// mk creates the token to insert from the token that will follow it. The
// insertions happen in a single pass from the back so that each existing
// token moves at most once.
func insert(toks Tokens, at []int, mk func(next Token) Token) Tokens {
	if len(at) == 0 {
		return toks
	}
	r := len(toks)
	toks = append(toks, make(Tokens, len(at))...)
	w := len(toks)
	for k := len(at) - 1; k >= 0; k-- {
		i := at[k]
		w -= r - i
		copy(toks[w:], toks[i:r])
		w--
		toks[w] = mk(toks[w+1])
		r = i
	}
	if w != r {
		panic("mathexpr: inconsistent insertion")
	}
	return toks
}
