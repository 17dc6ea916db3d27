package mathexpr

// Validate checks that toks is a well-formed expression. It does not modify
// toks. The result is nil or a *GrammarError.
func Validate(toks Tokens) error {
	return validate(toks, 0)
}

// validate checks toks, additionally rejecting brackets nested deeper than
// maxdepth if it is positive.
func validate(toks Tokens, maxdepth int) error {
	if len(toks) == 0 {
		return &GrammarError{Col: 1, Kind: ErrEmpty}
	}
	var (
		last  = TokenNone
		depth int
		outer int
	)
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNumber:
			if last == TokenNumber {
				return &GrammarError{Col: tok.Pos, Kind: ErrNumberAfterNumber}
			}
		case TokenOperator:
			switch last {
			case TokenOperator:
				return &GrammarError{Col: tok.Pos, Kind: ErrOperatorAfterOperator}
			case TokenOpen:
				if tok.Op != Minus {
					return &GrammarError{Col: tok.Pos, Kind: ErrOperatorAfterOpen}
				}
			case TokenNone:
				if !tok.Op.Additive() {
					return &GrammarError{Col: tok.Pos, Kind: ErrLeadingOperator}
				}
			}
		case TokenOpen:
			if depth == 0 {
				outer = tok.Pos
			}
			depth++
			if maxdepth > 0 && depth > maxdepth {
				return &NestingError{Col: tok.Pos, Max: maxdepth}
			}
		case TokenClose:
			switch {
			case last == TokenOperator:
				return &GrammarError{Col: tok.Pos, Kind: ErrCloseAfterOperator}
			case last == TokenOpen:
				return &GrammarError{Col: tok.Pos, Kind: ErrEmptyGroup}
			case depth == 0:
				return &GrammarError{Col: tok.Pos, Kind: ErrUnmatchedClose}
			}
			depth--
		default:
			panic("mathexpr: invalid token kind " + tok.Kind.String())
		}
		last = tok.Kind
	}
	if depth > 0 {
		return &GrammarError{Col: outer, Kind: ErrUnclosed}
	}
	if last == TokenOperator {
		return &GrammarError{Col: toks[len(toks)-1].Pos, Kind: ErrTrailingOperator}
	}
	return nil
}
