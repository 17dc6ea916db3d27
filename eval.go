package mathexpr

// Evaluator evaluates expressions with a fixed configuration. An Evaluator is
// immutable, so it is safe to use concurrently; each evaluation owns its
// tokens and arenas.
type Evaluator struct {
	c config
}

// New creates an Evaluator. The given options are applied in order.
func New(opts ...Option) *Evaluator {
	c := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return &Evaluator{c: c}
}

// Backend returns the evaluator's backend.
func (ev *Evaluator) Backend() Backend {
	return ev.c.backend
}

// Eval evaluates an expression. Errors in the input are returned as an
// InputError: *CharError, *NumberError, *GrammarError, or *NestingError.
// Division by zero is not an error; the result is an infinity or NaN per
// IEEE 754.
func (ev *Evaluator) Eval(src string) (float64, error) {
	c := &ev.c
	toks, err := Tokenize(src)
	if err != nil {
		return 0, err
	}
	c.log.Debug().Stringer("tokens", toks).Msg("raw tokens")
	if err := validate(toks, c.maxdepth); err != nil {
		return 0, err
	}
	toks = Rewrite(toks)
	c.log.Debug().Stringer("tokens", toks).Msg("implicit tokens")
	switch c.backend {
	case Tree:
		return evalTree(toks, c), nil
	case Flat:
		return evalFlat(toks, c), nil
	}
	panic("mathexpr: invalid backend " + c.backend.String())
}

// Evaluate is a shortcut to create an Evaluator and evaluate one expression.
func Evaluate(src string, opts ...Option) (float64, error) {
	return New(opts...).Eval(src)
}
