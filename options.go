package mathexpr

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Option is an option for evaluation.
type Option interface {
	option(config) config
}

// Backend selects how a validated expression is reduced to a number.
type Backend int8

const (
	// Tree builds an arena expression tree per bracket group and evaluates it
	// recursively or iteratively depending on its size.
	Tree Backend = iota
	// Flat folds operators in place over the token buffer, tombstoning
	// consumed operands and compacting periodically.
	Flat
)

func (b Backend) String() string {
	switch b {
	case Tree:
		return "tree"
	case Flat:
		return "flat"
	}
	return "Backend(" + strconv.Itoa(int(b)) + ")"
}

// ParseBackend returns the backend named s, case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tree", "":
		return Tree, nil
	case "flat":
		return Flat, nil
	}
	return Tree, &BackendError{Name: s}
}

// BackendError is an error from ParseBackend for an unknown backend name.
type BackendError struct {
	Name string
}

func (err *BackendError) Error() string {
	return "unknown backend " + strconv.Quote(err.Name) + ` (want "tree" or "flat")`
}

// DefaultIterativeThreshold is the arena size at and above which the tree
// backend evaluates with an explicit work list instead of recursion.
const DefaultIterativeThreshold = 10000

// Defaults for Compaction.
const (
	DefaultCompactFolds = 64
	DefaultCompactSpan  = 4096
)

// config holds general data for evaluation.
type config struct {
	backend Backend
	// threshold is the arena size at which tree evaluation switches to the
	// iterative strategy.
	threshold int
	// maxdepth is the maximum bracket nesting depth, or 0 for no limit.
	maxdepth int
	// folds and span control flat backend compaction.
	folds, span int
	log         zerolog.Logger
}

func defaultConfig() config {
	return config{
		backend:   Tree,
		threshold: DefaultIterativeThreshold,
		folds:     DefaultCompactFolds,
		span:      DefaultCompactSpan,
		log:       zerolog.Nop(),
	}
}

type (
	backendopt   Backend
	thresholdopt int
	nestingopt   int
	compactopt   struct{ folds, span int }
	logopt       struct{ log zerolog.Logger }
)

// WithBackend selects the evaluation backend. The default is Tree.
func WithBackend(b Backend) Option {
	return backendopt(b)
}

func (o backendopt) option(c config) config {
	c.backend = Backend(o)
	return c
}

// IterativeThreshold sets the arena size at and above which the tree backend
// evaluates iteratively. Zero means always iterative. A negative n means
// always recursive.
func IterativeThreshold(n int) Option {
	return thresholdopt(n)
}

func (o thresholdopt) option(c config) config {
	c.threshold = int(o)
	return c
}

// MaxNesting limits bracket nesting depth. Deeper input fails validation with
// a *NestingError. Zero, the default, means no limit.
func MaxNesting(n int) Option {
	if n < 0 {
		panic("mathexpr: negative nesting limit " + strconv.Itoa(n))
	}
	return nestingopt(n)
}

func (o nestingopt) option(c config) config {
	c.maxdepth = int(o)
	return c
}

// Compaction sets when the flat backend compacts its buffer: once more than
// folds operators have been folded and more than span tombstones have been
// skipped over since the last compaction. Non-positive values select the
// defaults.
func Compaction(folds, span int) Option {
	return compactopt{folds, span}
}

func (o compactopt) option(c config) config {
	c.folds, c.span = DefaultCompactFolds, DefaultCompactSpan
	if o.folds > 0 {
		c.folds = o.folds
	}
	if o.span > 0 {
		c.span = o.span
	}
	return c
}

// WithLogger sets a logger for tracing evaluation. Token streams are logged at
// debug level and per-group evaluation at trace level. The default discards
// everything.
func WithLogger(log zerolog.Logger) Option {
	return logopt{log}
}

func (o logopt) option(c config) config {
	c.log = o.log
	return c
}
