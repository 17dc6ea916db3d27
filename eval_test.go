package mathexpr_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mathexpr "github.com/crazygoldblock/Math-expression-parser"
	"github.com/crazygoldblock/Math-expression-parser/internal/gen"
	"github.com/crazygoldblock/Math-expression-parser/internal/refcheck"
)

var backends = []mathexpr.Backend{mathexpr.Tree, mathexpr.Flat}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"num", "1", 1},
		{"real", "2.25", 2.25},
		{"precedence", "2+3*4", 14},
		{"brackets", "(2+3)*4", 20},
		{"implicit", "2(3+4)", 14},
		{"implicit-groups", "(1+2)(3+4)", 21},
		{"implicit-after-close", "(1+2)3", 9},
		{"unary", "-3+5", 2},
		{"unary-group", "(-3+4)", 1},
		{"unary-nested", "-(-(-2))", -2},
		{"unary-plus", "+3*2", 6},
		{"unary-plus-group", "+(1+2)4", 12},
		{"nesting", "((1+2)*3)", 9},
		{"div-assoc", "8/2/2", 2},
		{"sub-assoc", "10-2-3", 5},
		{"mixed-assoc", "2*6/3*2", 8},
		{"separators", "1 000_000 + 1", 1000001},
		{"mixed", "1+2*3*4-6/3", 23},
		{"kitchen-sink", "-.5(1+2)(-3+4) * 5 + 3 * 2(1*2_0)", 112.5},
		{"div-zero", "1/0", math.Inf(1)},
		{"neg-div-zero", "-1/0", math.Inf(-1)},
	}
	for _, b := range backends {
		for _, c := range cases {
			t.Run(b.String()+"/"+c.name, func(t *testing.T) {
				r, err := mathexpr.Evaluate(c.src, mathexpr.WithBackend(b))
				require.NoError(t, err)
				assert.Equal(t, c.want, r)
			})
		}
	}
}

func TestEvaluateNaN(t *testing.T) {
	for _, b := range backends {
		for _, src := range []string{"0/0", "1/0-1/0", "(1/0)*0"} {
			r, err := mathexpr.Evaluate(src, mathexpr.WithBackend(b))
			require.NoError(t, err)
			assert.True(t, math.IsNaN(r), "%s with %v gave %v", src, b, r)
		}
	}
}

func TestEvaluateOverflow(t *testing.T) {
	r, err := mathexpr.Evaluate("1" + strings.Repeat("0", 400) + "*2")
	require.NoError(t, err)
	assert.True(t, math.IsInf(r, 1))
}

func TestEvaluateDeterministic(t *testing.T) {
	g := gen.Generator{Rand: rand.New(rand.NewSource(3)), Brackets: 0.2, Implicit: 0.2, Unary: 0.2}
	src := g.Generate(5000)
	for _, b := range backends {
		ev := mathexpr.New(mathexpr.WithBackend(b))
		x, err := ev.Eval(src)
		require.NoError(t, err)
		y, err := ev.Eval(src)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(x), math.Float64bits(y))
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		col   int
		check func(t *testing.T, err error)
	}{
		{"op-op", "1++2", 3, grammar(mathexpr.ErrOperatorAfterOperator)},
		{"unclosed", "(1+2", 1, grammar(mathexpr.ErrUnclosed)},
		{"unmatched", "1+2)", 4, grammar(mathexpr.ErrUnmatchedClose)},
		{"empty-group", "()", 2, grammar(mathexpr.ErrEmptyGroup)},
		{"trailing", "1+", 2, grammar(mathexpr.ErrTrailingOperator)},
		{"empty", "", 1, grammar(mathexpr.ErrEmpty)},
		{"leading", "*3", 1, grammar(mathexpr.ErrLeadingOperator)},
		{"plus-after-open", "(+3)", 2, grammar(mathexpr.ErrOperatorAfterOpen)},
		{"char", "1+#", 3, func(t *testing.T, err error) {
			var ce *mathexpr.CharError
			require.True(t, errors.As(err, &ce), "want *CharError, got %T", err)
			assert.Equal(t, '#', ce.Char)
		}},
		{"number", "1.2.3", 1, func(t *testing.T, err error) {
			var ne *mathexpr.NumberError
			require.True(t, errors.As(err, &ne), "want *NumberError, got %T", err)
			assert.Equal(t, "1.2.3", ne.Text)
		}},
	}
	for _, b := range backends {
		for _, c := range cases {
			t.Run(b.String()+"/"+c.name, func(t *testing.T) {
				_, err := mathexpr.Evaluate(c.src, mathexpr.WithBackend(b))
				require.Error(t, err)
				var ie mathexpr.InputError
				require.True(t, errors.As(err, &ie))
				assert.Equal(t, c.col, ie.Pos())
				assert.True(t, strings.HasPrefix(err.Error(), fmt.Sprint(c.col)+": "), "message %q lacks column", err)
				c.check(t, err)
			})
		}
	}
}

func grammar(kind mathexpr.GrammarErrorKind) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		var ge *mathexpr.GrammarError
		require.True(t, errors.As(err, &ge), "want *GrammarError, got %T", err)
		assert.Equal(t, kind, ge.Kind)
	}
}

func TestMaxNesting(t *testing.T) {
	_, err := mathexpr.Evaluate("(((1)))", mathexpr.MaxNesting(2))
	var ne *mathexpr.NestingError
	require.True(t, errors.As(err, &ne), "want *NestingError, got %v", err)
	assert.Equal(t, 2, ne.Max)
	assert.Equal(t, 3, ne.Pos())

	r, err := mathexpr.Evaluate("(((1)))", mathexpr.MaxNesting(3))
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)

	assert.Panics(t, func() { mathexpr.MaxNesting(-1) })
}

func TestDeepNesting(t *testing.T) {
	const depth = 100000
	src := strings.Repeat("(", depth) + "2" + strings.Repeat(")", depth) + strings.Repeat("(1)", 10)
	for _, b := range backends {
		r, err := mathexpr.Evaluate(src, mathexpr.WithBackend(b))
		require.NoError(t, err)
		assert.Equal(t, 2.0, r)
	}
}

func TestLargeFlat(t *testing.T) {
	if testing.Short() {
		t.Skip("large inputs")
	}
	g := gen.Generator{Rand: rand.New(rand.NewSource(1))}
	src := g.Generate(300000)
	want, err := mathexpr.Evaluate(src, mathexpr.IterativeThreshold(-1))
	require.NoError(t, err)
	for _, opts := range [][]mathexpr.Option{
		{mathexpr.IterativeThreshold(0)},
		{mathexpr.WithBackend(mathexpr.Flat)},
		{mathexpr.WithBackend(mathexpr.Flat), mathexpr.Compaction(1, 1)},
	} {
		got, err := mathexpr.Evaluate(src, opts...)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(want), math.Float64bits(got))
	}
}

func TestAgreesWithReference(t *testing.T) {
	g := gen.Generator{Rand: rand.New(rand.NewSource(5)), Ops: "+*", Brackets: 0.2, Implicit: 0.2, MaxDepth: 8}
	for i := 0; i < 50; i++ {
		src := g.Generate(1 + i)
		want, err := refcheck.Eval(src, refcheck.DefaultPrec)
		require.NoError(t, err)
		for _, b := range backends {
			got, err := mathexpr.Evaluate(src, mathexpr.WithBackend(b))
			require.NoError(t, err)
			// Sums and products of positive numbers lose at most a few ulps
			// per operation.
			assert.True(t, refcheck.Agree(got, want, 12), "%s: %v vs %v", src, got, want)
		}
	}
}

func TestConcurrent(t *testing.T) {
	ev := mathexpr.New(mathexpr.WithBackend(mathexpr.Flat), mathexpr.Compaction(4, 4))
	srcs := make([]string, 16)
	want := make([]float64, len(srcs))
	g := gen.Generator{Rand: rand.New(rand.NewSource(11)), Brackets: 0.3, Implicit: 0.2}
	for i := range srcs {
		srcs[i] = g.Generate(2000)
		var err error
		want[i], err = ev.Eval(srcs[i])
		require.NoError(t, err)
	}
	var wg sync.WaitGroup
	got := make([]float64, len(srcs))
	for i := range srcs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = ev.Eval(srcs[i])
		}(i)
	}
	wg.Wait()
	for i := range want {
		assert.Equal(t, math.Float64bits(want[i]), math.Float64bits(got[i]), "expression %d", i)
	}
}

func TestOptions(t *testing.T) {
	assert.Equal(t, mathexpr.Tree, mathexpr.New().Backend())
	assert.Equal(t, mathexpr.Flat, mathexpr.New(nil, mathexpr.WithBackend(mathexpr.Flat)).Backend())

	for _, c := range []struct {
		s    string
		want mathexpr.Backend
	}{{"tree", mathexpr.Tree}, {"FLAT", mathexpr.Flat}, {" flat ", mathexpr.Flat}, {"", mathexpr.Tree}} {
		b, err := mathexpr.ParseBackend(c.s)
		require.NoError(t, err)
		assert.Equal(t, c.want, b)
	}
	_, err := mathexpr.ParseBackend("list")
	var be *mathexpr.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "list", be.Name)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.TraceLevel)
	for _, b := range backends {
		buf.Reset()
		_, err := mathexpr.Evaluate("-2(3+4)", mathexpr.WithBackend(b), mathexpr.WithLogger(log))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"tokens":"- 2 ( 3 + 4 )"`)
		assert.Contains(t, buf.String(), `"tokens":"0 - 2 * ( 3 + 4 )"`)
	}
}

func ExampleEvaluate() {
	r, err := mathexpr.Evaluate("-.5(1+2)(-3+4) * 5 + 3 * 2(1*2_0)")
	fmt.Println(r, err)
	r, err = mathexpr.Evaluate("8/2/2", mathexpr.WithBackend(mathexpr.Flat))
	fmt.Println(r, err)
	_, err = mathexpr.Evaluate("1+#")
	fmt.Println(err)
	_, err = mathexpr.Evaluate("(1+2")
	fmt.Println(err)

	// Output:
	// 112.5 <nil>
	// 2 <nil>
	// 3: unexpected character '#'
	// 1: unclosed bracket
}
