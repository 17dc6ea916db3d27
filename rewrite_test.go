package mathexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewrite(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1", "1"},
		{"1+2", "1 + 2"},
		{"2(3+4)", "2 * ( 3 + 4 )"},
		{"(1+2)(3+4)", "( 1 + 2 ) * ( 3 + 4 )"},
		{"(1+2)3", "( 1 + 2 ) * 3"},
		{"-3+5", "0 - 3 + 5"},
		{"(-3+4)", "( 0 - 3 + 4 )"},
		{"-(-3)", "0 - ( 0 - 3 )"},
		{"2(-3)", "2 * ( 0 - 3 )"},
		{"1-2", "1 - 2"},
		{"+3", "0 + 3"},
		{"+(-3)", "0 + ( 0 - 3 )"},
		{"1*(-2)(3)4", "1 * ( 0 - 2 ) * ( 3 ) * 4"},
		{"-.5(1+2)(-3+4) * 5 + 3 * 2(1*2_0)", "0 - 0.5 * ( 1 + 2 ) * ( 0 - 3 + 4 ) * 5 + 3 * 2 * ( 1 * 20 )"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			require.NoError(t, err)
			require.NoError(t, Validate(toks))
			got := Rewrite(toks)
			assert.Equal(t, c.want, got.String())
			assert.NoError(t, Validate(got))
		})
	}
}

func TestRewritePositions(t *testing.T) {
	toks, err := Tokenize("-2(3)")
	require.NoError(t, err)
	got := Rewrite(toks)
	want := Tokens{numTok(0, 1), opTok(Minus, 1), numTok(2, 2), opTok(Mul, 3), openTok(3), numTok(3, 4), closeTok(5)}
	assert.Equal(t, want, got)
}

func TestRewriteIdempotent(t *testing.T) {
	srcs := []string{
		"1",
		"-1",
		"2(3+4)",
		"(1+2)(3+4)5",
		"-(-(-(1)))",
		"((1+2)*3)",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			toks, err := Tokenize(src)
			require.NoError(t, err)
			once := Rewrite(toks)
			want := append(Tokens(nil), once...)
			twice := Rewrite(once)
			assert.Equal(t, want, twice)
		})
	}
}

func TestInsert(t *testing.T) {
	toks := Tokens{numTok(1, 1), numTok(2, 2), numTok(3, 3)}
	got := insert(toks, []int{0, 1, 2}, func(next Token) Token { return opTok(Plus, next.Pos) })
	want := Tokens{opTok(Plus, 1), numTok(1, 1), opTok(Plus, 2), numTok(2, 2), opTok(Plus, 3), numTok(3, 3)}
	assert.Equal(t, want, got)
	assert.Equal(t, want[:2], insert(Tokens{numTok(1, 1)}, []int{0}, func(next Token) Token { return opTok(Plus, next.Pos) }))
	assert.Equal(t, Tokens{numTok(1, 1)}, insert(Tokens{numTok(1, 1)}, nil, nil))
}
