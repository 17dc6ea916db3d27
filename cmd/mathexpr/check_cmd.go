package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	mathexpr "github.com/crazygoldblock/Math-expression-parser"
	"github.com/crazygoldblock/Math-expression-parser/internal/refcheck"
)

var green = color.New(color.FgGreen).SprintFunc()

// strategy is one way to evaluate an expression.
type strategy struct {
	name string
	opts []mathexpr.Option
}

var strategies = []strategy{
	{"tree/recursive", []mathexpr.Option{mathexpr.WithBackend(mathexpr.Tree), mathexpr.IterativeThreshold(-1)}},
	{"tree/iterative", []mathexpr.Option{mathexpr.WithBackend(mathexpr.Tree), mathexpr.IterativeThreshold(0)}},
	{"flat", []mathexpr.Option{mathexpr.WithBackend(mathexpr.Flat)}},
}

// errMismatch indicates backends that disagree.
var errMismatch = errors.New("backends disagree")

func newCheckCmd() *cobra.Command {
	var (
		prec   uint
		digits float64
	)
	cmd := &cobra.Command{
		Use:   "check [--] expression...",
		Short: "Compare every evaluation strategy against a high-precision reference",
		Long: `Evaluate each expression with the recursive and iterative tree strategies
and the flat backend, which must agree exactly, and with a high-precision
reference to report how many decimal digits of the float64 result are right.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs *multierror.Error
			for _, src := range args {
				if err := check(cmd.OutOrStdout(), src, prec, digits); err != nil {
					errs = multierror.Append(errs, fmt.Errorf("%q: %w", src, err))
				}
			}
			return errs.ErrorOrNil()
		},
	}
	cmd.Flags().UintVarP(&prec, "prec", "p", refcheck.DefaultPrec, "precision of the reference in bits")
	cmd.Flags().Float64Var(&digits, "digits", 0, "fail if fewer decimal digits agree with the reference")
	return cmd
}

func check(w io.Writer, src string, prec uint, digits float64) error {
	var first float64
	for i, s := range strategies {
		ev, err := newEvaluator(s.opts...)
		if err != nil {
			return err
		}
		x, err := ev.Eval(src)
		if err != nil {
			return err
		}
		if i == 0 {
			first = x
		}
		if !same(first, x) {
			fmt.Fprintf(w, "%-16s %-24s %s\n", s.name, strconv.FormatFloat(x, 'g', -1, 64), red("MISMATCH"))
			return errMismatch
		}
		fmt.Fprintf(w, "%-16s %-24s %s\n", s.name, strconv.FormatFloat(x, 'g', -1, 64), green("ok"))
	}
	ref, err := refcheck.Eval(src, prec)
	if errors.Is(err, refcheck.ErrNaN) {
		fmt.Fprintf(w, "%-16s %-24s\n", "reference", "NaN")
		return nil
	}
	if err != nil {
		return err
	}
	d := refcheck.Digits(first, ref)
	fmt.Fprintf(w, "%-16s %-24s digits=%.1f\n", "reference", ref.Text('g', 20), d)
	if d < digits {
		return fmt.Errorf("only %.1f digits agree, want %g", d, digits)
	}
	return nil
}

// same reports whether a and b are the same result, treating NaNs as equal.
func same(a, b float64) bool {
	if math.IsNaN(a) {
		return math.IsNaN(b)
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
