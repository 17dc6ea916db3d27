package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	mathexpr "github.com/crazygoldblock/Math-expression-parser"
)

// maxLine is the longest line evalLines accepts. Generated inputs can be
// hundreds of megabytes on one line.
const maxLine = 1 << 30

func newEvalCmd() *cobra.Command {
	var (
		files  []string
		whole  bool
		timing bool
	)
	cmd := &cobra.Command{
		Use:   "eval -f FILE...",
		Short: "Evaluate expressions from files, one per line",
		Long: `Evaluate expressions from files, one per line. Blank lines are skipped.
A file named "-" is standard input. With --whole, each file is a single
expression, which suits large generated inputs.

Every line is evaluated even if some fail. Failures are printed as they
happen with their file and line, and the exit status is nonzero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) == 0 {
				return fmt.Errorf("no input files")
			}
			ev, err := newEvaluator()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			var errs *multierror.Error
			for _, name := range files {
				start := time.Now()
				if err := evalFile(ev, p, name, whole); err != nil {
					errs = multierror.Append(errs, err)
				}
				if timing {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, time.Since(start))
				}
			}
			return reported(errs.ErrorOrNil())
		},
	}
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "input file (any number of times)")
	cmd.Flags().BoolVar(&whole, "whole", false, "treat each file as one expression")
	cmd.Flags().BoolVar(&timing, "timing", false, "print evaluation time per file")
	return cmd
}

// evalFile evaluates the expressions in the named file. Every error it returns
// has already been printed.
func evalFile(ev *mathexpr.Evaluator, p *printer, name string, whole bool) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			p.failure("", err)
			return err
		}
		defer f.Close()
		r = f
	}
	if !whole {
		return evalLines(ev, p, r, name)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		p.failure("", err)
		return err
	}
	return p.evalAt(ev, strings.TrimSpace(string(b)), name)
}

// evalLines evaluates each non-blank line of r. Errors are printed and
// collected with their line numbers.
func evalLines(ev *mathexpr.Evaluator, p *printer, r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	var errs *multierror.Error
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := p.evalAt(ev, line, name+":"+strconv.Itoa(n)); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if err := sc.Err(); err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		p.failure("", err)
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}
