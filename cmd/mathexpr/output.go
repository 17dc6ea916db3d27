package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/viper"

	mathexpr "github.com/crazygoldblock/Math-expression-parser"
)

// printer writes results to out and evaluation failures to errw.
type printer struct {
	out  io.Writer
	errw io.Writer
	json bool
	verb string
}

func newPrinter(out, errw io.Writer) *printer {
	return &printer{
		out:  out,
		errw: errw,
		json: viper.GetString("output") == "json",
		verb: viper.GetString("fmt") + "\n",
	}
}

// eval evaluates src and prints the outcome. The returned error is the
// evaluation error, already printed.
func (p *printer) eval(ev *mathexpr.Evaluator, src string) error {
	return p.evalAt(ev, src, "")
}

// evalAt is eval for an expression read from a file. A nonempty where, like
// "exprs.txt:3", prefixes the printed error and the returned one.
func (p *printer) evalAt(ev *mathexpr.Evaluator, src, where string) error {
	x, err := ev.Eval(src)
	if err != nil {
		if where != "" {
			err = fmt.Errorf("%s: %w", where, err)
		}
		p.failure(src, err)
		return err
	}
	p.result(src, x)
	return nil
}

func (p *printer) result(src string, x float64) {
	if p.json {
		p.writeJSON(map[string]interface{}{
			"expression": src,
			"result":     jsonNumber(x),
		})
		return
	}
	fmt.Fprintf(p.out, p.verb, x)
}

func (p *printer) failure(src string, err error) {
	if p.json {
		p.writeJSON(map[string]interface{}{
			"expression": src,
			"error":      err.Error(),
		})
		return
	}
	var ie mathexpr.InputError
	if errors.As(err, &ie) && ie.Pos() > 0 && ie.Pos() <= len(src)+1 && !strings.ContainsAny(src, "\n\t") {
		fmt.Fprintln(p.errw, src)
		fmt.Fprintln(p.errw, strings.Repeat(" ", ie.Pos()-1)+red("^ "+err.Error()))
		return
	}
	fmt.Fprintln(p.errw, red(err.Error()))
}

func (p *printer) writeJSON(v interface{}) {
	f := prettyjson.NewFormatter()
	f.DisabledColor = color.NoColor
	b, err := f.Marshal(v)
	if err != nil {
		fmt.Fprintln(p.errw, red(err.Error()))
		return
	}
	p.out.Write(append(b, '\n'))
}

// jsonNumber converts x to something encoding/json accepts. Infinities and
// NaN become strings.
func jsonNumber(x float64) interface{} {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return x
}

// reportedError is a summary of failures that have already been printed as
// they happened. The failures themselves are available through Unwrap.
type reportedError struct {
	n   int
	err error
}

// reported wraps failures collected in err, which may be a multierror.
func reported(err error) error {
	if err == nil {
		return nil
	}
	n := 1
	var me *multierror.Error
	if errors.As(err, &me) {
		n = len(me.Errors)
	}
	return &reportedError{n: n, err: err}
}

func (err *reportedError) Error() string {
	if err.n == 1 {
		return "1 expression failed"
	}
	return strconv.Itoa(err.n) + " expressions failed"
}

func (err *reportedError) Unwrap() error {
	return err.err
}
