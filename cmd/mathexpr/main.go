package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mathexpr "github.com/crazygoldblock/Math-expression-parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, red(err.Error()))
	os.Exit(1)
}

var red = color.New(color.FgRed).SprintFunc()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mathexpr [flags] [--] [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `Evaluate arithmetic expressions with + - * /, brackets, implicit
multiplication like 2(3+4), and unary minus.

With no arguments, mathexpr starts a REPL when run in a terminal and otherwise
evaluates one expression per line of standard input. Put -- before
expressions that start with a minus sign.`,
		Example: `  mathexpr -- "-.5(1+2)(-3+4) * 5 + 3 * 2(1*2_0)"
  mathexpr gen -n 100000 > big.txt && mathexpr eval --whole -f big.txt`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: initConfig,
		RunE:              runRoot,
	}
	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.mathexpr.yaml)")
	pf.String("backend", "tree", `evaluation backend, "tree" or "flat"`)
	pf.Int("threshold", mathexpr.DefaultIterativeThreshold, "arena size at which tree evaluation stops recursing")
	pf.Int("max-nesting", 0, "maximum bracket nesting depth (0 for no limit)")
	pf.Bool("debug", false, "log token streams to stderr")
	pf.StringP("output", "o", "text", `output format, "text" or "json"`)
	pf.String("fmt", "%g", "result formatting verb for text output")
	pf.Bool("no-color", false, "disable colored output")
	cmd.AddCommand(newEvalCmd(), newGenCmd(), newCheckCmd())
	return cmd
}

// initConfig binds flags, MATHEXPR_* environment variables, and the config
// file into viper.
func initConfig(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	viper.SetEnvPrefix("mathexpr")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if f := viper.GetString("config"); f != "" {
		viper.SetConfigFile(f)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".mathexpr")
		viper.SetConfigType("yaml")
	}
	if err := viper.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
	switch o := viper.GetString("output"); o {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", o)
	}
	return nil
}

// newEvaluator creates an evaluator from the bound configuration. Extra
// options are applied last.
func newEvaluator(extra ...mathexpr.Option) (*mathexpr.Evaluator, error) {
	b, err := mathexpr.ParseBackend(viper.GetString("backend"))
	if err != nil {
		return nil, err
	}
	opts := []mathexpr.Option{
		mathexpr.WithBackend(b),
		mathexpr.IterativeThreshold(viper.GetInt("threshold")),
		mathexpr.WithLogger(newLogger()),
	}
	if n := viper.GetInt("max-nesting"); n > 0 {
		opts = append(opts, mathexpr.MaxNesting(n))
	}
	return mathexpr.New(append(opts, extra...)...), nil
}

func newLogger() zerolog.Logger {
	lvl := zerolog.WarnLevel
	if viper.GetBool("debug") {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func runRoot(cmd *cobra.Command, args []string) error {
	ev, err := newEvaluator()
	if err != nil {
		return err
	}
	p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if len(args) > 0 {
		var errs *multierror.Error
		for _, arg := range args {
			if err := p.eval(ev, arg); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		return reported(errs.ErrorOrNil())
	}
	if isTerminalIO() {
		return repl(ev, p)
	}
	return reported(evalLines(ev, p, os.Stdin, "stdin"))
}

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}
