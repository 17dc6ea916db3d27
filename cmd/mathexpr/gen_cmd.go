package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/crazygoldblock/Math-expression-parser/internal/gen"
)

func newGenCmd() *cobra.Command {
	var (
		g     gen.Generator
		count int
		lines int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Print random expressions",
		Long: `Print random expressions, one per line. Without brackets the output is a
flat chain of numbers and operators, which exercises the iterative evaluator
and the flat backend's compaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, not %d", count)
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			g.Rand = rand.New(rand.NewSource(seed))
			out := cmd.OutOrStdout()
			for i := 0; i < lines; i++ {
				if err := g.GenerateTo(out, count); err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&count, "count", "n", 1000, "numbers per expression")
	f.IntVar(&lines, "lines", 1, "number of expressions")
	f.Int64Var(&seed, "seed", 0, "random seed (default time based)")
	f.BoolVar(&g.NoReals, "ints", false, "generate only integers")
	f.Float64Var(&g.MaxNumber, "max", gen.DefaultMaxNumber, "largest number")
	f.StringVar(&g.Ops, "ops", "+-*/", "operators to use")
	f.Float64Var(&g.Brackets, "brackets", 0, "probability that a term opens a bracket")
	f.IntVar(&g.MaxDepth, "max-depth", 0, "maximum bracket nesting (0 for no limit)")
	f.Float64Var(&g.Implicit, "implicit", 0, "probability of implicit multiplication before a bracket")
	f.Float64Var(&g.Unary, "unary", 0, "probability of a leading minus")
	f.BoolVar(&g.Spaces, "spaces", false, "put spaces around operators")
	return cmd
}
