package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symcore/symcore"
	"github.com/symcore/symcore/internal/settings"
	"github.com/symcore/symcore/internal/term"
)

var (
	evalExpr string
	evalPrec int
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Parse an expression and print its decimal value at a given precision",
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVarP(&evalExpr, "expression", "e", "", "evaluate an inline expression")
	evalCmd.Flags().IntVar(&evalPrec, "precision", 16, "decimal precision")
}

func runEval(cmd *cobra.Command, args []string) error {
	if evalExpr == "" {
		return fmt.Errorf("eval requires -e/--expression")
	}
	t, err := symcore.Parse(evalExpr)
	if err != nil {
		return err
	}
	if t.Group != term.N {
		fmt.Println(t.FullText())
		return nil
	}
	ctx := settings.New(settings.WithPrecisionOption(evalPrec))
	var out string
	ctx.WithPrecision(evalPrec, func() {
		out = t.Multiplier.Decimal(ctx.Precision)
	})
	fmt.Println(out)
	return nil
}
