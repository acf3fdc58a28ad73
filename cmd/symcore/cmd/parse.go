package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symcore/symcore"
)

var (
	parseExpr     string
	parseDumpTree bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an expression and print its canonical text",
	Long: `Parse an expression and print the canonical text of the resulting term.

If no file is provided, reads from stdin. Use -e to pass an inline
expression instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "expression", "e", "", "parse an inline expression")
	parseCmd.Flags().BoolVar(&parseDumpTree, "dump-tree", false, "dump the term's group structure instead of canonical text")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := resolveInput(cmd, args, parseExpr)
	if err != nil {
		return err
	}
	t, err := symcore.Parse(input)
	if err != nil {
		return err
	}
	if parseDumpTree {
		dumpTerm(t, 0)
		return nil
	}
	fmt.Println(t.FullText())
	return nil
}

// dumpTerm prints t's group tag, multiplier, and text at each level;
// it does not walk Children/Args (those are reachable only through
// the canonical text already printed at the root).
func dumpTerm(t *symcore.Term, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	fmt.Printf("%s%s multiplier=%s text=%s\n", pad, t.Group, t.Multiplier.String(), t.FullText())
}
