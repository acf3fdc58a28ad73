package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symcore/symcore/internal/opdict"
	"github.com/symcore/symcore/internal/parserdriver"
	"github.com/symcore/symcore/internal/tokenizer"
)

var tokenizeExpr string

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Print the token/scope tree for an expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().StringVarP(&tokenizeExpr, "expression", "e", "", "tokenize an inline expression")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	input, err := resolveInput(cmd, args, tokenizeExpr)
	if err != nil {
		return err
	}
	dict, brackets := opdict.Default()
	funcs := parserdriver.NewBuiltinFunctions()
	prepared := tokenizer.Prepare(input, nil, tokenizer.DefaultOptions())
	root, err := tokenizer.Tokenize(prepared, dict, brackets, funcs)
	if err != nil {
		return err
	}
	dumpScope(root, 0)
	return nil
}

func dumpScope(scope *tokenizer.Scope, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	label := scope.Type
	if label == "" {
		label = "root"
	}
	fmt.Printf("%sscope[%s] @%d\n", pad, label, scope.Column)
	for _, tok := range scope.Tokens {
		fmt.Printf("%s  %s %q @%d\n", pad, tok.Kind, tok.Value, tok.Column)
		if tok.Nested != nil {
			dumpScope(tok.Nested, indent+2)
		}
	}
}
