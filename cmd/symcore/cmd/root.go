package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "symcore",
	Short:   "Symbolic mathematics core: tokenize, parse, and evaluate expressions",
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// resolveInput implements the -e/file/stdin precedence shared by
// parse, tokenize, and eval.
func resolveInput(cmd *cobra.Command, args []string, exprFlag string) (string, error) {
	if exprFlag != "" {
		return exprFlag, nil
	}
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
