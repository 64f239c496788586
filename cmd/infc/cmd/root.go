package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "infc",
	Short: "infc semantic core compiler",
	Long: `infc builds the arena-resident AST, symbol table, type information,
and typed context for infc source modules, and can emit a proof-assistant
translation of a compiled WASM module.

Source parsing is delegated to an externally registered tree-sitter
grammar for .inf files (see internal/cst.RegisterGrammar); this binary
does not bundle one.`,
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
