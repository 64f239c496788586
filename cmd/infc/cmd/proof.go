package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inflang/infc/internal/wasmproof"
)

var proofOut string

var proofCmd = &cobra.Command{
	Use:   "proof <wasm-module.json>",
	Short: "Translate a decoded WASM module into a proof-assistant definition",
	Long: `proof reads a wasmproof.Module JSON document — the Go-side shape of
the WASM reader contract (§6.3) — and emits its proof-assistant
translation (§4.H/§6.4): a fixed preamble, one helper-expression list per
module section, and one structured module_func definition per function,
sealed in a single module record.`,
	Args: cobra.ExactArgs(1),
	RunE: runProof,
}

func init() {
	proofCmd.Flags().StringVar(&proofOut, "out", "", "output path (defaults to stdout)")
	rootCmd.AddCommand(proofCmd)
}

func runProof(cmd *cobra.Command, args []string) error {
	return translateModuleFile(args[0], proofOut)
}

// translateModuleFile decodes a wasmproof.Module from the JSON document at
// path and writes its translation to out (stdout if empty).
func translateModuleFile(path, out string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var mod wasmproof.Module
	if err := json.Unmarshal(data, &mod); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	text, err := wasmproof.Translate(mod)
	if err != nil {
		return fmt.Errorf("translating %s: %w", path, err)
	}

	return writeOutput(out, text)
}
