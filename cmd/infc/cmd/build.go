package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inflang/infc/internal/checker"
	"github.com/inflang/infc/internal/config"
)

var (
	buildPreludes []string
	buildWasmJSON string
	buildOut      string
)

var buildCmd = &cobra.Command{
	Use:   "build [module-dir]",
	Short: "Type-check a module and, optionally, emit its proof translation",
	Long: `build runs the same phases as check. When --wasm-json is given, it
also decodes the wasmproof.Module JSON at that path and emits its
proof-assistant translation (§4.H), writing to --out or stdout.

Actual .wasm binary decoding is an external collaborator (§6.3); this
command consumes the reader contract's already-decoded module shape,
serialized as JSON, rather than bundling a WASM binary parser.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringArrayVar(&buildPreludes, "prelude", nil, "name=path external prelude module, may be repeated")
	buildCmd.Flags().StringVar(&buildWasmJSON, "wasm-json", "", "path to a wasmproof.Module JSON document to translate after a successful check")
	buildCmd.Flags().StringVar(&buildOut, "out", "", "output path for the proof translation (defaults to stdout)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	dir = absOrSelf(dir)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()

	arena, sourceFiles, err := loadModule(ctx, dir)
	if err != nil {
		return err
	}

	prel, closePrelude, err := loadPrelude(ctx, cfg, buildPreludes)
	if err != nil {
		return err
	}
	defer closePrelude()

	if _, err := checker.Check(arena, sourceFiles, prel); err != nil {
		fmt.Println(err)
		return fmt.Errorf("build failed: type check did not pass")
	}
	fmt.Printf("%s: ok (%d source files, %d AST nodes)\n", dir, len(sourceFiles), arena.Len())

	if buildWasmJSON == "" {
		return nil
	}
	return translateModuleFile(buildWasmJSON, buildOut)
}

func writeOutput(out, text string) error {
	if out == "" {
		fmt.Println(text)
		return nil
	}
	return os.WriteFile(out, []byte(text), 0o644)
}
