// Command teds-defgen generates schema and field tag constants from the
// YAML record definitions.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/ieee1451/teds-go/pkg/specparse"
)

func main() {
	defsDir := flag.String("defs", "", "Directory holding the record definition YAMLs")
	output := flag.String("output", "", "Output path of the generated Go file")
	pkg := flag.String("package", "records", "Package name of the generated file")
	flag.Parse()

	if *defsDir == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: teds-defgen -defs <dir> -output <file> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*defsDir, *output, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(defsDir, output, pkg string) error {
	defs, err := specparse.LoadDir(defsDir)
	if err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}

	code, err := Generate(defs, pkg)
	if err != nil {
		return fmt.Errorf("generating constants: %w", err)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := writeFormatted(output, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(output), err)
	}
	fmt.Printf("  generated %s\n", output)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
