package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperpolymath/pdftool-core/internal/config"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/engine"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/errors"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/validate"
	"github.com/spf13/pflag"
)

func runFill(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("fill", pflag.ExitOnError)
	valuesPath := fs.String("values", "", "Path to a JSON object mapping field names to values (required)")
	blocksPath := fs.String("blocks", "", "Path to an advisory JSON blocks array (optional, schema-checked only)")
	outPath := fs.String("out", "", "Path to write the filled PDF to (required)")
	validateOut := fs.Bool("validate", false, "Re-parse the filled PDF with pdfcpu and ledongthuc/pdf as an extra correctness check")
	fs.Usage = func() {
		fmt.Println("USAGE:\n  pdftool fill --values=<fields.json> [--blocks=<blocks.json>] [--validate] --out=<output.pdf> <pdf_file>")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one PDF file path required")
		fs.Usage()
		os.Exit(1)
	}
	if *valuesPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --values and --out are required")
		fs.Usage()
		os.Exit(1)
	}

	pdfPath := fs.Arg(0)
	pdfBytes, err := readPDFFile(pdfPath, cfg.MaxFileSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fieldValues, err := readFieldValues(*valuesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var blocksHint []byte
	if *blocksPath != "" {
		blocksHint, err = os.ReadFile(*blocksPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading blocks hint: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := engine.Fill(pdfBytes, blocksHint, fieldValues)
	if err != nil {
		printCoreError(err)
		os.Exit(1)
	}

	if *validateOut {
		result := validate.RoundTrip(out)
		if !result.OK() {
			fmt.Fprintf(os.Stderr, "Warning: round-trip validation flagged the output (pdfcpu: %v, ledongthuc: %v)\n",
				result.PDFCPUErr, result.LedongthucErr)
		}
	}

	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func readFieldValues(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading field values: %w", err)
	}
	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Newf(errors.FieldsPayloadInvalid, "%s", err).WithContext(path)
	}
	return values, nil
}
