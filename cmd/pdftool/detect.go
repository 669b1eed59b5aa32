package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperpolymath/pdftool-core/internal/config"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/engine"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/errors"
	"github.com/spf13/pflag"
)

func runDetect(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("detect", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Println("USAGE:\n  pdftool detect <pdf_file>")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one PDF file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)
	data, err := readPDFFile(path, cfg.MaxFileSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	blocks, err := engine.Detect(data)
	if err != nil {
		printCoreError(err)
		os.Exit(1)
	}

	if err := json.NewEncoder(os.Stdout).Encode(blocks); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		os.Exit(1)
	}
}

func printCoreError(err error) {
	if ce, ok := errors.As(err); ok {
		fmt.Fprintf(os.Stderr, "%s\n", ce.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
}

func readPDFFile(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), maxSize)
	}
	return os.ReadFile(path)
}
