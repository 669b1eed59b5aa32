// Command pdftool is the developer-facing front door for the engine:
// detect and fill subcommands operating on local files. Grounded on the
// teacher's cmd/pdf_extract_forms/main.go — a debug CLI over local PDF
// paths — rather than its cmd/mcp-pdf-reader host binding, which is out
// of scope.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hyperpolymath/pdftool-core/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	rest := os.Args[2:]

	cfg, err := config.LoadFromFlags(nil)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	switch subcommand {
	case "detect":
		runDetect(cfg, rest)
	case "fill":
		runFill(cfg, rest)
	case "-help", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown subcommand %q\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("pdftool - detect and fill PDF form fields")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  pdftool detect <pdf_file>")
	fmt.Println("  pdftool fill --values=<fields.json> [--blocks=<blocks.json>] [--validate] --out=<output.pdf> <pdf_file>")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pdftool detect form.pdf")
	fmt.Println("  pdftool fill --values=values.json --out=filled.pdf form.pdf")
	fmt.Println("  pdftool fill --values=values.json --validate --out=filled.pdf form.pdf")
}
