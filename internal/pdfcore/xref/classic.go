package xref

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// parseClassicTable parses a traditional "xref ... trailer <<...>>"
// section. Grounded on internal/pdf/xref/parser.go's parseXRefTable /
// parseXRefEntryLine / parseTrailerDictFromScanner, rewritten to share
// the module's single Dict/Object type instead of a parallel local one.
func parseClassicTable(data []byte, offset int64) (*object.Dict, map[object.ObjectID]int64, *int64, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data[offset:]))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	if !scanner.Scan() {
		return nil, nil, nil, fmt.Errorf("failed to read xref keyword")
	}
	if strings.TrimSpace(scanner.Text()) != "xref" {
		return nil, nil, nil, fmt.Errorf("expected 'xref' keyword")
	}

	entries := make(map[object.ObjectID]int64)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "trailer" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, nil, nil, fmt.Errorf("invalid xref subsection header %q", line)
		}
		startNum, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid subsection start %q: %w", parts[0], err)
		}
		count, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid subsection count %q: %w", parts[1], err)
		}

		for i := int64(0); i < count; i++ {
			if !scanner.Scan() {
				return nil, nil, nil, fmt.Errorf("unexpected end of xref entries")
			}
			entryLine := scanner.Text()
			fields := strings.Fields(entryLine)
			if len(fields) < 3 {
				continue // malformed entry; skip liberally like the teacher does
			}
			off, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				continue
			}
			gen, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				continue
			}
			if fields[2] != "n" {
				continue // free entry
			}
			objNum := startNum + i
			entries[object.ObjectID{Number: objNum, Generation: gen}] = off
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("scanning xref table: %w", err)
	}

	trailerBytes := findDictAfterScanner(data[offset:], scanner)
	if trailerBytes == nil {
		return nil, nil, nil, fmt.Errorf("no trailer dictionary found")
	}
	trailerDict, err := object.ParseDictAt(trailerBytes, 0)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parsing trailer dictionary: %w", err)
	}

	var prev *int64
	if v, ok := trailerDict.Get("Prev"); ok && v.Kind == object.KindInteger {
		p := v.Int
		prev = &p
	}

	return trailerDict, entries, prev, nil
}

// findDictAfterScanner locates the "<<...>>" text immediately following
// the "trailer" keyword the scanner just consumed, by re-scanning from
// the section start for the literal byte sequence "trailer" and handing
// back everything from its matching dict-open onward.
func findDictAfterScanner(section []byte, _ *bufio.Scanner) []byte {
	idx := bytes.Index(section, []byte("trailer"))
	if idx < 0 {
		return nil
	}
	rest := section[idx+len("trailer"):]
	start := bytes.Index(rest, []byte("<<"))
	if start < 0 {
		return nil
	}
	return rest[start:]
}
