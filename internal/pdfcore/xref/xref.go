// Package xref locates a PDF document's object table: classic
// cross-reference tables and, for broader real-world compatibility than
// the teacher's own stub, cross-reference streams' uncompressed
// entries. Compressed (type-2, object-stream-packed) entries are left
// unsupported, matching the exact boundary internal/pdf/xref/parser.go
// already drew ("compressed object resolution not yet implemented").
package xref

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// Loaded is the result of walking a document's xref chain.
type Loaded struct {
	Offsets  map[object.ObjectID]int64 // in-use, directly-stored objects
	Trailer  *object.Dict
	Skew     int // byte offset of the first "%PDF-" marker (0 if absent)
}

// Load walks the startxref/Prev chain starting at data's tail, merging
// classic tables and cross-reference streams into one offset map and
// one effective trailer (the most recent section's keys win).
func Load(data []byte) (*Loaded, error) {
	start, err := findStartXRef(data)
	if err != nil {
		return nil, err
	}

	result := &Loaded{Offsets: make(map[object.ObjectID]int64)}
	if skew := bytes.Index(data, []byte("%PDF-")); skew > 0 {
		result.Skew = skew
	}
	visited := make(map[int64]bool)
	offset := start

	for offset >= 0 {
		if visited[offset] {
			break // cycle in the Prev chain; stop rather than loop forever
		}
		visited[offset] = true

		trailer, entries, prev, err := parseSection(data, offset)
		if err != nil {
			return nil, fmt.Errorf("xref section at %d: %w", offset, err)
		}

		for id, off := range entries {
			if _, exists := result.Offsets[id]; !exists {
				result.Offsets[id] = off
			}
		}
		if result.Trailer == nil {
			result.Trailer = trailer
		} else if trailer != nil {
			for _, k := range trailer.Keys() {
				if _, exists := result.Trailer.Get(k); !exists {
					v, _ := trailer.Get(k)
					result.Trailer.Set(k, v)
				}
			}
		}

		if prev == nil {
			break
		}
		offset = *prev
	}

	if result.Trailer == nil {
		return nil, fmt.Errorf("no trailer found while walking xref chain from %d", start)
	}
	return result, nil
}

// findStartXRef scans the tail of the file for "startxref\n<offset>".
func findStartXRef(data []byte) (int64, error) {
	tail := data
	const maxScan = 2048
	if len(data) > maxScan {
		tail = data[len(data)-maxScan:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("no startxref marker found")
	}
	rest := tail[idx+len("startxref"):]
	fields := strings.Fields(string(rest))
	if len(fields) == 0 {
		return 0, fmt.Errorf("startxref marker has no offset")
	}
	off, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid startxref offset %q: %w", fields[0], err)
	}
	return off, nil
}

// parseSection parses one xref section (classic table or stream) at
// offset and returns its trailer, its in-use entries, and the offset of
// its Prev section (nil if none).
func parseSection(data []byte, offset int64) (*object.Dict, map[object.ObjectID]int64, *int64, error) {
	if offset < 0 || offset >= int64(len(data)) {
		return nil, nil, nil, fmt.Errorf("offset %d out of range", offset)
	}

	probe := data[offset:]
	probeLen := 32
	if len(probe) < probeLen {
		probeLen = len(probe)
	}
	if strings.HasPrefix(strings.TrimLeft(string(probe[:probeLen]), " \t\r\n"), "xref") {
		return parseClassicTable(data, offset)
	}
	return parseXRefStream(data, offset)
}
