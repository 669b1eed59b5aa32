package xref

import (
	"fmt"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// parseXRefStream parses a PDF 1.5+ cross-reference stream: the object
// at offset is itself a Stream whose dictionary carries Size/Root/Prev
// (same role as a classic trailer) and whose decoded bytes are a table
// of fixed-width rows described by W. Only type-0 (free) and type-1
// (uncompressed, in this file) entries are usable; type-2 entries name
// objects packed inside a compressed object stream, which — like the
// teacher's own internal/pdf/xref/parser.go ResolveObject — this engine
// does not decode. Such entries are simply omitted from the offset map;
// a later attempt to resolve that id will surface as a dangling
// reference rather than as a silent xref-stream failure.
func parseXRefStream(data []byte, offset int64) (*object.Dict, map[object.ObjectID]int64, *int64, error) {
	_, dict, raw, err := object.ParseStreamObjectAt(data, offset)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parsing xref stream object: %w", err)
	}

	decoded, err := object.DecodeStream(dict, raw)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decoding xref stream: %w", err)
	}

	wObj, ok := dict.Get("W")
	if !ok || wObj.Kind != object.KindArray || len(wObj.Items) != 3 {
		return nil, nil, nil, fmt.Errorf("xref stream missing valid W array")
	}
	w := [3]int{}
	for i := 0; i < 3; i++ {
		if wObj.Items[i].Kind != object.KindInteger {
			return nil, nil, nil, fmt.Errorf("xref stream W[%d] is not an integer", i)
		}
		w[i] = int(wObj.Items[i].Int)
	}
	rowWidth := w[0] + w[1] + w[2]
	if rowWidth == 0 {
		return nil, nil, nil, fmt.Errorf("xref stream has zero-width rows")
	}

	sizeObj, _ := dict.Get("Size")
	size := int64(0)
	if sizeObj.Kind == object.KindInteger {
		size = sizeObj.Int
	}

	var index [][2]int64
	if idxObj, ok := dict.Get("Index"); ok && idxObj.Kind == object.KindArray {
		for i := 0; i+1 < len(idxObj.Items); i += 2 {
			if idxObj.Items[i].Kind == object.KindInteger && idxObj.Items[i+1].Kind == object.KindInteger {
				index = append(index, [2]int64{idxObj.Items[i].Int, idxObj.Items[i+1].Int})
			}
		}
	}
	if len(index) == 0 {
		index = [][2]int64{{0, size}}
	}

	entries := make(map[object.ObjectID]int64)
	pos := 0
	for _, pair := range index {
		start, count := pair[0], pair[1]
		for i := int64(0); i < count; i++ {
			if pos+rowWidth > len(decoded) {
				break
			}
			row := decoded[pos : pos+rowWidth]
			pos += rowWidth

			typ := int64(1)
			if w[0] > 0 {
				typ = beInt(row[:w[0]])
			}
			field2 := beInt(row[w[0] : w[0]+w[1]])
			field3 := int64(0)
			if w[2] > 0 {
				field3 = beInt(row[w[0]+w[1] : rowWidth])
			}

			objNum := start + i
			switch typ {
			case 1:
				entries[object.ObjectID{Number: objNum, Generation: field3}] = field2
			case 2:
				// compressed object stream entry — unsupported, omitted.
			default:
				// free entry — omitted.
			}
		}
	}

	var prev *int64
	if v, ok := dict.Get("Prev"); ok && v.Kind == object.KindInteger {
		p := v.Int
		prev = &p
	}

	return dict, entries, prev, nil
}

func beInt(b []byte) int64 {
	var v int64
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	return v
}
