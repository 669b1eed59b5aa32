package object

import "fmt"

// ParseIndirectObjectAt parses "N G obj ... endobj" starting exactly at
// byte offset in data. Exported for internal/pdfcore/xref, which locates
// offsets via the cross-reference table and hands them back here to
// materialize the actual object — keeping exactly one object grammar in
// the module instead of the teacher's two parallel ones (custom/parser.go
// and xref/parser.go each had their own PDFObject/ObjectID types).
func ParseIndirectObjectAt(data []byte, offset int64) (ObjectID, Object, error) {
	if offset < 0 || offset >= int64(len(data)) {
		return ObjectID{}, Object{}, fmt.Errorf("object offset %d out of range", offset)
	}
	p := newParser(data[offset:])
	return p.parseIndirectObject()
}

// ParseDictAt parses a bare dictionary (as found after a "trailer"
// keyword) starting at offset.
func ParseDictAt(data []byte, offset int64) (*Dict, error) {
	if offset < 0 || offset >= int64(len(data)) {
		return nil, fmt.Errorf("dict offset %d out of range", offset)
	}
	p := newParser(data[offset:])
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if val.Kind != KindDictionary {
		return nil, fmt.Errorf("expected dictionary at offset %d", offset)
	}
	return val.Dict, nil
}

// ParseStreamObjectAt parses an indirect object known to be a stream
// dictionary, returning both the dict and raw (still-encoded) bytes.
// Used by the xref package for cross-reference streams.
func ParseStreamObjectAt(data []byte, offset int64) (ObjectID, *Dict, []byte, error) {
	id, obj, err := ParseIndirectObjectAt(data, offset)
	if err != nil {
		return ObjectID{}, nil, nil, err
	}
	if obj.Kind != KindStream {
		return ObjectID{}, nil, nil, fmt.Errorf("object at %d is not a stream", offset)
	}
	return id, obj.Dict, obj.Stream, nil
}
