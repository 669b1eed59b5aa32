// Package document implements C1 (Object Resolver) and the Load/Write
// halves of C8 (Document Lifecycle): parsing a whole PDF's object table
// up front and re-serializing a mutated one.
package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/xref"
)

// Document owns the full object table, the effective trailer, and the
// next-free object number for AddObject. Grounded on spec.md §9's
// "arena + index" design note: every cross-reference is a plain
// object.ObjectID value, never an ownership edge.
type Document struct {
	Objects map[object.ObjectID]object.Object
	Trailer *object.Dict
	Version string
	nextNum int64
}

// Load parses data's whole object table eagerly: locates the
// cross-reference chain, then materializes every object it names.
// Fails with a plain error on malformed input; the engine package maps
// that to BW_PDF_INVALID.
func Load(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	version := detectVersion(data)

	loaded, err := xref.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading cross-reference table: %w", err)
	}

	doc := &Document{
		Objects: make(map[object.ObjectID]object.Object, len(loaded.Offsets)),
		Trailer: loaded.Trailer,
		Version: version,
	}

	for id, off := range loaded.Offsets {
		gotID, obj, err := object.ParseIndirectObjectAt(data, off)
		if err != nil {
			// Skip objects the per-object parser can't materialize
			// rather than failing the whole load: a single damaged
			// object shouldn't hide the rest of the document, the same
			// tolerance spec.md §7 mandates for detect's page loop.
			continue
		}
		if gotID != id {
			// Offset table disagreement; trust what's actually on disk.
			doc.Objects[gotID] = obj
			if gotID.Number >= doc.nextNum {
				doc.nextNum = gotID.Number + 1
			}
			continue
		}
		doc.Objects[id] = obj
		if id.Number >= doc.nextNum {
			doc.nextNum = id.Number + 1
		}
	}

	if doc.Trailer == nil {
		return nil, fmt.Errorf("no trailer dictionary found")
	}
	return doc, nil
}

func detectVersion(data []byte) string {
	const prefix = "%PDF-"
	idx := strings.Index(string(data), prefix)
	if idx < 0 {
		return "1.4"
	}
	rest := data[idx+len(prefix):]
	end := 0
	for end < len(rest) && end < 8 && (rest[end] == '.' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	if end == 0 {
		return "1.4"
	}
	return string(rest[:end])
}

// EnsureNextObjectNumber raises the counter AddObject draws fresh
// numbers from, if n is higher than what's already tracked. Exists for
// callers (tests, fixture builders) that populate Objects directly
// rather than through AddObject.
func (d *Document) EnsureNextObjectNumber(n int64) {
	if n > d.nextNum {
		d.nextNum = n
	}
}

// AddObject inserts obj as a fresh indirect object and returns its id,
// matching C8's "clone into a fresh object" step for inline-dictionary
// normalization (e.g. an inline AcroForm).
func (d *Document) AddObject(obj object.Object) object.ObjectID {
	id := object.ObjectID{Number: d.nextNum, Generation: 0}
	d.nextNum++
	d.Objects[id] = obj
	return id
}

// Get returns the raw (unresolved) object stored at id.
func (d *Document) Get(id object.ObjectID) (object.Object, bool) {
	o, ok := d.Objects[id]
	return o, ok
}

// Set overwrites the object stored at id.
func (d *Document) Set(id object.ObjectID, obj object.Object) {
	d.Objects[id] = obj
}

// Resolve dereferences obj if it is a Reference, returning a clone of
// the target; otherwise returns a clone of obj itself. Fails only when
// the reference is dangling, per spec.md §4.1.
func (d *Document) Resolve(obj object.Object) (object.Object, bool) {
	if obj.Kind != object.KindReference {
		return obj.Clone(), true
	}
	target, ok := d.Objects[obj.Ref]
	if !ok {
		return object.Object{}, false
	}
	return target.Clone(), true
}

// AsNumber coerces obj (Integer or Real) to a float32, per spec.md §4.1.
func AsNumber(obj object.Object) (float32, bool) {
	switch obj.Kind {
	case object.KindInteger:
		return float32(obj.Int), true
	case object.KindReal:
		return float32(obj.Real), true
	default:
		return 0, false
	}
}

// AsName decodes a Name object's bytes lossily as UTF-8, trimmed; an
// empty result is treated as absent.
func AsName(obj object.Object) (string, bool) {
	if obj.Kind != object.KindName {
		return "", false
	}
	return canonicalText(obj.Name), obj.Name != "" && canonicalText(obj.Name) != ""
}

// AsText decodes a String or Name object's bytes lossily as UTF-8, NULs
// and surrounding whitespace stripped; empty becomes absent.
func AsText(obj object.Object) (string, bool) {
	var raw string
	switch obj.Kind {
	case object.KindString:
		raw = string(obj.Str)
	case object.KindName:
		raw = obj.Name
	default:
		return "", false
	}
	text := canonicalText(raw)
	if text == "" {
		return "", false
	}
	return text, true
}

// canonicalText lossily decodes s as UTF-8 (invalid sequences become
// U+FFFD, mirroring lib.rs:88's String::from_utf8_lossy), then strips
// embedded NULs and surrounding whitespace, per spec.md §3's
// "Empty-text canonicalization" invariant and §4.1's mandatory
// lossy-decode rule.
func canonicalText(s string) string {
	s = strings.ToValidUTF8(s, string(utf8.RuneError))
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

// AsReference returns obj's target id if obj is a Reference.
func AsReference(obj object.Object) (object.ObjectID, bool) {
	if obj.Kind != object.KindReference {
		return object.ObjectID{}, false
	}
	return obj.Ref, true
}

// DictText looks up key in dict, resolves indirection, then extracts
// text via AsText.
func (d *Document) DictText(dict *object.Dict, key string) (string, bool) {
	v, ok := dict.Get(key)
	if !ok {
		return "", false
	}
	resolved, ok := d.Resolve(v)
	if !ok {
		return "", false
	}
	return AsText(resolved)
}
