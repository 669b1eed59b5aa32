// Package form implements C3 (Field Graph Walker), C4 (Field Descriptor
// Builder), C5 (Widget Appearance Reader), and C7 (Field Value
// Applicator). Grounded line-for-line on
// original_source/rust/pdftool_core/src/lib.rs's collect_field_ids,
// field_full_name, field_type, describe_field, widget_on_state,
// set_button_value, apply_field_value, and field_input_value — the
// Rust/wasm crate spec.md was distilled from — stylistically shaped by
// the teacher's internal/pdf/custom/acroform.go field-tree walk.
package form

import (
	"strings"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// maxDepth bounds every ancestor walk, per spec.md §3/§5.
const maxDepth = 48

// CollectFieldIDs walks root (typically AcroForm.Fields) and returns
// every field object id encountered, each at most once, in pre-order.
// Semantics by variant of root, per spec.md §4.3:
//   - Reference: if unseen, record it, emit it, then recurse into the
//     referenced dictionary's Kids.
//   - Array: recurse each element.
//   - Dictionary: recurse Kids; inline dictionaries have no stable
//     identity and contribute no id themselves.
//   - Other: no-op.
func CollectFieldIDs(doc *document.Document, root object.Object) []object.ObjectID {
	var out []object.ObjectID
	visited := make(map[object.ObjectID]bool)
	collectFieldIDs(doc, root, &out, visited)
	return out
}

func collectFieldIDs(doc *document.Document, obj object.Object, out *[]object.ObjectID, visited map[object.ObjectID]bool) {
	switch obj.Kind {
	case object.KindReference:
		id := obj.Ref
		if visited[id] {
			return
		}
		visited[id] = true
		*out = append(*out, id)

		target, ok := doc.Get(id)
		if !ok || target.Kind != object.KindDictionary {
			return
		}
		if kids, ok := target.Dict.Get("Kids"); ok {
			collectFieldIDs(doc, kids, out, visited)
		}
	case object.KindArray:
		for _, item := range obj.Items {
			collectFieldIDs(doc, item, out, visited)
		}
	case object.KindDictionary:
		if kids, ok := obj.Dict.Get("Kids"); ok {
			collectFieldIDs(doc, kids, out, visited)
		}
	default:
		// no-op
	}
}

// CollectWidgetIDsForField walks the same shape as CollectFieldIDs but
// only emits ids whose resolved object is a Widget annotation dictionary
// (Subtype = "Widget").
func CollectWidgetIDsForField(doc *document.Document, root object.Object) []object.ObjectID {
	var out []object.ObjectID
	visited := make(map[object.ObjectID]bool)
	collectWidgetIDs(doc, root, &out, visited)
	return out
}

func collectWidgetIDs(doc *document.Document, obj object.Object, out *[]object.ObjectID, visited map[object.ObjectID]bool) {
	switch obj.Kind {
	case object.KindReference:
		id := obj.Ref
		if visited[id] {
			return
		}
		visited[id] = true

		target, ok := doc.Get(id)
		if !ok || target.Kind != object.KindDictionary {
			return
		}
		if isWidgetDict(doc, target.Dict) {
			*out = append(*out, id)
		}
		if kids, ok := target.Dict.Get("Kids"); ok {
			collectWidgetIDs(doc, kids, out, visited)
		}
	case object.KindArray:
		for _, item := range obj.Items {
			collectWidgetIDs(doc, item, out, visited)
		}
	case object.KindDictionary:
		if kids, ok := obj.Dict.Get("Kids"); ok {
			collectWidgetIDs(doc, kids, out, visited)
		}
	default:
	}
}

// isWidgetDict reports whether dict's Subtype is the byte-exact Name
// "Widget", per spec.md §9's "bytes as names" rule.
func isWidgetDict(doc *document.Document, dict *object.Dict) bool {
	v, ok := dict.Get("Subtype")
	if !ok {
		return false
	}
	resolved, ok := doc.Resolve(v)
	if !ok {
		return false
	}
	return resolved.Kind == object.KindName && resolved.Name == "Widget"
}

// fieldParentID returns field's Parent id, if it names one by reference.
func fieldParentID(dict *object.Dict) (object.ObjectID, bool) {
	v, ok := dict.Get("Parent")
	if !ok {
		return object.ObjectID{}, false
	}
	return document.AsReference(v)
}

// fieldPartialName returns field's own T entry as text.
func fieldPartialName(doc *document.Document, dict *object.Dict) (string, bool) {
	return doc.DictText(dict, "T")
}

// fieldFullName computes the dotted ancestor-composed name, per
// spec.md §3's full-name-composition invariant: depth bounded at 48. A
// Parent chain longer than that yields an absent name, not a truncated one.
func fieldFullName(doc *document.Document, id object.ObjectID, depth int) (string, bool) {
	if depth > maxDepth {
		return "", false
	}
	if depth == 0 {
		cur, links := id, 0
		for {
			o, ok := doc.Get(cur)
			if !ok || o.Kind != object.KindDictionary {
				break
			}
			p, ok := fieldParentID(o.Dict)
			if !ok {
				break
			}
			if links++; links > maxDepth {
				return "", false
			}
			cur = p
		}
	}
	obj, ok := doc.Get(id)
	if !ok || obj.Kind != object.KindDictionary {
		return "", false
	}

	partial, hasPartial := fieldPartialName(doc, obj.Dict)

	parentID, hasParent := fieldParentID(obj.Dict)
	var parentFull string
	var hasParentFull bool
	if hasParent {
		parentFull, hasParentFull = fieldFullName(doc, parentID, depth+1)
	}

	switch {
	case hasPartial && hasParentFull:
		return parentFull + "." + partial, true
	case !hasPartial && hasParentFull:
		return parentFull, true
	case hasPartial && !hasParentFull:
		return partial, true
	default:
		return "", false
	}
}

// fieldType computes the inherited FT name: the first ancestor (self
// first) carrying an FT entry wins, depth bounded at 48.
func fieldType(doc *document.Document, id object.ObjectID, depth int) (string, bool) {
	if depth > maxDepth {
		return "", false
	}
	obj, ok := doc.Get(id)
	if !ok || obj.Kind != object.KindDictionary {
		return "", false
	}

	if v, ok := obj.Dict.Get("FT"); ok {
		if resolved, ok := doc.Resolve(v); ok {
			if name, ok := document.AsName(resolved); ok {
				return name, true
			}
		}
	}

	if parentID, ok := fieldParentID(obj.Dict); ok {
		return fieldType(doc, parentID, depth+1)
	}
	return "", false
}

// trimLowerASCII folds s to ASCII lowercase after trimming whitespace,
// matching §4.7.1's normalization step for button values.
func trimLowerASCII(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		b.WriteRune(r)
	}
	return b.String()
}
