// Package geometry implements C2, the Geometry Extractor: decoding a
// 4-element PDF rectangle array into (x, y, width, height) user-space
// coordinates.
package geometry

import (
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// Rect is a canonicalized PDF-user-space rectangle: origin at the
// lower-left corner, width and height non-negative.
type Rect struct {
	X, Y, Width, Height float32
}

// RectFrom decodes obj as a rectangle. Grounded on
// original_source/rust/pdftool_core/src/lib.rs's rect_from_object: obj
// must be an Array of exactly four number-coercible elements; no
// indirection is resolved here, matching spec.md §4.2's "the caller must
// resolve first if the rect is itself referenced".
func RectFrom(obj object.Object) (Rect, bool) {
	if obj.Kind != object.KindArray || len(obj.Items) != 4 {
		return Rect{}, false
	}
	var n [4]float32
	for i, item := range obj.Items {
		v, ok := document.AsNumber(item)
		if !ok {
			return Rect{}, false
		}
		n[i] = v
	}
	llx, lly, urx, ury := n[0], n[1], n[2], n[3]
	return Rect{
		X:      min32(llx, urx),
		Y:      min32(lly, ury),
		Width:  abs32(urx - llx),
		Height: abs32(ury - lly),
	}, true
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func abs32(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}
