// Package blocks implements C6, the Block Detector: per-page widget
// enumeration producing the flat list the detect operation returns.
// Grounded on original_source/rust/pdftool_core/src/lib.rs's
// detect_blocks and its lopdf-equivalent page-tree walk, stylistically
// shaped by the teacher's internal/pdf/custom/acroform.go page-dictionary
// handling.
package blocks

import (
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// pageRef pairs a 1-based page number with its object id, in document
// page order.
type pageRef struct {
	Number int
	ID     object.ObjectID
}

// collectPages walks the page tree rooted at pagesID depth-first,
// following Kids in order; a node with no Kids is a leaf page, and so is
// a node that is missing or not a dictionary (Detect then reports it as
// BW_PDF_PAGE_READ_FAILED / BW_PDF_PAGE_INVALID). Mirrors
// lopdf's Document::get_pages traversal that the original's detect_blocks
// relies on for page numbering.
func collectPages(doc *document.Document, pagesID object.ObjectID) []pageRef {
	var out []pageRef
	visited := make(map[object.ObjectID]bool)
	walkPages(doc, pagesID, &out, visited)
	return out
}

func walkPages(doc *document.Document, id object.ObjectID, out *[]pageRef, visited map[object.ObjectID]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	obj, ok := doc.Get(id)
	if !ok || obj.Kind != object.KindDictionary {
		*out = append(*out, pageRef{Number: len(*out) + 1, ID: id})
		return
	}

	kidsVal, hasKids := obj.Dict.Get("Kids")
	if !hasKids {
		*out = append(*out, pageRef{Number: len(*out) + 1, ID: id})
		return
	}

	kids, ok := doc.Resolve(kidsVal)
	if !ok || kids.Kind != object.KindArray {
		*out = append(*out, pageRef{Number: len(*out) + 1, ID: id})
		return
	}
	for _, item := range kids.Items {
		kidID, ok := document.AsReference(item)
		if !ok {
			continue
		}
		walkPages(doc, kidID, out, visited)
	}
}
