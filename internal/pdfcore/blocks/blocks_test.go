package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/errors"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/testutil"
)

func id(n int64) object.ObjectID { return object.ObjectID{Number: n} }
func ref(n int64) object.Object  { return object.Reference(id(n)) }

func TestDetectTextFieldFormOwnLabel(t *testing.T) {
	doc := testutil.TextFieldForm()
	catalog, _ := doc.Get(id(1))

	out, err := Detect(doc, catalog.Dict)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "name", out[0].Label)
	assert.Equal(t, Block{Label: "name", X: 10, Y: 20, Width: 100, Height: 20}, out[0])
}

func TestDetectRadioFormUsesParentLabel(t *testing.T) {
	doc := testutil.RadioButtonForm()
	catalog, _ := doc.Get(id(1))

	out, err := Detect(doc, catalog.Dict)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "choice", out[0].Label)
	assert.Equal(t, "choice", out[1].Label)
}

func TestDetectFallbackLabelWhenNoTAnywhere(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	widget := object.NewDict()
	widget.Set("Subtype", object.NameObj("Widget"))
	widget.Set("Rect", object.ArrayObj([]object.Object{
		object.Integer(0), object.Integer(0), object.Integer(10), object.Integer(10),
	}))
	doc.Objects[id(4)] = object.DictObj(widget)

	page := object.NewDict()
	page.Set("Type", object.NameObj("Page"))
	page.Set("Annots", object.ArrayObj([]object.Object{ref(4)}))
	doc.Objects[id(3)] = object.DictObj(page)

	pages := object.NewDict()
	pages.Set("Kids", object.ArrayObj([]object.Object{ref(3)}))
	doc.Objects[id(2)] = object.DictObj(pages)

	catalog := object.NewDict()
	catalog.Set("Pages", ref(2))
	doc.Objects[id(1)] = object.DictObj(catalog)

	out, err := Detect(doc, catalog)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "field_1_1", out[0].Label)
}

func TestDetectMissingPagesFails(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}
	catalog := object.NewDict()

	_, err := Detect(doc, catalog)
	assert.Error(t, err)
}

func TestDetectDanglingPageObjectIsHardFail(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	pages := object.NewDict()
	pages.Set("Kids", object.ArrayObj([]object.Object{ref(99)})) // 99 never defined
	doc.Objects[id(2)] = object.DictObj(pages)

	catalog := object.NewDict()
	catalog.Set("Pages", ref(2))
	doc.Objects[id(1)] = object.DictObj(catalog)

	_, err := Detect(doc, catalog)
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.PDFPageReadFailed, ce.Code)
}

func TestDetectNonDictionaryPageObjectIsHardFail(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	doc.Objects[id(3)] = object.Integer(42) // page object is not a dictionary

	pages := object.NewDict()
	pages.Set("Kids", object.ArrayObj([]object.Object{ref(3)}))
	doc.Objects[id(2)] = object.DictObj(pages)

	catalog := object.NewDict()
	catalog.Set("Pages", ref(2))
	doc.Objects[id(1)] = object.DictObj(catalog)

	_, err := Detect(doc, catalog)
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.PDFPageInvalid, ce.Code)
}

func TestDetectMissingAnnotsIsSilentSkip(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	page := object.NewDict() // no Annots at all
	doc.Objects[id(3)] = object.DictObj(page)

	pages := object.NewDict()
	pages.Set("Kids", object.ArrayObj([]object.Object{ref(3)}))
	doc.Objects[id(2)] = object.DictObj(pages)

	catalog := object.NewDict()
	catalog.Set("Pages", ref(2))
	doc.Objects[id(1)] = object.DictObj(catalog)

	out, err := Detect(doc, catalog)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDetectNonWidgetAnnotationSkipped(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	link := object.NewDict()
	link.Set("Subtype", object.NameObj("Link"))
	doc.Objects[id(4)] = object.DictObj(link)

	page := object.NewDict()
	page.Set("Annots", object.ArrayObj([]object.Object{ref(4)}))
	doc.Objects[id(3)] = object.DictObj(page)

	pages := object.NewDict()
	pages.Set("Kids", object.ArrayObj([]object.Object{ref(3)}))
	doc.Objects[id(2)] = object.DictObj(pages)

	catalog := object.NewDict()
	catalog.Set("Pages", ref(2))
	doc.Objects[id(1)] = object.DictObj(catalog)

	out, err := Detect(doc, catalog)
	require.NoError(t, err)
	assert.Empty(t, out)
}
