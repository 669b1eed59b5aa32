package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/testutil"
)

func id(n int64) object.ObjectID { return object.ObjectID{Number: n} }
func ref(n int64) object.Object  { return object.Reference(id(n)) }

func TestCollectFieldIDsTextForm(t *testing.T) {
	doc := testutil.TextFieldForm()
	acroform, _ := doc.Get(id(5))
	fieldsVal, _ := acroform.Dict.Get("Fields")

	ids := CollectFieldIDs(doc, fieldsVal)
	assert.Equal(t, []object.ObjectID{id(4)}, ids)
}

func TestCollectFieldIDsCycleTerminates(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	a := object.NewDict()
	a.Set("Kids", object.ArrayObj([]object.Object{ref(2)}))
	doc.Objects[id(1)] = object.DictObj(a)

	b := object.NewDict()
	b.Set("Kids", object.ArrayObj([]object.Object{ref(1)})) // cycle back to a
	doc.Objects[id(2)] = object.DictObj(b)

	ids := CollectFieldIDs(doc, ref(1))
	assert.ElementsMatch(t, []object.ObjectID{id(1), id(2)}, ids)
	assert.Len(t, ids, 2, "each id visited exactly once despite the cycle")
}

func TestCollectWidgetIDsForFieldFiltersNonWidgets(t *testing.T) {
	doc := testutil.RadioButtonForm()
	field, _ := doc.Get(id(4))
	kids, _ := field.Dict.Get("Kids")

	widgetIDs := CollectWidgetIDsForField(doc, kids)
	assert.ElementsMatch(t, []object.ObjectID{id(5), id(6)}, widgetIDs)
}

func TestFieldFullNameComposesDottedAncestors(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	parent := object.NewDict()
	parent.Set("T", object.StringObj("parent"))
	doc.Objects[id(1)] = object.DictObj(parent)

	child := object.NewDict()
	child.Set("T", object.StringObj("child"))
	child.Set("Parent", ref(1))
	doc.Objects[id(2)] = object.DictObj(child)

	full, ok := fieldFullName(doc, id(2), 0)
	require.True(t, ok)
	assert.Equal(t, "parent.child", full)
}

func TestFieldFullNameSkipsMissingPartial(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	parent := object.NewDict()
	parent.Set("T", object.StringObj("parent"))
	doc.Objects[id(1)] = object.DictObj(parent)

	child := object.NewDict()
	child.Set("Parent", ref(1))
	doc.Objects[id(2)] = object.DictObj(child)

	full, ok := fieldFullName(doc, id(2), 0)
	require.True(t, ok)
	assert.Equal(t, "parent", full)
}

func TestFieldFullNameDepthCapTerminates(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	// A chain of 60 self-referential ancestors, deeper than maxDepth,
	// each naming the next as Parent without ever closing a cycle.
	for n := int64(1); n <= 60; n++ {
		d := object.NewDict()
		d.Set("T", object.StringObj("n"))
		if n > 1 {
			d.Set("Parent", ref(n-1))
		}
		doc.Objects[id(n)] = object.DictObj(d)
	}

	_, ok := fieldFullName(doc, id(60), 0)
	assert.False(t, ok, "a chain deeper than maxDepth must fail rather than hang")
}

func TestFieldTypeInheritsFromParent(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	parent := object.NewDict()
	parent.Set("FT", object.NameObj("Btn"))
	doc.Objects[id(1)] = object.DictObj(parent)

	child := object.NewDict()
	child.Set("Parent", ref(1))
	doc.Objects[id(2)] = object.DictObj(child)

	ft, ok := fieldType(doc, id(2), 0)
	require.True(t, ok)
	assert.Equal(t, "Btn", ft)
}

func TestFieldTypeSelfWinsOverParent(t *testing.T) {
	doc := &document.Document{Objects: make(map[object.ObjectID]object.Object), Trailer: object.NewDict()}

	parent := object.NewDict()
	parent.Set("FT", object.NameObj("Btn"))
	doc.Objects[id(1)] = object.DictObj(parent)

	child := object.NewDict()
	child.Set("FT", object.NameObj("Tx"))
	child.Set("Parent", ref(1))
	doc.Objects[id(2)] = object.DictObj(child)

	ft, ok := fieldType(doc, id(2), 0)
	require.True(t, ok)
	assert.Equal(t, "Tx", ft)
}

func TestTrimLowerASCII(t *testing.T) {
	assert.Equal(t, "yes", trimLowerASCII("  YES  "))
	assert.Equal(t, "", trimLowerASCII("   "))
	assert.Equal(t, "x", trimLowerASCII("X"))
}
