package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictPreservesInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set("Z", Integer(1))
	d.Set("A", Integer(2))
	d.Set("M", Integer(3))

	assert.Equal(t, []string{"Z", "A", "M"}, d.Keys())
}

func TestDictSetOverwritesWithoutReordering(t *testing.T) {
	d := NewDict()
	d.Set("A", Integer(1))
	d.Set("B", Integer(2))
	d.Set("A", Integer(99))

	assert.Equal(t, []string{"A", "B"}, d.Keys())
	v, ok := d.Get("A")
	require.True(t, ok)
	assert.Equal(t, int64(99), v.Int)
}

func TestDictDelete(t *testing.T) {
	d := NewDict()
	d.Set("A", Integer(1))
	d.Set("B", Integer(2))
	d.Delete("A")

	assert.Equal(t, []string{"B"}, d.Keys())
	_, ok := d.Get("A")
	assert.False(t, ok)
}

func TestObjectCloneIsDeep(t *testing.T) {
	inner := NewDict()
	inner.Set("K", StringObj("v"))
	orig := DictObj(inner)

	clone := orig.Clone()
	clone.Dict.Set("K", StringObj("mutated"))

	v, _ := orig.Dict.Get("K")
	assert.Equal(t, "v", string(v.Str))
}

func TestParseIndirectObjectAt_SimpleDict(t *testing.T) {
	data := []byte("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	gotID, obj, err := ParseIndirectObjectAt(data, 0)
	require.NoError(t, err)
	assert.Equal(t, ObjectID{Number: 1, Generation: 0}, gotID)
	require.Equal(t, KindDictionary, obj.Kind)

	typeVal, ok := obj.Dict.Get("Type")
	require.True(t, ok)
	assert.Equal(t, "Catalog", typeVal.Name)

	pagesVal, ok := obj.Dict.Get("Pages")
	require.True(t, ok)
	assert.Equal(t, KindReference, pagesVal.Kind)
	assert.Equal(t, ObjectID{Number: 2, Generation: 0}, pagesVal.Ref)
}

func TestParseIndirectObjectAt_StreamWithDirectLength(t *testing.T) {
	data := []byte("3 0 obj\n<< /Length 5 >>\nstream\nhello\nendstream\nendobj\n")
	_, obj, err := ParseIndirectObjectAt(data, 0)
	require.NoError(t, err)
	require.Equal(t, KindStream, obj.Kind)
	assert.Equal(t, "hello", string(obj.Stream))
}

func TestParseIndirectObjectAt_StreamWithIndirectLength(t *testing.T) {
	// Length is an indirect reference the per-object parser cannot
	// resolve; it must fall back to scanning for "endstream" instead of
	// failing, unlike a parser that only handles a direct integer Length.
	data := []byte("3 0 obj\n<< /Length 9 0 R >>\nstream\nhello\nendstream\nendobj\n")
	_, obj, err := ParseIndirectObjectAt(data, 0)
	require.NoError(t, err)
	require.Equal(t, KindStream, obj.Kind)
	assert.Equal(t, "hello", string(obj.Stream))
}

func TestParseArrayAndNumbers(t *testing.T) {
	data := []byte("1 0 obj\n[1 2.5 -3 /Foo (bar)]\nendobj\n")
	_, obj, err := ParseIndirectObjectAt(data, 0)
	require.NoError(t, err)
	require.Equal(t, KindArray, obj.Kind)
	require.Len(t, obj.Items, 5)
	assert.Equal(t, int64(1), obj.Items[0].Int)
	assert.InDelta(t, 2.5, obj.Items[1].Real, 0.0001)
	assert.Equal(t, int64(-3), obj.Items[2].Int)
	assert.Equal(t, "Foo", obj.Items[3].Name)
	assert.Equal(t, "bar", string(obj.Items[4].Str))
}

func TestParseReferenceLookahead(t *testing.T) {
	// "5 0 R" must be recognized as a reference, not three bare numbers.
	data := []byte("1 0 obj\n[5 0 R 7]\nendobj\n")
	_, obj, err := ParseIndirectObjectAt(data, 0)
	require.NoError(t, err)
	require.Len(t, obj.Items, 2)
	assert.Equal(t, KindReference, obj.Items[0].Kind)
	assert.Equal(t, ObjectID{Number: 5, Generation: 0}, obj.Items[0].Ref)
	assert.Equal(t, int64(7), obj.Items[1].Int)
}

func TestParseHexString(t *testing.T) {
	data := []byte("1 0 obj\n<48656C6C6F>\nendobj\n")
	_, obj, err := ParseIndirectObjectAt(data, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(obj.Str))
}
