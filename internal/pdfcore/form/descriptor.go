package form

import (
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// FieldDescriptor is C4's output: everything downstream operations need
// to know about one field, resolved once up front.
type FieldDescriptor struct {
	ID          object.ObjectID
	PartialName string
	HasPartial  bool
	FullName    string
	HasFullName bool
	FieldType   string
	HasType     bool
	WidgetIDs   []object.ObjectID
}

// DescribeField builds a FieldDescriptor for fieldID. full_name and
// field_type walk the Parent chain (self first, depth capped at 48);
// widget_ids include fieldID itself when the field dictionary doubles as
// its own (sole) widget, followed by any descendant Widget annotations
// reached through Kids.
func DescribeField(doc *document.Document, fieldID object.ObjectID) (FieldDescriptor, bool) {
	obj, ok := doc.Get(fieldID)
	if !ok || obj.Kind != object.KindDictionary {
		return FieldDescriptor{}, false
	}

	desc := FieldDescriptor{ID: fieldID}
	desc.PartialName, desc.HasPartial = fieldPartialName(doc, obj.Dict)
	desc.FullName, desc.HasFullName = fieldFullName(doc, fieldID, 0)
	desc.FieldType, desc.HasType = fieldType(doc, fieldID, 0)

	var widgetIDs []object.ObjectID
	if isWidgetDict(doc, obj.Dict) {
		widgetIDs = append(widgetIDs, fieldID)
	}
	if kids, ok := obj.Dict.Get("Kids"); ok {
		visited := map[object.ObjectID]bool{fieldID: true}
		collectWidgetIDs(doc, kids, &widgetIDs, visited)
	}
	desc.WidgetIDs = widgetIDs

	return desc, true
}

// WidgetOnState reads widgetID's appearance dictionary (AP → N) and
// returns the first sub-dictionary key that isn't "Off" — the widget's
// "on" appearance state name, per spec.md §4.5.
func WidgetOnState(doc *document.Document, widgetID object.ObjectID) (string, bool) {
	obj, ok := doc.Get(widgetID)
	if !ok || obj.Kind != object.KindDictionary {
		return "", false
	}
	apVal, ok := obj.Dict.Get("AP")
	if !ok {
		return "", false
	}
	ap, ok := doc.Resolve(apVal)
	if !ok || ap.Kind != object.KindDictionary {
		return "", false
	}
	nVal, ok := ap.Dict.Get("N")
	if !ok {
		return "", false
	}
	n, ok := doc.Resolve(nVal)
	if !ok || n.Kind != object.KindDictionary {
		return "", false
	}
	for _, key := range n.Dict.Keys() {
		if key != "Off" {
			return key, true
		}
	}
	return "", false
}
