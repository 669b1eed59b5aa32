package form

import (
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/errors"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

var truthyValues = map[string]bool{
	"true":    true,
	"yes":     true,
	"on":      true,
	"1":       true,
	"checked": true,
	"x":       true,
}

var falseyValues = map[string]bool{
	"":          true,
	"false":     true,
	"no":        true,
	"off":       true,
	"0":         true,
	"unchecked": true,
}

// FieldInputValue looks value up in fieldValues, trying full_name first
// and falling back to partial_name, per spec.md §4.7.2.
func FieldInputValue(desc FieldDescriptor, fieldValues map[string]string) (string, bool) {
	if desc.HasFullName {
		if v, ok := fieldValues[desc.FullName]; ok {
			return v, true
		}
	}
	if desc.HasPartial {
		if v, ok := fieldValues[desc.PartialName]; ok {
			return v, true
		}
	}
	return "", false
}

// ApplyFieldValue mutates doc's stored field object (and, for buttons,
// its widgets' appearance state) to reflect value. Field type defaults
// to "Tx" when uninherited, per spec.md §4.7. Unsupported field types
// fail fast, grounded on the original's apply_field_value early return.
func ApplyFieldValue(doc *document.Document, desc FieldDescriptor, value string) error {
	fieldType := desc.FieldType
	if !desc.HasType {
		fieldType = "Tx"
	}

	switch fieldType {
	case "Tx", "Ch":
		return setTextValue(doc, desc, value)
	case "Btn":
		return setButtonValue(doc, desc, value)
	default:
		return errors.Newf(errors.FillUnsupportedField, "unsupported field type %q", fieldType).
			WithContext(desc.fieldContext())
	}
}

func setTextValue(doc *document.Document, desc FieldDescriptor, value string) error {
	obj, ok := doc.Get(desc.ID)
	if !ok || obj.Kind != object.KindDictionary {
		return errors.New(errors.FillFieldUpdateFail, "field object missing or not a dictionary").
			WithContext(desc.fieldContext())
	}
	dict := obj.Dict.Clone()
	strVal := object.StringObj(value)
	dict.Set("V", strVal)
	dict.Set("DV", strVal)
	obj.Dict = dict
	doc.Set(desc.ID, obj)
	return nil
}

// setButtonValue implements spec.md §4.7.1's three-case dispatch:
//  1. radio selection — more than one widget and the normalized value is
//     neither truthy nor falsey: treat it as the target widget's "on"
//     appearance state name (case-insensitively) and select exactly that
//     widget, forcing every other widget off.
//  2. truthy — turn widget_ids[0] on (its own on-state, or the literal
//     "Yes" default if it has none) and force every other widget off.
//  3. falsey, or anything else — turn every widget off.
//
// The field's own V is always set as a Name, never a String, for Btn
// fields, per spec.md §4.1/§4.7.1.
func setButtonValue(doc *document.Document, desc FieldDescriptor, value string) error {
	normalized := trimLowerASCII(value)

	if len(desc.WidgetIDs) > 1 && !truthyValues[normalized] && !falseyValues[normalized] {
		return setRadioSelection(doc, desc, normalized)
	}

	if truthyValues[normalized] {
		return setAllWidgetsOn(doc, desc)
	}

	return setAllWidgetsOff(doc, desc)
}

// setRadioSelection matches normalized (already trimmed and ASCII
// lowercased by setButtonValue) against each widget's on-state
// case-insensitively, per spec.md §4.7.1's eq_ignore_ascii_case rule
// (lib.rs:447-449) — "a" and " A " must both select a widget whose
// on-state is "A".
func setRadioSelection(doc *document.Document, desc FieldDescriptor, normalized string) error {
	var selectedState string
	found := false
	for _, widgetID := range desc.WidgetIDs {
		state, ok := WidgetOnState(doc, widgetID)
		if ok && trimLowerASCII(state) == normalized {
			found = true
			selectedState = state
		}
	}
	if !found {
		return errors.Newf(errors.FillButtonInvalid, "no widget has on-state matching %q", normalized).
			WithContext(desc.fieldContext())
	}

	for _, widgetID := range desc.WidgetIDs {
		state, ok := WidgetOnState(doc, widgetID)
		on := ok && state == selectedState
		if err := setWidgetAppearanceState(doc, widgetID, on, state); err != nil {
			return err
		}
	}
	return setFieldButtonV(doc, desc, selectedState)
}

// setAllWidgetsOn selects exactly widget_ids[0] — its own on-state, or
// the literal "Yes" default if it has none — and forces every other
// widget to AS="Off" regardless of whether it defines an on-state,
// preserving checkbox/radio exclusivity per spec.md §4.7.1 case 2 and
// set_button_value's truthy branch (lib.rs:468-490).
func setAllWidgetsOn(doc *document.Document, desc FieldDescriptor) error {
	chosenState := "Yes"
	if len(desc.WidgetIDs) > 0 {
		if state, ok := WidgetOnState(doc, desc.WidgetIDs[0]); ok {
			chosenState = state
		}
		if err := setWidgetAppearanceState(doc, desc.WidgetIDs[0], true, chosenState); err != nil {
			return err
		}
		for _, widgetID := range desc.WidgetIDs[1:] {
			if err := setWidgetAppearanceState(doc, widgetID, false, ""); err != nil {
				return err
			}
		}
	}
	return setFieldButtonV(doc, desc, chosenState)
}

func setAllWidgetsOff(doc *document.Document, desc FieldDescriptor) error {
	for _, widgetID := range desc.WidgetIDs {
		state, _ := WidgetOnState(doc, widgetID)
		if err := setWidgetAppearanceState(doc, widgetID, false, state); err != nil {
			return err
		}
	}
	return setFieldButtonV(doc, desc, "Off")
}

func setWidgetAppearanceState(doc *document.Document, widgetID object.ObjectID, on bool, onState string) error {
	obj, ok := doc.Get(widgetID)
	if !ok || obj.Kind != object.KindDictionary {
		return errors.Newf(errors.FillWidgetUpdateFail, "widget %s missing or not a dictionary", widgetID).
			WithContext(widgetID.String())
	}
	dict := obj.Dict.Clone()
	state := "Off"
	if on && onState != "" {
		state = onState
	}
	dict.Set("AS", object.NameObj(state))
	obj.Dict = dict
	doc.Set(widgetID, obj)
	return nil
}

func setFieldButtonV(doc *document.Document, desc FieldDescriptor, state string) error {
	obj, ok := doc.Get(desc.ID)
	if !ok || obj.Kind != object.KindDictionary {
		return errors.New(errors.FillFieldUpdateFail, "field object missing or not a dictionary").
			WithContext(desc.fieldContext())
	}
	dict := obj.Dict.Clone()
	dict.Set("V", object.NameObj(state))
	dict.Set("DV", object.NameObj(state))
	obj.Dict = dict
	doc.Set(desc.ID, obj)
	return nil
}

func (d FieldDescriptor) fieldContext() string {
	if d.HasFullName {
		return d.FullName
	}
	if d.HasPartial {
		return d.PartialName
	}
	return d.ID.String()
}
