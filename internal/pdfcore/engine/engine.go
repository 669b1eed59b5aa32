// Package engine implements C8, the Document Lifecycle, and exposes the
// two public operations spec.md §6 names: Detect and Fill. It ties
// C1-C7 together in load → catalog → AcroForm normalization →
// field-discovery → apply → serialize order. Grounded on
// original_source/rust/pdftool_core/src/lib.rs's detect_blocks and
// fill_blocks top-level control flow, orchestration shaped after the
// teacher's internal/pdf/service.go (a thin Service that wires
// lower-level components together and translates failures into the
// stable error envelope).
package engine

import (
	"encoding/json"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/blocks"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/errors"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/form"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// Block is the public detect result record, re-exported from the blocks
// package so callers don't need to import it directly.
type Block = blocks.Block

// Detect parses pdfBytes and returns every form widget it finds, in page
// order. It reads and never mutates; no new document is produced.
func Detect(pdfBytes []byte) ([]Block, error) {
	if len(pdfBytes) == 0 {
		return nil, errors.New(errors.PDFEmpty, "empty PDF payload")
	}

	doc, err := document.Load(pdfBytes)
	if err != nil {
		return nil, errors.Newf(errors.PDFInvalid, "%s", err).WithContext("document.Load")
	}

	catalogID, err := rootCatalogID(doc)
	if err != nil {
		return nil, err
	}
	catalogObj, ok := doc.Get(catalogID)
	if !ok || catalogObj.Kind != object.KindDictionary {
		return nil, errors.New(errors.FormCatalogInvalid, "catalog object missing or not a dictionary").
			WithContext("catalog dictionary")
	}

	found, err := blocks.Detect(doc, catalogObj.Dict)
	if err != nil {
		return nil, err
	}
	if found == nil {
		found = []Block{}
	}
	return found, nil
}

// Fill parses pdfBytes, validates the advisory blocksHint payload for
// schema only, applies fieldValues to matching form fields, and returns
// a freshly serialized, self-contained PDF.
func Fill(pdfBytes []byte, blocksHint []byte, fieldValues map[string]string) ([]byte, error) {
	if len(pdfBytes) == 0 {
		return nil, errors.New(errors.PDFEmpty, "empty PDF payload")
	}

	if err := validateBlocksHint(blocksHint); err != nil {
		return nil, err
	}

	doc, err := document.Load(pdfBytes)
	if err != nil {
		return nil, errors.Newf(errors.PDFInvalid, "%s", err).WithContext("document.Load")
	}

	catalogID, err := rootCatalogID(doc)
	if err != nil {
		return nil, err
	}

	acroformID, err := ensureAcroFormObject(doc, catalogID)
	if err != nil {
		return nil, err
	}

	acroformObj, ok := doc.Get(acroformID)
	if !ok || acroformObj.Kind != object.KindDictionary {
		return nil, errors.New(errors.FormAcroFormInvalid, "AcroForm object missing or not a dictionary").
			WithContext("AcroForm dictionary")
	}
	acroform := acroformObj.Dict.Clone()
	acroform.Set("NeedAppearances", object.Boolean(true))
	acroformObj.Dict = acroform
	doc.Set(acroformID, acroformObj)

	fieldsRoot, ok := acroform.Get("Fields")
	if !ok {
		return nil, errors.New(errors.FormFieldsMissing, "AcroForm has no Fields entry").
			WithContext("AcroForm.Fields")
	}

	fieldIDs := form.CollectFieldIDs(doc, fieldsRoot)
	if len(fieldIDs) == 0 {
		return nil, errors.New(errors.FormFieldsEmpty, "AcroForm.Fields does not contain fillable fields")
	}

	descriptors := make([]form.FieldDescriptor, 0, len(fieldIDs))
	for _, id := range fieldIDs {
		desc, ok := form.DescribeField(doc, id)
		if !ok {
			continue
		}
		descriptors = append(descriptors, desc)
	}

	updated := 0
	for _, desc := range descriptors {
		value, ok := form.FieldInputValue(desc, fieldValues)
		if !ok {
			continue
		}
		if err := form.ApplyFieldValue(doc, desc, value); err != nil {
			return nil, err
		}
		updated++
	}

	if updated == 0 && len(fieldValues) != 0 {
		return nil, errors.New(errors.FillNoMatchingFields,
			"none of the provided input keys matched PDF form field names")
	}

	out, err := document.Write(doc)
	if err != nil {
		return nil, errors.Newf(errors.FillSaveFailed, "%s", err).WithContext("document.Write")
	}
	return out, nil
}

// rootCatalogID resolves trailer.Root as a Reference, per spec.md §4.8.
func rootCatalogID(doc *document.Document) (object.ObjectID, error) {
	rootVal, ok := doc.Trailer.Get("Root")
	if !ok {
		return object.ObjectID{}, errors.New(errors.PDFRootMissing, "trailer has no Root entry").
			WithContext("trailer.Root")
	}
	id, ok := document.AsReference(rootVal)
	if !ok {
		return object.ObjectID{}, errors.New(errors.PDFRootInvalid, "trailer.Root is not an object reference").
			WithContext("trailer.Root")
	}
	return id, nil
}

// ensureAcroFormObject fetches catalog.AcroForm, normalizing an inline
// dictionary into a fresh indirect object so later mutation has a stable
// target, per spec.md §4.8.
func ensureAcroFormObject(doc *document.Document, catalogID object.ObjectID) (object.ObjectID, error) {
	catalogObj, ok := doc.Get(catalogID)
	if !ok || catalogObj.Kind != object.KindDictionary {
		return object.ObjectID{}, errors.New(errors.FormCatalogInvalid, "catalog object missing or not a dictionary").
			WithContext("catalog dictionary")
	}

	acroFormVal, ok := catalogObj.Dict.Get("AcroForm")
	if !ok {
		return object.ObjectID{}, errors.New(errors.FormMissingAcroForm, "catalog has no AcroForm entry").
			WithContext("catalog.AcroForm")
	}

	switch acroFormVal.Kind {
	case object.KindReference:
		return acroFormVal.Ref, nil
	case object.KindDictionary:
		newID := doc.AddObject(object.DictObj(acroFormVal.Dict.Clone()))
		catalog := catalogObj.Dict.Clone()
		catalog.Set("AcroForm", object.Reference(newID))
		catalogObj.Dict = catalog
		doc.Set(catalogID, catalogObj)
		return newID, nil
	default:
		return object.ObjectID{}, errors.New(errors.FormAcroFormInvalid,
			"catalog.AcroForm must be a dictionary or reference").
			WithContext("catalog.AcroForm")
	}
}

// blockHintPayload mirrors the public Block shape for schema-only
// validation of Fill's advisory blocksHint argument, which spec.md §6
// says is parsed but never consulted for content.
type blockHintPayload struct {
	Label  string  `json:"label"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func validateBlocksHint(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	var hint []blockHintPayload
	if err := json.Unmarshal(raw, &hint); err != nil {
		return errors.Newf(errors.BlocksPayloadInvalid, "%s", err).WithContext("fill blocksHint argument")
	}
	return nil
}
