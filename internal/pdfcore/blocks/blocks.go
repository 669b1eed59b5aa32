package blocks

import (
	"strconv"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/document"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/errors"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/geometry"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/object"
)

// Block is one detected form widget: a label and its page geometry.
type Block struct {
	Label  string
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Detect enumerates every Widget annotation reachable from catalog's
// page tree, in page order. A page object that fails to resolve or
// isn't a dictionary aborts the whole call (BW_PDF_PAGE_READ_FAILED /
// BW_PDF_PAGE_INVALID); everything below the page level — a missing or
// malformed Annots array, an unresolvable annotation, a non-Widget
// annotation, a widget without a Rect — is silently skipped, per
// spec.md §4.6 and the original's detect_blocks.
func Detect(doc *document.Document, catalog *object.Dict) ([]Block, error) {
	pagesVal, ok := catalog.Get("Pages")
	if !ok {
		return nil, errors.New(errors.FormCatalogInvalid, "catalog has no Pages entry")
	}
	pagesID, ok := document.AsReference(pagesVal)
	if !ok {
		return nil, errors.New(errors.FormCatalogInvalid, "catalog Pages is not a reference")
	}

	pages := collectPages(doc, pagesID)

	var out []Block
	for _, page := range pages {
		pageObj, ok := doc.Get(page.ID)
		if !ok {
			return nil, errors.Newf(errors.PDFPageReadFailed, "page %d object not found", page.Number).
				WithContext(page.ID.String())
		}
		if pageObj.Kind != object.KindDictionary {
			return nil, errors.Newf(errors.PDFPageInvalid, "page %d object is not a dictionary", page.Number).
				WithContext(page.ID.String())
		}

		annotsVal, ok := pageObj.Dict.Get("Annots")
		if !ok {
			continue
		}
		annots, ok := doc.Resolve(annotsVal)
		if !ok || annots.Kind != object.KindArray {
			continue
		}

		for i, annotRef := range annots.Items {
			widget, ok := doc.Resolve(annotRef)
			if !ok || widget.Kind != object.KindDictionary {
				continue
			}
			if !isWidgetSubtype(widget.Dict) {
				continue
			}

			rectVal, ok := widget.Dict.Get("Rect")
			if !ok {
				continue
			}
			resolvedRect, ok := doc.Resolve(rectVal)
			if !ok {
				continue
			}
			rect, ok := geometry.RectFrom(resolvedRect)
			if !ok {
				continue
			}

			fallback := fallbackLabel(page.Number, i+1)
			label := widgetLabel(doc, widget.Dict, fallback)

			out = append(out, Block{
				Label:  label,
				X:      rect.X,
				Y:      rect.Y,
				Width:  rect.Width,
				Height: rect.Height,
			})
		}
	}

	return out, nil
}

func isWidgetSubtype(dict *object.Dict) bool {
	v, ok := dict.Get("Subtype")
	if !ok {
		return false
	}
	return v.Kind == object.KindName && v.Name == "Widget"
}

// widgetLabel computes the label per §4.6: the widget's own T, else its
// resolved Parent's T, else fallback.
func widgetLabel(doc *document.Document, widget *object.Dict, fallback string) string {
	if label, ok := doc.DictText(widget, "T"); ok {
		return label
	}

	if parentVal, ok := widget.Get("Parent"); ok {
		if parent, ok := doc.Resolve(parentVal); ok && parent.Kind == object.KindDictionary {
			if label, ok := doc.DictText(parent.Dict, "T"); ok {
				return label
			}
		}
	}

	return fallback
}

func fallbackLabel(pageNumber, annotIndex int) string {
	return "field_" + strconv.Itoa(pageNumber) + "_" + strconv.Itoa(annotIndex)
}
