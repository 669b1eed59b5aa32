// Package validate is an ambient correctness aid: it cross-checks
// Fill's serialized output bytes against two independent PDF parsers
// neither of which shares code with internal/pdfcore/object. Fill does
// not depend on this package to produce its output; it is wired in by
// tests and an opt-in CLI flag to enforce spec.md §8's "round-trip parse
// must succeed" testable property with outside evidence. Grounded on
// the teacher's internal/pdf/wrapper/pdfcpu.go (api.ReadContext usage)
// and internal/pdf/validator.go (ledongthuc/pdf.Open usage).
package validate

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Result reports whether each independent parser accepted the bytes.
type Result struct {
	PDFCPUOk      bool
	PDFCPUErr     error
	LedongthucOk  bool
	LedongthucErr error
}

// OK reports whether both parsers accepted the document.
func (r Result) OK() bool {
	return r.PDFCPUOk && r.LedongthucOk
}

// RoundTrip re-parses pdfBytes with pdfcpu and ledongthuc/pdf, returning
// whichever errors each produced. Two unrelated implementations agreeing
// the bytes are a well-formed PDF is stronger evidence than one.
func RoundTrip(pdfBytes []byte) Result {
	var r Result

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	reader := bytes.NewReader(pdfBytes)
	ctx, err := api.ReadContext(reader, conf)
	if err != nil {
		r.PDFCPUErr = fmt.Errorf("pdfcpu ReadContext: %w", err)
	} else if err := ctx.EnsurePageCount(); err != nil {
		r.PDFCPUErr = fmt.Errorf("pdfcpu EnsurePageCount: %w", err)
	} else {
		r.PDFCPUOk = true
	}

	ledongReader := bytes.NewReader(pdfBytes)
	if _, err := pdf.NewReader(ledongReader, int64(len(pdfBytes))); err != nil {
		r.LedongthucErr = fmt.Errorf("ledongthuc/pdf NewReader: %w", err)
	} else {
		r.LedongthucOk = true
	}

	return r
}
