// Package errors implements the BW_* structured error envelope: a
// stable code, a human message, and optional context. Adapted from the
// teacher's internal/pdf/errors, narrowed from its open, 21-value
// ErrorType enum to spec.md §7's closed code set — the whole point of
// the envelope is a code a caller can safely switch on.
package errors

import "fmt"

// Code is one of the closed set of stable error identifiers.
type Code string

const (
	PDFEmpty             Code = "BW_PDF_EMPTY"
	PDFInvalid           Code = "BW_PDF_INVALID"
	PDFPageReadFailed    Code = "BW_PDF_PAGE_READ_FAILED"
	PDFPageInvalid       Code = "BW_PDF_PAGE_INVALID"
	PDFRootMissing       Code = "BW_PDF_ROOT_MISSING"
	PDFRootInvalid       Code = "BW_PDF_ROOT_INVALID"
	FormCatalogInvalid   Code = "BW_FORM_CATALOG_INVALID"
	FormMissingAcroForm  Code = "BW_FORM_MISSING_ACROFORM"
	FormAcroFormInvalid  Code = "BW_FORM_ACROFORM_INVALID"
	FormFieldsMissing    Code = "BW_FORM_FIELDS_MISSING"
	FormFieldsEmpty      Code = "BW_FORM_FIELDS_EMPTY"
	FillUnsupportedField Code = "BW_FILL_UNSUPPORTED_FIELD_TYPE"
	FillButtonInvalid    Code = "BW_FILL_BUTTON_VALUE_INVALID"
	FillNoMatchingFields Code = "BW_FILL_NO_MATCHING_FIELDS"
	FillFieldUpdateFail  Code = "BW_FILL_FIELD_UPDATE_FAILED"
	FillWidgetUpdateFail Code = "BW_FILL_WIDGET_UPDATE_FAILED"
	FillSaveFailed       Code = "BW_FILL_SAVE_FAILED"
	BlocksPayloadInvalid Code = "BW_BLOCKS_PAYLOAD_INVALID"
	FieldsPayloadInvalid Code = "BW_FIELDS_PAYLOAD_INVALID"
	SerializationError   Code = "BW_SERIALIZATION_ERROR"
)

// CoreError is the structured envelope every public operation failure
// is reported as.
type CoreError struct {
	Code    Code
	Message string
	Context string
}

// Error renders the fallback textual encoding spec.md §6 specifies for
// embeddings that cannot carry structures: "{code}: {message}".
func (e *CoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs a CoreError with no context.
func New(code Code, message string) *CoreError {
	return &CoreError{Code: code, Message: message}
}

// Newf constructs a CoreError with a formatted message.
func Newf(code Code, format string, args ...interface{}) *CoreError {
	return &CoreError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithContext returns a copy of e with Context set, chainable like the
// teacher's *PDFError.WithContext.
func (e *CoreError) WithContext(context string) *CoreError {
	return &CoreError{Code: e.Code, Message: e.Message, Context: context}
}

// As reports whether err is a *CoreError and, if so, returns it.
func As(err error) (*CoreError, bool) {
	ce, ok := err.(*CoreError)
	return ce, ok
}
