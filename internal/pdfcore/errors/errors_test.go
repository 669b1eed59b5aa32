package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageFormat(t *testing.T) {
	err := New(PDFEmpty, "pdf input is empty")
	assert.Equal(t, "BW_PDF_EMPTY: pdf input is empty", err.Error())
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(FillUnsupportedField, "field type %q is unsupported", "Sig")
	assert.Equal(t, FillUnsupportedField, err.Code)
	assert.Equal(t, `field type "Sig" is unsupported`, err.Message)
}

func TestWithContextReturnsChainedCopy(t *testing.T) {
	base := New(PDFRootInvalid, "root is not a dictionary")
	withCtx := base.WithContext("object 1 0 R")

	assert.Equal(t, "", base.Context)
	assert.Equal(t, "object 1 0 R", withCtx.Context)
	assert.Equal(t, base.Code, withCtx.Code)
	assert.Equal(t, base.Message, withCtx.Message)
}

func TestAsRecognizesCoreError(t *testing.T) {
	var err error = New(FormFieldsEmpty, "no fields")
	ce, ok := As(err)
	require.NotNil(t, ce)
	assert.True(t, ok)
	assert.Equal(t, FormFieldsEmpty, ce.Code)
}

func TestAsRejectsPlainError(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
}
