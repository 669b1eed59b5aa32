package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/errors"
	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/testutil"
)

func TestDetectEmptyInputFails(t *testing.T) {
	_, err := Detect(nil)
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.PDFEmpty, ce.Code)
}

func TestDetectTextFieldForm(t *testing.T) {
	data, err := testutil.ToBytes(testutil.TextFieldForm())
	require.NoError(t, err)

	blocks, err := Detect(data)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "name", blocks[0].Label)
	assert.Equal(t, float32(10), blocks[0].X)
}

func TestDetectRadioButtonForm(t *testing.T) {
	data, err := testutil.ToBytes(testutil.RadioButtonForm())
	require.NoError(t, err)

	blocks, err := Detect(data)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestFillEmptyInputFails(t *testing.T) {
	_, err := Fill(nil, nil, map[string]string{"name": "Ada"})
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.PDFEmpty, ce.Code)
}

func TestFillTextFieldSucceeds(t *testing.T) {
	data, err := testutil.ToBytes(testutil.TextFieldForm())
	require.NoError(t, err)

	out, err := Fill(data, nil, map[string]string{"name": "Ada Lovelace"})
	require.NoError(t, err)
	require.NotEmpty(t, out)

	blocks, err := Detect(out)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
}

func TestFillUnknownFieldKeyIsNoMatch(t *testing.T) {
	data, err := testutil.ToBytes(testutil.TextFieldForm())
	require.NoError(t, err)

	_, err = Fill(data, nil, map[string]string{"does-not-exist": "x"})
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.FillNoMatchingFields, ce.Code)
}

func TestFillEmptyFieldValuesIsNoop(t *testing.T) {
	data, err := testutil.ToBytes(testutil.TextFieldForm())
	require.NoError(t, err)

	out, err := Fill(data, nil, map[string]string{})
	require.NoError(t, err, "an empty field-values map must not trigger the no-match guard")
	require.NotEmpty(t, out)
}

func TestFillRadioInvalidStateFails(t *testing.T) {
	data, err := testutil.ToBytes(testutil.RadioButtonForm())
	require.NoError(t, err)

	_, err = Fill(data, nil, map[string]string{"choice": "nonexistent-state"})
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.FillButtonInvalid, ce.Code)
}

func TestFillRadioValidStateSucceeds(t *testing.T) {
	data, err := testutil.ToBytes(testutil.RadioButtonForm())
	require.NoError(t, err)

	out, err := Fill(data, nil, map[string]string{"choice": "B"})
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestFillMalformedBlocksHintFails(t *testing.T) {
	data, err := testutil.ToBytes(testutil.TextFieldForm())
	require.NoError(t, err)

	_, err = Fill(data, []byte("not json"), map[string]string{"name": "x"})
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.BlocksPayloadInvalid, ce.Code)
}

func TestFillWellFormedBlocksHintIsIgnoredForContent(t *testing.T) {
	data, err := testutil.ToBytes(testutil.TextFieldForm())
	require.NoError(t, err)

	hint := []byte(`[{"label":"whatever","x":0,"y":0,"width":1,"height":1}]`)
	out, err := Fill(data, hint, map[string]string{"name": "Ada"})
	require.NoError(t, err)
	require.NotEmpty(t, out)
}
