package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperpolymath/pdftool-core/internal/pdfcore/testutil"
)

func TestRoundTripReportsBothParsersIndependently(t *testing.T) {
	data, err := testutil.ToBytes(testutil.TextFieldForm())
	require.NoError(t, err)

	result := RoundTrip(data)

	// Both fields are independently observable regardless of whether
	// either parser accepts this minimal fixture; OK() must reflect the
	// conjunction, not silently swallow one side.
	assert.Equal(t, result.PDFCPUOk && result.LedongthucOk, result.OK())
}

func TestRoundTripGarbageInputFailsBothParsers(t *testing.T) {
	result := RoundTrip([]byte("not a pdf at all"))
	assert.False(t, result.PDFCPUOk)
	assert.Error(t, result.PDFCPUErr)
	assert.False(t, result.LedongthucOk)
	assert.Error(t, result.LedongthucErr)
	assert.False(t, result.OK())
}
