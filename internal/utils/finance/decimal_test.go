package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamkeenlabs/facility_management_app/internal/apperrors"
)

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("12500.75")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("12500.75")))

	d, err = ParseAmount("  42 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("42")))
}

func TestParseAmount_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "  ", "abc", "12.3.4", "1,000", "NaN"} {
		_, err := ParseAmount(input)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "input %q", input)
	}
}
