package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"demo", "Demo"},
		{"unit_test", "UnitTest"},
		{"UNIT_test", "UnitTest"},
		{"__a__b_", "AB"},
		{"v2_model", "V2Model"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DisplayName(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "_", "___", "demo-x", "9lives"} {
		_, err := DisplayName(in)
		assert.ErrorIs(t, err, ErrInvalidModelName, in)
	}
}

func TestDisplayName_NotAnIdentifier(t *testing.T) {
	t.Parallel()

	_, err := DisplayName("demo-x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidModelName)
	assert.ErrorContains(t, err, `"demo-x" must produce a Go identifier`)
}
