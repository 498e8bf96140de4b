package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckKey(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		key     string
	}{
		{name: "valid", key: "gst_sales"},
		{name: "max length", key: strings.Repeat("k", MaxKeyLength)},
		{name: "empty", key: "", wantErr: ErrEmptyString},
		{name: "whitespace", key: " \t\n", wantErr: ErrEmptyString},
		{name: "too long", key: strings.Repeat("k", MaxKeyLength+1), wantErr: ErrInvalidKey},
		{name: "control character", key: "gst\x00sales", wantErr: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkKey(context.Background(), tt.key)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	//nolint:staticcheck // nil context is the case under test
	require.ErrorIs(t, checkKey(nil, "gst_sales"), ErrNilContext)
}

func TestCheckPath(t *testing.T) {
	require.ErrorIs(t, checkPath("  "), ErrEmptyString)
	assert.NoError(t, checkPath(":memory:"))
}
