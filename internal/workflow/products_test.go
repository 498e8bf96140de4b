package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	err   error
	calls [][]string
}

func (f *fakeImporter) ImportProducts(_ context.Context, names []string) error {
	f.calls = append(f.calls, names)
	return f.err
}

func TestParseProducts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "mixed separators", text: "HB851, HB852;HB853|HB851", want: []string{"HB851", "HB852", "HB853", "HB851"}},
		{name: "newlines and blanks", text: "A\n\n  B  \n", want: []string{"A", "B"}},
		{name: "separator runs", text: ",,;|\nC", want: []string{"C"}},
		{name: "inner spaces kept", text: "Series One, Series Two", want: []string{"Series One", "Series Two"}},
		{name: "only separators", text: " , ; | ", want: []string{}},
		{name: "empty", text: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseProducts(tt.text))
		})
	}
}

func TestCleanNames(t *testing.T) {
	assert.Equal(t, []string{"Foo, Inc", "HB851|A"}, CleanNames([]string{" Foo, Inc ", "", "  ", "HB851|A"}))
	assert.Empty(t, CleanNames(nil))
}

func TestImportText_BlankIsNoop(t *testing.T) {
	imp := &fakeImporter{}

	n, err := ImportText(context.Background(), imp, "  \n\t ")

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, imp.calls)
}

func TestImportText_PassesDuplicatesThrough(t *testing.T) {
	imp := &fakeImporter{}

	n, err := ImportText(context.Background(), imp, "HB851, HB852;HB853|HB851")

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.Len(t, imp.calls, 1)
	assert.Equal(t, []string{"HB851", "HB852", "HB853", "HB851"}, imp.calls[0])
}

func TestImportText_PropagatesError(t *testing.T) {
	imp := &fakeImporter{err: errors.New("boom")}

	_, err := ImportText(context.Background(), imp, "A")

	assert.EqualError(t, err, "boom")
}

func TestImportText_MergesIntoStore(t *testing.T) {
	ctx := context.Background()
	store, err := ledger.Open(ctx, storage.NewMemoryStorage())
	require.NoError(t, err)

	_, err = ImportText(ctx, store, "HB851, HB852;HB853|HB851")
	require.NoError(t, err)

	assert.Equal(t, []string{"HB851", "HB852", "HB853"}, store.Products())
}
