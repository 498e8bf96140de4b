package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_SeedsAndPersists(t *testing.T) {
	db := SetupTestDB(t, Markets)

	sales := db.Store.Sales()
	require.Len(t, sales, 6)
	assert.Equal(t, "HB900", sales[0].SeriesName)
	assert.Equal(t, "id-6", sales[0].ID)
	assert.Equal(t, Epoch.Add(5*time.Minute).UnixMilli(), sales[0].Timestamp)

	reopened := db.Reopen()
	assert.Equal(t, sales, reopened.Sales())
	assert.Equal(t, Catalog.Products, reopened.Products())
}

func TestNewMemoryStore_Empty(t *testing.T) {
	store := NewMemoryStore(t, Empty)
	assert.Empty(t, store.Sales())
	assert.Empty(t, store.Products())
}

func TestBuilder_DoesNotMutateBase(t *testing.T) {
	f := NewBuilder(Catalog).
		WithProducts("HB999").
		WithSale("HB999", "Canada", "North").
		Build()

	assert.Len(t, f.Products, 5)
	assert.Len(t, f.Sales, 1)
	assert.Len(t, Catalog.Products, 4)
	assert.Empty(t, Catalog.Sales)
}
