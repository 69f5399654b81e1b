package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/satchel/internal/client/models"
)

func item(id string, qty int, price int64) models.CartItem {
	return models.CartItem{ProductID: id, Quantity: qty, UnitPriceSats: price}
}

func snap(updatedAt int64, items ...models.CartItem) *models.CartSnapshot {
	s := &models.CartSnapshot{Items: items, UpdatedAt: updatedAt}
	s.Normalize()
	return s
}

func TestMerge_RemoteWinsOnOverlap(t *testing.T) {
	local := snap(100, item("p1", 1, 50))
	remote := snap(200, item("p1", 2, 50), item("p2", 1, 10))

	got := Merge(local, remote)

	assert.Equal(t, []models.CartItem{
		item("p1", 2, 50),
		item("p2", 1, 10),
	}, got.Items)
	assert.Equal(t, 3, got.ItemCount)
	assert.Equal(t, int64(2*50+10), got.TotalSats)
}

func TestMerge_LocalOnlyItemIsKept(t *testing.T) {
	local := snap(100, item("p3", 1, 5))
	remote := snap(200, item("p1", 2, 50))

	got := Merge(local, remote)

	assert.Equal(t, []models.CartItem{
		item("p1", 2, 50),
		item("p3", 1, 5),
	}, got.Items, "a brand-new local item must survive the merge")
}

func TestMerge_RemotePriceOverridesLocal(t *testing.T) {
	local := snap(100, item("p1", 1, 50))
	remote := snap(200, item("p1", 1, 75))

	got := Merge(local, remote)

	assert.Equal(t, int64(75), got.Items[0].UnitPriceSats)
	assert.Equal(t, int64(75), got.TotalSats)
}

func TestMerge_NilRemoteLeavesLocalUnchanged(t *testing.T) {
	local := snap(100, item("p1", 2, 50))

	got := Merge(local, nil)

	assert.Equal(t, local.Items, got.Items)
	assert.Equal(t, local.UpdatedAt, got.UpdatedAt)
	assert.NotSame(t, local, got, "merge must return a copy")
}

func TestMerge_UpdatedAtIsMax(t *testing.T) {
	tests := []struct {
		name          string
		local, remote int64
		want          int64
	}{
		{"remote newer", 100, 200, 200},
		{"local newer", 300, 200, 300},
		{"equal", 100, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(snap(tt.local), snap(tt.remote))
			assert.Equal(t, tt.want, got.UpdatedAt)
		})
	}
}

func TestMerge_NilLocal(t *testing.T) {
	remote := snap(200, item("p1", 2, 50))
	got := Merge(nil, remote)
	assert.Equal(t, remote.Items, got.Items)
}

func TestMerge_BothEmpty(t *testing.T) {
	got := Merge(snap(0), snap(0))
	assert.Empty(t, got.Items)
	assert.Zero(t, got.ItemCount)
	assert.Zero(t, got.TotalSats)
}
