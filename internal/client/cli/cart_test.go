package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/satchel/internal/client/models"
	"github.com/dmitrijs2005/satchel/internal/client/relaypool"
	"github.com/dmitrijs2005/satchel/internal/common"
)

type fakeCartSvc struct {
	calls []string
	key   string
}

func (f *fakeCartSvc) View(ctx context.Context, key string) (*models.CartSnapshot, error) {
	f.calls = append(f.calls, "view")
	f.key = key
	return &models.CartSnapshot{}, nil
}

func (f *fakeCartSvc) AddItem(ctx context.Context, key, productID string, quantity int, unitPriceSats int64) (*models.CartSnapshot, error) {
	f.calls = append(f.calls, "add")
	f.key = key
	return &models.CartSnapshot{}, nil
}

func (f *fakeCartSvc) RemoveItem(ctx context.Context, key, productID string) (*models.CartSnapshot, error) {
	f.calls = append(f.calls, "rm")
	f.key = key
	return &models.CartSnapshot{}, nil
}

func (f *fakeCartSvc) Clear(ctx context.Context, key string) error {
	f.calls = append(f.calls, "clear")
	f.key = key
	return nil
}

func (f *fakeCartSvc) Sync(ctx context.Context, key string, onProgress relaypool.Progress) (*models.CartSnapshot, error) {
	f.calls = append(f.calls, "sync")
	f.key = key
	return &models.CartSnapshot{}, nil
}

func TestCart_DispatchesSubcommands(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bare cart views", nil, "view"},
		{"add", []string{"add", "widget", "2", "500"}, "add"},
		{"rm", []string{"rm", "widget"}, "rm"},
		{"clear", []string{"clear"}, "clear"},
		{"sync", []string{"sync"}, "sync"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCartSvc{}
			app := &App{cartSvc: svc}

			require.NoError(t, app.Cart(ctx, tt.args))
			require.Equal(t, []string{tt.want}, svc.calls)
			assert.Equal(t, common.DefaultCartKey, svc.key)
		})
	}
}

func TestCart_UnknownSubcommandPrintsUsage(t *testing.T) {
	svc := &fakeCartSvc{}
	app := &App{cartSvc: svc}

	require.NoError(t, app.Cart(context.Background(), []string{"bogus"}))
	assert.Empty(t, svc.calls)
}
