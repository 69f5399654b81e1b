package services

import (
	"context"

	"github.com/dmitrijs2005/satchel/internal/client/cart"
	"github.com/dmitrijs2005/satchel/internal/client/models"
	"github.com/dmitrijs2005/satchel/internal/client/relaypool"
)

type CartService interface {
	View(ctx context.Context, key string) (*models.CartSnapshot, error)
	AddItem(ctx context.Context, key, productID string, quantity int, unitPriceSats int64) (*models.CartSnapshot, error)
	RemoveItem(ctx context.Context, key, productID string) (*models.CartSnapshot, error)
	Clear(ctx context.Context, key string) error
	Sync(ctx context.Context, key string, onProgress relaypool.Progress) (*models.CartSnapshot, error)
}

type cartService struct {
	engine *cart.Service
}

func NewCartService(engine *cart.Service) CartService {
	return &cartService{engine: engine}
}

func (s *cartService) View(ctx context.Context, key string) (*models.CartSnapshot, error) {
	return s.engine.View(ctx, key)
}

func (s *cartService) AddItem(ctx context.Context, key, productID string, quantity int, unitPriceSats int64) (*models.CartSnapshot, error) {
	return s.engine.AddItem(ctx, key, productID, quantity, unitPriceSats)
}

func (s *cartService) RemoveItem(ctx context.Context, key, productID string) (*models.CartSnapshot, error) {
	return s.engine.RemoveItem(ctx, key, productID)
}

func (s *cartService) Clear(ctx context.Context, key string) error {
	return s.engine.Clear(ctx, key)
}

func (s *cartService) Sync(ctx context.Context, key string, onProgress relaypool.Progress) (*models.CartSnapshot, error) {
	return s.engine.Sync(ctx, key, onProgress)
}
