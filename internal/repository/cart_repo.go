package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sleepwell_store_v1_202610/internal/model"
)

// CartRepository 本地购物车仓储
type CartRepository interface {
	// AddItem 同一 (购物车, 商品, SKU, 规格组合) 已存在时累加数量并覆盖快照
	AddItem(ctx context.Context, item *model.CartItem) error
	ListByCart(ctx context.Context, cartID string) ([]model.CartItem, error)
}

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) AddItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}, {Name: "sku"}, {Name: "line_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"unit_price": gorm.Expr("excluded.unit_price"),
			"payload":    gorm.Expr("excluded.payload"),
			"session_id": gorm.Expr("excluded.session_id"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(item).Error
}

func (r *cartRepo) ListByCart(ctx context.Context, cartID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}
