package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"sleepwell_store_v1_202610/internal/core/variant"
)

// CartItemResp 本地购物车行
type CartItemResp struct {
	ID        int64             `json:"id"`
	ProductID int64             `json:"product_id"`
	SKU       string            `json:"sku"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Item      *variant.LineItem `json:"item,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CartResp 购物车
type CartResp struct {
	CartID string         `json:"cart_id"`
	Items  []CartItemResp `json:"items"`
}
