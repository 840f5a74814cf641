package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CartItem 本地购物车行
// 同一购物车内 (商品, SKU, 规格组合) 唯一，重复加购累加数量
type CartItem struct {
	BaseModel

	CartID    string `gorm:"size:64;not null;uniqueIndex:idx_cart_line"`
	ProductID int64  `gorm:"not null;uniqueIndex:idx_cart_line"`
	SKU       string `gorm:"size:100;not null;default:'';uniqueIndex:idx_cart_line"`
	// 规格组合 size|color|depth|firmness，同一 SKU 不同深度/软硬度分行
	LineKey   string `gorm:"size:255;not null;default:'';uniqueIndex:idx_cart_line"`
	SessionID string `gorm:"size:64;index"` // 最近一次写入的选择会话

	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	// 行项目快照 (含赠品)
	Payload datatypes.JSON `gorm:"type:jsonb"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
