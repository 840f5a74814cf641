package model

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ==================== 徽章类型常量 ====================

// BadgeKindFreeGift 赠品角标
const BadgeKindFreeGift = "free_gift"

// ==================== Product 商品主表 ====================

type Product struct {
	BaseModel

	// --- 商品基本信息 ---
	Name        string `gorm:"size:255;not null"`
	Brand       string `gorm:"size:100;index"`
	Slug        string `gorm:"size:255;uniqueIndex"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:50;index"` // mattress, bed, sofa, pillow ...
	IsActive    bool   `gorm:"index"`

	// --- 价格 ---
	// 没有变体时直接使用基础价
	BasePrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CurrencyCode string          `gorm:"size:5;default:'USD'"`

	Tags pq.StringArray `gorm:"type:text[]"`

	// --- 关联关系 ---
	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID"`
	Badges   []ProductBadge   `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// FreeGiftBadge 返回启用且关联了赠品商品的赠品徽章
func (p *Product) FreeGiftBadge() *ProductBadge {
	for i := range p.Badges {
		b := &p.Badges[i]
		if b.Kind == BadgeKindFreeGift && b.Enabled && b.GiftProductID != nil {
			return b
		}
	}
	return nil
}

// CoverImage 排序最靠前的图片
func (p *Product) CoverImage() *ProductImage {
	var cover *ProductImage
	for i := range p.Images {
		if cover == nil || p.Images[i].Rank < cover.Rank {
			cover = &p.Images[i]
		}
	}
	return cover
}

// ==================== ProductVariant 变体 ====================

// ProductVariant 一行即一个可购买的 SKU 组合
// 规格字段允许为空或占位值 ("Standard", "n/a")，由选择引擎统一归一化
type ProductVariant struct {
	BaseModel
	// --- 关联 ---
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Position  int      `gorm:"default:0"` // 目录顺序

	SKU string `gorm:"size:100;index"`

	// --- 规格组合 ---
	Size     *string `gorm:"size:64"`
	Color    *string `gorm:"size:64"`
	Depth    *string `gorm:"size:64"`
	Firmness *string `gorm:"size:64"`

	// --- 价格 (允许缺失，缺失按 0 处理) ---
	OriginalPrice decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	CurrentPrice  decimal.NullDecimal `gorm:"type:decimal(10,2)"`

	// --- 尺寸 (仅展示) ---
	Length *string `gorm:"size:32"`
	Width  *string `gorm:"size:32"`
	Height *string `gorm:"size:32"`

	Availability bool `gorm:"not null"`

	// 后台录入的其他展示信息
	Extra datatypes.JSON `gorm:"type:jsonb"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// ==================== ProductImage 图片 ====================

type ProductImage struct {
	BaseModel

	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	// 存储 Key 或完整 URL
	Path    string `gorm:"size:512"`
	Rank    int    `gorm:"default:99"`
	AltText string `gorm:"size:255"`
}

func (*ProductImage) TableName() string {
	return "product_images"
}

// ==================== ProductBadge 徽章 ====================

type ProductBadge struct {
	BaseModel

	ProductID int64  `gorm:"index;not null"`
	Kind      string `gorm:"size:32;index"`
	Label     string `gorm:"size:100"`
	Enabled   bool   `gorm:"not null"`

	// 赠品徽章关联的赠品商品
	GiftProductID *int64
	GiftProduct   *Product `gorm:"foreignKey:GiftProductID"`
}

func (ProductBadge) TableName() string {
	return "product_badges"
}
