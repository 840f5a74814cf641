package dto

import (
	"github.com/shopspring/decimal"

	"sleepwell_store_v1_202610/internal/core/variant"
)

// ==================== 请求 DTO ====================

// ResolveReq 按当前选择解析变体
type ResolveReq struct {
	// {"size": "Queen", "color": "Grey"}
	Choices map[string]string `json:"choices"`
}

// ==================== 响应 DTO ====================

// ImageResp 图片
type ImageResp struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Rank    int    `json:"rank"`
	AltText string `json:"alt_text,omitempty"`
}

// VariantResp 变体 (归一化后)
type VariantResp struct {
	SKU           string             `json:"sku"`
	Size          string             `json:"size,omitempty"`
	Color         string             `json:"color,omitempty"`
	Depth         string             `json:"depth,omitempty"`
	Firmness      string             `json:"firmness,omitempty"`
	OriginalPrice decimal.Decimal    `json:"original_price"`
	CurrentPrice  decimal.Decimal    `json:"current_price"`
	Dimensions    variant.Dimensions `json:"dimensions"`
	Available     bool               `json:"available"`
}

// ProductResp 商品列表项
type ProductResp struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Slug         string          `json:"slug"`
	Category     string          `json:"category"`
	BasePrice    decimal.Decimal `json:"base_price"`
	PriceFrom    decimal.Decimal `json:"price_from"` // 所有变体中的最低现价
	CurrencyCode string          `json:"currency_code"`
	CoverImage   string          `json:"cover_image,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
}

// ProductListResp 商品列表
type ProductListResp struct {
	Code     int           `json:"code"`
	Message  string        `json:"message"`
	Data     []ProductResp `json:"data"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ProductDetailResp 商品详情，包含选择引擎所需的全部信息
type ProductDetailResp struct {
	ProductResp
	Description  string                `json:"description"`
	Images       []ImageResp           `json:"images"`
	Variants     []VariantResp         `json:"variants"`
	Requirements variant.Requirements  `json:"requirements"`
	Required     []string              `json:"required_attributes"`
	Options      map[string][]string   `json:"options"`
	Sizes        []variant.SizeSummary `json:"sizes"`
	FreeGift     *variant.GiftRef      `json:"free_gift,omitempty"`
}

// ResolveResp 解析结果
type ResolveResp struct {
	Variant   VariantResp       `json:"variant"`
	Choices   map[string]string `json:"choices"`
	Fallback  bool              `json:"fallback"`
	Synthetic bool              `json:"synthetic"`
}
