package variant

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ==================== 输入：原始变体行 ====================

// RawVariant 数据层交付的原始变体记录，字段可能稀疏
type RawVariant struct {
	SKU           string
	Size          *string
	Color         *string
	Depth         *string
	Firmness      *string
	OriginalPrice decimal.NullDecimal
	CurrentPrice  decimal.NullDecimal
	Length        *string
	Width         *string
	Height        *string
	Available     bool
}

// ==================== 规范化后的变体 ====================

// Dimensions 仅用于展示的尺寸信息
type Dimensions struct {
	Length string `json:"length,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// Variant 一个可购买的 SKU 组合
// 属性为空串表示"未设置"
type Variant struct {
	SKU           string          `json:"sku"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	Depth         string          `json:"depth,omitempty"`
	Firmness      string          `json:"firmness,omitempty"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Dimensions    Dimensions      `json:"dimensions"`
	Available     bool            `json:"available"`
}

// Value 读取指定属性的取值
func (v Variant) Value(attr Attribute) string {
	switch attr {
	case AttrSize:
		return v.Size
	case AttrColor:
		return v.Color
	case AttrDepth:
		return v.Depth
	case AttrFirmness:
		return v.Firmness
	}
	return ""
}

// ==================== Catalog ====================

// Catalog 商品加载后构建的只读变体表
type Catalog struct {
	variants []Variant
}

// NewCatalog 规范化原始记录
// 不过滤任何行；价格缺失或为负时按 0 处理
func NewCatalog(raw []RawVariant) *Catalog {
	c := &Catalog{variants: make([]Variant, 0, len(raw))}
	for _, r := range raw {
		c.variants = append(c.variants, Variant{
			SKU:           r.SKU,
			Size:          normalizePtr(r.Size),
			Color:         normalizePtr(r.Color),
			Depth:         normalizePtr(r.Depth),
			Firmness:      normalizePtr(r.Firmness),
			OriginalPrice: price(r.OriginalPrice),
			CurrentPrice:  price(r.CurrentPrice),
			Dimensions: Dimensions{
				Length: trimPtr(r.Length),
				Width:  trimPtr(r.Width),
				Height: trimPtr(r.Height),
			},
			Available: r.Available,
		})
	}
	return c
}

func price(p decimal.NullDecimal) decimal.Decimal {
	if !p.Valid || p.Decimal.IsNegative() {
		return decimal.Zero
	}
	return p.Decimal
}

func trimPtr(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Len 变体数量
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.variants)
}

// Empty 商品没有任何变体
func (c *Catalog) Empty() bool {
	return c.Len() == 0
}

// Variants 返回副本，调用方无法修改目录
func (c *Catalog) Variants() []Variant {
	if c == nil {
		return nil
	}
	out := make([]Variant, len(c.variants))
	copy(out, c.variants)
	return out
}

// At 按目录顺序取变体
func (c *Catalog) At(i int) Variant {
	return c.variants[i]
}

// Options 指定属性的有意义取值，按首次出现顺序去重
func (c *Catalog) Options(attr Attribute) []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, v := range c.variants {
		val := v.Value(attr)
		if val == "" {
			continue
		}
		key := valueKey(val)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, val)
	}
	return out
}
