package variant

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ==================== 购物车行项目 ====================

// DefaultSizeLabel 尺寸不是必选属性时展示的名称
const DefaultSizeLabel = "Standard"

// GiftRef 赠品信息
type GiftRef struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	ImageKey  string `json:"image_key,omitempty"`
}

// ProductInfo 构建行项目所需的商品元数据
type ProductInfo struct {
	ID        int64
	Name      string
	Brand     string
	BasePrice decimal.Decimal
	// FreeGift 仅在"赠品"徽章启用且关联了赠品商品时非空
	FreeGift *GiftRef
}

// LineItem 交给购物车的标准化载荷
type LineItem struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Image         string          `json:"image"`
	ImageKey      string          `json:"image_key,omitempty"` // 存储路径，读取时重新生成 URL
	SKU           string          `json:"sku,omitempty"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Size          string          `json:"size"`
	Color         string          `json:"color,omitempty"`
	Depth         string          `json:"depth,omitempty"`
	Firmness      string          `json:"firmness,omitempty"`
	Quantity      int             `json:"quantity"`
	FreeGift      *GiftRef        `json:"free_gift,omitempty"`
}

// BuildLineItem 纯函数，不访问网络与存储
// 价格直接取自解析出的变体，不重新计算；赠品与所选规格无关，只附加一次
func BuildLineItem(p ProductInfo, r Resolution, req Requirements, chosen Choices, quantity int, image string) LineItem {
	if quantity < 1 {
		quantity = 1
	}

	v := r.Variant
	item := LineItem{
		ProductID:     p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Image:         image,
		SKU:           v.SKU,
		CurrentPrice:  v.CurrentPrice,
		OriginalPrice: v.OriginalPrice,
		Size:          DefaultSizeLabel,
		Color:         v.Color,
		Depth:         pick(chosen, AttrDepth, v),
		Firmness:      pick(chosen, AttrFirmness, v),
		Quantity:      quantity,
	}
	if req.Size && v.Size != "" {
		item.Size = v.Size
	}

	if p.FreeGift != nil {
		gift := *p.FreeGift
		item.FreeGift = &gift
	}
	return item
}

// Key 购物车行标识：size|color|depth|firmness，大小写不敏感
// 深度/软硬度不参与变体解析，同一 SKU 可能对应不同的选择，必须分行
func (l LineItem) Key() string {
	return strings.Join([]string{
		valueKey(l.Size),
		valueKey(l.Color),
		valueKey(l.Depth),
		valueKey(l.Firmness),
	}, "|")
}

func pick(chosen Choices, attr Attribute, v Variant) string {
	if val, ok := chosen.Get(attr); ok {
		return val
	}
	return v.Value(attr)
}
