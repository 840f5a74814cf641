package variant

import (
	"github.com/shopspring/decimal"
)

// ==================== 变体解析 ====================

// Resolution 解析结果
type Resolution struct {
	Variant Variant `json:"variant"`
	// Fallback 选择组合在目录中不存在，返回的是目录第一行；调用方应记录为数据质量问题
	Fallback bool `json:"fallback"`
	// Synthetic 商品没有变体，返回的是基于商品基础价的虚拟变体
	Synthetic bool `json:"synthetic"`
}

// Resolve 按当前 (可能不完整的) 选择查找最匹配的变体
// 尺寸为必选属性时按尺寸过滤，颜色有意义时按颜色过滤；深度/软硬度不参与过滤
// 目录顺序中第一个匹配的变体胜出
func Resolve(c *Catalog, chosen Choices, basePrice decimal.Decimal) Resolution {
	if c.Empty() {
		if basePrice.IsNegative() {
			basePrice = decimal.Zero
		}
		return Resolution{
			Variant: Variant{
				OriginalPrice: basePrice,
				CurrentPrice:  basePrice,
				Available:     true,
			},
			Synthetic: true,
		}
	}

	req := ComputeRequirements(c)
	size, filterSize := chosen.Get(AttrSize)
	filterSize = filterSize && req.Size
	color, filterColor := chosen.Get(AttrColor)

	for _, v := range c.variants {
		if filterSize && !SameValue(v.Size, size) {
			continue
		}
		if filterColor && !SameValue(v.Color, color) {
			continue
		}
		return Resolution{Variant: v}
	}

	return Resolution{Variant: c.variants[0], Fallback: true}
}
