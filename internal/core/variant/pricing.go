package variant

import (
	"github.com/shopspring/decimal"
)

// ==================== 按尺寸汇总价格 ====================

// SizeSummary 完整解析前用于展示的"低至"价格
type SizeSummary struct {
	Size                string          `json:"size"`
	LowestOriginalPrice decimal.Decimal `json:"lowest_original_price"`
	LowestCurrentPrice  decimal.Decimal `json:"lowest_current_price"`
	Dimensions          Dimensions      `json:"dimensions"`
	Available           bool            `json:"available"`
	VariantCount        int             `json:"variant_count"`
}

// SummarizeBySize 按尺寸分组，原价与现价分别取最小值
// 两个最小值可能来自不同变体，结果允许出现 原价 < 现价
// 没有任何有意义的尺寸时返回空切片，表示尺寸不是可选维度
func SummarizeBySize(c *Catalog) []SizeSummary {
	out := make([]SizeSummary, 0)
	index := make(map[string]int)

	for _, v := range c.Variants() {
		if v.Size == "" {
			continue
		}
		key := valueKey(v.Size)
		i, ok := index[key]
		if !ok {
			// 首个出现的变体作为尺寸信息代表
			index[key] = len(out)
			out = append(out, SizeSummary{
				Size:                v.Size,
				LowestOriginalPrice: v.OriginalPrice,
				LowestCurrentPrice:  v.CurrentPrice,
				Dimensions:          v.Dimensions,
				Available:           v.Available,
				VariantCount:        1,
			})
			continue
		}

		s := &out[i]
		s.LowestOriginalPrice = decimal.Min(s.LowestOriginalPrice, v.OriginalPrice)
		s.LowestCurrentPrice = decimal.Min(s.LowestCurrentPrice, v.CurrentPrice)
		s.Available = s.Available || v.Available
		s.VariantCount++
	}
	return out
}
