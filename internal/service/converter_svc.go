package service

import (
	"github.com/shopspring/decimal"

	"sleepwell_store_v1_202610/internal/api/dto"
	"sleepwell_store_v1_202610/internal/core/variant"
	"sleepwell_store_v1_202610/internal/model"
)

// ToRawVariant 数据库行 -> 选择引擎输入
// 不做任何清洗，归一化统一交给 variant.NewCatalog
func ToRawVariant(m model.ProductVariant) variant.RawVariant {
	return variant.RawVariant{
		SKU:           m.SKU,
		Size:          m.Size,
		Color:         m.Color,
		Depth:         m.Depth,
		Firmness:      m.Firmness,
		OriginalPrice: m.OriginalPrice,
		CurrentPrice:  m.CurrentPrice,
		Length:        m.Length,
		Width:         m.Width,
		Height:        m.Height,
		Available:     m.Availability,
	}
}

// ToRawVariants 保持目录顺序
func ToRawVariants(rows []model.ProductVariant) []variant.RawVariant {
	out := make([]variant.RawVariant, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToRawVariant(row))
	}
	return out
}

func ToVariantResp(v variant.Variant) dto.VariantResp {
	return dto.VariantResp{
		SKU:           v.SKU,
		Size:          v.Size,
		Color:         v.Color,
		Depth:         v.Depth,
		Firmness:      v.Firmness,
		OriginalPrice: v.OriginalPrice,
		CurrentPrice:  v.CurrentPrice,
		Dimensions:    v.Dimensions,
		Available:     v.Available,
	}
}

func ToResolveResp(r variant.Resolution, chosen variant.Choices) dto.ResolveResp {
	return dto.ResolveResp{
		Variant:   ToVariantResp(r.Variant),
		Choices:   chosen.Map(),
		Fallback:  r.Fallback,
		Synthetic: r.Synthetic,
	}
}

// ToProductResp cover 为已转换好的封面 URL
func ToProductResp(p *model.Product, catalog *variant.Catalog, cover string) dto.ProductResp {
	return dto.ProductResp{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Slug:         p.Slug,
		Category:     p.Category,
		BasePrice:    p.BasePrice,
		PriceFrom:    priceFrom(catalog, p.BasePrice),
		CurrencyCode: p.CurrencyCode,
		CoverImage:   cover,
		Tags:         []string(p.Tags),
	}
}

// priceFrom 变体最低现价；没有变体时取基础价
func priceFrom(c *variant.Catalog, base decimal.Decimal) decimal.Decimal {
	if c.Empty() {
		return base
	}
	lowest := c.At(0).CurrentPrice
	for _, v := range c.Variants() {
		lowest = decimal.Min(lowest, v.CurrentPrice)
	}
	return lowest
}

// OptionsMap 属性名 -> 可选值，只包含至少有一个取值的属性
func OptionsMap(c *variant.Catalog) map[string][]string {
	out := make(map[string][]string)
	for _, attr := range variant.Priority {
		if opts := c.Options(attr); len(opts) > 0 {
			out[attr.String()] = opts
		}
	}
	return out
}

func attributeNames(attrs []variant.Attribute) []string {
	out := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr.String())
	}
	return out
}
