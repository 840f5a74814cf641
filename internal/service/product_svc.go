package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sleepwell_store_v1_202610/internal/api/dto"
	"sleepwell_store_v1_202610/internal/core/variant"
	"sleepwell_store_v1_202610/internal/model"
	"sleepwell_store_v1_202610/internal/repository"
)

// ProductView 一次商品浏览所需的只读数据
// 目录在一次浏览内不变，必选属性与尺寸汇总随之固定
type ProductView struct {
	Product      *model.Product
	Catalog      *variant.Catalog
	Requirements variant.Requirements
	Sizes        []variant.SizeSummary
	Info         variant.ProductInfo
}

// Image 按 ID 查找属于该商品的图片；id 为 0 时返回封面
func (v *ProductView) Image(id int64) (*model.ProductImage, error) {
	if id == 0 {
		return v.Product.CoverImage(), nil
	}
	for i := range v.Product.Images {
		if v.Product.Images[i].ID == id {
			return &v.Product.Images[i], nil
		}
	}
	return nil, ErrImageNotFound
}

type ProductService struct {
	repo    repository.ProductRepository
	storage *StorageService
	logger  *zap.Logger
}

func NewProductService(repo repository.ProductRepository, storage *StorageService, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:    repo,
		storage: storage,
		logger:  logger,
	}
}

// GetProductView 加载商品及变体、图片、徽章并构建目录
func (s *ProductService) GetProductView(ctx context.Context, id int64) (*ProductView, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("加载商品 %d 失败: %w", id, err)
	}
	return s.buildView(ctx, product), nil
}

// buildView 由已预加载关联的商品构建选择视图
func (s *ProductService) buildView(ctx context.Context, product *model.Product) *ProductView {
	catalog := variant.NewCatalog(ToRawVariants(product.Variants))
	view := &ProductView{
		Product:      product,
		Catalog:      catalog,
		Requirements: variant.ComputeRequirements(catalog),
		Sizes:        variant.SummarizeBySize(catalog),
		Info:         s.productInfo(ctx, product),
	}

	if catalog.Empty() {
		s.logger.Debug("商品没有变体，使用基础价",
			zap.Int64("product_id", product.ID),
			zap.String("base_price", product.BasePrice.String()),
		)
	}
	return view
}

// productInfo 行项目所需的商品元数据，含赠品
func (s *ProductService) productInfo(ctx context.Context, p *model.Product) variant.ProductInfo {
	info := variant.ProductInfo{
		ID:        p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		BasePrice: p.BasePrice,
	}

	badge := p.FreeGiftBadge()
	if badge == nil || badge.GiftProduct == nil {
		return info
	}

	gift := &variant.GiftRef{
		ProductID: badge.GiftProduct.ID,
		Name:      badge.GiftProduct.Name,
	}
	if cover := badge.GiftProduct.CoverImage(); cover != nil {
		gift.ImageKey = cover.Path
		image, err := s.storage.ImageURL(ctx, cover)
		if err != nil {
			s.logger.Warn("赠品图片地址生成失败，使用存储路径",
				zap.Int64("gift_product_id", gift.ProductID),
				zap.Error(err),
			)
			image = cover.Path
		}
		gift.Image = image
	}
	info.FreeGift = gift
	return info
}

// GetProductDetail 商品详情
func (s *ProductService) GetProductDetail(ctx context.Context, id int64) (*dto.ProductDetailResp, error) {
	view, err := s.GetProductView(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, view)
}

// GetProductDetailBySlug 按 slug 查询商品详情
func (s *ProductService) GetProductDetailBySlug(ctx context.Context, slug string) (*dto.ProductDetailResp, error) {
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("加载商品 %s 失败: %w", slug, err)
	}

	return s.detail(ctx, s.buildView(ctx, product))
}

func (s *ProductService) detail(ctx context.Context, view *ProductView) (*dto.ProductDetailResp, error) {
	p := view.Product
	images := make([]dto.ImageResp, 0, len(p.Images))
	for i := range p.Images {
		url, err := s.storage.ImageURL(ctx, &p.Images[i])
		if err != nil {
			return nil, fmt.Errorf("图片地址生成失败: %w", err)
		}
		images = append(images, dto.ImageResp{
			ID:      p.Images[i].ID,
			URL:     url,
			Rank:    p.Images[i].Rank,
			AltText: p.Images[i].AltText,
		})
	}

	var cover string
	if len(images) > 0 {
		cover = images[0].URL
	}

	variants := make([]dto.VariantResp, 0, view.Catalog.Len())
	for _, v := range view.Catalog.Variants() {
		variants = append(variants, ToVariantResp(v))
	}

	return &dto.ProductDetailResp{
		ProductResp:  ToProductResp(p, view.Catalog, cover),
		Description:  p.Description,
		Images:       images,
		Variants:     variants,
		Requirements: view.Requirements,
		Required:     attributeNames(view.Requirements.Required()),
		Options:      OptionsMap(view.Catalog),
		Sizes:        view.Sizes,
		FreeGift:     view.Info.FreeGift,
	}, nil
}

// GetSizeSummary 按尺寸汇总的"低至"价格
func (s *ProductService) GetSizeSummary(ctx context.Context, id int64) ([]variant.SizeSummary, error) {
	view, err := s.GetProductView(ctx, id)
	if err != nil {
		return nil, err
	}
	return view.Sizes, nil
}

// ParseChoices 校验属性名；占位值被丢弃
func ParseChoices(raw map[string]string) (variant.Choices, error) {
	m := make(map[variant.Attribute]string, len(raw))
	for key, value := range raw {
		attr, ok := variant.ParseAttribute(key)
		if !ok {
			return variant.Choices{}, fmt.Errorf("%w: %s", ErrInvalidAttribute, key)
		}
		m[attr] = value
	}
	return variant.NewChoices(m), nil
}

// Resolve 按选择解析变体
func (s *ProductService) Resolve(ctx context.Context, id int64, raw map[string]string) (*dto.ResolveResp, error) {
	chosen, err := ParseChoices(raw)
	if err != nil {
		return nil, err
	}

	view, err := s.GetProductView(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToResolveResp(s.ResolveView(view, chosen), chosen)
	return &resp, nil
}

// ResolveView 在已加载的目录上解析，回退时记录数据质量告警
func (s *ProductService) ResolveView(view *ProductView, chosen variant.Choices) variant.Resolution {
	res := variant.Resolve(view.Catalog, chosen, view.Product.BasePrice)
	if res.Fallback {
		s.logger.Warn("选择组合在目录中不存在，回退到首个变体",
			zap.Int64("product_id", view.Product.ID),
			zap.Any("chosen", chosen.Map()),
			zap.String("fallback_sku", res.Variant.SKU),
		)
	}
	return res
}

// List 商品列表
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResp, int64, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("查询商品列表失败: %w", err)
	}

	out := make([]dto.ProductResp, 0, len(products))
	for i := range products {
		p := &products[i]
		cover, err := s.storage.ImageURL(ctx, p.CoverImage())
		if err != nil {
			return nil, 0, fmt.Errorf("图片地址生成失败: %w", err)
		}
		catalog := variant.NewCatalog(ToRawVariants(p.Variants))
		out = append(out, ToProductResp(p, catalog, cover))
	}
	return out, total, nil
}
