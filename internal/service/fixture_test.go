package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sleepwell_store_v1_202610/internal/model"
	"sleepwell_store_v1_202610/internal/repository"
)

// ==================== 测试辅助 ====================

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Product{},
		&model.ProductVariant{},
		&model.ProductImage{},
		&model.ProductBadge{},
		&model.CartItem{},
	)
	if err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

func sp(s string) *string { return &s }

func price(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

// seedMattress 床垫: 尺寸与颜色可选，深度/软硬度固定，附带赠品枕头
func seedMattress(t *testing.T, db *gorm.DB) (*model.Product, *model.Product) {
	t.Helper()

	pillow := &model.Product{
		Name:      "Cloud Pillow",
		Brand:     "Sleepwell",
		Slug:      "cloud-pillow",
		Category:  "pillow",
		IsActive:  true,
		BasePrice: decimal.NewFromInt(60),
		Images:    []model.ProductImage{{Path: "products/pillow/cover.jpg", Rank: 1}},
	}
	if err := db.Create(pillow).Error; err != nil {
		t.Fatalf("创建赠品失败: %v", err)
	}

	mattress := &model.Product{
		Name:      "Cloud Mattress",
		Brand:     "Sleepwell",
		Slug:      "cloud-mattress",
		Category:  "mattress",
		IsActive:  true,
		BasePrice: decimal.NewFromInt(900),
		Tags:      []string{"hybrid", "cooling"},
		Variants: []model.ProductVariant{
			{Position: 1, SKU: "CM-Q-G", Size: sp("Queen"), Color: sp("Grey"), Depth: sp("25cm"), Firmness: sp("Medium"),
				OriginalPrice: price(1000), CurrentPrice: price(800), Length: sp("200cm"), Width: sp("150cm"), Availability: true},
			{Position: 2, SKU: "CM-Q-B", Size: sp("Queen"), Color: sp("Blue"), Depth: sp("25cm"), Firmness: sp("Medium"),
				OriginalPrice: price(950), CurrentPrice: price(850), Availability: true},
			{Position: 3, SKU: "CM-K-G", Size: sp("King"), Color: sp("Grey"), Depth: sp("n/a"), Firmness: sp("Medium"),
				OriginalPrice: price(1200), CurrentPrice: price(1100), Availability: true},
		},
		Images: []model.ProductImage{
			{Path: "products/mattress/side.jpg", Rank: 2},
			{Path: "products/mattress/cover.jpg", Rank: 1},
		},
	}
	if err := db.Create(mattress).Error; err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	badge := &model.ProductBadge{
		ProductID:     mattress.ID,
		Kind:          model.BadgeKindFreeGift,
		Label:         "Free pillow",
		Enabled:       true,
		GiftProductID: &pillow.ID,
	}
	if err := db.Create(badge).Error; err != nil {
		t.Fatalf("创建徽章失败: %v", err)
	}
	return mattress, pillow
}

func newTestProductService(t *testing.T, db *gorm.DB) *ProductService {
	t.Helper()
	storage, err := NewStorageService(&StorageConfig{Provider: "local", BaseURL: "https://img.sleepwell.test"})
	if err != nil {
		t.Fatalf("创建存储服务失败: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db), storage, zap.NewNop())
}
