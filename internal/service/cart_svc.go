package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"sleepwell_store_v1_202610/internal/api/dto"
	"sleepwell_store_v1_202610/internal/core/variant"
	"sleepwell_store_v1_202610/internal/model"
	"sleepwell_store_v1_202610/internal/repository"
	"sleepwell_store_v1_202610/pkg/utils"
)

// ==================== 接口定义 ====================

// CartLine 交给购物车的一行
type CartLine struct {
	CartID    string           `json:"cart_id"`
	SessionID string           `json:"session_id"`
	Item      variant.LineItem `json:"item"`
}

// CartStore 购物车外部协作方，只负责接收行项目
type CartStore interface {
	AddItem(ctx context.Context, line CartLine) error
	Name() string
}

// ==================== 工厂方法 ====================

type CartStoreConfig struct {
	Kind    string // "local" | "remote"
	URL     string
	Timeout time.Duration
}

func NewCartStore(cfg *CartStoreConfig, repo repository.CartRepository) (CartStore, error) {
	switch cfg.Kind {
	case "local", "":
		return NewLocalCartStore(repo), nil
	case "remote":
		if cfg.URL == "" {
			return nil, fmt.Errorf("remote 购物车需要配置 CART_STORE_URL")
		}
		return NewRemoteCartStore(utils.NewServiceClient(cfg.URL, cfg.Timeout)), nil
	default:
		return nil, fmt.Errorf("不支持的购物车类型: %s", cfg.Kind)
	}
}

// ==================== Local 实现 ====================

type localCartStore struct {
	repo repository.CartRepository
}

// NewLocalCartStore 写入本库 cart_items
func NewLocalCartStore(repo repository.CartRepository) CartStore {
	return &localCartStore{repo: repo}
}

func (l *localCartStore) Name() string { return "local" }

func (l *localCartStore) AddItem(ctx context.Context, line CartLine) error {
	payload, err := json.Marshal(line.Item)
	if err != nil {
		return fmt.Errorf("序列化行项目失败: %w", err)
	}

	return l.repo.AddItem(ctx, &model.CartItem{
		CartID:    line.CartID,
		ProductID: line.Item.ProductID,
		SKU:       line.Item.SKU,
		LineKey:   line.Item.Key(),
		SessionID: line.SessionID,
		Quantity:  line.Item.Quantity,
		UnitPrice: line.Item.CurrentPrice,
		Payload:   datatypes.JSON(payload),
	})
}

// ==================== Remote 实现 ====================

type remoteCartStore struct {
	client *resty.Client
}

// NewRemoteCartStore POST {baseURL}/carts/{cart_id}/items
func NewRemoteCartStore(client *resty.Client) CartStore {
	return &remoteCartStore{client: client}
}

func (r *remoteCartStore) Name() string { return "remote" }

func (r *remoteCartStore) AddItem(ctx context.Context, line CartLine) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("cart_id", line.CartID).
		SetHeader("X-Selection-Session", line.SessionID).
		SetBody(line.Item).
		Post("/carts/{cart_id}/items")
	if err != nil {
		return fmt.Errorf("请求购物车服务失败: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("购物车服务返回错误: %s", resp.Status())
	}
	return nil
}

// ==================== CartService ====================

// CartService 加购交接：发出即返回，不等待结果，不重试
type CartService struct {
	store   CartStore
	repo    repository.CartRepository
	storage *StorageService
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewCartService storage 用于读取时重新生成快照中的图片地址
func NewCartService(store CartStore, repo repository.CartRepository, storage *StorageService, timeout time.Duration, logger *zap.Logger) *CartService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		store:   store,
		repo:    repo,
		storage: storage,
		timeout: timeout,
		logger:  logger,
	}
}

// Dispatch 后台写入购物车，失败只记录日志
func (s *CartService) Dispatch(line CartLine) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		fields := []zap.Field{
			zap.String("store", s.store.Name()),
			zap.String("cart_id", line.CartID),
			zap.String("session_id", line.SessionID),
			zap.Int64("product_id", line.Item.ProductID),
			zap.String("sku", line.Item.SKU),
			zap.Int("quantity", line.Item.Quantity),
		}
		if err := s.store.AddItem(ctx, line); err != nil {
			s.logger.Error("加购失败", append(fields, zap.Error(err))...)
			return
		}
		s.logger.Info("加购成功", fields...)
	}()
}

// Wait 等待进行中的交接完成，用于优雅退出
func (s *CartService) Wait() {
	s.wg.Wait()
}

// ListItems 本地购物车内容
func (s *CartService) ListItems(ctx context.Context, cartID string) (*dto.CartResp, error) {
	rows, err := s.repo.ListByCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("查询购物车失败: %w", err)
	}

	resp := &dto.CartResp{CartID: cartID, Items: make([]dto.CartItemResp, 0, len(rows))}
	for _, row := range rows {
		item := dto.CartItemResp{
			ID:        row.ID,
			ProductID: row.ProductID,
			SKU:       row.SKU,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			UpdatedAt: row.UpdatedAt,
		}
		if len(row.Payload) > 0 {
			var snapshot variant.LineItem
			if err := json.Unmarshal(row.Payload, &snapshot); err != nil {
				s.logger.Warn("购物车快照解析失败", zap.Int64("cart_item_id", row.ID), zap.Error(err))
			} else {
				s.refreshImages(ctx, &snapshot)
				item.Item = &snapshot
			}
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}

// refreshImages 签名 URL 会过期，快照只信任 ImageKey
func (s *CartService) refreshImages(ctx context.Context, item *variant.LineItem) {
	if item.ImageKey != "" {
		item.Image = s.imageURL(ctx, item.ImageKey, item.Image)
	}
	if item.FreeGift != nil && item.FreeGift.ImageKey != "" {
		item.FreeGift.Image = s.imageURL(ctx, item.FreeGift.ImageKey, item.FreeGift.Image)
	}
}

func (s *CartService) imageURL(ctx context.Context, key, stored string) string {
	url, err := s.storage.URLForPath(ctx, key)
	if err != nil {
		s.logger.Warn("快照图片地址生成失败", zap.String("path", key), zap.Error(err))
		return stored
	}
	return url
}
