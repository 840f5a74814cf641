package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sleepwell_store_v1_202610/internal/api/dto"
	"sleepwell_store_v1_202610/internal/core/variant"
	"sleepwell_store_v1_202610/pkg/utils"
)

// 去抖使用的动作名
const (
	ActionAddToCart = "add_to_cart"
	ActionStart     = "start"
)

// ==================== Session ====================

// Session 一次商品浏览中的选择流程
type Session struct {
	mu sync.Mutex

	ID        string
	ProductID int64
	CartID    string
	Quantity  int
	ImageID   int64
	CreatedAt time.Time

	view    *ProductView
	machine *variant.Machine
}

// ==================== 配置 ====================

type SelectionConfig struct {
	TTL         time.Duration // 会话空闲过期时间
	Debounce    time.Duration // 同一会话两次加购的最小间隔
	SoftPrompts bool          // 引导流程是否询问深度/软硬度
}

// StartInput 开始 (或重新开始) 流程的参数
type StartInput struct {
	CartID    string
	Mode      string
	Attribute string
	Quantity  int
	ImageID   int64
}

// ==================== SelectionService ====================

type SelectionService struct {
	products *ProductService
	carts    *CartService
	sessions *utils.TTLCache[*Session]
	limiter  *utils.ActionLimiter
	cfg      SelectionConfig
	logger   *zap.Logger
}

func NewSelectionService(products *ProductService, carts *CartService, limiter *utils.ActionLimiter, cfg SelectionConfig, logger *zap.Logger) *SelectionService {
	if limiter == nil {
		limiter = utils.NewActionLimiter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionService{
		products: products,
		carts:    carts,
		sessions: utils.NewTTLCache[*Session](cfg.TTL),
		limiter:  limiter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Create 为商品创建会话并立即开始流程
func (s *SelectionService) Create(ctx context.Context, productID int64, in StartInput) (*dto.SelectionResp, error) {
	mode, priority, err := parseStart(in)
	if err != nil {
		return nil, err
	}

	view, err := s.products.GetProductView(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := view.Image(in.ImageID); err != nil {
		return nil, err
	}

	cartID := in.CartID
	if cartID == "" {
		cartID = uuid.NewString()
	}

	sess := &Session{
		ID:        uuid.NewString(),
		ProductID: productID,
		CartID:    cartID,
		Quantity:  in.Quantity,
		ImageID:   in.ImageID,
		CreatedAt: time.Now(),
		view:      view,
		machine:   variant.NewMachine(view.Catalog, variant.WithSoftPrompts(s.cfg.SoftPrompts)),
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.sessions.Set(sess.ID, sess)

	s.logger.Debug("创建选择会话",
		zap.String("session_id", sess.ID),
		zap.Int64("product_id", productID),
		zap.String("mode", mode.String()),
	)
	return s.transition(ctx, sess, sess.machine.Start(mode, priority...))
}

// Restart 在已有会话上重新开始
// 进行中的流程被重置，已做出的选择保留
func (s *SelectionService) Restart(ctx context.Context, sessionID string, in StartInput) (*dto.SelectionResp, error) {
	mode, priority, err := parseStart(in)
	if err != nil {
		return nil, err
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.view.Image(in.ImageID); err != nil {
		return nil, err
	}
	if in.Quantity > 0 {
		sess.Quantity = in.Quantity
	}
	if in.ImageID != 0 {
		sess.ImageID = in.ImageID
	}
	return s.transition(ctx, sess, sess.machine.Start(mode, priority...))
}

// Answer 选择框提交
func (s *SelectionService) Answer(ctx context.Context, sessionID, attribute, value string) (*dto.SelectionResp, error) {
	attr, ok := variant.ParseAttribute(attribute)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAttribute, attribute)
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.transition(ctx, sess, sess.machine.Answer(attr, value))
}

// Cancel 关闭选择框，重复调用无副作用
func (s *SelectionService) Cancel(ctx context.Context, sessionID string) (*dto.SelectionResp, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.transition(ctx, sess, sess.machine.Cancel())
}

// Get 当前状态
func (s *SelectionService) Get(ctx context.Context, sessionID string) (*dto.SelectionResp, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.transition(ctx, sess, sess.machine.Snapshot())
}

// PurgeExpired 清理过期会话及其去抖记录，返回清理的会话数量
func (s *SelectionService) PurgeExpired() int {
	removed := s.sessions.Purge()
	for _, id := range removed {
		s.limiter.Reset(utils.SessionActionKey(id, ActionAddToCart))
		s.limiter.Reset(utils.SessionActionKey(id, ActionStart))
	}
	s.limiter.Prune(s.cfg.Debounce)
	return len(removed)
}

// ActiveSessions 当前会话数 (含未清理的过期项)
func (s *SelectionService) ActiveSessions() int {
	return s.sessions.Len()
}

// ==================== 内部方法 ====================

func (s *SelectionService) lookup(sessionID string) (*Session, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.sessions.Touch(sessionID)
	return sess, nil
}

func parseStart(in StartInput) (variant.Mode, []variant.Attribute, error) {
	mode, ok := variant.ParseMode(in.Mode)
	if !ok {
		return variant.ModeIdle, nil, fmt.Errorf("%w: %s", ErrInvalidMode, in.Mode)
	}
	if in.Attribute == "" {
		return mode, nil, nil
	}
	attr, ok := variant.ParseAttribute(in.Attribute)
	if !ok {
		return variant.ModeIdle, nil, fmt.Errorf("%w: %s", ErrInvalidAttribute, in.Attribute)
	}
	return mode, []variant.Attribute{attr}, nil
}

// transition 把状态机的一步转换成响应；完成时构建行项目并交给购物车
// 调用方持有 sess.mu
func (s *SelectionService) transition(ctx context.Context, sess *Session, step variant.Step) (*dto.SelectionResp, error) {
	view := sess.view
	resp := &dto.SelectionResp{
		SessionID: sess.ID,
		CartID:    sess.CartID,
		ProductID: sess.ProductID,
		Phase:     step.Phase.String(),
		Mode:      step.Mode.String(),
		Pending:   attributeNames(step.Pending),
		Chosen:    step.Chosen.Map(),
		Ignored:   step.Ignored,
	}
	if step.Phase == variant.PhasePrompting {
		resp.Prompt = &dto.PromptResp{
			Attribute: step.Prompt.String(),
			Options:   step.Options,
			Current:   step.Current,
		}
	}

	if !step.Completed {
		// 预览价格，不记录回退
		resp.Price = ToResolveResp(variant.Resolve(view.Catalog, step.Chosen, view.Product.BasePrice), step.Chosen)
		return resp, nil
	}

	req := sess.machine.Requirements()
	chosen := variant.ApplySoftDefaults(view.Catalog, req, step.Chosen)
	res := s.products.ResolveView(view, chosen)
	resp.Price = ToResolveResp(res, chosen)

	img, err := view.Image(sess.ImageID)
	if err != nil {
		return nil, err
	}
	imageURL, err := s.products.storage.ImageURL(ctx, img)
	if err != nil {
		// 图片不影响加购，退回存储路径
		s.logger.Warn("图片地址生成失败，使用存储路径",
			zap.String("session_id", sess.ID),
			zap.String("path", img.Path),
			zap.Error(err),
		)
		imageURL = img.Path
	}

	item := variant.BuildLineItem(view.Info, res, req, chosen, sess.Quantity, imageURL)
	if img != nil {
		item.ImageKey = img.Path
	}
	resp.LineItem = &item

	key := utils.SessionActionKey(sess.ID, ActionAddToCart)
	if result := s.limiter.Check(key, s.cfg.Debounce); !result.Allowed {
		s.logger.Info("重复加购已忽略",
			zap.String("session_id", sess.ID),
			zap.Duration("retry_after", result.RetryAfter),
		)
		return resp, nil
	}

	s.carts.Dispatch(CartLine{CartID: sess.CartID, SessionID: sess.ID, Item: item})
	resp.Dispatched = true
	return resp, nil
}
