package dto

import (
	"sleepwell_store_v1_202610/internal/core/variant"
)

// ==================== 请求 DTO ====================

// CreateSelectionReq 创建选择会话并立即开始流程
type CreateSelectionReq struct {
	ProductID int64  `json:"product_id" binding:"required,gt=0"`
	CartID    string `json:"cart_id"`   // 为空时自动生成
	Mode      string `json:"mode"`      // guided | direct，默认 guided
	Attribute string `json:"attribute"` // direct 模式要打开的属性
	Quantity  int    `json:"quantity" binding:"gte=0"`
	ImageID   int64  `json:"image_id"` // 顾客当前查看的图片
}

// StartSelectionReq 在已有会话上重新开始 (例如再次点击"加入购物车"或"修改尺寸")
type StartSelectionReq struct {
	Mode      string `json:"mode"`
	Attribute string `json:"attribute"`
	Quantity  int    `json:"quantity" binding:"gte=0"`
	ImageID   int64  `json:"image_id"`
}

// AnswerReq 选择框提交
type AnswerReq struct {
	Attribute string `json:"attribute" binding:"required"`
	Value     string `json:"value" binding:"required"`
}

// ==================== 响应 DTO ====================

// PromptResp 需要打开的选择框
type PromptResp struct {
	Attribute string   `json:"attribute"`
	Options   []string `json:"options"`
	Current   string   `json:"current,omitempty"`
}

// SelectionResp 选择会话状态
type SelectionResp struct {
	SessionID string            `json:"session_id"`
	CartID    string            `json:"cart_id"`
	ProductID int64             `json:"product_id"`
	Phase     string            `json:"phase"`
	Mode      string            `json:"mode"`
	Prompt    *PromptResp       `json:"prompt,omitempty"`
	Pending   []string          `json:"pending"`
	Chosen    map[string]string `json:"chosen"`
	Price     ResolveResp       `json:"price"`

	// 本次迁移完成了引导流程
	LineItem   *variant.LineItem `json:"line_item,omitempty"`
	Dispatched bool              `json:"dispatched"`
	Ignored    bool              `json:"ignored,omitempty"`
}
