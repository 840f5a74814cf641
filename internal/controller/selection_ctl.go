package controller

import (
	"github.com/gin-gonic/gin"

	"sleepwell_store_v1_202610/internal/api/dto"
	"sleepwell_store_v1_202610/internal/service"
)

type SelectionController struct {
	selectionService *service.SelectionService
}

func NewSelectionController(selectionService *service.SelectionService) *SelectionController {
	return &SelectionController{selectionService: selectionService}
}

// Create 创建选择会话 (点击"加入购物车"或某个规格)
// @Summary 开始选择流程
// @Description mode=guided 依次询问全部必选属性，完成后自动加购；mode=direct 只打开 attribute 指定的选择框
// @Tags Selection
// @Param body body dto.CreateSelectionReq true "开始参数"
// @Success 200 {object} dto.SelectionResp
// @Router /api/selections [post]
func (ctrl *SelectionController) Create(c *gin.Context) {
	var req dto.CreateSelectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.selectionService.Create(c.Request.Context(), req.ProductID, service.StartInput{
		CartID:    req.CartID,
		Mode:      req.Mode,
		Attribute: req.Attribute,
		Quantity:  req.Quantity,
		ImageID:   req.ImageID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// Restart 在已有会话上重新开始
// @Summary 重新开始选择流程
// @Description 进行中的流程被重置，已做出的选择保留
// @Tags Selection
// @Param id path string true "会话ID"
// @Param body body dto.StartSelectionReq false "开始参数"
// @Success 200 {object} dto.SelectionResp
// @Failure 429 {object} map[string]interface{}
// @Router /api/selections/{id}/start [post]
func (ctrl *SelectionController) Restart(c *gin.Context) {
	var req dto.StartSelectionReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
			return
		}
	}

	resp, err := ctrl.selectionService.Restart(c.Request.Context(), c.Param("id"), service.StartInput{
		Mode:      req.Mode,
		Attribute: req.Attribute,
		Quantity:  req.Quantity,
		ImageID:   req.ImageID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// Get 查询会话状态
// @Summary 会话状态
// @Tags Selection
// @Param id path string true "会话ID"
// @Success 200 {object} dto.SelectionResp
// @Router /api/selections/{id} [get]
func (ctrl *SelectionController) Get(c *gin.Context) {
	resp, err := ctrl.selectionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// Answer 选择框提交
// @Summary 提交选择
// @Tags Selection
// @Param id path string true "会话ID"
// @Param body body dto.AnswerReq true "属性与取值"
// @Success 200 {object} dto.SelectionResp
// @Router /api/selections/{id}/answer [post]
func (ctrl *SelectionController) Answer(c *gin.Context) {
	var req dto.AnswerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.selectionService.Answer(c.Request.Context(), c.Param("id"), req.Attribute, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// Cancel 关闭选择框
// @Summary 取消当前选择框
// @Tags Selection
// @Param id path string true "会话ID"
// @Success 200 {object} dto.SelectionResp
// @Router /api/selections/{id}/cancel [post]
func (ctrl *SelectionController) Cancel(c *gin.Context) {
	resp, err := ctrl.selectionService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
