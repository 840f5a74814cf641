package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sleepwell_store_v1_202610/internal/api/dto"
	"sleepwell_store_v1_202610/internal/repository"
	"sleepwell_store_v1_202610/internal/service"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// @Summary 获取商品列表
// @Tags Product
// @Param category query string false "品类"
// @Param brand query string false "品牌"
// @Param keyword query string false "名称搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ProductListResp
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	list, total, err := ctrl.productService.List(c.Request.Context(), repository.ProductFilter{
		Category:   c.Query("category"),
		Brand:      c.Query("brand"),
		Keyword:    c.Query("keyword"),
		OnlyActive: true,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, dto.ProductListResp{
		Code:     0,
		Message:  "success",
		Data:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetProduct 获取商品详情
// @Summary 商品详情，包含变体目录、必选属性与尺寸价格汇总
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductDetailResp
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	detail, err := ctrl.productService.GetProductDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, detail)
}

// GetProductBySlug 按 slug 获取商品详情
// @Summary 商品详情 (slug)
// @Tags Product
// @Param slug path string true "商品 slug"
// @Success 200 {object} dto.ProductDetailResp
// @Router /api/products/slug/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	detail, err := ctrl.productService.GetProductDetailBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, detail)
}

// GetSizes 按尺寸汇总的"低至"价格
// @Summary 尺寸价格汇总
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {array} variant.SizeSummary
// @Router /api/products/{id}/sizes [get]
func (ctrl *ProductController) GetSizes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	sizes, err := ctrl.productService.GetSizeSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sizes)
}

// Resolve 按当前选择解析变体
// @Summary 解析变体
// @Tags Product
// @Param id path int true "商品ID"
// @Param body body dto.ResolveReq true "当前选择"
// @Success 200 {object} dto.ResolveResp
// @Router /api/products/{id}/resolve [post]
func (ctrl *ProductController) Resolve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var req dto.ResolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	res, err := ctrl.productService.Resolve(c.Request.Context(), id, req.Choices)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}
