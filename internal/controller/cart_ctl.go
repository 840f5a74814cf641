package controller

import (
	"github.com/gin-gonic/gin"

	"sleepwell_store_v1_202610/internal/service"
)

type CartController struct {
	cartService *service.CartService
}

func NewCartController(cartService *service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetItems 本地购物车内容
// @Summary 购物车行项目
// @Tags Cart
// @Param cart_id path string true "购物车ID"
// @Success 200 {object} dto.CartResp
// @Router /api/carts/{cart_id}/items [get]
func (ctrl *CartController) GetItems(c *gin.Context) {
	cartID := c.Param("cart_id")
	if cartID == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的购物车ID"})
		return
	}

	cart, err := ctrl.cartService.ListItems(c.Request.Context(), cartID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, cart)
}
