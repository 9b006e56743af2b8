package httpserver

import (
	"github.com/gin-gonic/gin"

	"storefront-client/internal/domain"
)

func cartSummary(cart CartStore) gin.H {
	return gin.H{
		"items":      cart.Items(),
		"totalItems": cart.TotalItems(),
		"totalPrice": cart.TotalPrice(),
	}
}

func getCartHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondOK(c, cartSummary(cart))
	}
}

func addCartItemHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product domain.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			respondError(c, &domain.ValidationError{Message: "invalid product payload"})
			return
		}
		if product.ID == "" || product.VendorID == "" {
			respondError(c, &domain.ValidationError{Message: "product id and vendorId are required"})
			return
		}
		if product.Price < 0 {
			respondError(c, &domain.ValidationError{Message: "price must not be negative"})
			return
		}

		if err := cart.Add(c.Request.Context(), product); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, cartSummary(cart))
	}
}

func setCartQuantityHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, &domain.ValidationError{Message: "invalid quantity payload"})
			return
		}

		if err := cart.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, cartSummary(cart))
	}
}

func removeCartItemHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cart.Remove(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, cartSummary(cart))
	}
}

func clearCartHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cart.Clear(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, cartSummary(cart))
	}
}
