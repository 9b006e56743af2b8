package httpserver

import (
	"github.com/gin-gonic/gin"

	"storefront-client/internal/checkout"
	"storefront-client/internal/domain"
)

// checkoutGuardHandler reports where the UI should navigate when the checkout
// surface becomes active: empty redirect means stay.
func checkoutGuardHandler(co Checkout) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondOK(c, gin.H{"redirect": string(co.Guard())})
	}
}

func checkoutSubmitHandler(co Checkout) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DeliveryAddress string `json:"deliveryAddress"`
			PaymentMethod   string `json:"paymentMethod"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, &domain.ValidationError{Message: "invalid checkout payload"})
			return
		}

		res, err := co.Submit(c.Request.Context(), req.DeliveryAddress, req.PaymentMethod)
		if err != nil {
			respondError(c, err)
			return
		}

		data := gin.H{"redirect": string(res.Navigate)}
		if res.Navigate == checkout.NavigateOrderSuccess {
			data["orderId"] = res.OrderID
		}
		respondOK(c, data)
	}
}
