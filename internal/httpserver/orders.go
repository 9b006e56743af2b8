package httpserver

import (
	"github.com/gin-gonic/gin"
)

func listOrdersHandler(view OrderView, session SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := session.UserID()
		if userID == "" {
			respondUnauthenticated(c)
			return
		}

		if err := view.Load(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, view.Orders())
	}
}

func cancelOrderHandler(view OrderView, session SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := session.UserID()
		if userID == "" {
			respondUnauthenticated(c)
			return
		}

		if err := view.Cancel(c.Request.Context(), c.Param("id"), userID); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, view.Orders())
	}
}
