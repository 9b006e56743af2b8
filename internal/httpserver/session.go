package httpserver

import (
	"github.com/gin-gonic/gin"

	"storefront-client/internal/domain"
)

func getSessionHandler(session SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondOK(c, session.Snapshot())
	}
}

// loginHandler records an identity the upstream auth flow has already
// verified; credential checking is not this process's job.
func loginHandler(session SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.BeginLogin()

		var user domain.User
		if err := c.ShouldBindJSON(&user); err != nil {
			session.FailLogin("invalid identity payload")
			respondError(c, &domain.ValidationError{Message: "invalid identity payload"})
			return
		}
		if user.ID == "" {
			session.FailLogin("identity id is required")
			respondError(c, &domain.ValidationError{Message: "identity id is required"})
			return
		}

		if err := session.CompleteLogin(c.Request.Context(), user); err != nil {
			session.FailLogin(err.Error())
			respondError(c, err)
			return
		}
		respondOK(c, session.Snapshot())
	}
}

func logoutHandler(session SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := session.Logout(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, session.Snapshot())
	}
}
