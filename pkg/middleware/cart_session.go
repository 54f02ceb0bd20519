package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const cartCookieName = "cart_token"

// CartSessionMiddleware assigns an anonymous cart token to every visitor.
// The cart itself is only created on first add-to-cart.
func CartSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cartCookieName)
		if err != nil || token == "" {
			token = uuid.New().String()
			c.SetCookie(cartCookieName, token, 3600*24*30, "/", "", false, true)
		}
		c.Set("cart_token", token)
		c.Next()
	}
}
