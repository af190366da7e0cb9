package httpkit

import (
	"net/http"

	"partyshop_backend/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartID returns the anonymous cart identifier for the request, minting a
// new one and setting the session cookie when absent. The id is opaque; it
// carries no user identity.
func CartID(c *gin.Context, cfg config.CartConfig) string {
	name := cfg.GetCartCookieName()

	if value, err := c.Cookie(name); err == nil && value != "" {
		if _, parseErr := uuid.Parse(value); parseErr == nil {
			return value
		}
	}

	cartID := uuid.New().String()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    cartID,
		Path:     "/",
		MaxAge:   int(cfg.GetCartCookieMaxAge().Seconds()),
		HttpOnly: true,
		Secure:   cfg.GetCartCookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
	return cartID
}
