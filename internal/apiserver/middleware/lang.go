package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/pusdatin/simontok/internal/common/cnst"
	"github.com/pusdatin/simontok/internal/i18n"
)

// Lang resolves the request's display language and stores it on the context
// for the translator and templates.
func Lang() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.CtxLang, i18n.LangFromRequest(c.Request))
		c.Next()
	}
}
