package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pusdatin/simontok/internal/auth/jwt"
	"github.com/pusdatin/simontok/internal/common/cnst"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// Auth resolves the session cookie into an Account on the context. It never
// aborts: pages that require a login enforce it with RequireLogin.
func Auth(jwtSvc *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cnst.SessionCookie)
		if err == nil && token != "" {
			if claims, err := jwtSvc.ValidateToken(token); err == nil {
				c.Set(cnst.CtxAccount, &session.Account{
					UserID:    claims.UserID,
					Name:      claims.Name,
					Role:      claims.Role,
					Office:    claims.Office,
					SessionID: claims.SessionID,
				})
			}
		}
		c.Next()
	}
}

// GetAccount returns the logged-in account on the context, or nil.
func GetAccount(c *gin.Context) *session.Account {
	v, exists := c.Get(cnst.CtxAccount)
	if !exists {
		return nil
	}
	acct, ok := v.(*session.Account)
	if !ok {
		return nil
	}
	return acct
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAccount(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// deny bounces an out-of-role request to the dashboard with a localized
// flash, mirroring how the handlers treat ownership failures.
func deny(c *gin.Context, flashes session.Store) {
	acct := GetAccount(c)
	if acct != nil && acct.SessionID != "" {
		msg := i18n.TranslateMessage(c, i18n.ErrorForbiddenAccess.MessageID, nil)
		_ = flashes.PushFlash(c.Request.Context(), acct.SessionID, session.Flash{
			Level:   session.FlashError,
			Message: msg,
		})
	}
	c.Redirect(http.StatusFound, "/dashboard")
	c.Abort()
}

// RequireAdmin rejects non-administrator accounts.
func RequireAdmin(flashes session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := GetAccount(c)
		if acct == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !acct.IsAdmin() {
			deny(c, flashes)
			return
		}
		c.Next()
	}
}

// RequireCentral limits a route to accounts of the central office; admins
// pass regardless of their office.
func RequireCentral(trigram string, flashes session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := GetAccount(c)
		if acct == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !acct.IsAdmin() && !acct.IsCentral(trigram) {
			deny(c, flashes)
			return
		}
		c.Next()
	}
}
