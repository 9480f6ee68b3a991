package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/common/cnst"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// LoginPage renders the login form. A cookie that no longer resolves to an
// account means the session expired, so the form says why.
func (h *Handler) LoginPage(c *gin.Context) {
	if h.account(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	data := gin.H{"Title": "Login"}
	if token, err := c.Cookie(cnst.SessionCookie); err == nil && token != "" {
		data["Message"] = errMsg(c, i18n.ErrorUnauthorizedAccess)
		data["Info"] = true
	}
	h.render(c, "login.tmpl", data)
}

// Login checks the credentials and issues the session cookie.
func (h *Handler) Login(c *gin.Context) {
	username := field(c, "username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		h.render(c, "login.tmpl", gin.H{
			"Title":    "Login",
			"Message":  errMsg(c, i18n.ErrorRequiredField),
			"Username": username,
		})
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			h.logger.Error("login lookup failed", zap.Error(err))
		}
		h.metrics.LoginDone("failed")
		h.render(c, "login.tmpl", gin.H{
			"Title":    "Login",
			"Message":  errMsg(c, i18n.ErrorInvalidCredentials),
			"Username": username,
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		h.metrics.LoginDone("failed")
		h.render(c, "login.tmpl", gin.H{
			"Title":    "Login",
			"Message":  errMsg(c, i18n.ErrorInvalidCredentials),
			"Username": username,
		})
		return
	}

	sessionID := uuid.NewString()
	token, err := h.jwt.GenerateToken(user.ID, user.Name, user.Role, user.Office, sessionID)
	if err != nil {
		h.logger.Error("failed to sign session token", zap.Error(err))
		h.metrics.LoginDone("error")
		h.render(c, "login.tmpl", gin.H{
			"Title":    "Login",
			"Message":  errMsg(c, i18n.ErrorDatabaseFailure),
			"Username": username,
		})
		return
	}

	maxAge := int(h.jwt.Duration().Seconds())
	c.SetCookie(cnst.SessionCookie, token, maxAge, "/", "", false, true)

	msg := i18n.TranslateMessage(c, i18n.MsgLoginWelcome, map[string]interface{}{"Name": user.Name})
	if err := h.flashes.PushFlash(c.Request.Context(), sessionID, session.Flash{Level: session.FlashSuccess, Message: msg}); err != nil {
		h.logger.Warn("failed to push flash", zap.Error(err))
	}

	h.metrics.LoginDone("success")
	h.logger.Info("user logged in", zap.String("user", user.ID))
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session cookie and lands back on the login form.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(cnst.SessionCookie, "", -1, "/", "", false, true)
	c.Set(cnst.CtxAccount, (*session.Account)(nil))
	h.render(c, "login.tmpl", gin.H{
		"Title":   "Login",
		"Message": i18n.TranslateMessage(c, i18n.MsgLogout, nil),
		"Info":    true,
	})
}

// RegisterPage renders the self-service registration form.
func (h *Handler) RegisterPage(c *gin.Context) {
	offices, err := h.db.AllOffices(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load offices", zap.Error(err))
	}
	h.render(c, "register.tmpl", gin.H{"Title": "Registrasi", "Offices": offices})
}

// Register creates a regular-role account.
func (h *Handler) Register(c *gin.Context) {
	name := field(c, "name")
	username := field(c, "username")
	password := c.PostForm("password")
	office := upperField(c, "office")

	renderErr := func(msg string) {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "register.tmpl", gin.H{
			"Title":    "Registrasi",
			"Message":  msg,
			"Offices":  offices,
			"Name":     name,
			"Username": username,
			"Office":   office,
		})
	}

	if name == "" || username == "" || password == "" || office == "" {
		renderErr(errMsg(c, i18n.ErrorRequiredField))
		return
	}
	if _, err := h.db.GetOffice(c.Request.Context(), office); err != nil {
		renderErr(errMsg(c, i18n.ErrorInvalidValue))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		renderErr(errMsg(c, i18n.ErrorDatabaseFailure))
		return
	}

	user := &database.User{
		Name:     name,
		Username: username,
		Password: string(hash),
		Role:     session.RoleRegular,
		Office:   office,
	}
	user.UserInput = username
	user.DateInput = nowFunc()
	user.UserUpdate = username
	user.DateUpdate = user.DateInput

	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			renderErr(errMsg(c, i18n.ErrorUsernameExists))
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		renderErr(errMsg(c, i18n.ErrorDatabaseFailure))
		return
	}

	h.render(c, "login.tmpl", gin.H{
		"Title":    "Login",
		"Message":  i18n.TranslateMessage(c, i18n.MsgRegistered, nil),
		"Info":     true,
		"Username": username,
	})
}
