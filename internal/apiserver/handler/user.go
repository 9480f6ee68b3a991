package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/export"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// UserList renders the account list. The route is admin-gated.
func (h *Handler) UserList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListUsers(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "user_list.tmpl", gin.H{"Title": "Pengguna"})
		return
	}
	h.render(c, "user_list.tmpl", gin.H{
		"Title":  "Pengguna",
		"Result": result,
		"Query":  opt,
	})
}

func (h *Handler) UserCreatePage(c *gin.Context) {
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, "user_form.tmpl", gin.H{
		"Title":   "Tambah Pengguna",
		"Offices": offices,
		"Row":     &database.User{Role: session.RoleRegular},
	})
}

func (h *Handler) UserCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.User{
		Name:     field(c, "name"),
		Username: field(c, "username"),
		Role:     intField(c, "role"),
		Office:   upperField(c, "office"),
	}
	password := c.PostForm("password")

	renderErr := func(msg string) {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "user_form.tmpl", gin.H{
			"Title":   "Tambah Pengguna",
			"Offices": offices,
			"Row":     row,
			"Message": msg,
		})
	}

	if row.Name == "" || row.Username == "" || password == "" {
		renderErr(errMsg(c, i18n.ErrorRequiredField))
		return
	}
	if row.Role != session.RoleAdmin && row.Role != session.RoleRegular {
		renderErr(errMsg(c, i18n.ErrorInvalidValue))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		renderErr(errMsg(c, i18n.ErrorDatabaseFailure))
		return
	}
	row.Password = string(hash)

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateUser(c.Request.Context(), row); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			renderErr(errMsg(c, i18n.ErrorUsernameExists))
			return
		}
		h.failure(c, acct, err)
		renderErr(errMsg(c, i18n.ErrorDatabaseFailure))
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/pengguna")
}

func (h *Handler) UserEditPage(c *gin.Context) {
	row, err := h.db.GetUser(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/pengguna")
		return
	}
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, "user_form.tmpl", gin.H{
		"Title":   "Ubah Pengguna",
		"Offices": offices,
		"Row":     row,
		"Edit":    true,
	})
}

// UserEdit updates an account; the stored hash survives unless a new
// password is submitted.
func (h *Handler) UserEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetUser(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/pengguna")
		return
	}

	row.Name = field(c, "name")
	row.Role = intField(c, "role")
	row.Office = upperField(c, "office")

	renderErr := func(msg string) {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "user_form.tmpl", gin.H{
			"Title":   "Ubah Pengguna",
			"Offices": offices,
			"Row":     row,
			"Edit":    true,
			"Message": msg,
		})
	}

	if row.Name == "" {
		renderErr(errMsg(c, i18n.ErrorRequiredField))
		return
	}
	if row.Role != session.RoleAdmin && row.Role != session.RoleRegular {
		renderErr(errMsg(c, i18n.ErrorInvalidValue))
		return
	}

	passwordChanged := false
	if password := c.PostForm("password"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			renderErr(errMsg(c, i18n.ErrorDatabaseFailure))
			return
		}
		row.Password = string(hash)
		passwordChanged = true
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateUser(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/pengguna")
		return
	}

	if passwordChanged {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgPasswordChanged)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	}
	c.Redirect(http.StatusFound, "/pengguna")
}

func (h *Handler) UserDelete(c *gin.Context) {
	acct := h.account(c)
	if err := h.db.DeleteUser(c.Request.Context(), c.Param("key")); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/pengguna")
}

func (h *Handler) UserExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportUsers(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/pengguna")
		return
	}

	t := export.Table{
		Title: "Daftar Pengguna",
		Sheet: "Pengguna",
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 18, Width: 10},
			{Header: "Nama", Ratio: 4, Min: 50, Width: 30},
			{Header: "Username", Ratio: 2, Min: 30, Width: 20},
			{Header: "Role", Ratio: 1, Min: 14, Width: 8},
			{Header: "Perwakilan", Ratio: 1, Min: 22, Width: 12},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ID, r.Name, r.Username, strconv.Itoa(r.Role), r.Office,
		})
	}
	h.sendTable(c, "pengguna", c.Param("format"), t)
}
