package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/export"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// Category and device-type catalogs. Both are admin-managed reference data
// with generated identifiers and referential delete guards.

func (h *Handler) CategoryList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListCategories(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "category_list.tmpl", gin.H{"Title": "Kategori"})
		return
	}
	h.render(c, "category_list.tmpl", gin.H{
		"Title":  "Kategori",
		"Result": result,
		"Query":  opt,
	})
}

func (h *Handler) CategoryCreatePage(c *gin.Context) {
	h.render(c, "category_form.tmpl", gin.H{
		"Title": "Tambah Kategori",
		"Row":   &database.Category{},
	})
}

func (h *Handler) CategoryCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.Category{Name: field(c, "name")}
	if row.Name == "" {
		h.render(c, "category_form.tmpl", gin.H{
			"Title":   "Tambah Kategori",
			"Row":     row,
			"Message": errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateCategory(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/kategori")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/kategori")
}

func (h *Handler) CategoryEditPage(c *gin.Context) {
	row, err := h.db.GetCategory(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/kategori")
		return
	}
	h.render(c, "category_form.tmpl", gin.H{
		"Title": "Ubah Kategori",
		"Row":   row,
		"Edit":  true,
	})
}

func (h *Handler) CategoryEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetCategory(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/kategori")
		return
	}

	row.Name = field(c, "name")
	if row.Name == "" {
		h.render(c, "category_form.tmpl", gin.H{
			"Title":   "Ubah Kategori",
			"Row":     row,
			"Edit":    true,
			"Message": errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateCategory(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/kategori")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/kategori")
}

func (h *Handler) CategoryDelete(c *gin.Context) {
	acct := h.account(c)
	if err := h.db.DeleteCategory(c.Request.Context(), c.Param("key")); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/kategori")
}

func (h *Handler) CategoryExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportCategories(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/kategori")
		return
	}

	t := export.Table{
		Title: "Daftar Kategori",
		Sheet: "Kategori",
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 20, Width: 10},
			{Header: "Kategori", Ratio: 5, Min: 60, Width: 40},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.ID, r.Name})
	}
	h.sendTable(c, "kategori", c.Param("format"), t)
}

func (h *Handler) DeviceTypeList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListDeviceTypes(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "devicetype_list.tmpl", gin.H{"Title": "Jenis Alat"})
		return
	}
	h.render(c, "devicetype_list.tmpl", gin.H{
		"Title":  "Jenis Alat",
		"Result": result,
		"Query":  opt,
	})
}

func (h *Handler) DeviceTypeCreatePage(c *gin.Context) {
	categories, _ := h.db.AllCategories(c.Request.Context())
	h.render(c, "devicetype_form.tmpl", gin.H{
		"Title":      "Tambah Jenis Alat",
		"Categories": categories,
		"Row":        &database.DeviceType{},
	})
}

func (h *Handler) DeviceTypeCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.DeviceType{
		Name:       field(c, "name"),
		CategoryID: upperField(c, "category"),
	}
	if row.Name == "" {
		categories, _ := h.db.AllCategories(c.Request.Context())
		h.render(c, "devicetype_form.tmpl", gin.H{
			"Title":      "Tambah Jenis Alat",
			"Categories": categories,
			"Row":        row,
			"Message":    errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateDeviceType(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/jenisalat")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/jenisalat")
}

func (h *Handler) DeviceTypeEditPage(c *gin.Context) {
	row, err := h.db.GetDeviceType(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/jenisalat")
		return
	}
	categories, _ := h.db.AllCategories(c.Request.Context())
	h.render(c, "devicetype_form.tmpl", gin.H{
		"Title":      "Ubah Jenis Alat",
		"Categories": categories,
		"Row":        row,
		"Edit":       true,
	})
}

func (h *Handler) DeviceTypeEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetDeviceType(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/jenisalat")
		return
	}

	row.Name = field(c, "name")
	row.CategoryID = upperField(c, "category")
	if row.Name == "" {
		categories, _ := h.db.AllCategories(c.Request.Context())
		h.render(c, "devicetype_form.tmpl", gin.H{
			"Title":      "Ubah Jenis Alat",
			"Categories": categories,
			"Row":        row,
			"Edit":       true,
			"Message":    errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateDeviceType(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/jenisalat")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/jenisalat")
}

func (h *Handler) DeviceTypeDelete(c *gin.Context) {
	acct := h.account(c)
	if err := h.db.DeleteDeviceType(c.Request.Context(), c.Param("key")); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/jenisalat")
}

func (h *Handler) DeviceTypeExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportDeviceTypes(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/jenisalat")
		return
	}

	t := export.Table{
		Title: "Daftar Jenis Alat",
		Sheet: "Jenis Alat",
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 20, Width: 10},
			{Header: "Jenis Alat", Ratio: 4, Min: 55, Width: 36},
			{Header: "Kategori", Ratio: 1, Min: 24, Width: 14},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.ID, r.Name, r.CategoryID})
	}
	h.sendTable(c, "jenisalat", c.Param("format"), t)
}
