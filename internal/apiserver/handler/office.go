package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/export"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// OfficeList renders the office reference list. Offices are admin-managed
// but readable by everyone for the scoping dropdowns.
func (h *Handler) OfficeList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListOffices(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "office_list.tmpl", gin.H{"Title": "Perwakilan"})
		return
	}
	h.render(c, "office_list.tmpl", gin.H{
		"Title":  "Perwakilan",
		"Result": result,
		"Query":  opt,
	})
}

func (h *Handler) OfficeCreatePage(c *gin.Context) {
	h.render(c, "office_form.tmpl", gin.H{
		"Title": "Tambah Perwakilan",
		"Kinds": database.OfficeKinds,
		"Row":   &database.Office{},
	})
}

func (h *Handler) OfficeCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.Office{
		Trigram: upperField(c, "trigram"),
		Bigram:  upperField(c, "bigram"),
		Name:    field(c, "name"),
		Country: field(c, "country"),
		Kind:    database.OfficeKind(upperField(c, "kind")),
	}

	if msg := validateOffice(c, row); msg != "" {
		h.render(c, "office_form.tmpl", gin.H{
			"Title":   "Tambah Perwakilan",
			"Kinds":   database.OfficeKinds,
			"Row":     row,
			"Message": msg,
		})
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateOffice(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		h.render(c, "office_form.tmpl", gin.H{
			"Title": "Tambah Perwakilan",
			"Kinds": database.OfficeKinds,
			"Row":   row,
		})
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/perwakilan")
}

func (h *Handler) OfficeEditPage(c *gin.Context) {
	row, err := h.db.GetOffice(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/perwakilan")
		return
	}
	h.render(c, "office_form.tmpl", gin.H{
		"Title": "Ubah Perwakilan",
		"Kinds": database.OfficeKinds,
		"Row":   row,
		"Edit":  true,
	})
}

func (h *Handler) OfficeEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetOffice(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/perwakilan")
		return
	}

	row.Bigram = upperField(c, "bigram")
	row.Name = field(c, "name")
	row.Country = field(c, "country")
	row.Kind = database.OfficeKind(upperField(c, "kind"))

	if msg := validateOffice(c, row); msg != "" {
		h.render(c, "office_form.tmpl", gin.H{
			"Title":   "Ubah Perwakilan",
			"Kinds":   database.OfficeKinds,
			"Row":     row,
			"Edit":    true,
			"Message": msg,
		})
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateOffice(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/perwakilan")
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/perwakilan")
}

func (h *Handler) OfficeDelete(c *gin.Context) {
	acct := h.account(c)
	if err := h.db.DeleteOffice(c.Request.Context(), c.Param("key")); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/perwakilan")
}

func (h *Handler) OfficeExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportOffices(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/perwakilan")
		return
	}

	t := export.Table{
		Title: "Daftar Perwakilan",
		Sheet: "Perwakilan",
		Columns: []export.Column{
			{Header: "Trigram", Ratio: 1, Min: 18, Width: 10},
			{Header: "Bigram", Ratio: 1, Min: 16, Width: 9},
			{Header: "Nama Perwakilan", Ratio: 4, Min: 50, Width: 32},
			{Header: "Negara", Ratio: 3, Min: 35, Width: 24},
			{Header: "Jenis", Ratio: 1, Min: 16, Width: 10},
			{Header: "No Urutan", Ratio: 1, Min: 18, Width: 10},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Trigram, r.Bigram, r.Name, r.Country, string(r.Kind), strconv.Itoa(r.SeqNo),
		})
	}
	h.sendTable(c, "perwakilan", c.Param("format"), t)
}

func validateOffice(c *gin.Context, row *database.Office) string {
	if row.Trigram == "" || row.Name == "" || row.Country == "" {
		return errMsg(c, i18n.ErrorRequiredField)
	}
	if len(row.Trigram) != 3 || !database.ValidOfficeKind(string(row.Kind)) {
		return errMsg(c, i18n.ErrorInvalidValue)
	}
	return ""
}
