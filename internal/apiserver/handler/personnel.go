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

func (h *Handler) PersonnelList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListPersonnel(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "personnel_list.tmpl", gin.H{"Title": "Personel"})
		return
	}
	h.render(c, "personnel_list.tmpl", gin.H{
		"Title":  "Personel",
		"Result": result,
		"Query":  opt,
	})
}

// PersonnelDetail shows one personnel row with its education, functional
// grade and posting histories.
func (h *Handler) PersonnelDetail(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetPersonnel(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/personel")
		return
	}

	education, _ := h.db.EducationFor(c.Request.Context(), row.ID)
	functional, _ := h.db.FunctionalFor(c.Request.Context(), row.ID)
	postings, _ := h.db.PostingsFor(c.Request.Context(), row.ID)

	h.render(c, "personnel_detail.tmpl", gin.H{
		"Title":      "Detail Personel",
		"Row":        row,
		"Education":  education,
		"Functional": functional,
		"Postings":   postings,
	})
}

func (h *Handler) PersonnelCreatePage(c *gin.Context) {
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, "personnel_form.tmpl", gin.H{
		"Title":   "Tambah Personel",
		"Offices": offices,
		"Row":     &database.Personnel{},
	})
}

func (h *Handler) PersonnelCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.Personnel{
		Name:       field(c, "name"),
		BirthPlace: field(c, "birth_place"),
		BirthDate:  dateField(c, "birth_date"),
		NIP:        field(c, "nip"),
		Rank:       field(c, "rank"),
		Office:     upperField(c, "office"),
	}
	if !acct.IsAdmin() {
		row.Office = acct.Office
	}

	if row.Name == "" || row.Office == "" {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "personnel_form.tmpl", gin.H{
			"Title":   "Tambah Personel",
			"Offices": offices,
			"Row":     row,
			"Message": errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreatePersonnel(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/personel")
}

func (h *Handler) PersonnelEditPage(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetPersonnel(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/personel")
		return
	}
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, "personnel_form.tmpl", gin.H{
		"Title":   "Ubah Personel",
		"Offices": offices,
		"Row":     row,
		"Edit":    true,
	})
}

func (h *Handler) PersonnelEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetPersonnel(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/personel")
		return
	}

	row.Name = field(c, "name")
	row.BirthPlace = field(c, "birth_place")
	row.BirthDate = dateField(c, "birth_date")
	row.NIP = field(c, "nip")
	row.Rank = field(c, "rank")
	if acct.IsAdmin() {
		row.Office = upperField(c, "office")
	}

	if row.Name == "" || row.Office == "" {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "personnel_form.tmpl", gin.H{
			"Title":   "Ubah Personel",
			"Offices": offices,
			"Row":     row,
			"Edit":    true,
			"Message": errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdatePersonnel(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/personel")
}

// PersonnelDelete removes the row and its child records.
func (h *Handler) PersonnelDelete(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetPersonnel(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/personel")
		return
	}

	if err := h.db.DeletePersonnel(c.Request.Context(), row.ID); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/personel")
}

func (h *Handler) PersonnelExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportPersonnel(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}

	t := export.Table{
		Title: "Daftar Personel",
		Sheet: "Personel",
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 18, Width: 10},
			{Header: "Nama", Ratio: 4, Min: 50, Width: 30},
			{Header: "NIP", Ratio: 2, Min: 32, Width: 20},
			{Header: "Pangkat", Ratio: 2, Min: 30, Width: 18},
			{Header: "Tgl Lahir", Ratio: 1, Min: 24, Width: 14},
			{Header: "Penempatan Ke", Ratio: 1, Min: 22, Width: 12},
			{Header: "Perwakilan", Ratio: 1, Min: 22, Width: 12, AdminOnly: true},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ID, r.Name, r.NIP, r.Rank, formatDate(r.BirthDate),
			strconv.Itoa(r.PostingNo), r.Office,
		})
	}
	h.sendTable(c, "personel", c.Param("format"), t)
}
