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

// System-type catalog and the registered system documents.

func (h *Handler) SystemTypeList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListSystemTypes(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "systemtype_list.tmpl", gin.H{"Title": "Jenis Sistem"})
		return
	}
	h.render(c, "systemtype_list.tmpl", gin.H{
		"Title":  "Jenis Sistem",
		"Result": result,
		"Query":  opt,
	})
}

func (h *Handler) SystemTypeCreatePage(c *gin.Context) {
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, "systemtype_form.tmpl", gin.H{
		"Title":   "Tambah Jenis Sistem",
		"Offices": offices,
		"Row":     &database.SystemType{},
	})
}

func (h *Handler) SystemTypeCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.SystemType{
		Name:   field(c, "name"),
		Office: upperField(c, "office"),
	}
	if !acct.IsAdmin() {
		row.Office = acct.Office
	}

	if row.Name == "" {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "systemtype_form.tmpl", gin.H{
			"Title":   "Tambah Jenis Sistem",
			"Offices": offices,
			"Row":     row,
			"Message": errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateSystemType(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/jenissistem")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/jenissistem")
}

func (h *Handler) SystemTypeEditPage(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetSystemType(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/jenissistem")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/jenissistem")
		return
	}
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, "systemtype_form.tmpl", gin.H{
		"Title":   "Ubah Jenis Sistem",
		"Offices": offices,
		"Row":     row,
		"Edit":    true,
	})
}

func (h *Handler) SystemTypeEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetSystemType(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/jenissistem")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/jenissistem")
		return
	}

	row.Name = field(c, "name")
	if acct.IsAdmin() {
		row.Office = upperField(c, "office")
	}
	if row.Name == "" {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "systemtype_form.tmpl", gin.H{
			"Title":   "Ubah Jenis Sistem",
			"Offices": offices,
			"Row":     row,
			"Edit":    true,
			"Message": errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateSystemType(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/jenissistem")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/jenissistem")
}

func (h *Handler) SystemTypeDelete(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetSystemType(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/jenissistem")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/jenissistem")
		return
	}

	if err := h.db.DeleteSystemType(c.Request.Context(), row.ID); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/jenissistem")
}

func (h *Handler) SystemTypeExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportSystemTypes(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/jenissistem")
		return
	}

	t := export.Table{
		Title: "Daftar Jenis Sistem",
		Sheet: "Jenis Sistem",
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 20, Width: 10},
			{Header: "Jenis", Ratio: 5, Min: 60, Width: 40},
			{Header: "Perwakilan", Ratio: 1, Min: 22, Width: 12, AdminOnly: true},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.ID, r.Name, r.Office})
	}
	h.sendTable(c, "jenissistem", c.Param("format"), t)
}

func (h *Handler) SystemList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListSystemRecords(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "system_list.tmpl", gin.H{"Title": "Sistem"})
		return
	}
	h.render(c, "system_list.tmpl", gin.H{
		"Title":  "Sistem",
		"Result": result,
		"Query":  opt,
	})
}

// systemTypeChoices limits the type picker to the caller's own office.
func (h *Handler) systemTypeChoices(c *gin.Context, acct *session.Account) []database.SystemType {
	types, _ := h.db.AllSystemTypes(c.Request.Context())
	if acct.IsAdmin() {
		return types
	}
	var own []database.SystemType
	for _, t := range types {
		if t.Office == acct.Office {
			own = append(own, t)
		}
	}
	return own
}

// systemRecordOffice resolves the office owning a record through its type.
func (h *Handler) systemRecordOffice(c *gin.Context, row *database.SystemRecord) string {
	st, err := h.db.GetSystemType(c.Request.Context(), row.TypeID)
	if err != nil {
		return ""
	}
	return st.Office
}

func (h *Handler) SystemCreatePage(c *gin.Context) {
	acct := h.account(c)
	h.render(c, "system_form.tmpl", gin.H{
		"Title":    "Tambah Sistem",
		"Types":    h.systemTypeChoices(c, acct),
		"Statuses": database.DeviceStatuses,
		"Row":      &database.SystemRecord{Status: database.StatusActive},
	})
}

func (h *Handler) SystemCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.SystemRecord{
		Year:     intField(c, "year"),
		TypeID:   upperField(c, "type"),
		SystemNo: field(c, "system_no"),
		Name:     field(c, "name"),
		Sheets:   intField(c, "sheets"),
		Status:   upperField(c, "status"),
	}

	if msg := validateSystem(c, row); msg != "" {
		h.render(c, "system_form.tmpl", gin.H{
			"Title":    "Tambah Sistem",
			"Types":    h.systemTypeChoices(c, acct),
			"Statuses": database.DeviceStatuses,
			"Row":      row,
			"Message":  msg,
		})
		return
	}
	if !ownOffice(acct, h.systemRecordOffice(c, row)) {
		h.forbidden(c, acct, "/sistem")
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateSystemRecord(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/sistem")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/sistem")
}

func (h *Handler) SystemEditPage(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetSystemRecord(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/sistem")
		return
	}
	if !ownOffice(acct, h.systemRecordOffice(c, row)) {
		h.forbidden(c, acct, "/sistem")
		return
	}
	h.render(c, "system_form.tmpl", gin.H{
		"Title":    "Ubah Sistem",
		"Types":    h.systemTypeChoices(c, acct),
		"Statuses": database.DeviceStatuses,
		"Row":      row,
		"Edit":     true,
	})
}

func (h *Handler) SystemEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetSystemRecord(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/sistem")
		return
	}
	if !ownOffice(acct, h.systemRecordOffice(c, row)) {
		h.forbidden(c, acct, "/sistem")
		return
	}

	row.Year = intField(c, "year")
	row.TypeID = upperField(c, "type")
	row.SystemNo = field(c, "system_no")
	row.Name = field(c, "name")
	row.Sheets = intField(c, "sheets")
	row.Status = upperField(c, "status")

	if msg := validateSystem(c, row); msg != "" {
		h.render(c, "system_form.tmpl", gin.H{
			"Title":    "Ubah Sistem",
			"Types":    h.systemTypeChoices(c, acct),
			"Statuses": database.DeviceStatuses,
			"Row":      row,
			"Edit":     true,
			"Message":  msg,
		})
		return
	}
	// The replacement type must stay within the caller's office too.
	if !ownOffice(acct, h.systemRecordOffice(c, row)) {
		h.forbidden(c, acct, "/sistem")
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateSystemRecord(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/sistem")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/sistem")
}

func (h *Handler) SystemDelete(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetSystemRecord(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/sistem")
		return
	}
	if !ownOffice(acct, h.systemRecordOffice(c, row)) {
		h.forbidden(c, acct, "/sistem")
		return
	}

	if err := h.db.DeleteSystemRecord(c.Request.Context(), row.ID); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/sistem")
}

func (h *Handler) SystemExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportSystemRecords(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/sistem")
		return
	}

	t := export.Table{
		Title: "Daftar Sistem",
		Sheet: "Sistem",
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 18, Width: 10},
			{Header: "Tahun", Ratio: 1, Min: 16, Width: 8},
			{Header: "Jenis", Ratio: 1, Min: 20, Width: 10},
			{Header: "No Sistem", Ratio: 2, Min: 28, Width: 16},
			{Header: "Nama Sistem", Ratio: 4, Min: 50, Width: 32},
			{Header: "Jml Lembar", Ratio: 1, Min: 20, Width: 11},
			{Header: "Status", Ratio: 1, Min: 18, Width: 10},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ID, formatYear(r.Year), r.TypeID, r.SystemNo, r.Name,
			strconv.Itoa(r.Sheets), r.Status,
		})
	}
	h.sendTable(c, "sistem", c.Param("format"), t)
}

func validateSystem(c *gin.Context, row *database.SystemRecord) string {
	if row.Name == "" || row.TypeID == "" {
		return errMsg(c, i18n.ErrorRequiredField)
	}
	if !database.ValidDeviceStatus(row.Status) {
		return errMsg(c, i18n.ErrorInvalidValue)
	}
	return ""
}
