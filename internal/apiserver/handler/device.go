package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/export"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// Communications and cryptographic device inventories. Serial numbers are
// the keys and come off the hardware, uppercased on entry.

func (h *Handler) CommDeviceList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListCommDevices(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "commdevice_list.tmpl", gin.H{"Title": "Alat Komunikasi"})
		return
	}
	h.render(c, "commdevice_list.tmpl", gin.H{
		"Title":  "Alat Komunikasi",
		"Result": result,
		"Query":  opt,
	})
}

func (h *Handler) CommDeviceCreatePage(c *gin.Context) {
	h.renderDeviceForm(c, "commdevice_form.tmpl", "Tambah Alat Komunikasi", &database.CommDevice{Status: database.StatusActive}, false, "")
}

func (h *Handler) CommDeviceCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.CommDevice{
		Serial:   upperField(c, "serial"),
		TypeID:   upperField(c, "type"),
		Office:   upperField(c, "office"),
		AcqYear:  intField(c, "acq_year"),
		BookYear: intField(c, "book_year"),
		Status:   upperField(c, "status"),
	}
	if !acct.IsAdmin() {
		row.Office = acct.Office
	}

	if msg := validateDevice(c, row.Serial, row.TypeID, row.Office, row.Status); msg != "" {
		h.renderDeviceForm(c, "commdevice_form.tmpl", "Tambah Alat Komunikasi", row, false, msg)
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateCommDevice(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		h.renderDeviceForm(c, "commdevice_form.tmpl", "Tambah Alat Komunikasi", row, false, "")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/alatkomunikasi")
}

func (h *Handler) CommDeviceEditPage(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetCommDevice(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/alatkomunikasi")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/alatkomunikasi")
		return
	}
	h.renderDeviceForm(c, "commdevice_form.tmpl", "Ubah Alat Komunikasi", row, true, "")
}

func (h *Handler) CommDeviceEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetCommDevice(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/alatkomunikasi")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/alatkomunikasi")
		return
	}

	row.TypeID = upperField(c, "type")
	row.AcqYear = intField(c, "acq_year")
	row.BookYear = intField(c, "book_year")
	row.Status = upperField(c, "status")
	if acct.IsAdmin() {
		row.Office = upperField(c, "office")
	}

	if msg := validateDevice(c, row.Serial, row.TypeID, row.Office, row.Status); msg != "" {
		h.renderDeviceForm(c, "commdevice_form.tmpl", "Ubah Alat Komunikasi", row, true, msg)
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateCommDevice(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/alatkomunikasi")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/alatkomunikasi")
}

func (h *Handler) CommDeviceDelete(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetCommDevice(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/alatkomunikasi")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/alatkomunikasi")
		return
	}

	if err := h.db.DeleteCommDevice(c.Request.Context(), row.Serial); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/alatkomunikasi")
}

func (h *Handler) CommDeviceExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportCommDevices(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/alatkomunikasi")
		return
	}

	t := deviceTable("Daftar Alat Komunikasi", "Alat Komunikasi")
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Serial, r.TypeID, formatYear(r.AcqYear), formatYear(r.BookYear), r.Status, r.Office,
		})
	}
	h.sendTable(c, "alatkomunikasi", c.Param("format"), t)
}

func (h *Handler) CryptoDeviceList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListCryptoDevices(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "cryptodevice_list.tmpl", gin.H{"Title": "Palsan"})
		return
	}
	h.render(c, "cryptodevice_list.tmpl", gin.H{
		"Title":  "Palsan",
		"Result": result,
		"Query":  opt,
	})
}

func (h *Handler) CryptoDeviceCreatePage(c *gin.Context) {
	h.renderDeviceForm(c, "cryptodevice_form.tmpl", "Tambah Palsan", &database.CryptoDevice{Status: database.StatusActive}, false, "")
}

func (h *Handler) CryptoDeviceCreate(c *gin.Context) {
	acct := h.account(c)
	row := &database.CryptoDevice{
		Serial:   upperField(c, "serial"),
		TypeID:   upperField(c, "type"),
		Office:   upperField(c, "office"),
		AcqYear:  intField(c, "acq_year"),
		BookYear: intField(c, "book_year"),
		Status:   upperField(c, "status"),
	}
	if !acct.IsAdmin() {
		row.Office = acct.Office
	}

	if msg := validateDevice(c, row.Serial, row.TypeID, row.Office, row.Status); msg != "" {
		h.renderDeviceForm(c, "cryptodevice_form.tmpl", "Tambah Palsan", row, false, msg)
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateCryptoDevice(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		h.renderDeviceForm(c, "cryptodevice_form.tmpl", "Tambah Palsan", row, false, "")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/palsan")
}

func (h *Handler) CryptoDeviceEditPage(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetCryptoDevice(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/palsan")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/palsan")
		return
	}
	h.renderDeviceForm(c, "cryptodevice_form.tmpl", "Ubah Palsan", row, true, "")
}

func (h *Handler) CryptoDeviceEdit(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetCryptoDevice(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/palsan")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/palsan")
		return
	}

	row.TypeID = upperField(c, "type")
	row.AcqYear = intField(c, "acq_year")
	row.BookYear = intField(c, "book_year")
	row.Status = upperField(c, "status")
	if acct.IsAdmin() {
		row.Office = upperField(c, "office")
	}

	if msg := validateDevice(c, row.Serial, row.TypeID, row.Office, row.Status); msg != "" {
		h.renderDeviceForm(c, "cryptodevice_form.tmpl", "Ubah Palsan", row, true, msg)
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateCryptoDevice(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/palsan")
		return
	}
	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/palsan")
}

func (h *Handler) CryptoDeviceDelete(c *gin.Context) {
	acct := h.account(c)
	row, err := h.db.GetCryptoDevice(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/palsan")
		return
	}
	if !ownOffice(acct, row.Office) {
		h.forbidden(c, acct, "/palsan")
		return
	}

	if err := h.db.DeleteCryptoDevice(c.Request.Context(), row.Serial); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/palsan")
}

func (h *Handler) CryptoDeviceExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportCryptoDevices(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/palsan")
		return
	}

	t := deviceTable("Daftar Palsan", "Palsan")
	t.Columns = append(t.Columns, export.Column{Header: "Dipinjamkan", Ratio: 1, Min: 24, Width: 13})
	for _, r := range rows {
		loan := "Tidak"
		if r.OnLoan {
			loan = "Ya"
		}
		t.Rows = append(t.Rows, []string{
			r.Serial, r.TypeID, formatYear(r.AcqYear), formatYear(r.BookYear), r.Status, r.Office, loan,
		})
	}
	h.sendTable(c, "palsan", c.Param("format"), t)
}

// renderDeviceForm renders either inventory form with the shared dropdown
// data (device types, offices).
func (h *Handler) renderDeviceForm(c *gin.Context, tmpl, title string, row interface{}, edit bool, msg string) {
	types, _ := h.db.AllDeviceTypes(c.Request.Context())
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, tmpl, gin.H{
		"Title":    title,
		"Types":    types,
		"Offices":  offices,
		"Statuses": database.DeviceStatuses,
		"Row":      row,
		"Edit":     edit,
		"Message":  msg,
	})
}

func validateDevice(c *gin.Context, serial, typeID, office, status string) string {
	if serial == "" || typeID == "" || office == "" {
		return errMsg(c, i18n.ErrorRequiredField)
	}
	if !database.ValidDeviceStatus(status) {
		return errMsg(c, i18n.ErrorInvalidValue)
	}
	return ""
}

func deviceTable(title, sheet string) export.Table {
	return export.Table{
		Title: title,
		Sheet: sheet,
		Columns: []export.Column{
			{Header: "No Seri", Ratio: 3, Min: 40, Width: 24},
			{Header: "Jenis Alat", Ratio: 1, Min: 22, Width: 12},
			{Header: "Tahun Perolehan", Ratio: 1, Min: 28, Width: 16},
			{Header: "Tahun Pembukuan", Ratio: 1, Min: 28, Width: 16},
			{Header: "Status", Ratio: 1, Min: 20, Width: 10},
			{Header: "Perwakilan", Ratio: 1, Min: 22, Width: 12, AdminOnly: true},
		},
	}
}
